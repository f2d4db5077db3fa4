package engine

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/custicle/custicle/engine/core"
)

// ApplicationConfig drives window placement, debug instrumentation
// and shader asset locations. All fields have workable defaults, so a
// missing config file is not an error.
type ApplicationConfig struct {
	Name        string `toml:"name"`
	StartPosX   uint32 `toml:"start_pos_x"`
	StartPosY   uint32 `toml:"start_pos_y"`
	StartWidth  uint32 `toml:"start_width"`
	StartHeight uint32 `toml:"start_height"`

	// Debug turns on the validation layer and the debug report
	// callback. Off unless the config asks for it.
	Debug bool `toml:"debug"`

	LogLevel string `toml:"log_level"`

	VertexShaderPath   string `toml:"vertex_shader_path"`
	FragmentShaderPath string `toml:"fragment_shader_path"`
}

func DefaultApplicationConfig() ApplicationConfig {
	return ApplicationConfig{
		Name:               "custicle",
		StartPosX:          100,
		StartPosY:          100,
		StartWidth:         800,
		StartHeight:        600,
		Debug:              false,
		LogLevel:           "info",
		VertexShaderPath:   "./shaders/default_vert.spv",
		FragmentShaderPath: "./shaders/default_frag.spv",
	}
}

// LoadApplicationConfig reads a TOML config file over the defaults.
// A missing file yields the defaults unchanged.
func LoadApplicationConfig(path string) (ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogDebug("no config file at %s, using defaults", path)
			return config, nil
		}
		return config, err
	}

	if err := toml.Unmarshal(raw, &config); err != nil {
		return config, err
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c ApplicationConfig) Validate() error {
	if c.Name == "" {
		return errors.New("application name must not be empty")
	}
	if c.StartWidth == 0 || c.StartHeight == 0 {
		return errors.Newf("window size %dx%d is not usable", c.StartWidth, c.StartHeight)
	}
	if c.VertexShaderPath == "" || c.FragmentShaderPath == "" {
		return errors.New("shader paths must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.Newf("unknown log level %q", c.LogLevel)
	}
	return nil
}
