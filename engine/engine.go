package engine

import (
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/custicle/custicle/engine/assets"
	"github.com/custicle/custicle/engine/core"
	"github.com/custicle/custicle/engine/platform"
	"github.com/custicle/custicle/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage Stage
	config       ApplicationConfig
	isRunning    bool
	isSuspended  bool
	platform     *platform.Platform
	renderer     *renderer.Renderer
	watcher      *assets.Watcher
	width        uint32
	height       uint32
	clock        *core.Clock
	lastTime     float64
}

func New(config ApplicationConfig) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	core.LogSetLevel(core.ParseLogLevel(config.LogLevel))

	p := platform.New()

	return &Engine{
		currentStage: EngineStageUninitialized,
		config:       config,
		clock:        core.NewClock(),
		platform:     p,
		isRunning:    true,
		isSuspended:  false,
		width:        config.StartWidth,
		height:       config.StartHeight,
		lastTime:     0,
	}, nil
}

// Initialize brings up the window, the event system, the shader
// watcher and the rendering context, in that order.
func (e *Engine) Initialize() error {
	if e.currentStage != EngineStageUninitialized {
		return errors.New("engine is already initialized")
	}
	e.currentStage = EngineStageInitializing

	if !core.EventInitialize() {
		return errors.New("failed to initialize the event system")
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	core.EventRegister(core.EVENT_CODE_RESIZED, e, e.onResized)

	if err := e.platform.Startup(e.config.Name,
		e.config.StartPosX,
		e.config.StartPosY,
		e.config.StartWidth,
		e.config.StartHeight); err != nil {
		return err
	}

	watcher, err := assets.NewWatcher()
	if err != nil {
		core.LogWarn("shader watcher unavailable: %s", err)
	} else {
		e.watcher = watcher
		if err := e.watcher.Watch(filepath.Dir(e.config.VertexShaderPath)); err != nil {
			core.LogWarn("shader watcher could not watch %s: %s", filepath.Dir(e.config.VertexShaderPath), err)
		}
	}

	e.renderer = renderer.New(e.platform, renderer.Config{
		ApplicationName:    e.config.Name,
		Debug:              e.config.Debug,
		VertexShaderPath:   e.config.VertexShaderPath,
		FragmentShaderPath: e.config.FragmentShaderPath,
	})
	if err := e.renderer.Initialize(); err != nil {
		return err
	}
	e.platform.SetOnRedraw(e.renderer.DrawFrame)

	e.currentStage = EngineStageInitialized
	return nil
}

// Run drives the poll loop until the window asks to close or an
// APPLICATION_QUIT event fires.
func (e *Engine) Run() error {
	if e.currentStage != EngineStageInitialized {
		return errors.New("engine must be initialized before running")
	}
	e.currentStage = EngineStageRunning

	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	core.MetricsInitialize()

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}

		if !e.isSuspended {
			e.clock.Update()
			currentTime := e.clock.Elapsed()
			delta := currentTime - e.lastTime

			e.renderer.DrawFrame()

			core.MetricsUpdate(delta)
			e.lastTime = currentTime
		}
	}

	return nil
}

// Shutdown tears everything down in reverse initialization order.
func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShuttingDown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown
	e.isRunning = false

	fps, frameTime := core.MetricsFrame()
	core.LogInfo("shutting down after %d frames (%.0f fps, %.2fms avg)", e.renderer.FrameNumber, fps, frameTime)

	if e.renderer != nil {
		e.renderer.Shutdown()
	}
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			core.LogWarn("shader watcher close: %s", err)
		}
	}
	if err := core.EventShutdown(); err != nil {
		return err
	}
	return e.platform.Shutdown()
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, shutting down")
		e.isRunning = false
		return true
	}
	return false
}

func (e *Engine) onResized(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	if code != core.EVENT_CODE_RESIZED {
		return false
	}

	width := data.Data.U32[0]
	height := data.Data.U32[1]
	if width == e.width && height == e.height {
		return false
	}
	e.width = width
	e.height = height
	core.LogDebug("window resize: %d %d", width, height)

	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return true
	}

	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}
	return false
}
