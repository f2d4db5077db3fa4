package assets

import (
	"io"
	"os"

	"github.com/custicle/custicle/engine/core"
)

// spirvMagic is the first word of every valid SPIR-V binary.
const spirvMagic uint32 = 0x07230203

// ShaderBinary is a precompiled SPIR-V module read from disk, repacked
// into the 32-bit words the driver consumes.
type ShaderBinary struct {
	Path  string
	Words []uint32
}

// SizeBytes reports the byte length of the bytecode as the driver
// expects it in a module create request.
func (sb *ShaderBinary) SizeBytes() uint64 {
	return uint64(len(sb.Words)) * 4
}

// LoadShaderBinary reads a compiled shader from the given path. The
// bytes are opaque beyond the SPIR-V framing: word alignment and the
// magic number are checked, nothing else.
func LoadShaderBinary(path string) (*ShaderBinary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.AssetMissingWrap(err, "open shader binary %s", path)
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, core.AssetMissingWrap(err, "read shader binary %s", path)
	}

	words, err := bytesToBytecode(buf)
	if err != nil {
		return nil, err
	}

	return &ShaderBinary{
		Path:  path,
		Words: words,
	}, nil
}

func bytesToBytecode(b []byte) ([]uint32, error) {
	if len(b) == 0 || len(b)%4 != 0 {
		return nil, core.AssetMissingf("bytecode length %d is not a positive multiple of 4", len(b))
	}

	byteCode := make([]uint32, len(b)/4)
	for i := 0; i < len(byteCode); i++ {
		byteIndex := i * 4
		byteCode[i] = 0
		byteCode[i] |= uint32(b[byteIndex])
		byteCode[i] |= uint32(b[byteIndex+1]) << 8
		byteCode[i] |= uint32(b[byteIndex+2]) << 16
		byteCode[i] |= uint32(b[byteIndex+3]) << 24
	}

	if byteCode[0] != spirvMagic {
		return nil, core.AssetMissingf("bad SPIR-V magic 0x%08x", byteCode[0])
	}

	return byteCode, nil
}
