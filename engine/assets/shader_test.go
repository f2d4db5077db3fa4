package assets

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/custicle/custicle/engine/core"
)

func writeWords(t *testing.T, path string, words []uint32) {
	t.Helper()
	buf := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func TestLoadShaderBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle_vert.spv")
	words := []uint32{spirvMagic, 0x00010000, 0x0008000b, 0x0000002d}
	writeWords(t, path, words)

	sb, err := LoadShaderBinary(path)
	require.NoError(t, err)
	require.Equal(t, path, sb.Path)
	require.Equal(t, words, sb.Words)
	require.Equal(t, uint64(16), sb.SizeBytes())
}

func TestLoadShaderBinaryMissingFile(t *testing.T) {
	_, err := LoadShaderBinary(filepath.Join(t.TempDir(), "nope.spv"))
	require.Error(t, err)
	require.True(t, errors.Is(err, core.ErrAssetMissing))
}

func TestBytesToBytecodeRejectsBadLength(t *testing.T) {
	_, err := bytesToBytecode([]byte{0x03, 0x02, 0x23})
	require.True(t, errors.Is(err, core.ErrAssetMissing))

	_, err = bytesToBytecode(nil)
	require.True(t, errors.Is(err, core.ErrAssetMissing))
}

func TestBytesToBytecodeRejectsBadMagic(t *testing.T) {
	_, err := bytesToBytecode([]byte{0xde, 0xad, 0xbe, 0xef})
	require.True(t, errors.Is(err, core.ErrAssetMissing))
}

func TestBytesToBytecodeLittleEndian(t *testing.T) {
	words, err := bytesToBytecode([]byte{0x03, 0x02, 0x23, 0x07, 0x78, 0x56, 0x34, 0x12})
	require.NoError(t, err)
	require.Equal(t, []uint32{spirvMagic, 0x12345678}, words)
}
