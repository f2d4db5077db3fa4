package core

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructorsCarryTheirMark(t *testing.T) {
	err := EnvironmentUnavailablef("no loader at %s", "/usr/lib")
	require.True(t, errors.Is(err, ErrEnvironmentUnavailable))
	require.False(t, errors.Is(err, ErrNoSuitableDevice))
	require.Contains(t, err.Error(), "/usr/lib")

	err = NoSuitableDevicef("%d adapters rejected", 2)
	require.True(t, errors.Is(err, ErrNoSuitableDevice))

	err = ResourceCreationFailedf("vkCreateDevice failed")
	require.True(t, errors.Is(err, ErrResourceCreationFailed))

	err = AssetMissingf("no such shader")
	require.True(t, errors.Is(err, ErrAssetMissing))
}

func TestAssetMissingWrapKeepsTheCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := AssetMissingWrap(cause, "open %s", "shaders/default_vert.spv")

	require.True(t, errors.Is(err, ErrAssetMissing))
	require.True(t, errors.Is(err, cause))
	require.Contains(t, err.Error(), "shaders/default_vert.spv")
}
