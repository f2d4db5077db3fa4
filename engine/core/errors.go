package core

import (
	"github.com/cockroachdb/errors"
)

// The four failure kinds of the bootstrap. None of them is recovered
// below the orchestrator: every constructor returns one of these up the
// call chain and the process exits with a single message.
var (
	// ErrEnvironmentUnavailable marks a missing driver entry point or a
	// required instance extension/layer that is not installed.
	ErrEnvironmentUnavailable = errors.New("graphics environment unavailable")

	// ErrNoSuitableDevice marks a successful enumeration in which no
	// adapter satisfied the suitability predicate.
	ErrNoSuitableDevice = errors.New("no suitable physical device")

	// ErrResourceCreationFailed marks a rejected create call for any
	// driver resource (surface, device, swapchain, image view, render
	// pass, shader module, pipeline layout, pipeline).
	ErrResourceCreationFailed = errors.New("resource creation failed")

	// ErrAssetMissing marks an absent or unreadable shader binary.
	ErrAssetMissing = errors.New("shader asset missing or malformed")
)

// EnvironmentUnavailablef builds a formatted error carrying the
// ErrEnvironmentUnavailable mark.
func EnvironmentUnavailablef(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrEnvironmentUnavailable)
}

// NoSuitableDevicef builds a formatted error carrying the
// ErrNoSuitableDevice mark.
func NoSuitableDevicef(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrNoSuitableDevice)
}

// ResourceCreationFailedf builds a formatted error carrying the
// ErrResourceCreationFailed mark.
func ResourceCreationFailedf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrResourceCreationFailed)
}

// AssetMissingf builds a formatted error carrying the ErrAssetMissing
// mark.
func AssetMissingf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrAssetMissing)
}

// AssetMissingWrap wraps an underlying I/O error with the
// ErrAssetMissing mark.
func AssetMissingWrap(err error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrAssetMissing)
}
