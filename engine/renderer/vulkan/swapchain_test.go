package vulkan

import (
	"math"
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/require"
)

func TestChooseSurfaceFormatPrefersSrgb(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := ChooseSurfaceFormat(formats)
	require.Equal(t, vk.FormatR8g8b8a8Srgb, chosen.Format)
	require.Equal(t, vk.ColorSpaceSrgbNonlinear, chosen.ColorSpace)
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := ChooseSurfaceFormat(formats)
	require.Equal(t, vk.FormatB8g8r8a8Unorm, chosen.Format)
}

func TestChoosePresentModePrefersMailbox(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate, vk.PresentModeMailbox}
	require.Equal(t, vk.PresentModeMailbox, ChoosePresentMode(modes))
}

func TestChoosePresentModeFallsBackToFifo(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeFifoRelaxed}
	require.Equal(t, vk.PresentModeFifo, ChoosePresentMode(modes))

	require.Equal(t, vk.PresentModeFifo, ChoosePresentMode(nil))
}

func TestChooseExtentUsesCurrentWhenFixed(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: 1024, Height: 768},
		MinImageExtent: vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent: vk.Extent2D{Width: 4096, Height: 4096},
	}

	extent := ChooseExtent(caps, 800, 600)
	require.Equal(t, uint32(1024), extent.Width)
	require.Equal(t, uint32(768), extent.Height)
}

func TestChooseExtentClampsEachAxisIndependently(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: math.MaxUint32, Height: math.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 200, Height: 400},
		MaxImageExtent: vk.Extent2D{Width: 1000, Height: 500},
	}

	// Width below its minimum, height above its maximum.
	extent := ChooseExtent(caps, 100, 900)
	require.Equal(t, uint32(200), extent.Width)
	require.Equal(t, uint32(500), extent.Height)

	// Both inside their own bounds stay untouched.
	extent = ChooseExtent(caps, 640, 480)
	require.Equal(t, uint32(640), extent.Width)
	require.Equal(t, uint32(480), extent.Height)
}

func TestSwapchainDestroyToleratesPartialState(t *testing.T) {
	// A view-creation failure mid-build leaves a registered swapchain
	// with a zero handle tail; the destructor must cope.
	ctx := &Context{
		Device: &Device{},
		Swapchain: &Swapchain{
			Views: make([]vk.ImageView, 3),
		},
	}

	require.NotPanics(t, func() { SwapchainDestroy(ctx) })
	require.Nil(t, ctx.Swapchain)

	// Destroying an already-cleared context is a no-op.
	require.NotPanics(t, func() { SwapchainDestroy(ctx) })
}

func TestChooseImageCount(t *testing.T) {
	// One above the minimum when the surface is unbounded.
	caps := vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 0}
	require.Equal(t, uint32(3), ChooseImageCount(caps))

	// Capped at the maximum when bounded.
	caps = vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 3}
	require.Equal(t, uint32(3), ChooseImageCount(caps))

	caps = vk.SurfaceCapabilities{MinImageCount: 1, MaxImageCount: 1}
	require.Equal(t, uint32(1), ChooseImageCount(caps))
}
