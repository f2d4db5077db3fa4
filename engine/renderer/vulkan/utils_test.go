package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/require"
)

func TestSafeString(t *testing.T) {
	require.Equal(t, "main\x00", SafeString("main"))
	require.Equal(t, "main\x00", SafeString("main\x00"))
	require.Equal(t, "\x00", SafeString(""))
}

func TestSafeStringsCopies(t *testing.T) {
	in := []string{"VK_KHR_surface", "VK_KHR_swapchain"}
	out := SafeStrings(in)

	require.Equal(t, []string{"VK_KHR_surface\x00", "VK_KHR_swapchain\x00"}, out)
	// The input slice is left alone.
	require.Equal(t, "VK_KHR_surface", in[0])
}

func TestByteArrayToString(t *testing.T) {
	var buf [16]byte
	copy(buf[:], "VK_KHR_surface")
	require.Equal(t, "VK_KHR_surface", byteArrayToString(buf[:]))
}

func TestClamp(t *testing.T) {
	require.Equal(t, uint32(5), Clamp(uint32(3), 5, 10))
	require.Equal(t, uint32(10), Clamp(uint32(12), 5, 10))
	require.Equal(t, uint32(7), Clamp(uint32(7), 5, 10))
	require.Equal(t, 1.5, Clamp(1.5, 1.0, 2.0))
}

func TestResultIsSuccess(t *testing.T) {
	require.True(t, ResultIsSuccess(vk.Success))
	require.True(t, ResultIsSuccess(vk.Suboptimal))
	require.False(t, ResultIsSuccess(vk.ErrorOutOfDate))
	require.False(t, ResultIsSuccess(vk.ErrorDeviceLost))
}

func TestResultString(t *testing.T) {
	require.Equal(t, "VK_SUCCESS", ResultString(vk.Success))
	require.Equal(t, "VK_ERROR_DEVICE_LOST", ResultString(vk.ErrorDeviceLost))
	require.Equal(t, "VK_<unrecognized result>", ResultString(vk.Result(-1000)))
}
