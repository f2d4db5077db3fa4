package vulkan

import (
	"testing"
	"unsafe"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/require"
)

func TestDebugMessengerCreateInfo(t *testing.T) {
	info := debugMessengerCreateInfo()

	require.Equal(t, vk.StructureTypeDebugReportCallbackCreateInfo, info.SType)
	require.NotNil(t, info.PfnCallback)

	for _, bit := range []vk.DebugReportFlagBits{
		vk.DebugReportErrorBit,
		vk.DebugReportWarningBit,
		vk.DebugReportPerformanceWarningBit,
		vk.DebugReportInformationBit,
	} {
		require.NotZero(t, info.Flags&vk.DebugReportFlags(bit))
	}
}

func TestDebugMessengerCreateInfoChainsAsPNext(t *testing.T) {
	info := debugMessengerCreateInfo()

	ref, _ := info.PassRef()
	require.NotNil(t, ref)
	require.NotEqual(t, unsafe.Pointer(nil), unsafe.Pointer(ref))
}

func TestPortabilityEnumerationFlagValue(t *testing.T) {
	// The Khronos value for the portability enumeration create flag.
	require.EqualValues(t, 1, vk.InstanceCreateEnumeratePortabilityBit)
}
