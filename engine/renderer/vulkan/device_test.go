package vulkan

import (
	"testing"

	vk "github.com/goki/vulkan"
	"github.com/stretchr/testify/require"
)

func graphicsFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit)}
}

func transferFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{QueueFlags: vk.QueueFlags(vk.QueueTransferBit)}
}

func presentOnly(indices ...uint32) func(uint32) (bool, error) {
	set := map[uint32]bool{}
	for _, i := range indices {
		set[i] = true
	}
	return func(index uint32) (bool, error) {
		return set[index], nil
	}
}

func TestResolveQueueFamiliesSingleSharedFamily(t *testing.T) {
	families := []vk.QueueFamilyProperties{graphicsFamily()}

	indices, err := resolveQueueFamilies(families, presentOnly(0))
	require.NoError(t, err)
	require.True(t, indices.Complete())
	require.True(t, indices.Shared())
	require.Equal(t, int32(0), indices.Graphics)
	require.Equal(t, int32(0), indices.Present)
	require.Equal(t, []uint32{0}, indices.Distinct())
}

func TestResolveQueueFamiliesSplitFamilies(t *testing.T) {
	families := []vk.QueueFamilyProperties{graphicsFamily(), transferFamily()}

	indices, err := resolveQueueFamilies(families, presentOnly(1))
	require.NoError(t, err)
	require.True(t, indices.Complete())
	require.False(t, indices.Shared())
	require.Equal(t, int32(0), indices.Graphics)
	require.Equal(t, int32(1), indices.Present)
	require.Equal(t, []uint32{0, 1}, indices.Distinct())
}

func TestResolveQueueFamiliesRecordsFirstMatch(t *testing.T) {
	families := []vk.QueueFamilyProperties{
		transferFamily(),
		graphicsFamily(),
		graphicsFamily(),
	}

	indices, err := resolveQueueFamilies(families, presentOnly(0, 1, 2))
	require.NoError(t, err)
	require.Equal(t, int32(1), indices.Graphics)
	require.Equal(t, int32(0), indices.Present)
}

func TestResolveQueueFamiliesStopsOnceComplete(t *testing.T) {
	families := []vk.QueueFamilyProperties{graphicsFamily(), graphicsFamily(), graphicsFamily()}

	queried := []uint32{}
	_, err := resolveQueueFamilies(families, func(index uint32) (bool, error) {
		queried = append(queried, index)
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, []uint32{0}, queried)
}

func TestResolveQueueFamiliesIncomplete(t *testing.T) {
	families := []vk.QueueFamilyProperties{transferFamily()}

	indices, err := resolveQueueFamilies(families, presentOnly())
	require.NoError(t, err)
	require.False(t, indices.Complete())
	require.Equal(t, int32(-1), indices.Graphics)
	require.Equal(t, int32(-1), indices.Present)
}

func extensionProps(names ...string) []vk.ExtensionProperties {
	props := make([]vk.ExtensionProperties, len(names))
	for i, name := range names {
		copy(props[i].ExtensionName[:], name)
	}
	return props
}

func TestRequiredExtensionsSupported(t *testing.T) {
	available := extensionProps("VK_KHR_swapchain", "VK_KHR_maintenance1")

	require.True(t, requiredExtensionsSupported(available, []string{"VK_KHR_swapchain"}))
	require.False(t, requiredExtensionsSupported(available, []string{"VK_KHR_swapchain", "VK_EXT_debug_marker"}))
	require.True(t, requiredExtensionsSupported(available, nil))
	require.False(t, requiredExtensionsSupported(nil, []string{"VK_KHR_swapchain"}))
}
