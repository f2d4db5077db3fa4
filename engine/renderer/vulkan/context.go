package vulkan

import (
	vk "github.com/goki/vulkan"
)

// Context holds every Vulkan object the bootstrap creates. The
// contents are written once during construction and read-only until
// teardown, so no locking is needed anywhere in this package.
type Context struct {
	// The framebuffer's size in physical pixels at startup.
	FramebufferWidth  uint32
	FramebufferHeight uint32

	Instance  vk.Instance
	Allocator *vk.AllocationCallbacks
	Surface   vk.Surface

	// Only present when Debug is set.
	debugMessenger vk.DebugReportCallback

	Device *Device

	Swapchain      *Swapchain
	MainRenderpass *Renderpass
	Pipeline       *Pipeline

	// Debug turns on the validation layer and the report callback.
	Debug bool
}
