package vulkan

import (
	"math"

	vk "github.com/goki/vulkan"

	"github.com/custicle/custicle/engine/core"
)

type Swapchain struct {
	Handle      vk.Swapchain
	ImageFormat vk.SurfaceFormat
	Extent      vk.Extent2D
	ImageCount  uint32
	Images      []vk.Image
	Views       []vk.ImageView
}

// SwapchainSupportInfo is the surface-side capability snapshot a
// swapchain is configured against.
type SwapchainSupportInfo struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

func QuerySwapchainSupport(device vk.PhysicalDevice, surface vk.Surface) (SwapchainSupportInfo, error) {
	support := SwapchainSupportInfo{}

	if res := vk.GetPhysicalDeviceSurfaceCapabilities(device, surface, &support.Capabilities); res != vk.Success {
		return support, core.ResourceCreationFailedf("vkGetPhysicalDeviceSurfaceCapabilitiesKHR failed with %s", ResultString(res))
	}
	support.Capabilities.Deref()
	support.Capabilities.CurrentExtent.Deref()
	support.Capabilities.MinImageExtent.Deref()
	support.Capabilities.MaxImageExtent.Deref()

	var formatCount uint32
	if res := vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, nil); res != vk.Success {
		return support, core.ResourceCreationFailedf("vkGetPhysicalDeviceSurfaceFormatsKHR failed with %s", ResultString(res))
	}
	if formatCount > 0 {
		support.Formats = make([]vk.SurfaceFormat, formatCount)
		if res := vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, support.Formats); res != vk.Success {
			return support, core.ResourceCreationFailedf("vkGetPhysicalDeviceSurfaceFormatsKHR failed with %s", ResultString(res))
		}
		for i := range support.Formats {
			support.Formats[i].Deref()
		}
	}

	var presentModeCount uint32
	if res := vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &presentModeCount, nil); res != vk.Success {
		return support, core.ResourceCreationFailedf("vkGetPhysicalDeviceSurfacePresentModesKHR failed with %s", ResultString(res))
	}
	if presentModeCount > 0 {
		support.PresentModes = make([]vk.PresentMode, presentModeCount)
		if res := vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &presentModeCount, support.PresentModes); res != vk.Success {
			return support, core.ResourceCreationFailedf("vkGetPhysicalDeviceSurfacePresentModesKHR failed with %s", ResultString(res))
		}
	}

	return support, nil
}

// ChooseSurfaceFormat prefers 32-bit RGBA sRGB with a nonlinear sRGB
// color space and falls back to whatever the surface lists first.
func ChooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, format := range formats {
		if format.Format == vk.FormatR8g8b8a8Srgb && format.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return format
		}
	}
	return formats[0]
}

// ChoosePresentMode takes mailbox when the surface offers it and
// otherwise settles for FIFO, which is always available.
func ChoosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

// ChooseExtent uses the surface's current extent when the driver has
// fixed one. The max-uint sentinel means the window manager leaves the
// choice to us, so the framebuffer pixel size is clamped into the
// surface's per-axis bounds instead.
func ChooseExtent(capabilities vk.SurfaceCapabilities, framebufferWidth, framebufferHeight uint32) vk.Extent2D {
	if capabilities.CurrentExtent.Width != math.MaxUint32 {
		return capabilities.CurrentExtent
	}
	return vk.Extent2D{
		Width:  Clamp(framebufferWidth, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: Clamp(framebufferHeight, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount requests one image over the minimum so the driver
// never has to stall for a free one, capped when the surface bounds
// the total. A max of zero means unbounded.
func ChooseImageCount(capabilities vk.SurfaceCapabilities) uint32 {
	count := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && count > capabilities.MaxImageCount {
		count = capabilities.MaxImageCount
	}
	return count
}

func SwapchainCreate(ctx *Context) error {
	core.LogInfo("creating swapchain...")
	device := ctx.Device

	support, err := QuerySwapchainSupport(device.PhysicalDevice, ctx.Surface)
	if err != nil {
		return err
	}
	device.SwapchainSupport = support

	swapchain := &Swapchain{}
	swapchain.ImageFormat = ChooseSurfaceFormat(support.Formats)
	presentMode := ChoosePresentMode(support.PresentModes)
	swapchain.Extent = ChooseExtent(support.Capabilities, ctx.FramebufferWidth, ctx.FramebufferHeight)
	imageCount := ChooseImageCount(support.Capabilities)

	swapchainCreateInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          ctx.Surface,
		MinImageCount:    imageCount,
		ImageFormat:      swapchain.ImageFormat.Format,
		ImageColorSpace:  swapchain.ImageFormat.ColorSpace,
		ImageExtent:      swapchain.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
	}

	if device.QueueFamilies.Shared() {
		swapchainCreateInfo.ImageSharingMode = vk.SharingModeExclusive
		swapchainCreateInfo.QueueFamilyIndexCount = 0
		swapchainCreateInfo.PQueueFamilyIndices = nil
	} else {
		queueFamilyIndices := device.QueueFamilies.Distinct()
		swapchainCreateInfo.ImageSharingMode = vk.SharingModeConcurrent
		swapchainCreateInfo.QueueFamilyIndexCount = uint32(len(queueFamilyIndices))
		swapchainCreateInfo.PQueueFamilyIndices = queueFamilyIndices
	}

	swapchainCreateInfo.PreTransform = support.Capabilities.CurrentTransform
	swapchainCreateInfo.CompositeAlpha = vk.CompositeAlphaOpaqueBit
	swapchainCreateInfo.PresentMode = presentMode
	swapchainCreateInfo.Clipped = vk.True
	swapchainCreateInfo.OldSwapchain = nil

	var swapchainHandle vk.Swapchain
	if res := vk.CreateSwapchain(device.LogicalDevice, &swapchainCreateInfo, ctx.Allocator, &swapchainHandle); res != vk.Success {
		return core.ResourceCreationFailedf("vkCreateSwapchainKHR failed with %s", ResultString(res))
	}
	swapchain.Handle = swapchainHandle

	// Visible on the context from here on, so a failure below still
	// reaches the destructor during unwind.
	ctx.Swapchain = swapchain

	if res := vk.GetSwapchainImages(device.LogicalDevice, swapchain.Handle, &swapchain.ImageCount, nil); res != vk.Success {
		return core.ResourceCreationFailedf("vkGetSwapchainImagesKHR failed with %s", ResultString(res))
	}
	swapchain.Images = make([]vk.Image, swapchain.ImageCount)
	swapchain.Views = make([]vk.ImageView, swapchain.ImageCount)
	if res := vk.GetSwapchainImages(device.LogicalDevice, swapchain.Handle, &swapchain.ImageCount, swapchain.Images); res != vk.Success {
		return core.ResourceCreationFailedf("vkGetSwapchainImagesKHR failed with %s", ResultString(res))
	}

	for i := 0; i < int(swapchain.ImageCount); i++ {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    swapchain.Images[i],
			ViewType: vk.ImageViewType2d,
			Format:   swapchain.ImageFormat.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
				BaseMipLevel:   0,
				LevelCount:     1,
				BaseArrayLayer: 0,
				LayerCount:     1,
			},
		}

		if res := vk.CreateImageView(device.LogicalDevice, &viewInfo, ctx.Allocator, &swapchain.Views[i]); res != vk.Success {
			return core.ResourceCreationFailedf("vkCreateImageView failed for swapchain image %d with %s", i, ResultString(res))
		}
	}

	core.LogInfo("swapchain created with %d images at %dx%d.", swapchain.ImageCount, swapchain.Extent.Width, swapchain.Extent.Height)

	return nil
}

func SwapchainDestroy(ctx *Context) {
	swapchain := ctx.Swapchain
	if swapchain == nil {
		return
	}

	// Views are ours to destroy. The images belong to the swapchain
	// and go away with it. A partially built view list carries zero
	// handles at the tail.
	for _, view := range swapchain.Views {
		if view != vk.NullImageView {
			vk.DestroyImageView(ctx.Device.LogicalDevice, view, ctx.Allocator)
		}
	}
	swapchain.Views = nil
	swapchain.Images = nil

	if swapchain.Handle != vk.NullSwapchain {
		vk.DestroySwapchain(ctx.Device.LogicalDevice, swapchain.Handle, ctx.Allocator)
		swapchain.Handle = vk.NullSwapchain
	}
	ctx.Swapchain = nil
}
