package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/custicle/custicle/engine/core"
)

type Renderpass struct {
	Handle vk.RenderPass
}

// RenderpassCreate builds the main pass: a single color attachment
// cleared on load, stored on finish, entering undefined and leaving
// ready for presentation.
func RenderpassCreate(ctx *Context) error {
	core.LogInfo("creating render pass...")

	colorAttachment := vk.AttachmentDescription{
		Format:         ctx.Swapchain.ImageFormat.Format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}

	colorAttachmentReference := []vk.AttachmentReference{
		{
			Attachment: 0,
			Layout:     vk.ImageLayoutColorAttachmentOptimal,
		},
	}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    colorAttachmentReference,
	}

	// Wait for the previous frame to release the color attachment
	// before this pass writes it.
	dependency := vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}

	renderpassCreateInfo := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: 1,
		PAttachments:    []vk.AttachmentDescription{colorAttachment},
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
		DependencyCount: 1,
		PDependencies:   []vk.SubpassDependency{dependency},
	}

	var handle vk.RenderPass
	if res := vk.CreateRenderPass(ctx.Device.LogicalDevice, &renderpassCreateInfo, ctx.Allocator, &handle); res != vk.Success {
		return core.ResourceCreationFailedf("vkCreateRenderPass failed with %s", ResultString(res))
	}

	ctx.MainRenderpass = &Renderpass{Handle: handle}
	core.LogInfo("render pass created.")
	return nil
}

func RenderpassDestroy(ctx *Context) {
	if ctx.MainRenderpass == nil {
		return
	}
	if ctx.MainRenderpass.Handle != vk.NullRenderPass {
		vk.DestroyRenderPass(ctx.Device.LogicalDevice, ctx.MainRenderpass.Handle, ctx.Allocator)
		ctx.MainRenderpass.Handle = vk.NullRenderPass
	}
	ctx.MainRenderpass = nil
}
