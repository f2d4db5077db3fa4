package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/custicle/custicle/engine/assets"
	"github.com/custicle/custicle/engine/core"
)

type Pipeline struct {
	Handle         vk.Pipeline
	PipelineLayout vk.PipelineLayout
}

// PipelineConfig names the shader binaries the graphics pipeline is
// built from.
type PipelineConfig struct {
	VertexShaderPath   string
	FragmentShaderPath string
}

func createShaderModule(ctx *Context, binary *assets.ShaderBinary) (vk.ShaderModule, error) {
	createInfo := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: binary.SizeBytes(),
		PCode:    binary.Words,
	}

	var module vk.ShaderModule
	if res := vk.CreateShaderModule(ctx.Device.LogicalDevice, &createInfo, ctx.Allocator, &module); res != vk.Success {
		return vk.NullShaderModule, core.ResourceCreationFailedf("vkCreateShaderModule failed for %s with %s", binary.Path, ResultString(res))
	}
	return module, nil
}

// PipelineCreate builds the graphics pipeline: the two shader stages,
// no vertex input, triangle-list assembly, filled back-culled
// clockwise rasterization, single-sample, no blending. Viewport and
// scissor are dynamic so a window resize does not force a pipeline
// rebuild. The shader modules only feed pipeline construction and are
// destroyed before returning.
func PipelineCreate(ctx *Context, config *PipelineConfig) error {
	core.LogInfo("creating graphics pipeline...")

	vertBinary, err := assets.LoadShaderBinary(config.VertexShaderPath)
	if err != nil {
		return err
	}
	fragBinary, err := assets.LoadShaderBinary(config.FragmentShaderPath)
	if err != nil {
		return err
	}

	vertModule, err := createShaderModule(ctx, vertBinary)
	if err != nil {
		return err
	}
	defer vk.DestroyShaderModule(ctx.Device.LogicalDevice, vertModule, ctx.Allocator)

	fragModule, err := createShaderModule(ctx, fragBinary)
	if err != nil {
		return err
	}
	defer vk.DestroyShaderModule(ctx.Device.LogicalDevice, fragModule, ctx.Allocator)

	shaderStages := []vk.PipelineShaderStageCreateInfo{
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: vertModule,
			PName:  SafeString("main"),
		},
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: fragModule,
			PName:  SafeString("main"),
		},
	}

	// Vertices are generated in the vertex shader, so nothing is bound.
	vertexInputInfo := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   0,
		PVertexBindingDescriptions:      nil,
		VertexAttributeDescriptionCount: 0,
		PVertexAttributeDescriptions:    nil,
	}

	inputAssembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}

	// Counts only; the actual rects are set at draw time.
	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	dynamicStates := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}
	dynamicStateCreateInfo := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamicStates)),
		PDynamicStates:    dynamicStates,
	}

	rasterizerCreateInfo := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		LineWidth:               1.0,
		CullMode:                vk.CullModeFlags(vk.CullModeBackBit),
		FrontFace:               vk.FrontFaceClockwise,
		DepthBiasEnable:         vk.False,
	}

	multisamplingCreateInfo := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: vk.SampleCount1Bit,
		MinSampleShading:     1.0,
	}

	colorBlendAttachmentState := vk.PipelineColorBlendAttachmentState{
		BlendEnable: vk.False,
		ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit) | vk.ColorComponentFlags(vk.ColorComponentGBit) |
			vk.ColorComponentFlags(vk.ColorComponentBBit) | vk.ColorComponentFlags(vk.ColorComponentABit),
	}

	colorBlendStateCreateInfo := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    []vk.PipelineColorBlendAttachmentState{colorBlendAttachmentState},
	}

	// Nothing is bound through descriptors or push constants yet.
	pipelineLayoutCreateInfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 0,
		PSetLayouts:    nil,
	}

	pipeline := &Pipeline{}
	if res := vk.CreatePipelineLayout(ctx.Device.LogicalDevice, &pipelineLayoutCreateInfo, ctx.Allocator, &pipeline.PipelineLayout); res != vk.Success {
		return core.ResourceCreationFailedf("vkCreatePipelineLayout failed with %s", ResultString(res))
	}

	pipelineCreateInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(shaderStages)),
		PStages:             shaderStages,
		PVertexInputState:   &vertexInputInfo,
		PInputAssemblyState: &inputAssembly,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterizerCreateInfo,
		PMultisampleState:   &multisamplingCreateInfo,
		PDepthStencilState:  nil,
		PColorBlendState:    &colorBlendStateCreateInfo,
		PDynamicState:       &dynamicStateCreateInfo,
		Layout:              pipeline.PipelineLayout,
		RenderPass:          ctx.MainRenderpass.Handle,
		Subpass:             0,
		BasePipelineHandle:  vk.NullPipeline,
		BasePipelineIndex:   -1,
	}

	pPipelines := make([]vk.Pipeline, 1)
	if res := vk.CreateGraphicsPipelines(
		ctx.Device.LogicalDevice,
		vk.NullPipelineCache,
		1,
		[]vk.GraphicsPipelineCreateInfo{pipelineCreateInfo},
		ctx.Allocator,
		pPipelines); res != vk.Success {
		vk.DestroyPipelineLayout(ctx.Device.LogicalDevice, pipeline.PipelineLayout, ctx.Allocator)
		pipeline.PipelineLayout = vk.NullPipelineLayout
		return core.ResourceCreationFailedf("vkCreateGraphicsPipelines failed with %s", ResultString(res))
	}
	pipeline.Handle = pPipelines[0]

	ctx.Pipeline = pipeline
	core.LogInfo("graphics pipeline created.")
	return nil
}

func PipelineDestroy(ctx *Context) {
	pipeline := ctx.Pipeline
	if pipeline == nil {
		return
	}
	if pipeline.Handle != vk.NullPipeline {
		vk.DestroyPipeline(ctx.Device.LogicalDevice, pipeline.Handle, ctx.Allocator)
		pipeline.Handle = vk.NullPipeline
	}
	if pipeline.PipelineLayout != vk.NullPipelineLayout {
		vk.DestroyPipelineLayout(ctx.Device.LogicalDevice, pipeline.PipelineLayout, ctx.Allocator)
		pipeline.PipelineLayout = vk.NullPipelineLayout
	}
	ctx.Pipeline = nil
}
