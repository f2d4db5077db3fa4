package renderer

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/goki/vulkan"
	"github.com/google/uuid"

	"github.com/custicle/custicle/engine/core"
	"github.com/custicle/custicle/engine/platform"
	"github.com/custicle/custicle/engine/renderer/vulkan"
)

// Config carries everything the rendering context needs that the
// window itself does not know.
type Config struct {
	ApplicationName    string
	Debug              bool
	VertexShaderPath   string
	FragmentShaderPath string
}

type Renderer struct {
	platform *platform.Platform
	config   Config
	context  *vulkan.Context

	// session tags every log line of one bootstrap run.
	session uuid.UUID

	teardown    teardownStack
	FrameNumber uint64
}

func New(p *platform.Platform, config Config) *Renderer {
	return &Renderer{
		platform: p,
		config:   config,
		session:  uuid.New(),
		context: &vulkan.Context{
			Allocator: nil,
			Debug:     config.Debug,
		},
	}
}

// Initialize loads the Vulkan entry points and builds the whole
// context in dependency order: instance, surface, device selection,
// logical device, swapchain, render pass, pipeline. Each finished
// stage registers its destructor, so a failure part-way through
// unwinds only what already exists and returns the stage's error.
func (r *Renderer) Initialize() error {
	core.LogInfo("initializing renderer (session %s)...", r.session)

	procAddr := glfw.GetVulkanGetInstanceProcAddress()
	if procAddr == nil {
		return core.EnvironmentUnavailablef("vkGetInstanceProcAddr is nil; no Vulkan loader found")
	}
	vk.SetGetInstanceProcAddr(procAddr)
	if err := vk.Init(); err != nil {
		return core.EnvironmentUnavailablef("loading Vulkan entry points failed: %v", err)
	}

	width, height := r.platform.FramebufferSize()
	r.context.FramebufferWidth = width
	r.context.FramebufferHeight = height

	if err := r.buildContext(); err != nil {
		core.LogError("renderer bootstrap failed, unwinding partial context")
		r.teardown.unwind()
		return err
	}

	core.LogInfo("renderer initialized.")
	return nil
}

func (r *Renderer) buildContext() error {
	requiredExtensions := r.platform.GetRequiredExtensionNames()
	if err := vulkan.InstanceCreate(r.context, r.config.ApplicationName, requiredExtensions); err != nil {
		return err
	}
	r.teardown.push("instance", func() { vulkan.InstanceDestroy(r.context) })

	if err := vulkan.SurfaceCreate(r.context, r.platform); err != nil {
		return err
	}
	r.teardown.push("surface", func() { vulkan.SurfaceDestroy(r.context) })

	// Selection allocates nothing that outlives the instance, so it
	// registers no teardown of its own.
	if err := vulkan.SelectPhysicalDevice(r.context); err != nil {
		return err
	}

	if err := vulkan.DeviceCreate(r.context); err != nil {
		return err
	}
	r.teardown.push("logical device", func() { vulkan.DeviceDestroy(r.context) })

	if err := vulkan.SwapchainCreate(r.context); err != nil {
		return err
	}
	r.teardown.push("swapchain", func() { vulkan.SwapchainDestroy(r.context) })

	if err := vulkan.RenderpassCreate(r.context); err != nil {
		return err
	}
	r.teardown.push("render pass", func() { vulkan.RenderpassDestroy(r.context) })

	if err := vulkan.PipelineCreate(r.context, &vulkan.PipelineConfig{
		VertexShaderPath:   r.config.VertexShaderPath,
		FragmentShaderPath: r.config.FragmentShaderPath,
	}); err != nil {
		return err
	}
	r.teardown.push("graphics pipeline", func() { vulkan.PipelineDestroy(r.context) })

	return nil
}

// DrawFrame is where command recording and presentation will live.
// The bootstrap only proves the context comes up and goes down clean.
func (r *Renderer) DrawFrame() {
	r.FrameNumber++
}

// Shutdown destroys the context in reverse construction order after
// draining outstanding GPU work.
func (r *Renderer) Shutdown() {
	core.LogInfo("cleaning up the renderer (session %s)...", r.session)

	if r.context.Device != nil && r.context.Device.LogicalDevice != nil {
		vk.DeviceWaitIdle(r.context.Device.LogicalDevice)
	}
	r.teardown.unwind()

	core.LogInfo("renderer shut down.")
}
