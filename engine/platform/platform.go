package platform

import (
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/custicle/custicle/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform wraps the windowing collaborator. It owns the GLFW window
// and forwards the two events the engine cares about: close requested
// and redraw requested.
type Platform struct {
	Window *glfw.Window

	onRedraw func()
}

func New() *Platform {
	return &Platform{
		Window: nil,
	}
}

func (p *Platform) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return core.EnvironmentUnavailablef("glfw init: %s", err)
	}

	if !glfw.VulkanSupported() {
		return core.EnvironmentUnavailablef("no Vulkan loader found on this system")
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Required for Vulkan.

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		return core.EnvironmentUnavailablef("window creation: %s", err)
	}
	p.Window = window

	p.Window.SetCloseCallback(closeCallback)
	p.Window.SetFramebufferSizeCallback(framebufferSizeCallback)
	p.Window.SetRefreshCallback(p.refreshCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages polls the window system once and reports whether the
// application should keep running.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

// SetOnRedraw registers the handler invoked on a redraw request.
func (p *Platform) SetOnRedraw(fn func()) {
	p.onRedraw = fn
}

// GetRequiredExtensionNames returns the instance extensions the window
// system needs for presentation, surface extension included.
func (p *Platform) GetRequiredExtensionNames() []string {
	return p.Window.GetRequiredInstanceExtensions()
}

// FramebufferSize returns the window's current size in physical pixels.
func (p *Platform) FramebufferSize() (uint32, uint32) {
	w, h := p.Window.GetFramebufferSize()
	return uint32(w), uint32(h)
}

// ContentScale reports the window's pixel density scale factor.
func (p *Platform) ContentScale() (float32, float32) {
	return p.Window.GetContentScale()
}

func GetAbsoluteTime() float64 {
	return glfw.GetTime()
}

func (p *Platform) Sleep(ms float64) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func closeCallback(w *glfw.Window) {
	core.LogInfo("the close button was pressed; stopping")
	core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
}

func framebufferSizeCallback(w *glfw.Window, width, height int) {
	ctx := core.EventContext{}
	ctx.Data.U32[0] = uint32(width)
	ctx.Data.U32[1] = uint32(height)
	core.EventFire(core.EVENT_CODE_RESIZED, w, ctx)
}

func (p *Platform) refreshCallback(w *glfw.Window) {
	if p.onRedraw != nil {
		p.onRedraw()
	}
}
