package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/custicle/custicle/engine/core"
	"github.com/custicle/custicle/engine/platform"
)

// SurfaceCreate binds the window to a presentable surface. The actual
// platform-specific surface primitive lives in the windowing
// collaborator.
func SurfaceCreate(ctx *Context, p *platform.Platform) error {
	core.LogDebug("creating Vulkan surface...")
	surface, err := p.Window.CreateWindowSurface(ctx.Instance, nil)
	if err != nil {
		return core.ResourceCreationFailedf("window surface creation: %s", err)
	}
	ctx.Surface = vk.SurfaceFromPointer(surface)
	core.LogDebug("Vulkan surface created.")
	return nil
}

func SurfaceDestroy(ctx *Context) {
	core.LogDebug("destroying Vulkan surface...")
	if ctx.Surface != vk.NullSurface {
		vk.DestroySurface(ctx.Instance, ctx.Surface, ctx.Allocator)
		ctx.Surface = vk.NullSurface
	}
}
