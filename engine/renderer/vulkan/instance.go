package vulkan

import (
	"runtime"
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/custicle/custicle/engine/core"
)

const validationLayerName = "VK_LAYER_KHRONOS_validation"

// InstanceCreate opens the connection to the driver. The presentation
// extensions the window system demands are passed in by the caller;
// this function adds the diagnostics extension and validation layer
// when ctx.Debug is set, and chains the diagnostics descriptor into
// the create request so instance creation itself is observable.
func InstanceCreate(ctx *Context, appName string, requiredExtensions []string) error {
	appInfo := &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         uint32(vk.MakeVersion(1, 0, 0)),
		ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
		PApplicationName:   SafeString(appName),
		PEngineName:        SafeString("custicle"),
	}

	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: appInfo,
	}

	extensions := make([]string, 0, len(requiredExtensions)+3)
	extensions = append(extensions, requiredExtensions...)

	if runtime.GOOS == "darwin" {
		extensions = append(extensions,
			"VK_KHR_portability_enumeration",
			"VK_KHR_get_physical_device_properties2",
		)
		createInfo.Flags |= vk.InstanceCreateFlags(vk.InstanceCreateEnumeratePortabilityBit)
	}

	layers := []string{}
	if ctx.Debug {
		extensions = append(extensions, vk.ExtDebugReportExtensionName)
		layers = append(layers, validationLayerName)

		if err := checkValidationLayerSupport(); err != nil {
			return err
		}
		printSupportedExtensionsAndLayers()

		// Hook the messenger descriptor into the create request so
		// the creation and destruction of the instance are reported
		// too.
		dbgCreateInfo := debugMessengerCreateInfo()
		ref, _ := dbgCreateInfo.PassRef()
		createInfo.PNext = unsafe.Pointer(ref)
	}

	createInfo.EnabledExtensionCount = uint32(len(extensions))
	createInfo.PpEnabledExtensionNames = SafeStrings(extensions)
	createInfo.EnabledLayerCount = uint32(len(layers))
	createInfo.PpEnabledLayerNames = SafeStrings(layers)

	var instance vk.Instance
	if res := vk.CreateInstance(&createInfo, ctx.Allocator, &instance); res != vk.Success {
		return core.ResourceCreationFailedf("vkCreateInstance failed with %s", ResultString(res))
	}
	ctx.Instance = instance

	if err := vk.InitInstance(ctx.Instance); err != nil {
		return core.EnvironmentUnavailablef("loading instance proc addrs: %s", err)
	}
	core.LogInfo("Vulkan instance created.")

	if ctx.Debug {
		if err := debugMessengerCreate(ctx); err != nil {
			return err
		}
	}

	return nil
}

// InstanceDestroy tears the instance down. The debug messenger, when
// present, must go first since it is only valid while the instance
// lives.
func InstanceDestroy(ctx *Context) {
	if ctx.debugMessenger != vk.NullDebugReportCallback {
		core.LogDebug("destroying Vulkan debug messenger...")
		vk.DestroyDebugReportCallback(ctx.Instance, ctx.debugMessenger, ctx.Allocator)
		ctx.debugMessenger = vk.NullDebugReportCallback
	}
	core.LogDebug("destroying Vulkan instance...")
	vk.DestroyInstance(ctx.Instance, ctx.Allocator)
	ctx.Instance = nil
}

func checkValidationLayerSupport() error {
	var availableLayerCount uint32
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, nil); res != vk.Success {
		return core.EnvironmentUnavailablef("vkEnumerateInstanceLayerProperties failed with %s", ResultString(res))
	}
	availableLayers := make([]vk.LayerProperties, availableLayerCount)
	if res := vk.EnumerateInstanceLayerProperties(&availableLayerCount, availableLayers); res != vk.Success {
		return core.EnvironmentUnavailablef("vkEnumerateInstanceLayerProperties failed with %s", ResultString(res))
	}

	for i := range availableLayers {
		availableLayers[i].Deref()
		if byteArrayToString(availableLayers[i].LayerName[:]) == validationLayerName {
			core.LogDebug("validation layer %s present", validationLayerName)
			return nil
		}
	}
	return core.EnvironmentUnavailablef("required validation layer is missing: %s", validationLayerName)
}

func printSupportedExtensionsAndLayers() {
	var extCount uint32
	if res := vk.EnumerateInstanceExtensionProperties("", &extCount, nil); res != vk.Success {
		core.LogWarn("unable to enumerate instance extensions: %s", ResultString(res))
		return
	}
	exts := make([]vk.ExtensionProperties, extCount)
	vk.EnumerateInstanceExtensionProperties("", &extCount, exts)

	core.LogInfo("supported extensions:")
	for i := range exts {
		exts[i].Deref()
		core.LogInfo("\t%s", byteArrayToString(exts[i].ExtensionName[:]))
	}

	var layerCount uint32
	if res := vk.EnumerateInstanceLayerProperties(&layerCount, nil); res != vk.Success {
		core.LogWarn("unable to enumerate instance layers: %s", ResultString(res))
		return
	}
	layers := make([]vk.LayerProperties, layerCount)
	vk.EnumerateInstanceLayerProperties(&layerCount, layers)

	core.LogInfo("supported layers:")
	for i := range layers {
		layers[i].Deref()
		core.LogInfo("\t%s", byteArrayToString(layers[i].LayerName[:]))
	}
}

func debugMessengerCreateInfo() vk.DebugReportCallbackCreateInfo {
	return vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(vk.DebugReportErrorBit |
			vk.DebugReportWarningBit |
			vk.DebugReportPerformanceWarningBit |
			vk.DebugReportInformationBit),
		PfnCallback: dbgCallbackFunc,
		PNext:       nil,
	}
}

func debugMessengerCreate(ctx *Context) error {
	core.LogDebug("creating Vulkan debug messenger...")
	dbgCreateInfo := debugMessengerCreateInfo()

	var dbg vk.DebugReportCallback
	if res := vk.CreateDebugReportCallback(ctx.Instance, &dbgCreateInfo, ctx.Allocator, &dbg); res != vk.Success {
		return core.ResourceCreationFailedf("vkCreateDebugReportCallbackEXT failed with %s", ResultString(res))
	}
	ctx.debugMessenger = dbg
	core.LogDebug("Vulkan debug messenger created.")
	return nil
}

// dbgCallbackFunc forwards driver diagnostics as log lines. It is
// purely observational and never asks the driver to abort the call
// that triggered it.
func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType, object uint64, location uint64, messageCode int32, pLayerPrefix string, pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		core.LogError("ERROR: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		core.LogWarn("PERFORMANCE WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		core.LogWarn("WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		core.LogInfo("INFORMATION: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	return vk.Bool32(vk.False)
}
