package vulkan

import (
	"runtime"

	vk "github.com/goki/vulkan"

	"github.com/custicle/custicle/engine/core"
)

// requiredDeviceExtensions is the fixed extension set every selected
// adapter must carry.
var requiredDeviceExtensions = []string{vk.KhrSwapchainExtensionName}

// Device bundles the selected adapter with the logical device and
// queue handles created from it.
type Device struct {
	PhysicalDevice vk.PhysicalDevice
	LogicalDevice  vk.Device

	QueueFamilies    QueueFamilyIndices
	SwapchainSupport SwapchainSupportInfo

	GraphicsQueue vk.Queue
	PresentQueue  vk.Queue

	Properties vk.PhysicalDeviceProperties
}

// QueueFamilyIndices records which queue family serves graphics work
// and which can present to the surface. A value of -1 means the
// family has not been resolved yet; both may point to the same family.
type QueueFamilyIndices struct {
	Graphics int32
	Present  int32
}

func NewQueueFamilyIndices() QueueFamilyIndices {
	return QueueFamilyIndices{Graphics: -1, Present: -1}
}

// Complete reports whether both families have been resolved.
func (qf QueueFamilyIndices) Complete() bool {
	return qf.Graphics >= 0 && qf.Present >= 0
}

// Shared reports whether graphics and present work land on the same
// family, which decides the swapchain image sharing mode.
func (qf QueueFamilyIndices) Shared() bool {
	return qf.Graphics == qf.Present
}

// Distinct returns the deduplicated family indices, one queue-create
// request each.
func (qf QueueFamilyIndices) Distinct() []uint32 {
	indices := []uint32{uint32(qf.Graphics)}
	if !qf.Shared() {
		indices = append(indices, uint32(qf.Present))
	}
	return indices
}

// resolveQueueFamilies scans the family list in index order, records
// the first graphics-capable and the first present-capable index
// independently, and stops as soon as both are known. Present support
// is delegated so the scan itself stays driver-free.
func resolveQueueFamilies(families []vk.QueueFamilyProperties, supportsPresent func(index uint32) (bool, error)) (QueueFamilyIndices, error) {
	indices := NewQueueFamilyIndices()

	for i := range families {
		families[i].Deref()

		if indices.Graphics < 0 && vk.QueueFlagBits(families[i].QueueFlags)&vk.QueueGraphicsBit != 0 {
			indices.Graphics = int32(i)
		}

		if indices.Present < 0 {
			present, err := supportsPresent(uint32(i))
			if err != nil {
				return indices, err
			}
			if present {
				indices.Present = int32(i)
			}
		}

		if indices.Complete() {
			break
		}
	}

	return indices, nil
}

func findQueueFamilies(device vk.PhysicalDevice, surface vk.Surface) (QueueFamilyIndices, error) {
	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, nil)
	families := make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &familyCount, families)

	return resolveQueueFamilies(families, func(index uint32) (bool, error) {
		var supported vk.Bool32
		if res := vk.GetPhysicalDeviceSurfaceSupport(device, index, surface, &supported); res != vk.Success {
			return false, core.ResourceCreationFailedf("vkGetPhysicalDeviceSurfaceSupportKHR failed with %s", ResultString(res))
		}
		return supported == vk.True, nil
	})
}

// requiredExtensionsSupported checks the fixed device extension set
// against an adapter's advertised extension list.
func requiredExtensionsSupported(available []vk.ExtensionProperties, required []string) bool {
	for _, req := range required {
		found := false
		for i := range available {
			available[i].Deref()
			if byteArrayToString(available[i].ExtensionName[:]) == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func enumerateDeviceExtensions(device vk.PhysicalDevice) ([]vk.ExtensionProperties, error) {
	var count uint32
	if res := vk.EnumerateDeviceExtensionProperties(device, "", &count, nil); res != vk.Success {
		return nil, core.ResourceCreationFailedf("vkEnumerateDeviceExtensionProperties failed with %s", ResultString(res))
	}
	if count == 0 {
		return nil, nil
	}
	available := make([]vk.ExtensionProperties, count)
	if res := vk.EnumerateDeviceExtensionProperties(device, "", &count, available); res != vk.Success {
		return nil, core.ResourceCreationFailedf("vkEnumerateDeviceExtensionProperties failed with %s", ResultString(res))
	}
	return available, nil
}

// SelectPhysicalDevice enumerates every adapter and takes the first
// one that satisfies the suitability predicate: complete queue
// families, the required extension set, and at least one surface
// format and one present mode. There is no scoring.
func SelectPhysicalDevice(ctx *Context) error {
	var deviceCount uint32
	if res := vk.EnumeratePhysicalDevices(ctx.Instance, &deviceCount, nil); res != vk.Success {
		return core.NoSuitableDevicef("vkEnumeratePhysicalDevices failed with %s", ResultString(res))
	}
	if deviceCount == 0 {
		return core.NoSuitableDevicef("no devices which support Vulkan were found")
	}

	devices := make([]vk.PhysicalDevice, deviceCount)
	if res := vk.EnumeratePhysicalDevices(ctx.Instance, &deviceCount, devices); res != vk.Success {
		return core.NoSuitableDevicef("vkEnumeratePhysicalDevices failed with %s", ResultString(res))
	}

	for _, device := range devices {
		indices, err := findQueueFamilies(device, ctx.Surface)
		if err != nil {
			return err
		}
		if !indices.Complete() {
			continue
		}

		available, err := enumerateDeviceExtensions(device)
		if err != nil {
			return err
		}
		if !requiredExtensionsSupported(available, requiredDeviceExtensions) {
			core.LogDebug("adapter lacks a required extension, skipping")
			continue
		}

		support, err := QuerySwapchainSupport(device, ctx.Surface)
		if err != nil {
			return err
		}
		if len(support.Formats) == 0 || len(support.PresentModes) == 0 {
			core.LogDebug("adapter has no usable surface format or present mode, skipping")
			continue
		}

		properties := vk.PhysicalDeviceProperties{}
		vk.GetPhysicalDeviceProperties(device, &properties)
		properties.Deref()

		core.LogInfo("suitable device found: '%s'", byteArrayToString(properties.DeviceName[:]))
		switch properties.DeviceType {
		case vk.PhysicalDeviceTypeIntegratedGpu:
			core.LogInfo("GPU type is Integrated.")
		case vk.PhysicalDeviceTypeDiscreteGpu:
			core.LogInfo("GPU type is Discrete.")
		case vk.PhysicalDeviceTypeVirtualGpu:
			core.LogInfo("GPU type is Virtual.")
		case vk.PhysicalDeviceTypeCpu:
			core.LogInfo("GPU type is CPU.")
		default:
			core.LogInfo("GPU type is Unknown.")
		}
		core.LogInfo(
			"driver version: %d.%d.%d",
			vk.Version.Major(vk.Version(properties.DriverVersion)),
			vk.Version.Minor(vk.Version(properties.DriverVersion)),
			vk.Version.Patch(vk.Version(properties.DriverVersion)),
		)
		core.LogInfo("graphics family index: %d, present family index: %d", indices.Graphics, indices.Present)

		ctx.Device = &Device{
			PhysicalDevice:   device,
			QueueFamilies:    indices,
			SwapchainSupport: support,
			Properties:       properties,
		}
		return nil
	}

	return core.NoSuitableDevicef("no suitable device: %d adapter(s) enumerated, none qualified", deviceCount)
}

// DeviceCreate builds the logical device from the selected adapter:
// one queue-create request per distinct family at priority 1.0, the
// fixed extension set, and a default feature set. Queue handles are
// fetched immediately after creation.
func DeviceCreate(ctx *Context) error {
	core.LogInfo("creating logical device...")
	device := ctx.Device

	queuePriority := []float32{1.0}
	distinct := device.QueueFamilies.Distinct()
	queueCreateInfos := make([]vk.DeviceQueueCreateInfo, len(distinct))
	for i, family := range distinct {
		queueCreateInfos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: queuePriority,
		}
	}

	// No optional features requested.
	deviceFeatures := vk.PhysicalDeviceFeatures{}

	extensions := append([]string{}, requiredDeviceExtensions...)
	if runtime.GOOS == "darwin" {
		available, err := enumerateDeviceExtensions(device.PhysicalDevice)
		if err != nil {
			return err
		}
		if requiredExtensionsSupported(available, []string{"VK_KHR_portability_subset"}) {
			core.LogInfo("adding required extension 'VK_KHR_portability_subset'")
			extensions = append(extensions, "VK_KHR_portability_subset")
		}
	}

	deviceCreateInfo := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueCreateInfos)),
		PQueueCreateInfos:       queueCreateInfos,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{deviceFeatures},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: SafeStrings(extensions),
	}

	var logicalDevice vk.Device
	if res := vk.CreateDevice(device.PhysicalDevice, &deviceCreateInfo, ctx.Allocator, &logicalDevice); res != vk.Success {
		return core.ResourceCreationFailedf("vkCreateDevice failed with %s", ResultString(res))
	}
	device.LogicalDevice = logicalDevice
	core.LogInfo("logical device created.")

	vk.GetDeviceQueue(device.LogicalDevice, uint32(device.QueueFamilies.Graphics), 0, &device.GraphicsQueue)
	if device.QueueFamilies.Shared() {
		device.PresentQueue = device.GraphicsQueue
	} else {
		vk.GetDeviceQueue(device.LogicalDevice, uint32(device.QueueFamilies.Present), 0, &device.PresentQueue)
	}
	core.LogInfo("queues obtained.")

	return nil
}

func DeviceDestroy(ctx *Context) {
	device := ctx.Device
	if device == nil {
		return
	}

	device.GraphicsQueue = nil
	device.PresentQueue = nil

	core.LogDebug("destroying logical device...")
	if device.LogicalDevice != nil {
		vk.DestroyDevice(device.LogicalDevice, ctx.Allocator)
		device.LogicalDevice = nil
	}

	// Physical devices are not destroyed.
	device.PhysicalDevice = nil
	device.SwapchainSupport = SwapchainSupportInfo{}
	device.QueueFamilies = NewQueueFamilyIndices()
}
