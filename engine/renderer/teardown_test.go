package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTeardownStackUnwindsInReverseOrder(t *testing.T) {
	stack := teardownStack{}
	order := []string{}

	stack.push("instance", func() { order = append(order, "instance") })
	stack.push("surface", func() { order = append(order, "surface") })
	stack.push("device", func() { order = append(order, "device") })
	stack.push("swapchain", func() { order = append(order, "swapchain") })

	stack.unwind()
	require.Equal(t, []string{"swapchain", "device", "surface", "instance"}, order)
}

func TestTeardownStackRunsEachStepOnce(t *testing.T) {
	stack := teardownStack{}
	calls := 0
	stack.push("instance", func() { calls++ })

	stack.unwind()
	require.Equal(t, 1, calls)
	require.Equal(t, 0, stack.len())

	// A second unwind finds nothing left to do.
	stack.unwind()
	require.Equal(t, 1, calls)
}

func TestTeardownStackEmptyUnwind(t *testing.T) {
	stack := teardownStack{}
	require.NotPanics(t, func() { stack.unwind() })
}

func TestTeardownStackPartialChain(t *testing.T) {
	// A construction that fails after two stages unwinds exactly
	// those two, newest first.
	stack := teardownStack{}
	order := []string{}

	stack.push("instance", func() { order = append(order, "instance") })
	stack.push("surface", func() { order = append(order, "surface") })

	stack.unwind()
	require.Equal(t, []string{"surface", "instance"}, order)
}
