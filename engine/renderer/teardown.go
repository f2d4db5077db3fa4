package renderer

import (
	"github.com/custicle/custicle/engine/core"
)

type teardownStep struct {
	name string
	fn   func()
}

// teardownStack records destruction work in construction order and
// replays it strictly last-in-first-out. Each step runs exactly once;
// unwinding an empty stack is a no-op, so a failed construction can
// unwind whatever part of the chain it got through.
type teardownStack struct {
	steps []teardownStep
}

func (t *teardownStack) push(name string, fn func()) {
	t.steps = append(t.steps, teardownStep{name: name, fn: fn})
}

func (t *teardownStack) len() int {
	return len(t.steps)
}

func (t *teardownStack) unwind() {
	for i := len(t.steps) - 1; i >= 0; i-- {
		core.LogDebug("destroying %s...", t.steps[i].name)
		t.steps[i].fn()
	}
	t.steps = nil
}
