package trigger

import (
	"scrollfx/pkg/dom"
	"scrollfx/pkg/observe"
)

// watchHandle owns one visibility observation. The connected flag makes
// disconnect idempotent without leaning on the primitive's own tolerance.
type watchHandle struct {
	observer  *observe.IntersectionObserver
	connected bool
}

// newWatch creates a connected handle without observing anything yet.
// Creation and start are split because Observe delivers the initial entry
// synchronously: callers must store the handle first so the callback can
// disconnect through it.
func newWatch(win *observe.Window, cb func(observe.IntersectionEntry)) *watchHandle {
	return &watchHandle{
		observer:  win.NewIntersectionObserver(cb),
		connected: true,
	}
}

// start begins the observation on n. The callback fires once immediately
// with the current state, then on every change.
func (h *watchHandle) start(n *dom.Node) {
	h.observer.Observe(n)
}

// disconnect tears down the observation. Calls after the first are no-ops.
func (h *watchHandle) disconnect() {
	if h == nil || !h.connected {
		return
	}
	h.connected = false
	h.observer.Disconnect()
}

// watchResize invokes onResize whenever the target's measured size changes.
// The returned cancel stops future notifications and is safe to call
// repeatedly.
func watchResize(win *observe.Window, target *dom.Node, onResize func()) (cancel func()) {
	o := win.NewResizeObserver(func(observe.ResizeEntry) {
		onResize()
	})
	o.Observe(target)

	cancelled := false
	return func() {
		if cancelled {
			return
		}
		cancelled = true
		o.Disconnect()
	}
}
