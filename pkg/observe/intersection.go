package observe

import (
	"scrollfx/pkg/dom"
	"scrollfx/pkg/layout"
)

// IntersectionEntry describes one observed crossing.
type IntersectionEntry struct {
	Target       *dom.Node
	Intersecting bool
	Rect         layout.Rect
}

// IntersectionObserver reports when observed nodes enter or leave the
// viewport band. An entry is delivered immediately on Observe with the
// current state, then again on every change.
type IntersectionObserver struct {
	win      *Window
	callback func(IntersectionEntry)

	targets map[*dom.Node]bool // last reported state
	order   []*dom.Node        // dispatch in observation order
	active  bool
}

// NewIntersectionObserver creates an observer bound to this window. It
// observes nothing until Observe is called.
func (w *Window) NewIntersectionObserver(cb func(IntersectionEntry)) *IntersectionObserver {
	o := &IntersectionObserver{
		win:      w,
		callback: cb,
		targets:  make(map[*dom.Node]bool),
		active:   true,
	}
	w.intersections = append(w.intersections, o)
	return o
}

// Observe starts monitoring a node and immediately delivers an entry with
// its current state, mirroring the platform primitive's initial callback.
func (o *IntersectionObserver) Observe(n *dom.Node) {
	if !o.active || n == nil {
		return
	}
	if _, ok := o.targets[n]; ok {
		return
	}
	state := o.win.intersects(n)
	o.targets[n] = state
	o.order = append(o.order, n)
	o.dispatch(n, state)
}

// Unobserve stops monitoring a node.
func (o *IntersectionObserver) Unobserve(n *dom.Node) {
	if _, ok := o.targets[n]; !ok {
		return
	}
	delete(o.targets, n)
	for i, cur := range o.order {
		if cur == n {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Disconnect stops all observation and detaches from the window. The
// primitive tolerates repeat calls, but callers own their connected state
// and should not rely on that.
func (o *IntersectionObserver) Disconnect() {
	if !o.active {
		return
	}
	o.active = false
	o.targets = make(map[*dom.Node]bool)
	o.order = nil
	o.win.removeIntersectionObserver(o)
}

// check re-evaluates all targets and dispatches entries for changes only.
func (o *IntersectionObserver) check() {
	targets := make([]*dom.Node, len(o.order))
	copy(targets, o.order)
	for _, n := range targets {
		if !o.active {
			return
		}
		last, ok := o.targets[n]
		if !ok {
			continue // unobserved re-entrantly
		}
		now := o.win.intersects(n)
		if now != last {
			o.targets[n] = now
			o.dispatch(n, now)
		}
	}
}

func (o *IntersectionObserver) dispatch(n *dom.Node, intersecting bool) {
	rect, _ := o.win.Rect(n)
	o.callback(IntersectionEntry{Target: n, Intersecting: intersecting, Rect: rect})
}
