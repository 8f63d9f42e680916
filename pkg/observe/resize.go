package observe

import "scrollfx/pkg/dom"

// ResizeEntry describes a size change of an observed node.
type ResizeEntry struct {
	Target *dom.Node
	Width  float64
	Height float64
}

// ResizeObserver reports when an observed node's laid-out size changes
// between Reflow passes. Observe records the current size as the baseline;
// the first callback fires on the first Reflow where the size differs.
type ResizeObserver struct {
	win      *Window
	callback func(ResizeEntry)

	sizes  map[*dom.Node][2]float64 // last reported width, height
	order  []*dom.Node
	active bool
}

// NewResizeObserver creates a resize observer bound to this window.
func (w *Window) NewResizeObserver(cb func(ResizeEntry)) *ResizeObserver {
	o := &ResizeObserver{
		win:      w,
		callback: cb,
		sizes:    make(map[*dom.Node][2]float64),
		active:   true,
	}
	w.resizes = append(w.resizes, o)
	return o
}

// Observe starts monitoring a node's size.
func (o *ResizeObserver) Observe(n *dom.Node) {
	if !o.active || n == nil {
		return
	}
	if _, ok := o.sizes[n]; ok {
		return
	}
	r, _ := o.win.Rect(n)
	o.sizes[n] = [2]float64{r.Width, r.Height}
	o.order = append(o.order, n)
}

// Unobserve stops monitoring a node.
func (o *ResizeObserver) Unobserve(n *dom.Node) {
	if _, ok := o.sizes[n]; !ok {
		return
	}
	delete(o.sizes, n)
	for i, cur := range o.order {
		if cur == n {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

// Disconnect stops all observation and detaches from the window.
func (o *ResizeObserver) Disconnect() {
	if !o.active {
		return
	}
	o.active = false
	o.sizes = make(map[*dom.Node][2]float64)
	o.order = nil
	o.win.removeResizeObserver(o)
}

func (o *ResizeObserver) check() {
	targets := make([]*dom.Node, len(o.order))
	copy(targets, o.order)
	for _, n := range targets {
		if !o.active {
			return
		}
		last, ok := o.sizes[n]
		if !ok {
			continue
		}
		r, _ := o.win.Rect(n)
		if r.Width != last[0] || r.Height != last[1] {
			o.sizes[n] = [2]float64{r.Width, r.Height}
			o.callback(ResizeEntry{Target: n, Width: r.Width, Height: r.Height})
		}
	}
}
