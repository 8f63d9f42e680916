// Package observe provides the host-document side of scroll triggering: a
// Window owning a document, its layout, and a scroll position, plus the
// intersection and resize observation primitives the trigger engine builds
// on.
//
// Everything is single-threaded and cooperative. Observer callbacks run
// synchronously inside ScrollTo and Reflow; they may attach or disconnect
// observers re-entrantly because dispatch always iterates over snapshots.
package observe

import (
	"scrollfx/pkg/dom"
	"scrollfx/pkg/layout"
)

// Window pairs a document with a viewport. A nil *Window is the
// non-interactive context: no observation primitives are available and
// callers are expected to degrade to inert handles.
type Window struct {
	doc    *dom.Document
	engine *layout.Engine

	scrollY float64
	rects   map[*dom.Node]layout.Rect

	intersections []*IntersectionObserver
	resizes       []*ResizeObserver
}

// NewWindow creates a window over doc and runs the initial layout pass.
func NewWindow(doc *dom.Document, viewportWidth, viewportHeight float64) *Window {
	w := &Window{
		doc:    doc,
		engine: layout.NewEngine(viewportWidth, viewportHeight),
	}
	w.rects = w.engine.Layout(doc)
	return w
}

func (w *Window) Document() *dom.Document { return w.doc }
func (w *Window) Engine() *layout.Engine  { return w.engine }
func (w *Window) ScrollY() float64        { return w.scrollY }

// Rect returns the last laid-out rect for a node.
func (w *Window) Rect(n *dom.Node) (layout.Rect, bool) {
	r, ok := w.rects[n]
	return r, ok
}

// ContentHeight returns the total laid-out height of the document.
func (w *Window) ContentHeight() float64 {
	max := 0.0
	for _, r := range w.rects {
		if r.Bottom() > max {
			max = r.Bottom()
		}
	}
	return max
}

// MaxScroll returns the largest meaningful scroll offset.
func (w *Window) MaxScroll() float64 {
	max := w.ContentHeight() - w.engine.ViewportHeight()
	if max < 0 {
		return 0
	}
	return max
}

// ScrollTo moves the viewport to y (clamped to the scrollable range) and
// dispatches intersection changes.
func (w *Window) ScrollTo(y float64) {
	if y < 0 {
		y = 0
	}
	if max := w.MaxScroll(); y > max {
		y = max
	}
	w.scrollY = y
	w.checkIntersections()
}

// ScrollBy adjusts the scroll position by delta pixels.
func (w *Window) ScrollBy(delta float64) {
	w.ScrollTo(w.scrollY + delta)
}

// Reflow re-runs layout after document mutations, reports size changes to
// resize observers, then rechecks intersections. Resize callbacks run before
// intersection callbacks so repositioned sentinels are observed at their new
// location within the same pass.
func (w *Window) Reflow() {
	w.rects = w.engine.Layout(w.doc)
	w.checkResizes()
	w.checkIntersections()
}

// intersects reports whether the node's rect overlaps the viewport band
// [scrollY, scrollY+height). Detached nodes never intersect.
func (w *Window) intersects(n *dom.Node) bool {
	r, ok := w.rects[n]
	if !ok {
		return false
	}
	top := w.scrollY
	bottom := w.scrollY + w.engine.ViewportHeight()
	// A zero-height sentinel intersects when its edge is inside the band.
	if r.Height == 0 {
		return r.Y >= top && r.Y < bottom
	}
	return r.Y < bottom && r.Bottom() > top
}

func (w *Window) checkIntersections() {
	observers := make([]*IntersectionObserver, len(w.intersections))
	copy(observers, w.intersections)
	for _, o := range observers {
		o.check()
	}
}

func (w *Window) checkResizes() {
	observers := make([]*ResizeObserver, len(w.resizes))
	copy(observers, w.resizes)
	for _, o := range observers {
		o.check()
	}
}

func (w *Window) removeIntersectionObserver(o *IntersectionObserver) {
	for i, cur := range w.intersections {
		if cur == o {
			w.intersections = append(w.intersections[:i], w.intersections[i+1:]...)
			return
		}
	}
}

func (w *Window) removeResizeObserver(o *ResizeObserver) {
	for i, cur := range w.resizes {
		if cur == o {
			w.resizes = append(w.resizes[:i], w.resizes[i+1:]...)
			return
		}
	}
}
