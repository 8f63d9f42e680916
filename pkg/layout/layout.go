// Package layout computes document-space geometry for a dom tree using a
// simplified block formatting model: block children stack vertically,
// explicit pixel heights/widths win, and absolutely positioned nodes are
// placed against their containing block.
//
// Transforms never affect the computed geometry. The measured extent is the
// layout-stable height, so a scale transform cannot distort trigger offsets
// derived from it.
package layout

import (
	"scrollfx/pkg/css"
	"scrollfx/pkg/dom"
)

// TextLineHeight is the height contributed by one text node, matching the
// default font size plus leading.
const TextLineHeight = 18.0

// Rect is a rectangular region in document space.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Bottom returns Y + Height.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Engine lays out documents within a fixed viewport.
type Engine struct {
	viewport struct {
		width  float64
		height float64
	}
}

func NewEngine(viewportWidth, viewportHeight float64) *Engine {
	e := &Engine{}
	e.viewport.width = viewportWidth
	e.viewport.height = viewportHeight
	return e
}

func (e *Engine) ViewportWidth() float64  { return e.viewport.width }
func (e *Engine) ViewportHeight() float64 { return e.viewport.height }

// Layout assigns a document-space rect to every element node.
func (e *Engine) Layout(doc *dom.Document) map[*dom.Node]Rect {
	rects := make(map[*dom.Node]Rect)
	if doc == nil || doc.Root == nil {
		return rects
	}
	e.layoutChildren(doc.Root, 0, 0, e.viewport.width, rects)
	return rects
}

// layoutChildren stacks the children of parent starting at (x, y) and
// returns the total flow height consumed.
func (e *Engine) layoutChildren(parent *dom.Node, x, y, width float64, rects map[*dom.Node]Rect) float64 {
	cursor := y
	for _, child := range parent.Children {
		if child.Type == dom.TextNode {
			cursor += TextLineHeight
			continue
		}
		if isAbsolute(child) {
			e.layoutAbsolute(child, x, y, width, rects)
			continue
		}
		cursor += marginTop(child)
		h := e.layoutBlock(child, x, cursor, width, rects)
		cursor += h + marginBottom(child)
	}
	return cursor - y
}

// layoutBlock lays out one in-flow element at (x, y) and returns its height.
func (e *Engine) layoutBlock(n *dom.Node, x, y, availWidth float64, rects map[*dom.Node]Rect) float64 {
	width := availWidth
	if w, ok := css.ParseLength(n.StyleProperty("width")); ok {
		width = w
	}

	// Children first, so an auto height wraps them; the rect is written
	// afterwards with the resolved height.
	flowHeight := e.layoutChildren(n, x, y, width, rects)

	height := flowHeight
	if h, ok := css.ParseLength(n.StyleProperty("height")); ok {
		height = h
	}
	rects[n] = Rect{X: x, Y: y, Width: width, Height: height}
	return height
}

// layoutAbsolute places a position:absolute node against its containing
// block origin (the parent flow position, passed in as y). Absolute nodes
// take no part in the flow.
func (e *Engine) layoutAbsolute(n *dom.Node, x, containerY, availWidth float64, rects map[*dom.Node]Rect) {
	top := 0.0
	if t, ok := css.ParseLength(n.StyleProperty("top")); ok {
		top = t
	}
	width := availWidth
	if w, ok := css.ParseLength(n.StyleProperty("width")); ok {
		width = w
	}
	height := 0.0
	if h, ok := css.ParseLength(n.StyleProperty("height")); ok {
		height = h
	}
	rects[n] = Rect{X: x, Y: containerY + top, Width: width, Height: height}

	// Absolutely positioned nodes are their own containing block.
	e.layoutChildren(n, x, containerY+top, width, rects)
}

// IntrinsicHeight returns the layout-stable extent of a node: the explicit
// pixel height if one is styled, otherwise the stacked height of its in-flow
// content. Works on detached subtrees. Transform styles are ignored.
func (e *Engine) IntrinsicHeight(n *dom.Node) float64 {
	if n == nil || n.Type == dom.TextNode {
		return 0
	}
	if h, ok := css.ParseLength(n.StyleProperty("height")); ok {
		return h
	}
	total := 0.0
	for _, child := range n.Children {
		if child.Type == dom.TextNode {
			total += TextLineHeight
			continue
		}
		if isAbsolute(child) {
			continue
		}
		total += marginTop(child) + e.IntrinsicHeight(child) + marginBottom(child)
	}
	return total
}

func isAbsolute(n *dom.Node) bool {
	return n.StyleProperty("position") == "absolute"
}

func marginTop(n *dom.Node) float64 {
	m, _ := css.ParseLength(n.StyleProperty("margin-top"))
	return m
}

func marginBottom(n *dom.Node) float64 {
	m, _ := css.ParseLength(n.StyleProperty("margin-bottom"))
	return m
}
