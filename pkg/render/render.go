// Package render paints a window's current state to an image: element
// backgrounds, text, debug sentinel bands, and trigger-state outlines. Its
// main use is visual inspection of sentinel placement without a browser.
package render

import (
	"image"

	"github.com/fogleman/gg"

	"scrollfx/pkg/css"
	"scrollfx/pkg/dom"
	"scrollfx/pkg/observe"
	"scrollfx/pkg/trigger"
)

type Renderer struct {
	win     *observe.Window
	context *gg.Context
}

// NewRenderer creates a renderer sized to the window's viewport.
func NewRenderer(win *observe.Window) *Renderer {
	eng := win.Engine()
	return &Renderer{
		win:     win,
		context: gg.NewContext(int(eng.ViewportWidth()), int(eng.ViewportHeight())),
	}
}

// Render paints the viewport at the window's current scroll position.
// Sentinel bands paint above everything else so they stay inspectable even
// when content overlaps them.
func (r *Renderer) Render() {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	var sentinels []*dom.Node
	r.win.Document().Root.Walk(func(n *dom.Node) bool {
		if isSentinel(n) {
			sentinels = append(sentinels, n)
		} else if !insideSentinel(n) {
			r.drawNode(n)
		}
		return true
	})
	for _, s := range sentinels {
		r.drawSentinel(s)
	}
}

func isSentinel(n *dom.Node) bool {
	return n.Type == dom.ElementNode && n.HasAttribute(trigger.AttrSentinel)
}

// insideSentinel reports whether any ancestor is a sentinel, so label text
// nodes are painted with their band rather than as document text.
func insideSentinel(n *dom.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if isSentinel(p) {
			return true
		}
	}
	return false
}

// Image returns the rendered frame.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// SavePNG writes the rendered frame to a file.
func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// viewportRect maps a node's document rect into viewport coordinates,
// reporting false when the node is laid out entirely off screen.
func (r *Renderer) viewportRect(n *dom.Node) (x, y, w, h float64, ok bool) {
	rect, found := r.win.Rect(n)
	if !found {
		return 0, 0, 0, 0, false
	}
	y = rect.Y - r.win.ScrollY()
	if y > r.win.Engine().ViewportHeight() || y+rect.Height < 0 {
		return 0, 0, 0, 0, false
	}
	return rect.X, y, rect.Width, rect.Height, true
}

func (r *Renderer) drawNode(n *dom.Node) {
	if n.Type == dom.TextNode {
		r.drawText(n)
		return
	}

	x, y, w, h, ok := r.viewportRect(n)
	if !ok {
		return
	}

	if bg := n.StyleProperty("background-color"); bg != "" {
		if color, found := css.ParseColor(bg); found && color.A > 0 {
			r.setColor(color)
			r.context.DrawRectangle(x, y, w, h)
			r.context.Fill()
		}
	}

	// Outline triggered elements so state changes show up in snapshots.
	if n.HasClass(trigger.StateClass) {
		r.context.SetRGB(0.1, 0.7, 0.2)
		r.context.SetLineWidth(2)
		r.context.DrawRectangle(x, y, w, h)
		r.context.Stroke()
	}
}

// drawText paints a text node within its parent's rect. Text nodes carry no
// rect of their own in the block model, so the parent supplies position.
func (r *Renderer) drawText(n *dom.Node) {
	if n.Text == "" || n.Parent == nil {
		return
	}
	x, y, _, _, ok := r.viewportRect(n.Parent)
	if !ok {
		return
	}
	r.context.SetRGB(0, 0, 0)
	r.context.DrawString(n.Text, x+2, y+12)
}

// drawSentinel paints debug bands in their configured color with the
// identifier label. Hidden sentinels paint nothing.
func (r *Renderer) drawSentinel(n *dom.Node) {
	if n.StyleProperty("visibility") == "hidden" {
		return
	}
	x, y, w, h, ok := r.viewportRect(n)
	if !ok {
		return
	}

	color, found := css.ParseColor(n.StyleProperty("background"))
	if !found {
		color, _ = css.ParseColor(trigger.DefaultDebugColor)
	}
	r.setColor(color)
	if h < 2 {
		h = 2
	}
	r.context.DrawRectangle(x, y, w, h)
	r.context.Fill()

	if label := n.TextContent(); label != "" {
		r.setColor(color)
		r.context.DrawString(label, x+4, y-3)
	}
}

func (r *Renderer) setColor(c css.Color) {
	r.context.SetRGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, c.A)
}
