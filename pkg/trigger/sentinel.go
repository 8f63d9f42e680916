package trigger

import (
	"fmt"

	"scrollfx/pkg/dom"
	"scrollfx/pkg/layout"
)

// sentinelSpec carries everything the factory needs besides the target.
type sentinelSpec struct {
	offset int
	debug  bool
	color  string
	label  string
	id     string // empty means allocate
}

// newSentinel builds a positioned marker node for target. The trigger
// coordinate is the target's intrinsic extent plus the offset; a target with
// zero measured extent still gets a sentinel at 0 + offset. The returned
// node always carries its identifier, debug mode or not.
func newSentinel(eng *layout.Engine, target *dom.Node, spec sentinelSpec, alloc *Allocator) (*dom.Node, string) {
	id := spec.id
	if id == "" {
		id = alloc.Next()
	}

	top := eng.IntrinsicHeight(target) + float64(spec.offset)

	n := dom.NewElement("div")
	n.SetAttribute(AttrSentinel, id)
	n.SetStyleProperties(map[string]string{
		"position":       "absolute",
		"top":            fmt.Sprintf("%gpx", top),
		"left":           "0px",
		"width":          "100%",
		"pointer-events": "none",
	})

	if spec.debug {
		n.SetStyleProperties(map[string]string{
			"height":     "2px",
			"background": spec.color,
			"z-index":    "9999",
		})
		label := spec.label
		if label == "" {
			label = id
		}
		n.AppendText(label)
	} else {
		n.SetStyleProperties(map[string]string{
			"height":     "1px",
			"visibility": "hidden",
		})
	}

	return n, id
}
