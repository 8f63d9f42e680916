package trigger

import "scrollfx/pkg/dom"

// wrapTarget inserts a wrapper element at the target's exact position in its
// parent and reparents the target inside it. The wrapper spans the full
// available width and establishes the positioning context the sentinel's
// absolute top resolves against, without otherwise disturbing the ambient
// layout.
func wrapTarget(target *dom.Node) *dom.Node {
	wrapper := dom.NewElement("div")
	wrapper.SetAttribute(AttrWrapper, "")
	wrapper.SetStyleProperties(map[string]string{
		"position": "relative",
		"width":    "100%",
	})

	if parent := target.Parent; parent != nil {
		parent.InsertBefore(wrapper, target)
	}
	wrapper.AddChild(target)
	return wrapper
}

// unwrapTarget restores the target to the wrapper's position and removes the
// wrapper. Tolerates a target that external code already moved or removed,
// and a wrapper that is already detached.
func unwrapTarget(wrapper, target *dom.Node) {
	if wrapper == nil {
		return
	}
	parent := wrapper.Parent
	if parent != nil && target != nil && target.Parent == wrapper {
		parent.InsertBefore(target, wrapper)
	}
	if parent != nil {
		parent.RemoveChild(wrapper)
	} else if target != nil && target.Parent == wrapper {
		// Wrapper detached externally with the target still inside: free
		// the target so the caller's reference stays usable.
		wrapper.RemoveChild(target)
	}
}
