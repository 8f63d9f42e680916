package trigger

import (
	"testing"

	"scrollfx/pkg/dom"
)

func TestWrapUnwrapRoundTrip(t *testing.T) {
	parent := dom.NewElement("section")
	before := dom.NewElement("header")
	target := dom.NewElement("div")
	after := dom.NewElement("footer")
	parent.AddChild(before)
	parent.AddChild(target)
	parent.AddChild(after)

	wrapper := wrapTarget(target)

	if wrapper.Parent != parent || wrapper.IndexInParent() != 1 {
		t.Fatal("wrapper should occupy the target's slot")
	}
	if target.Parent != wrapper {
		t.Fatal("target should live inside the wrapper")
	}
	if wrapper.StyleProperty("position") != "relative" {
		t.Error("wrapper must establish a positioning context")
	}
	if wrapper.StyleProperty("width") != "100%" {
		t.Error("wrapper must span the full available width")
	}

	unwrapTarget(wrapper, target)

	if len(parent.Children) != 3 {
		t.Fatalf("expected 3 children after unwrap, got %d", len(parent.Children))
	}
	if parent.Children[0] != before || parent.Children[1] != target || parent.Children[2] != after {
		t.Error("unwrap should restore the original sibling order")
	}
	if parent.Contains(wrapper) {
		t.Error("no residual wrapper node may remain")
	}
}

func TestUnwrapAfterTargetRemovedExternally(t *testing.T) {
	parent := dom.NewElement("section")
	target := dom.NewElement("div")
	parent.AddChild(target)

	wrapper := wrapTarget(target)
	wrapper.RemoveChild(target) // external code stole the target

	unwrapTarget(wrapper, target) // must not panic
	if parent.Contains(wrapper) {
		t.Error("wrapper should still be removed")
	}
}

func TestUnwrapDetachedWrapper(t *testing.T) {
	parent := dom.NewElement("section")
	target := dom.NewElement("div")
	parent.AddChild(target)

	wrapper := wrapTarget(target)
	parent.RemoveChild(wrapper) // external code removed the whole wrapper

	unwrapTarget(wrapper, target) // must not panic
	if target.Parent == wrapper {
		t.Error("target should be freed from the detached wrapper")
	}
}

func TestWrapDetachedTarget(t *testing.T) {
	target := dom.NewElement("div")
	wrapper := wrapTarget(target)
	if wrapper.Parent != nil {
		t.Error("wrapper of a detached target stays detached")
	}
	if target.Parent != wrapper {
		t.Error("target still moves inside the wrapper")
	}
	unwrapTarget(wrapper, target)
	if target.Parent != nil {
		t.Error("unwrapped detached target has no parent")
	}
}
