package trigger

import (
	"fmt"
	"strings"
	"testing"

	"scrollfx/pkg/css"
	"scrollfx/pkg/dom"
	"scrollfx/pkg/observe"
)

// newPage builds an 800x600 window over a document containing a 1000px
// spacer followed by the target, so the target starts below the fold.
func newPage(t *testing.T, targetHeight string) (*observe.Window, *dom.Node) {
	t.Helper()
	doc := dom.NewDocument()
	spacer := dom.NewElement("div")
	spacer.SetStyleProperty("height", "1000px")
	doc.Root.AddChild(spacer)

	target := dom.NewElement("section")
	if targetHeight != "" {
		target.SetStyleProperty("height", targetHeight)
	}
	doc.Root.AddChild(target)

	return observe.NewWindow(doc, 800, 600), target
}

func quietConfig(cfg Config) Config {
	if cfg.Allocator == nil {
		cfg.Allocator = NewAllocator("t")
	}
	if cfg.Warn == nil {
		cfg.Warn = func(string, ...any) {}
	}
	return cfg
}

func attach(t *testing.T, win *observe.Window, target *dom.Node, cfg Config) *Attachment {
	t.Helper()
	return Attach(win, target, quietConfig(cfg))
}

func sentinelOf(t *testing.T, a *Attachment) *dom.Node {
	t.Helper()
	wrapper := a.Target().Parent
	if wrapper == nil || !wrapper.HasAttribute(AttrWrapper) {
		t.Fatal("target is not wrapped")
	}
	for _, child := range wrapper.Children {
		if child != a.Target() && child.HasAttribute(AttrSentinel) {
			return child
		}
	}
	t.Fatal("no sentinel inside wrapper")
	return nil
}

func TestAttachNilTargetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Attach(nil target) must panic")
		}
	}()
	Attach(nil, nil, Config{})
}

func TestAttachWritesTargetAttributes(t *testing.T) {
	win, target := newPage(t, "120px")
	a := attach(t, win, target, Config{Effect: "fade-up", Duration: 400, Delay: 100, ID: "hero"})

	if got, _ := target.GetAttribute(AttrEffect); got != "fade-up" {
		t.Errorf("%s = %q, want %q", AttrEffect, got, "fade-up")
	}
	if got, _ := target.GetAttribute(AttrID); got != "hero" {
		t.Errorf("%s = %q, want %q", AttrID, got, "hero")
	}
	if got := target.StyleProperty(PropDuration); got != "400ms" {
		t.Errorf("%s = %q, want %q", PropDuration, got, "400ms")
	}
	if got := target.StyleProperty(PropDelay); got != "100ms" {
		t.Errorf("%s = %q, want %q", PropDelay, got, "100ms")
	}
	if a.ID() != "hero" {
		t.Errorf("ID() = %q, want %q", a.ID(), "hero")
	}
}

func TestSentinelPositioning(t *testing.T) {
	for _, offset := range []int{-200, -50, 0, 30, 500} {
		win, target := newPage(t, "120px")
		a := attach(t, win, target, Config{Offset: offset})

		want := 120 + float64(offset)
		if a.TriggerY() != want {
			t.Errorf("offset %d: TriggerY = %v, want %v", offset, a.TriggerY(), want)
		}
		s := sentinelOf(t, a)
		top, ok := css.ParseLength(s.StyleProperty("top"))
		if !ok || top != want {
			t.Errorf("offset %d: sentinel top = %q, want %vpx", offset, s.StyleProperty("top"), want)
		}
	}
}

func TestSentinelZeroExtentTarget(t *testing.T) {
	win, target := newPage(t, "")
	a := attach(t, win, target, Config{Offset: 25})
	if a.TriggerY() != 25 {
		t.Errorf("TriggerY = %v, want 25 (0 extent + offset)", a.TriggerY())
	}
}

func TestSentinelIgnoresTransform(t *testing.T) {
	win, target := newPage(t, "120px")
	target.SetStyleProperty("transform", "scale(3)")
	a := attach(t, win, target, Config{})
	if a.TriggerY() != 120 {
		t.Errorf("TriggerY = %v, want 120 (transform must not distort)", a.TriggerY())
	}
}

func TestSentinelAlwaysCarriesID(t *testing.T) {
	win, target := newPage(t, "120px")
	a := attach(t, win, target, Config{}) // non-debug
	s := sentinelOf(t, a)
	if got, _ := s.GetAttribute(AttrSentinel); got != a.ID() {
		t.Errorf("sentinel id attr = %q, want %q", got, a.ID())
	}
	if s.StyleProperty("visibility") != "hidden" {
		t.Error("non-debug sentinel must be hidden")
	}
	if s.StyleProperty("pointer-events") != "none" {
		t.Error("sentinel must be inert to pointer interaction")
	}
}

func TestDebugSentinelBand(t *testing.T) {
	win, target := newPage(t, "120px")
	a := attach(t, win, target, Config{Debug: true, DebugColor: "#00ff00", DebugLabel: "hero band"})
	s := sentinelOf(t, a)

	if s.StyleProperty("background") != "#00ff00" {
		t.Errorf("debug band color = %q", s.StyleProperty("background"))
	}
	if s.StyleProperty("visibility") == "hidden" {
		t.Error("debug sentinel must be visible")
	}
	if got := s.TextContent(); got != "hero band" {
		t.Errorf("debug label = %q, want %q", got, "hero band")
	}
}

func TestDebugSentinelDefaultLabelAndColor(t *testing.T) {
	win, target := newPage(t, "120px")
	a := attach(t, win, target, Config{Debug: true})
	s := sentinelOf(t, a)
	if got := s.TextContent(); got != a.ID() {
		t.Errorf("default debug label = %q, want id %q", got, a.ID())
	}
	if s.StyleProperty("background") != DefaultDebugColor {
		t.Errorf("default debug color = %q, want %q", s.StyleProperty("background"), DefaultDebugColor)
	}
}

func TestAttachTriggersImmediatelyWhenSentinelVisible(t *testing.T) {
	doc := dom.NewDocument()
	target := dom.NewElement("section")
	target.SetStyleProperty("height", "120px")
	doc.Root.AddChild(target)
	win := observe.NewWindow(doc, 800, 600)

	a := attach(t, win, target, Config{})
	if !a.Active() {
		t.Error("sentinel inside the initial viewport should trigger at attach")
	}
	if !target.HasClass(StateClass) {
		t.Error("state marker should be applied")
	}
}

func TestOnceModeAttachTimeTriggerIsTerminal(t *testing.T) {
	// Target above the fold, spacer below so scrolling can leave it.
	doc := dom.NewDocument()
	target := dom.NewElement("section")
	target.SetStyleProperty("height", "120px")
	doc.Root.AddChild(target)
	spacer := dom.NewElement("div")
	spacer.SetStyleProperty("height", "1000px")
	doc.Root.AddChild(spacer)
	win := observe.NewWindow(doc, 800, 600)

	calls := 0
	a := attach(t, win, target, Config{OnVisible: func(*dom.Node) { calls++ }})
	if !a.Active() || calls != 1 {
		t.Fatalf("attach-time trigger: Active = %v, calls = %d, want true, 1", a.Active(), calls)
	}
	if a.handle.connected {
		t.Fatal("watcher must be disconnected after a once-mode trigger at attach")
	}

	// Flipping repeat on afterwards must not resurrect the terminal state.
	repeat := true
	a.Update(Patch{Repeat: &repeat})
	win.ScrollTo(win.MaxScroll())
	win.ScrollTo(0)
	if calls != 1 {
		t.Errorf("OnVisible calls = %d, want exactly 1", calls)
	}
	if !target.HasClass(StateClass) {
		t.Error("marker must persist through the terminal state")
	}
}

func TestOnceModeUpdateTriggerIsTerminal(t *testing.T) {
	win, target := newPage(t, "120px")
	calls := 0
	a := attach(t, win, target, Config{OnVisible: func(*dom.Node) { calls++ }})
	if a.Active() {
		t.Fatal("target below the fold should not trigger at attach")
	}

	// Offset -600 pulls the sentinel to doc y 520, inside the viewport, so
	// the swapped-in sentinel triggers during Update itself.
	offset := -600
	a.Update(Patch{Offset: &offset})
	if !a.Active() || calls != 1 {
		t.Fatalf("update-time trigger: Active = %v, calls = %d, want true, 1", a.Active(), calls)
	}
	if a.handle.connected {
		t.Fatal("watcher must be disconnected after a once-mode trigger during a sentinel swap")
	}

	win.ScrollTo(win.MaxScroll())
	win.ScrollTo(0)
	if calls != 1 {
		t.Errorf("OnVisible calls = %d, want exactly 1", calls)
	}
}

func TestOnceModeTerminal(t *testing.T) {
	win, target := newPage(t, "120px")
	calls := 0
	attach(t, win, target, Config{OnVisible: func(n *dom.Node) {
		calls++
		if n != target {
			t.Error("callback should receive the target")
		}
	}})

	// Sentinel sits at doc y 1120; viewport bottom passes it at scroll > 520.
	win.ScrollTo(560)
	if !target.HasClass(StateClass) {
		t.Fatal("state marker should appear on first crossing")
	}
	if calls != 1 {
		t.Fatalf("OnVisible calls = %d, want 1", calls)
	}

	// Leaving and re-entering must change nothing in once mode.
	win.ScrollTo(0)
	if !target.HasClass(StateClass) {
		t.Error("once mode: marker must persist after leaving")
	}
	win.ScrollTo(560)
	win.ScrollTo(0)
	win.ScrollTo(560)
	if calls != 1 {
		t.Errorf("OnVisible calls = %d, want exactly 1", calls)
	}
}

func TestRepeatModeOscillation(t *testing.T) {
	win, target := newPage(t, "120px")
	calls := 0
	attach(t, win, target, Config{Repeat: true, OnVisible: func(*dom.Node) { calls++ }})

	for i := 0; i < 3; i++ {
		win.ScrollTo(560)
		if !target.HasClass(StateClass) {
			t.Fatalf("cycle %d: marker should be present while intersecting", i)
		}
		win.ScrollTo(0)
		if target.HasClass(StateClass) {
			t.Fatalf("cycle %d: marker should be removed after leaving", i)
		}
		if target.HasAttribute("class") {
			t.Fatalf("cycle %d: removing the only class should drop the attribute", i)
		}
	}
	if calls != 3 {
		t.Errorf("OnVisible calls = %d, want 3 (once per entry)", calls)
	}
}

func TestDestroyIdempotent(t *testing.T) {
	win, target := newPage(t, "120px")
	parent := target.Parent
	a := attach(t, win, target, Config{})

	for i := 0; i < 3; i++ {
		a.Destroy()
	}
	if !a.Destroyed() {
		t.Fatal("Destroyed() should report true")
	}
	if target.Parent != parent {
		t.Error("target should be restored to its original parent")
	}
	if target.IndexInParent() != 1 {
		t.Errorf("target index = %d, want 1 (after the spacer)", target.IndexInParent())
	}
	for _, n := range parent.Children {
		if n.HasAttribute(AttrWrapper) {
			t.Error("no wrapper may remain after destroy")
		}
	}
}

func TestDestroyAfterExternalRemoval(t *testing.T) {
	win, target := newPage(t, "120px")
	a := attach(t, win, target, Config{})

	// External code rips the whole wrapper out of the document.
	wrapper := target.Parent
	wrapper.Parent.RemoveChild(wrapper)

	a.Destroy() // must not panic
	a.Destroy()
}

func TestDestroyFromVisibilityCallback(t *testing.T) {
	win, target := newPage(t, "120px")
	var a *Attachment
	a = attach(t, win, target, Config{Repeat: true, OnVisible: func(*dom.Node) {
		a.Destroy()
	}})

	win.ScrollTo(560) // triggers, destroys from within the callback
	if !a.Destroyed() {
		t.Fatal("attachment should be destroyed")
	}
	if target.Parent == nil || target.Parent.HasAttribute(AttrWrapper) {
		t.Error("target should be unwrapped")
	}
	// Further scrolling must be inert.
	win.ScrollTo(0)
	win.ScrollTo(560)
}

func TestUniqueIdentifiers(t *testing.T) {
	alloc := NewAllocator("page")
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		win, target := newPage(t, "50px")
		a := attach(t, win, target, Config{Allocator: alloc})
		if seen[a.ID()] {
			t.Fatalf("duplicate id %q", a.ID())
		}
		seen[a.ID()] = true
		if got, _ := target.GetAttribute(AttrID); got != a.ID() {
			t.Errorf("target id attr = %q, want %q", got, a.ID())
		}
	}
}

func TestInvalidEffectFallsBack(t *testing.T) {
	win, target := newPage(t, "120px")
	var warned []string
	a := Attach(win, target, Config{
		Effect:    "sparkle",
		Allocator: NewAllocator("t"),
		Warn: func(format string, args ...any) {
			warned = append(warned, fmt.Sprintf(format, args...))
		},
	})

	if a.Effect() != "fade" {
		t.Errorf("Effect() = %q, want fallback %q", a.Effect(), "fade")
	}
	if got, _ := target.GetAttribute(AttrEffect); got != "fade" {
		t.Errorf("%s = %q, want %q", AttrEffect, got, "fade")
	}
	if len(warned) != 1 || !strings.Contains(warned[0], "sparkle") {
		t.Errorf("expected one warning naming the bad effect, got %v", warned)
	}
}

func TestInertAttachmentOutsideInteractiveContext(t *testing.T) {
	target := dom.NewElement("section")
	a := Attach(nil, target, Config{Effect: "fade-up"})

	if !a.Inert() {
		t.Fatal("nil window should yield an inert attachment")
	}
	if target.HasAttribute(AttrEffect) {
		t.Error("inert attach must not touch the target")
	}
	if target.Parent != nil {
		t.Error("inert attach must not wrap the target")
	}
	// Both operations are safe no-ops.
	off := 10
	a.Update(Patch{Offset: &off})
	a.Destroy()
	a.Destroy()
}

func TestUpdateEffectKeepsSentinel(t *testing.T) {
	win, target := newPage(t, "120px")
	a := attach(t, win, target, Config{Effect: "fade"})
	before := sentinelOf(t, a)

	eff := "zoom-in"
	dur := 250
	a.Update(Patch{Effect: &eff, Duration: &dur})

	if got, _ := target.GetAttribute(AttrEffect); got != "zoom-in" {
		t.Errorf("%s = %q, want %q", AttrEffect, got, "zoom-in")
	}
	if got := target.StyleProperty(PropDuration); got != "250ms" {
		t.Errorf("%s = %q, want %q", PropDuration, got, "250ms")
	}
	if sentinelOf(t, a) != before {
		t.Error("effect/duration update must not regenerate the sentinel")
	}
}

func TestUpdateOffsetSwapsSentinel(t *testing.T) {
	win, target := newPage(t, "120px")
	a := attach(t, win, target, Config{})
	before := sentinelOf(t, a)

	off := -50
	a.Update(Patch{Offset: &off})

	after := sentinelOf(t, a)
	if after == before {
		t.Fatal("offset update must swap the sentinel")
	}
	if a.TriggerY() != 70 {
		t.Errorf("TriggerY = %v, want 70", a.TriggerY())
	}
	if got, _ := after.GetAttribute(AttrSentinel); got != a.ID() {
		t.Error("replacement sentinel must keep the stable identifier")
	}
	wrapper := target.Parent
	count := 0
	for _, c := range wrapper.Children {
		if c.HasAttribute(AttrSentinel) {
			count++
		}
	}
	if count != 1 {
		t.Errorf("exactly one live sentinel expected, found %d", count)
	}
}

func TestUpdateZeroDurationRemovesProperty(t *testing.T) {
	win, target := newPage(t, "120px")
	a := attach(t, win, target, Config{Duration: 400})
	zero := 0
	a.Update(Patch{Duration: &zero})
	if got := target.StyleProperty(PropDuration); got != "" {
		t.Errorf("%s = %q, want removed", PropDuration, got)
	}
}

func TestResizeRepositionsSentinel(t *testing.T) {
	win, target := newPage(t, "120px")
	a := attach(t, win, target, Config{Offset: -20})
	if a.TriggerY() != 100 {
		t.Fatalf("TriggerY = %v, want 100", a.TriggerY())
	}

	target.SetStyleProperty("height", "300px")
	win.Reflow()

	if a.TriggerY() != 280 {
		t.Errorf("TriggerY after resize = %v, want 280", a.TriggerY())
	}
	s := sentinelOf(t, a)
	if top, _ := css.ParseLength(s.StyleProperty("top")); top != 280 {
		t.Errorf("sentinel top after resize = %v, want 280", top)
	}
}

func TestResizeAfterOnceTriggerStaysTerminal(t *testing.T) {
	win, target := newPage(t, "120px")
	calls := 0
	attach(t, win, target, Config{OnVisible: func(*dom.Node) { calls++ }})

	win.ScrollTo(560) // trigger (terminal)
	target.SetStyleProperty("height", "10px")
	win.Reflow() // regenerates the sentinel inside the viewport

	win.ScrollTo(0)
	win.ScrollTo(560)
	if calls != 1 {
		t.Errorf("OnVisible calls = %d, want 1 despite resize after trigger", calls)
	}
	if !target.HasClass(StateClass) {
		t.Error("marker must persist")
	}
}

// Full scenario from the engine contract: a 120px target with offset -50 in
// repeat mode triggers at 70px into its wrapper, oscillates with scroll, and
// destroy restores the document.
func TestScenarioOffsetRepeatDestroy(t *testing.T) {
	win, target := newPage(t, "120px")
	spacer := win.Document().Root.Children[0]

	a := attach(t, win, target, Config{Offset: -50, Repeat: true})
	if a.TriggerY() != 70 {
		t.Fatalf("TriggerY = %v, want 70", a.TriggerY())
	}

	win.ScrollTo(560)
	if !target.HasClass(StateClass) {
		t.Fatal("marker should be present after intersecting event")
	}
	win.ScrollTo(0)
	if target.HasClass(StateClass) {
		t.Fatal("marker should be absent after leaving")
	}

	a.Destroy()
	root := win.Document().Root
	if len(root.Children) != 2 || root.Children[0] != spacer || root.Children[1] != target {
		t.Error("destroy should restore the target as the spacer's sibling")
	}
}
