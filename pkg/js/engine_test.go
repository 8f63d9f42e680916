package js

import (
	"bytes"
	"strings"
	"testing"

	"scrollfx/pkg/dom"
	"scrollfx/pkg/observe"
	"scrollfx/pkg/trigger"
)

// newTestWindow parses the page and lays it out in an 800x600 viewport.
func newTestWindow(t *testing.T, page string) *observe.Window {
	t.Helper()
	doc, err := dom.Parse(page)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return observe.NewWindow(doc, 800, 600)
}

const triggerPage = `
	<div style="height: 1000px;"></div>
	<section id="hero" style="height: 120px;">headline</section>
	<script>
		scrollfx.attach(document.getElementById("hero"), {effect: "fade-up", repeat: true});
	</script>
`

func TestAttachFromScript(t *testing.T) {
	win := newTestWindow(t, triggerPage)
	engine := New(win)
	if err := engine.Execute(); err != nil {
		t.Fatal(err)
	}

	hero := win.Document().GetElementByID("hero")
	if got, _ := hero.GetAttribute(trigger.AttrEffect); got != "fade-up" {
		t.Errorf("%s = %q, want %q", trigger.AttrEffect, got, "fade-up")
	}
	if hero.Parent == nil || !hero.Parent.HasAttribute(trigger.AttrWrapper) {
		t.Error("target should be wrapped after attach")
	}
}

func TestScrollCrossesTrigger(t *testing.T) {
	win := newTestWindow(t, triggerPage)
	engine := New(win)
	if err := engine.Execute(); err != nil {
		t.Fatal(err)
	}

	if _, err := engine.Run(`
		window.scrollTo(600);
		var el = document.getElementById("hero");
		if (!el.classList.contains("scrollfx-visible")) throw new Error("class missing after scroll");
		window.scrollTo(0);
		if (el.classList.contains("scrollfx-visible")) throw new Error("class should clear in repeat mode");
	`); err != nil {
		t.Fatal(err)
	}
}

func TestScrollYReflectsClampedPosition(t *testing.T) {
	win := newTestWindow(t, `<div style="height: 1000px;"></div>`)
	engine := New(win)
	if _, err := engine.Run(`
		window.scrollTo(99999);
		if (window.scrollY !== 400) throw new Error("scrollY = " + window.scrollY + ", want 400");
		window.scrollTo(-50);
		if (window.scrollY !== 0) throw new Error("scrollY = " + window.scrollY + ", want 0");
	`); err != nil {
		t.Fatal(err)
	}
}

func TestOnVisibleCallback(t *testing.T) {
	win := newTestWindow(t, `
		<div style="height: 1000px;"></div>
		<section id="hero" style="height: 120px;"></section>
	`)
	engine := New(win)
	if _, err := engine.Run(`
		var seen = [];
		scrollfx.attach(document.getElementById("hero"), {
			onVisible: function(el) { seen.push(el.id); }
		});
		window.scrollTo(600);
		if (seen.length !== 1) throw new Error("callback count = " + seen.length);
		if (seen[0] !== "hero") throw new Error("callback element = " + seen[0]);
	`); err != nil {
		t.Fatal(err)
	}
}

func TestHandleUpdateAndDestroy(t *testing.T) {
	win := newTestWindow(t, `
		<div style="height: 1000px;"></div>
		<section id="hero" style="height: 120px;"></section>
	`)
	engine := New(win)
	if _, err := engine.Run(`
		var el = document.getElementById("hero");
		var h = scrollfx.attach(el, {offset: 0});
		if (h.triggerY() !== 120) throw new Error("triggerY = " + h.triggerY());
		h.update({offset: -50});
		if (h.triggerY() !== 70) throw new Error("triggerY after update = " + h.triggerY());
		h.destroy();
		h.destroy();
	`); err != nil {
		t.Fatal(err)
	}

	hero := win.Document().GetElementByID("hero")
	if hero.Parent.HasAttribute(trigger.AttrWrapper) {
		t.Error("destroy should unwrap the target")
	}
}

func TestUnknownEffectWarns(t *testing.T) {
	win := newTestWindow(t, `<section id="hero" style="height: 120px;"></section>`)
	var out, errBuf bytes.Buffer
	engine := New(win, WithOutput(&out, &errBuf))
	if _, err := engine.Run(`
		var h = scrollfx.attach(document.getElementById("hero"), {effect: "sparkle"});
		if (h.effect !== "fade") throw new Error("effect = " + h.effect);
	`); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errBuf.String(), "sparkle") {
		t.Errorf("warning should name the unknown effect, got %q", errBuf.String())
	}
}

func TestAttachNonElementThrows(t *testing.T) {
	win := newTestWindow(t, `<p>text</p>`)
	engine := New(win)
	if _, err := engine.Run(`scrollfx.attach("not an element");`); err == nil {
		t.Fatal("expected a type error")
	}
}

func TestEffectsListed(t *testing.T) {
	win := newTestWindow(t, `<p>text</p>`)
	engine := New(win)
	if _, err := engine.Run(`
		if (scrollfx.effects.length === 0) throw new Error("no effects listed");
		if (scrollfx.effects.indexOf("fade") < 0) throw new Error("fade missing");
	`); err != nil {
		t.Fatal(err)
	}
}

func TestConsoleLogWritesToOutput(t *testing.T) {
	win := newTestWindow(t, `<p>text</p>`)
	var out, errBuf bytes.Buffer
	engine := New(win, WithOutput(&out, &errBuf))
	if _, err := engine.Run(`console.log("hello", 42);`); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "hello 42\n" {
		t.Errorf("console.log output = %q", got)
	}
}

func TestDatasetProxy(t *testing.T) {
	win := newTestWindow(t, `<div id="box" data-fx-offset="-50">box</div>`)
	engine := New(win)
	if _, err := engine.Run(`
		var el = document.getElementById("box");
		if (el.dataset.fxOffset !== "-50") throw new Error("dataset read = " + el.dataset.fxOffset);
		el.dataset.fxLabel = "hero";
	`); err != nil {
		t.Fatal(err)
	}

	box := win.Document().GetElementByID("box")
	if val, _ := box.GetAttribute("data-fx-label"); val != "hero" {
		t.Errorf("data-fx-label = %q, want %q", val, "hero")
	}
}

func TestStyleProxyCamelCase(t *testing.T) {
	win := newTestWindow(t, `<div id="box">box</div>`)
	engine := New(win)
	if _, err := engine.Run(`
		var el = document.getElementById("box");
		el.style.backgroundColor = "yellow";
		el.style.fontSize = "20px";
	`); err != nil {
		t.Fatal(err)
	}

	box := win.Document().GetElementByID("box")
	if got := box.StyleProperty("background-color"); got != "yellow" {
		t.Errorf("background-color = %q, want yellow", got)
	}
	if got := box.StyleProperty("font-size"); got != "20px" {
		t.Errorf("font-size = %q, want 20px", got)
	}
}

func TestScriptError(t *testing.T) {
	win := newTestWindow(t, `<p>text</p><script>throw new Error("boom");</script>`)
	engine := New(win)
	if err := engine.Execute(); err == nil {
		t.Fatal("expected error from script")
	}
}

func TestCamelKebabConversion(t *testing.T) {
	tests := []struct {
		camel, kebab string
	}{
		{"color", "color"},
		{"backgroundColor", "background-color"},
		{"fontSize", "font-size"},
		{"borderTopWidth", "border-top-width"},
	}
	for _, tt := range tests {
		if got := camelToKebab(tt.camel); got != tt.kebab {
			t.Errorf("camelToKebab(%q) = %q, want %q", tt.camel, got, tt.kebab)
		}
		if got := kebabToCamel(tt.kebab); got != tt.camel {
			t.Errorf("kebabToCamel(%q) = %q, want %q", tt.kebab, got, tt.camel)
		}
	}
	if got := camelToKebab("cssFloat"); got != "float" {
		t.Errorf("camelToKebab(cssFloat) = %q, want float", got)
	}
}
