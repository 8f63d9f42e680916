package js

import (
	"fmt"
	"io"

	"scrollfx/pkg/dom"
	"scrollfx/pkg/effects"
	"scrollfx/pkg/observe"
	"scrollfx/pkg/trigger"

	"github.com/dop251/goja"
)

// registerWindow exposes scrolling on the global `window` object. Scroll
// changes dispatch trigger callbacks synchronously, so by the time
// window.scrollTo returns, any newly visible elements already carry their
// state class.
func registerWindow(vm *goja.Runtime, win *observe.Window) {
	vm.Set("window", vm.NewDynamicObject(&windowAccessor{vm: vm, win: win}))
}

type windowAccessor struct {
	vm  *goja.Runtime
	win *observe.Window
}

func (w *windowAccessor) Get(key string) goja.Value {
	vm := w.vm
	switch key {
	case "scrollY", "pageYOffset":
		return vm.ToValue(w.win.ScrollY())
	case "innerWidth":
		return vm.ToValue(w.win.Engine().ViewportWidth())
	case "innerHeight":
		return vm.ToValue(w.win.Engine().ViewportHeight())
	case "scrollTo":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Undefined()
			}
			// Accept both scrollTo(y) and scrollTo(x, y).
			y := call.Arguments[len(call.Arguments)-1].ToFloat()
			w.win.ScrollTo(y)
			return goja.Undefined()
		})
	case "scrollBy":
		return vm.ToValue(func(call goja.FunctionCall) goja.Value {
			if len(call.Arguments) == 0 {
				return goja.Undefined()
			}
			delta := call.Arguments[len(call.Arguments)-1].ToFloat()
			w.win.ScrollBy(delta)
			return goja.Undefined()
		})
	}
	return goja.Undefined()
}

func (w *windowAccessor) Set(key string, val goja.Value) bool { return false }

func (w *windowAccessor) Has(key string) bool {
	switch key {
	case "scrollY", "pageYOffset", "innerWidth", "innerHeight", "scrollTo", "scrollBy":
		return true
	}
	return false
}

func (w *windowAccessor) Delete(key string) bool { return false }

func (w *windowAccessor) Keys() []string {
	return []string{"scrollY", "pageYOffset", "innerWidth", "innerHeight", "scrollTo", "scrollBy"}
}

// registerScrollFX exposes the trigger API as the global `scrollfx` object:
//
//	var h = scrollfx.attach(el, {effect: "fade-up", offset: -50, repeat: true});
//	h.update({offset: 0});
//	h.destroy();
func registerScrollFX(vm *goja.Runtime, ctx *domContext, win *observe.Window, warnOut io.Writer) {
	sfx := vm.NewObject()

	sfx.Set("effects", effects.Names())
	sfx.Set("attach", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			panic(vm.NewTypeError("scrollfx.attach: element required"))
		}
		target := ctx.unwrapNode(call.Arguments[0])
		if target == nil {
			panic(vm.NewTypeError("scrollfx.attach: first argument is not an element"))
		}

		cfg := trigger.Config{
			Warn: func(format string, args ...any) {
				fmt.Fprintf(warnOut, "scrollfx: "+format+"\n", args...)
			},
		}
		if len(call.Arguments) > 1 {
			applyOptions(vm, ctx, call.Arguments[1], &cfg)
		}

		a := trigger.Attach(win, target, cfg)
		return attachmentObject(vm, a)
	})

	vm.Set("scrollfx", sfx)
}

// applyOptions copies recognized keys from a JS options object into cfg.
func applyOptions(vm *goja.Runtime, ctx *domContext, val goja.Value, cfg *trigger.Config) {
	if goja.IsNull(val) || goja.IsUndefined(val) {
		return
	}
	opts := val.ToObject(vm)

	if v := opts.Get("effect"); present(v) {
		cfg.Effect = v.String()
	}
	if v := opts.Get("duration"); present(v) {
		cfg.Duration = int(v.ToInteger())
	}
	if v := opts.Get("delay"); present(v) {
		cfg.Delay = int(v.ToInteger())
	}
	if v := opts.Get("repeat"); present(v) {
		cfg.Repeat = v.ToBoolean()
	}
	if v := opts.Get("debug"); present(v) {
		cfg.Debug = v.ToBoolean()
	}
	if v := opts.Get("offset"); present(v) {
		cfg.Offset = int(v.ToInteger())
	}
	if v := opts.Get("id"); present(v) {
		cfg.ID = v.String()
	}
	if v := opts.Get("debugColor"); present(v) {
		cfg.DebugColor = v.String()
	}
	if v := opts.Get("debugLabel"); present(v) {
		cfg.DebugLabel = v.String()
	}
	if v := opts.Get("onVisible"); present(v) {
		if fn, ok := goja.AssertFunction(v); ok {
			cfg.OnVisible = func(n *dom.Node) {
				fn(goja.Undefined(), ctx.elementProxy(n))
			}
		}
	}
}

func present(v goja.Value) bool {
	return v != nil && !goja.IsUndefined(v) && !goja.IsNull(v)
}

// attachmentObject wraps a live attachment as the JS handle returned by
// scrollfx.attach.
func attachmentObject(vm *goja.Runtime, a *trigger.Attachment) goja.Value {
	obj := vm.NewObject()
	obj.Set("id", a.ID())
	obj.Set("effect", a.Effect())
	obj.Set("active", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(a.Active())
	})
	obj.Set("triggerY", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(a.TriggerY())
	})
	obj.Set("update", func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) == 0 {
			return goja.Undefined()
		}
		a.Update(patchFromOptions(vm, call.Arguments[0]))
		return goja.Undefined()
	})
	obj.Set("destroy", func(call goja.FunctionCall) goja.Value {
		a.Destroy()
		return goja.Undefined()
	})
	return obj
}

// patchFromOptions converts a JS options object into a sparse patch: only
// keys present on the object are updated.
func patchFromOptions(vm *goja.Runtime, val goja.Value) trigger.Patch {
	var p trigger.Patch
	if goja.IsNull(val) || goja.IsUndefined(val) {
		return p
	}
	opts := val.ToObject(vm)

	if v := opts.Get("effect"); present(v) {
		s := v.String()
		p.Effect = &s
	}
	if v := opts.Get("duration"); present(v) {
		d := int(v.ToInteger())
		p.Duration = &d
	}
	if v := opts.Get("delay"); present(v) {
		d := int(v.ToInteger())
		p.Delay = &d
	}
	if v := opts.Get("repeat"); present(v) {
		b := v.ToBoolean()
		p.Repeat = &b
	}
	if v := opts.Get("debug"); present(v) {
		b := v.ToBoolean()
		p.Debug = &b
	}
	if v := opts.Get("offset"); present(v) {
		o := int(v.ToInteger())
		p.Offset = &o
	}
	if v := opts.Get("debugColor"); present(v) {
		s := v.String()
		p.DebugColor = &s
	}
	if v := opts.Get("debugLabel"); present(v) {
		s := v.String()
		p.DebugLabel = &s
	}
	return p
}
