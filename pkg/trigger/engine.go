// Package trigger implements sentinel-based scroll triggering: attach to an
// element and it gains a state marker class when an invisible sentinel,
// positioned relative to the element's measured extent, scrolls into the
// viewport.
//
// Each attachment owns its wrapper, sentinel, and observation exclusively.
// All work happens synchronously on the window's dispatch; there are no
// goroutines and no locks, so Destroy may be called from inside a visibility
// callback.
package trigger

import (
	"fmt"

	"scrollfx/pkg/dom"
	"scrollfx/pkg/effects"
	"scrollfx/pkg/observe"
)

type state int

const (
	stateIdle state = iota // attached, first observation not yet delivered
	stateArmed
	stateTriggered
)

// Attachment is the live state between Attach and Destroy for one target.
type Attachment struct {
	win    *observe.Window
	target *dom.Node
	cfg    Config

	effect   string // resolved effect identifier
	id       string
	wrapper  *dom.Node
	sentinel *dom.Node
	triggerY float64

	handle       *watchHandle
	cancelResize func()

	st        state
	destroyed bool
	inert     bool
}

// Attach wires scroll triggering onto target. It applies the effect
// attributes, wraps the target, creates and observes the first sentinel, and
// starts watching the target for resizes.
//
// A nil window is the non-interactive context: Attach returns an inert
// attachment whose Update and Destroy are safe no-ops. A nil target is a
// contract violation and panics.
func Attach(win *observe.Window, target *dom.Node, cfg Config) *Attachment {
	if target == nil {
		panic("trigger: Attach called with nil target")
	}

	a := &Attachment{win: win, target: target, cfg: cfg}
	if win == nil {
		a.inert = true
		return a
	}

	a.effect = a.resolveEffect(cfg.Effect)
	a.id = cfg.ID
	if a.id == "" {
		a.id = cfg.allocator().Next()
	}

	a.applyTargetAttrs()
	a.wrapper = wrapTarget(target)
	a.insertSentinel()

	// Observation starts with an immediate entry for the current state, so
	// a sentinel already inside the viewport triggers before Attach
	// returns. The handle must be in place before the observation starts:
	// the initial entry may disconnect it (once mode) or Destroy the
	// attachment.
	a.handle = newWatch(win, a.onIntersection)
	a.handle.start(a.sentinel)
	if a.destroyed {
		return a
	}
	a.cancelResize = watchResize(win, target, a.refreshSentinel)
	return a
}

// Inert reports whether the attachment was created without an interactive
// window and does nothing.
func (a *Attachment) Inert() bool { return a.inert }

// ID returns the resolved sentinel identifier ("" when inert).
func (a *Attachment) ID() string { return a.id }

// Effect returns the resolved effect identifier ("" when inert).
func (a *Attachment) Effect() string { return a.effect }

// TriggerY returns the document offset of the current sentinel within its
// wrapper: the target's measured extent plus the configured offset.
func (a *Attachment) TriggerY() float64 { return a.triggerY }

// Offset returns the configured trigger offset in pixels.
func (a *Attachment) Offset() int { return a.cfg.Offset }

// Repeat reports whether the attachment re-arms after leaving the viewport.
func (a *Attachment) Repeat() bool { return a.cfg.Repeat }

// Debug reports whether the sentinel renders as a visible band.
func (a *Attachment) Debug() bool { return a.cfg.Debug }

// Active reports whether the state marker is currently applied.
func (a *Attachment) Active() bool { return a.st == stateTriggered }

// Destroyed reports whether Destroy has run.
func (a *Attachment) Destroyed() bool { return a.destroyed }

// Target returns the attached element.
func (a *Attachment) Target() *dom.Node { return a.target }

// Update merges non-nil fields into the live configuration. Effect and
// timing changes rewrite the target's attributes with no re-observation;
// offset and debug changes regenerate the sentinel exactly as a resize
// would.
func (a *Attachment) Update(p Patch) {
	if a.destroyed || a.inert {
		return
	}

	attrsChanged := false
	sentinelChanged := false

	if p.Effect != nil {
		a.cfg.Effect = *p.Effect
		a.effect = a.resolveEffect(*p.Effect)
		attrsChanged = true
	}
	if p.Duration != nil {
		a.cfg.Duration = *p.Duration
		attrsChanged = true
	}
	if p.Delay != nil {
		a.cfg.Delay = *p.Delay
		attrsChanged = true
	}
	if p.Repeat != nil {
		a.cfg.Repeat = *p.Repeat
	}
	if p.Offset != nil {
		a.cfg.Offset = *p.Offset
		sentinelChanged = true
	}
	if p.Debug != nil {
		a.cfg.Debug = *p.Debug
		sentinelChanged = true
	}
	if p.DebugColor != nil {
		a.cfg.DebugColor = *p.DebugColor
		sentinelChanged = true
	}
	if p.DebugLabel != nil {
		a.cfg.DebugLabel = *p.DebugLabel
		sentinelChanged = true
	}

	if attrsChanged {
		a.applyTargetAttrs()
	}
	if sentinelChanged {
		a.refreshSentinel()
	}
}

// Destroy disconnects the observation, cancels the resize watch, removes
// the sentinel, and unwraps the target. Idempotent, and safe when external
// code already removed the target or wrapper from the document.
func (a *Attachment) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	if a.inert {
		return
	}

	a.handle.disconnect()
	if a.cancelResize != nil {
		a.cancelResize()
	}
	if a.sentinel != nil {
		a.sentinel.Detach()
		a.sentinel = nil
	}
	unwrapTarget(a.wrapper, a.target)
	a.wrapper = nil
	a.win.Reflow()
}

// onIntersection drives the state machine. Exactly one OnVisible call per
// transition into triggered; once-mode disconnects permanently on the first
// trigger.
func (a *Attachment) onIntersection(e observe.IntersectionEntry) {
	if a.destroyed {
		return
	}
	if e.Intersecting {
		if a.st == stateTriggered {
			return
		}
		a.st = stateTriggered
		a.target.AddClass(StateClass)
		if a.cfg.OnVisible != nil {
			a.cfg.OnVisible(a.target)
		}
		if !a.cfg.Repeat {
			a.handle.disconnect()
		}
		return
	}
	if a.cfg.Repeat && a.st == stateTriggered {
		a.target.RemoveClass(StateClass)
		a.st = stateArmed
		return
	}
	if a.st == stateIdle {
		a.st = stateArmed
	}
}

// refreshSentinel atomically replaces the sentinel: disconnect the old
// observation, remove the old node, then insert and observe a fresh one.
// There is never a window with two observed sentinels. Invoked by resize
// notifications and by offset/debug updates. After a terminal once-mode
// trigger the new sentinel is placed for debugging but not observed again.
func (a *Attachment) refreshSentinel() {
	if a.destroyed || a.inert || a.wrapper == nil {
		return
	}

	a.handle.disconnect()
	if a.sentinel != nil {
		a.sentinel.Detach()
	}
	a.insertSentinel()

	if a.cfg.Repeat || a.st != stateTriggered {
		// Same ordering as Attach: the fresh sentinel may already be
		// visible, and the immediate entry must see the new handle.
		a.handle = newWatch(a.win, a.onIntersection)
		a.handle.start(a.sentinel)
	}
}

// insertSentinel creates a sentinel for the current config, adds it to the
// wrapper, and reflows so it has a rect before anything observes it.
func (a *Attachment) insertSentinel() {
	node, id := newSentinel(a.win.Engine(), a.target, sentinelSpec{
		offset: a.cfg.Offset,
		debug:  a.cfg.Debug,
		color:  a.cfg.debugColor(),
		label:  a.cfg.DebugLabel,
		id:     a.id,
	}, a.cfg.allocator())
	a.sentinel = node
	a.id = id
	a.triggerY = a.win.Engine().IntrinsicHeight(a.target) + float64(a.cfg.Offset)
	a.wrapper.AddChild(node)
	a.win.Reflow()
}

// resolveEffect validates the requested identifier, warning and falling
// back for anything unrecognized. An empty request is the documented
// default, not a mistake.
func (a *Attachment) resolveEffect(requested string) string {
	if requested == "" {
		return effects.Fallback
	}
	resolved, ok := effects.Resolve(requested)
	if !ok {
		a.cfg.warnf("unknown effect %q, falling back to %q (known: %v)",
			requested, effects.Fallback, effects.Names())
	}
	return resolved
}

// applyTargetAttrs writes the styling-layer surface onto the target.
func (a *Attachment) applyTargetAttrs() {
	a.target.SetAttribute(AttrEffect, a.effect)
	a.target.SetAttribute(AttrID, a.id)

	if a.cfg.Duration > 0 {
		a.target.SetStyleProperty(PropDuration, fmt.Sprintf("%dms", a.cfg.Duration))
	} else {
		a.target.RemoveStyleProperty(PropDuration)
	}
	if a.cfg.Delay > 0 {
		a.target.SetStyleProperty(PropDelay, fmt.Sprintf("%dms", a.cfg.Delay))
	} else {
		a.target.RemoveStyleProperty(PropDelay)
	}
}
