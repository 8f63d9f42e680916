package trigger

import (
	"fmt"
	"os"

	"scrollfx/pkg/dom"
)

// Attribute surface shared with the styling layer.
const (
	// StateClass is the marker class toggled on the target per transition.
	StateClass = "scrollfx-visible"

	// AttrEffect carries the resolved effect identifier on the target.
	AttrEffect = "data-scrollfx"
	// AttrID carries the resolved sentinel identifier on the target.
	AttrID = "data-scrollfx-id"
	// AttrSentinel marks sentinel nodes and carries their identifier.
	AttrSentinel = "data-scrollfx-sentinel"
	// AttrWrapper marks wrapper nodes inserted around attached targets.
	AttrWrapper = "data-scrollfx-wrapper"

	// PropDuration and PropDelay are the custom properties the styling
	// layer reads for transition timing.
	PropDuration = "--scrollfx-duration"
	PropDelay    = "--scrollfx-delay"
)

// DefaultDebugColor is the band color of debug sentinels when none is
// configured.
const DefaultDebugColor = "#e91e63"

// Config is the per-attachment configuration snapshot. The zero value is
// usable: fallback effect, trigger once, no offset, hidden sentinel.
type Config struct {
	// Effect selects the visual state identifier written to the target.
	// Unrecognized values fall back to effects.Fallback with a warning.
	Effect string

	// Duration and Delay are written as custom properties, in milliseconds,
	// when greater than zero.
	Duration int
	Delay    int

	// Repeat keeps the observation live so the state marker toggles on
	// every crossing. When false the first trigger is terminal.
	Repeat bool

	// Debug renders the sentinel as a visible labeled band.
	Debug bool

	// Offset shifts the trigger point in pixels: negative fires earlier,
	// positive later.
	Offset int

	// ID is the caller-supplied identifier. Empty means allocate one.
	ID string

	// OnVisible is invoked exactly once per transition into the triggered
	// state.
	OnVisible func(target *dom.Node)

	// DebugColor and DebugLabel adjust the debug sentinel's appearance.
	DebugColor string
	DebugLabel string

	// Allocator overrides DefaultAllocator, letting tests run in isolation.
	Allocator *Allocator

	// Warn receives non-fatal diagnostics. Defaults to stderr.
	Warn func(format string, args ...any)
}

func (c *Config) allocator() *Allocator {
	if c.Allocator != nil {
		return c.Allocator
	}
	return DefaultAllocator
}

func (c *Config) warnf(format string, args ...any) {
	if c.Warn != nil {
		c.Warn(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, "scrollfx: "+format+"\n", args...)
}

func (c *Config) debugColor() string {
	if c.DebugColor != "" {
		return c.DebugColor
	}
	return DefaultDebugColor
}

// Patch is a partial configuration for Attachment.Update. Nil fields keep
// their current value.
type Patch struct {
	Effect     *string
	Duration   *int
	Delay      *int
	Repeat     *bool
	Debug      *bool
	Offset     *int
	DebugColor *string
	DebugLabel *string
}
