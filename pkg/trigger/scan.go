package trigger

import (
	"strconv"

	"scrollfx/pkg/dom"
	"scrollfx/pkg/observe"
)

// Declarative option attributes read by Scan. AttrEffect doubles as the
// marker: any element carrying it gets a trigger attached.
const (
	AttrOffset   = "data-scrollfx-offset"
	AttrDuration = "data-scrollfx-duration"
	AttrDelay    = "data-scrollfx-delay"
	AttrRepeat   = "data-scrollfx-repeat"
	AttrDebug    = "data-scrollfx-debug"
	AttrColor    = "data-scrollfx-color"
	AttrLabel    = "data-scrollfx-label"
)

// ConfigFromAttrs builds a configuration from an element's declarative
// attributes, layered over base. Malformed numeric values keep the base
// value and produce a warning.
func ConfigFromAttrs(n *dom.Node, base Config) Config {
	cfg := base

	if effect, ok := n.GetAttribute(AttrEffect); ok && effect != "" {
		cfg.Effect = effect
	}
	if id, ok := n.GetAttribute(AttrID); ok && id != "" {
		cfg.ID = id
	}
	if v, ok := n.GetAttribute(AttrOffset); ok {
		cfg.Offset = parseIntAttr(&cfg, AttrOffset, v, cfg.Offset)
	}
	if v, ok := n.GetAttribute(AttrDuration); ok {
		cfg.Duration = parseIntAttr(&cfg, AttrDuration, v, cfg.Duration)
	}
	if v, ok := n.GetAttribute(AttrDelay); ok {
		cfg.Delay = parseIntAttr(&cfg, AttrDelay, v, cfg.Delay)
	}
	if v, ok := n.GetAttribute(AttrRepeat); ok {
		cfg.Repeat = v == "true" || v == ""
	}
	if v, ok := n.GetAttribute(AttrDebug); ok {
		cfg.Debug = v == "true" || v == ""
	}
	if v, ok := n.GetAttribute(AttrColor); ok && v != "" {
		cfg.DebugColor = v
	}
	if v, ok := n.GetAttribute(AttrLabel); ok && v != "" {
		cfg.DebugLabel = v
	}

	return cfg
}

func parseIntAttr(cfg *Config, name, value string, fallback int) int {
	i, err := strconv.Atoi(value)
	if err != nil {
		cfg.warnf("attribute %s=%q is not an integer, ignoring", name, value)
		return fallback
	}
	return i
}

// Scan attaches a trigger to every element in the window's document that
// declares one via the effect attribute, in document order. base supplies
// defaults each element's attributes may override.
func Scan(win *observe.Window, base Config) []*Attachment {
	if win == nil {
		return nil
	}

	// Collect before attaching: attach mutates the tree (wrappers,
	// sentinels), and the sentinel itself never carries AttrEffect so a
	// second pass would find the same set.
	targets := win.Document().Root.ElementsWithAttribute(AttrEffect)

	attachments := make([]*Attachment, 0, len(targets))
	for _, target := range targets {
		attachments = append(attachments, Attach(win, target, ConfigFromAttrs(target, base)))
	}
	return attachments
}
