// Package effects enumerates the visual effect identifiers the styling layer
// understands. The trigger engine consults it to validate a requested effect
// and substitutes Fallback for anything unrecognized.
package effects

import "sort"

// Fallback is the effect substituted for unrecognized identifiers.
const Fallback = "fade"

var known = map[string]struct{}{
	"fade":        {},
	"fade-up":     {},
	"fade-down":   {},
	"fade-left":   {},
	"fade-right":  {},
	"zoom-in":     {},
	"zoom-out":    {},
	"slide-up":    {},
	"slide-left":  {},
	"slide-right": {},
	"flip-up":     {},
}

// Valid reports whether name is a recognized effect identifier.
func Valid(name string) bool {
	_, ok := known[name]
	return ok
}

// Resolve returns name if it is recognized, otherwise Fallback. The second
// return reports whether the input was valid.
func Resolve(name string) (string, bool) {
	if Valid(name) {
		return name, true
	}
	return Fallback, false
}

// Names returns all recognized identifiers, sorted.
func Names() []string {
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
