package trigger

import (
	"fmt"
	"sync/atomic"
)

// Allocator issues unique, monotonically increasing sentinel identifiers.
// Identifiers are never reused for the lifetime of the allocator.
type Allocator struct {
	prefix string
	n      atomic.Uint64
}

func NewAllocator(prefix string) *Allocator {
	return &Allocator{prefix: prefix}
}

// Next returns a fresh identifier ("<prefix>-1", "<prefix>-2", ...).
func (a *Allocator) Next() string {
	return fmt.Sprintf("%s-%d", a.prefix, a.n.Add(1))
}

// Reset rewinds the counter. Test hook; issued identifiers stop being unique
// after a reset.
func (a *Allocator) Reset() {
	a.n.Store(0)
}

// DefaultAllocator issues identifiers for attachments that supply neither a
// caller identifier nor their own allocator.
var DefaultAllocator = NewAllocator("scrollfx")
