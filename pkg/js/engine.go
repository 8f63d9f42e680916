// Package js executes page scripts against the document and exposes the
// scroll-trigger API to them: a `scrollfx` global for attaching triggers, a
// `window` global for scrolling, and enough of the DOM for scripts to find
// and mutate elements.
package js

import (
	"fmt"
	"io"
	"os"

	"scrollfx/pkg/observe"

	"github.com/dop251/goja"
)

// Engine executes JavaScript against a window's document.
type Engine struct {
	vm  *goja.Runtime
	win *observe.Window

	out io.Writer
	err io.Writer
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithOutput redirects console.log and console.warn/error streams.
func WithOutput(out, err io.Writer) Option {
	return func(e *Engine) {
		e.out = out
		e.err = err
	}
}

// New creates a JS engine bound to win. The window's document supplies the
// DOM the scripts see; scroll and trigger state live on the window itself.
func New(win *observe.Window, opts ...Option) *Engine {
	e := &Engine{
		vm:  goja.New(),
		win: win,
		out: os.Stdout,
		err: os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}

	c := &consoleAPI{out: e.out, err: e.err}
	c.register(e.vm)

	ctx := registerDocument(e.vm, win.Document())
	registerWindow(e.vm, win)
	registerScrollFX(e.vm, ctx, win, e.err)

	return e
}

// Runtime exposes the underlying goja runtime for callers that need to
// evaluate extra snippets against the same globals.
func (e *Engine) Runtime() *goja.Runtime { return e.vm }

// Execute runs the document's scripts in order. The first script error stops
// execution and is returned; callers may log and continue.
func (e *Engine) Execute() error {
	for i, script := range e.win.Document().Scripts {
		if _, err := e.vm.RunString(script); err != nil {
			return fmt.Errorf("script %d: %w", i, err)
		}
	}
	return nil
}

// Run evaluates a single snippet against the engine's globals.
func (e *Engine) Run(src string) (goja.Value, error) {
	return e.vm.RunString(src)
}
