package cmd

import (
	"fmt"
	"os"

	"scrollfx/pkg/dom"
	"scrollfx/pkg/js"
	"scrollfx/pkg/observe"
	"scrollfx/pkg/trigger"
)

// page is a loaded HTML document with its window and the triggers declared
// in its markup.
type page struct {
	win         *observe.Window
	attachments []*trigger.Attachment
}

// loadPage reads and parses an HTML file, lays it out in the configured
// viewport, optionally executes its scripts, and attaches every declared
// trigger.
func loadPage(path string) (*page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	doc, err := dom.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	win := observe.NewWindow(doc, viewportWidth, viewportHeight)

	if runScripts {
		engine := js.New(win)
		if err := engine.Execute(); err != nil {
			// Script failures shouldn't hide the page's declarative triggers.
			fmt.Fprintf(os.Stderr, "script error: %v\n", err)
		}
	}

	attachments := trigger.Scan(win, trigger.Config{Effect: defaultEffect})
	return &page{win: win, attachments: attachments}, nil
}
