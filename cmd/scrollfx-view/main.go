// Command scrollfx-view opens an HTML page in a desktop window with a
// scroll slider, re-rendering the viewport on every change so trigger
// behavior (and debug sentinel bands) can be watched live.
package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"scrollfx/pkg/dom"
	"scrollfx/pkg/js"
	"scrollfx/pkg/observe"
	"scrollfx/pkg/render"
	"scrollfx/pkg/trigger"
)

const (
	viewportWidth  = 1024
	viewportHeight = 700
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: scrollfx-view <page.html>")
		os.Exit(1)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}
	doc, err := dom.Parse(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", path, err)
		os.Exit(1)
	}

	win := observe.NewWindow(doc, viewportWidth, viewportHeight)
	if err := js.New(win).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "script error: %v\n", err)
	}
	attachments := trigger.Scan(win, trigger.Config{})

	a := app.New()
	w := a.NewWindow("scrollfx — " + path)
	w.Resize(fyne.NewSize(viewportWidth, viewportHeight+80))

	renderer := render.NewRenderer(win)
	renderer.Render()
	canvasImg := canvas.NewImageFromImage(renderer.Image())
	canvasImg.FillMode = canvas.ImageFillOriginal

	status := widget.NewLabel(statusText(win, attachments))

	slider := widget.NewSlider(0, win.MaxScroll())
	slider.Step = 10
	slider.OnChanged = func(y float64) {
		win.ScrollTo(y)
		renderer.Render()
		canvasImg.Image = renderer.Image()
		canvasImg.Refresh()
		status.SetText(statusText(win, attachments))
	}

	content := container.NewBorder(slider, status, nil, nil, canvasImg)
	w.SetContent(content)
	w.ShowAndRun()
}

func statusText(win *observe.Window, attachments []*trigger.Attachment) string {
	active := 0
	for _, a := range attachments {
		if a.Active() {
			active++
		}
	}
	return fmt.Sprintf("scroll %.0f / %.0f px — %d/%d triggers active",
		win.ScrollY(), win.MaxScroll(), active, len(attachments))
}
