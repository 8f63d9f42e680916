package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"scrollfx/pkg/render"
)

var (
	renderScroll float64
	renderOut    string
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <page.html>",
	Short: "Render a viewport snapshot to a PNG",
	Long: `Render the page at a given scroll position. Debug sentinels paint as
colored bands and triggered elements get an outline, which makes the
snapshot useful for checking trigger placement.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().Float64Var(&renderScroll, "scroll", 0, "scroll position in pixels")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "page.png", "output PNG path")
}

func runRender(cmd *cobra.Command, args []string) error {
	p, err := loadPage(args[0])
	if err != nil {
		return err
	}

	p.win.ScrollTo(renderScroll)

	r := render.NewRenderer(p.win)
	r.Render()
	if err := r.SavePNG(renderOut); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOut, err)
	}

	fmt.Printf("Rendered %s at scroll %.0fpx (%d triggers) to %s\n",
		args[0], p.win.ScrollY(), len(p.attachments), renderOut)
	return nil
}
