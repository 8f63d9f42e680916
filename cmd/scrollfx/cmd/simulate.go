package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var simulateStep float64

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate <page.html>",
	Short: "Sweep the page and log trigger transitions",
	Long: `Scroll the viewport from top to bottom and back in fixed steps, logging
every trigger transition as it happens, then print a summary of how often
each trigger fired.`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Float64Var(&simulateStep, "step", 100, "scroll step in pixels")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("step") {
		simulateStep = viper.GetFloat64("scroll_step")
	}

	p, err := loadPage(args[0])
	if err != nil {
		return err
	}
	if len(p.attachments) == 0 {
		fmt.Println("No triggers to simulate")
		return nil
	}
	if simulateStep <= 0 {
		return fmt.Errorf("step must be positive, got %v", simulateStep)
	}

	visible := color.New(color.FgHiGreen).Sprint("visible")
	hidden := color.New(color.FgYellow).Sprint("hidden")

	active := make(map[string]bool, len(p.attachments))
	fired := make(map[string]int, len(p.attachments))
	for _, a := range p.attachments {
		active[a.ID()] = a.Active()
		if a.Active() {
			fired[a.ID()]++
			fmt.Printf("%8.0fpx  %s → %s (at attach)\n", p.win.ScrollY(), a.ID(), visible)
		}
	}

	logTransitions := func() {
		for _, a := range p.attachments {
			if a.Active() == active[a.ID()] {
				continue
			}
			active[a.ID()] = a.Active()
			if a.Active() {
				fired[a.ID()]++
				fmt.Printf("%8.0fpx  %s → %s\n", p.win.ScrollY(), a.ID(), visible)
			} else {
				fmt.Printf("%8.0fpx  %s → %s\n", p.win.ScrollY(), a.ID(), hidden)
			}
		}
	}

	max := p.win.MaxScroll()
	for y := simulateStep; y <= max; y += simulateStep {
		p.win.ScrollTo(y)
		logTransitions()
	}
	p.win.ScrollTo(max)
	logTransitions()
	for y := max - simulateStep; y >= 0; y -= simulateStep {
		p.win.ScrollTo(y)
		logTransitions()
	}
	p.win.ScrollTo(0)
	logTransitions()

	fmt.Println()
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Effect", "Trigger Y", "Times Fired", "Final State")
	for _, a := range p.attachments {
		state := "hidden"
		if a.Active() {
			state = "visible"
		}
		table.Append(
			a.ID(),
			a.Effect(),
			fmt.Sprintf("%.0fpx", a.TriggerY()),
			fmt.Sprintf("%d", fired[a.ID()]),
			state,
		)
	}
	table.Render()

	return nil
}
