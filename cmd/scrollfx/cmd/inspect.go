package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"scrollfx/pkg/trigger"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <page.html>",
	Short: "List the triggers a page declares",
	Long: `Load a page, attach its declared triggers, and display each trigger's
identifier, effect, and computed trigger position.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

type triggerInfo struct {
	ID       string  `json:"id"`
	Effect   string  `json:"effect"`
	Offset   int     `json:"offset"`
	TriggerY float64 `json:"trigger_y"`
	Repeat   bool    `json:"repeat"`
	Debug    bool    `json:"debug"`
	Active   bool    `json:"active"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	p, err := loadPage(args[0])
	if err != nil {
		return err
	}

	infos := make([]triggerInfo, 0, len(p.attachments))
	for _, a := range p.attachments {
		infos = append(infos, triggerInfo{
			ID:       a.ID(),
			Effect:   a.Effect(),
			Offset:   a.Offset(),
			TriggerY: a.TriggerY(),
			Repeat:   a.Repeat(),
			Debug:    a.Debug(),
			Active:   a.Active(),
		})
	}

	if IsJSONOutput() {
		output, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if len(infos) == 0 {
		fmt.Printf("No elements carry %s\n", trigger.AttrEffect)
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Effect", "Offset", "Trigger Y", "Repeat", "Debug", "Active")
	for _, info := range infos {
		table.Append(
			info.ID,
			info.Effect,
			fmt.Sprintf("%d", info.Offset),
			fmt.Sprintf("%.0fpx", info.TriggerY),
			fmt.Sprintf("%v", info.Repeat),
			fmt.Sprintf("%v", info.Debug),
			fmt.Sprintf("%v", info.Active),
		)
	}
	table.Render()
	fmt.Printf("\nTotal triggers: %d (content height %.0fpx, max scroll %.0fpx)\n",
		len(infos), p.win.ContentHeight(), p.win.MaxScroll())

	return nil
}
