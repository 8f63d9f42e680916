package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"scrollfx/pkg/effects"
)

// effectsCmd represents the effects command
var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List the known effect identifiers",
	RunE:  runEffects,
}

func init() {
	rootCmd.AddCommand(effectsCmd)
}

func runEffects(cmd *cobra.Command, args []string) error {
	names := effects.Names()

	if IsJSONOutput() {
		output, err := json.MarshalIndent(names, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Effect", "Default")
	for _, name := range names {
		def := ""
		if name == effects.Fallback {
			def = "yes"
		}
		table.Append(name, def)
	}
	table.Render()
	return nil
}
