package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zqp2013/blockly/internal/inspect"
	"github.com/zqp2013/blockly/pkg/slots"
)

func newListCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the slots defined in the workspace",
		Long: `List every slot defined in the workspace, in the order the editor shows
them: case-insensitive, locale-aware alphabetical order.

Definitions that already share a name (for example after a hand edit or a
merge) are reported as warnings.

Examples:
  slots list
  slots list -o json | jq '.[].name'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.loadWorkspace()
			if err != nil {
				return err
			}

			list := slots.AllSlots(ws)
			out := cmd.OutOrStdout()

			switch output {
			case "default", "":
				inspect.FormatSlotTable(out, list, slots.Duplicates(ws), a.workspacePath)
				return nil
			case "json":
				return inspect.FormatSlotsJSON(out, list)
			default:
				return fmt.Errorf("unsupported output format '%s' (use default or json)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "default", "Output format: default or json")
	return cmd
}
