package commands

import (
	"github.com/spf13/cobra"

	"github.com/zqp2013/blockly/internal/inspect"
)

func newFlyoutCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "flyout",
		Short: "Print the Slots palette for the workspace",
		Long: `Print the entries of the "Slots" palette category: the "define a slot"
template (when its block type is in the configured catalog) followed by one
getter per slot, in slot list order.

Examples:
  slots flyout
  slots flyout -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			ws, err := a.loadWorkspace()
			if err != nil {
				return err
			}

			entries := a.registry(cfg).Flyout(ws)
			return inspect.FormatFlyout(cmd.OutOrStdout(), entries, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", inspect.FormatXML, "Output format: xml, json or yaml")
	return cmd
}
