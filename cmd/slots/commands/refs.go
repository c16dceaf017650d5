package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zqp2013/blockly/internal/inspect"
	"github.com/zqp2013/blockly/internal/printer"
	"github.com/zqp2013/blockly/pkg/slots"
)

func newRefsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refs NAME",
		Short: "Show the definition of a slot and every block that reads it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			ws, err := a.loadWorkspace()
			if err != nil {
				return err
			}

			def, found := slots.FindDefinition(name, ws)
			refs := slots.FindReferences(name, ws)

			if !found && len(refs) == 0 {
				return printer.Error(
					fmt.Sprintf("%v: '%s'", slots.ErrSlotNotFound, name),
					"No top-level definition and no getters use this name.",
					[]string{"Run 'slots list' to see the defined slots"},
				)
			}

			inspect.FormatReferences(cmd.OutOrStdout(), name, def, refs)
			return nil
		},
	}
}
