package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zqp2013/blockly/internal/printer"
	"github.com/zqp2013/blockly/pkg/slots"
)

func newCheckCmd(a *app) *cobra.Command {
	var exclude string

	cmd := &cobra.Command{
		Use:   "check NAME",
		Short: "Check whether a slot name is free",
		Long: `Check whether NAME can be used for a slot. Names compare equal when they
match ignoring case and whitespace, so "City", "city" and "ci ty" all clash.

Use --exclude with the ID of the block being renamed so its own current name
does not count as a clash. The platform naming rule (letters and
underscores, starting with a letter) is reported as a warning only.

Exits non-zero when the name is taken.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			ws, err := a.loadWorkspace()
			if err != nil {
				return err
			}

			var excluded slots.Block
			if exclude != "" {
				b, err := resolveBlock(ws, exclude)
				if err != nil {
					return err
				}
				excluded = b
			}

			if ruleErr := slots.CheckNamingRule(name); ruleErr != nil {
				printer.Warning("%v\n", ruleErr)
			}

			if !slots.IsLegalName(name, ws, excluded) {
				return printer.Error(
					fmt.Sprintf("slot name '%s' is already taken", name),
					"Another definition in the workspace uses the same name (ignoring case and whitespace).",
					[]string{fmt.Sprintf("Use '%s' instead", slots.Disambiguate(name, excluded, ws))},
				)
			}

			printer.Success("'%s' is available\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&exclude, "exclude", "", "Block ID (or prefix) to leave out of the check")
	return cmd
}
