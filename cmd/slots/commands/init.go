package commands

import (
	"github.com/spf13/cobra"

	"github.com/zqp2013/blockly/internal/printer"
	"github.com/zqp2013/blockly/internal/scaffold"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		force bool
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create slots.yml and an example workspace",
		Long: `Initialize a slot registry project in the target directory:
  • slots.yml      registry configuration
  • workspace.yml  an example intent with two slots

Use --force to overwrite existing files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scaffold.CheckExisting(dir, force); err != nil {
				return printer.Error("project already initialized", err.Error(), nil)
			}

			created, err := scaffold.Initialize(dir)
			if err != nil {
				return printer.Error(
					"initialization failed",
					err.Error(),
					[]string{"Check that the directory is writable"},
				)
			}

			scaffold.PrintSuccess(cmd.OutOrStdout(), created)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing slots.yml and workspace.yml")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to initialize")
	return cmd
}
