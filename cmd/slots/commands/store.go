package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zqp2013/blockly/internal/printer"
	"github.com/zqp2013/blockly/pkg/workspace"
)

func newPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Save the workspace to the shared Redis store",
		Long: `Replace the workspace stored for the configured instance with the local
workspace document.`,
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

			ctx := cmd.Context()
			store, err := a.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.SaveWorkspace(ctx, ws); err != nil {
				return fmt.Errorf("failed to push workspace: %w", err)
			}

			printer.Success("Pushed %d blocks to instance '%s'\n", ws.Len(), store.InstanceName())
			return nil
		},
	}
}

func newPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fetch the workspace from the shared Redis store",
		Long: `Overwrite the local workspace document with the workspace stored for the
configured instance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := a.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			ws, err := store.LoadWorkspace(ctx)
			if err != nil {
				if workspace.IsNotFound(err) {
					return printer.Error(
						"nothing to pull",
						fmt.Sprintf("Instance '%s' has no stored workspace.", store.InstanceName()),
						[]string{"Run 'slots push' from an editor that has the workspace"},
					)
				}
				return fmt.Errorf("failed to pull workspace: %w", err)
			}

			if err := workspace.SaveFile(a.workspacePath, ws); err != nil {
				return err
			}

			printer.Success("Pulled %d blocks from instance '%s' into %s\n", ws.Len(), store.InstanceName(), a.workspacePath)
			return nil
		},
	}
}
