package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zqp2013/blockly/internal/printer"
	"github.com/zqp2013/blockly/internal/watch"
	"github.com/zqp2013/blockly/pkg/slots"
	"github.com/zqp2013/blockly/pkg/workspace"
)

func newRenameCmd(a *app) *cobra.Command {
	var (
		dryRun  bool
		publish bool
		wait    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "rename BLOCK_ID NEW_NAME",
		Short: "Rename a slot and update every block that reads it",
		Long: `Rename the slot defined by BLOCK_ID (a full block ID or a unique prefix of
at least 6 characters).

The proposed name is trimmed and cleaned of whitespace. If it clashes with
another slot a numeric suffix is added or bumped ("city" -> "city2",
"slot9" -> "slot10"). Every getter reading the old name is rebound to the
accepted name and the workspace file is saved.

With --publish the rename is broadcast to other editors sharing the store
instance. Adding --wait blocks until the broadcast comes back on the rename
channel, confirming Redis delivered it.

Examples:
  slots rename 6f1c2b1e beverage
  slots rename 6f1c2b1e beverage --dry-run
  slots rename 6f1c2b1e beverage --publish
  slots rename 6f1c2b1e beverage --publish --wait --timeout 10s`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if wait && !publish {
				return fmt.Errorf("--wait requires --publish")
			}

			ws, err := a.loadWorkspace()
			if err != nil {
				return err
			}

			b, err := resolveBlock(ws, args[0])
			if err != nil {
				return err
			}
			def, ok := b.(*workspace.DefinitionBlock)
			if !ok {
				return printer.Error(
					"not a slot definition",
					fmt.Sprintf("Block %s has type '%s' and does not define a slot.", b.ID(), b.Type()),
					[]string{"Pass the ID of a slot definition block (see 'slots refs NAME')"},
				)
			}

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}
			reg := a.registry(cfg)

			if dryRun {
				return previewRename(cmd, reg, ws, def.ID(), args[1])
			}

			res := reg.RenameDetailed(ws, def, args[1])
			def.SetName(res.NewName)

			if !res.Changed() {
				printer.Info("Slot name unchanged: '%s'\n", res.NewName)
				return nil
			}

			if err := workspace.SaveFile(a.workspacePath, ws); err != nil {
				return err
			}
			reportRename(res, args[1])

			if publish {
				waitFor := time.Duration(0)
				if wait {
					waitFor = timeout
				}
				return a.publishRename(cmd.Context(), cmd, def.ID(), res, waitFor)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the changes without saving")
	cmd.Flags().BoolVar(&publish, "publish", false, "Broadcast the rename to other editors through Redis")
	cmd.Flags().BoolVar(&wait, "wait", false, "With --publish, wait until the rename is delivered on the channel")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "How long --wait waits for delivery")
	return cmd
}

// previewRename renames a copy of ws and prints the record diff
func previewRename(cmd *cobra.Command, reg *slots.Registry, ws *workspace.Workspace, blockID, proposed string) error {
	preview, err := workspace.FromRecords(ws.Records())
	if err != nil {
		return fmt.Errorf("failed to copy workspace: %w", err)
	}
	b, err := preview.Block(blockID)
	if err != nil {
		return err
	}
	def := b.(*workspace.DefinitionBlock)

	res := reg.RenameDetailed(preview, def, proposed)
	def.SetName(res.NewName)

	diff := cmp.Diff(ws.Records(), preview.Records())
	if diff == "" {
		printer.Info("No changes: slot name stays '%s'\n", res.NewName)
		return nil
	}

	printer.Step("Would rename '%s' to '%s' (%d getters notified)\n", res.OldName, res.NewName, res.Notified)
	fmt.Fprint(cmd.OutOrStdout(), diff)
	return nil
}

func reportRename(res slots.RenameResult, proposed string) {
	printer.Success("Renamed slot '%s' to '%s' (%d getters notified)\n", res.OldName, res.NewName, res.Notified)

	if res.NewName != strings.TrimSpace(proposed) {
		printer.Info("'%s' was adjusted to '%s' to keep slot names unique\n", strings.TrimSpace(proposed), res.NewName)
	}
	if err := slots.CheckNamingRule(res.NewName); err != nil {
		printer.Warning("%v\n", err)
	}
}

// publishRename broadcasts res. A positive waitFor subscribes before
// publishing and blocks until the event is echoed back.
func (a *app) publishRename(ctx context.Context, cmd *cobra.Command, blockID string, res slots.RenameResult, waitFor time.Duration) error {
	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := a.openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	a.warnIfStale(ctx, store, blockID, res)

	var sub *workspace.Subscription
	if waitFor > 0 {
		sub, err = store.SubscribeRenames(ctx)
		if err != nil {
			return err
		}
		defer sub.Close()
	}

	if err := store.PublishRename(ctx, workspace.NewRenameEvent(blockID, res)); err != nil {
		return fmt.Errorf("failed to publish rename: %w", err)
	}

	a.logger.Debug("Published rename", zap.String("block_id", blockID), zap.String("instance", store.InstanceName()))
	printer.Success("Published rename to instance '%s'\n", store.InstanceName())

	if sub == nil {
		return nil
	}

	ev, err := watch.WaitForRename(ctx, sub, blockID, waitFor)
	if err != nil {
		return printer.ErrorWithContext(
			"rename not delivered",
			err.Error(),
			map[string]string{
				"Instance": store.InstanceName(),
				"Channel":  workspace.RenameEventsChannel(store.InstanceName()),
			},
			[]string{"Retry with a longer --timeout"},
		)
	}
	printer.Success("Delivered '%s' -> '%s' on %s\n", ev.OldName, ev.NewName, workspace.RenameEventsChannel(store.InstanceName()))
	return nil
}

// warnIfStale tells the user when the shared copy of the block does not
// match what was renamed locally, since other editors apply the rename to
// their own copy.
func (a *app) warnIfStale(ctx context.Context, store *workspace.Store, blockID string, res slots.RenameResult) {
	stored, err := store.GetRecord(ctx, blockID)
	switch {
	case workspace.IsNotFound(err):
		printer.Warning("Block %s is not in the shared workspace; run 'slots push' so other editors have it\n", blockID)
	case err != nil:
		a.logger.Warn("Could not read shared block", zap.String("block_id", blockID), zap.Error(err))
	case stored.SlotName != res.OldName:
		printer.Warning("Shared workspace names this slot '%s', not '%s'; run 'slots push' to update it\n", stored.SlotName, res.OldName)
	}
}
