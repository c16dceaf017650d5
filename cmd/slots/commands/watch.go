package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zqp2013/blockly/internal/filter"
	"github.com/zqp2013/blockly/internal/inspect"
	"github.com/zqp2013/blockly/internal/printer"
	"github.com/zqp2013/blockly/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	var (
		blockID  string
		nameGlob string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream slot renames made by other editors",
		Long: `Follow rename events published to the configured Redis instance until
interrupted (Ctrl+C).

Examples:
  slots watch
  slots watch --name 'cup*' -o jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			criteria := &filter.Criteria{NameGlob: nameGlob, BlockID: blockID}
			if err := criteria.Validate(); err != nil {
				return fmt.Errorf("invalid --name pattern: %w", err)
			}
			format, err := eventFormatter(output)
			if err != nil {
				return err
			}

			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := a.openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			sub, err := store.SubscribeRenames(ctx)
			if err != nil {
				return err
			}
			defer sub.Close()

			if output != "jsonl" {
				printer.Step("Watching renames on instance '%s' (Ctrl+C to stop)\n", store.InstanceName())
			}

			_, err = watch.StreamRenames(ctx, sub, cmd.OutOrStdout(), criteria, format, a.logger.Named("watch"))
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&blockID, "block", "", "Only show renames of this definition block ID")
	cmd.Flags().StringVar(&nameGlob, "name", "", "Only show renames whose old or new name matches this glob")
	cmd.Flags().StringVarP(&output, "output", "o", "default", "Output format: default or jsonl")
	return cmd
}

// eventFormatter picks the renderer for rename events
func eventFormatter(output string) (watch.EventFormatter, error) {
	switch output {
	case "default", "":
		return inspect.FormatRenameEvent, nil
	case "jsonl":
		return inspect.FormatRenameEventJSON, nil
	default:
		return nil, fmt.Errorf("unsupported output format '%s' (use default or jsonl)", output)
	}
}
