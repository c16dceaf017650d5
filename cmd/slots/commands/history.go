package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zqp2013/blockly/internal/filter"
	"github.com/zqp2013/blockly/internal/inspect"
	"github.com/zqp2013/blockly/internal/timespec"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		since    string
		until    string
		nameGlob string
		blockID  string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent slot renames recorded in Redis",
		Long: `Show the renames published to the configured instance, oldest first.
Only the most recent 1000 renames are kept.

Time bounds accept Go durations relative to now ("2h", "1h30m") or RFC3339
timestamps ("2026-03-01T09:00:00Z").

Examples:
  slots history --since 1h
  slots history --name 'drink*' -o jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sinceMs, untilMs, err := timespec.ParseRange(since, until)
			if err != nil {
				return err
			}
			criteria := &filter.Criteria{SinceMs: sinceMs, UntilMs: untilMs, NameGlob: nameGlob, BlockID: blockID}
			if err := criteria.Validate(); err != nil {
				return fmt.Errorf("invalid --name pattern: %w", err)
			}

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

			events, err := store.RenameHistory(ctx)
			if err != nil {
				return err
			}

			if criteria.HasFilters() {
				matched := events[:0]
				for _, ev := range events {
					if criteria.Matches(ev) {
						matched = append(matched, ev)
					}
				}
				events = matched
			}

			out := cmd.OutOrStdout()
			switch output {
			case "default", "":
				inspect.FormatEventsTable(out, events, store.InstanceName())
				return nil
			case "jsonl":
				return inspect.FormatEventsJSONL(out, events)
			default:
				return fmt.Errorf("unsupported output format '%s' (use default or jsonl)", output)
			}
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only renames after this time (duration or RFC3339)")
	cmd.Flags().StringVar(&until, "until", "", "Only renames before this time (duration or RFC3339)")
	cmd.Flags().StringVar(&nameGlob, "name", "", "Only renames whose old or new name matches this glob")
	cmd.Flags().StringVar(&blockID, "block", "", "Only renames of this definition block ID")
	cmd.Flags().StringVarP(&output, "output", "o", "default", "Output format: default or jsonl")
	return cmd
}
