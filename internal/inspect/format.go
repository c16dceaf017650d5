// Package inspect renders slot registry results for the command line.
package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/zqp2013/blockly/pkg/slots"
	"github.com/zqp2013/blockly/pkg/workspace"
)

// Output formats accepted by FormatFlyout.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatSlotTable writes slots as a table, followed by a warning for each
// group of definitions that already share a name. Returns the number of
// slots written.
func FormatSlotTable(w io.Writer, list []slots.Slot, duplicates [][]slots.Slot, source string) int {
	if len(list) == 0 {
		fmt.Fprintf(w, "No slots defined in '%s'\n", source)
		return 0
	}

	fmt.Fprintf(w, "Slots in '%s':\n\n", source)

	fmt.Fprintf(w, "%-4s %-24s %s\n", "#", "NAME", "TYPE")
	fmt.Fprintf(w, "%-4s %-24s %s\n", "----", "------------------------", "------------")

	for i, s := range list {
		fmt.Fprintf(w, "%-4d %-24s %s\n", i+1, formatName(s.Name), dash(s.Type))
	}

	noun := "slot"
	if len(list) != 1 {
		noun = "slots"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(list), noun)

	for _, group := range duplicates {
		names := make([]string, len(group))
		for i, s := range group {
			names[i] = fmt.Sprintf("%q", s.Name)
		}
		fmt.Fprintf(w, "warning: %s collide and should be renamed\n", strings.Join(names, ", "))
	}

	return len(list)
}

// FormatSlotsJSON writes slots as a pretty-printed JSON array.
func FormatSlotsJSON(w io.Writer, list []slots.Slot) error {
	if list == nil {
		list = []slots.Slot{}
	}
	return writeIndentedJSON(w, list)
}

// FormatReferences writes the definition of name and every block that reads it.
// def may be nil when the slot is not defined at the top level.
func FormatReferences(w io.Writer, name string, def slots.Block, refs []slots.Block) {
	if def != nil {
		fmt.Fprintf(w, "Slot '%s' defined by %s %s\n", name, formatID(def.ID()), blockType(def))
	} else {
		fmt.Fprintf(w, "Slot '%s' has no top-level definition\n", name)
	}

	if len(refs) == 0 {
		fmt.Fprintln(w, "No references")
		return
	}

	noun := "reference"
	if len(refs) != 1 {
		noun = "references"
	}
	fmt.Fprintf(w, "\n%d %s:\n", len(refs), noun)
	for _, b := range refs {
		fmt.Fprintf(w, "  %s %s%s\n", formatID(b.ID()), blockType(b), parentSuffix(b))
	}
}

// FormatFlyout writes flyout entries in the requested format.
func FormatFlyout(w io.Writer, entries []slots.Descriptor, format string) error {
	switch format {
	case FormatXML, "":
		data, err := slots.MarshalFlyoutXML(entries)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatJSON:
		if entries == nil {
			entries = []slots.Descriptor{}
		}
		return writeIndentedJSON(w, entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to marshal flyout YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported flyout format '%s' (use xml, json or yaml)", format)
	}
}

// FormatRenameEvent writes a one-line summary of ev, as printed by watch.
func FormatRenameEvent(w io.Writer, ev *workspace.RenameEvent) error {
	at := time.UnixMilli(ev.AtMs).Format("15:04:05")
	old := ev.OldName
	if old == "" {
		old = "(unnamed)"
	}
	_, err := fmt.Fprintf(w, "[%s] %s renamed '%s' → '%s' (%d notified)\n",
		at, formatID(ev.BlockID), old, ev.NewName, ev.Participants)
	return err
}

// FormatEventsTable writes rename events as a table, oldest first. Returns the
// number of events written.
func FormatEventsTable(w io.Writer, events []*workspace.RenameEvent, instanceName string) int {
	if len(events) == 0 {
		fmt.Fprintf(w, "No renames recorded for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Renames for instance '%s':\n\n", instanceName)
	fmt.Fprintf(w, "%-10s %-24s %-24s %-8s %s\n", "BLOCK", "FROM", "TO", "NOTIFIED", "AGE")
	fmt.Fprintf(w, "%-10s %-24s %-24s %-8s %s\n",
		"----------", "------------------------", "------------------------", "--------", "--------")

	for _, ev := range events {
		fmt.Fprintf(w, "%-10s %-24s %-24s %-8d %s\n",
			formatID(ev.BlockID),
			formatName(dash(ev.OldName)),
			formatName(ev.NewName),
			ev.Participants,
			formatTimestamp(ev.AtMs),
		)
	}

	noun := "rename"
	if len(events) != 1 {
		noun = "renames"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(events), noun)

	return len(events)
}

// FormatEventsJSONL writes each event as a single JSON line.
func FormatEventsJSONL(w io.Writer, events []*workspace.RenameEvent) error {
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to marshal rename event to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

func writeIndentedJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write JSON output: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

// formatID truncates a block ID to its first 8 characters.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatName truncates long slot names to fit the table column.
func formatName(name string) string {
	if utf8.RuneCountInString(name) > 24 {
		return string([]rune(name)[:21]) + "..."
	}
	return name
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func blockType(b slots.Block) string {
	if typed, ok := b.(interface{ Type() string }); ok {
		return typed.Type()
	}
	return "block"
}

func parentSuffix(b slots.Block) string {
	if nested, ok := b.(interface{ Parent() string }); ok && nested.Parent() != "" {
		return " (in " + formatID(nested.Parent()) + ")"
	}
	return ""
}

// formatTimestamp renders a millisecond timestamp as a relative age.
func formatTimestamp(timestampMs int64) string {
	if timestampMs == 0 {
		return "-"
	}

	diff := time.Since(time.UnixMilli(timestampMs))

	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}

// FormatRenameEventJSON writes ev as a single JSON line.
func FormatRenameEventJSON(w io.Writer, ev *workspace.RenameEvent) error {
	return FormatEventsJSONL(w, []*workspace.RenameEvent{ev})
}
