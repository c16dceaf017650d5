package resolver

import (
	"fmt"
	"strings"

	"github.com/zqp2013/blockly/pkg/workspace"
)

// MinShortIDLength is the minimum accepted length for block ID prefixes.
const MinShortIDLength = 6

// maxListedMatches caps the IDs printed for an ambiguous prefix.
const maxListedMatches = 10

// ResolveBlockID resolves a block ID or unique ID prefix against ws.
//
// IDs are matched case-insensitively. A full UUID must name a block in ws.
// Anything else must be at least MinShortIDLength characters and prefix
// exactly one block ID.
func ResolveBlockID(ws *workspace.Workspace, shortID string) (string, error) {
	prefix := strings.ToLower(shortID)
	if len(prefix) == 36 && strings.Count(prefix, "-") == 4 {
		if _, err := ws.Block(prefix); err != nil {
			return "", &NotFoundError{ShortID: shortID}
		}
		return prefix, nil
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	var matches []string
	for _, b := range ws.Blocks() {
		if strings.HasPrefix(b.ID(), prefix) {
			matches = append(matches, b.ID())
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{ShortID: shortID, Matches: matches}
	}
}

// ResolveBlock is ResolveBlockID returning the block itself.
func ResolveBlock(ws *workspace.Workspace, shortID string) (workspace.Block, error) {
	id, err := ResolveBlockID(ws, shortID)
	if err != nil {
		return nil, err
	}
	return ws.Block(id)
}

// NotFoundError indicates no block matched the ID or prefix.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no blocks found matching '%s'", e.ShortID)
}

// AmbiguousError indicates several blocks share the prefix.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d blocks", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError lists the matching IDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "ambiguous short ID '%s' matches %d blocks:\n", err.ShortID, len(err.Matches))

	shown := err.Matches
	if len(shown) > maxListedMatches {
		shown = shown[:maxListedMatches]
	}
	for _, id := range shown {
		fmt.Fprintf(&sb, "  %s\n", id)
	}
	if extra := len(err.Matches) - len(shown); extra > 0 {
		fmt.Fprintf(&sb, "  ...and %d more\n", extra)
	}

	sb.WriteString("\nUse a longer prefix to uniquely identify the block.")
	return sb.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	_, ok := err.(*AmbiguousError)
	return ok
}
