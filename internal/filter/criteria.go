package filter

import (
	"path"
	"strings"

	"github.com/zqp2013/blockly/pkg/workspace"
)

// Criteria selects rename events. All set fields must match.
type Criteria struct {
	SinceMs  int64  // 0 = no lower bound
	UntilMs  int64  // 0 = no upper bound
	NameGlob string // matched against old or new name, case-insensitive
	BlockID  string // exact defining block ID
}

// Matches reports whether ev satisfies every criterion. Zero values match all.
func (c *Criteria) Matches(ev *workspace.RenameEvent) bool {
	if c.SinceMs > 0 && ev.AtMs < c.SinceMs {
		return false
	}
	if c.UntilMs > 0 && ev.AtMs > c.UntilMs {
		return false
	}

	if c.NameGlob != "" && !globName(c.NameGlob, ev.OldName) && !globName(c.NameGlob, ev.NewName) {
		return false
	}

	if c.BlockID != "" && ev.BlockID != c.BlockID {
		return false
	}

	return true
}

// HasFilters returns true if any criterion is set.
func (c *Criteria) HasFilters() bool {
	return c.SinceMs > 0 ||
		c.UntilMs > 0 ||
		c.NameGlob != "" ||
		c.BlockID != ""
}

// Validate checks that the glob pattern is well formed.
func (c *Criteria) Validate() error {
	if c.NameGlob == "" {
		return nil
	}
	_, err := path.Match(c.NameGlob, "")
	return err
}

func globName(pattern, name string) bool {
	matched, err := path.Match(strings.ToLower(pattern), strings.ToLower(name))
	return err == nil && matched
}
