package slots

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ErrNamingRule is returned by CheckNamingRule for names the voice platform
// would refuse.
var ErrNamingRule = errors.New("slot name violates naming rule")

// namingRule is the platform's slot naming requirement: a letter first, then
// letters or underscores only.
var namingRule = regexp.MustCompile(`^\p{L}[\p{L}_]*$`)

// IsLegalName reports whether name is free in ws.
// exclude, when non-nil, is left out of the comparison so a block can be
// checked against the others. Preview blocks never cause a collision.
func IsLegalName(name string, ws Workspace, exclude Block) bool {
	for _, b := range ws.AllBlocks() {
		if sameBlock(b, exclude) || isPreview(b) {
			continue
		}
		slot, ok := definedSlot(b)
		if !ok {
			continue
		}
		if NamesEqual(slot.Name, name) {
			return false
		}
	}
	return true
}

// CheckNamingRule validates name against the platform naming rule.
// The rule is advisory: IsLegalName and Disambiguate never apply it.
func CheckNamingRule(name string) error {
	if !namingRule.MatchString(name) {
		return fmt.Errorf("%w: %q must start with a letter and contain only letters and underscores", ErrNamingRule, name)
	}
	return nil
}

// Duplicates returns groups of definitions in ws whose names already collide.
// Groups appear in sorted slot order; preview blocks are ignored.
func Duplicates(ws Workspace) [][]Slot {
	var defs []Slot
	for _, b := range ws.AllBlocks() {
		if isPreview(b) {
			continue
		}
		if slot, ok := definedSlot(b); ok {
			defs = append(defs, slot)
		}
	}

	var groups [][]Slot
	used := make([]bool, len(defs))
	for i := range defs {
		if used[i] {
			continue
		}
		group := []Slot{defs[i]}
		for j := i + 1; j < len(defs); j++ {
			if !used[j] && NamesEqual(defs[i].Name, defs[j].Name) {
				group = append(group, defs[j])
				used[j] = true
			}
		}
		if len(group) > 1 {
			groups = append(groups, group)
		}
	}

	c := newCollator()
	sort.SliceStable(groups, func(i, j int) bool {
		return c.CompareString(groups[i][0].Name, groups[j][0].Name) < 0
	})
	return groups
}
