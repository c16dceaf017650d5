package slots

import (
	"math/big"
	"strings"
)

// Disambiguate returns a variant of name that IsLegalName accepts for block's
// workspace, comparing against every block except block itself.
//
// All whitespace is removed first. While the candidate collides, a trailing
// run of digits is incremented ("Slot2" becomes "Slot3") or, without one,
// "2" is appended. Preview blocks get name back unchanged.
func Disambiguate(name string, block Block, ws Workspace) string {
	if isPreview(block) {
		return name
	}

	candidate := stripSpace(name)
	for !IsLegalName(candidate, ws, block) {
		candidate = nextCandidate(candidate)
	}
	return candidate
}

// nextCandidate derives the next name to try after name collided.
func nextCandidate(name string) string {
	stem := strings.TrimRight(name, "0123456789")
	digits := name[len(stem):]
	if digits == "" {
		return name + "2"
	}

	n, _ := new(big.Int).SetString(digits, 10)
	return stem + n.Add(n, big.NewInt(1)).String()
}
