package slots

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesEqual(t *testing.T) {
	testCases := []struct {
		a, b string
		want bool
	}{
		{"Color", "color", true},
		{"Color", " C o l o r ", true},
		{"favourite colour", "FavouriteColour", true},
		{"Color", "Colour", false},
		{"", "   ", true},
	}

	for _, tc := range testCases {
		t.Run(tc.a+"/"+tc.b, func(t *testing.T) {
			assert.Equal(t, tc.want, NamesEqual(tc.a, tc.b))
		})
	}
}

func TestCompareNames(t *testing.T) {
	assert.Negative(t, CompareNames("alpha", "Zeta"))
	assert.Positive(t, CompareNames("Zeta", "alpha"))
	assert.Zero(t, CompareNames("Color", "color"))
}

func TestAllSlots(t *testing.T) {
	t.Run("sorts case-insensitively", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("Zeta", "x")
		ws.define("alpha", "y")
		ws.define("Mid", "z")

		got := AllSlots(ws)
		want := []Slot{{"alpha", "y"}, {"Mid", "z"}, {"Zeta", "x"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("AllSlots() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("skips unconfigured and non-definition blocks", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.unconfigured()
		ws.define("City", "place")
		ws.get("City")
		ws.other()

		assert.Equal(t, []Slot{{"City", "place"}}, AllSlots(ws))
	})

	t.Run("keeps workspace order for equal names", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("date", "first")
		ws.define("Date", "second")

		got := AllSlots(ws)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Type)
		assert.Equal(t, "second", got[1].Type)
	})

	t.Run("empty workspace", func(t *testing.T) {
		assert.Empty(t, AllSlots(&fakeWorkspace{}))
	})

	t.Run("rescans on every call", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("One", "x")
		assert.Len(t, AllSlots(ws), 1)

		ws.define("Two", "x")
		assert.Equal(t, []string{"One", "Two"}, names(AllSlots(ws)))
	})
}

func TestIsLegalName(t *testing.T) {
	ws := &fakeWorkspace{}
	color := ws.define("Color", "x")
	ws.definePreview("Preview")
	ws.unconfigured()
	ws.get("Size")

	testCases := []struct {
		name    string
		input   string
		exclude Block
		want    bool
	}{
		{name: "free name", input: "Size", want: true},
		{name: "exact collision", input: "Color", want: false},
		{name: "case collision", input: "COLOR", want: false},
		{name: "whitespace collision", input: "Co lor", want: false},
		{name: "excluded block", input: "Color", exclude: color, want: true},
		{name: "preview blocks never collide", input: "Preview", want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsLegalName(tc.input, ws, tc.exclude))
		})
	}
}

func TestCheckNamingRule(t *testing.T) {
	testCases := []struct {
		input   string
		wantErr bool
	}{
		{"city", false},
		{"departure_city", false},
		{"Città", false},
		{"_city", true},
		{"city2", true},
		{"2city", true},
		{"", true},
		{"city name", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			err := CheckNamingRule(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrNamingRule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDuplicates(t *testing.T) {
	ws := &fakeWorkspace{}
	ws.define("size", "a")
	ws.define("Color", "b")
	ws.define("Size", "c")
	ws.define("colour", "d")
	ws.define("color", "e")
	ws.definePreview("Colour")

	got := Duplicates(ws)
	want := [][]Slot{
		{{"Color", "b"}, {"color", "e"}},
		{{"size", "a"}, {"Size", "c"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Duplicates() mismatch (-want +got):\n%s", diff)
	}
}

func TestDisambiguate(t *testing.T) {
	t.Run("increments numeric suffix", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("Item2", "x")
		block := ws.unconfigured()

		assert.Equal(t, "Item3", Disambiguate("Item2", block, ws))
	})

	t.Run("appends 2 without suffix", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("Item", "x")
		block := ws.unconfigured()

		assert.Equal(t, "Item2", Disambiguate("Item", block, ws))
	})

	t.Run("walks past several collisions", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("Item", "x")
		ws.define("item2", "x")
		ws.define("ITEM3", "x")
		block := ws.unconfigured()

		assert.Equal(t, "Item4", Disambiguate("Item", block, ws))
	})

	t.Run("leading zeros follow numeric increment", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("Slot09", "x")
		block := ws.unconfigured()

		assert.Equal(t, "Slot10", Disambiguate("Slot09", block, ws))
	})

	t.Run("suffix longer than machine integers", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("n99999999999999999999", "x")
		block := ws.unconfigured()

		assert.Equal(t, "n100000000000000000000", Disambiguate("n99999999999999999999", block, ws))
	})

	t.Run("strips all whitespace", func(t *testing.T) {
		ws := &fakeWorkspace{}
		block := ws.unconfigured()

		got := Disambiguate(" departure \t city\n", block, ws)
		assert.Equal(t, "departurecity", got)
		assert.False(t, strings.ContainsAny(got, " \t\n"))
	})

	t.Run("ignores the block itself", func(t *testing.T) {
		ws := &fakeWorkspace{}
		block := ws.define("Color", "x")

		assert.Equal(t, "Color", Disambiguate("Color", block, ws))
	})

	t.Run("preview blocks keep the proposal", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("Color", "x")
		block := ws.definePreview("Color")

		assert.Equal(t, "Co lor", Disambiguate("Co lor", block, ws))
	})

	t.Run("idempotent once inserted", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("Item", "x")
		block := ws.unconfigured()

		first := Disambiguate("Item", block, ws)
		block.def = &Slot{Name: first, Type: "x"}

		assert.Equal(t, first, Disambiguate(first, block, ws))
	})
}

func TestFindReferences(t *testing.T) {
	ws := &fakeWorkspace{}
	ws.define("Color", "x")
	a := ws.get("Color")
	b := ws.get("co lor")
	ws.get("Size")
	ws.unboundGet()

	refs := FindReferences("COLOR", ws)
	assert.Equal(t, []Block{a, b}, refs)
	assert.Empty(t, FindReferences("Missing", ws))
}

func TestFindDefinition(t *testing.T) {
	t.Run("finds top-level definition", func(t *testing.T) {
		ws := &fakeWorkspace{}
		ws.define("Size", "x")
		color := ws.define("Color", "x")

		got, ok := FindDefinition("color", ws)
		require.True(t, ok)
		assert.Equal(t, color.ID(), got.ID())
	})

	t.Run("ignores nested definitions", func(t *testing.T) {
		ws := &fakeWorkspace{}
		parent := ws.other()
		ws.defineNested("Color", parent.ID())

		got, ok := FindDefinition("Color", ws)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("not found", func(t *testing.T) {
		_, ok := FindDefinition("Color", &fakeWorkspace{})
		assert.False(t, ok)
	})
}
