package slots

import "fmt"

// fakeBlock implements every capability; nil-able fields decide which ones
// are reported.
type fakeBlock struct {
	id      string
	parent  string
	def     *Slot
	ref     *string
	preview bool
	renames int
}

func (b *fakeBlock) ID() string { return b.id }

// definer exposes SlotDefiner only for definition blocks.
type definer struct{ *fakeBlock }

func (d definer) SlotDefinition() (Slot, bool) {
	if d.def == nil {
		return Slot{}, false
	}
	return *d.def, true
}

func (d definer) InPalettePreview() bool { return d.preview }

// getter exposes SlotReferrer and RenameParticipant.
type getter struct{ *fakeBlock }

func (g getter) SlotReference() (string, bool) {
	if g.ref == nil {
		return "", false
	}
	return *g.ref, true
}

func (g getter) RenameSlot(oldName, newName string) {
	g.renames++
	if g.ref != nil && NamesEqual(*g.ref, oldName) {
		*g.ref = newName
	}
}

// plain exposes nothing but an ID.
type plain struct{ *fakeBlock }

type fakeWorkspace struct {
	blocks []Block
}

func (w *fakeWorkspace) AllBlocks() []Block { return w.blocks }

func (w *fakeWorkspace) TopBlocks() []Block {
	var top []Block
	for _, b := range w.blocks {
		if base(b).parent == "" {
			top = append(top, b)
		}
	}
	return top
}

func base(b Block) *fakeBlock {
	switch v := b.(type) {
	case definer:
		return v.fakeBlock
	case getter:
		return v.fakeBlock
	case plain:
		return v.fakeBlock
	}
	panic(fmt.Sprintf("unexpected block %T", b))
}

func (w *fakeWorkspace) define(name, typ string) definer {
	d := definer{&fakeBlock{id: fmt.Sprintf("def-%d", len(w.blocks)), def: &Slot{Name: name, Type: typ}}}
	w.blocks = append(w.blocks, d)
	return d
}

func (w *fakeWorkspace) defineNested(name, parent string) definer {
	d := w.define(name, "text")
	d.parent = parent
	return d
}

func (w *fakeWorkspace) definePreview(name string) definer {
	d := w.define(name, "text")
	d.preview = true
	return d
}

func (w *fakeWorkspace) unconfigured() definer {
	d := definer{&fakeBlock{id: fmt.Sprintf("def-%d", len(w.blocks))}}
	w.blocks = append(w.blocks, d)
	return d
}

func (w *fakeWorkspace) get(name string) getter {
	ref := name
	g := getter{&fakeBlock{id: fmt.Sprintf("get-%d", len(w.blocks)), ref: &ref}}
	w.blocks = append(w.blocks, g)
	return g
}

func (w *fakeWorkspace) unboundGet() getter {
	g := getter{&fakeBlock{id: fmt.Sprintf("get-%d", len(w.blocks))}}
	w.blocks = append(w.blocks, g)
	return g
}

func (w *fakeWorkspace) other() plain {
	p := plain{&fakeBlock{id: fmt.Sprintf("other-%d", len(w.blocks))}}
	w.blocks = append(w.blocks, p)
	return p
}

// setName commits a label the way a host would after Rename.
func (d definer) setName(name string) {
	d.def.Name = name
}

type catalogSet map[string]bool

func (c catalogSet) HasBlockType(typ string) bool { return c[typ] }

func names(slots []Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Name)
	}
	return out
}
