package workspace

import (
	"errors"
	"fmt"

	"github.com/zqp2013/blockly/pkg/slots"
)

// ErrBlockNotFound is returned when a block ID is not in the workspace.
var ErrBlockNotFound = errors.New("block not found")

// Workspace is an ordered collection of blocks. It implements
// slots.Workspace. Not safe for concurrent use.
type Workspace struct {
	blocks []Block
}

// New returns an empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// FromRecords builds a workspace from records in order and checks that every
// parent exists.
func FromRecords(records []Record) (*Workspace, error) {
	ws := New()
	for _, r := range records {
		b, err := NewBlock(r)
		if err != nil {
			return nil, fmt.Errorf("invalid block record: %w", err)
		}
		if err := ws.Add(b); err != nil {
			return nil, err
		}
	}

	for _, b := range ws.blocks {
		if p := b.Parent(); p != "" && ws.indexOf(p) < 0 {
			return nil, fmt.Errorf("block %s: parent %s not in workspace", b.ID(), p)
		}
	}
	return ws, nil
}

// Add appends b. IDs must be unique.
func (w *Workspace) Add(b Block) error {
	if w.indexOf(b.ID()) >= 0 {
		return fmt.Errorf("duplicate block ID: %s", b.ID())
	}
	w.blocks = append(w.blocks, b)
	return nil
}

// Nest adds b as a child of the block parentID.
func (w *Workspace) Nest(parentID string, b Block) error {
	if w.indexOf(parentID) < 0 {
		return fmt.Errorf("%w: parent %s", ErrBlockNotFound, parentID)
	}
	p, ok := b.(interface{ setParent(string) })
	if !ok {
		return fmt.Errorf("block %s cannot be nested", b.ID())
	}
	if err := w.Add(b); err != nil {
		return err
	}
	p.setParent(parentID)
	return nil
}

// Remove deletes the block and everything nested inside it.
func (w *Workspace) Remove(id string) error {
	if w.indexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}

	doomed := map[string]bool{id: true}
	for grew := true; grew; {
		grew = false
		for _, b := range w.blocks {
			if !doomed[b.ID()] && doomed[b.Parent()] {
				doomed[b.ID()] = true
				grew = true
			}
		}
	}

	kept := w.blocks[:0]
	for _, b := range w.blocks {
		if !doomed[b.ID()] {
			kept = append(kept, b)
		}
	}
	w.blocks = kept
	return nil
}

// Block returns the block with the given ID.
func (w *Workspace) Block(id string) (Block, error) {
	i := w.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, id)
	}
	return w.blocks[i], nil
}

// Blocks returns the blocks in workspace order.
func (w *Workspace) Blocks() []Block {
	return append([]Block(nil), w.blocks...)
}

// Len returns the number of blocks.
func (w *Workspace) Len() int { return len(w.blocks) }

// AllBlocks implements slots.Workspace.
func (w *Workspace) AllBlocks() []slots.Block {
	out := make([]slots.Block, len(w.blocks))
	for i, b := range w.blocks {
		out[i] = b
	}
	return out
}

// TopBlocks implements slots.Workspace.
func (w *Workspace) TopBlocks() []slots.Block {
	var out []slots.Block
	for _, b := range w.blocks {
		if b.Parent() == "" {
			out = append(out, b)
		}
	}
	return out
}

// Records flattens the workspace in order.
func (w *Workspace) Records() []Record {
	out := make([]Record, len(w.blocks))
	for i, b := range w.blocks {
		out[i] = b.Record()
	}
	return out
}

func (w *Workspace) indexOf(id string) int {
	for i, b := range w.blocks {
		if b.ID() == id {
			return i
		}
	}
	return -1
}
