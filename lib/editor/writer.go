package editor

import (
	"fmt"

	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/ether/etherpad-todolist/lib/uid"
)

// Writer mutates a working copy of the document inside one change batch.
// The copy is normalized, validated and rendered when the batch ends.
type Writer struct {
	blocks    []block.ListBlock
	selection Selection
	ids       uid.Source
	changed   bool
}

func newWriter(blocks []block.ListBlock, sel Selection, ids uid.Source) *Writer {
	return &Writer{
		blocks:    block.CloneAll(blocks),
		selection: sel,
		ids:       ids,
	}
}

// State exposes the working copy. It reflects earlier writes of the batch.
func (w *Writer) State() *State {
	return &State{Blocks: w.blocks, Selection: w.selection}
}

func (w *Writer) Len() int {
	return len(w.blocks)
}

func (w *Writer) Block(i int) (block.ListBlock, error) {
	if err := w.checkIndex(i); err != nil {
		return block.ListBlock{}, err
	}
	return w.blocks[i], nil
}

func (w *Writer) SetBlock(i int, b block.ListBlock) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	w.blocks[i] = b
	w.changed = true
	return nil
}

// SetListAttributes turns block i into (part of) the list item id.
func (w *Writer) SetListAttributes(i int, id string, indent int, t block.Type, checked bool) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	b := &w.blocks[i]
	b.ID = id
	b.Indent = indent
	b.Type = t
	b.Checked = checked && t == block.Todo
	w.changed = true
	return nil
}

func (w *Writer) RemoveListAttributes(i int) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	w.blocks[i] = w.blocks[i].WithoutListAttributes()
	w.changed = true
	return nil
}

func (w *Writer) SetChecked(i int, checked bool) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	w.blocks[i].Checked = checked
	w.changed = true
	return nil
}

// Insert places b before index i; i == Len appends.
func (w *Writer) Insert(i int, b block.ListBlock) error {
	if i < 0 || i > len(w.blocks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	w.blocks = append(w.blocks, block.ListBlock{})
	copy(w.blocks[i+1:], w.blocks[i:])
	w.blocks[i] = b
	w.changed = true
	return nil
}

func (w *Writer) Remove(i int) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	w.blocks = append(w.blocks[:i], w.blocks[i+1:]...)
	w.changed = true
	return nil
}

func (w *Writer) SetSelection(sel Selection) {
	w.selection = sel
	w.changed = true
}

// NextID allocates a fresh list item id.
func (w *Writer) NextID() string {
	return w.ids.Next()
}

func (w *Writer) checkIndex(i int) error {
	if i < 0 || i >= len(w.blocks) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return nil
}
