package editor

import (
	"errors"
	"testing"

	"github.com/ether/etherpad-todolist/lib/db"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/ether/etherpad-todolist/lib/uid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const todoData = `<ul class="todo-list"><li><label class="todo-list__label"><input type="checkbox" disabled="disabled">` +
	`<span class="todo-list__label__description">foo</span></label></li></ul>`

type uppercaseCommand struct{ enabled bool }

func (c uppercaseCommand) IsEnabled(s *State, _ Options) bool { return c.enabled && len(s.Blocks) > 0 }

func (c uppercaseCommand) Value(*State, Options) bool { return false }

func (c uppercaseCommand) Execute(w *Writer, _ Options) error {
	for _, i := range w.State().SelectedIndices() {
		b, err := w.Block(i)
		if err != nil {
			return err
		}
		b.Content = block.Paragraph{Inline: "FOO"}
		if err := w.SetBlock(i, b); err != nil {
			return err
		}
	}
	return nil
}

func newTestEditor() *Editor {
	return New(uid.NewSequence(), nil, nil, nil)
}

func TestEditor_SetDataRendersBothViews(t *testing.T) {
	ed := newTestEditor()
	require.NoError(t, ed.SetData(`<ul><li><input type="checkbox">foo</li></ul>`))

	assert.Equal(t, todoData, ed.GetData())
	assert.Contains(t, ed.GetView(), `data-list-item-id="a00"`)
	require.Len(t, ed.Blocks(), 1)
	assert.Equal(t, block.Todo, ed.Blocks()[0].Type)
}

func TestEditor_ChangeListenersSeeRenderedViews(t *testing.T) {
	ed := newTestEditor()
	var events []ChangeEvent
	unsubscribe := ed.OnChange(func(ev ChangeEvent) {
		assert.Equal(t, ev.Data, ed.GetData())
		events = append(events, ev)
	})

	require.NoError(t, ed.SetData(`<ul><li><input type="checkbox">foo</li></ul>`))
	require.NoError(t, ed.Change(func(w *Writer) error {
		return w.SetChecked(0, true)
	}))

	require.Len(t, events, 2)
	assert.True(t, events[1].Blocks[0].Checked)
	assert.Contains(t, events[1].Data, `checked="checked"`)

	unsubscribe()
	require.NoError(t, ed.Change(func(w *Writer) error { return w.SetChecked(0, false) }))
	assert.Len(t, events, 2)
}

func TestEditor_FailedBatchIsDiscarded(t *testing.T) {
	ed := newTestEditor()
	require.NoError(t, ed.SetData(`<ul><li><input type="checkbox">foo</li></ul>`))

	boom := errors.New("boom")
	err := ed.Change(func(w *Writer) error {
		require.NoError(t, w.SetChecked(0, true))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, ed.Blocks()[0].Checked)
	assert.Equal(t, todoData, ed.GetData())
}

func TestEditor_BatchesAreNormalized(t *testing.T) {
	ed := newTestEditor()
	require.NoError(t, ed.SetData(`<ul><li>foo</li></ul><p>bar</p>`))

	require.NoError(t, ed.Change(func(w *Writer) error {
		return w.SetListAttributes(1, "x", 3, block.Bulleted, true)
	}))

	blocks := ed.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, 1, blocks[1].Indent)
	assert.False(t, blocks[1].Checked)
	assert.NoError(t, block.Validate(blocks))
}

func TestEditor_Execute(t *testing.T) {
	ed := newTestEditor()
	require.NoError(t, ed.SetData(`<p>foo</p>`))

	_, err := ed.Execute("missing", Options{})
	assert.ErrorIs(t, err, ErrUnknownCommand)

	ed.RegisterCommand("off", uppercaseCommand{enabled: false})
	applied, err := ed.Execute("off", Options{})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "<p>foo</p>", ed.GetData())

	ed.RegisterCommand("upper", uppercaseCommand{enabled: true})
	applied, err = ed.Execute("upper", Options{})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "<p>FOO</p>", ed.GetData())

	assert.Equal(t, []string{"off", "upper"}, ed.Commands())
}

func TestEditor_SetSelection(t *testing.T) {
	ed := newTestEditor()
	require.NoError(t, ed.SetData(`<p>a</p><p>b</p>`))

	require.NoError(t, ed.SetSelection(0, 1))
	assert.Equal(t, Selection{Start: 0, End: 1}, ed.Selection())

	assert.ErrorIs(t, ed.SetSelection(1, 0), ErrInvalidSelection)
	assert.ErrorIs(t, ed.SetSelection(0, 2), ErrInvalidSelection)
}

func TestWriter_InsertAndRemove(t *testing.T) {
	w := newWriter([]block.ListBlock{{Content: block.Paragraph{Inline: "a"}}}, Selection{}, uid.NewSequence())

	require.NoError(t, w.Insert(1, block.ListBlock{Content: block.Paragraph{Inline: "b"}}))
	require.NoError(t, w.Insert(0, block.ListBlock{Content: block.Paragraph{Inline: "c"}}))
	assert.Equal(t, 3, w.Len())

	first, err := w.Block(0)
	require.NoError(t, err)
	assert.Equal(t, block.Paragraph{Inline: "c"}, first.Content)

	require.NoError(t, w.Remove(0))
	assert.Equal(t, 2, w.Len())

	assert.ErrorIs(t, w.Remove(5), ErrIndexOutOfRange)
	assert.ErrorIs(t, w.Insert(-1, block.ListBlock{}), ErrIndexOutOfRange)
	assert.Equal(t, "a00", w.NextID())
}

func TestState_SelectedItemsWidensToGroups(t *testing.T) {
	s := &State{
		Blocks: []block.ListBlock{
			{ID: "a", Type: block.Bulleted, Content: block.Paragraph{}},
			{ID: "a", Type: block.Bulleted, Content: block.Paragraph{}},
			{Content: block.Paragraph{}},
			{ID: "b", Type: block.Todo, Content: block.Paragraph{}},
		},
		Selection: Selection{Start: 1, End: 3},
	}

	assert.Equal(t, []int{1, 2, 3}, s.SelectedIndices())
	assert.Equal(t, []block.Span{{Start: 0, End: 2}, {Start: 2, End: 3}, {Start: 3, End: 4}}, s.SelectedItems())
}

func TestManager_LoadsAndSavesDocuments(t *testing.T) {
	store := db.NewMemoryDataStore()
	require.NoError(t, store.SaveDocument("doc", `<ul><li>foo</li></ul>`))

	m := NewManager(store, newTestEditor, nil)

	_, err := m.Get("missing")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	ed, err := m.Get("doc")
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>foo</li></ul>", ed.GetData())

	same, err := m.Load("doc")
	require.NoError(t, err)
	assert.Same(t, ed, same)

	fresh, err := m.Load("fresh")
	require.NoError(t, err)
	require.NoError(t, fresh.SetData(`<ol><li>bar</li></ol>`))

	stored, err := store.GetDocument("fresh")
	require.NoError(t, err)
	assert.Equal(t, "<ol><li>bar</li></ol>", stored.Content)

	ids, err := m.DocumentIds()
	require.NoError(t, err)
	assert.Equal(t, []string{"doc", "fresh"}, ids)

	require.NoError(t, m.Remove("fresh"))
	_, err = m.Get("fresh")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestManager_RemovedEditorNoLongerSaves(t *testing.T) {
	store := db.NewMemoryDataStore()
	m := NewManager(store, newTestEditor, nil)

	ed, err := m.Load("doc")
	require.NoError(t, err)
	require.NoError(t, ed.SetData(`<ul><li>foo</li></ul>`))

	require.NoError(t, m.Remove("doc"))
	require.NoError(t, ed.SetData(`<ul><li>bar</li></ul>`))

	_, err = store.GetDocument("doc")
	assert.ErrorIs(t, err, db.ErrDocumentNotFound)

	fresh, err := m.Load("doc")
	require.NoError(t, err)
	assert.NotSame(t, ed, fresh)
	assert.Empty(t, fresh.GetData())
}
