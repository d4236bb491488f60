// Package commands implements the list commands registered on the editor.
package commands

import (
	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/models/block"
)

// Command names.
const (
	BulletedList  = "bulletedList"
	NumberedList  = "numberedList"
	TodoList      = "todoList"
	CheckTodoList = "checkTodoList"
)

// ListCommand converts the selection into items of one list type, or back
// into plain blocks when every selected item already has that type.
type ListCommand struct {
	Type block.Type
}

func NewListCommand(t block.Type) *ListCommand {
	return &ListCommand{Type: t}
}

func (c *ListCommand) IsEnabled(s *editor.State, _ editor.Options) bool {
	for _, i := range s.SelectedIndices() {
		if block.AllowsListAttributes(s.Blocks[i].Content) {
			return true
		}
	}
	return false
}

func (c *ListCommand) Value(s *editor.State, _ editor.Options) bool {
	found := false
	for _, i := range s.SelectedIndices() {
		b := s.Blocks[i]
		if !block.AllowsListAttributes(b.Content) {
			continue
		}
		if b.Type != c.Type {
			return false
		}
		found = true
	}
	return found
}

func (c *ListCommand) Execute(w *editor.Writer, opts editor.Options) error {
	s := w.State()
	turnOn := !c.Value(s, opts)
	if opts.ForceValue != nil {
		turnOn = *opts.ForceValue
	}

	items := s.SelectedItems()
	if len(items) == 0 {
		return nil
	}

	if !turnOn {
		for _, span := range items {
			for i := span.Start; i < span.End; i++ {
				if !s.Blocks[i].IsListItem() {
					continue
				}
				if err := w.RemoveListAttributes(i); err != nil {
					return err
				}
			}
		}
		return nil
	}

	joinIndent := 0
	if first := items[0].Start; first > 0 && s.Blocks[first-1].IsListItem() {
		joinIndent = s.Blocks[first-1].Indent
	}

	for _, span := range items {
		anchor := s.Blocks[span.Start]
		if !block.AllowsListAttributes(anchor.Content) {
			continue
		}

		if !anchor.IsListItem() {
			if err := w.SetListAttributes(span.Start, w.NextID(), joinIndent, c.Type, false); err != nil {
				return err
			}
			continue
		}

		if anchor.Type == c.Type {
			continue
		}
		for i := span.Start; i < span.End; i++ {
			if err := w.SetListAttributes(i, anchor.ID, anchor.Indent, c.Type, anchor.Checked); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckTodoListCommand toggles the checked state of todo items. The target
// is the item named by Options.ItemID, or the items of the selection.
type CheckTodoListCommand struct{}

func NewCheckTodoListCommand() *CheckTodoListCommand {
	return &CheckTodoListCommand{}
}

func (c *CheckTodoListCommand) targets(s *editor.State, opts editor.Options) []block.Span {
	if opts.ItemID != "" {
		span, ok := block.FindGroup(s.Blocks, opts.ItemID)
		if !ok {
			return nil
		}
		return []block.Span{span}
	}

	var spans []block.Span
	for _, span := range s.SelectedItems() {
		if s.Blocks[span.Start].IsListItem() {
			spans = append(spans, span)
		}
	}
	return spans
}

func (c *CheckTodoListCommand) IsEnabled(s *editor.State, opts editor.Options) bool {
	targets := c.targets(s, opts)
	if len(targets) == 0 {
		return false
	}
	for _, span := range targets {
		if s.Blocks[span.Start].Type != block.Todo {
			return false
		}
	}
	return true
}

func (c *CheckTodoListCommand) Value(s *editor.State, opts editor.Options) bool {
	targets := c.targets(s, opts)
	if len(targets) == 0 {
		return false
	}
	for _, span := range targets {
		if !s.Blocks[span.Start].Checked {
			return false
		}
	}
	return true
}

func (c *CheckTodoListCommand) Execute(w *editor.Writer, opts editor.Options) error {
	s := w.State()
	checked := !c.Value(s, opts)
	if opts.ForceValue != nil {
		checked = *opts.ForceValue
	}

	for _, span := range c.targets(s, opts) {
		for i := span.Start; i < span.End; i++ {
			if err := w.SetChecked(i, checked); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegisterListCommands adds the bulleted and numbered list commands to ed.
func RegisterListCommands(ed *editor.Editor) {
	ed.RegisterCommand(BulletedList, NewListCommand(block.Bulleted))
	ed.RegisterCommand(NumberedList, NewListCommand(block.Numbered))
}

// RegisterTodoCommands adds the todo commands to ed.
func RegisterTodoCommands(ed *editor.Editor) {
	ed.RegisterCommand(TodoList, NewListCommand(block.Todo))
	ed.RegisterCommand(CheckTodoList, NewCheckTodoListCommand())
}
