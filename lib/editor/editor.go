// Package editor hosts a list document: the block sequence, the selection,
// the command registry and both rendered views.
package editor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ether/etherpad-todolist/lib/downcast"
	"github.com/ether/etherpad-todolist/lib/hooks"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"github.com/ether/etherpad-todolist/lib/uid"
	"github.com/ether/etherpad-todolist/lib/upcast"
	uuid2 "github.com/google/uuid"
	"go.uber.org/zap"
)

// ChangeEvent is delivered to change listeners once a batch has been
// committed and both views re-rendered.
type ChangeEvent struct {
	Blocks    []block.ListBlock
	Selection Selection
	Data      string
	View      string
}

type changeListener struct {
	id string
	fn func(ChangeEvent)
}

type Editor struct {
	mu        sync.Mutex
	blocks    []block.ListBlock
	selection Selection
	data      string
	view      string
	commands  map[string]Command
	listeners []changeListener

	ids      uid.Source
	hooks    *hooks.Hook
	upcaster *upcast.Converter
	renderer *downcast.Renderer
	logger   *zap.SugaredLogger
}

func New(ids uid.Source, hook *hooks.Hook, renderer *downcast.Renderer, logger *zap.SugaredLogger) *Editor {
	if ids == nil {
		ids = uid.NewRandom()
	}
	if hook == nil {
		hook = hooks.NewHook()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if renderer == nil {
		renderer = downcast.NewRenderer(hook, 0, logger)
	}
	return &Editor{
		commands: make(map[string]Command),
		ids:      ids,
		hooks:    hook,
		upcaster: upcast.NewConverter(ids, hook, logger),
		renderer: renderer,
		logger:   logger,
	}
}

func (e *Editor) Hooks() *hooks.Hook { return e.hooks }

func (e *Editor) IDs() uid.Source { return e.ids }

func (e *Editor) Logger() *zap.SugaredLogger { return e.logger }

// SetData replaces the document with the upcast of markup.
func (e *Editor) SetData(markup string) error {
	return e.replace(func() []block.ListBlock {
		return e.upcaster.Convert(markup)
	})
}

// SetBlocks replaces the document with blocks. The sequence is normalized
// before it is rendered.
func (e *Editor) SetBlocks(blocks []block.ListBlock) error {
	return e.replace(func() []block.ListBlock {
		return block.CloneAll(blocks)
	})
}

func (e *Editor) replace(load func() []block.ListBlock) error {
	e.mu.Lock()
	event, err := e.commit(load(), Selection{})
	listeners := e.listenersLocked()
	e.mu.Unlock()

	if err != nil {
		return err
	}
	notify(listeners, event)
	return nil
}

// GetData returns the data markup of the current document.
func (e *Editor) GetData() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data
}

// GetView returns the editing view markup of the current document.
func (e *Editor) GetView() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

func (e *Editor) Blocks() []block.ListBlock {
	e.mu.Lock()
	defer e.mu.Unlock()
	return block.CloneAll(e.blocks)
}

func (e *Editor) Selection() Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection
}

func (e *Editor) SetSelection(start, end int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if start > end || start < 0 || (len(e.blocks) > 0 && end >= len(e.blocks)) || (len(e.blocks) == 0 && end > 0) {
		return fmt.Errorf("%w: [%d, %d] over %d blocks", ErrInvalidSelection, start, end, len(e.blocks))
	}
	e.selection = Selection{Start: start, End: end}
	return nil
}

func (e *Editor) RegisterCommand(name string, cmd Command) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.commands[name] = cmd
}

func (e *Editor) Commands() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CommandState reports whether a command is enabled and its current value.
func (e *Editor) CommandState(name string, opts Options) (enabled bool, value bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd, ok := e.commands[name]
	if !ok {
		return false, false, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	s := e.stateLocked()
	return cmd.IsEnabled(s, opts), cmd.Value(s, opts), nil
}

// Execute runs a registered command in its own change batch. A disabled
// command is a no-op and reports applied as false.
func (e *Editor) Execute(name string, opts Options) (applied bool, err error) {
	e.mu.Lock()
	cmd, ok := e.commands[name]
	e.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	err = e.Change(func(w *Writer) error {
		if !cmd.IsEnabled(w.State(), opts) {
			e.logger.Debugw("command is disabled", "command", name)
			return nil
		}
		applied = true
		return cmd.Execute(w, opts)
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// Change runs fn as one change batch. Writes are discarded when fn or the
// final render fails.
func (e *Editor) Change(fn func(w *Writer) error) error {
	e.mu.Lock()
	w := newWriter(e.blocks, e.selection, e.ids)
	if err := fn(w); err != nil {
		e.mu.Unlock()
		return err
	}
	if !w.changed {
		e.mu.Unlock()
		return nil
	}

	event, err := e.commit(w.blocks, w.selection)
	listeners := e.listenersLocked()
	e.mu.Unlock()

	if err != nil {
		return err
	}
	notify(listeners, event)
	return nil
}

// OnChange registers fn for committed changes and returns a function that
// removes it.
func (e *Editor) OnChange(fn func(ChangeEvent)) func() {
	id := uuid2.NewString()

	e.mu.Lock()
	e.listeners = append(e.listeners, changeListener{id: id, fn: fn})
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *Editor) stateLocked() *State {
	return &State{Blocks: e.blocks, Selection: e.selection}
}

func (e *Editor) listenersLocked() []changeListener {
	return append([]changeListener(nil), e.listeners...)
}

// commit normalizes blocks, renders both views and swaps them in. It must be
// called with e.mu held.
func (e *Editor) commit(blocks []block.ListBlock, sel Selection) (ChangeEvent, error) {
	normalized := block.Normalize(blocks, e.ids)

	data, err := e.renderer.Render(normalized, downcast.Data)
	if err != nil {
		return ChangeEvent{}, fmt.Errorf("render data: %w", err)
	}
	view, err := e.renderer.Render(normalized, downcast.Editing)
	if err != nil {
		return ChangeEvent{}, fmt.Errorf("render view: %w", err)
	}

	if len(normalized) == 0 {
		sel = Selection{}
	} else {
		sel.Start, sel.End = clampSelection(sel, len(normalized))
	}

	e.blocks = normalized
	e.selection = sel
	e.data = data
	e.view = view

	return ChangeEvent{
		Blocks:    block.CloneAll(normalized),
		Selection: sel,
		Data:      data,
		View:      view,
	}, nil
}

func notify(listeners []changeListener, event ChangeEvent) {
	for _, l := range listeners {
		l.fn(event)
	}
}
