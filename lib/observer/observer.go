// Package observer turns checkbox toggles reported by the editing surface
// into checkTodoList commands, one toggle at a time.
package observer

import (
	"context"
	"errors"
	"strings"

	"github.com/ether/etherpad-todolist/lib/commands"
	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/models/block"
	"go.uber.org/zap"
)

// ItemIDAttribute carries the list item id on rendered checkboxes.
const ItemIDAttribute = "data-list-item-id"

// ErrStopped is returned for changes submitted to an observer whose Run loop
// has exited.
var ErrStopped = errors.New("checkbox observer stopped")

// CheckboxChange is a change event of an element in the editing view.
type CheckboxChange struct {
	Tag        string            `json:"tag"`
	Attributes map[string]string `json:"attributes"`
	Checked    bool              `json:"checked"`
}

// Result tells the editing surface what happened. When PreventDefault is set
// the surface must restore the checkbox to Checked.
type Result struct {
	ItemID         string `json:"itemId,omitempty"`
	Applied        bool   `json:"applied"`
	Checked        bool   `json:"checked"`
	PreventDefault bool   `json:"preventDefault"`
}

type request struct {
	change CheckboxChange
	reply  chan Result
}

type Observer struct {
	editor *editor.Editor
	queue  chan request
	done   chan struct{}
	logger *zap.SugaredLogger
}

func New(ed *editor.Editor, queueSize int, logger *zap.SugaredLogger) *Observer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Observer{
		editor: ed,
		queue:  make(chan request, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run processes queued changes until ctx is done.
func (o *Observer) Run(ctx context.Context) {
	defer close(o.done)
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-o.queue:
			req.reply <- o.Handle(req.change)
		}
	}
}

// Done is closed once Run has exited.
func (o *Observer) Done() <-chan struct{} {
	return o.done
}

// Submit queues a change behind the ones already waiting and blocks until it
// has been handled. It returns ErrStopped once Run has exited.
func (o *Observer) Submit(ctx context.Context, change CheckboxChange) (Result, error) {
	req := request{change: change, reply: make(chan Result, 1)}

	select {
	case o.queue <- req:
	case <-o.done:
		return Result{}, ErrStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res, nil
	case <-o.done:
		select {
		case res := <-req.reply:
			return res, nil
		default:
		}
		return Result{}, ErrStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Reject answers a change that could not be handled with the current model
// state, so the surface restores the checkbox.
func (o *Observer) Reject(change CheckboxChange) Result {
	id := change.Attributes[ItemIDAttribute]
	if id == "" {
		return Result{PreventDefault: true}
	}
	return Result{ItemID: id, Checked: o.checked(id), PreventDefault: true}
}

// Handle applies one change synchronously.
func (o *Observer) Handle(change CheckboxChange) Result {
	if !isCheckbox(change) {
		o.logger.Debugw("ignoring change of a non-checkbox element", "tag", change.Tag)
		return Result{PreventDefault: true, Checked: false}
	}

	id := change.Attributes[ItemIDAttribute]
	if id == "" {
		return Result{PreventDefault: true}
	}

	force := change.Checked
	applied, err := o.editor.Execute(commands.CheckTodoList, editor.Options{ItemID: id, ForceValue: &force})
	if err != nil {
		o.logger.Warnw("could not toggle todo item", "itemId", id, "error", err)
	}

	res := Result{ItemID: id, Checked: o.checked(id)}
	if err != nil || !applied {
		res.PreventDefault = true
		return res
	}
	res.Applied = true
	return res
}

// checked reads the authoritative state of the item from the model.
func (o *Observer) checked(id string) bool {
	blocks := o.editor.Blocks()
	span, ok := block.FindGroup(blocks, id)
	if !ok {
		return false
	}
	return blocks[span.Start].Checked
}

func isCheckbox(change CheckboxChange) bool {
	if !strings.EqualFold(change.Tag, "input") {
		return false
	}
	return strings.EqualFold(change.Attributes["type"], "checkbox")
}
