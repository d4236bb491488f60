package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ether/etherpad-todolist/lib/editor"
	"github.com/ether/etherpad-todolist/lib/observer"
	"github.com/ether/etherpad-todolist/lib/ws/ratelimiter"
	"go.uber.org/zap"
)

// DocumentHandler connects websocket clients to the editor of their
// document. Every committed change is broadcast to the document room as the
// new editing view.
type DocumentHandler struct {
	manager   *editor.Manager
	observers *observer.Pool
	hub       *Hub
	limiter   *ratelimiter.RateLimiter
	logger    *zap.SugaredLogger

	mu       sync.Mutex
	attached map[string]attachment
}

type attachment struct {
	editor      *editor.Editor
	unsubscribe func()
}

func NewDocumentHandler(manager *editor.Manager, observers *observer.Pool, hub *Hub, limiter *ratelimiter.RateLimiter, logger *zap.SugaredLogger) *DocumentHandler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &DocumentHandler{
		manager:   manager,
		observers: observers,
		hub:       hub,
		limiter:   limiter,
		logger:    logger,
		attached:  make(map[string]attachment),
	}
}

func (h *DocumentHandler) Hub() *Hub {
	return h.hub
}

// Attach loads the editor of docID and subscribes the room to its changes.
func (h *DocumentHandler) Attach(docID string) (*editor.Editor, error) {
	ed, err := h.manager.Load(docID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.attached[docID]; ok {
		if current.editor == ed {
			return ed, nil
		}
		current.unsubscribe()
	}

	unsubscribe := ed.OnChange(func(event editor.ChangeEvent) {
		select {
		case h.hub.Broadcast <- RoomMessage{Room: docID, Data: viewMessage(event.View, event.Selection)}:
		default:
			h.logger.Warnw("dropping view update, hub is busy", "docId", docID)
		}
	})
	h.attached[docID] = attachment{editor: ed, unsubscribe: unsubscribe}
	return ed, nil
}

// Detach stops broadcasting changes of docID and releases its observer.
func (h *DocumentHandler) Detach(docID string) {
	h.mu.Lock()
	if current, ok := h.attached[docID]; ok {
		current.unsubscribe()
		delete(h.attached, docID)
	}
	h.mu.Unlock()

	h.observers.Release(docID)
}

// HandleMessage dispatches one client message. Replies go to the client
// only; view updates reach the whole room through the change listener.
func (h *DocumentHandler) HandleMessage(ctx context.Context, c *Client, message []byte) {
	if err := h.limiter.CheckRateLimit(ratelimiter.Key(c.RemoteKey())); err != nil {
		h.logger.Debugw("rate limit exceeded", "room", c.Room, "client", c.RemoteKey())
		c.Reply(errorMessage(err.Error()))
		return
	}

	var incoming IncomingMessage
	if err := json.Unmarshal(message, &incoming); err != nil {
		h.logger.Warnw("error unmarshalling", "error", err)
		c.Reply(errorMessage("invalid message"))
		return
	}

	ed, err := h.Attach(c.Room)
	if err != nil {
		h.logger.Errorw("could not load document", "docId", c.Room, "error", err)
		c.Reply(errorMessage(err.Error()))
		return
	}

	switch incoming.Type {
	case TypeCheckboxChange:
		var change observer.CheckboxChange
		if err := json.Unmarshal(incoming.Data, &change); err != nil {
			c.Reply(errorMessage("invalid checkbox change"))
			return
		}
		o := h.observers.For(c.Room, ed)
		result, err := o.Submit(ctx, change)
		if err != nil {
			h.logger.Debugw("checkbox change not handled", "docId", c.Room, "error", err)
			c.Reply(checkboxResultMessage(o.Reject(change)))
			return
		}
		c.Reply(checkboxResultMessage(result))
	case TypeExecute:
		var request ExecuteRequest
		if err := json.Unmarshal(incoming.Data, &request); err != nil || request.Command == "" {
			c.Reply(errorMessage("invalid execute request"))
			return
		}
		applied, err := ed.Execute(request.Command, editor.Options{ItemID: request.ItemID, ForceValue: request.ForceValue})
		result := ExecuteResult{Command: request.Command, Applied: applied}
		if err != nil {
			result.Error = err.Error()
		}
		c.Reply(encode(TypeExecuteResult, result))
	case TypeSelection:
		var request SelectionRequest
		if err := json.Unmarshal(incoming.Data, &request); err != nil {
			c.Reply(errorMessage("invalid selection"))
			return
		}
		if err := ed.SetSelection(request.Start, request.End); err != nil {
			c.Reply(errorMessage(err.Error()))
		}
	default:
		c.Reply(errorMessage("unknown message type: " + incoming.Type))
	}
}

// Welcome sends the current editing view to a newly connected client.
func (h *DocumentHandler) Welcome(c *Client, ed *editor.Editor) {
	c.Reply(viewMessage(ed.GetView(), ed.Selection()))
}
