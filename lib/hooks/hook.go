package hooks

import (
	"sync"

	"github.com/ether/etherpad-todolist/lib/hooks/events"
	uuid2 "github.com/google/uuid"
)

// Hook names.
const (
	ListRendered   = "listRendered"
	ListItemUpcast = "listItemUpcast"
)

type registeredHook struct {
	id string
	cb func(ctx any)
}

type Hook struct {
	mu    sync.RWMutex
	hooks map[string][]registeredHook
}

func NewHook() *Hook {
	return &Hook{
		hooks: make(map[string][]registeredHook),
	}
}

// EnqueueListRenderedHook registers a post-render callback. It runs
// synchronously after each top-level list region has been rendered.
func (h *Hook) EnqueueListRenderedHook(cb func(ctx *events.ListRenderedContext)) string {
	return h.EnqueueHook(ListRendered, func(ctx any) {
		if renderedCtx, ok := ctx.(*events.ListRenderedContext); ok {
			cb(renderedCtx)
		}
	})
}

func (h *Hook) ExecuteListRenderedHooks(ctx *events.ListRenderedContext) {
	h.ExecuteHooks(ListRendered, ctx)
}

func (h *Hook) EnqueueListItemUpcastHook(cb func(ctx *events.ListItemUpcastContext)) string {
	return h.EnqueueHook(ListItemUpcast, func(ctx any) {
		if upcastCtx, ok := ctx.(*events.ListItemUpcastContext); ok {
			cb(upcastCtx)
		}
	})
}

func (h *Hook) ExecuteListItemUpcastHooks(ctx *events.ListItemUpcastContext) {
	h.ExecuteHooks(ListItemUpcast, ctx)
}

func (h *Hook) EnqueueHook(key string, ctx func(ctx any)) string {
	var uuid = uuid2.New()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks[key] = append(h.hooks[key], registeredHook{id: uuid.String(), cb: ctx})

	return uuid.String()
}

func (h *Hook) DequeueHook(key, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	registered := h.hooks[key]
	for i, r := range registered {
		if r.id == id {
			h.hooks[key] = append(registered[:i:i], registered[i+1:]...)
			return
		}
	}
}

// ExecuteHooks runs the callbacks registered under key in registration order.
// A nil Hook runs nothing.
func (h *Hook) ExecuteHooks(key string, ctx any) {
	if h == nil {
		return
	}

	h.mu.RLock()
	registered := append([]registeredHook(nil), h.hooks[key]...)
	h.mu.RUnlock()

	for _, r := range registered {
		r.cb(ctx)
	}
}
