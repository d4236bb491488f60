package observer

import (
	"context"
	"sync"

	"github.com/ether/etherpad-todolist/lib/editor"
	"go.uber.org/zap"
)

// Pool runs one observer per document.
type Pool struct {
	mu        sync.Mutex
	ctx       context.Context
	observers map[string]*poolEntry
	queueSize int
	logger    *zap.SugaredLogger
}

type poolEntry struct {
	observer *Observer
	cancel   context.CancelFunc
}

func NewPool(ctx context.Context, queueSize int, logger *zap.SugaredLogger) *Pool {
	return &Pool{
		ctx:       ctx,
		observers: make(map[string]*poolEntry),
		queueSize: queueSize,
		logger:    logger,
	}
}

// For returns the running observer of docID, starting it on first use.
func (p *Pool) For(docID string, ed *editor.Editor) *Observer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.observers[docID]; ok && entry.observer.editor == ed {
		return entry.observer
	} else if ok {
		entry.cancel()
	}

	ctx, cancel := context.WithCancel(p.ctx)
	o := New(ed, p.queueSize, p.logger)
	go o.Run(ctx)

	p.observers[docID] = &poolEntry{observer: o, cancel: cancel}
	return o
}

// Release stops the observer of docID.
func (p *Pool) Release(docID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.observers[docID]; ok {
		entry.cancel()
		delete(p.observers, docID)
	}
}
