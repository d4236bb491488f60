package editor

import (
	"errors"
	"sort"
	"sync"

	"github.com/ether/etherpad-todolist/lib/db"
	"go.uber.org/zap"
)

// Manager keeps one editor per document id. Committed changes are written
// back to the data store as data markup.
type Manager struct {
	mu      sync.Mutex
	editors map[string]*Editor
	// unsave detaches the save listener of a loaded editor.
	unsave  map[string]func()
	store   db.DataStore
	factory func() *Editor
	logger  *zap.SugaredLogger
}

func NewManager(store db.DataStore, factory func() *Editor, logger *zap.SugaredLogger) *Manager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Manager{
		editors: make(map[string]*Editor),
		unsave:  make(map[string]func()),
		store:   store,
		factory: factory,
		logger:  logger,
	}
}

// Get returns the editor of an existing document.
func (m *Manager) Get(docID string) (*Editor, error) {
	return m.load(docID, false)
}

// Load returns the editor of docID, creating an empty document when none
// is stored yet.
func (m *Manager) Load(docID string) (*Editor, error) {
	return m.load(docID, true)
}

func (m *Manager) load(docID string, create bool) (*Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ed, ok := m.editors[docID]; ok {
		return ed, nil
	}

	ed := m.factory()
	document, err := m.store.GetDocument(docID)
	switch {
	case errors.Is(err, db.ErrDocumentNotFound):
		if !create {
			return nil, ErrDocumentNotFound
		}
	case err != nil:
		return nil, err
	default:
		if err := ed.SetData(document.Content); err != nil {
			return nil, err
		}
	}

	m.unsave[docID] = ed.OnChange(func(event ChangeEvent) {
		if err := m.store.SaveDocument(docID, event.Data); err != nil {
			m.logger.Errorw("could not save document", "docId", docID, "error", err)
		}
	})
	m.editors[docID] = ed
	m.logger.Debugw("loaded document", "docId", docID)
	return ed, nil
}

// Remove drops the document from memory and from the store. Editors still
// held elsewhere no longer write to the store.
func (m *Manager) Remove(docID string) error {
	m.mu.Lock()
	_, loaded := m.editors[docID]
	if unsave, ok := m.unsave[docID]; ok {
		unsave()
		delete(m.unsave, docID)
	}
	delete(m.editors, docID)
	m.mu.Unlock()

	err := m.store.RemoveDocument(docID)
	if errors.Is(err, db.ErrDocumentNotFound) && loaded {
		return nil
	}
	return err
}

// DocumentIds lists stored and loaded documents.
func (m *Manager) DocumentIds() ([]string, error) {
	stored, err := m.store.GetDocumentIds()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(stored))
	for _, id := range stored {
		seen[id] = struct{}{}
	}

	m.mu.Lock()
	for id := range m.editors {
		seen[id] = struct{}{}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
