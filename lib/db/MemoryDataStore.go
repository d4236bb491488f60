package db

import (
	"sort"
	"sync"
	"time"

	"github.com/ether/etherpad-todolist/lib/models/db"
)

type MemoryDataStore struct {
	mu            sync.RWMutex
	documentStore map[string]db.DocumentDB
}

func (m *MemoryDataStore) SaveDocument(docID string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	existing, ok := m.documentStore[docID]
	if !ok {
		m.documentStore[docID] = db.DocumentDB{ID: docID, Content: content, CreatedAt: now}
		return nil
	}

	existing.Content = content
	existing.UpdatedAt = &now
	m.documentStore[docID] = existing
	return nil
}

func (m *MemoryDataStore) GetDocument(docID string) (*db.DocumentDB, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	document, ok := m.documentStore[docID]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return &document, nil
}

func (m *MemoryDataStore) DoesDocumentExist(docID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.documentStore[docID]
	return ok, nil
}

func (m *MemoryDataStore) RemoveDocument(docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.documentStore[docID]; !ok {
		return ErrDocumentNotFound
	}
	delete(m.documentStore, docID)
	return nil
}

func (m *MemoryDataStore) GetDocumentIds() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docIds := make([]string, 0, len(m.documentStore))
	for k := range m.documentStore {
		docIds = append(docIds, k)
	}
	sort.Strings(docIds)
	return docIds, nil
}

func (m *MemoryDataStore) Ping() error {
	return nil
}

func (m *MemoryDataStore) Close() error {
	return nil
}

func NewMemoryDataStore() *MemoryDataStore {
	return &MemoryDataStore{
		documentStore: make(map[string]db.DocumentDB),
	}
}

var _ DataStore = (*MemoryDataStore)(nil)
