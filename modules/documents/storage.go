package documents

import (
	"context"
	"fmt"
	"sync"

	"github.com/platdesign/i18ngoose/pkg/document"
	"github.com/platdesign/i18ngoose/pkg/schema"
)

// Storage persists documents in their multi-language form.
// The mongo package's Repository satisfies it.
type Storage interface {
	Insert(ctx context.Context, doc *document.Document) error
	Replace(ctx context.Context, doc *document.Document) error
	FindByID(ctx context.Context, id string) (*document.Document, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStorage keeps documents of one schema in memory. It is safe for
// concurrent use.
type MemoryStorage struct {
	schema *schema.Schema
	mu     sync.RWMutex
	items  map[string]*document.Document
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage(s *schema.Schema) *MemoryStorage {
	return &MemoryStorage{schema: s, items: make(map[string]*document.Document)}
}

func (m *MemoryStorage) Insert(_ context.Context, doc *document.Document) error {
	if err := check(doc); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[doc.ID()]; ok {
		return fmt.Errorf("%w: %s", document.ErrDuplicateID, doc.ID())
	}
	m.items[doc.ID()] = snapshot(m.schema, doc)
	return nil
}

func (m *MemoryStorage) Replace(_ context.Context, doc *document.Document) error {
	if err := check(doc); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[doc.ID()] = snapshot(m.schema, doc)
	return nil
}

func (m *MemoryStorage) FindByID(_ context.Context, id string) (*document.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", document.ErrNotFound, id)
	}
	return snapshot(m.schema, stored), nil
}

func (m *MemoryStorage) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("%w: %s", document.ErrNotFound, id)
	}
	delete(m.items, id)
	return nil
}

// Len reports the number of stored documents.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// snapshot copies doc so stored and handed out documents never share data.
func snapshot(s *schema.Schema, doc *document.Document) *document.Document {
	return document.FromObject(s, doc.ID(), doc.ToObject(document.WithoutPopulated()))
}

func check(doc *document.Document) error {
	if doc == nil {
		return document.ErrNilDocument
	}
	return doc.Validate()
}
