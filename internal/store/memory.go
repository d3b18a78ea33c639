package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/trentd187/states-api/internal/models"
)

// MemoryStore keeps fun-fact documents in a map guarded by a mutex.
// Each operation holds the lock for its whole read-modify-write, so concurrent
// edits to the same state never lose an update.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]models.FunFactDocument // state code -> document

	now func() time.Time // Overridable clock for tests
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]models.FunFactDocument),
		now:  time.Now,
	}
}

// clone copies the fact slice so callers can't mutate the stored document through
// the value they got back.
func clone(doc models.FunFactDocument) models.FunFactDocument {
	facts := make(pq.StringArray, len(doc.FunFacts))
	copy(facts, doc.FunFacts)
	doc.FunFacts = facts
	return doc
}

func (s *MemoryStore) Get(_ context.Context, code string) (models.FunFactDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[code]
	if !ok {
		return models.FunFactDocument{}, ErrDocumentNotFound
	}
	return clone(doc), nil
}

func (s *MemoryStore) List(_ context.Context) ([]models.FunFactDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FunFactDocument, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, clone(doc))
	}
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, code string, facts []string) (models.FunFactDocument, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	doc, exists := s.docs[code]
	if !exists {
		doc = models.FunFactDocument{
			ID:        uuid.New(),
			StateCode: code,
			FunFacts:  pq.StringArray{},
			CreatedAt: now,
		}
	}
	doc = clone(doc)
	doc.FunFacts = append(doc.FunFacts, facts...)
	doc.UpdatedAt = now
	s.docs[code] = doc

	return clone(doc), !exists, nil
}

func (s *MemoryStore) Replace(_ context.Context, code string, index *int, fact string) (models.FunFactDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[code]
	if !ok {
		return models.FunFactDocument{}, ErrDocumentNotFound
	}
	i, err := resolveIndex(index, len(doc.FunFacts))
	if err != nil {
		return models.FunFactDocument{}, err
	}

	doc.FunFacts = replaceAt(doc.FunFacts, i, fact)
	doc.UpdatedAt = s.now().UTC()
	s.docs[code] = doc
	return clone(doc), nil
}

func (s *MemoryStore) Remove(_ context.Context, code string, index *int) (models.FunFactDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[code]
	if !ok {
		return models.FunFactDocument{}, ErrDocumentNotFound
	}
	i, err := resolveIndex(index, len(doc.FunFacts))
	if err != nil {
		return models.FunFactDocument{}, err
	}

	doc.FunFacts = removeAt(doc.FunFacts, i)
	doc.UpdatedAt = s.now().UTC()
	s.docs[code] = doc
	return clone(doc), nil
}
