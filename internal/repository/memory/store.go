package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/utafrali/storefront-api/internal/repository"
)

type entry struct {
	id   string
	body []byte
}

// Store keeps JSON documents in process memory, in insertion order.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]entry
}

var _ repository.DocumentStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{collections: make(map[string][]entry)}
}

func (s *Store) CreateDocument(_ context.Context, collection string, data any) (string, error) {
	body, err := repository.MarshalBody(data)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], entry{id: id, body: body})
	s.mu.Unlock()

	return id, nil
}

func (s *Store) GetDocuments(_ context.Context, collection string) ([]repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.collections[collection]
	docs := make([]repository.Document, 0, len(entries))
	for _, e := range entries {
		docs = append(docs, repository.NewJSONDocument(e.id, e.body))
	}
	return docs, nil
}

func (s *Store) GetDocument(_ context.Context, collection, id string) (*repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.collections[collection] {
		if e.id == id {
			doc := repository.NewJSONDocument(e.id, e.body)
			return &doc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *Store) CreateAndGet(ctx context.Context, collection string, data any) (*repository.Document, error) {
	id, err := s.CreateDocument(ctx, collection, data)
	if err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, collection, id)
}

func (s *Store) CountDocuments(_ context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.collections[collection])), nil
}

// ListCollectionNames returns collections holding at least one document,
// sorted by name.
func (s *Store) ListCollectionNames(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name, entries := range s.collections {
		if len(entries) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close(context.Context) error { return nil }
