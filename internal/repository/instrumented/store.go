// Package instrumented decorates a DocumentStore with tracing, metrics and
// slow-operation logging.
package instrumented

import (
	"context"

	"github.com/utafrali/storefront-api/internal/repository"
	"github.com/utafrali/storefront-api/pkg/database"
)

// Store wraps another DocumentStore. System names the backend in span and
// metric labels.
type Store struct {
	next   repository.DocumentStore
	system string
}

var _ repository.DocumentStore = (*Store)(nil)

func New(next repository.DocumentStore, system string) *Store {
	return &Store{next: next, system: system}
}

func (s *Store) start(ctx context.Context, op, collection string) (context.Context, func(error)) {
	return database.TraceOperation(ctx, database.Operation{
		System:     s.system,
		Name:       op,
		Collection: collection,
	}, repository.ErrNotFound)
}

func (s *Store) CreateDocument(ctx context.Context, collection string, data any) (id string, err error) {
	ctx, end := s.start(ctx, "insert", collection)
	defer func() { end(err) }()
	return s.next.CreateDocument(ctx, collection, data)
}

func (s *Store) GetDocuments(ctx context.Context, collection string) (docs []repository.Document, err error) {
	ctx, end := s.start(ctx, "find", collection)
	defer func() { end(err) }()
	return s.next.GetDocuments(ctx, collection)
}

func (s *Store) GetDocument(ctx context.Context, collection, id string) (doc *repository.Document, err error) {
	ctx, end := s.start(ctx, "find_one", collection)
	defer func() { end(err) }()
	return s.next.GetDocument(ctx, collection, id)
}

func (s *Store) CreateAndGet(ctx context.Context, collection string, data any) (doc *repository.Document, err error) {
	ctx, end := s.start(ctx, "insert_and_get", collection)
	defer func() { end(err) }()
	return s.next.CreateAndGet(ctx, collection, data)
}

func (s *Store) CountDocuments(ctx context.Context, collection string) (n int64, err error) {
	ctx, end := s.start(ctx, "count", collection)
	defer func() { end(err) }()
	return s.next.CountDocuments(ctx, collection)
}

func (s *Store) ListCollectionNames(ctx context.Context) (names []string, err error) {
	ctx, end := s.start(ctx, "list_collections", "")
	defer func() { end(err) }()
	return s.next.ListCollectionNames(ctx)
}

func (s *Store) Ping(ctx context.Context) (err error) {
	ctx, end := s.start(ctx, "ping", "")
	defer func() { end(err) }()
	return s.next.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.next.Close(ctx)
}

// Unwrap returns the decorated store.
func (s *Store) Unwrap() repository.DocumentStore {
	return s.next
}
