package repository

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrUnavailable is returned by every operation when no store connection
	// exists.
	ErrUnavailable = errors.New("document store not available")

	// ErrNotFound is returned when a document does not exist or its ID is not
	// in the store's native form.
	ErrNotFound = errors.New("document not found")
)

// DocumentStore is schema-less storage over named collections. Documents are
// inserted once and never updated or deleted.
type DocumentStore interface {
	// CreateDocument inserts data as-is and returns the store-generated ID.
	CreateDocument(ctx context.Context, collection string, data any) (string, error)

	// GetDocuments returns every document in the collection in store order.
	// An empty collection yields an empty slice.
	GetDocuments(ctx context.Context, collection string) ([]Document, error)

	// GetDocument returns one document by its string ID.
	GetDocument(ctx context.Context, collection, id string) (*Document, error)

	// CreateAndGet inserts data and returns the stored document.
	CreateAndGet(ctx context.Context, collection string, data any) (*Document, error)

	CountDocuments(ctx context.Context, collection string) (int64, error)
	// ListCollectionNames returns backend errors unwrapped; their text is
	// surfaced verbatim by the /test diagnostics.
	ListCollectionNames(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Document is a stored record with its ID rendered as a string.
type Document struct {
	ID     string
	body   []byte
	decode func([]byte, any) error
}

// NewDocument wraps a raw body together with the function that decodes it.
func NewDocument(id string, body []byte, decode func([]byte, any) error) Document {
	return Document{ID: id, body: body, decode: decode}
}

// NewJSONDocument wraps a JSON body.
func NewJSONDocument(id string, body []byte) Document {
	return NewDocument(id, body, json.Unmarshal)
}

// Decode unmarshals the body into v. Fields missing from the body keep the
// values v already holds.
func (d Document) Decode(v any) error {
	if d.decode == nil {
		return json.Unmarshal(d.body, v)
	}
	return d.decode(d.body, v)
}

// Body returns the raw stored bytes.
func (d Document) Body() []byte {
	return d.body
}
