package repository

import "context"

// Unavailable stands in for a store that could not be configured. Every
// operation fails with ErrUnavailable.
type Unavailable struct{}

var _ DocumentStore = Unavailable{}

func (Unavailable) CreateDocument(context.Context, string, any) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) GetDocuments(context.Context, string) ([]Document, error) {
	return nil, ErrUnavailable
}

func (Unavailable) GetDocument(context.Context, string, string) (*Document, error) {
	return nil, ErrUnavailable
}

func (Unavailable) CreateAndGet(context.Context, string, any) (*Document, error) {
	return nil, ErrUnavailable
}

func (Unavailable) CountDocuments(context.Context, string) (int64, error) {
	return 0, ErrUnavailable
}

func (Unavailable) ListCollectionNames(context.Context) ([]string, error) {
	return nil, ErrUnavailable
}

func (Unavailable) Ping(context.Context) error {
	return ErrUnavailable
}

func (Unavailable) Close(context.Context) error {
	return nil
}
