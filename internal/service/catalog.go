package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/utafrali/storefront-api/internal/domain"
	"github.com/utafrali/storefront-api/internal/repository"
)

// SeedResult reports what SeedProducts did.
type SeedResult struct {
	Seeded  bool   `json:"seeded"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count,omitempty"`
}

const msgProductsExist = "Products already exist"

// CatalogService reads and seeds the product collection.
type CatalogService struct {
	store  repository.DocumentStore
	logger *slog.Logger

	seedMu sync.Mutex
}

func NewCatalogService(store repository.DocumentStore, logger *slog.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

// ListProducts returns every stored product with its ID set.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	docs, err := s.store.GetDocuments(ctx, domain.CollectionProduct)
	if err != nil {
		return nil, storeError("list products", err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		p := domain.NewProduct()
		if err := doc.Decode(&p); err != nil {
			return nil, storeError("decode product "+doc.ID, err)
		}
		p.ID = doc.ID
		products = append(products, p)
	}
	return products, nil
}

// SeedProducts inserts the demo catalog when the product collection is
// empty. Calls within this process are serialized; separate processes
// seeding the same database can still both insert.
func (s *CatalogService) SeedProducts(ctx context.Context) (*SeedResult, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	n, err := s.store.CountDocuments(ctx, domain.CollectionProduct)
	if err != nil {
		return nil, storeError("count products", err)
	}
	if n > 0 {
		return &SeedResult{Seeded: false, Message: msgProductsExist}, nil
	}

	demo := domain.DemoProducts()
	for i, p := range demo {
		if _, err := s.store.CreateDocument(ctx, domain.CollectionProduct, p); err != nil {
			return nil, storeError(fmt.Sprintf("seed product %d of %d", i+1, len(demo)), err)
		}
	}

	s.logger.InfoContext(ctx, "seeded demo products", slog.Int("count", len(demo)))
	return &SeedResult{Seeded: true, Count: len(demo)}, nil
}
