package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront-api/internal/domain"
	"github.com/utafrali/storefront-api/internal/repository"
)

func TestStore_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	id, err := s.CreateDocument(ctx, domain.CollectionProduct, domain.DemoProducts()[0])
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	doc, err := s.GetDocument(ctx, domain.CollectionProduct, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)

	p := domain.NewProduct()
	require.NoError(t, doc.Decode(&p))
	assert.Equal(t, "Wireless Headphones", p.Title)
	assert.NotContains(t, string(doc.Body()), `"id"`)
}

func TestStore_GetDocument_NotFound(t *testing.T) {
	_, err := NewStore().GetDocument(context.Background(), domain.CollectionOrder, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_GetDocuments_OrderAndEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	docs, err := s.GetDocuments(ctx, domain.CollectionProduct)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	for _, p := range domain.DemoProducts() {
		_, err := s.CreateDocument(ctx, domain.CollectionProduct, p)
		require.NoError(t, err)
	}

	docs, err = s.GetDocuments(ctx, domain.CollectionProduct)
	require.NoError(t, err)
	require.Len(t, docs, 4)
	var first domain.Product
	require.NoError(t, docs[0].Decode(&first))
	assert.Equal(t, "Wireless Headphones", first.Title)

	n, err := s.CountDocuments(ctx, domain.CollectionProduct)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	order := domain.Order{CustomerName: "Ada", Total: 10}
	doc, err := s.CreateAndGet(ctx, domain.CollectionOrder, order)
	require.NoError(t, err)

	var got domain.Order
	require.NoError(t, doc.Decode(&got))
	assert.Equal(t, "Ada", got.CustomerName)
}

func TestStore_ListCollectionNames(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, _ = s.CreateDocument(ctx, "product", map[string]string{"title": "a"})
	_, _ = s.CreateDocument(ctx, "order", map[string]string{"customer_name": "b"})

	names, err := s.ListCollectionNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"order", "product"}, names)
	assert.NoError(t, s.Ping(ctx))
}

func TestStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.CreateDocument(ctx, "order", map[string]string{"n": fmt.Sprint(i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	n, err := s.CountDocuments(ctx, "order")
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)
}
