package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/utafrali/storefront-api/internal/domain"
	"github.com/utafrali/storefront-api/internal/repository"
)

const testDB = "storefront"

func productDoc(id primitive.ObjectID, title string, price float64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "description", Value: "desc"},
		{Key: "price", Value: price},
		{Key: "category", Value: "Home"},
		{Key: "image", Value: "https://example.com/x.jpg"},
		{Key: "in_stock", Value: true},
	}
}

func TestStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := testDB + "." + domain.CollectionProduct

	mt.Run("create document returns hex id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := NewStore(mt.Client, testDB)

		id, err := s.CreateDocument(context.Background(), domain.CollectionProduct, domain.DemoProducts()[0])
		require.NoError(mt, err)
		_, err = primitive.ObjectIDFromHex(id)
		assert.NoError(mt, err)
	})

	mt.Run("get documents stringifies ids", func(mt *mtest.T) {
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				productDoc(a, "Smart Watch", 199),
				productDoc(b, "Espresso Maker", 89.5),
			),
		)
		s := NewStore(mt.Client, testDB)

		docs, err := s.GetDocuments(context.Background(), domain.CollectionProduct)
		require.NoError(mt, err)
		require.Len(mt, docs, 2)
		assert.Equal(mt, a.Hex(), docs[0].ID)
		assert.Equal(mt, b.Hex(), docs[1].ID)

		p := domain.NewProduct()
		require.NoError(mt, docs[1].Decode(&p))
		assert.Equal(mt, "Espresso Maker", p.Title)
		assert.Equal(mt, 89.5, p.Price)
		assert.Empty(mt, p.ID)
	})

	mt.Run("get documents on empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		s := NewStore(mt.Client, testDB)

		docs, err := s.GetDocuments(context.Background(), domain.CollectionProduct)
		require.NoError(mt, err)
		assert.NotNil(mt, docs)
		assert.Empty(mt, docs)
	})

	mt.Run("get documents surfaces command errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on storefront",
		}))
		s := NewStore(mt.Client, testDB)

		_, err := s.GetDocuments(context.Background(), domain.CollectionProduct)
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "not authorized")
	})

	mt.Run("get document by id", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, productDoc(id, "Running Shoes", 74.99)))
		s := NewStore(mt.Client, testDB)

		doc, err := s.GetDocument(context.Background(), domain.CollectionProduct, id.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), doc.ID)
	})

	mt.Run("get document not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		s := NewStore(mt.Client, testDB)

		_, err := s.GetDocument(context.Background(), domain.CollectionProduct, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("get document with malformed id", func(mt *mtest.T) {
		s := NewStore(mt.Client, testDB)

		_, err := s.GetDocument(context.Background(), domain.CollectionProduct, "not-an-object-id")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("create and get reads the order back", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, testDB+"."+domain.CollectionOrder, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "customer_name", Value: "Ada"},
				{Key: "total", Value: 398.0},
			}),
		)
		s := NewStore(mt.Client, testDB)

		doc, err := s.CreateAndGet(context.Background(), domain.CollectionOrder, domain.Order{CustomerName: "Ada", Total: 398})
		require.NoError(mt, err)
		assert.Equal(mt, id.Hex(), doc.ID)

		var o domain.Order
		require.NoError(mt, doc.Decode(&o))
		assert.Equal(mt, "Ada", o.CustomerName)
	})

	mt.Run("create and get with missing re-read", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, testDB+"."+domain.CollectionOrder, mtest.FirstBatch),
		)
		s := NewStore(mt.Client, testDB)

		_, err := s.CreateAndGet(context.Background(), domain.CollectionOrder, domain.Order{})
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("count documents", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(4)}}))
		s := NewStore(mt.Client, testDB)

		n, err := s.CountDocuments(context.Background(), domain.CollectionProduct)
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), n)
	})

	mt.Run("list collection names", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".$cmd.listCollections", mtest.FirstBatch,
			bson.D{{Key: "name", Value: "product"}, {Key: "type", Value: "collection"}},
			bson.D{{Key: "name", Value: "order"}, {Key: "type", Value: "collection"}},
		))
		s := NewStore(mt.Client, testDB)

		names, err := s.ListCollectionNames(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []string{"product", "order"}, names)
	})

	mt.Run("list collection names returns driver error text", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on storefront",
		}))
		s := NewStore(mt.Client, testDB)

		_, err := s.ListCollectionNames(context.Background())
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "not authorized on storefront")
		assert.NotContains(mt, err.Error(), "list collections")
	})

	mt.Run("ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := NewStore(mt.Client, testDB)

		assert.NoError(mt, s.Ping(context.Background()))
	})
}

func TestRawID(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.D{{Key: "_id", Value: oid}})
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), toDocument(raw).ID)

	raw, err = bson.Marshal(bson.D{{Key: "_id", Value: "sku-1"}})
	require.NoError(t, err)
	assert.Equal(t, "sku-1", toDocument(raw).ID)

	raw, err = bson.Marshal(bson.D{{Key: "_id", Value: int32(7)}})
	require.NoError(t, err)
	assert.NotEmpty(t, toDocument(raw).ID)
}

func TestInsertedID(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), insertedID(oid))
	assert.Equal(t, "abc", insertedID("abc"))
	assert.Equal(t, "12", insertedID(int64(12)))
}
