package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/utafrali/storefront-api/internal/repository"
)

// Store implements repository.DocumentStore on a MongoDB database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ repository.DocumentStore = (*Store)(nil)

// NewStore uses database dbName on client. The store owns the client and
// disconnects it on Close.
func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

func (s *Store) CreateDocument(ctx context.Context, collection string, data any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, data)
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return insertedID(res.InsertedID), nil
}

func (s *Store) GetDocuments(ctx context.Context, collection string) ([]repository.Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", collection, err)
	}

	var raws []bson.Raw
	if err := cur.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("read %s cursor: %w", collection, err)
	}

	docs := make([]repository.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, toDocument(raw))
	}
	return docs, nil
}

// GetDocument looks up a document by the hex form of its ObjectID. IDs that
// are not valid ObjectIDs never match.
func (s *Store) GetDocument(ctx context.Context, collection, id string) (*repository.Document, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	return s.findByID(ctx, collection, oid)
}

func (s *Store) CreateAndGet(ctx context.Context, collection string, data any) (*repository.Document, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", collection, err)
	}
	return s.findByID(ctx, collection, res.InsertedID)
}

func (s *Store) findByID(ctx context.Context, collection string, id any) (*repository.Document, error) {
	raw, err := s.db.Collection(collection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find one in %s: %w", collection, err)
	}
	doc := toDocument(raw)
	return &doc, nil
}

func (s *Store) CountDocuments(ctx context.Context, collection string) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func toDocument(raw bson.Raw) repository.Document {
	var id string
	if rv, err := raw.LookupErr("_id"); err == nil {
		id = rawID(rv)
	}
	return repository.NewDocument(id, raw, bson.Unmarshal)
}

func rawID(rv bson.RawValue) string {
	switch rv.Type {
	case bson.TypeObjectID:
		return rv.ObjectID().Hex()
	case bson.TypeString:
		return rv.StringValue()
	default:
		return rv.String()
	}
}

func insertedID(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
