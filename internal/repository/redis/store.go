package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront-api/internal/repository"
)

// Store implements repository.DocumentStore on Redis.
//
// Each collection is a hash of id -> JSON body under "<prefix>:<collection>"
// plus a list of ids in insertion order under "<prefix>:<collection>:ids".
// Known collection names are kept in the set "<prefix>:collections".
type Store struct {
	rdb    *redis.Client
	prefix string
}

var _ repository.DocumentStore = (*Store)(nil)

func NewStore(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) hashKey(collection string) string {
	return s.prefix + ":" + collection
}

func (s *Store) idsKey(collection string) string {
	return s.prefix + ":" + collection + ":ids"
}

func (s *Store) collectionsKey() string {
	return s.prefix + ":collections"
}

func (s *Store) CreateDocument(ctx context.Context, collection string, data any) (string, error) {
	body, err := repository.MarshalBody(data)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.hashKey(collection), id, body)
		pipe.RPush(ctx, s.idsKey(collection), id)
		pipe.SAdd(ctx, s.collectionsKey(), collection)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *Store) GetDocuments(ctx context.Context, collection string) ([]repository.Document, error) {
	ids, err := s.rdb.LRange(ctx, s.idsKey(collection), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s ids: %w", collection, err)
	}

	docs := make([]repository.Document, 0, len(ids))
	if len(ids) == 0 {
		return docs, nil
	}

	values, err := s.rdb.HMGet(ctx, s.hashKey(collection), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	for i, v := range values {
		body, ok := v.(string)
		if !ok {
			continue
		}
		docs = append(docs, repository.NewJSONDocument(ids[i], []byte(body)))
	}
	return docs, nil
}

func (s *Store) GetDocument(ctx context.Context, collection, id string) (*repository.Document, error) {
	body, err := s.rdb.HGet(ctx, s.hashKey(collection), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get from %s: %w", collection, err)
	}
	doc := repository.NewJSONDocument(id, body)
	return &doc, nil
}

func (s *Store) CreateAndGet(ctx context.Context, collection string, data any) (*repository.Document, error) {
	id, err := s.CreateDocument(ctx, collection, data)
	if err != nil {
		return nil, err
	}
	return s.GetDocument(ctx, collection, id)
}

func (s *Store) CountDocuments(ctx context.Context, collection string) (int64, error) {
	n, err := s.rdb.HLen(ctx, s.hashKey(collection)).Result()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.rdb.SMembers(ctx, s.collectionsKey()).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close(context.Context) error {
	return s.rdb.Close()
}
