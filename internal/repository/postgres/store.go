package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront-api/internal/repository"
	"github.com/utafrali/storefront-api/pkg/database"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS documents (
		seq        BIGSERIAL,
		id         TEXT PRIMARY KEY,
		collection TEXT NOT NULL,
		body       JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS documents_collection_seq_idx ON documents (collection, seq)`

// Store implements repository.DocumentStore as JSONB rows in a single
// documents table keyed by collection.
type Store struct {
	db database.DBTX
}

var _ repository.DocumentStore = (*Store)(nil)

func NewStore(db database.DBTX) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the documents table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (s *Store) CreateDocument(ctx context.Context, collection string, data any) (string, error) {
	body, err := repository.MarshalBody(data)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	query := `INSERT INTO documents (id, collection, body) VALUES ($1, $2, $3)`
	if _, err := s.db.Exec(ctx, query, id, collection, string(body)); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *Store) GetDocuments(ctx context.Context, collection string) ([]repository.Document, error) {
	query := `SELECT id, body FROM documents WHERE collection = $1 ORDER BY seq`

	rows, err := s.db.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	docs := make([]repository.Document, 0)
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", collection, err)
		}
		docs = append(docs, repository.NewJSONDocument(id, body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", collection, err)
	}
	return docs, nil
}

// GetDocument looks a document up by UUID. Anything that is not a UUID never
// matches.
func (s *Store) GetDocument(ctx context.Context, collection, id string) (*repository.Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}

	query := `SELECT id, body FROM documents WHERE collection = $1 AND id = $2`
	return s.scanOne(s.db.QueryRow(ctx, query, collection, id), collection)
}

// CreateAndGet inserts and reads back in one statement.
func (s *Store) CreateAndGet(ctx context.Context, collection string, data any) (*repository.Document, error) {
	body, err := repository.MarshalBody(data)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO documents (id, collection, body)
		VALUES ($1, $2, $3)
		RETURNING id, body`
	return s.scanOne(s.db.QueryRow(ctx, query, uuid.NewString(), collection, string(body)), collection)
}

func (s *Store) scanOne(row pgx.Row, collection string) (*repository.Document, error) {
	var (
		id   string
		body []byte
	)
	if err := row.Scan(&id, &body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan %s row: %w", collection, err)
	}
	doc := repository.NewJSONDocument(id, body)
	return &doc, nil
}

func (s *Store) CountDocuments(ctx context.Context, collection string) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM documents WHERE collection = $1`
	if err := s.db.QueryRow(ctx, query, collection).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func (s *Store) ListCollectionNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, err
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases the pool when the underlying DBTX owns one.
func (s *Store) Close(context.Context) error {
	if c, ok := s.db.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}
