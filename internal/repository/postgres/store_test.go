package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront-api/internal/domain"
	"github.com/utafrali/storefront-api/internal/repository"
)

func newTestStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return NewStore(mock), mock
}

func TestStore_EnsureSchema(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS documents").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateDocument(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(pgxmock.AnyArg(), "product", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	id, err := s.CreateDocument(context.Background(), domain.CollectionProduct, domain.DemoProducts()[1])
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateDocument_Error(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(pgxmock.AnyArg(), "product", pgxmock.AnyArg()).
		WillReturnError(errors.New("relation \"documents\" does not exist"))

	_, err := s.CreateDocument(context.Background(), domain.CollectionProduct, domain.DemoProducts()[1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert into product")
}

func TestStore_GetDocuments(t *testing.T) {
	s, mock := newTestStore(t)
	id1, id2 := uuid.NewString(), uuid.NewString()

	rows := pgxmock.NewRows([]string{"id", "body"}).
		AddRow(id1, []byte(`{"title":"Smart Watch","price":199}`)).
		AddRow(id2, []byte(`{"title":"Espresso Maker","price":89.5}`))
	mock.ExpectQuery("SELECT id, body FROM documents WHERE collection").
		WithArgs("product").
		WillReturnRows(rows)

	docs, err := s.GetDocuments(context.Background(), domain.CollectionProduct)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, id1, docs[0].ID)

	var p domain.Product
	require.NoError(t, docs[1].Decode(&p))
	assert.Equal(t, "Espresso Maker", p.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetDocuments_Empty(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery("SELECT id, body FROM documents WHERE collection").
		WithArgs("order").
		WillReturnRows(pgxmock.NewRows([]string{"id", "body"}))

	docs, err := s.GetDocuments(context.Background(), domain.CollectionOrder)
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestStore_GetDocument(t *testing.T) {
	s, mock := newTestStore(t)
	id := uuid.NewString()

	mock.ExpectQuery("SELECT id, body FROM documents WHERE collection = \\$1 AND id = \\$2").
		WithArgs("order", id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "body"}).AddRow(id, []byte(`{"customer_name":"Ada"}`)))

	doc, err := s.GetDocument(context.Background(), domain.CollectionOrder, id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
}

func TestStore_GetDocument_NotFound(t *testing.T) {
	s, mock := newTestStore(t)
	id := uuid.NewString()

	mock.ExpectQuery("SELECT id, body FROM documents").
		WithArgs("order", id).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetDocument(context.Background(), domain.CollectionOrder, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.GetDocument(context.Background(), domain.CollectionOrder, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateAndGet(t *testing.T) {
	s, mock := newTestStore(t)
	id := uuid.NewString()

	mock.ExpectQuery("INSERT INTO documents .* RETURNING id, body").
		WithArgs(pgxmock.AnyArg(), "order", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "body"}).AddRow(id, []byte(`{"customer_name":"Ada","total":12}`)))

	doc, err := s.CreateAndGet(context.Background(), domain.CollectionOrder, domain.Order{CustomerName: "Ada", Total: 12})
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)

	var o domain.Order
	require.NoError(t, doc.Decode(&o))
	assert.Equal(t, 12.0, o.Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CountDocuments(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("product").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := s.CountDocuments(context.Background(), domain.CollectionProduct)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestStore_ListCollectionNames(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery("SELECT DISTINCT collection").
		WillReturnRows(pgxmock.NewRows([]string{"collection"}).AddRow("order").AddRow("product"))

	names, err := s.ListCollectionNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"order", "product"}, names)
}

func TestStore_ListCollectionNames_ErrorUnwrapped(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery("SELECT DISTINCT collection").
		WillReturnError(errors.New("connection refused"))

	_, err := s.ListCollectionNames(context.Background())
	assert.EqualError(t, err, "connection refused")
}

func TestStore_Ping(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectPing()
	require.NoError(t, s.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, s.Ping(context.Background()))
}
