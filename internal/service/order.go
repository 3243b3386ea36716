package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/utafrali/storefront-api/internal/domain"
	"github.com/utafrali/storefront-api/internal/event"
	"github.com/utafrali/storefront-api/internal/repository"
	apperrors "github.com/utafrali/storefront-api/pkg/errors"
)

// OrderService stores orders exactly as submitted.
type OrderService struct {
	store     repository.DocumentStore
	publisher event.Publisher
	logger    *slog.Logger
}

func NewOrderService(store repository.DocumentStore, publisher event.Publisher, logger *slog.Logger) *OrderService {
	return &OrderService{store: store, publisher: publisher, logger: logger}
}

// PlaceOrder persists order and returns the stored copy with its new ID.
// The order.created event is best effort.
func (s *OrderService) PlaceOrder(ctx context.Context, order domain.Order) (*domain.Order, error) {
	order.ID = ""

	doc, err := s.store.CreateAndGet(ctx, domain.CollectionOrder, order)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.OrderNotPersisted(err)
		}
		return nil, storeError("create order", err)
	}

	var stored domain.Order
	if err := doc.Decode(&stored); err != nil {
		return nil, storeError("decode order "+doc.ID, err)
	}
	stored.ID = doc.ID

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", stored.ID),
		slog.Int("items", len(stored.Items)),
	)

	if err := s.publisher.PublishOrderCreated(ctx, &stored); err != nil {
		s.logger.WarnContext(ctx, "failed to publish order.created event",
			slog.String("order_id", stored.ID),
			slog.String("error", err.Error()),
		)
	}

	return &stored, nil
}
