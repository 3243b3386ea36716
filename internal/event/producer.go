package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker/v2"

	"github.com/utafrali/storefront-api/internal/domain"
	pkgkafka "github.com/utafrali/storefront-api/pkg/kafka"
	"github.com/utafrali/storefront-api/pkg/logger"
)

const (
	TopicOrderCreated  = "storefront.order.created"
	AggregateTypeOrder = "order"
	SourceStorefront   = "storefront-api"
)

// OrderCreatedData is the order.created payload: the order as stored.
type OrderCreatedData struct {
	ID              string          `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerAddress string          `json:"customer_address"`
	Items           []OrderItemData `json:"items"`
	Total           float64         `json:"total"`
}

type OrderItemData struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Publisher emits order domain events.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
}

// EventPublisher is the subset of pkg/kafka.Producer used here.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes order events to Kafka through a circuit breaker, so a
// broker outage costs one fast failure per order instead of a full write
// timeout.
type Producer struct {
	kafka   EventPublisher
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *slog.Logger
}

var _ Publisher = (*Producer)(nil)

func NewProducer(kafka EventPublisher, cfg BreakerConfig, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:   kafka,
		breaker: newBreaker(cfg, logger),
		logger:  logger,
	}
}

// PublishOrderCreated publishes a snapshot of order. It fails fast with
// gobreaker.ErrOpenState while the breaker is open.
func (p *Producer) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	items := make([]OrderItemData, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemData{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	data := OrderCreatedData{
		ID:              order.ID,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerAddress: order.CustomerAddress,
		Items:           items,
		Total:           order.Total,
	}

	ev, err := pkgkafka.NewEvent(TopicOrderCreated, order.ID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.created event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		ev.WithCorrelationID(id)
	}

	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.kafka.Publish(ctx, TopicOrderCreated, ev)
	})
	if err != nil {
		return fmt.Errorf("publish order.created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.created event",
		slog.String("order_id", order.ID),
		slog.String("event_id", ev.EventID),
	)
	return nil
}

// NoopPublisher drops every event. It is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderCreated(context.Context, *domain.Order) error { return nil }
