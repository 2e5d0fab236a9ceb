package catalog

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	kafkax "github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/kafka"
)

// OrderStore is the store-of-record surface the service needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, userID int64, items []ItemInput) (int64, decimal.Decimal, error)
	ListInStock(ctx context.Context) ([]Product, error)
}

// ProductCache is the TTL-bounded listing cache. Misses and errors are both
// answered from the store; the cache never gates correctness.
type ProductCache interface {
	Get(ctx context.Context) ([]Product, bool, error)
	Set(ctx context.Context, products []Product) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Service struct {
	Store     OrderStore
	Cache     ProductCache
	Publisher EventPublisher
	Name      string // stamped as event producer
}

type PlaceOrderInput struct {
	UserID  int64
	Items   []ItemInput
	TraceID string
}

type PlacedOrder struct {
	OrderID int64
	Total   decimal.Decimal
}

// PlaceOrder validates the request, runs the order transaction, and on success
// invalidates the listing cache and publishes OrderCreated. Both side effects
// are best-effort: a committed order is never failed retroactively.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlacedOrder, error) {
	if in.UserID <= 0 {
		return PlacedOrder{}, ErrInvalidUser
	}
	if len(in.Items) == 0 {
		return PlacedOrder{}, ErrEmptyOrder
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return PlacedOrder{}, fmt.Errorf("%w: id=%d", ErrProductNotFound, it.ProductID)
		}
		if it.Quantity <= 0 {
			return PlacedOrder{}, fmt.Errorf("%w: product_id=%d", ErrInvalidQuantity, it.ProductID)
		}
	}

	orderID, total, err := s.Store.CreateOrder(ctx, in.UserID, in.Items)
	if err != nil {
		return PlacedOrder{}, err
	}

	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			log.Printf("order %d: listing cache invalidate failed: %v", orderID, err)
		}
	}
	s.publishOrderCreated(in, orderID, total)

	return PlacedOrder{OrderID: orderID, Total: total}, nil
}

// ListProducts answers from the cache when a fresh snapshot exists, otherwise
// from Postgres with a best-effort cache fill.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	if s.Cache != nil {
		products, ok, err := s.Cache.Get(ctx)
		if err != nil {
			log.Printf("listing cache read failed, using store: %v", err)
		} else if ok {
			return products, nil
		}
	}

	products, err := s.Store.ListInStock(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, products); err != nil {
			log.Printf("listing cache fill failed: %v", err)
		}
	}
	return products, nil
}

func (s *Service) publishOrderCreated(in PlaceOrderInput, orderID int64, total decimal.Decimal) {
	if s.Publisher == nil {
		return
	}
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.Name,
		TraceID:       in.TraceID,
		CorrelationID: strconv.FormatInt(orderID, 10),
		Payload: kafkax.MustMarshal(OrderCreatedPayload{
			OrderID: orderID,
			UserID:  in.UserID,
			Items:   in.Items,
			Total:   total,
		}),
	}
	s.Publisher.Publish(PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
