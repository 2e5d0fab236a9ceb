// Package warmer re-fills the product-listing cache after order placement,
// so the first read after an invalidation usually hits a warm entry instead
// of paying the store round-trip in-request.
package warmer

import (
	"context"
	"encoding/json"
	"log"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/catalog"
)

type ProductLister interface {
	ListInStock(ctx context.Context) ([]catalog.Product, error)
}

type ListingSetter interface {
	Set(ctx context.Context, products []catalog.Product) error
}

type Service struct {
	Store ProductLister
	Cache ListingSetter
}

// HandleOrderCreated refreshes the cached listing from the store. The refresh
// is idempotent, so redelivered events need no dedup bookkeeping.
func (s *Service) HandleOrderCreated(ctx context.Context, m kafkago.Message) error {
	var env catalog.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		// undecodable forever; returning an error would pin the partition on it
		log.Printf("dropping malformed envelope at offset %d: %v", m.Offset, err)
		return nil
	}
	if env.EventType != catalog.EventOrderCreated {
		return nil
	}

	products, err := s.Store.ListInStock(ctx)
	if err != nil {
		return err
	}
	if err := s.Cache.Set(ctx, products); err != nil {
		return err
	}
	log.Printf("listing cache rewarmed after order %s (%d products in stock)", env.CorrelationID, len(products))
	return nil
}
