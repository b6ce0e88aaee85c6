package event

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

const (
	TopicBeerCreated = "beer.created"
	TopicBeerDeleted = "beer.deleted"
)

type BeerCreatedEvent struct {
	BeerID         int32           `json:"beer_id"`
	Name           string          `json:"name"`
	Style          string          `json:"style"`
	Upc            string          `json:"upc"`
	Price          decimal.Decimal `json:"price"`
	QuantityOnHand int32           `json:"quantity_on_hand"`
}

type BeerDeletedEvent struct {
	BeerID int32 `json:"beer_id"`
}

func (s *Service) handleBeerCreatedEvent(ctx context.Context, ev BeerCreatedEvent) error {
	s.logger.InfoContext(ctx, "beer created",
		slog.Int("beer_id", int(ev.BeerID)),
		slog.String("upc", ev.Upc),
		slog.String("price", ev.Price.String()),
		slog.Int("quantity_on_hand", int(ev.QuantityOnHand)),
	)
	return nil
}

func (s *Service) handleBeerDeletedEvent(ctx context.Context, ev BeerDeletedEvent) error {
	s.logger.InfoContext(ctx, "beer deleted", slog.Int("beer_id", int(ev.BeerID)))
	return nil
}
