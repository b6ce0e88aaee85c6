package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/brewery/internal/config"
	"github.com/tuanvumaihuynh/brewery/internal/event"
	"github.com/tuanvumaihuynh/brewery/internal/model"
	"github.com/tuanvumaihuynh/brewery/internal/repository"
	"github.com/tuanvumaihuynh/brewery/internal/storage/db"
	"github.com/tuanvumaihuynh/brewery/pkg/outbox"
	"github.com/tuanvumaihuynh/brewery/pkg/pagination"
)

type CreateBeerParams struct {
	Name           string
	Style          string
	Upc            string
	Price          decimal.Decimal
	QuantityOnHand int32
}

type ListBeersParams struct {
	Name          string
	Style         string
	PageNumber    int
	PageSize      int
	ShowInventory bool
}

// BeerService is the seam between the HTTP layer and storage.
type BeerService interface {
	// GetBeerByID returns apperr.BeerNotFoundErr when no beer has id.
	GetBeerByID(ctx context.Context, id int32, showInventory bool) (model.Beer, error)
	// GetBeerByUPC returns apperr.BeerNotFoundErr when no beer has upc.
	GetBeerByUPC(ctx context.Context, upc string) (model.Beer, error)
	// ListBeers always returns a page, empty when nothing matches.
	ListBeers(ctx context.Context, params ListBeersParams) (model.BeerPage, error)
	CreateBeer(ctx context.Context, params CreateBeerParams) (model.Beer, error)
	// DeleteBeerByID succeeds whether or not the beer exists.
	DeleteBeerByID(ctx context.Context, id int32) error
}

type beerService struct {
	db            db.DB
	pagination    config.Pagination
	beerRepo      repository.BeerRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewBeerService(
	db db.DB,
	pagination config.Pagination,
	beerRepo repository.BeerRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) BeerService {
	return &beerService{
		db:            db,
		pagination:    pagination,
		beerRepo:      beerRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *beerService) GetBeerByID(ctx context.Context, id int32, showInventory bool) (model.Beer, error) {
	beer, err := s.beerRepo.GetBeerByID(ctx, id)
	if err != nil {
		return model.Beer{}, fmt.Errorf("beer repository get beer by id: %w", err)
	}

	if !showInventory {
		beer.QuantityOnHand = nil
	}

	return beer, nil
}

func (s *beerService) GetBeerByUPC(ctx context.Context, upc string) (model.Beer, error) {
	beer, err := s.beerRepo.GetBeerByUPC(ctx, upc)
	if err != nil {
		return model.Beer{}, fmt.Errorf("beer repository get beer by upc: %w", err)
	}

	beer.QuantityOnHand = nil

	return beer, nil
}

func (s *beerService) ListBeers(ctx context.Context, params ListBeersParams) (model.BeerPage, error) {
	page := pagination.Request{
		PageNumber: params.PageNumber,
		PageSize:   params.PageSize,
	}.Normalize(s.pagination.DefaultPageSize, s.pagination.MaxPageSize)

	res, err := s.beerRepo.ListBeers(ctx, repository.ListBeersParams{
		Name:   params.Name,
		Style:  params.Style,
		Limit:  page.PageSize,
		Offset: page.Offset(),
	})
	if err != nil {
		return model.BeerPage{}, fmt.Errorf("beer repository list beers: %w", err)
	}

	if !params.ShowInventory {
		for i := range res.Beers {
			res.Beers[i].QuantityOnHand = nil
		}
	}

	return model.BeerPage{
		Beers:         res.Beers,
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalElements: res.Total,
	}, nil
}

func (s *beerService) CreateBeer(ctx context.Context, params CreateBeerParams) (model.Beer, error) {
	var beer model.Beer

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		beer, err = s.beerRepo.
			WithDB(db).
			CreateBeer(ctx, repository.CreateBeerParams{
				Name:           params.Name,
				Style:          params.Style,
				Upc:            params.Upc,
				Price:          params.Price,
				QuantityOnHand: params.QuantityOnHand,
			})
		if err != nil {
			return fmt.Errorf("beer repository create beer: %w", err)
		}

		ev := event.BeerCreatedEvent{
			BeerID:         beer.ID,
			Name:           beer.Name,
			Style:          beer.Style,
			Upc:            beer.Upc,
			Price:          beer.Price,
			QuantityOnHand: params.QuantityOnHand,
		}
		if err := s.publish(ctx, db, event.TopicBeerCreated, beer.ID, ev); err != nil {
			return err
		}

		return nil
	}); err != nil {
		return model.Beer{}, fmt.Errorf("db with tx: %w", err)
	}

	return beer, nil
}

func (s *beerService) DeleteBeerByID(ctx context.Context, id int32) error {
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		deleted, err := s.beerRepo.
			WithDB(db).
			DeleteBeerByID(ctx, id)
		if err != nil {
			return fmt.Errorf("beer repository delete beer by id: %w", err)
		}

		if !deleted {
			return nil
		}

		return s.publish(ctx, db, event.TopicBeerDeleted, id, event.BeerDeletedEvent{BeerID: id})
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}

// publish stores ev in the outbox within the caller's transaction. Events of
// one beer share a partition key so consumers see them in order.
func (s *beerService) publish(ctx context.Context, db db.DB, topic string, beerID int32, ev any) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}

	key := strconv.Itoa(int(beerID))
	if err := s.outboxMsgRepo.
		WithDB(db).
		CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
			Topic:        topic,
			Headers:      outbox.BuildHeaders(ctx),
			Payload:      payload,
			PartitionKey: &key,
		}); err != nil {
		return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return nil
}
