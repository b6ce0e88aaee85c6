package http_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/brewery/internal/apperr"
	"github.com/tuanvumaihuynh/brewery/internal/model"
	"github.com/tuanvumaihuynh/brewery/internal/service"
	"github.com/tuanvumaihuynh/brewery/pkg/pagination"
)

var errStorage = errors.New("storage unavailable")

// fakeBeerService keeps beers in memory with the same semantics as the
// database-backed service.
type fakeBeerService struct {
	mu     sync.Mutex
	beers  map[int32]model.Beer
	nextID int32
	fail   bool
}

var _ service.BeerService = (*fakeBeerService)(nil)

func newFakeBeerService() *fakeBeerService {
	return &fakeBeerService{beers: map[int32]model.Beer{}}
}

func (f *fakeBeerService) GetBeerByID(_ context.Context, id int32, showInventory bool) (model.Beer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return model.Beer{}, errStorage
	}

	beer, ok := f.beers[id]
	if !ok {
		return model.Beer{}, apperr.BeerNotFoundErr
	}
	if !showInventory {
		beer.QuantityOnHand = nil
	}
	return beer, nil
}

func (f *fakeBeerService) GetBeerByUPC(_ context.Context, upc string) (model.Beer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, beer := range f.beers {
		if beer.Upc == upc {
			beer.QuantityOnHand = nil
			return beer, nil
		}
	}
	return model.Beer{}, apperr.BeerNotFoundErr
}

func (f *fakeBeerService) ListBeers(_ context.Context, params service.ListBeersParams) (model.BeerPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return model.BeerPage{}, errStorage
	}

	page := pagination.Request{PageNumber: params.PageNumber, PageSize: params.PageSize}.Normalize(25, 100)

	var matched []model.Beer
	for _, beer := range f.beers {
		if params.Name != "" && !strings.Contains(strings.ToLower(beer.Name), strings.ToLower(params.Name)) {
			continue
		}
		if params.Style != "" && beer.Style != params.Style {
			continue
		}
		if !params.ShowInventory {
			beer.QuantityOnHand = nil
		}
		matched = append(matched, beer)
	}
	slices.SortFunc(matched, func(a, b model.Beer) int { return int(a.ID - b.ID) })

	start := min(page.Offset(), len(matched))
	end := min(start+page.PageSize, len(matched))

	return model.BeerPage{
		Beers:         matched[start:end],
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalElements: int64(len(matched)),
	}, nil
}

func (f *fakeBeerService) CreateBeer(_ context.Context, params service.CreateBeerParams) (model.Beer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, beer := range f.beers {
		if beer.Upc == params.Upc {
			return model.Beer{}, apperr.BeerUpcConflictErr
		}
	}

	f.nextID++
	qty := params.QuantityOnHand
	now := time.Now().UTC()
	beer := model.Beer{
		ID:             f.nextID,
		Name:           params.Name,
		Style:          params.Style,
		Upc:            params.Upc,
		Price:          params.Price,
		QuantityOnHand: &qty,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	f.beers[beer.ID] = beer

	return beer, nil
}

func (f *fakeBeerService) DeleteBeerByID(_ context.Context, id int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.beers, id)
	return nil
}

type fakeHealthChecker struct {
	healthy bool
}

func (f fakeHealthChecker) IsHealthy(context.Context) (bool, error) {
	if !f.healthy {
		return false, errStorage
	}
	return true, nil
}
