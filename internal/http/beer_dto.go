package http

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/brewery/internal/model"
)

// BeerResponse writes price as a plain JSON number, never a quoted string.
type BeerResponse struct {
	ID             int32       `json:"id"`
	Name           string      `json:"beerName"`
	Style          string      `json:"beerStyle"`
	Upc            string      `json:"upc"`
	Price          json.Number `json:"price"`
	QuantityOnHand *int32      `json:"quantityOnHand,omitempty"`
	CreatedAt      time.Time   `json:"createdDate"`
	UpdatedAt      time.Time   `json:"lastModifiedDate"`
}

type BeerPageResponse struct {
	Content       []BeerResponse `json:"content"`
	PageNumber    int            `json:"pageNumber"`
	PageSize      int            `json:"pageSize"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

// CreateBeerRequest limits mirror the beers table columns.
type CreateBeerRequest struct {
	Name           string           `json:"beerName" validate:"required,notblank,max=255"`
	Style          string           `json:"beerStyle" validate:"required,notblank,max=50"`
	Upc            string           `json:"upc" validate:"required,notblank,max=25"`
	Price          *decimal.Decimal `json:"price" validate:"required,gte=0,lte=99999999.99,decimalscale=2"`
	QuantityOnHand *int32           `json:"quantityOnHand" validate:"omitempty,gte=0"`
}

func newBeerResponse(beer model.Beer) BeerResponse {
	return BeerResponse{
		ID:             beer.ID,
		Name:           beer.Name,
		Style:          beer.Style,
		Upc:            beer.Upc,
		Price:          json.Number(beer.Price.String()),
		QuantityOnHand: beer.QuantityOnHand,
		CreatedAt:      beer.CreatedAt,
		UpdatedAt:      beer.UpdatedAt,
	}
}

func newBeerPageResponse(page model.BeerPage) BeerPageResponse {
	content := make([]BeerResponse, 0, len(page.Beers))
	for _, beer := range page.Beers {
		content = append(content, newBeerResponse(beer))
	}

	return BeerPageResponse{
		Content:       content,
		PageNumber:    page.PageNumber,
		PageSize:      page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages(),
	}
}
