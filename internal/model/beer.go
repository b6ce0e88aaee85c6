package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/brewery/pkg/pagination"
)

type Beer struct {
	ID    int32
	Name  string
	Style string
	Upc   string
	Price decimal.Decimal

	// QuantityOnHand is nil unless inventory was requested.
	QuantityOnHand *int32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeerPage is one page of an ordered beer listing.
type BeerPage struct {
	Beers         []Beer
	PageNumber    int
	PageSize      int
	TotalElements int64
}

func (p BeerPage) TotalPages() int {
	return pagination.TotalPages(p.TotalElements, p.PageSize)
}
