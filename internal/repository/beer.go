package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/brewery/internal/apperr"
	"github.com/tuanvumaihuynh/brewery/internal/model"
	"github.com/tuanvumaihuynh/brewery/internal/storage/db"
)

const beerUpcConstraint = "beers_upc_key"

type CreateBeerParams struct {
	Name           string
	Style          string
	Upc            string
	Price          decimal.Decimal
	QuantityOnHand int32
}

type ListBeersParams struct {
	// Name matches beers whose name contains it, case-insensitively.
	Name string
	// Style matches beers with exactly this style.
	Style  string
	Limit  int
	Offset int
}

type ListBeersResult struct {
	Beers []model.Beer
	Total int64
}

// BeerRepository reads and writes beers. Lookups return
// apperr.BeerNotFoundErr when no row matches. Returned beers always carry
// QuantityOnHand; hiding it is up to the caller.
type BeerRepository interface {
	WithDB(db db.DB) BeerRepository
	GetBeerByID(ctx context.Context, id int32) (model.Beer, error)
	GetBeerByUPC(ctx context.Context, upc string) (model.Beer, error)
	ListBeers(ctx context.Context, params ListBeersParams) (ListBeersResult, error)
	CreateBeer(ctx context.Context, params CreateBeerParams) (model.Beer, error)
	// DeleteBeerByID reports whether a row was deleted.
	DeleteBeerByID(ctx context.Context, id int32) (bool, error)
}

type beerRepository struct {
	db db.DB
}

func NewBeerRepository(db db.DB) BeerRepository {
	return &beerRepository{db: db}
}

func (r beerRepository) WithDB(db db.DB) BeerRepository {
	return &beerRepository{db: db}
}

const beerColumns = `id, beer_name, beer_style, upc, price, quantity_on_hand, created_at, updated_at`

type beerRow struct {
	ID             int32          `db:"id"`
	BeerName       string         `db:"beer_name"`
	BeerStyle      string         `db:"beer_style"`
	Upc            string         `db:"upc"`
	Price          pgtype.Numeric `db:"price"`
	QuantityOnHand int32          `db:"quantity_on_hand"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r beerRepository) GetBeerByID(ctx context.Context, id int32) (model.Beer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+beerColumns+` FROM beers WHERE id = $1`, id)
	if err != nil {
		return model.Beer{}, fmt.Errorf("query beer by id: %w", err)
	}

	return collectOneBeer(rows)
}

func (r beerRepository) GetBeerByUPC(ctx context.Context, upc string) (model.Beer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+beerColumns+` FROM beers WHERE upc = $1`, upc)
	if err != nil {
		return model.Beer{}, fmt.Errorf("query beer by upc: %w", err)
	}

	return collectOneBeer(rows)
}

const beerFilter = `
	WHERE (@name::text = '' OR strpos(lower(beer_name), lower(@name::text)) > 0)
	  AND (@style::text = '' OR beer_style = @style::text)`

func (r beerRepository) ListBeers(ctx context.Context, params ListBeersParams) (ListBeersResult, error) {
	args := pgx.NamedArgs{
		"name":   params.Name,
		"style":  params.Style,
		"limit":  params.Limit,
		"offset": params.Offset,
	}

	batch := &pgx.Batch{}
	batch.Queue(`SELECT COUNT(*) FROM beers`+beerFilter, args)
	batch.Queue(`SELECT `+beerColumns+` FROM beers`+beerFilter+`
		ORDER BY id
		LIMIT @limit OFFSET @offset`, args)

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	var total int64
	if err := results.QueryRow().Scan(&total); err != nil {
		return ListBeersResult{}, fmt.Errorf("count beers: %w", err)
	}

	rows, err := results.Query()
	if err != nil {
		return ListBeersResult{}, fmt.Errorf("query beers: %w", err)
	}

	beerRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[beerRow])
	if err != nil {
		return ListBeersResult{}, fmt.Errorf("collect beers: %w", err)
	}

	beers := make([]model.Beer, 0, len(beerRows))
	for _, row := range beerRows {
		beers = append(beers, row.toModel())
	}

	return ListBeersResult{Beers: beers, Total: total}, nil
}

func (r beerRepository) CreateBeer(ctx context.Context, params CreateBeerParams) (model.Beer, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO beers (beer_name, beer_style, upc, price, quantity_on_hand, created_at, updated_at)
		VALUES (@name, @style, @upc, @price, @quantity_on_hand, NOW(), NOW())
		RETURNING `+beerColumns,
		pgx.NamedArgs{
			"name":             params.Name,
			"style":            params.Style,
			"upc":              params.Upc,
			"price":            decimalToNumeric(params.Price),
			"quantity_on_hand": params.QuantityOnHand,
		},
	)
	if err != nil {
		return model.Beer{}, insertBeerError(err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[beerRow])
	if err != nil {
		return model.Beer{}, insertBeerError(err)
	}

	return row.toModel(), nil
}

func insertBeerError(err error) error {
	if db.IsUniqueViolation(err, beerUpcConstraint) {
		return apperr.BeerUpcConflictErr.WrapParent(err)
	}
	return fmt.Errorf("insert beer: %w", err)
}

func (r beerRepository) DeleteBeerByID(ctx context.Context, id int32) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM beers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete beer: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func collectOneBeer(rows pgx.Rows) (model.Beer, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[beerRow])
	if err != nil {
		if db.IsNoRows(err) {
			return model.Beer{}, apperr.BeerNotFoundErr.WrapParent(err)
		}
		return model.Beer{}, fmt.Errorf("collect beer: %w", err)
	}

	return row.toModel(), nil
}

func (row beerRow) toModel() model.Beer {
	quantity := row.QuantityOnHand
	return model.Beer{
		ID:             row.ID,
		Name:           row.BeerName,
		Style:          row.BeerStyle,
		Upc:            row.Upc,
		Price:          numericToDecimal(row.Price),
		QuantityOnHand: &quantity,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
