package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/brewery/internal/apperr"
	"github.com/tuanvumaihuynh/brewery/internal/http/apierr"
	"github.com/tuanvumaihuynh/brewery/internal/service"
	"github.com/tuanvumaihuynh/brewery/pkg/validator"
)

const beerV2Path = "/api/v2/beer"

var errTrailingData = errors.New("unexpected data after request body")

type beerHandler struct {
	beerSvc   service.BeerService
	validator validator.Validator
	publicURL string
}

func newBeerHandler(beerSvc service.BeerService, validator validator.Validator, publicURL string) *beerHandler {
	return &beerHandler{
		beerSvc:   beerSvc,
		validator: validator,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (h *beerHandler) GetBeerByID(w http.ResponseWriter, r *http.Request) error {
	id, err := beerIDParam(r)
	if err != nil {
		return err
	}

	var showInventory *bool
	if err := bindQuery(r, "showInventory", &showInventory); err != nil {
		return err
	}

	beer, err := h.beerSvc.GetBeerByID(r.Context(), id, showInventory != nil && *showInventory)
	if err != nil {
		return fmt.Errorf("beer service get beer by id: %w", err)
	}

	return writeJSON(w, http.StatusOK, newBeerResponse(beer))
}

func (h *beerHandler) GetBeerByUPC(w http.ResponseWriter, r *http.Request) error {
	var upc string
	if err := bindPath(r, "beerUpc", &upc); err != nil {
		return err
	}

	beer, err := h.beerSvc.GetBeerByUPC(r.Context(), upc)
	if err != nil {
		return fmt.Errorf("beer service get beer by upc: %w", err)
	}

	return writeJSON(w, http.StatusOK, newBeerResponse(beer))
}

func (h *beerHandler) ListBeers(w http.ResponseWriter, r *http.Request) error {
	var (
		name, nameAlias   *string
		style, styleAlias *string
		page, pageAlias   *int
		pageSize          *int
		showInventory     *bool
	)

	for _, p := range []struct {
		name string
		dest any
	}{
		{"beerName", &name},
		{"name", &nameAlias},
		{"beerStyle", &style},
		{"style", &styleAlias},
		{"pageNumber", &page},
		{"page", &pageAlias},
		{"pageSize", &pageSize},
		{"showInventory", &showInventory},
	} {
		if err := bindQuery(r, p.name, p.dest); err != nil {
			return err
		}
	}

	params := service.ListBeersParams{
		Name:          deref(first(name, nameAlias)),
		Style:         deref(first(style, styleAlias)),
		PageNumber:    deref(first(page, pageAlias)),
		PageSize:      deref(pageSize),
		ShowInventory: deref(showInventory),
	}

	beers, err := h.beerSvc.ListBeers(r.Context(), params)
	if err != nil {
		return fmt.Errorf("beer service list beers: %w", err)
	}

	return writeJSON(w, http.StatusOK, newBeerPageResponse(beers))
}

func (h *beerHandler) CreateBeer(w http.ResponseWriter, r *http.Request) error {
	var req CreateBeerRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return err
	}

	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationErr.WrapParent(err)
	}

	params := service.CreateBeerParams{
		Name:           strings.TrimSpace(req.Name),
		Style:          strings.TrimSpace(req.Style),
		Upc:            strings.TrimSpace(req.Upc),
		Price:          *req.Price,
		QuantityOnHand: deref(req.QuantityOnHand),
	}

	beer, err := h.beerSvc.CreateBeer(r.Context(), params)
	if err != nil {
		return fmt.Errorf("beer service create beer: %w", err)
	}

	w.Header().Set("Location", h.publicURL+beerV2Path+"/"+strconv.FormatInt(int64(beer.ID), 10))
	w.WriteHeader(http.StatusCreated)
	return nil
}

func (h *beerHandler) DeleteBeerByID(w http.ResponseWriter, r *http.Request) error {
	id, err := beerIDParam(r)
	if err != nil {
		return err
	}

	if err := h.beerSvc.DeleteBeerByID(r.Context(), id); err != nil {
		return fmt.Errorf("beer service delete beer by id: %w", err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

// decodeJSONBody decodes exactly one JSON value; trailing data is rejected.
func decodeJSONBody(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dest)
	if err == nil {
		switch extraErr := dec.Decode(&json.RawMessage{}); {
		case errors.Is(extraErr, io.EOF):
		case extraErr != nil:
			err = extraErr
		default:
			err = errTrailingData
		}
	}
	if err == nil {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return apperr.RequestTooLargeErr.WrapParent(err)
	}
	return apperr.InvalidRequestBodyErr.WrapParent(err)
}

func beerIDParam(r *http.Request) (int32, error) {
	var id int32
	if err := bindPath(r, "beerId", &id); err != nil {
		return 0, err
	}
	return id, nil
}

func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return &apierr.InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

// bindQuery binds an optional query parameter; dest must be a pointer to a
// nil pointer, left nil when the parameter is absent.
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &apierr.InvalidParamFormatError{ParamName: name, Err: err}
	}
	return nil
}

func first[T any](values ...*T) *T {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}
