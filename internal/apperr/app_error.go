package apperr

import "github.com/tuanvumaihuynh/brewery/pkg/zerror"

const (
	ValidationErrorCode     = "VALIDATION_FAILED"
	InvalidParameterCode    = "INVALID_PARAMETER"
	InvalidRequestBodyCode  = "INVALID_REQUEST_BODY"
	RequestTooLargeCode     = "REQUEST_TOO_LARGE"
	NotAcceptableCode       = "NOT_ACCEPTABLE"
	DatabaseUnavailableCode = "DATABASE_UNAVAILABLE"
	BeerNotFoundCode        = "BEER_NOT_FOUND"
	BeerUpcConflictCode     = "BEER_UPC_CONFLICT"
)

var (
	ValidationErr          = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	InvalidRequestBodyErr  = zerror.NewBadRequest(InvalidRequestBodyCode, "request body is not valid JSON")
	RequestTooLargeErr     = zerror.NewPayloadTooLarge(RequestTooLargeCode, "request body is too large")
	NotAcceptableErr       = zerror.NewNotAcceptable(NotAcceptableCode, "only application/json responses are supported")
	DatabaseUnavailableErr = zerror.NewServiceUnavailable(DatabaseUnavailableCode, "database is unavailable")

	BeerNotFoundErr    = zerror.NewNotFound(BeerNotFoundCode, "beer not found")
	BeerUpcConflictErr = zerror.NewConflict(BeerUpcConflictCode, "a beer with this upc already exists")
)
