package forms

import (
	"errors"
	"net/http"
)

// Domain errors for form operations.
var (
	ErrNotFound         = errors.New("form not found")
	ErrDuplicate        = errors.New("an open form already exists for this cnpj")
	ErrInvalidID        = errors.New("invalid form id")
	ErrInvalidBody      = errors.New("invalid request body")
	ErrMissingCompany   = errors.New("company name is required")
	ErrInvalidTaxID     = errors.New("invalid cnpj")
	ErrInvalidRiskLevel = errors.New("risk level must be between 1 and 4")
	ErrInvalidStatus    = errors.New("invalid form status")
)

// MapHTTPStatus maps form domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, ErrMissingCompany),
		errors.Is(err, ErrInvalidTaxID),
		errors.Is(err, ErrInvalidRiskLevel),
		errors.Is(err, ErrInvalidStatus):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
