package revalidations

import (
	"errors"
	"net/http"

	"github.com/RaphaelCosta21/hse-control-panel-sub001/pkg/storage"
)

// Domain errors for revalidation operations.
var (
	ErrInvalidCriteria = errors.New("invalid revalidation criteria")
	ErrInvalidFormat   = errors.New("unsupported export format")
	ErrInvalidAsOf     = errors.New("as_of must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	ErrInvalidBody     = errors.New("invalid request body")
)

// MapHTTPStatus maps revalidation and storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCriteria),
		errors.Is(err, ErrInvalidFormat),
		errors.Is(err, ErrInvalidAsOf),
		errors.Is(err, ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrEmptyKey),
		errors.Is(err, storage.ErrInvalidKey):
		return storage.MapHTTPStatus(err)
	}
	return http.StatusInternalServerError
}
