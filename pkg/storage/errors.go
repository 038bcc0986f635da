package storage

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNotFound   = errors.New("blob not found")
	ErrEmptyKey   = errors.New("blob key is empty")
	ErrInvalidKey = errors.New("blob key must be relative and free of '..' segments")
)

// ValidateKey rejects keys that are empty, absolute, or contain "..".
func ValidateKey(key string) error {
	switch {
	case key == "":
		return ErrEmptyKey
	case strings.HasPrefix(key, "/"), strings.Contains(key, ".."):
		return ErrInvalidKey
	}
	return nil
}

// MapHTTPStatus maps storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyKey), errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
