package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tasktrack/tasktrack-api/internal/store"
)

// Pagination defaults for list endpoints.
const (
	defaultPageNumber = 0
	defaultPageSize   = 10
)

var (
	errInvalidID   = errors.New("id must be a positive integer")
	errInvalidPage = errors.New("page must be a non-negative integer")
	errInvalidSize = errors.New("size must be a positive integer")
)

// parseIDParam extracts the {id} route parameter as a positive integer.
func parseIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// parsePageRequest extracts the page and size query parameters, applying the
// defaults when they are absent.
func parsePageRequest(r *http.Request) (store.PageRequest, error) {
	page := store.PageRequest{
		Number: defaultPageNumber,
		Size:   defaultPageSize,
	}

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return store.PageRequest{}, errInvalidPage
		}
		page.Number = n
	}

	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return store.PageRequest{}, errInvalidSize
		}
		page.Size = n
	}

	return page, nil
}

// parseQueryInt64 parses a query string value as a positive integer.
func parseQueryInt64(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}
