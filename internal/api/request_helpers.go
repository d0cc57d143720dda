package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

const (
	maxWordIDLength = 128
	maxListLimit    = 1000
	maxActivityDays = 366
	maxThresholds   = 16
)

// getPathWordID extracts the word ID from the URL path parameters.
func getPathWordID(r *http.Request, paramName string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, paramName))
	if id == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrInvalidID)
	}
	if len(id) > maxWordIDLength {
		return "", domain.NewValidationError(paramName, "is too long", domain.ErrInvalidID)
	}
	return id, nil
}

// getQueryInt parses an optional non-negative integer query parameter. A
// missing parameter yields def.
func getQueryInt(r *http.Request, name string, def, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.NewValidationError(name, "must be a non-negative integer", nil)
	}
	if n > max {
		return 0, domain.NewValidationError(name, "must be at most "+strconv.Itoa(max), nil)
	}
	return n, nil
}

// getQueryThresholds parses a comma-separated list of positive integers.
// A missing parameter yields nil, meaning the configured defaults.
func getQueryThresholds(r *http.Request, name string) ([]int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) > maxThresholds {
		return nil, domain.NewValidationError(name, "has too many values", nil)
	}

	thresholds := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, domain.NewValidationError(name, "must be positive integers", nil)
		}
		thresholds = append(thresholds, n)
	}
	return thresholds, nil
}
