package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/domain"
)

// getPathUUID extracts and parses a UUID path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getPathInt extracts an integer path parameter. Range checks are left to
// the caller.
func getPathInt(r *http.Request, paramName string) (int, error) {
	pathParam := strings.TrimSpace(chi.URLParam(r, paramName))
	n, err := strconv.Atoi(pathParam)
	if err != nil {
		return 0, domain.NewValidationError(paramName, "must be an integer", domain.ErrValidation)
	}
	return n, nil
}
