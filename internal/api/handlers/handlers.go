package handlers

import (
	"errors"
	"net/http"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/api/httpx"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/services"
)

// writeServiceError maps service-layer errors onto the API envelope.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "validation", err.Error(), nil)
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}
