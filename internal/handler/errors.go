package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/quickbite/order-service/internal/entities"
	"github.com/quickbite/order-service/pkg/utils"
)

// writeDomainError maps each failure kind to its own status and message so
// the presentation layer can show something actionable.
func writeDomainError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entities.ErrInvalidOrder),
		errors.Is(err, entities.ErrInvalidTransition),
		errors.Is(err, entities.ErrCancelWindowClosed):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)

	case errors.Is(err, entities.ErrInvalidCredentials):
		utils.WriteError(w, err.Error(), http.StatusUnauthorized)

	case errors.Is(err, entities.ErrAdminOnly),
		errors.Is(err, entities.ErrNotOrderOwner):
		utils.WriteError(w, err.Error(), http.StatusForbidden)

	case errors.Is(err, entities.ErrOrderNotFound):
		utils.WriteError(w, err.Error(), http.StatusNotFound)

	case errors.Is(err, entities.ErrEmailTaken):
		utils.WriteError(w, err.Error(), http.StatusConflict)

	case errors.Is(err, entities.ErrStoreUnavailable):
		utils.WriteError(w, err.Error(), http.StatusServiceUnavailable)

	default:
		logger.ErrorContext(r.Context(), "unhandled error", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
