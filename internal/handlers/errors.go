package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps service layer errors to HTTP responses. The default
// message is used for unexpected errors so internals don't leak to clients.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, defaultMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, services.ErrAccountNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Action forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalancedEntry),
		errors.Is(err, services.ErrMinEntries),
		errors.Is(err, services.ErrMinAccounts),
		errors.Is(err, services.ErrDescriptionMissing),
		errors.Is(err, services.ErrNoRateAvailable):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAlreadyVoided),
		errors.Is(err, apperrors.ErrCannotReverseVoided),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrPersistenceConflict),
		errors.Is(err, services.ErrNotDraft):
		logger.Warn("Conflicting state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(defaultMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": defaultMsg})
	}
}
