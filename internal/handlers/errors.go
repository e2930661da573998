package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tamarandofir/travelsync_backend/internal/apperrors"
)

// respondServiceError translates a service-layer error into the matching HTTP
// status and {error: message} payload. fallback is the message used for
// unexpected errors, which become 500s.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		logger.Warn("Request failed", slog.Int("status", appErr.Code), slog.String("error", err.Error()))
		c.JSON(appErr.Code, appErr)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		appErr = apperrors.NewNotFoundError("Not found")
	case errors.Is(err, apperrors.ErrForbidden):
		appErr = apperrors.NewForbiddenError("Forbidden")
	case errors.Is(err, apperrors.ErrUnauthorized):
		appErr = apperrors.NewUnauthorizedError("Unauthorized")
	case errors.Is(err, apperrors.ErrValidation):
		appErr = apperrors.NewBadRequestError("Invalid input")
	case errors.Is(err, apperrors.ErrDuplicate):
		appErr = apperrors.NewConflictError("Already exists")
	default:
		logger.Error("Unexpected service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, apperrors.NewInternalServerError(fallback))
		return
	}

	logger.Warn("Request failed", slog.Int("status", appErr.Code), slog.String("error", err.Error()))
	c.JSON(appErr.Code, appErr)
}
