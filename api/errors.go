package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Domenick1991/cardoctor/internal/domain"
	"github.com/Domenick1991/cardoctor/internal/middleware"
	"github.com/Domenick1991/cardoctor/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

func writeError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
	case errors.Is(err, checkout.ErrEmailRequired), errors.Is(err, checkout.ErrStatusRequired):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, middleware.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": middleware.ErrForbidden.Error()})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
