// Package handlers adapts the back-office services to the HTTP surface.
// Every error body has the shape {"message": "..."}; unexpected failures are
// logged and collapse to a generic 500.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/apperrors"
)

// respondError maps a service error to its HTTP status and body.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"message": apperrors.Message(err)})
}

// respondBadJSON reports a malformed request body.
func respondBadJSON(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON"})
}
