package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/domain/models"
	"github.com/gaysay/backoffice/internal/service/catalog"
)

// MenuHandler serves the menu catalog endpoints.
type MenuHandler struct {
	svc    *catalog.Service
	logger *zap.Logger
}

// NewMenuHandler constructs the HTTP handler adapter.
func NewMenuHandler(svc *catalog.Service, logger *zap.Logger) *MenuHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MenuHandler{svc: svc, logger: logger}
}

// List returns the whole catalog.
func (h *MenuHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get returns one catalog entry.
func (h *MenuHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create stores a new catalog entry.
func (h *MenuHandler) Create(c *gin.Context) {
	var input catalog.CreateMenuItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadJSON(c, h.logger, err)
		return
	}

	item, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu created successfully", "data": item})
}

// Update applies a partial update to a catalog entry.
func (h *MenuHandler) Update(c *gin.Context) {
	var update models.MenuItemUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadJSON(c, h.logger, err)
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated", "data": item})
}

// Delete removes a catalog entry.
func (h *MenuHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
