package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/domain/models"
	"github.com/gaysay/backoffice/internal/service/purchasing"
)

// PurchaseHandler serves the expense endpoints.
type PurchaseHandler struct {
	svc    *purchasing.Service
	logger *zap.Logger
}

// NewPurchaseHandler constructs the HTTP handler adapter.
func NewPurchaseHandler(svc *purchasing.Service, logger *zap.Logger) *PurchaseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PurchaseHandler{svc: svc, logger: logger}
}

type closePurchaseRequest struct {
	ID string `json:"id"`
}

// ListOpen returns purchases still being edited.
func (h *PurchaseHandler) ListOpen(c *gin.Context) {
	purchases, err := h.svc.ListOpen(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// Get returns one purchase in either state.
func (h *PurchaseHandler) Get(c *gin.Context) {
	purchase, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// Create stores a new expense record.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var input purchasing.CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadJSON(c, h.logger, err)
		return
	}

	purchase, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Purchase created", "data": purchase})
}

// Update applies a partial update to a purchase.
func (h *PurchaseHandler) Update(c *gin.Context) {
	var update models.PurchaseUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadJSON(c, h.logger, err)
		return
	}

	purchase, err := h.svc.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated", "data": purchase})
}

// Close finalizes a purchase.
func (h *PurchaseHandler) Close(c *gin.Context) {
	var req closePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadJSON(c, h.logger, err)
		return
	}

	purchase, err := h.svc.Close(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Closed", "data": purchase})
}

// Delete removes a purchase in either state.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
