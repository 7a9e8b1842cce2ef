package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/service/sells"
)

// SellsHandler serves the open-sells ledger endpoints.
type SellsHandler struct {
	svc    *sells.Service
	logger *zap.Logger
}

// NewSellsHandler constructs the HTTP handler adapter.
func NewSellsHandler(svc *sells.Service, logger *zap.Logger) *SellsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SellsHandler{svc: svc, logger: logger}
}

type openSellsRequest struct {
	ItemID    string `json:"itemId"`
	Frequency *int   `json:"frequency"`
}

type syncSellsRequest struct {
	ID        string `json:"id"`
	Frequency *int   `json:"frequency"`
}

type closeSellsRequest struct {
	ID string `json:"id"`
}

// ListOpen returns every open record with its menu item joined.
func (h *SellsHandler) ListOpen(c *gin.Context) {
	views, err := h.svc.ListOpen(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// Get returns one record by id, open or closed.
func (h *SellsHandler) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Open starts a new sales period for a menu item.
func (h *SellsHandler) Open(c *gin.Context) {
	var req openSellsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadJSON(c, h.logger, err)
		return
	}

	record, err := h.svc.Open(c.Request.Context(), req.ItemID, req.Frequency)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sells opened successfully", "data": record})
}

// Sync appends an accumulated frequency delta to an open record.
func (h *SellsHandler) Sync(c *gin.Context) {
	var req syncSellsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadJSON(c, h.logger, err)
		return
	}

	record, err := h.svc.RecordSale(c.Request.Context(), req.ID, req.Frequency)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sells frequency added successfully", "data": record})
}

// Close ends the sales period of an open record.
func (h *SellsHandler) Close(c *gin.Context) {
	var req closeSellsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadJSON(c, h.logger, err)
		return
	}

	record, err := h.svc.Close(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sells closed successfully", "data": record})
}

// Delete removes a record in either state.
func (h *SellsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sells deleted successfully"})
}
