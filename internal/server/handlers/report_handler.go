package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/service/reporting"
)

// ReportHandler serves the windowed financial report endpoint.
type ReportHandler struct {
	svc    *reporting.Service
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter.
func NewReportHandler(svc *reporting.Service, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, logger: logger}
}

// Get builds the report for the window named by the "filter" query param.
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.svc.BuildReport(c.Request.Context(), c.Query("filter"), time.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
