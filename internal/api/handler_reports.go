package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"phone-inspection-backend/internal/store"
)

type exportReportRequest struct {
	OrderID int64 `json:"orderId" binding:"required"`
}

// ExportReport handles POST /api/reports/excel.
func (h *Handler) ExportReport(c *gin.Context) {
	var req exportReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.exporter.Export(c.Request.Context(), req.OrderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reportUrl":  result.ReportURL,
		"reportData": result.Summary,
	})
}
