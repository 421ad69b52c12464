package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"phone-inspection-backend/internal/blob"
	"phone-inspection-backend/internal/model"
	"phone-inspection-backend/internal/mw"
	"phone-inspection-backend/internal/store"
)

type createInspectionRequest struct {
	IMEI       string           `json:"imei" binding:"required"`
	OrderID    int64            `json:"orderId" binding:"required"`
	PhoneSpecs model.PhoneSpecs `json:"phoneSpecs"`
	Grade      string           `json:"grade" binding:"omitempty,oneof=A B C D"`
	Defects    []string         `json:"defects"`
	Notes      string           `json:"notes"`
	Images     []string         `json:"images"`
}

// CreateInspection handles POST /api/inspections.
func (h *Handler) CreateInspection(c *gin.Context) {
	var req createInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	sess, _ := mw.SessionFrom(c)
	inspection, err := h.store.CreateInspection(c.Request.Context(), store.CreateInspectionInput{
		IMEI:        req.IMEI,
		OrderID:     req.OrderID,
		InspectorID: sess.AccountID,
		PhoneSpecs:  req.PhoneSpecs,
		Grade:       req.Grade,
		Defects:     req.Defects,
		Notes:       req.Notes,
		Images:      req.Images,
	})
	if err != nil {
		var dup *store.DuplicateIMEIError
		if errors.As(err, &dup) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message":            "IMEI already exists for this order",
				"existingInspection": dup.Existing,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create inspection"})
		return
	}

	c.JSON(http.StatusOK, inspection)
}

// GetInspectionByIMEI handles GET /api/inspections/imei/:imei/order/:orderId.
func (h *Handler) GetInspectionByIMEI(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return
	}

	inspection, err := h.store.InspectionByIMEI(c.Request.Context(), c.Param("imei"), orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Inspection not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch inspection"})
		return
	}
	c.JSON(http.StatusOK, inspection)
}

// ListInspectionsByOrder handles GET /api/inspections/order/:orderId.
func (h *Handler) ListInspectionsByOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return
	}

	inspections, err := h.store.InspectionsByOrder(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch inspections"})
		return
	}
	c.JSON(http.StatusOK, inspections)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateInspectionStatus handles PUT /api/inspections/:id/status.
func (h *Handler) UpdateInspectionStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid inspection ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err = h.store.UpdateInspectionStatus(c.Request.Context(), id, req.Status, time.Now())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Inspection not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update status"})
	}
}

// UploadInspectionImages handles POST /api/inspections/:id/images. Files
// arrive as multipart form field "images" and stream to blob storage.
func (h *Handler) UploadInspectionImages(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid inspection ID"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid multipart form"})
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No images provided"})
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload images"})
			return
		}
		url, err := h.uploader.Upload(c.Request.Context(), blob.ObjectKey("inspections", file.Filename), f, file.Header.Get("Content-Type"))
		f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload images"})
			return
		}
		urls = append(urls, url)
	}

	err = h.store.UpdateInspectionImages(c.Request.Context(), id, urls)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"imageUrls": urls})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Inspection not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload images"})
	}
}
