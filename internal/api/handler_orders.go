package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"phone-inspection-backend/internal/mw"
	"phone-inspection-backend/internal/store"
)

type createOrderRequest struct {
	ExpectedQuantity int    `json:"expectedQuantity" binding:"required,gt=0"`
	Notes            string `json:"notes"`
}

// CreateOrder handles POST /api/orders.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	sess, _ := mw.SessionFrom(c)
	order, err := h.store.CreateOrder(c.Request.Context(), store.CreateOrderInput{
		ExpectedQuantity: req.ExpectedQuantity,
		Notes:            req.Notes,
		CreatedBy:        sess.AccountID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /api/orders (capped for the reports screen).
func (h *Handler) ListOrders(c *gin.Context) {
	h.listRecent(c, 50)
}

// RecentOrders handles GET /api/orders/recent.
func (h *Handler) RecentOrders(c *gin.Context) {
	h.listRecent(c, 5)
}

func (h *Handler) listRecent(c *gin.Context, limit int) {
	orders, err := h.store.RecentOrders(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByNumber handles GET /api/orders/:orderNumber.
func (h *Handler) GetOrderByNumber(c *gin.Context) {
	order, err := h.store.OrderByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateOrderRequest struct {
	OrderNumber      *string `json:"orderNumber"`
	ExpectedQuantity *int    `json:"expectedQuantity"`
	Notes            *string `json:"notes"`
	Status           *string `json:"status"`
}

// UpdateOrder handles PUT /api/orders/:id.
func (h *Handler) UpdateOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	err = h.store.UpdateOrder(c.Request.Context(), orderID, store.OrderUpdate{
		OrderNumber:      req.OrderNumber,
		ExpectedQuantity: req.ExpectedQuantity,
		Notes:            req.Notes,
		Status:           req.Status,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Order updated successfully"})
	case errors.Is(err, store.ErrInvalidOrderNumber):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order number must be exactly 12 digits"})
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order"})
	}
}

// ListInspectionsForOrder handles GET /api/orders/:orderNumber/inspections.
// The path parameter is the numeric order ID; it shares the :orderNumber
// name because Gin requires one wildcard name per position.
func (h *Handler) ListInspectionsForOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderNumber"), 10, 64)
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
