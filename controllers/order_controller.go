package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jecakings/garment-api/services"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerID          *uint             `json:"customerId"`
	OrderType           string            `json:"order_type" binding:"required"`
	Description         *string           `json:"description"`
	AppointmentDateTime *time.Time        `json:"appointment_date_time"`
	Measurements        map[string]string `json:"measurements"`
	ImageURLs           []string          `json:"image_urls"`
	Priority            *string           `json:"priority"`
	Notes               *string           `json:"notes"`
}

// UpdateOrderRequest represents the request body for updating an order.
// Every field is optional; fields left out of the request are not touched.
type UpdateOrderRequest struct {
	Status         *string    `json:"status"`
	TotalAmount    *float64   `json:"total_amount"`
	VendorID       *uint      `json:"vendor_id"`
	StaffID        *uint      `json:"staff_id"`
	CommissionRate *float64   `json:"commission_rate"`
	Notes          *string    `json:"notes"`
	Priority       *string    `json:"priority"`
	ReadyDate      *time.Time `json:"ready_date"`
	FittingDate    *time.Time `json:"fitting_date"`
	PaidAmount     *float64   `json:"paid_amount"`
}

// ListOrders handles GET /api/v1/orders - lists orders, optionally filtered
// by customerId, status and orderType. Customers only ever see their own.
func ListOrders(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	filter := services.OrderFilter{
		Status:    c.Query("status"),
		OrderType: c.Query("orderType"),
	}
	if raw := c.Query("customerId"); raw != "" {
		customerID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "customerId must be a number",
				},
			})
			return
		}
		id := uint(customerID)
		filter.CustomerID = &id
	}

	orders, err := services.GetOrderService().List(actorFor(user), filter)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// CreateOrder handles POST /api/v1/orders - creates a new order (customers only)
func CreateOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	input := services.CreateOrderInput{
		OrderType:       req.OrderType,
		Description:     req.Description,
		AppointmentDate: req.AppointmentDateTime,
		Measurements:    req.Measurements,
		ImageURLs:       req.ImageURLs,
		Priority:        req.Priority,
		Notes:           req.Notes,
	}
	if req.CustomerID != nil {
		input.CustomerID = *req.CustomerID
	}

	order, err := services.GetOrderService().Create(actorFor(user), input)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"orderId": order.ID,
		"data":    order,
	})
}

// GetOrder handles GET /api/v1/orders/:id - returns one order enriched with
// customer, staff and vendor names
func GetOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := services.GetOrderService().Get(actorFor(user), id)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT /api/v1/orders/:id - applies a partial field set.
// Status changes are validated against the lifecycle before anything is
// written.
func UpdateOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	update := services.OrderUpdate{
		Status:         req.Status,
		TotalAmount:    req.TotalAmount,
		VendorID:       req.VendorID,
		StaffID:        req.StaffID,
		CommissionRate: req.CommissionRate,
		Notes:          req.Notes,
		Priority:       req.Priority,
		ReadyDate:      req.ReadyDate,
		FittingDate:    req.FittingDate,
		PaidAmount:     req.PaidAmount,
	}

	changed, err := services.GetOrderService().Update(actorFor(user), id, update)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Order updated successfully",
		"updated_fields": changed,
	})
}

// DeleteOrder handles DELETE /api/v1/orders/:id - soft-cancels an order.
// Superadmin only; the row and its audit trail are preserved.
func DeleteOrder(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := services.GetOrderService().Cancel(actorFor(user), id); err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled successfully",
	})
}
