package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jecakings/garment-api/config"
	"github.com/jecakings/garment-api/models"
)

// ListPayments handles GET /api/v1/payments?customerId= - returns the
// payment ledger for a customer's orders. Customers are always scoped to
// themselves; staff may query any customer.
func ListPayments(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	customerID := user.ID
	if raw := c.Query("customerId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
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
		if models.IsStaffRole(user.Role) {
			customerID = uint(parsed)
		} else if uint(parsed) != user.ID {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Customers can only view their own payments",
				},
			})
			return
		}
	} else if models.IsStaffRole(user.Role) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "customerId is required",
			},
		})
		return
	}

	db := config.GetDB()
	payments := []models.Payment{}
	if err := db.Model(&models.Payment{}).
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.customer_id = ?", customerID).
		Order("payments.created_at DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch payments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    payments,
	})
}
