package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jecakings/garment-api/config"
	"github.com/jecakings/garment-api/models"
)

// ListAppointments handles GET /api/v1/appointments?customerId= - returns
// the appointment calendar for a customer. Customers are always scoped to
// themselves; staff may query any customer.
func ListAppointments(c *gin.Context) {
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
					"message": "Customers can only view their own appointments",
				},
			})
			return
		}
	}

	db := config.GetDB()
	appointments := []models.Appointment{}
	if err := db.Where("customer_id = ?", customerID).
		Order("scheduled_at ASC").
		Find(&appointments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch appointments",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    appointments,
	})
}
