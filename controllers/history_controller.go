package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jecakings/garment-api/services"
)

// ListOrderHistory handles GET /api/v1/orders/:id/history - returns the
// audit trail of an order, oldest record first. Customers can only read the
// trail of their own orders.
func ListOrderHistory(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	history, err := services.GetOrderService().History(actorFor(user), id)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
	})
}
