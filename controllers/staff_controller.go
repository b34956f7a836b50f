package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jecakings/garment-api/config"
	"github.com/jecakings/garment-api/models"
)

// ListStaff handles GET /api/v1/staff - lists staff and superadmin users,
// optionally narrowed by role and staff_type. Staff and superadmin callers
// only.
func ListStaff(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	if !models.IsStaffRole(user.Role) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only staff can view the staff directory",
			},
		})
		return
	}

	db := config.GetDB()
	q := db.Model(&models.User{}).
		Select("id, name, email, role, staff_type").
		Where("role IN ?", []string{models.RoleStaff, models.RoleSuperadmin})

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if staffType := c.Query("staff_type"); staffType != "" {
		q = q.Where("staff_type = ?", staffType)
	}

	staff := []models.User{}
	if err := q.Order("name ASC").Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch staff",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    staff,
	})
}
