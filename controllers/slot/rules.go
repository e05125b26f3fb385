package slotControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RG-basket/rgbasket-sub001/models"
)

type dayRuleInput struct {
	ProductID    uint     `json:"product_id" binding:"required"`
	DayOfWeek    *int     `json:"day_of_week" binding:"required"`
	BlockedSlots []string `json:"blocked_slots" binding:"required,min=1"`
	Reason       string   `json:"reason"`
	IsActive     *bool    `json:"is_active"`
}

// PUT /admin/slot-rules
// Upserts the single rule allowed per (product, weekday).
func UpsertDayRuleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dayRuleInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if *in.DayOfWeek < 0 || *in.DayOfWeek > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "day_of_week must be 0 (Sunday) through 6 (Saturday)"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", in.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}

		rule := models.SlotDayRule{
			ProductID:    in.ProductID,
			DayOfWeek:    *in.DayOfWeek,
			BlockedSlots: strings.Join(in.BlockedSlots, ","),
			Reason:       in.Reason,
			IsActive:     true,
		}
		if in.IsActive != nil {
			rule.IsActive = *in.IsActive
		}

		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "day_of_week"}},
			DoUpdates: clause.AssignmentColumns([]string{"blocked_slots", "reason", "is_active", "updated_at"}),
		}).Create(&rule).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save rule"})
			return
		}
		c.JSON(http.StatusOK, rule)
	}
}

// GET /admin/slot-rules/:productID
func ListDayRulesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rules []models.SlotDayRule
		if err := db.Where("product_id = ?", c.Param("productID")).
			Order("day_of_week ASC").Find(&rules).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch rules"})
			return
		}
		c.JSON(http.StatusOK, rules)
	}
}

// DELETE /admin/slot-rules/:productID/:day
func DeleteDayRuleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Where("product_id = ? AND day_of_week = ?", c.Param("productID"), c.Param("day")).
			Delete(&models.SlotDayRule{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete rule"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Rule not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Rule deleted"})
	}
}
