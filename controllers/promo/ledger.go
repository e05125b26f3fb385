package promoControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/models"
)

// RecordUsage appends a usage entry for a committed order and bumps the
// promo's aggregates. It runs after the order is durably persisted, as a
// best-effort side effect; the real per-user uniqueness guard is the
// synchronous check in ValidateForOrder, with the unique
// (promo_code_id, user_id) index catching concurrent stragglers. A
// duplicate insert is therefore treated as already-recorded, not an error.
func RecordUsage(db *gorm.DB, promoID uint, userID string, orderID uint, discount, orderTotal float64) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var promo models.PromoCode
		if err := tx.First(&promo, "id = ?", promoID).Error; err != nil {
			return err
		}

		usage := models.PromoUsage{
			PromoCodeID:    promo.ID,
			UserID:         userID,
			OrderID:        orderID,
			DiscountAmount: discount,
			UsedAt:         time.Now(),
		}
		if err := tx.Create(&usage).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}

		updates := map[string]interface{}{
			"usage_count":          gorm.Expr("usage_count + 1"),
			"total_discount_given": gorm.Expr("total_discount_given + ?", discount),
		}
		if promo.InfluencerRoute != "" && promo.InfluencerPercentage > 0 {
			earning := round2(orderTotal * promo.InfluencerPercentage / 100)
			updates["influencer_earnings"] = gorm.Expr("influencer_earnings + ?", earning)
		}
		return tx.Model(&promo).Updates(updates).Error
	})
}

// GET /promocodes/influencer/:route
func InfluencerStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var promo models.PromoCode
		if err := db.Where("influencer_route = ?", c.Param("route")).First(&promo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Influencer route not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"code":               promo.Code,
			"usageCount":         promo.UsageCount,
			"totalDiscountGiven": promo.TotalDiscountGiven,
			"influencerEarnings": promo.InfluencerEarnings,
		})
	}
}
