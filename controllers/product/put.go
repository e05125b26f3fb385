package productcontroller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/models"
	"github.com/RG-basket/rgbasket-sub001/scheduling"
)

type updateProductInput struct {
	Name           *string       `json:"name"`
	Description    *string       `json:"description"`
	Image          *string       `json:"image"`
	CategoryID     *uint         `json:"category_id"`
	Stock          *int          `json:"stock"`
	Active         *bool         `json:"active"`
	Weights        []weightInput `json:"weights"` // replaces all variants when present
	AvailableSlots []string      `json:"available_slots"`
	BlackoutDates  []string      `json:"blackout_dates"` // replaces all when present
}

// UpdateProduct partially updates a product; variant and blackout lists
// are replaced wholesale when supplied.
func UpdateProduct(db *gorm.DB, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}

		var in updateProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		for _, w := range in.Weights {
			if w.OfferPrice > w.Price {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "offer_price cannot exceed price for weight " + w.Label})
				return
			}
		}

		var blackouts []models.ProductBlackout
		for _, d := range in.BlackoutDates {
			date, err := scheduling.ParseDate(d, loc)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			blackouts = append(blackouts, models.ProductBlackout{ProductID: product.ID, Date: date})
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{}
			if in.Name != nil {
				updates["name"] = *in.Name
			}
			if in.Description != nil {
				updates["description"] = *in.Description
			}
			if in.Image != nil {
				updates["image"] = *in.Image
			}
			if in.CategoryID != nil {
				updates["category_id"] = *in.CategoryID
			}
			if in.Stock != nil {
				updates["stock"] = *in.Stock
				updates["in_stock"] = *in.Stock > 0
			}
			if in.Active != nil {
				updates["active"] = *in.Active
			}
			if in.AvailableSlots != nil {
				updates["available_slots"] = strings.Join(in.AvailableSlots, ",")
			}
			if len(updates) > 0 {
				if err := tx.Model(&product).Updates(updates).Error; err != nil {
					return err
				}
			}

			if in.Weights != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductWeight{}).Error; err != nil {
					return err
				}
				for _, w := range in.Weights {
					pw := models.ProductWeight{
						ProductID:  product.ID,
						Label:      w.Label,
						Unit:       w.Unit,
						Price:      w.Price,
						OfferPrice: w.OfferPrice,
					}
					if err := tx.Create(&pw).Error; err != nil {
						return err
					}
				}
			}

			if in.BlackoutDates != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductBlackout{}).Error; err != nil {
					return err
				}
				for i := range blackouts {
					if err := tx.Create(&blackouts[i]).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product"})
			return
		}

		if err := db.Preload("Weights").Preload("BlackoutDates").First(&product, product.ID).Error; err == nil {
			c.JSON(http.StatusOK, product)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated"})
	}
}
