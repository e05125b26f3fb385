package productcontroller

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/models"
	"github.com/RG-basket/rgbasket-sub001/scheduling"
)

type weightInput struct {
	Label      string  `json:"label" binding:"required"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price" binding:"required,gt=0"`
	OfferPrice float64 `json:"offer_price" binding:"required,gt=0"`
}

type createProductInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	// Image is a URL produced by the external asset-storage collaborator.
	Image          string        `json:"image"`
	CategoryID     *uint         `json:"category_id"`
	Stock          int           `json:"stock" binding:"min=0"`
	Active         *bool         `json:"active"`
	Weights        []weightInput `json:"weights" binding:"required,min=1,dive"`
	AvailableSlots []string      `json:"available_slots"`
	BlackoutDates  []string      `json:"blackout_dates"` // YYYY-MM-DD
}

// CreateProduct creates a catalog product with its priced variants.
func CreateProduct(db *gorm.DB, loc *time.Location) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in createProductInput
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

		blackouts := make([]models.ProductBlackout, 0, len(in.BlackoutDates))
		for _, d := range in.BlackoutDates {
			date, err := scheduling.ParseDate(d, loc)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
				return
			}
			blackouts = append(blackouts, models.ProductBlackout{Date: date})
		}

		product := models.Product{
			Name:           in.Name,
			Description:    in.Description,
			Image:          in.Image,
			CategoryID:     in.CategoryID,
			Stock:          in.Stock,
			InStock:        in.Stock > 0,
			Active:         true,
			AvailableSlots: strings.Join(in.AvailableSlots, ","),
			BlackoutDates:  blackouts,
		}
		if in.Active != nil {
			product.Active = *in.Active
		}
		for _, w := range in.Weights {
			product.Weights = append(product.Weights, models.ProductWeight{
				Label:      w.Label,
				Unit:       w.Unit,
				Price:      w.Price,
				OfferPrice: w.OfferPrice,
			})
		}

		if err := db.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "A product with this name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
