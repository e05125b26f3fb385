package promoControllers

import (
	"errors"
	"math"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/models"
)

var (
	// ErrPromoInvalid covers unknown and inactive codes alike.
	ErrPromoInvalid = errors.New("invalid or inactive promo code")
	// ErrPromoAlreadyUsed means this user already redeemed the code.
	ErrPromoAlreadyUsed = errors.New("promo code already used")
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{5,10}$`)

// ValidCode reports whether code is 5-10 uppercase alphanumerics.
func ValidCode(code string) bool {
	return codePattern.MatchString(code)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Discount computes the capped percentage discount for a subtotal,
// rounded to 2 decimals.
func Discount(promo *models.PromoCode, subtotal float64) float64 {
	d := subtotal * promo.Percent / 100
	if promo.MaxDiscount != nil && d > *promo.MaxDiscount {
		d = *promo.MaxDiscount
	}
	return round2(d)
}

// ValidateForOrder is the synchronous promo check run before an order
// commits: code must exist (uppercased lookup) and be active, and the
// user must not appear in its usage ledger. Returns the promo and the
// discount for the given subtotal.
func ValidateForOrder(db *gorm.DB, code, userID string, subtotal float64) (*models.PromoCode, float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var promo models.PromoCode
	if err := db.Where("code = ?", code).First(&promo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrPromoInvalid
		}
		return nil, 0, err
	}
	if !promo.IsActive {
		return nil, 0, ErrPromoInvalid
	}

	if userID != "" {
		var used int64
		if err := db.Model(&models.PromoUsage{}).
			Where("promo_code_id = ? AND user_id = ?", promo.ID, userID).
			Count(&used).Error; err != nil {
			return nil, 0, err
		}
		if used > 0 {
			return nil, 0, ErrPromoAlreadyUsed
		}
	}

	return &promo, Discount(&promo, subtotal), nil
}

type applyRequest struct {
	Code        string  `json:"code" binding:"required"`
	TotalAmount float64 `json:"totalAmount" binding:"required,gt=0"`
	UserID      string  `json:"userId"`
}

// POST /promocodes/apply
// Pre-checkout quote; nothing is recorded here.
func ApplyPromoHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req applyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		promo, discount, err := ValidateForOrder(db, req.Code, req.UserID, req.TotalAmount)
		switch {
		case errors.Is(err, ErrPromoInvalid):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invalid or expired promo code"})
			return
		case errors.Is(err, ErrPromoAlreadyUsed):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You have already used this promo code"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to validate promo code"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"discountAmount": discount,
			"finalTotal":     round2(req.TotalAmount - discount),
			"percent":        promo.Percent,
			"maxDiscount":    promo.MaxDiscount,
		})
	}
}

// -------- Admin CRUD --------

type promoInput struct {
	Code                 string   `json:"code" binding:"required"`
	Percent              float64  `json:"percent" binding:"required,gt=0,lte=100"`
	MaxDiscount          *float64 `json:"max_discount"`
	InfluencerRoute      string   `json:"influencer_route"`
	InfluencerPercentage float64  `json:"influencer_percentage"`
	IsActive             *bool    `json:"is_active"`
}

// POST /admin/promocodes
func CreatePromoHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in promoInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		code := strings.ToUpper(strings.TrimSpace(in.Code))
		if !ValidCode(code) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Code must be 5-10 alphanumeric characters"})
			return
		}

		promo := models.PromoCode{
			Code:                 code,
			Percent:              in.Percent,
			MaxDiscount:          in.MaxDiscount,
			InfluencerRoute:      strings.TrimSpace(in.InfluencerRoute),
			InfluencerPercentage: in.InfluencerPercentage,
			IsActive:             true,
		}
		if in.IsActive != nil {
			promo.IsActive = *in.IsActive
		}
		if err := db.Create(&promo).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Promo code or influencer route already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create promo code"})
			return
		}
		c.JSON(http.StatusCreated, promo)
	}
}

// PUT /admin/promocodes/:id
func UpdatePromoHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var promo models.PromoCode
		if err := db.First(&promo, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Promo code not found"})
			return
		}

		var in struct {
			Percent              *float64 `json:"percent"`
			MaxDiscount          *float64 `json:"max_discount"`
			InfluencerPercentage *float64 `json:"influencer_percentage"`
			IsActive             *bool    `json:"is_active"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		updates := map[string]interface{}{}
		if in.Percent != nil {
			if *in.Percent <= 0 || *in.Percent > 100 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "percent must be in (0, 100]"})
				return
			}
			updates["percent"] = *in.Percent
		}
		if in.MaxDiscount != nil {
			updates["max_discount"] = *in.MaxDiscount
		}
		if in.InfluencerPercentage != nil {
			updates["influencer_percentage"] = *in.InfluencerPercentage
		}
		if in.IsActive != nil {
			updates["is_active"] = *in.IsActive
		}
		if len(updates) > 0 {
			if err := db.Model(&promo).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update promo code"})
				return
			}
		}
		c.JSON(http.StatusOK, promo)
	}
}

// GET /admin/promocodes
func ListPromosHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var promos []models.PromoCode
		if err := db.Order("created_at DESC").Find(&promos).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch promo codes"})
			return
		}
		c.JSON(http.StatusOK, promos)
	}
}
