package models

import "time"

// PromoCode is a percentage discount redeemable at most once per user.
// Aggregates are maintained by the promo ledger after orders commit.
type PromoCode struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	Code    string  `gorm:"uniqueIndex;not null" json:"code"` // uppercase, 5-10 alphanumeric
	Percent float64 `gorm:"not null" json:"percent"`
	// MaxDiscount caps the discount amount; nil means uncapped.
	MaxDiscount *float64 `json:"max_discount,omitempty"`

	// InfluencerRoute is an optional referral slug; unique when set.
	InfluencerRoute      string  `gorm:"uniqueIndex:idx_promo_route,where:influencer_route <> ''" json:"influencer_route,omitempty"`
	InfluencerPercentage float64 `json:"influencer_percentage"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	UsageCount         int     `json:"usage_count"`
	TotalDiscountGiven float64 `json:"total_discount_given"`
	InfluencerEarnings float64 `json:"influencer_earnings"`

	UsedBy []PromoUsage `gorm:"foreignKey:PromoCodeID;constraint:OnDelete:CASCADE" json:"used_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PromoUsage is one redemption. The unique (promo, user) index is the
// database backstop for the at-most-once-per-user rule.
type PromoUsage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PromoCodeID    uint      `gorm:"not null;uniqueIndex:idx_promo_user" json:"promo_code_id"`
	UserID         string    `gorm:"not null;uniqueIndex:idx_promo_user" json:"user_id"`
	OrderID        uint      `gorm:"not null" json:"order_id"`
	DiscountAmount float64   `json:"discount_amount"`
	UsedAt         time.Time `json:"used_at"`
}
