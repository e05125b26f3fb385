package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"` // URL returned by the asset collaborator
	CategoryID  *uint  `json:"category_id"`

	Active        bool `gorm:"default:true" json:"active"`
	Stock         int  `gorm:"not null;default:0" json:"stock"`
	InStock       bool `gorm:"default:true" json:"in_stock"`
	PurchaseCount int  `json:"purchase_count"`

	Weights []ProductWeight `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"weights"`

	// AvailableSlots is a comma-separated whitelist of slot names. Empty
	// means the product may use every active slot.
	AvailableSlots string `json:"available_slots"`

	SlotRestrictions []SlotDateRestriction `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"slot_restrictions"`
	BlackoutDates    []ProductBlackout     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"blackout_dates"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProductWeight is one priced variant of a product. OfferPrice is what the
// customer is actually charged and never exceeds Price.
type ProductWeight struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ProductID  uint    `gorm:"index" json:"product_id"`
	Label      string  `gorm:"not null" json:"label"` // e.g. "500g"
	Unit       string  `json:"unit"`                  // e.g. "g", "kg", "pack"
	Price      float64 `gorm:"not null" json:"price"`
	OfferPrice float64 `gorm:"not null" json:"offer_price"`
}

// SlotDateRestriction blocks one slot for one product on one exact date.
type SlotDateRestriction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index" json:"product_id"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	SlotName  string    `gorm:"not null" json:"slot_name"`
	Reason    string    `json:"reason"`
}

// ProductBlackout marks a date the product cannot be ordered at all.
type ProductBlackout struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"index" json:"product_id"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Reason    string    `json:"reason"`
}

// SlotWhitelist splits AvailableSlots into names; nil when unrestricted.
func (p *Product) SlotWhitelist() []string {
	if strings.TrimSpace(p.AvailableSlots) == "" {
		return nil
	}
	parts := strings.Split(p.AvailableSlots, ",")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
