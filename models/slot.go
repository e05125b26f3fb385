package models

import (
	"strings"
	"time"
)

// DeliverySlot is a named, capacity-bounded delivery window. Created by
// administrators, read on every availability check.
type DeliverySlot struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	StartTime   string `gorm:"not null" json:"start_time"` // "HH:MM"
	EndTime     string `gorm:"not null" json:"end_time"`   // "HH:MM"
	Capacity    int    `gorm:"not null" json:"capacity"`
	CutoffHours int    `gorm:"not null" json:"cutoff_hours"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Label is the denormalized form stored on orders, e.g. "Morning (07:00 - 10:00)".
func (s DeliverySlot) Label() string {
	return s.Name + " (" + s.StartTime + " - " + s.EndTime + ")"
}

// SlotDayRule blocks a set of slots for one product on one weekday.
// At most one rule exists per (product, weekday) pair.
type SlotDayRule struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_rule_product_day" json:"product_id"`
	// DayOfWeek follows time.Weekday: 0 = Sunday .. 6 = Saturday.
	DayOfWeek    int    `gorm:"not null;uniqueIndex:idx_rule_product_day" json:"day_of_week"`
	BlockedSlots string `gorm:"not null" json:"blocked_slots"` // comma-separated slot names
	Reason       string `json:"reason"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlockedSlotNames splits BlockedSlots into trimmed names.
func (r SlotDayRule) BlockedSlotNames() []string {
	parts := strings.Split(r.BlockedSlots, ",")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
