package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting confirmation
	OrderStatusConfirmed  OrderStatus = "confirmed"  // confirmed by the store
	OrderStatusProcessing OrderStatus = "processing" // being picked and packed
	OrderStatusShipped    OrderStatus = "shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // receipt confirmed by the customer
	OrderStatusCancelled  OrderStatus = "cancelled"  // cancelled from pending/confirmed
)

type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Ref    string `gorm:"uniqueIndex;not null" json:"ref"`
	UserID string `gorm:"index;not null" json:"user_id"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`

	// DeliveryDate is the civil delivery day; TimeSlot is the denormalized
	// slot label at booking time, not a foreign key.
	DeliveryDate time.Time `gorm:"type:date;index;not null" json:"delivery_date"`
	TimeSlot     string    `gorm:"index;not null" json:"time_slot"`

	Status OrderStatus `gorm:"type:VARCHAR(20);default:'pending';index" json:"status"`

	// Pricing snapshot, computed once at checkout and never recomputed.
	Subtotal       float64 `json:"subtotal"`
	ShippingFee    float64 `json:"shipping_fee"`
	Tax            float64 `json:"tax"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`

	PromoCode     string `json:"promo_code,omitempty"`
	PaymentMethod string `json:"payment_method"` // label only, no processing

	CancelReason string     `json:"cancel_reason,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem snapshots the product at purchase time so historical orders
// keep their prices when the catalog changes.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index" json:"order_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	WeightLabel string  `json:"weight_label"`
	Unit        string  `json:"unit"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"` // the offer price at purchase
}
