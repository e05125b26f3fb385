package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	promoControllers "github.com/RG-basket/rgbasket-sub001/controllers/promo"
	slotControllers "github.com/RG-basket/rgbasket-sub001/controllers/slot"
	"github.com/RG-basket/rgbasket-sub001/models"
	"github.com/RG-basket/rgbasket-sub001/notify"
	"github.com/RG-basket/rgbasket-sub001/scheduling"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductInactive   = errors.New("product is not active")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnknownWeight     = errors.New("unknown weight for product")
	ErrBlackoutDate      = errors.New("product unavailable on this date")
	ErrSlotNotFound      = errors.New("delivery slot not found")
	ErrSlotFull          = errors.New("delivery slot is full")
	ErrCutoffPassed      = errors.New("booking window closed")
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Weight    string `json:"weight" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	UserID          string           `json:"user_id"`
	Items           []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingAddress models.Address   `json:"shipping_address"`
	DeliveryDate    string           `json:"delivery_date" binding:"required"`
	TimeSlot        string           `json:"time_slot" binding:"required"`
	PaymentMethod   string           `json:"payment_method"`
	PromoCode       string           `json:"promo_code"`
}

// -------- Helpers --------

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// slotNameFromLabel strips the time suffix from a denormalized slot label,
// e.g. "Morning (07:00 - 10:00)" -> "Morning".
func slotNameFromLabel(label string) string {
	if i := strings.Index(label, " ("); i > 0 {
		return label[:i]
	}
	return strings.TrimSpace(label)
}

// resolveWeight matches the requested weight label against the product's
// priced variants. The match is strict: a label the catalog does not know
// fails the line item instead of silently charging another variant's price.
func resolveWeight(product *models.Product, label string) (*models.ProductWeight, error) {
	for i := range product.Weights {
		if product.Weights[i].Label == label {
			return &product.Weights[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q for product %q", ErrUnknownWeight, label, product.Name)
}

// -------- Core Logic --------

// CreateOrder runs the whole checkout transaction: slot re-validation
// (cutoff + capacity under a slot-row lock), item validation against live
// stock, promo validation, pricing, conditional stock decrement, and the
// order insert. Everything commits or nothing does.
func CreateOrder(db *gorm.DB, loc *time.Location, taxRate float64, req CreateOrderRequest) (*models.Order, *models.PromoCode, error) {
	deliveryDate, err := scheduling.ParseDate(req.DeliveryDate, loc)
	if err != nil {
		return nil, nil, err
	}

	var order models.Order
	var promo *models.PromoCode

	err = db.Transaction(func(tx *gorm.DB) error {
		// Lock the slot definition row first. Every checkout for the same
		// slot serializes here, closing the count-then-insert race.
		var slot models.DeliverySlot
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ? AND is_active = ?", slotNameFromLabel(req.TimeSlot), true).
			First(&slot).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		window := scheduling.SlotWindow{
			Name:        slot.Name,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			Capacity:    slot.Capacity,
			CutoffHours: slot.CutoffHours,
		}
		if ok, reason := scheduling.IsBookable(window, deliveryDate, time.Now(), loc); !ok {
			return fmt.Errorf("%w: %s", ErrCutoffPassed, reason)
		}

		booked, err := slotControllers.BookedCount(tx, deliveryDate, slot.Name, loc)
		if err != nil {
			return err
		}
		if booked >= slot.Capacity {
			return ErrSlotFull
		}

		// Validate every line fully before mutating anything.
		var subtotal float64
		var orderItems []models.OrderItem
		type decrement struct {
			productID uint
			quantity  int
		}
		var decrements []decrement

		for _, item := range req.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Preload("Weights").Preload("BlackoutDates").
				First(&product, "id = ?", item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrProductNotFound, item.ProductID)
				}
				return err
			}
			if !product.Active {
				return fmt.Errorf("%w: %s", ErrProductInactive, product.Name)
			}
			for _, b := range product.BlackoutDates {
				if scheduling.SameCivilDay(b.Date, deliveryDate, loc) {
					return fmt.Errorf("%w: %s", ErrBlackoutDate, product.Name)
				}
			}
			if product.Stock < item.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
			}

			weight, err := resolveWeight(&product, item.Weight)
			if err != nil {
				return err
			}

			// The offer price is always what the customer pays.
			subtotal += weight.OfferPrice * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				WeightLabel: weight.Label,
				Unit:        weight.Unit,
				Quantity:    item.Quantity,
				UnitPrice:   weight.OfferPrice,
			})
			decrements = append(decrements, decrement{productID: product.ID, quantity: item.Quantity})
		}
		subtotal = Round2(subtotal)

		var discount float64
		if req.PromoCode != "" {
			promo, discount, err = promoControllers.ValidateForOrder(tx, req.PromoCode, req.UserID, subtotal)
			if err != nil {
				return err
			}
		}

		shipping := ShippingFee(subtotal)
		tax := Tax(subtotal, taxRate)

		// All validation passed; mutate. The decrement re-checks stock so
		// two checkouts racing past the validation read cannot overdraw.
		for _, d := range decrements {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", d.productID, d.quantity).
				Updates(map[string]interface{}{
					"stock":          gorm.Expr("stock - ?", d.quantity),
					"in_stock":       gorm.Expr("stock - ? > 0", d.quantity),
					"purchase_count": gorm.Expr("purchase_count + ?", d.quantity),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product id %d", ErrInsufficientStock, d.productID)
			}
		}

		order = models.Order{
			Ref:             generateOrderRef(),
			UserID:          req.UserID,
			Items:           orderItems,
			ShippingAddress: req.ShippingAddress,
			DeliveryDate:    deliveryDate,
			TimeSlot:        slot.Label(),
			Status:          models.OrderStatusPending,
			Subtotal:        subtotal,
			ShippingFee:     shipping,
			Tax:             tax,
			DiscountAmount:  discount,
			TotalAmount:     Total(subtotal, shipping, tax, discount),
			PaymentMethod:   req.PaymentMethod,
		}
		if promo != nil {
			order.PromoCode = promo.Code
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &order, promo, nil
}

func statusForOrderError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrSlotNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrSlotFull) ||
		errors.Is(err, ErrCutoffPassed) || errors.Is(err, promoControllers.ErrPromoAlreadyUsed):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ErrProductInactive) || errors.Is(err, ErrBlackoutDate) ||
		errors.Is(err, ErrUnknownWeight) || errors.Is(err, promoControllers.ErrPromoInvalid):
		return http.StatusBadRequest, err.Error()
	case strings.Contains(err.Error(), "invalid date"):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Failed to place order"
	}
}

// -------- Handlers --------

// POST /orders
func CreateOrderHandler(db *gorm.DB, loc *time.Location, taxRate float64, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if userID, ok := c.Get("user_id"); ok {
			req.UserID = userID.(string)
		}
		if req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "user_id is required"})
			return
		}

		order, promo, err := CreateOrder(db, loc, taxRate, req)
		if err != nil {
			status, msg := statusForOrderError(err)
			if status == http.StatusInternalServerError {
				log.Printf("create order for user %s: %v", req.UserID, err)
			}
			c.JSON(status, gin.H{"success": false, "message": msg})
			return
		}

		// Side effects are best-effort: the order stands even when the
		// notification or the ledger write fails.
		go func(order models.Order, promo *models.PromoCode) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := notifier.OrderCreated(ctx, &order); err != nil {
				log.Printf("order %s: notification failed: %v", order.Ref, err)
			}
			if promo != nil {
				if err := promoControllers.RecordUsage(db, promo.ID, order.UserID, order.ID, order.DiscountAmount, order.TotalAmount); err != nil {
					log.Printf("order %s: promo ledger update failed: %v", order.Ref, err)
				}
			}
		}(*order, promo)

		c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
	}
}

var errNotCancellable = errors.New("order can no longer be cancelled")

// cancelOrder is the single cancellation path: it restores the stock the
// order consumed and flips the status inside one transaction. Cancelled
// orders also stop counting against their slot's capacity.
func cancelOrder(db *gorm.DB, orderID, reason string) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}
		if !IsCancellable(order.Status) {
			return fmt.Errorf("%w: status is %q", errNotCancellable, order.Status)
		}

		for _, item := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Updates(map[string]interface{}{
					"stock":    gorm.Expr("stock + ?", item.Quantity),
					"in_stock": true,
				}).Error; err != nil {
				return err
			}
		}

		order.Status = models.OrderStatusCancelled
		order.CancelReason = reason
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// PUT /orders/:orderID/cancel
// Only pending and confirmed orders qualify.
func CancelOrderHandler(db *gorm.DB, notifier notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CancelReason string `json:"cancel_reason"`
		}
		_ = c.ShouldBindJSON(&req)

		order, err := cancelOrder(db, c.Param("orderID"), req.CancelReason)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			if errors.Is(err, errNotCancellable) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel order"})
			return
		}

		go func(order models.Order) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := notifier.OrderCancelled(ctx, &order); err != nil {
				log.Printf("order %s: cancellation notification failed: %v", order.Ref, err)
			}
		}(*order)

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// PUT /orders/:orderID/deliver
// The customer confirms receipt; legal only from shipped.
func ConfirmDeliveryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("orderID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		if !CanTransition(order.Status, models.OrderStatusDelivered) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Only shipped orders can be marked delivered"})
			return
		}

		now := time.Now()
		if err := db.Model(&order).Updates(map[string]interface{}{
			"status":       models.OrderStatusDelivered,
			"delivered_at": now,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order"})
			return
		}
		order.Status = models.OrderStatusDelivered
		order.DeliveredAt = &now
		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := MapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		// Admin cancellations take the same transaction as the customer
		// path, so the order's stock is restored, not just its status set.
		if newStatus == models.OrderStatusCancelled {
			order, err := cancelOrder(db, c.Param("orderID"), "cancelled by admin")
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
					return
				}
				if errors.Is(err, errNotCancellable) {
					c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel order"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("orderID")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
			return
		}
		if !CanTransition(order.Status, newStatus) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": fmt.Sprintf("cannot move order from %q to %q", order.Status, newStatus),
			})
			return
		}
		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated"})
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/user/:userID
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "userID is required"})
			return
		}
		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID accepts a numeric id or an order ref.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		var order models.Order
		if err := db.Preload("Items").
			Where("id::text = ? OR ref = ?", id, id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
