package orderControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	slotControllers "github.com/RG-basket/rgbasket-sub001/controllers/slot"
	"github.com/RG-basket/rgbasket-sub001/models"
	"github.com/RG-basket/rgbasket-sub001/scheduling"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testDB connects to the database named by TEST_DATABASE_URL and migrates
// the schema. Tests create uniquely named rows instead of truncating, so
// they can share one database.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductWeight{},
		&models.SlotDateRestriction{},
		&models.ProductBlackout{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliverySlot{},
		&models.SlotDayRule{},
		&models.PromoCode{},
		&models.PromoUsage{},
	))
	return db
}

func seedCheckout(t *testing.T, db *gorm.DB, stock int) (models.DeliverySlot, models.Product) {
	t.Helper()
	suffix := uuid.NewString()[:8]

	slot := models.DeliverySlot{
		Name: "Dawn-" + suffix, StartTime: "06:00", EndTime: "08:00",
		Capacity: 10, CutoffHours: 1, IsActive: true,
	}
	require.NoError(t, db.Create(&slot).Error)

	product := models.Product{
		Name: "TOMATO-" + suffix, Active: true, Stock: stock, InStock: stock > 0,
		Weights: []models.ProductWeight{{Label: "1kg", Unit: "kg", Price: 40, OfferPrice: 35}},
	}
	require.NoError(t, db.Create(&product).Error)

	return slot, product
}

func TestCreateOrderDepletesStock(t *testing.T) {
	db := testDB(t)
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	slot, product := seedCheckout(t, db, 5)
	req := CreateOrderRequest{
		UserID:       "cust-" + uuid.NewString()[:8],
		Items:        []OrderItemInput{{ProductID: product.ID, Weight: "1kg", Quantity: 5}},
		DeliveryDate: time.Now().In(loc).AddDate(0, 0, 1).Format("2006-01-02"),
		TimeSlot:     slot.Name,
	}

	order, promo, err := CreateOrder(db, loc, 0, req)
	require.NoError(t, err)
	assert.Nil(t, promo)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 175.0, order.Subtotal)
	assert.Equal(t, 204.0, order.TotalAmount) // 175 + 29 shipping

	// Ordering the whole stock empties the shelf.
	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 0, got.Stock)
	assert.False(t, got.InStock)
	assert.Equal(t, 5, got.PurchaseCount)

	// The depleted product rejects the next order.
	req.Items[0].Quantity = 1
	_, _, err = CreateOrder(db, loc, 0, req)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAdminCancellationRestoresStock(t *testing.T) {
	db := testDB(t)
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	slot, product := seedCheckout(t, db, 5)
	deliveryDate := time.Now().In(loc).AddDate(0, 0, 1).Format("2006-01-02")
	order, _, err := CreateOrder(db, loc, 0, CreateOrderRequest{
		UserID:       "cust-" + uuid.NewString()[:8],
		Items:        []OrderItemInput{{ProductID: product.ID, Weight: "1kg", Quantity: 3}},
		DeliveryDate: deliveryDate,
		TimeSlot:     slot.Name,
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "orderID", Value: fmt.Sprint(order.ID)}}
	c.Request = httptest.NewRequest(http.MethodPut, "/admin/orders/status", strings.NewReader(`{"status":"cancelled"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	UpdateOrderStatusHandler(db)(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusCancelled, reloaded.Status)

	// The stock the order consumed comes back.
	var got models.Product
	require.NoError(t, db.First(&got, product.ID).Error)
	assert.Equal(t, 5, got.Stock)
	assert.True(t, got.InStock)

	// And the slot booking is released.
	date, err := scheduling.ParseDate(deliveryDate, loc)
	require.NoError(t, err)
	booked, err := slotControllers.BookedCount(db, date, slot.Name, loc)
	require.NoError(t, err)
	assert.Equal(t, 0, booked)
}

func TestConfirmDeliveryReportsDeliveredOrder(t *testing.T) {
	db := testDB(t)
	suffix := uuid.NewString()[:8]

	order := models.Order{
		Ref:          "ref-" + suffix,
		UserID:       "cust-" + suffix,
		DeliveryDate: time.Now().AddDate(0, 0, 1),
		TimeSlot:     "Dawn (06:00 - 08:00)",
		Status:       models.OrderStatusShipped,
	}
	require.NoError(t, db.Create(&order).Error)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "orderID", Value: fmt.Sprint(order.ID)}}
	c.Request = httptest.NewRequest(http.MethodPut, "/orders/deliver", nil)
	ConfirmDeliveryHandler(db)(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// The response carries the updated state, not the pre-update row.
	var resp struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderStatusDelivered, resp.Order.Status)
	require.NotNil(t, resp.Order.DeliveredAt)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, reloaded.Status)
	require.NotNil(t, reloaded.DeliveredAt)
}
