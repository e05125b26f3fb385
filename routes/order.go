package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/config"
	orderControllers "github.com/RG-basket/rgbasket-sub001/controllers/order"
	"github.com/RG-basket/rgbasket-sub001/middleware"
	"github.com/RG-basket/rgbasket-sub001/notify"
)

// SetupOrderRoutes registers the checkout and order-lifecycle endpoints.
// All of them act on behalf of an authenticated customer.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg config.App, loc *time.Location, notifier notify.Notifier) {
	orders := r.Group("/orders")
	orders.Use(middleware.RequireUser(cfg.JWTSecret))
	{
		orders.POST("", orderControllers.CreateOrderHandler(db, loc, cfg.TaxRatePercent, notifier))
		orders.GET("/user/:userID", orderControllers.GetUserOrdersHandler(db))
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
		orders.PUT("/:orderID/cancel", orderControllers.CancelOrderHandler(db, notifier))
		orders.PUT("/:orderID/deliver", orderControllers.ConfirmDeliveryHandler(db))
	}
}
