package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/config"
	cartControllers "github.com/RG-basket/rgbasket-sub001/controllers/cart"
	orderControllers "github.com/RG-basket/rgbasket-sub001/controllers/order"
	productcontroller "github.com/RG-basket/rgbasket-sub001/controllers/product"
	promoControllers "github.com/RG-basket/rgbasket-sub001/controllers/promo"
	slotControllers "github.com/RG-basket/rgbasket-sub001/controllers/slot"
	userControllers "github.com/RG-basket/rgbasket-sub001/controllers/user"
	"github.com/RG-basket/rgbasket-sub001/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints behind the API key.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.App, loc *time.Location) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAPIKey(cfg.AdminAPIKey))
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db, loc))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db, loc))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Delivery Slots & Rules ───────────
		slotAdmin := adminGroup.Group("/slots")
		{
			slotAdmin.GET("", slotControllers.ListAllSlotsHandler(db))
			slotAdmin.POST("", slotControllers.CreateSlotHandler(db))
			slotAdmin.PUT("/:id", slotControllers.UpdateSlotHandler(db))
		}
		ruleAdmin := adminGroup.Group("/slot-rules")
		{
			ruleAdmin.PUT("", slotControllers.UpsertDayRuleHandler(db))
			ruleAdmin.GET("/:productID", slotControllers.ListDayRulesHandler(db))
			ruleAdmin.DELETE("/:productID/:day", slotControllers.DeleteDayRuleHandler(db))
		}

		// ─────────── Promo Codes ───────────
		promoAdmin := adminGroup.Group("/promocodes")
		{
			promoAdmin.GET("", promoControllers.ListPromosHandler(db))
			promoAdmin.POST("", promoControllers.CreatePromoHandler(db))
			promoAdmin.PUT("/:id", promoControllers.UpdatePromoHandler(db))
		}

		// ─────────── Orders & Users ───────────
		adminGroup.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		adminGroup.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.GET("/users/:user_id/cart", cartControllers.GetAdminUserCart(db))
	}
}
