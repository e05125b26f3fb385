package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/RG-basket/rgbasket-sub001/controllers/product"
	promoControllers "github.com/RG-basket/rgbasket-sub001/controllers/promo"
	slotControllers "github.com/RG-basket/rgbasket-sub001/controllers/slot"
)

// SetupCatalogRoutes registers the public browse/availability endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB, loc *time.Location) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/products/:id/availability", slotControllers.GetAvailabilityHandler(db, loc))
	r.GET("/categories", productcontroller.GetAllCategories(db))

	r.GET("/slots", slotControllers.ListSlotsHandler(db))
	r.POST("/find-common-slots", slotControllers.FindCommonSlotsHandler(db))

	r.POST("/promocodes/apply", promoControllers.ApplyPromoHandler(db))
	r.GET("/promocodes/influencer/:route", promoControllers.InfluencerStatsHandler(db))
}
