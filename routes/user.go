package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/config"
	cartControllers "github.com/RG-basket/rgbasket-sub001/controllers/cart"
	userControllers "github.com/RG-basket/rgbasket-sub001/controllers/user"
	"github.com/RG-basket/rgbasket-sub001/middleware"
)

// SetupUserRoutes registers the JWT-protected "/user/*" endpoints.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg config.App) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.RequireUser(cfg.JWTSecret))
	{
		userGroup.GET("", userControllers.GetUser(db))
		userGroup.PUT("", userControllers.UpdateUser(db))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(db))
			cartGroup.POST("", cartControllers.UpdateCartItem(db))
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db))
			cartGroup.DELETE("", cartControllers.ClearUserCart(db))
		}
	}
}
