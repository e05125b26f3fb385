package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/config"
	"github.com/RG-basket/rgbasket-sub001/notify"
)

// SetupRoutes wires up the public catalog, user, order, and admin groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.App, loc *time.Location, notifier notify.Notifier) {
	SetupCatalogRoutes(r, db, loc)
	SetupUserRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, cfg, loc, notifier)
	SetupAdminRoutes(r, db, cfg, loc)
}
