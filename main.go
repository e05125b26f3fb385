package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/config"
	slotControllers "github.com/RG-basket/rgbasket-sub001/controllers/slot"
	"github.com/RG-basket/rgbasket-sub001/models"
	"github.com/RG-basket/rgbasket-sub001/notify"
	"github.com/RG-basket/rgbasket-sub001/routes"
)

func main() {
	log.Println("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config load failed: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("❌ Invalid business timezone %q: %v", cfg.BusinessTimezone, err)
	}

	db := initDatabase(cfg)

	if err := db.AutoMigrate(
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
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Slot definitions must exist before the first availability query, so
	// seeding blocks startup instead of racing traffic.
	if err := slotControllers.SeedDefaultSlots(db); err != nil {
		log.Fatalf("❌ Slot seeding failed: %v", err)
	}

	notifier := initNotifier(cfg)
	defer notifier.Close()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Product images live behind external storage; this only serves what
	// was placed locally during development.
	r.Static("/uploads", cfg.UploadsDir)

	routes.SetupRoutes(r, db, cfg, loc, notifier)

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection.
func initDatabase(cfg config.App) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true, // surfaces gorm.ErrDuplicatedKey on unique violations
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	return db
}

func initNotifier(cfg config.App) notify.Notifier {
	if cfg.AMQPURL == "" {
		log.Println("⚠️ AMQP_URL not set, order events will only be logged")
		return notify.LogNotifier{}
	}
	pub, err := notify.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		log.Fatalf("❌ RabbitMQ connection failed: %v", err)
	}
	return pub
}
