package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// App holds every runtime setting. Values come from the environment
// (optionally seeded by a local .env file).
type App struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	AdminAPIKey string `envconfig:"ADMIN_API_KEY" required:"true"`

	// AMQPURL is optional; when empty, order events are logged instead of
	// published.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"rgbasket.events"`

	// BusinessTimezone is the single civil timezone every cutoff and
	// capacity calculation uses. Never fall back to server-local time.
	BusinessTimezone string `envconfig:"BUSINESS_TZ" default:"Asia/Kolkata"`

	// TaxRatePercent is applied to the order subtotal.
	TaxRatePercent float64 `envconfig:"TAX_RATE_PERCENT" default:"0"`

	UploadsDir string `envconfig:"UPLOADS_DIR" default:"./uploads"`
}

func Load() (App, error) {
	_ = godotenv.Load()

	var c App
	if err := envconfig.Process("", &c); err != nil {
		return App{}, err
	}
	return c, nil
}

// Location resolves the configured business timezone.
func (c App) Location() (*time.Location, error) {
	return time.LoadLocation(c.BusinessTimezone)
}
