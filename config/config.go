package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Rental lifecycle settings.
	AdminGateEnabled      bool    `mapstructure:"RENTAL_ADMIN_GATE"`
	MaxPlatformCommission float64 `mapstructure:"RENTAL_MAX_PLATFORM_COMMISSION"`
	PlatformCommission    float64 `mapstructure:"RENTAL_PLATFORM_COMMISSION"`
	StoreOwnerCommission  float64 `mapstructure:"RENTAL_STORE_OWNER_COMMISSION"`
	SalesTaxRate          float64 `mapstructure:"RENTAL_SALES_TAX_RATE"`
	PendingExpiryHours    int     `mapstructure:"RENTAL_PENDING_EXPIRY_HOURS"`
	PaymentExpiryHours    int     `mapstructure:"RENTAL_PAYMENT_EXPIRY_HOURS"`

	// Stripe.
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	// Firebase service account for push notifications.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Cloudinary (receipt storage).
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "shelfspace")
	viper.SetDefault("RENTAL_ADMIN_GATE", true)
	viper.SetDefault("RENTAL_MAX_PLATFORM_COMMISSION", 0.30)
	viper.SetDefault("RENTAL_PLATFORM_COMMISSION", 0.09)
	viper.SetDefault("RENTAL_STORE_OWNER_COMMISSION", 0.10)
	viper.SetDefault("RENTAL_SALES_TAX_RATE", 0.0)
	viper.SetDefault("RENTAL_PENDING_EXPIRY_HOURS", 168)
	viper.SetDefault("RENTAL_PAYMENT_EXPIRY_HOURS", 72)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
