package config

import (
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Marketplace backend.
	BackendURL     string        `mapstructure:"BACKEND_URL"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`

	// Session slot storage: memory, redis or mongo.
	SessionBackend string        `mapstructure:"SESSION_BACKEND"`
	SlotSecret     string        `mapstructure:"SLOT_SECRET"`
	CSRFKey        string        `mapstructure:"CSRF_KEY"`
	TabIdleTTL     time.Duration `mapstructure:"TAB_IDLE_TTL"`
	TabSweepEvery  time.Duration `mapstructure:"TAB_SWEEP_INTERVAL"`

	HealthCheckEvery time.Duration `mapstructure:"HEALTH_CHECK_INTERVAL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`

	// Mongo configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Booking.
	DefaultLocation string `mapstructure:"DEFAULT_LOCATION"`

	// Listings filler entries.
	ListingsFillerEnabled bool `mapstructure:"LISTINGS_FILLER_ENABLED"`
	ListingsFillerMin     int  `mapstructure:"LISTINGS_FILLER_MIN"`
	ListingsFillerMax     int  `mapstructure:"LISTINGS_FILLER_MAX"`

	// Cloudinary icon delivery. Empty cloud name disables it.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

var AppConfig Config

// Development secrets. Production must override both.
const (
	devSlotSecret = "hussboss-dev-slot-secret"
	devCSRFKey    = "hussboss-dev-csrf-key-32-bytes!!"
)

// ErrDevSecrets is returned by CheckSecrets for a production config that
// still uses a development secret.
var ErrDevSecrets = errors.New("config: SLOT_SECRET and CSRF_KEY must be set in production")

func LoadConfig() {
	// A local .env is optional.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := CheckSecrets(AppConfig); err != nil {
		log.Fatalf("Refusing to start: %v", err)
	}
}

// CheckSecrets rejects production configs that run with the development
// slot secret or CSRF key, or with a CSRF key that is not 32 bytes.
func CheckSecrets(cfg Config) error {
	if cfg.Env != "production" {
		return nil
	}
	if cfg.SlotSecret == "" || cfg.SlotSecret == devSlotSecret ||
		cfg.CSRFKey == devCSRFKey || len(cfg.CSRFKey) != 32 {
		return ErrDevSecrets
	}
	return nil
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("BACKEND_URL", "http://127.0.0.1:8000")
	v.SetDefault("BACKEND_TIMEOUT", "15s")
	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("SLOT_SECRET", devSlotSecret)
	v.SetDefault("CSRF_KEY", devCSRFKey)
	v.SetDefault("TAB_IDLE_TTL", "2h")
	v.SetDefault("TAB_SWEEP_INTERVAL", "10m")
	v.SetDefault("HEALTH_CHECK_INTERVAL", "30s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SESSION_DB", 0)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "hussboss")
	v.SetDefault("DEFAULT_LOCATION", "Kathmandu")
	v.SetDefault("LISTINGS_FILLER_ENABLED", false)
	v.SetDefault("LISTINGS_FILLER_MIN", 5)
	v.SetDefault("LISTINGS_FILLER_MAX", 19)
	v.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	v.SetDefault("CLOUDINARY_API_KEY", "")
	v.SetDefault("CLOUDINARY_API_SECRET", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
