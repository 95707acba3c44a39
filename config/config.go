package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every setting the storefront reads from the environment
type Config struct {
	Env          string        `env:"APP_ENV" env-default:"development"`
	Port         string        `env:"PORT" env-default:"5000"`
	PortAttempts int           `env:"PORT_ATTEMPTS" env-default:"10"`
	LogLevel     string        `env:"LOG_LEVEL" env-default:"info"`
	Database     Database
	Redis        Redis
	Admin        Admin
	Storefront   Storefront
	Upload       Upload
	ChromePath   string `env:"CHROME_PATH"`
}

type Database struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`
}

type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"5m"`
}

type Admin struct {
	Email     string        `env:"ADMIN_EMAIL"`
	Password  string        `env:"ADMIN_PASSWORD"`
	JWTSecret string        `env:"JWT_SECRET" env-default:"secret"`
	TokenTTL  time.Duration `env:"JWT_TTL" env-default:"8h"`
}

// Storefront holds the values used to build outbound order links
type Storefront struct {
	PublicBaseURL  string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:8080"`
	WhatsAppNumber string `env:"WHATSAPP_NUMBER" env-default:"+212679545622"`
	OrderEmail     string `env:"ORDER_EMAIL" env-default:"hello@mugix.com"`
}

type Upload struct {
	Backend         string `env:"UPLOAD_BACKEND" env-default:"local"`
	Dir             string `env:"UPLOAD_DIR" env-default:"uploads"`
	PublicPrefix    string `env:"UPLOAD_PUBLIC_PREFIX" env-default:"/uploads"`
	DriveFolderID   string `env:"DRIVE_FOLDER_ID"`
	CredentialsPath string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
}

// Load reads the configuration from the process environment.
// Callers load any .env file beforehand.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	return &cfg, nil
}

// defaultJWTSecret is the development fallback for JWT_SECRET
const defaultJWTSecret = "secret"

// ErrInsecureJWTSecret is returned when production runs without its own secret
var ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a non-default value in production")

// Validate checks settings that must not keep their development defaults
func (c *Config) Validate() error {
	if c.IsProduction() && (c.Admin.JWTSecret == "" || c.Admin.JWTSecret == defaultJWTSecret) {
		return ErrInsecureJWTSecret
	}
	return nil
}

// IsProduction reports whether the service runs with production defaults
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// DSN returns the connection string, preferring DATABASE_URL
func (d Database) DSN() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode), nil
}
