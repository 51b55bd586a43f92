// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dangerclosesec/crm/internal/auth"
	"github.com/joho/godotenv"
)

type Config struct {
	Database struct {
		Host       string `json:"host"`
		Port       string `json:"port"`
		User       string `json:"user"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		SSLMode    string `json:"sslmode"`
		SearchPath string `json:"schema"`
	} `json:"database"`
	JWT struct {
		Secret       string        `json:"secret"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`
	Password auth.PasswordConfig `json:"password"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
	}
	Assignment struct {
		// BulkConcurrency bounds the per-record workers of one bulk request.
		BulkConcurrency int `json:"bulk_concurrency"`
	} `json:"assignment"`
	Reconcile struct {
		Interval  time.Duration `json:"interval"`
		BatchSize int           `json:"batch_size"`
	} `json:"reconcile"`
	Email struct {
		Provider string `json:"provider"`
		FromName string `json:"from_name"`
	} `json:"email"`
	Sendgrid struct {
		APIKey string `json:"api_key"`
		From   string `json:"from"`
	} `json:"sendgrid"`
	SMTP struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"smtp"`
	BaseURL string `json:"base_url"`
}

// DSN is the PostgreSQL connection string for gorm's postgres driver.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s search_path=%s",
		c.Database.Host,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.Port,
		c.Database.SSLMode,
		c.Database.SearchPath,
	)
}

// Load reads configuration from the environment. Values in .env.local and
// .env fill in variables the environment does not already set.
func Load() *Config {
	for _, file := range []string{".env.local", ".env"} {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to load env file", "file", file, "error", err)
		}
	}

	cfg := &Config{}

	// Database configuration
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "crm")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", "public")

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-secret-key")
	cfg.JWT.ExpiryPeriod = getDuration("JWT_EXPIRY", time.Hour*24)

	// Password hashing cost; existing hashes are upgraded on next login.
	def := auth.DefaultPasswordConfig()
	cfg.Password.Time = uint32(getInt("PASSWORD_ARGON2_TIME", int(def.Time)))
	cfg.Password.MemoryKiB = uint32(getInt("PASSWORD_ARGON2_MEMORY_KIB", int(def.MemoryKiB)))
	cfg.Password.Threads = uint8(getInt("PASSWORD_ARGON2_THREADS", int(def.Threads)))
	cfg.Password.KeyLen = def.KeyLen

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15

	cfg.Assignment.BulkConcurrency = getInt("BULK_ASSIGN_CONCURRENCY", 8)

	cfg.Reconcile.Interval = getDuration("RECONCILE_INTERVAL", time.Hour)
	cfg.Reconcile.BatchSize = getInt("RECONCILE_BATCH_SIZE", 100)

	// Email configuration
	cfg.Email.Provider = getEnv("EMAIL_PROVIDER", "none")
	cfg.Email.FromName = getEnv("EMAIL_FROM_NAME", "CRM")

	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", "")

	cfg.SMTP.Host = getEnv("SMTP_HOST", "localhost")
	cfg.SMTP.Port = getInt("SMTP_PORT", 587)
	cfg.SMTP.Username = getEnv("SMTP_USERNAME", "")
	cfg.SMTP.Password = getEnv("SMTP_PASSWORD", "")
	cfg.SMTP.From = getEnv("SMTP_FROM", "")

	cfg.BaseURL = getEnv("BASE_URL", "http://localhost:8080")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", value)
		return defaultValue
	}
	return n
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("ignoring invalid duration setting", "key", key, "value", value)
		return defaultValue
	}
	return d
}
