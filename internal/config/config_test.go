package config_test

import (
	"testing"
	"time"

	"github.com/dangerclosesec/crm/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_NAME", "crm_test")
	t.Setenv("BULK_ASSIGN_CONCURRENCY", "3")
	t.Setenv("JWT_EXPIRY", "2h")

	cfg := config.Load()

	assert.Equal(t, "crm_test", cfg.Database.Name)
	assert.Equal(t, 3, cfg.Assignment.BulkConcurrency)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiryPeriod)
	assert.Contains(t, cfg.DSN(), "dbname=crm_test")
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("BULK_ASSIGN_CONCURRENCY", "lots")
	t.Setenv("RECONCILE_INTERVAL", "soon")

	cfg := config.Load()

	assert.Equal(t, 8, cfg.Assignment.BulkConcurrency)
	assert.Equal(t, time.Hour, cfg.Reconcile.Interval)
}

func TestLoadPasswordCost(t *testing.T) {
	t.Setenv("PASSWORD_ARGON2_MEMORY_KIB", "131072")
	t.Setenv("PASSWORD_ARGON2_TIME", "3")

	cfg := config.Load()

	assert.Equal(t, uint32(131072), cfg.Password.MemoryKiB)
	assert.Equal(t, uint32(3), cfg.Password.Time)
	assert.Equal(t, uint8(4), cfg.Password.Threads)
}
