package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig()

	assert.Equal(t, 14, cfg.Rules.LoanDays)
	assert.Equal(t, 7, cfg.Rules.ExtensionDays)
	assert.Equal(t, 2, cfg.Rules.MaxExtensions)
	assert.Equal(t, 3, cfg.Rules.MaxBooksPerUser)
	assert.Equal(t, "admin@uai.edu", cfg.AdminEmail)
	assert.False(t, cfg.SeedDemoData)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("LOAN_DAYS", "21")
	t.Setenv("MAX_EXTENSIONS", "1")
	t.Setenv("ACCESS_TTL_MINUTES", "5")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := loadConfig()

	assert.Equal(t, 21, cfg.Rules.LoanDays)
	assert.Equal(t, 1, cfg.Rules.MaxExtensions)
	assert.Equal(t, "5m0s", cfg.AccessTTL.String())
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadConfigIgnoresBadInt(t *testing.T) {
	t.Setenv("EXTENSION_DAYS", "soon")
	cfg := loadConfig()
	assert.Equal(t, 7, cfg.Rules.ExtensionDays)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("student123")
	assert.NoError(t, err)
	assert.True(t, VerifyPassword("student123", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}
