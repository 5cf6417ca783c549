package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "vietcart-backend", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, 10, cfg.JWT.MaxRefreshCount)
	assert.Equal(t, int64(30000), cfg.Shipping.FlatFee)
	assert.Equal(t, "ap-southeast-1", cfg.Storage.Region)
}

func TestDSNEscapesPassword(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     3306,
		User:     "vietcart",
		Password: "p@ss/word",
		DBName:   "vietcart",
		Params:   "charset=utf8mb4&parseTime=True&loc=Local",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "vietcart:p%40ss%2Fword@tcp(db.internal:3306)/vietcart")
	assert.Contains(t, dsn, "parseTime=True")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}

func TestValidateRejectsBadPoolSettings(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = cfg.Database.MaxOpenConns + 1

	assert.Error(t, cfg.validate())
}

func TestValidateProductionRequirements(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.App.Env = "production"

	// No JWT secret
	assert.Error(t, cfg.validate())

	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Database.Password = "secret"
	cfg.MoMo.Sandbox = true
	assert.Error(t, cfg.validate(), "sandbox gateway rejected in production")

	cfg.MoMo.Sandbox = false
	assert.NoError(t, cfg.validate())
}

func TestValidateRejectsWildcardCORSInProduction(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.App.Env = "production"
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.Database.Password = "secret"
	cfg.HTTP.CORSAllowOrigins = []string{"*"}

	assert.Error(t, cfg.validate())
}
