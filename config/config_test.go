package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "thisisasamplesecret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, "qkart", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.Timeout)
	assert.False(t, cfg.Mongo.Transactions)
	assert.Equal(t, 240, cfg.JWT.AccessExpirationMinutes)
	assert.Equal(t, int64(500), cfg.DefaultWalletMoney)
	assert.Equal(t, "ADDRESS_NOT_SET", cfg.DefaultAddress)
	assert.Equal(t, "PAYMENT_OPTION_DEFAULT", cfg.DefaultPaymentOption)
	assert.Equal(t, 10*time.Minute, cfg.Redis.ProductTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.Email.Provider)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "test")
	t.Setenv("DEFAULT_WALLET_MONEY", "1000")
	t.Setenv("MONGODB_TRANSACTIONS", "true")
	t.Setenv("REDIS_PRODUCT_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://qkart.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsTest())
	assert.Equal(t, int64(1000), cfg.DefaultWalletMoney)
	assert.True(t, cfg.Mongo.Transactions)
	assert.Equal(t, 30*time.Second, cfg.Redis.ProductTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://qkart.example.com"}, cfg.CORSOrigins)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing mongo url", map[string]string{"MONGODB_URL": ""}},
		{"missing jwt secret", map[string]string{"JWT_SECRET": ""}},
		{"bad wallet", map[string]string{"DEFAULT_WALLET_MONEY": "lots"}},
		{"bad timeout", map[string]string{"MONGODB_TIMEOUT": "soon"}},
		{"unknown email provider", map[string]string{"EMAIL_PROVIDER": "pigeon"}},
		{"postmark without token", map[string]string{"EMAIL_PROVIDER": "postmark"}},
		{"sendgrid without key", map[string]string{"EMAIL_PROVIDER": "sendgrid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
