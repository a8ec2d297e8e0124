package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcos-nsantos/geocrop/internal/infrastructure/config"
)

func setRequired(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("OPERATOR_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "operator", cfg.Operator.Name)
	assert.Equal(t, 1, cfg.Crop.ExportWorkers)
	assert.True(t, cfg.Crop.Overwrite)
	assert.Equal(t, 2*time.Hour, cfg.Crop.SessionTTL)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.S3.Enabled)
	assert.Empty(t, cfg.NATS.URL)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "database without credentials", env: map[string]string{"DB_ENABLED": "true"}},
		{name: "s3 without bucket", env: map[string]string{"S3_ENABLED": "true"}},
		{name: "zero workers", env: map[string]string{"CROP_EXPORT_WORKERS": "0"}},
		{name: "negative sweep interval", env: map[string]string{"CROP_SWEEP_INTERVAL": "-1m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET_KEY"))
	t.Setenv("OPERATOR_PASSWORD_HASH", "hash")
	_, err := config.Load()
	assert.Error(t, err)
}
