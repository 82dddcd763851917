package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GRPC_PORT", "HTTP_PORT", "ENVIRONMENT", "DATA_SOURCE", "LOG_LEVEL", "MAX_TITLE_LENGTH", "ENABLE_REFLECTION"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "50051", cfg.Server.GRPCPort)
	assert.Equal(t, "8080", cfg.Server.HTTPPort)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.Server.EnableReflection)
	assert.Equal(t, DataSourceMock, cfg.Data.Source)
	assert.Equal(t, 200, cfg.Validation.MaxTitleLength)
	assert.NoError(t, cfg.ValidateConfig())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATA_SOURCE", "Postgres")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("MAX_COMMENT_LENGTH", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.Server.EnableReflection)
	assert.True(t, cfg.Server.AutoMigrate)
	assert.Equal(t, DataSourcePostgres, cfg.Data.Source)
	assert.Equal(t, 6543, cfg.ToDatabaseConfig().Port)
	assert.Equal(t, 5000, cfg.Validation.MaxCommentLength)
	assert.NoError(t, cfg.ValidateConfig())
}

func TestValidateConfig_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "same ports", mutate: func(c *Config) { c.Server.HTTPPort = c.Server.GRPCPort }, want: "must differ"},
		{name: "unknown source", mutate: func(c *Config) { c.Data.Source = "redis" }, want: "DATA_SOURCE"},
		{name: "zero length", mutate: func(c *Config) { c.Validation.MaxTitleLength = 0 }, want: "MAX_*"},
		{name: "reflection in production", mutate: func(c *Config) {
			c.Server.Environment = "production"
			c.Server.EnableReflection = true
		}, want: "reflection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.ValidateConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestToValidationConfig(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	cfg.Validation.MaxChecklistTextLength = 42

	v := cfg.ToValidationConfig()
	assert.Equal(t, 42, v.MaxChecklistTextLength)
	assert.Equal(t, cfg.Validation.MaxTitleLength, v.MaxTitleLength)
}
