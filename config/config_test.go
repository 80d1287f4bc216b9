package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":   "postgres://festival@localhost/festival?sslmode=disable",
		"JWT_SECRET_KEY": "secret",
		"ADMIN_PASSWORD": "rahsia",
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "./uploads", cfg.UploadDir)
	assert.Equal(t, "http://localhost:8080/uploads", cfg.UploadBaseURL)
	assert.Zero(t, cfg.TokenTTL)
	assert.False(t, cfg.R2.Enabled())
}

func TestFromEnvOverrides(t *testing.T) {
	env := baseEnv()
	env["SERVER_PORT"] = "9000"
	env["STORE_DRIVER"] = "Memory"
	env["DATABASE_URL"] = ""
	env["CORS_ALLOWED_ORIGINS"] = "https://pskpp.my, https://admin.pskpp.my,"
	env["TOKEN_TTL"] = "2h"
	env["SEED_FILE"] = "seed.yaml"
	env["SEED_OVERWRITE"] = "true"
	env["R2_ACCOUNT_ID"] = "acc"
	env["R2_ACCESS_KEY_ID"] = "key"
	env["R2_SECRET_ACCESS_KEY"] = "secret"
	env["R2_BUCKET_NAME"] = "festival"
	env["R2_PUBLIC_BASE_URL"] = "https://cdn.pskpp.my"

	cfg, err := FromEnv(envMap(env))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"https://pskpp.my", "https://admin.pskpp.my"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "seed.yaml", cfg.SeedFile)
	assert.True(t, cfg.SeedOverwrite)
	assert.True(t, cfg.R2.Enabled())
	assert.Equal(t, "festival", cfg.R2.BucketName)
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name   string
		change map[string]string
		errMsg string
	}{
		{"bad port", map[string]string{"SERVER_PORT": "http"}, "SERVER_PORT"},
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}, "between 1 and 65535"},
		{"no database url", map[string]string{"DATABASE_URL": ""}, "DATABASE_URL"},
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}, "STORE_DRIVER"},
		{"no jwt secret", map[string]string{"JWT_SECRET_KEY": ""}, "JWT_SECRET_KEY"},
		{"no admin password", map[string]string{"ADMIN_PASSWORD": ""}, "ADMIN_PASSWORD_HASH"},
		{"bad ttl", map[string]string{"TOKEN_TTL": "-1h"}, "TOKEN_TTL"},
		{"partial r2", map[string]string{"R2_BUCKET_NAME": "festival"}, "R2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			for k, v := range tt.change {
				env[k] = v
			}
			_, err := FromEnv(envMap(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
