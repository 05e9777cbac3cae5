package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "pupuk-storefront", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "database", cfg.Session.Store)
		assert.Equal(t, "storefront_session", cfg.Session.CookieName)
		assert.Equal(t, "https://emsifa.github.io/api-wilayah-indonesia/api", cfg.Region.BaseURL)
		assert.Equal(t, 10*time.Second, cfg.Region.Timeout)
		assert.Equal(t, "pupuk-images", cfg.Storage.Bucket)
		assert.Equal(t, "6281234567890", cfg.Checkout.DefaultWhatsApp)
		assert.Equal(t, 2*time.Second, cfg.Checkout.RedirectDelay)
		assert.False(t, cfg.IsProduction())
		assert.False(t, cfg.Telemetry.Enabled)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, "localhost:4317", cfg.Telemetry.CollectorEndpoint)
	})

	t.Run("loads values from environment variables with STORE prefix", func(t *testing.T) {
		t.Setenv("STORE_APP_PORT", "9000")
		t.Setenv("STORE_DATABASE_DRIVER", "postgres")
		t.Setenv("STORE_DATABASE_HOST", "db.local")
		t.Setenv("STORE_SESSION_STORE", "redis")
		t.Setenv("STORE_REGION_TIMEOUT", "3s")
		t.Setenv("STORE_CHECKOUT_DEFAULT_WHATSAPP", "628111")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, "redis", cfg.Session.Store)
		assert.Equal(t, 3*time.Second, cfg.Region.Timeout)
		assert.Equal(t, "628111", cfg.Checkout.DefaultWhatsApp)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		t.Setenv("STORE_DATABASE_DRIVER", "mysql")
		_, err := Load()
		assert.ErrorContains(t, err, "database.driver")
	})

	t.Run("rejects unknown session store", func(t *testing.T) {
		t.Setenv("STORE_SESSION_STORE", "cookie")
		_, err := Load()
		assert.ErrorContains(t, err, "session.store")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		t.Setenv("STORE_TELEMETRY_SAMPLING_RATIO", "1.5")
		_, err := Load()
		assert.ErrorContains(t, err, "telemetry.sampling_ratio")
	})

	t.Run("production requires a long jwt secret", func(t *testing.T) {
		t.Setenv("STORE_APP_ENV", "production")
		t.Setenv("STORE_JWT_SECRET", "short")
		_, err := Load()
		assert.ErrorContains(t, err, "jwt.secret")
	})

	t.Run("production requires an admin password hash", func(t *testing.T) {
		t.Setenv("STORE_APP_ENV", "production")
		t.Setenv("STORE_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		_, err := Load()
		assert.ErrorContains(t, err, "admin.password_hash")
	})
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_TEST_DOTENV=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("STORE_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("STORE_TEST_DOTENV"))
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{User: "shop", Password: "p@ss word", Host: "db", Port: 5432, DBName: "storefront", SSLMode: "disable"}
	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/storefront?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
