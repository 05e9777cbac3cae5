package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pupuk/storefront/internal/infrastructure/config"
)

// newTestDB opens a migrated in-memory sqlite database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        ":memory:",
		AutoMigrate: true,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func TestNewDatabase_SQLite(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:", AutoMigrate: true}, nil)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())
	for _, table := range []string{"orders", "order_items", "products", "categories", "brands", "suppliers", "store_settings", "session_entries"} {
		assert.True(t, db.DB.Migrator().HasTable(table), table)
	}
}

func TestNewDatabase_InvalidConfig(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: "mysql"}, nil)
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("sqlite without path", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: "sqlite"}, nil)
		assert.ErrorContains(t, err, "database.path")
	})
}
