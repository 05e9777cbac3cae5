//go:build integration

package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pupuk/storefront/internal/domain/cart"
	"github.com/pupuk/storefront/internal/domain/catalog"
	"github.com/pupuk/storefront/internal/domain/order"
	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/migration"
	"github.com/pupuk/storefront/migrations"
)

// newPostgresDB starts a throwaway postgres, applies the embedded SQL
// migrations and returns a GORM handle on it.
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres container tests skipped in -short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.New(sqlDB, migrations.FS, "", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db
}

func TestPostgres_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(newPostgresDB(t))

	o := sampleOrder(t,
		cart.Line{ProductID: uuid.New(), Name: "Urea", UnitPrice: decimal.NewFromInt(7000), Quantity: 2},
	)
	require.NoError(t, repo.Create(ctx, o))
	require.NoError(t, repo.CreateLines(ctx, order.NewLines(o.ID, []cart.Line{
		{ProductID: uuid.New(), Name: "Urea", UnitPrice: decimal.NewFromInt(7000), Quantity: 2},
	})))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusNew, found.Status)
	assert.True(t, decimal.NewFromInt(14000).Equal(found.TotalAmount))

	lines, err := repo.FindLines(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	require.NoError(t, repo.UpdateStatus(ctx, o.ID, order.StatusNew, order.StatusProcessing))
	revenue, err := repo.Revenue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(14000).Equal(revenue))

	require.NoError(t, repo.UpdateStatus(ctx, o.ID, order.StatusProcessing, order.StatusCancelled))
	revenue, err = repo.Revenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())
}

func TestPostgres_CatalogAndSessions(t *testing.T) {
	ctx := context.Background()
	db := newPostgresDB(t)

	categories := NewGormCategoryRepository(db)
	products := NewGormProductRepository(db)

	cat := &catalog.Category{BaseEntity: shared.NewBaseEntity(), Name: "Pupuk Kimia", Slug: "pupuk-kimia"}
	require.NoError(t, categories.Save(ctx, cat))

	p := newProduct("Urea 46%", time.Now())
	p.CategoryID = &cat.ID
	require.NoError(t, products.Save(ctx, p))

	got, err := products.FindBySlug(ctx, p.Slug)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "Pupuk Kimia", got.CategoryName)

	kv := NewGormKVStore(db)
	require.NoError(t, kv.Set(ctx, "sid:pupuk_cart", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "sid:pupuk_cart", []byte(`[1]`)))
	v, err := kv.Get(ctx, "sid:pupuk_cart")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(v))

	n, err := kv.PurgeBefore(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = kv.Get(ctx, "sid:pupuk_cart")
	assert.ErrorIs(t, err, shared.ErrKeyNotFound)
}
