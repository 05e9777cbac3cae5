package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pupuk/storefront/internal/domain/settings"
)

func TestGormSettingsRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormSettingsRepository(newTestDB(t))

	empty, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, empty.ID)

	first := &settings.StoreSettings{StoreName: "Toko Tani", WhatsAppNumber: "08123"}
	require.NoError(t, repo.Save(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)

	second := &settings.StoreSettings{StoreName: "Toko Tani Jaya", WhatsAppNumber: "628555"}
	require.NoError(t, repo.Save(ctx, second))
	assert.Equal(t, first.ID, second.ID, "single row is updated in place")

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Toko Tani Jaya", got.StoreName)
	assert.Equal(t, "628555", got.WhatsAppNumber)
}
