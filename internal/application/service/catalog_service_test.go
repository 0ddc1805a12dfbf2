package service

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCatalogCachesWithinTTL(t *testing.T) {
	gw := &fakeCatalog{products: testCatalog()}
	svc := NewCatalogService(gw, time.Minute, zap.NewNop())
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := svc.Products(ctx, 1)
	require.NoError(t, err)
	_, err = svc.FindByID(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, gw.loads)

	now = now.Add(2 * time.Minute)
	_, err = svc.Products(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, gw.loads)

	_, err = svc.Products(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, gw.loads)
}

func TestCatalogServesStaleSnapshotOnError(t *testing.T) {
	gw := &fakeCatalog{products: testCatalog()}
	svc := NewCatalogService(gw, time.Minute, zap.NewNop())
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := svc.Products(ctx, 1)
	require.NoError(t, err)

	gw.err = errBackendDown
	now = now.Add(time.Hour)
	products, err := svc.Products(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, products, 4)

	_, err = svc.Refresh(ctx, 1)
	assert.Error(t, err)

	_, err = svc.Products(ctx, 2)
	assert.ErrorIs(t, err, errBackendDown)
}

func TestCatalogLookups(t *testing.T) {
	svc := NewCatalogService(&fakeCatalog{products: testCatalog()}, 0, zap.NewNop())
	ctx := context.Background()

	p, err := svc.FindByBarcode(ctx, 1, "7701234")
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)

	_, err = svc.FindByBarcode(ctx, 1, "770123")
	assert.ErrorIs(t, err, entity.ErrProductNotFound)

	p, err = svc.FindByCodeOrName(ctx, 1, "b2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)

	p, err = svc.FindByCodeOrName(ctx, 1, "empaque")
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)

	_, err = svc.FindByID(ctx, 1, 42)
	assert.ErrorIs(t, err, entity.ErrProductNotFound)

	found, err := svc.Search(ctx, 1, "", 2)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
