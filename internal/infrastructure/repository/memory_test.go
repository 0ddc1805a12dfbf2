package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-register/internal/domain/repository"
	"github.com/sangkips/pos-register/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySaleJournalScopesByCompany(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySaleJournal()

	sale := &entity.CompletedSale{CompanyID: 1, UserID: 7, InvoiceNumber: "FV-100"}
	require.NoError(t, repo.Create(ctx, sale))
	require.NotEqual(t, uuid.Nil, sale.ID)

	got, err := repo.GetByID(ctx, 1, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "FV-100", got.InvoiceNumber)

	other, err := repo.GetByID(ctx, 2, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestMemorySaleJournalListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySaleJournal().(*memorySaleJournal)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, number := range []string{"FV-001", "FV-002", "FV-003"} {
		require.NoError(t, repo.Create(ctx, &entity.CompletedSale{
			CompanyID:     1,
			UserID:        int64(i%2 + 1),
			InvoiceNumber: number,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}))
	}

	sales, total, err := repo.List(ctx, 1, domainRepo.SaleFilter{}, pagination.Params{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, sales, 2)
	assert.Equal(t, "FV-003", sales[0].InvoiceNumber)
	assert.Equal(t, "FV-002", sales[1].InvoiceNumber)

	cashier := int64(1)
	sales, total, err = repo.List(ctx, 1, domainRepo.SaleFilter{UserID: &cashier}, pagination.Params{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, sales, 2)

	sales, _, err = repo.List(ctx, 1, domainRepo.SaleFilter{InvoiceNumber: "fv-002"}, pagination.Params{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, sales, 1)

	sales, total, err = repo.List(ctx, 1, domainRepo.SaleFilter{}, pagination.Params{Page: 5, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, sales)
}

func TestMemoryIdempotencyScopeAndExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryIdempotencyRepository().(*memoryIdempotency)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "abc", CompanyID: 1, UserID: 2, ResponseCode: 201, ExpiresAt: now.Add(time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "abc", 1, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	got, err = repo.GetByKey(ctx, "abc", 1, 3)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "abc", CompanyID: 1, UserID: 2, ResponseCode: 500, ExpiresAt: now.Add(time.Hour),
	}))
	got, err = repo.GetByKey(ctx, "abc", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 201, got.ResponseCode, "the first stored answer wins")

	now = now.Add(2 * time.Hour)
	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	got, err = repo.GetByKey(ctx, "abc", 1, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}
