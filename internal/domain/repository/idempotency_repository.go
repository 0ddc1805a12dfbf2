package repository

import (
	"context"
	"time"

	"github.com/sangkips/pos-register/internal/domain/entity"
)

// IdempotencyRepository stores checkout answers per cashier so retries can be replayed.
type IdempotencyRepository interface {
	// GetByKey returns nil, nil when the cashier never used the key.
	GetByKey(ctx context.Context, key string, companyID, userID int64) (*entity.IdempotencyKey, error)
	// Create keeps the first answer stored under a key; later writes are ignored.
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired purges keys that expired before now and reports how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
