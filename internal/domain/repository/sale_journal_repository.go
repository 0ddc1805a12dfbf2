package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/pkg/pagination"
)

// SaleJournalRepository stores committed sales for reprints and the local sales listing
type SaleJournalRepository interface {
	Create(ctx context.Context, sale *entity.CompletedSale) error
	// GetByID returns nil, nil when the sale does not exist for the company
	GetByID(ctx context.Context, companyID int64, id uuid.UUID) (*entity.CompletedSale, error)
	List(ctx context.Context, companyID int64, filter SaleFilter, params pagination.Params) ([]entity.CompletedSale, int64, error)
}

// SaleFilter narrows the journal listing.
type SaleFilter struct {
	UserID        *int64
	InvoiceNumber string
}
