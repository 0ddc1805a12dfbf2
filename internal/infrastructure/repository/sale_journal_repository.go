package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-register/internal/domain/repository"
	"github.com/sangkips/pos-register/pkg/pagination"
	"gorm.io/gorm"
)

type saleJournalRepository struct {
	db *gorm.DB
}

// NewSaleJournalRepository creates a gorm-backed sales journal
func NewSaleJournalRepository(db *gorm.DB) domainRepo.SaleJournalRepository {
	return &saleJournalRepository{db: db}
}

func (r *saleJournalRepository) Create(ctx context.Context, sale *entity.CompletedSale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleJournalRepository) GetByID(ctx context.Context, companyID int64, id uuid.UUID) (*entity.CompletedSale, error) {
	var sale entity.CompletedSale
	err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleJournalRepository) List(ctx context.Context, companyID int64, filter domainRepo.SaleFilter, params pagination.Params) ([]entity.CompletedSale, int64, error) {
	var sales []entity.CompletedSale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CompletedSale{}).Scopes(CompanyScope(companyID))
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.InvoiceNumber != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+filter.InvoiceNumber+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&sales).Error

	return sales, total, err
}
