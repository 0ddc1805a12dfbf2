package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/repository"
	"github.com/sangkips/pos-register/pkg/apperror"
	"github.com/sangkips/pos-register/pkg/pagination"
)

// SaleJournalService keeps the local record of committed sales.
type SaleJournalService struct {
	repo repository.SaleJournalRepository
}

func NewSaleJournalService(repo repository.SaleJournalRepository) *SaleJournalService {
	return &SaleJournalService{repo: repo}
}

// Record stores a committed session.
func (s *SaleJournalService) Record(ctx context.Context, t Terminal, sess *entity.InvoiceSession) (*entity.CompletedSale, error) {
	sale, err := entity.NewCompletedSale(t.CompanyID, t.UserID, sess)
	if err != nil {
		return nil, fmt.Errorf("snapshot sale: %w", err)
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("store sale: %w", err)
	}
	return sale, nil
}

func (s *SaleJournalService) Get(ctx context.Context, companyID int64, id uuid.UUID) (*entity.CompletedSale, error) {
	sale, err := s.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

func (s *SaleJournalService) List(ctx context.Context, companyID int64, filter repository.SaleFilter, params pagination.Params) (*pagination.Page[entity.CompletedSale], error) {
	params.Normalize()
	sales, total, err := s.repo.List(ctx, companyID, filter, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPage(sales, params, total), nil
}
