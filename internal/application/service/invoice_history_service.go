package service

import (
	"context"
	"time"

	"github.com/sangkips/pos-register/internal/domain/gateway"
	"github.com/sangkips/pos-register/pkg/apperror"
	"go.uber.org/zap"
)

// InvoiceHistoryService reads and cancels invoices already stored by the backend.
type InvoiceHistoryService struct {
	invoices gateway.InvoiceGateway
	logger   *zap.Logger
	now      func() time.Time
}

func NewInvoiceHistoryService(invoices gateway.InvoiceGateway, logger *zap.Logger) *InvoiceHistoryService {
	return &InvoiceHistoryService{invoices: invoices, logger: logger, now: time.Now}
}

// List defaults to the current day when no range is given.
func (s *InvoiceHistoryService) List(ctx context.Context, companyID int64, start, end *time.Time) ([]gateway.InvoiceRecord, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.Add(24*time.Hour - time.Millisecond)
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	if to.Before(from) {
		return nil, apperror.NewBadRequestError("end date must not be before start date")
	}
	return s.invoices.ListInvoices(ctx, from, to, companyID)
}

func (s *InvoiceHistoryService) Get(ctx context.Context, companyID, id int64) (*gateway.InvoiceRecord, error) {
	rec, err := s.invoices.GetInvoice(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return rec, nil
}

func (s *InvoiceHistoryService) Cancel(ctx context.Context, companyID, id int64) error {
	res, err := s.invoices.CancelInvoice(ctx, id, companyID)
	if err != nil {
		return err
	}
	if !res.Committed() {
		s.logger.Info("invoice cancellation rejected",
			zap.Int64("invoice_id", id), zap.Int("code", res.Code), zap.String("message", res.Message))
		return apperror.NewUnprocessableError(res.Message)
	}
	s.logger.Info("invoice cancelled", zap.Int64("company_id", companyID), zap.Int64("invoice_id", id))
	return nil
}
