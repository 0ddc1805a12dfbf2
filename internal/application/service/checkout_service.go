package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/sangkips/pos-register/internal/domain/gateway"
	"github.com/sangkips/pos-register/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// CheckoutResult is the outcome of submitting one invoice session.
type CheckoutResult struct {
	Outcome       enum.CheckoutOutcome
	InvoiceNumber string
	// Sale is the session as it was committed, or the still-open session on rejection.
	Sale    *entity.InvoiceSession
	SaleID  *uuid.UUID
	Receipt *entity.Receipt
	Active  *entity.InvoiceSession
	Notices []entity.Notice
}

// CheckoutService validates a session, submits it to the invoice service and retires it
// once the backend accepts it.
type CheckoutService struct {
	registers *RegisterService
	invoices  gateway.InvoiceGateway
	journal   *SaleJournalService
	printer   *PrinterService
	options   PayloadOptions
	autoPrint bool
	metrics   *metrics.Recorder
	logger    *zap.Logger
}

func NewCheckoutService(
	registers *RegisterService,
	invoices gateway.InvoiceGateway,
	journal *SaleJournalService,
	printer *PrinterService,
	options PayloadOptions,
	autoPrint bool,
	rec *metrics.Recorder,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		registers: registers,
		invoices:  invoices,
		journal:   journal,
		printer:   printer,
		options:   options,
		autoPrint: autoPrint,
		metrics:   rec,
		logger:    logger,
	}
}

// Checkout submits the session. Validation failures never reach the backend.
func (s *CheckoutService) Checkout(ctx context.Context, t Terminal, id uuid.UUID) (*CheckoutResult, error) {
	reg := s.registers.register(t)
	reg.mu.Lock()

	sess, err := idleSession(reg, id)
	if err != nil {
		reg.mu.Unlock()
		return nil, err
	}
	s.registers.totals.Recompute(sess)
	if len(sess.Lines) == 0 {
		reg.mu.Unlock()
		return nil, entity.ErrEmptyCart
	}
	if !sess.PaymentsBalanced() {
		diff := sess.Difference()
		reg.mu.Unlock()
		return nil, fmt.Errorf("%w: difference %s", entity.ErrPaymentMismatch, diff.String())
	}
	payload, err := BuildInvoicePayload(t, sess, s.options)
	if err != nil {
		reg.mu.Unlock()
		return nil, err
	}
	sess.Status = enum.SessionSubmitting
	reg.mu.Unlock()

	res, callErr := s.invoices.CreateInvoice(ctx, payload)
	if callErr == nil && res == nil {
		callErr = errors.New("empty invoice response")
	}

	reg.mu.Lock()
	if callErr != nil || !res.Committed() {
		sess.Status = enum.SessionEditing
		snapshot := sess.Clone()
		reg.mu.Unlock()
		return s.rejected(snapshot, res, callErr)
	}

	sess.Status = enum.SessionCommitted
	numbered := res.InvoiceNumber != ""
	if numbered {
		sess.InvoiceNumber = res.InvoiceNumber
	}
	committed := sess.Clone()
	active := s.registers.retire(reg, id).Clone()
	reg.mu.Unlock()

	s.metrics.Checkout(metrics.OutcomeSuccess)
	s.logger.Info("invoice committed",
		zap.Int64("company_id", t.CompanyID),
		zap.Int64("user_id", t.UserID),
		zap.String("invoice_number", committed.InvoiceNumber),
		zap.String("total", committed.Totals.Total.String()),
	)

	result := &CheckoutResult{
		Outcome:       enum.CheckoutCommitted,
		InvoiceNumber: committed.InvoiceNumber,
		Sale:          committed,
		Active:        active,
		Notices: []entity.Notice{entity.NewNotice(enum.NoticeSuccess, "Factura creada",
			"Factura %s registrada", committed.InvoiceNumber)},
	}
	if !numbered {
		s.logger.Warn("committed invoice has no backend number",
			zap.String("session_id", committed.ID.String()),
			zap.String("provisional_number", committed.InvoiceNumber),
		)
		result.Notices = append(result.Notices, entity.NewNotice(enum.NoticeWarn, "Número de factura",
			"La factura se registró pero el servidor no devolvió su número; se usa %s", committed.InvoiceNumber))
	}
	s.afterCommit(ctx, t, result)
	return result, nil
}

func (s *CheckoutService) rejected(snapshot *entity.InvoiceSession, res *gateway.InvoiceResult, callErr error) (*CheckoutResult, error) {
	result := &CheckoutResult{Outcome: enum.CheckoutRejected, Sale: snapshot, Active: snapshot}

	if callErr != nil {
		s.metrics.Checkout(metrics.OutcomeTransport)
		s.logger.Warn("invoice submission failed",
			zap.String("session_id", snapshot.ID.String()), zap.Error(callErr))
		result.Notices = []entity.Notice{entity.NewNotice(enum.NoticeError, "Error de conexión",
			"No se pudo registrar la factura, intente de nuevo")}
		return result, fmt.Errorf("%w: %v", entity.ErrCheckoutTransport, callErr)
	}

	s.metrics.Checkout(metrics.OutcomeRejected)
	s.logger.Info("invoice rejected",
		zap.String("session_id", snapshot.ID.String()),
		zap.Int("code", res.Code),
		zap.String("message", res.Message),
	)
	result.Notices = []entity.Notice{entity.NewNotice(enum.NoticeError, "Factura rechazada", "%s", res.Message)}
	return result, &entity.CheckoutRejectedError{Code: res.Code, Message: res.Message}
}

// afterCommit journals the sale and prints it when configured. Neither can undo the commit,
// so failures only produce notices.
func (s *CheckoutService) afterCommit(ctx context.Context, t Terminal, result *CheckoutResult) {
	sale, err := s.journal.Record(ctx, t, result.Sale)
	if err != nil {
		s.logger.Error("failed to journal committed sale",
			zap.String("invoice_number", result.InvoiceNumber), zap.Error(err))
		result.Notices = append(result.Notices, entity.NewNotice(enum.NoticeWarn, "Diario de ventas",
			"La factura %s no se guardó localmente", result.InvoiceNumber))
	} else if sale != nil {
		result.SaleID = &sale.ID
	}

	receipt := s.printer.ReceiptForSession(result.Sale)
	result.Receipt = receipt
	if !s.autoPrint {
		return
	}
	if err := s.printer.PrintReceipt(ctx, receipt); err != nil {
		s.logger.Warn("receipt print failed", zap.String("invoice_number", result.InvoiceNumber), zap.Error(err))
		result.Notices = append(result.Notices, entity.PrintFailedNotice(result.InvoiceNumber))
	}
}

// IsValidationError reports checkout errors caused by the session state rather than the backend.
func IsValidationError(err error) bool {
	return errors.Is(err, entity.ErrEmptyCart) || errors.Is(err, entity.ErrPaymentMismatch)
}
