package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/sangkips/pos-register/internal/domain/gateway"
	"github.com/sangkips/pos-register/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// lineChange describes a quantity edit on one cart line.
type lineChange struct {
	productID int64
	// product is set when the line may have to be created.
	product *entity.Product
	target  func(confirmed int) int
}

// AddProduct adds one unit of a catalog product, creating the line if needed.
func (s *RegisterService) AddProduct(ctx context.Context, t Terminal, id uuid.UUID, productID int64) (*MutationResult, error) {
	p, err := s.catalog.FindByID(ctx, t.CompanyID, productID)
	if err != nil {
		return nil, err
	}
	return s.addOne(ctx, t, id, p)
}

// ScanBarcode adds one unit of the product whose barcode matches exactly.
func (s *RegisterService) ScanBarcode(ctx context.Context, t Terminal, id uuid.UUID, barcode string) (*MutationResult, error) {
	p, err := s.catalog.FindByBarcode(ctx, t.CompanyID, barcode)
	if err != nil {
		return nil, err
	}
	return s.addOne(ctx, t, id, p)
}

// LookupProduct adds one unit of the first product matching a code or name.
func (s *RegisterService) LookupProduct(ctx context.Context, t Terminal, id uuid.UUID, term string) (*MutationResult, error) {
	p, err := s.catalog.FindByCodeOrName(ctx, t.CompanyID, term)
	if err != nil {
		return nil, err
	}
	return s.addOne(ctx, t, id, p)
}

func (s *RegisterService) addOne(ctx context.Context, t Terminal, id uuid.UUID, p *entity.Product) (*MutationResult, error) {
	return s.changeLine(ctx, t, id, lineChange{
		productID: p.ID,
		product:   p,
		target:    func(confirmed int) int { return confirmed + 1 },
	})
}

// SetQuantity moves a line to qty, reserving or releasing the difference.
func (s *RegisterService) SetQuantity(ctx context.Context, t Terminal, id uuid.UUID, productID int64, qty int) (*MutationResult, error) {
	if qty < 0 {
		return nil, entity.ErrNegativeQuantity
	}
	return s.changeLine(ctx, t, id, lineChange{
		productID: productID,
		target:    func(int) int { return qty },
	})
}

// RemoveProduct releases the whole line. It disappears once the release is confirmed.
func (s *RegisterService) RemoveProduct(ctx context.Context, t Terminal, id uuid.UUID, productID int64) (*MutationResult, error) {
	return s.SetQuantity(ctx, t, id, productID, 0)
}

func (s *RegisterService) changeLine(ctx context.Context, t Terminal, id uuid.UUID, ch lineChange) (*MutationResult, error) {
	reg := s.register(t)
	release, err := reg.acquireLine(ctx, lineKey{session: id, product: ch.productID})
	if err != nil {
		return nil, err
	}
	defer release()

	reg.mu.Lock()
	defer reg.mu.Unlock()

	sess, ok := reg.sessions.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	if sess.Status != enum.SessionEditing {
		return nil, entity.ErrSessionBusy
	}

	line := sess.Line(ch.productID)
	isNew := line == nil
	if isNew {
		if ch.product == nil {
			return nil, entity.ErrLineNotFound
		}
		line = entity.NewCartLine(*ch.product)
	}

	target := ch.target(line.Quantity.Confirmed)
	if target < 0 {
		return nil, entity.ErrNegativeQuantity
	}

	var notices []entity.Notice
	if !(isNew && target == 0) {
		notices, err = s.reconcile(ctx, t, reg, sess, line, isNew, target)
	}
	s.totals.Recompute(sess)
	return &MutationResult{Session: sess.Clone(), Notices: notices}, err
}

// reconcile brings a line to target. It is called with reg.mu held and releases the
// lock only around the reservation call.
func (s *RegisterService) reconcile(ctx context.Context, t Terminal, reg *register, sess *entity.InvoiceSession, line *entity.CartLine, isNew bool, target int) ([]entity.Notice, error) {
	if !line.Product.ManageStock {
		line.Quantity.Settle(target)
		placeLine(sess, line, isNew)
		return nil, nil
	}

	delta := line.Quantity.Request(target)
	switch {
	case delta > 0:
		return s.reserve(ctx, t, reg, sess, line, isNew, delta)
	case delta < 0:
		return s.release(ctx, t, reg, sess, line, -delta)
	}
	return nil, nil
}

func placeLine(sess *entity.InvoiceSession, line *entity.CartLine, isNew bool) {
	if line.Quantity.Confirmed == 0 {
		sess.RemoveLine(line.ProductID())
		return
	}
	if isNew {
		sess.InsertLine(line)
	}
}

func reservationRequest(t Terminal, sess *entity.InvoiceSession, action enum.ReservationAction, productID int64, qty int) gateway.ReservationRequest {
	return gateway.ReservationRequest{
		Action:    action,
		ProductID: productID,
		Quantity:  qty,
		CompanyID: t.CompanyID,
		UserID:    t.UserID,
		ScopeID:   sess.ScopeID,
	}
}

// roundTrip performs one reservation call outside the register lock. The session is
// marked busy for the duration so checkout and clear wait for it.
func (s *RegisterService) roundTrip(ctx context.Context, reg *register, sess *entity.InvoiceSession, req gateway.ReservationRequest) (*gateway.ReservationResult, error) {
	sess.BeginReservation()
	reg.mu.Unlock()
	res, err := s.reservations.ValidateAndReserve(ctx, req)
	reg.mu.Lock()
	sess.EndReservation()
	if err == nil && res == nil {
		err = fmt.Errorf("empty reservation response")
	}
	return res, err
}

func (s *RegisterService) reserve(ctx context.Context, t Terminal, reg *register, sess *entity.InvoiceSession, line *entity.CartLine, isNew bool, delta int) ([]entity.Notice, error) {
	productID := line.ProductID()
	req := reservationRequest(t, sess, enum.ReservationReserve, productID, delta)
	res, err := s.roundTrip(ctx, reg, sess, req)
	if err != nil {
		line.Quantity.Rollback()
		s.metrics.Reservation(string(enum.ReservationReserve), metrics.OutcomeTransport)
		s.logger.Warn("stock reservation failed",
			zap.Int64("product_id", productID),
			zap.Int("quantity", delta),
			zap.String("scope_id", sess.ScopeID.String()),
			zap.Error(err),
		)
		notice := entity.NewNotice(enum.NoticeError, "Error de stock",
			"No se pudo validar el stock de %s", line.Product.Name)
		return []entity.Notice{notice}, fmt.Errorf("%w: %v", entity.ErrReservationTransport, err)
	}

	if res.Success {
		line.Quantity.Confirm()
		placeLine(sess, line, isNew)
		s.metrics.Reservation(string(enum.ReservationReserve), metrics.OutcomeSuccess)
		return nil, nil
	}

	if isNew && res.StockAvailable > 0 && res.StockAvailable >= delta {
		return s.partialAccept(ctx, t, reg, sess, line, delta, res)
	}

	line.Quantity.Rollback()
	s.metrics.Reservation(string(enum.ReservationReserve), metrics.OutcomeRejected)
	s.logger.Info("stock reservation rejected",
		zap.Int64("product_id", productID),
		zap.Int("quantity", delta),
		zap.Int("available", res.StockAvailable),
		zap.String("reason", res.Reason),
	)
	return []entity.Notice{stockNotice(line, res)}, &entity.StockError{
		ProductID: productID,
		Requested: delta,
		Available: res.StockAvailable,
		Reason:    res.Reason,
	}
}

// partialAccept retries a rejected new line once. Callers only reach it when the server
// reports at least the requested quantity available, so the retry asks for the same amount.
func (s *RegisterService) partialAccept(ctx context.Context, t Terminal, reg *register, sess *entity.InvoiceSession, line *entity.CartLine, qty int, first *gateway.ReservationResult) ([]entity.Notice, error) {
	line.Quantity.Request(line.Quantity.Confirmed + qty)

	req := reservationRequest(t, sess, enum.ReservationReserve, line.ProductID(), qty)
	res, err := s.roundTrip(ctx, reg, sess, req)
	if err == nil && res.Success {
		line.Quantity.Confirm()
		placeLine(sess, line, true)
		s.metrics.Reservation(string(enum.ReservationReserve), metrics.OutcomePartial)
		return []entity.Notice{stockNotice(line, first)}, nil
	}

	line.Quantity.Rollback()
	s.metrics.Reservation(string(enum.ReservationReserve), metrics.OutcomeRejected)
	available := first.StockAvailable
	if err == nil {
		available = res.StockAvailable
	}
	return []entity.Notice{stockNotice(line, first)}, &entity.StockError{
		ProductID: line.ProductID(),
		Requested: qty,
		Available: available,
		Reason:    first.Reason,
	}
}

func (s *RegisterService) release(ctx context.Context, t Terminal, reg *register, sess *entity.InvoiceSession, line *entity.CartLine, qty int) ([]entity.Notice, error) {
	productID := line.ProductID()
	req := reservationRequest(t, sess, enum.ReservationRelease, productID, qty)
	if _, err := s.roundTrip(ctx, reg, sess, req); err != nil {
		line.Quantity.Rollback()
		s.metrics.Reservation(string(enum.ReservationRelease), metrics.OutcomeTransport)
		s.logger.Warn("stock release failed",
			zap.Int64("product_id", productID),
			zap.Int("quantity", qty),
			zap.Error(err),
		)
		notice := entity.NewNotice(enum.NoticeError, "Error de stock",
			"No se pudo liberar el stock de %s", line.Product.Name)
		return []entity.Notice{notice}, fmt.Errorf("%w: %v", entity.ErrReservationTransport, err)
	}

	line.Quantity.Confirm()
	placeLine(sess, line, false)
	s.metrics.Reservation(string(enum.ReservationRelease), metrics.OutcomeSuccess)
	return nil, nil
}

// cancelAll releases every reservation held by the session's scope and rotates the scope.
// Called with reg.mu held.
func (s *RegisterService) cancelAll(ctx context.Context, t Terminal, reg *register, sess *entity.InvoiceSession) ([]entity.Notice, error) {
	sess.Status = enum.SessionClearing
	scope := sess.ScopeID
	reg.mu.Unlock()
	err := s.reservations.CancelAll(ctx, scope, t.CompanyID)
	reg.mu.Lock()
	sess.Status = enum.SessionEditing

	if err != nil {
		s.metrics.Reservation(string(enum.ReservationCancel), metrics.OutcomeTransport)
		s.logger.Warn("cancel all reservations failed", zap.String("scope_id", scope.String()), zap.Error(err))
		notice := entity.NewNotice(enum.NoticeError, "Error",
			"No se pudieron liberar las reservas de la factura %s", sess.InvoiceNumber)
		return []entity.Notice{notice}, fmt.Errorf("%w: %v", entity.ErrReservationTransport, err)
	}
	sess.RotateScope()
	s.metrics.Reservation(string(enum.ReservationCancel), metrics.OutcomeSuccess)
	return nil, nil
}

func stockNotice(line *entity.CartLine, res *gateway.ReservationResult) entity.Notice {
	if res.StockAvailable > 0 {
		return entity.NewNotice(enum.NoticeWarn, "Stock insuficiente",
			"Solo hay %d unidades más disponibles de %s", res.StockAvailable, line.Product.Name)
	}
	if res.Reason != "" {
		return entity.NewNotice(enum.NoticeWarn, "Stock insuficiente", "%s", res.Reason)
	}
	return entity.NewNotice(enum.NoticeWarn, "Stock insuficiente", "%s no tiene stock disponible", line.Product.Name)
}
