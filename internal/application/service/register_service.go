package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/sangkips/pos-register/internal/domain/gateway"
	"github.com/sangkips/pos-register/internal/infrastructure/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Terminal identifies one register: a company and the cashier signed in to it.
type Terminal struct {
	CompanyID int64
	UserID    int64
}

type lineKey struct {
	session uuid.UUID
	product int64
}

// lineGate is a one-slot semaphore plus the number of callers holding or waiting on it.
type lineGate struct {
	slot  chan struct{}
	users int
}

// register holds the open sessions of one terminal. mu guards every session in it;
// a line gate serializes reservation calls on one (session, product) pair.
type register struct {
	mu       sync.Mutex
	sessions *entity.SessionRegistry
	gates    map[lineKey]*lineGate
}

// acquireLine waits for the line gate in arrival order, or until ctx is done.
// The gate is dropped once its last user leaves. Caller must not hold mu.
func (r *register) acquireLine(ctx context.Context, key lineKey) (func(), error) {
	r.mu.Lock()
	gate, ok := r.gates[key]
	if !ok {
		gate = &lineGate{slot: make(chan struct{}, 1)}
		r.gates[key] = gate
	}
	gate.users++
	r.mu.Unlock()

	select {
	case gate.slot <- struct{}{}:
		return func() {
			<-gate.slot
			r.leave(key, gate)
		}, nil
	case <-ctx.Done():
		r.leave(key, gate)
		return nil, ctx.Err()
	}
}

func (r *register) leave(key lineKey, gate *lineGate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	gate.users--
	if gate.users == 0 {
		delete(r.gates, key)
	}
}

// MutationResult is the session state after an operation plus the notices it raised.
type MutationResult struct {
	Session *entity.InvoiceSession
	Notices []entity.Notice
}

// SessionList is every open session of a terminal in tab order.
type SessionList struct {
	ActiveID uuid.UUID
	Sessions []*entity.InvoiceSession
}

// RegisterService owns the in-memory invoice sessions of every terminal and runs the
// stock reservation protocol for their cart lines.
type RegisterService struct {
	reservations gateway.StockReservationGateway
	catalog      *CatalogService
	customers    *CustomerService
	totals       *TotalsEngine
	metrics      *metrics.Recorder
	logger       *zap.Logger
	now          func() time.Time

	mu        sync.Mutex
	registers map[Terminal]*register
}

func NewRegisterService(
	reservations gateway.StockReservationGateway,
	catalog *CatalogService,
	customers *CustomerService,
	totals *TotalsEngine,
	rec *metrics.Recorder,
	logger *zap.Logger,
) *RegisterService {
	return &RegisterService{
		reservations: reservations,
		catalog:      catalog,
		customers:    customers,
		totals:       totals,
		metrics:      rec,
		logger:       logger,
		now:          time.Now,
		registers:    make(map[Terminal]*register),
	}
}

func (s *RegisterService) register(t Terminal) *register {
	s.mu.Lock()
	defer s.mu.Unlock()
	reg, ok := s.registers[t]
	if !ok {
		reg = &register{
			sessions: entity.NewSessionRegistry(),
			gates:    make(map[lineKey]*lineGate),
		}
		reg.sessions.Open(s.now())
		s.metrics.SessionOpened()
		s.registers[t] = reg
	}
	return reg
}

func (s *RegisterService) ListSessions(t Terminal) *SessionList {
	reg := s.register(t)
	reg.mu.Lock()
	defer reg.mu.Unlock()

	active := reg.sessions.Active(s.now())
	list := &SessionList{ActiveID: active.ID}
	for _, sess := range reg.sessions.List() {
		list.Sessions = append(list.Sessions, sess.Clone())
	}
	return list
}

// OpenSession starts a new empty cart and makes it active.
func (s *RegisterService) OpenSession(t Terminal) *entity.InvoiceSession {
	reg := s.register(t)
	reg.mu.Lock()
	defer reg.mu.Unlock()

	sess := reg.sessions.Open(s.now())
	s.metrics.SessionOpened()
	return sess.Clone()
}

func (s *RegisterService) GetSession(t Terminal, id uuid.UUID) (*entity.InvoiceSession, error) {
	reg := s.register(t)
	reg.mu.Lock()
	defer reg.mu.Unlock()

	sess, ok := reg.sessions.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	return sess.Clone(), nil
}

func (s *RegisterService) ActivateSession(t Terminal, id uuid.UUID) (*entity.InvoiceSession, error) {
	reg := s.register(t)
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if err := reg.sessions.Activate(id); err != nil {
		return nil, err
	}
	sess, _ := reg.sessions.Get(id)
	return sess.Clone(), nil
}

// ClearSession releases every reservation of the session and empties it. The session
// keeps its place and gets a new reservation scope.
func (s *RegisterService) ClearSession(ctx context.Context, t Terminal, id uuid.UUID) (*MutationResult, error) {
	reg := s.register(t)
	reg.mu.Lock()
	defer reg.mu.Unlock()

	sess, err := idleSession(reg, id)
	if err != nil {
		return nil, err
	}
	if notices, err := s.cancelAll(ctx, t, reg, sess); err != nil {
		return &MutationResult{Session: sess.Clone(), Notices: notices}, err
	}
	sess.Reset()
	s.totals.Recompute(sess)
	return &MutationResult{Session: sess.Clone()}, nil
}

// DiscardSession clears the session and closes it. The returned session is the one
// that became active.
func (s *RegisterService) DiscardSession(ctx context.Context, t Terminal, id uuid.UUID) (*MutationResult, error) {
	reg := s.register(t)
	reg.mu.Lock()
	defer reg.mu.Unlock()

	sess, err := idleSession(reg, id)
	if err != nil {
		return nil, err
	}
	if notices, err := s.cancelAll(ctx, t, reg, sess); err != nil {
		return &MutationResult{Session: sess.Clone(), Notices: notices}, err
	}
	active := s.retire(reg, id)
	return &MutationResult{Session: active.Clone()}, nil
}

// retire removes a session from its register. Caller holds reg.mu.
func (s *RegisterService) retire(reg *register, id uuid.UUID) *entity.InvoiceSession {
	before := reg.sessions.Len()
	active := reg.sessions.Retire(id, s.now())
	s.metrics.SessionClosed()
	if reg.sessions.Len() == before {
		s.metrics.SessionOpened()
	}
	return active
}

func idleSession(reg *register, id uuid.UUID) (*entity.InvoiceSession, error) {
	sess, ok := reg.sessions.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	if sess.Busy() {
		return nil, entity.ErrSessionBusy
	}
	return sess, nil
}

// mutate runs a local edit on an editable session and recomputes its totals.
func (s *RegisterService) mutate(t Terminal, id uuid.UUID, fn func(*entity.InvoiceSession) error) (*MutationResult, error) {
	reg := s.register(t)
	reg.mu.Lock()
	defer reg.mu.Unlock()

	sess, ok := reg.sessions.Get(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	if sess.Status != enum.SessionEditing {
		return nil, entity.ErrSessionBusy
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	s.totals.Recompute(sess)
	return &MutationResult{Session: sess.Clone()}, nil
}

func (s *RegisterService) SetLineDiscount(t Terminal, id uuid.UUID, productID int64, pct decimal.Decimal) (*MutationResult, error) {
	return s.mutate(t, id, func(sess *entity.InvoiceSession) error {
		line := sess.Line(productID)
		if line == nil {
			return entity.ErrLineNotFound
		}
		line.SetDiscount(pct)
		return nil
	})
}

func (s *RegisterService) SetGeneralDiscount(t Terminal, id uuid.UUID, pct decimal.Decimal) (*MutationResult, error) {
	return s.mutate(t, id, func(sess *entity.InvoiceSession) error {
		sess.SetGeneralDiscount(pct)
		return nil
	})
}

// SetCustomer attaches a customer to the session. A nil id returns it to the walk-in customer.
func (s *RegisterService) SetCustomer(ctx context.Context, t Terminal, id uuid.UUID, customerID *int64) (*MutationResult, error) {
	var customer *entity.Customer
	if customerID != nil {
		c, err := s.customers.Find(ctx, t.CompanyID, *customerID)
		if err != nil {
			return nil, err
		}
		customer = c
	}
	return s.mutate(t, id, func(sess *entity.InvoiceSession) error {
		sess.Customer = customer
		return nil
	})
}

// SetDelivery sets or, with nil, removes the delivery block.
func (s *RegisterService) SetDelivery(t Terminal, id uuid.UUID, delivery *entity.DeliveryInfo) (*MutationResult, error) {
	return s.mutate(t, id, func(sess *entity.InvoiceSession) error {
		sess.Delivery = delivery
		return nil
	})
}

func (s *RegisterService) AddTender(t Terminal, id uuid.UUID) (*MutationResult, error) {
	return s.mutate(t, id, func(sess *entity.InvoiceSession) error {
		sess.AddTender()
		return nil
	})
}

func (s *RegisterService) UpdateTender(t Terminal, id uuid.UUID, index int, tender entity.Tender) (*MutationResult, error) {
	return s.mutate(t, id, func(sess *entity.InvoiceSession) error {
		return sess.UpdateTender(index, tender)
	})
}

func (s *RegisterService) RemoveTender(t Terminal, id uuid.UUID, index int) (*MutationResult, error) {
	return s.mutate(t, id, func(sess *entity.InvoiceSession) error {
		return sess.RemoveTender(index)
	})
}

func (s *RegisterService) FillExactAmount(t Terminal, id uuid.UUID) (*MutationResult, error) {
	return s.mutate(t, id, func(sess *entity.InvoiceSession) error {
		sess.FillExactAmount()
		return nil
	})
}
