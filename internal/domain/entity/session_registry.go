package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionRegistry keeps the open invoice sessions of one register in tab order.
type SessionRegistry struct {
	order    []uuid.UUID
	sessions map[uuid.UUID]*InvoiceSession
	activeID uuid.UUID
	counter  int
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*InvoiceSession),
		counter:  1,
	}
}

// NextNumber formats the provisional display number shown until the backend assigns one.
func NextNumber(n int) string {
	return fmt.Sprintf("FV-%03d", n)
}

// Open creates an empty session and makes it active.
func (r *SessionRegistry) Open(now time.Time) *InvoiceSession {
	s := NewInvoiceSession(len(r.order), NextNumber(r.counter), now)
	r.counter++
	r.order = append(r.order, s.ID)
	r.sessions[s.ID] = s
	r.activeID = s.ID
	return s
}

func (r *SessionRegistry) Get(id uuid.UUID) (*InvoiceSession, bool) {
	s, ok := r.sessions[id]
	return s, ok
}

// Active returns the active session, opening one if the registry is empty.
func (r *SessionRegistry) Active(now time.Time) *InvoiceSession {
	if s, ok := r.sessions[r.activeID]; ok {
		return s
	}
	if len(r.order) > 0 {
		r.activeID = r.order[0]
		return r.sessions[r.activeID]
	}
	return r.Open(now)
}

func (r *SessionRegistry) ActiveID() uuid.UUID {
	return r.activeID
}

func (r *SessionRegistry) Activate(id uuid.UUID) error {
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	r.activeID = id
	return nil
}

// Retire removes a session. If it was active, the first remaining session takes over,
// or a fresh one is opened.
func (r *SessionRegistry) Retire(id uuid.UUID, now time.Time) *InvoiceSession {
	if _, ok := r.sessions[id]; !ok {
		return r.Active(now)
	}
	delete(r.sessions, id)
	for i, sid := range r.order {
		if sid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for i, sid := range r.order {
		r.sessions[sid].Index = i
	}
	if r.activeID == id {
		r.activeID = uuid.Nil
	}
	return r.Active(now)
}

// List returns the sessions in tab order.
func (r *SessionRegistry) List() []*InvoiceSession {
	out := make([]*InvoiceSession, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.sessions[id])
	}
	return out
}

func (r *SessionRegistry) Len() int {
	return len(r.order)
}
