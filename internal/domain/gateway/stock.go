package gateway

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/enum"
)

// ReservationRequest is one call to the inventory service's reserve/release endpoint.
type ReservationRequest struct {
	Action    enum.ReservationAction
	ProductID int64
	Quantity  int
	CompanyID int64
	UserID    int64
	ScopeID   uuid.UUID
}

// ReservationResult is the business answer to a reservation request.
type ReservationResult struct {
	Success        bool
	StockAvailable int
	Reason         string
}

// StockReservationGateway holds and returns stock on behalf of an open invoice.
// An error means the call itself failed; a rejection comes back as Success == false.
type StockReservationGateway interface {
	ValidateAndReserve(ctx context.Context, req ReservationRequest) (*ReservationResult, error)
	CancelAll(ctx context.Context, scopeID uuid.UUID, companyID int64) error
}
