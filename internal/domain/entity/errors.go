package entity

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound      = errors.New("invoice session not found")
	ErrLineNotFound         = errors.New("cart line not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrNegativeQuantity     = errors.New("quantity cannot be negative")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrReservationTransport = errors.New("stock reservation service unavailable")
	ErrEmptyCart            = errors.New("cart has no items")
	ErrPaymentMismatch      = errors.New("payments do not match invoice total")
	ErrSessionBusy          = errors.New("invoice session is busy")
	ErrCheckoutRejected     = errors.New("invoice rejected by backend")
	ErrCheckoutTransport    = errors.New("invoice service unavailable")
	ErrLastTender           = errors.New("at least one payment method is required")
	ErrTenderNotFound       = errors.New("payment method not found")
	ErrInvalidTender        = errors.New("invalid payment method")
)

// StockError is a business rejection from the reservation service.
type StockError struct {
	ProductID int64
	Requested int
	Available int
	Reason    string
}

func (e *StockError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("insufficient stock for product %d: %s", e.ProductID, e.Reason)
	}
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d", e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

// CheckoutRejectedError carries the backend's non-zero result code and message.
type CheckoutRejectedError struct {
	Code    int
	Message string
}

func (e *CheckoutRejectedError) Error() string {
	return fmt.Sprintf("invoice rejected (code %d): %s", e.Code, e.Message)
}

func (e *CheckoutRejectedError) Unwrap() error {
	return ErrCheckoutRejected
}
