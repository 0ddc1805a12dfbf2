package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/gateway"
	"go.uber.org/zap"
)

const (
	epValidateAndReserve = "pos/ValidateAndReserve"
	epCancelInvoiceAll   = "pos/CancelInvoiceAll"
	epCreateInvoice      = "pos/CreateInvoice"
	epGetInvoicesAll     = "pos/GetInvoicesAll"
	epGetInvoiceDetail   = "pos/GetInvoiceDetail"
	epCancelInvoice      = "pos/CancelInvoice"

	isoMillis = "2006-01-02T15:04:05.000Z"
)

type reservationRequest struct {
	Action        string `json:"action"`
	ProductID     int64  `json:"productId"`
	Quantity      int    `json:"quantity"`
	CompaniaID    int64  `json:"companiaId"`
	UserID        int64  `json:"userId"`
	FacturaTempID string `json:"facturaTempId"`
}

type reservationResponse struct {
	Success         flag   `json:"success"`
	StockDisponible int    `json:"stockDisponible"`
	Motivo          string `json:"motivo"`
}

// flag accepts 0/1 as well as JSON booleans.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "1", "true":
		*f = true
	case "0", "false", "null":
		*f = false
	default:
		return fmt.Errorf("invalid success flag %s", data)
	}
	return nil
}

func (c *Client) ValidateAndReserve(ctx context.Context, req gateway.ReservationRequest) (*gateway.ReservationResult, error) {
	body := reservationRequest{
		Action:        req.Action.String(),
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		CompaniaID:    req.CompanyID,
		UserID:        req.UserID,
		FacturaTempID: req.ScopeID.String(),
	}
	env, err := c.call(ctx, http.MethodPost, epValidateAndReserve, epValidateAndReserve, body)
	if err != nil {
		return nil, err
	}

	var data reservationResponse
	if err := decodeData(epValidateAndReserve, env, &data); err != nil {
		return nil, err
	}
	return &gateway.ReservationResult{
		Success:        bool(data.Success),
		StockAvailable: data.StockDisponible,
		Reason:         data.Motivo,
	}, nil
}

func (c *Client) CancelAll(ctx context.Context, scopeID uuid.UUID, companyID int64) error {
	path := fmt.Sprintf("%s/%s/%d", epCancelInvoiceAll, scopeID, companyID)
	_, err := c.call(ctx, http.MethodGet, epCancelInvoiceAll, path, nil)
	return err
}

type createdInvoice struct {
	InvoiceNumber entity.FlexString `json:"invoice_Number"`
}

func (c *Client) CreateInvoice(ctx context.Context, payload *gateway.InvoicePayload) (*gateway.InvoiceResult, error) {
	env, err := c.call(ctx, http.MethodPost, epCreateInvoice, epCreateInvoice, payload)
	if err != nil {
		return nil, err
	}

	result := &gateway.InvoiceResult{Code: env.Code, Message: env.Message}
	if !result.Committed() {
		return result, nil
	}

	// The invoice exists once code is 0, so a data shape we cannot read only loses the number.
	number, err := createdInvoiceNumber(env.Data)
	if err != nil {
		c.logger.Warn("committed invoice returned unreadable data",
			zap.String("endpoint", epCreateInvoice), zap.Error(err))
	}
	result.InvoiceNumber = number
	return result, nil
}

// createdInvoiceNumber reads the number from a one-row array or a bare object.
func createdInvoiceNumber(data json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return "", nil
	}
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var rows []createdInvoice
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return "", err
		}
		if len(rows) == 0 {
			return "", nil
		}
		return rows[0].InvoiceNumber.String(), nil
	}
	var row createdInvoice
	if err := json.Unmarshal(trimmed, &row); err != nil {
		return "", err
	}
	return row.InvoiceNumber.String(), nil
}

func (c *Client) ListInvoices(ctx context.Context, start, end time.Time, companyID int64) ([]gateway.InvoiceRecord, error) {
	path := fmt.Sprintf("%s/%s/%s/%d", epGetInvoicesAll,
		url.PathEscape(start.UTC().Format(isoMillis)),
		url.PathEscape(end.UTC().Format(isoMillis)),
		companyID,
	)
	env, err := c.call(ctx, http.MethodGet, epGetInvoicesAll, path, nil)
	if err != nil {
		return nil, err
	}

	records := []gateway.InvoiceRecord{}
	if err := decodeData(epGetInvoicesAll, env, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetInvoice returns nil, nil when the backend has no such invoice.
func (c *Client) GetInvoice(ctx context.Context, id, companyID int64) (*gateway.InvoiceRecord, error) {
	path := fmt.Sprintf("%s/%d/%d", epGetInvoiceDetail, id, companyID)
	env, err := c.call(ctx, http.MethodGet, epGetInvoiceDetail, path, nil)
	if err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}

	// The detail endpoint answers with a one-row array on some backend versions.
	if bytes.HasPrefix(bytes.TrimSpace(env.Data), []byte("[")) {
		var rows []gateway.InvoiceRecord
		if err := json.Unmarshal(env.Data, &rows); err != nil {
			return nil, fmt.Errorf("error unmarshalling %s data: %w", epGetInvoiceDetail, err)
		}
		if len(rows) == 0 {
			return nil, nil
		}
		return &rows[0], nil
	}

	var record gateway.InvoiceRecord
	if err := decodeData(epGetInvoiceDetail, env, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) CancelInvoice(ctx context.Context, id, companyID int64) (*gateway.InvoiceResult, error) {
	path := fmt.Sprintf("%s/%d/%d", epCancelInvoice, id, companyID)
	env, err := c.call(ctx, http.MethodGet, epCancelInvoice, path, nil)
	if err != nil {
		return nil, err
	}
	return &gateway.InvoiceResult{Code: env.Code, Message: env.Message}, nil
}
