package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-register/internal/application/service"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/response"
)

const dateLayout = "2006-01-02"

// InvoiceHandler serves the backend's invoice history
type InvoiceHandler struct {
	invoices *service.InvoiceHistoryService
}

func NewInvoiceHandler(invoices *service.InvoiceHistoryService) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices}
}

// parseBound accepts a calendar date or an RFC 3339 timestamp. A bare end date covers the whole day.
func parseBound(v string, end bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateLayout, v, time.Local); err == nil {
		if end {
			t = t.Add(24*time.Hour - time.Millisecond)
		}
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *InvoiceHandler) List(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	var req request.InvoiceRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	start, err := parseBound(req.Start, false)
	if err != nil {
		response.BadRequest(c, "Invalid start date")
		return
	}
	end, err := parseBound(req.End, true)
	if err != nil {
		response.BadRequest(c, "Invalid end date")
		return
	}

	invoices, err := h.invoices.List(c.Request.Context(), t.CompanyID, start, end)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Invoices retrieved successfully", invoices)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	invoice, err := h.invoices.Get(c.Request.Context(), t.CompanyID, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

func (h *InvoiceHandler) Cancel(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	if err := h.invoices.Cancel(c.Request.Context(), t.CompanyID, id); err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Invoice cancelled", nil)
}
