package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/application/service"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/response"
)

// RegisterHandler handles the invoice sessions of the cashier's register
type RegisterHandler struct {
	registers *service.RegisterService
	checkout  *service.CheckoutService
}

func NewRegisterHandler(registers *service.RegisterService, checkout *service.CheckoutService) *RegisterHandler {
	return &RegisterHandler{registers: registers, checkout: checkout}
}

// session resolves the terminal and the :id parameter.
func session(c *gin.Context) (service.Terminal, uuid.UUID, bool) {
	t, ok := terminal(c)
	if !ok {
		return t, uuid.Nil, false
	}
	id, ok := uuidParam(c, "id")
	return t, id, ok
}

// answer writes a mutation result; rejected operations still carry the session.
func answer(c *gin.Context, message string, res *service.MutationResult, err error) {
	if err != nil {
		if res != nil {
			failWith(c, err, response.NewSessionView(res.Session), res.Notices)
			return
		}
		fail(c, err)
		return
	}
	response.SuccessWithNotices(c, http.StatusOK, message, response.NewSessionView(res.Session), res.Notices)
}

func (h *RegisterHandler) ListSessions(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	response.OK(c, "Invoices retrieved successfully", response.NewSessionListView(h.registers.ListSessions(t)))
}

func (h *RegisterHandler) OpenSession(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	response.Created(c, "Invoice opened", response.NewSessionView(h.registers.OpenSession(t)))
}

func (h *RegisterHandler) GetSession(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	sess, err := h.registers.GetSession(t, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", response.NewSessionView(sess))
}

func (h *RegisterHandler) ActivateSession(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	sess, err := h.registers.ActivateSession(t, id)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Invoice activated", response.NewSessionView(sess))
}

// ClearSession releases every reservation and empties the invoice
func (h *RegisterHandler) ClearSession(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	res, err := h.registers.ClearSession(c.Request.Context(), t, id)
	answer(c, "Invoice cleared", res, err)
}

// DiscardSession clears the invoice and closes it. The response is the session now active.
func (h *RegisterHandler) DiscardSession(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	res, err := h.registers.DiscardSession(c.Request.Context(), t, id)
	answer(c, "Invoice closed", res, err)
}

func (h *RegisterHandler) AddItem(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	res, err := h.registers.AddProduct(c.Request.Context(), t, id, req.ProductID)
	answer(c, "Product added", res, err)
}

func (h *RegisterHandler) Scan(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	res, err := h.registers.ScanBarcode(c.Request.Context(), t, id, req.Barcode)
	answer(c, "Product added", res, err)
}

func (h *RegisterHandler) Lookup(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	var req request.LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	res, err := h.registers.LookupProduct(c.Request.Context(), t, id, req.Term)
	answer(c, "Product added", res, err)
}

func (h *RegisterHandler) SetQuantity(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	productID, ok := int64Param(c, "productId")
	if !ok {
		return
	}
	var req request.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	res, err := h.registers.SetQuantity(c.Request.Context(), t, id, productID, *req.Quantity)
	answer(c, "Quantity updated", res, err)
}

func (h *RegisterHandler) RemoveItem(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	productID, ok := int64Param(c, "productId")
	if !ok {
		return
	}
	res, err := h.registers.RemoveProduct(c.Request.Context(), t, id, productID)
	answer(c, "Product removed", res, err)
}

func (h *RegisterHandler) SetLineDiscount(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	productID, ok := int64Param(c, "productId")
	if !ok {
		return
	}
	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	res, err := h.registers.SetLineDiscount(t, id, productID, req.Percent)
	answer(c, "Discount updated", res, err)
}

func (h *RegisterHandler) SetGeneralDiscount(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	res, err := h.registers.SetGeneralDiscount(t, id, req.Percent)
	answer(c, "Discount updated", res, err)
}

func (h *RegisterHandler) SetCustomer(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	res, err := h.registers.SetCustomer(c.Request.Context(), t, id, req.CustomerID)
	answer(c, "Customer updated", res, err)
}

func (h *RegisterHandler) SetDelivery(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	var req request.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	res, err := h.registers.SetDelivery(t, id, req.ToEntity())
	answer(c, "Delivery updated", res, err)
}

func (h *RegisterHandler) RemoveDelivery(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	res, err := h.registers.SetDelivery(t, id, nil)
	answer(c, "Delivery removed", res, err)
}

func (h *RegisterHandler) AddTender(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	res, err := h.registers.AddTender(t, id)
	answer(c, "Payment method added", res, err)
}

func (h *RegisterHandler) UpdateTender(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	var req request.TenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}
	res, err := h.registers.UpdateTender(t, id, index, req.ToEntity())
	answer(c, "Payment method updated", res, err)
}

func (h *RegisterHandler) RemoveTender(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	res, err := h.registers.RemoveTender(t, id, index)
	answer(c, "Payment method removed", res, err)
}

func (h *RegisterHandler) FillExactAmount(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	res, err := h.registers.FillExactAmount(t, id)
	answer(c, "Payment filled", res, err)
}

// Checkout submits the invoice to the backend
func (h *RegisterHandler) Checkout(c *gin.Context) {
	t, id, ok := session(c)
	if !ok {
		return
	}
	res, err := h.checkout.Checkout(c.Request.Context(), t, id)
	if err != nil {
		if res != nil {
			failWith(c, err, response.NewCheckoutView(res), res.Notices)
			return
		}
		fail(c, err)
		return
	}
	response.SuccessWithNotices(c, http.StatusCreated, "Invoice created successfully", response.NewCheckoutView(res), res.Notices)
}
