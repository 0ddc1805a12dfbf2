package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/pos-register/internal/application/service"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/request"
	"github.com/sangkips/pos-register/internal/presentation/http/dto/response"
)

// CatalogHandler serves the cached product catalog and the customer list
type CatalogHandler struct {
	catalog   *service.CatalogService
	customers *service.CustomerService
}

func NewCatalogHandler(catalog *service.CatalogService, customers *service.CustomerService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, customers: customers}
}

func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	products, err := h.catalog.Products(c.Request.Context(), t.CompanyID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

// Search filters the cached catalog across its descriptive fields
func (h *CatalogHandler) Search(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	var req request.CatalogSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	products, err := h.catalog.Search(c.Request.Context(), t.CompanyID, req.Query, req.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Products retrieved successfully", products)
}

func (h *CatalogHandler) RefreshCatalog(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	products, err := h.catalog.Refresh(c.Request.Context(), t.CompanyID)
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Catalog refreshed", products)
}

func (h *CatalogHandler) GetByBarcode(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	product, err := h.catalog.FindByBarcode(c.Request.Context(), t.CompanyID, c.Param("barcode"))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	t, ok := terminal(c)
	if !ok {
		return
	}
	var req request.CustomerSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	customers, err := h.customers.List(c.Request.Context(), t.CompanyID, req.Search)
	if err != nil {
		fail(c, err)
		return
	}
	views := make([]response.CustomerView, len(customers))
	for i := range customers {
		views[i] = response.NewCustomerView(&customers[i])
	}
	response.OK(c, "Customers retrieved successfully", views)
}
