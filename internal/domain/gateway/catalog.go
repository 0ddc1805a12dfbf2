package gateway

import (
	"context"

	"github.com/sangkips/pos-register/internal/domain/entity"
)

// CatalogGateway reads the sellable products of a company.
type CatalogGateway interface {
	GetProductsStore(ctx context.Context, companyID int64) ([]entity.Product, error)
}

// CustomerGateway reads the customers of a company.
type CustomerGateway interface {
	GetClients(ctx context.Context, companyID int64) ([]entity.Customer, error)
}
