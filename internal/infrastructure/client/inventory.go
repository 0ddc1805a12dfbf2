package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sangkips/pos-register/internal/domain/entity"
)

const (
	epGetProductsStore = "Inventory/GetProductsStore"
	epGetClients       = "Master/GetClients"
)

func (c *Client) GetProductsStore(ctx context.Context, companyID int64) ([]entity.Product, error) {
	path := fmt.Sprintf("%s/%d", epGetProductsStore, companyID)
	env, err := c.call(ctx, http.MethodGet, epGetProductsStore, path, nil)
	if err != nil {
		return nil, err
	}

	products := []entity.Product{}
	if err := decodeData(epGetProductsStore, env, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetClients(ctx context.Context, companyID int64) ([]entity.Customer, error) {
	path := fmt.Sprintf("%s/%d", epGetClients, companyID)
	env, err := c.call(ctx, http.MethodGet, epGetClients, path, nil)
	if err != nil {
		return nil, err
	}

	customers := []entity.Customer{}
	if err := decodeData(epGetClients, env, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
