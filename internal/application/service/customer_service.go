package service

import (
	"context"
	"fmt"

	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/gateway"
)

// CustomerService looks up the customers that can be attached to an invoice.
type CustomerService struct {
	gateway gateway.CustomerGateway
}

func NewCustomerService(gw gateway.CustomerGateway) *CustomerService {
	return &CustomerService{gateway: gw}
}

func (s *CustomerService) List(ctx context.Context, companyID int64, term string) ([]entity.Customer, error) {
	all, err := s.gateway.GetClients(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	if term == "" {
		return all, nil
	}
	out := make([]entity.Customer, 0)
	for i := range all {
		if all[i].Matches(term) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *CustomerService) Find(ctx context.Context, companyID, customerID int64) (*entity.Customer, error) {
	all, err := s.gateway.GetClients(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	for i := range all {
		if all[i].ID == customerID {
			c := all[i]
			return &c, nil
		}
	}
	return nil, entity.ErrCustomerNotFound
}
