package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/gateway"
	"go.uber.org/zap"
)

type catalogSnapshot struct {
	products []entity.Product
	byID     map[int64]int
	loadedAt time.Time
}

// CatalogService keeps a per-company snapshot of the store catalog and answers the
// register's lookups from it.
type CatalogService struct {
	gateway gateway.CatalogGateway
	ttl     time.Duration
	logger  *zap.Logger
	now     func() time.Time

	mu        sync.RWMutex
	snapshots map[int64]*catalogSnapshot
}

func NewCatalogService(gw gateway.CatalogGateway, ttl time.Duration, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		gateway:   gw,
		ttl:       ttl,
		logger:    logger,
		now:       time.Now,
		snapshots: make(map[int64]*catalogSnapshot),
	}
}

func (s *CatalogService) fresh(companyID int64) (*catalogSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[companyID]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(snap.loadedAt) > s.ttl {
		return snap, false
	}
	return snap, true
}

func (s *CatalogService) snapshot(ctx context.Context, companyID int64) (*catalogSnapshot, error) {
	if snap, ok := s.fresh(companyID); ok {
		return snap, nil
	}
	snap, err := s.load(ctx, companyID)
	if err != nil {
		// Serve the stale copy rather than block the register.
		if stale, _ := s.fresh(companyID); stale != nil {
			s.logger.Warn("catalog refresh failed, serving stale snapshot",
				zap.Int64("company_id", companyID), zap.Error(err))
			return stale, nil
		}
		return nil, err
	}
	return snap, nil
}

func (s *CatalogService) load(ctx context.Context, companyID int64) (*catalogSnapshot, error) {
	products, err := s.gateway.GetProductsStore(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	snap := &catalogSnapshot{
		products: products,
		byID:     make(map[int64]int, len(products)),
		loadedAt: s.now(),
	}
	for i, p := range products {
		snap.byID[p.ID] = i
	}

	s.mu.Lock()
	s.snapshots[companyID] = snap
	s.mu.Unlock()

	s.logger.Debug("catalog loaded", zap.Int64("company_id", companyID), zap.Int("products", len(products)))
	return snap, nil
}

// Products returns the whole catalog for the company.
func (s *CatalogService) Products(ctx context.Context, companyID int64) ([]entity.Product, error) {
	snap, err := s.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return snap.products, nil
}

// Refresh drops the cached snapshot and reloads it.
func (s *CatalogService) Refresh(ctx context.Context, companyID int64) ([]entity.Product, error) {
	snap, err := s.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return snap.products, nil
}

func (s *CatalogService) FindByID(ctx context.Context, companyID, productID int64) (*entity.Product, error) {
	snap, err := s.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	i, ok := snap.byID[productID]
	if !ok {
		return nil, entity.ErrProductNotFound
	}
	p := snap.products[i]
	return &p, nil
}

// FindByBarcode matches the scanner input exactly.
func (s *CatalogService) FindByBarcode(ctx context.Context, companyID int64, barcode string) (*entity.Product, error) {
	return s.first(ctx, companyID, func(p entity.Product) bool { return p.MatchesBarcode(barcode) })
}

// FindByCodeOrName returns the first product whose code equals the term or whose name contains it.
func (s *CatalogService) FindByCodeOrName(ctx context.Context, companyID int64, term string) (*entity.Product, error) {
	return s.first(ctx, companyID, func(p entity.Product) bool { return p.MatchesCodeOrName(term) })
}

func (s *CatalogService) first(ctx context.Context, companyID int64, match func(entity.Product) bool) (*entity.Product, error) {
	snap, err := s.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, p := range snap.products {
		if match(p) {
			found := p
			return &found, nil
		}
	}
	return nil, entity.ErrProductNotFound
}

// Search filters the catalog across every descriptive field.
func (s *CatalogService) Search(ctx context.Context, companyID int64, term string, limit int) ([]entity.Product, error) {
	snap, err := s.snapshot(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0)
	for _, p := range snap.products {
		if !p.MatchesSearch(term) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
