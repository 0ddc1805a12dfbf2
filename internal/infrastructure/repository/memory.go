package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-register/internal/domain/repository"
	"github.com/sangkips/pos-register/pkg/pagination"
)

// The memory repositories back a register that runs without a database. Their
// contents are lost on restart.

type memorySaleJournal struct {
	mu    sync.RWMutex
	sales []entity.CompletedSale
	now   func() time.Time
}

func NewMemorySaleJournal() domainRepo.SaleJournalRepository {
	return &memorySaleJournal{now: time.Now}
}

func (r *memorySaleJournal) Create(_ context.Context, sale *entity.CompletedSale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = r.now()
	}
	r.mu.Lock()
	r.sales = append(r.sales, *sale)
	r.mu.Unlock()
	return nil
}

func (r *memorySaleJournal) GetByID(_ context.Context, companyID int64, id uuid.UUID) (*entity.CompletedSale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sales {
		if s.ID == id && s.CompanyID == companyID {
			found := s
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memorySaleJournal) List(_ context.Context, companyID int64, filter domainRepo.SaleFilter, params pagination.Params) ([]entity.CompletedSale, int64, error) {
	r.mu.RLock()
	matched := make([]entity.CompletedSale, 0)
	for _, s := range r.sales {
		if s.CompanyID != companyID {
			continue
		}
		if filter.UserID != nil && s.UserID != *filter.UserID {
			continue
		}
		if filter.InvoiceNumber != "" &&
			!strings.Contains(strings.ToLower(s.InvoiceNumber), strings.ToLower(filter.InvoiceNumber)) {
			continue
		}
		matched = append(matched, s)
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	start := params.Offset()
	if start >= len(matched) {
		return []entity.CompletedSale{}, total, nil
	}
	end := start + params.PerPage
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

type idempotencyScope struct {
	key       string
	companyID int64
	userID    int64
}

type memoryIdempotency struct {
	mu   sync.Mutex
	keys map[idempotencyScope]entity.IdempotencyKey
	now  func() time.Time
}

func NewMemoryIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &memoryIdempotency{
		keys: make(map[idempotencyScope]entity.IdempotencyKey),
		now:  time.Now,
	}
}

func (r *memoryIdempotency) GetByKey(_ context.Context, key string, companyID, userID int64) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[idempotencyScope{key, companyID, userID}]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memoryIdempotency) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = r.now()
	}
	scope := idempotencyScope{ikey.Key, ikey.CompanyID, ikey.UserID}
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.keys[scope]; ok && !existing.IsExpired(r.now()) {
		return nil
	}
	r.keys[scope] = *ikey
	return nil
}

func (r *memoryIdempotency) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for k, v := range r.keys {
		if v.IsExpired(now) {
			delete(r.keys, k)
			removed++
		}
	}
	return removed, nil
}
