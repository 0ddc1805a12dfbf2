package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/gateway"
	"github.com/sangkips/pos-register/internal/infrastructure/repository"
	"github.com/sangkips/pos-register/pkg/money"
	"github.com/sangkips/pos-register/pkg/printer"
	"go.uber.org/zap"
)

var errBackendDown = errors.New("connection refused")

var testTerminal = Terminal{CompanyID: 10, UserID: 20}

func testCatalog() []entity.Product {
	return []entity.Product{
		{ID: 1, Code: "A1", Name: "Cuaderno", Price: d("1000"), ManageStock: true},
		{ID: 2, Code: "B2", Name: "Lápiz", Price: d("500"), ManageStock: true},
		{ID: 3, Code: "S3", Name: "Servicio de empaque", Price: d("2000"), ManageStock: false},
		{ID: 4, Code: "P4", Barcode: "7701234", Name: "Borrador", Price: d("200"), ManageStock: true, HasDiscount: true, DiscountPercent: d("5")},
	}
}

func accept(gateway.ReservationRequest) (*gateway.ReservationResult, error) {
	return &gateway.ReservationResult{Success: true}, nil
}

type fakeStock struct {
	mu          sync.Mutex
	calls       []gateway.ReservationRequest
	cancels     []uuid.UUID
	respond     func(gateway.ReservationRequest) (*gateway.ReservationResult, error)
	cancelErr   error
	inFlight    map[int64]int
	maxInFlight int
}

func newFakeStock() *fakeStock {
	return &fakeStock{respond: accept, inFlight: make(map[int64]int)}
}

func (f *fakeStock) ValidateAndReserve(_ context.Context, req gateway.ReservationRequest) (*gateway.ReservationResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.inFlight[req.ProductID]++
	if f.inFlight[req.ProductID] > f.maxInFlight {
		f.maxInFlight = f.inFlight[req.ProductID]
	}
	respond := f.respond
	f.mu.Unlock()

	res, err := respond(req)

	f.mu.Lock()
	f.inFlight[req.ProductID]--
	f.mu.Unlock()
	return res, err
}

func (f *fakeStock) CancelAll(_ context.Context, scopeID uuid.UUID, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels = append(f.cancels, scopeID)
	return f.cancelErr
}

func (f *fakeStock) Calls() []gateway.ReservationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]gateway.ReservationRequest(nil), f.calls...)
}

type fakeCatalog struct {
	mu       sync.Mutex
	products []entity.Product
	err      error
	loads    int
}

func (f *fakeCatalog) GetProductsStore(context.Context, int64) ([]entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return append([]entity.Product(nil), f.products...), nil
}

type fakeCustomers struct {
	customers []entity.Customer
}

func (f *fakeCustomers) GetClients(context.Context, int64) ([]entity.Customer, error) {
	return f.customers, nil
}

type fakeInvoices struct {
	mu       sync.Mutex
	payloads []*gateway.InvoicePayload
	create   func(*gateway.InvoicePayload) (*gateway.InvoiceResult, error)
	records  []gateway.InvoiceRecord
	cancel   *gateway.InvoiceResult
	listArgs [2]time.Time
}

func (f *fakeInvoices) CreateInvoice(_ context.Context, p *gateway.InvoicePayload) (*gateway.InvoiceResult, error) {
	f.mu.Lock()
	f.payloads = append(f.payloads, p)
	create := f.create
	f.mu.Unlock()
	if create == nil {
		return &gateway.InvoiceResult{Code: 0, InvoiceNumber: "FE-1001"}, nil
	}
	return create(p)
}

func (f *fakeInvoices) ListInvoices(_ context.Context, start, end time.Time, _ int64) ([]gateway.InvoiceRecord, error) {
	f.listArgs = [2]time.Time{start, end}
	return f.records, nil
}

func (f *fakeInvoices) GetInvoice(_ context.Context, id, _ int64) (*gateway.InvoiceRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, nil
}

func (f *fakeInvoices) CancelInvoice(context.Context, int64, int64) (*gateway.InvoiceResult, error) {
	if f.cancel == nil {
		return &gateway.InvoiceResult{}, nil
	}
	return f.cancel, nil
}

// recordingPrinter keeps every job it was sent.
type recordingPrinter struct {
	mu   sync.Mutex
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *recordingPrinter) IsConnected(context.Context) bool { return p.err == nil }

func (p *recordingPrinter) Type() string { return "recording" }

var _ printer.Printer = (*recordingPrinter)(nil)

type harness struct {
	stock     *fakeStock
	catalog   *fakeCatalog
	invoices  *fakeInvoices
	printer   *recordingPrinter
	registers *RegisterService
	journal   *SaleJournalService
	printing  *PrinterService
	checkout  *CheckoutService
}

func newHarness() *harness {
	logger := zap.NewNop()
	h := &harness{
		stock:    newFakeStock(),
		catalog:  &fakeCatalog{products: testCatalog()},
		invoices: &fakeInvoices{},
		printer:  &recordingPrinter{},
	}
	customers := &fakeCustomers{customers: []entity.Customer{
		{ID: 55, FirstName: "Ana", LastName: "Torres", Document: "1020304050"},
	}}

	catalog := NewCatalogService(h.catalog, time.Minute, logger)
	h.registers = NewRegisterService(h.stock, catalog, NewCustomerService(customers), NewTotalsEngine(d("19")), nil, logger)
	h.journal = NewSaleJournalService(repository.NewMemorySaleJournal())

	formatter, err := money.NewFormatter("COP", "en", 0)
	if err != nil {
		panic(err)
	}
	h.printing = NewPrinterService(h.printer, h.journal, entity.ReceiptHeader{StoreName: "Tienda"}, formatter, 42)
	h.checkout = NewCheckoutService(h.registers, h.invoices, h.journal, h.printing, PayloadOptions{WarehouseID: 3}, false, nil, logger)
	return h
}

func (h *harness) activeID() uuid.UUID {
	return h.registers.ListSessions(testTerminal).ActiveID
}
