package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/pos-register/internal/domain/entity"
	"github.com/sangkips/pos-register/internal/domain/enum"
	"github.com/sangkips/pos-register/pkg/money"
	"github.com/sangkips/pos-register/pkg/printer"
	"github.com/shopspring/decimal"
)

const receiptDateLayout = "2006-01-02 15:04"

// PrinterService composes receipts from sales and sends them to the thermal printer.
type PrinterService struct {
	printer printer.Printer
	journal *SaleJournalService
	header  entity.ReceiptHeader
	money   *money.Formatter
	width   int
}

func NewPrinterService(p printer.Printer, journal *SaleJournalService, header entity.ReceiptHeader, formatter *money.Formatter, width int) *PrinterService {
	return &PrinterService{
		printer: p,
		journal: journal,
		header:  header,
		money:   formatter,
		width:   width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Type() != "none",
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Type(),
	}
}

// TestPrint sends a sample receipt and returns it so callers without hardware can inspect it.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:    s.header,
		InvoiceNo: "PRUEBA-001",
		Date:      "Prueba",
		Customer:  entity.WalkInCustomerName,
		Items: []entity.ReceiptItem{
			{Name: "Artículo de prueba", Quantity: 1, UnitPrice: decimal.NewFromInt(1000), Total: decimal.NewFromInt(1000)},
			{Name: "Otro artículo", Quantity: 2, UnitPrice: decimal.NewFromInt(500), Total: decimal.NewFromInt(1000)},
		},
		GrossSubtotal: decimal.NewFromInt(2000),
		SubTotal:      decimal.NewFromInt(2000),
		Total:         decimal.NewFromInt(2000),
		Tenders:       []entity.ReceiptTender{{Label: enum.TenderCash.Label(), Amount: decimal.NewFromInt(2000)}},
	}
	if err := s.PrintReceipt(ctx, receipt); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintSale reprints a journaled sale.
func (s *PrinterService) PrintSale(ctx context.Context, companyID int64, saleID uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.journal.Get(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	receipt, err := s.ReceiptForSale(sale)
	if err != nil {
		return nil, err
	}
	if err := s.PrintReceipt(ctx, receipt); err != nil {
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

func (s *PrinterService) PrintReceipt(ctx context.Context, r *entity.Receipt) error {
	return s.printer.Print(ctx, s.FormatReceipt(r))
}

// ReceiptForSession composes the receipt of a session that was just committed.
func (s *PrinterService) ReceiptForSession(sess *entity.InvoiceSession) *entity.Receipt {
	lines := make([]entity.CartLine, len(sess.Lines))
	for i, l := range sess.Lines {
		lines[i] = *l
	}
	r := s.compose(lines, sess.Tenders, sess.Totals)
	r.InvoiceNo = sess.InvoiceNumber
	r.Date = sess.CreatedAt.Format(receiptDateLayout)
	r.Customer = sess.Customer.InvoiceName(entity.WalkInCustomerName)
	r.CustomerTaxID = sess.Customer.TaxID()
	r.DeliveryAddress = sess.Delivery.OneLine()
	r.Change = changeDue(sess.TotalPaid(), sess.Totals.Total)
	return r
}

// ReceiptForSale composes the receipt of a journaled sale.
func (s *PrinterService) ReceiptForSale(sale *entity.CompletedSale) (*entity.Receipt, error) {
	lines, err := sale.Lines()
	if err != nil {
		return nil, fmt.Errorf("decode sale lines: %w", err)
	}
	tenders, err := sale.Tenders()
	if err != nil {
		return nil, fmt.Errorf("decode sale tenders: %w", err)
	}
	delivery, err := sale.Delivery()
	if err != nil {
		return nil, fmt.Errorf("decode sale delivery: %w", err)
	}

	r := s.compose(lines, tenders, entity.Totals{
		GrossSubtotal:         sale.GrossSubtotal,
		DetailDiscount:        sale.DetailDiscount,
		GeneralDiscountAmount: sale.GeneralDiscountAmount,
		Subtotal:              sale.Subtotal,
		TotalVAT:              sale.TotalVAT,
		Total:                 sale.Total,
	})
	r.InvoiceNo = sale.InvoiceNumber
	r.Date = sale.CreatedAt.Format(receiptDateLayout)
	r.Customer = sale.CustomerName
	r.CustomerTaxID = sale.CustomerTaxID
	r.DeliveryAddress = delivery.OneLine()

	paid := decimal.Zero
	for _, t := range tenders {
		paid = paid.Add(t.Amount)
	}
	r.Change = changeDue(paid, sale.Total)
	return r, nil
}

func (s *PrinterService) compose(lines []entity.CartLine, tenders []entity.Tender, totals entity.Totals) *entity.Receipt {
	r := &entity.Receipt{
		Header:          s.header,
		GrossSubtotal:   totals.GrossSubtotal,
		DetailDiscount:  totals.DetailDiscount,
		GeneralDiscount: totals.GeneralDiscountAmount,
		SubTotal:        totals.Subtotal,
		VAT:             totals.TotalVAT,
		Total:           totals.Total,
		TotalFinanced:   decimal.Zero,
	}
	for _, l := range lines {
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      l.Product.Name,
			Quantity:  l.Quantity.Confirmed,
			UnitPrice: l.Product.Price,
			Discount:  l.DiscountValue,
			Total:     l.Total,
		})
	}
	for _, t := range tenders {
		r.Tenders = append(r.Tenders, entity.ReceiptTender{Label: t.Type.Label(), Amount: t.Amount, Months: t.Months})
		if t.Type == enum.TenderFinanced {
			r.TotalFinanced = r.TotalFinanced.Add(t.Amount)
		}
	}
	return r
}

func changeDue(paid, total decimal.Decimal) decimal.Decimal {
	if change := paid.Sub(total); change.IsPositive() {
		return change
	}
	return decimal.Zero
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func (s *PrinterService) FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)
	m := s.money.Number

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("NIT: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Factura:", r.InvoiceNo).
		KeyValue("Fecha:", r.Date)

	if r.Customer != "" {
		doc.KeyValue("Cliente:", r.Customer)
	}
	if r.CustomerTaxID != "" {
		doc.KeyValue("NIT/CC:", r.CustomerTaxID)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, m(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s c/u", m(item.UnitPrice))
		}
		if item.Discount.IsPositive() {
			doc.TextF("  Descuento -%s", m(item.Discount))
		}
	}

	doc.Separator('-').
		KeyValue("Subtotal bruto:", m(r.GrossSubtotal))
	if discount := r.DetailDiscount.Add(r.GeneralDiscount); discount.IsPositive() {
		doc.KeyValue("Descuentos:", "-"+m(discount))
	}
	doc.KeyValue("Subtotal:", m(r.SubTotal))
	if r.VAT.IsPositive() {
		doc.KeyValue("IVA:", m(r.VAT))
	}
	doc.SetBold(true).
		KeyValue("TOTAL "+s.money.Code()+":", m(r.Total)).
		SetBold(false)

	doc.Separator('-')
	for _, t := range r.Tenders {
		label := t.Label
		if t.Months != nil {
			label = fmt.Sprintf("%s (%d meses)", label, *t.Months)
		}
		doc.KeyValue(label+":", m(t.Amount))
	}
	if r.TotalFinanced.IsPositive() {
		doc.KeyValue("Total financiado:", m(r.TotalFinanced))
	}
	if r.Change.IsPositive() {
		doc.KeyValue("Cambio:", m(r.Change))
	}
	if r.DeliveryAddress != "" {
		doc.Separator('-').
			Text("Domicilio:").
			Text(r.DeliveryAddress)
	}

	doc.Separator('-')

	footer := r.Header.Footer
	if footer == "" {
		footer = "Gracias por su compra"
	}
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text(footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
