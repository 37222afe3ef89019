package report

import (
	"strconv"

	"github.com/shopspring/decimal"

	"khata/internal/domain"
	"khata/internal/export"
)

// Table flattens the aging rows for download.
func (r *AgingReport) Table() *export.Table {
	name := "receivables_aging"
	if r.Kind == domain.DocumentPurchase {
		name = "payables_aging"
	}
	t := &export.Table{
		Name:   name,
		Header: []string{"Number", "Party", "Date", "Due Date", "Total", "Balance Due", "Days Overdue", "Bucket"},
	}
	for _, row := range r.Rows {
		t.Append(row.DocumentNumber, row.PartyName, export.Date(row.DocumentDate), export.Date(row.DueDate),
			export.Money(row.TotalAmount), export.Money(row.BalanceDue), strconv.Itoa(row.DaysOverdue), row.Bucket)
	}
	return t
}

// TDSTable flattens a TDS register.
func TDSTable(rows []TDSRow) *export.Table {
	t := &export.Table{
		Name:   "tds_register",
		Header: []string{"Kind", "Number", "Date", "Party", "PAN", "Taxable", "Total", "Section", "Rate", "TDS Amount",
			"Certificate", "Certificate Received"},
	}
	for _, r := range rows {
		received := ""
		if r.CertificateReceivedDate != nil {
			received = export.Date(*r.CertificateReceivedDate)
		}
		t.Append(string(r.Kind), r.DocumentNumber, export.Date(r.DocumentDate), r.PartyName, r.PartyPAN,
			export.Money(r.TaxableAmount), export.Money(r.TotalAmount), r.Section, r.Rate.String(), export.Money(r.TDSAmount),
			string(r.CertificateStatus), received)
	}
	return t
}

// SalesSummaryTable flattens a monthly sales summary.
func SalesSummaryTable(rows []MonthSummary) *export.Table {
	t := &export.Table{
		Name:   "sales_summary",
		Header: []string{"Month", "Invoices", "Taxable", "CGST", "SGST", "IGST", "Total", "Collected"},
	}
	for _, r := range rows {
		t.Append(r.Month, strconv.Itoa(r.InvoiceCount), export.Money(r.TaxableAmount), export.Money(r.CGSTAmount),
			export.Money(r.SGSTAmount), export.Money(r.IGSTAmount), export.Money(r.TotalAmount), export.Money(r.Collected))
	}
	return t
}

// GSTRegisterTable flattens the vendor GST register.
func GSTRegisterTable(rows []GSTRegisterRow) *export.Table {
	t := &export.Table{
		Name: "gst_register",
		Header: []string{"Bill Number", "Bill Date", "Vendor", "GSTIN", "Taxable", "CGST", "SGST", "IGST", "Total",
			"ITC Eligible", "TDS Applicable", "TDS Amount"},
	}
	for _, r := range rows {
		t.Append(r.BillNumber, export.Date(r.BillDate), r.VendorName, r.VendorGSTIN, export.Money(r.TaxableAmount),
			export.Money(r.CGSTAmount), export.Money(r.SGSTAmount), export.Money(r.IGSTAmount), export.Money(r.TotalAmount),
			export.YesNo(r.ITCEligible), export.YesNo(r.TDSApplicable), export.Money(r.TDSAmount))
	}
	return t
}

// PartiesTable lists parties of one kind for the backup bundle.
func PartiesTable(name string, parties []domain.Party) *export.Table {
	t := &export.Table{
		Name: name,
		Header: []string{"ID", "Name", "GSTIN", "PAN", "State Code", "Email", "Phone", "Address", "Opening Balance",
			"TDS Applicable", "TDS Section", "TDS Rate"},
	}
	for i := range parties {
		p := &parties[i]
		t.Append(p.ID.String(), p.Name, p.GSTIN, p.PAN, p.StateCode, p.Email, p.Phone, p.BillingAddress,
			export.Money(p.OpeningBalance), export.YesNo(p.TDSApplicable), p.TDSSection, rateString(p.TDSRate))
	}
	return t
}

// DocumentsTable lists documents for the backup bundle.
func DocumentsTable(name string, docs []domain.Document) *export.Table {
	t := &export.Table{
		Name: name,
		Header: []string{"ID", "Number", "Party", "Date", "Due Date", "Place of Supply", "Inter State", "Status",
			"Subtotal", "Discount", "Taxable", "CGST", "SGST", "IGST", "Total", "Paid", "Balance Due", "TDS Amount"},
	}
	for i := range docs {
		d := &docs[i]
		t.Append(d.ID.String(), d.DocumentNumber, d.PartyName, export.Date(d.DocumentDate), export.Date(d.DueDate),
			d.PlaceOfSupply, export.YesNo(d.IsInterState), string(d.Status), export.Money(d.Subtotal),
			export.Money(d.DiscountAmount), export.Money(d.TaxableAmount), export.Money(d.CGSTAmount),
			export.Money(d.SGSTAmount), export.Money(d.IGSTAmount), export.Money(d.TotalAmount),
			export.Money(d.AmountPaid), export.Money(d.BalanceDue), export.Money(d.TDSAmount))
	}
	return t
}

// PaymentsTable lists payments for the backup bundle.
func PaymentsTable(payments []domain.Payment) *export.Table {
	t := &export.Table{
		Name:   "payments",
		Header: []string{"ID", "Direction", "Party ID", "Document ID", "Date", "Amount", "Mode", "Reference", "Notes"},
	}
	for i := range payments {
		p := &payments[i]
		docID := ""
		if p.DocumentID != nil {
			docID = p.DocumentID.String()
		}
		t.Append(p.ID.String(), string(p.Direction), p.PartyID.String(), docID, export.Date(p.PaymentDate),
			export.Money(p.Amount), string(p.Mode), p.Reference, p.Notes)
	}
	return t
}

func rateString(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
