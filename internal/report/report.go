// Package report projects documents and payments into compliance and
// receivables views. Every function here is read-only.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"khata/internal/domain"
	"khata/internal/timeutil"
)

// Aging buckets, in display order.
const (
	BucketCurrent = "current"
	Bucket1To30   = "1-30"
	Bucket31To60  = "31-60"
	Bucket61To90  = "61-90"
	Bucket90Plus  = "90+"
)

// Buckets lists the aging buckets in display order.
var Buckets = []string{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, Bucket90Plus}

// BucketFor classifies days past due.
func BucketFor(daysOverdue int) string {
	switch {
	case daysOverdue <= 0:
		return BucketCurrent
	case daysOverdue <= 30:
		return Bucket1To30
	case daysOverdue <= 60:
		return Bucket31To60
	case daysOverdue <= 90:
		return Bucket61To90
	}
	return Bucket90Plus
}

// AgingRow is one outstanding document.
type AgingRow struct {
	DocumentID     uuid.UUID       `json:"document_id"`
	DocumentNumber string          `json:"document_number"`
	PartyID        uuid.UUID       `json:"party_id"`
	PartyName      string          `json:"party_name"`
	DocumentDate   time.Time       `json:"document_date"`
	DueDate        time.Time       `json:"due_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	BalanceDue     decimal.Decimal `json:"balance_due"`
	DaysOverdue    int             `json:"days_overdue"`
	Bucket         string          `json:"bucket"`
}

// BucketTotal is the outstanding amount of one bucket.
type BucketTotal struct {
	Bucket string          `json:"bucket"`
	Amount decimal.Decimal `json:"amount"`
	Count  int             `json:"count"`
}

// PartyAging is the outstanding balance of one party split by bucket.
type PartyAging struct {
	PartyID   uuid.UUID                  `json:"party_id"`
	PartyName string                     `json:"party_name"`
	Buckets   map[string]decimal.Decimal `json:"buckets"`
	Total     decimal.Decimal            `json:"total"`
}

// AgingReport is the outstanding receivables or payables on a given day.
type AgingReport struct {
	Kind    domain.DocumentKind `json:"kind"`
	AsOf    time.Time           `json:"as_of"`
	Rows    []AgingRow          `json:"rows"`
	Parties []PartyAging        `json:"parties"`
	Buckets []BucketTotal       `json:"buckets"`
	Total   decimal.Decimal     `json:"total"`
}

// IsOutstanding reports whether doc still has money owed against it.
func IsOutstanding(doc *domain.Document) bool {
	if doc.DeletedAt != nil || doc.Status.IsFrozen() || doc.Status == domain.StatusPaid {
		return false
	}
	return doc.BalanceDue.IsPositive()
}

// Aging buckets the outstanding documents of kind by days past due.
func Aging(kind domain.DocumentKind, docs []domain.Document, today time.Time) *AgingReport {
	rep := &AgingReport{Kind: kind, AsOf: timeutil.DateOf(today), Rows: []AgingRow{}, Parties: []PartyAging{}, Total: decimal.Zero}
	totals := make(map[string]*BucketTotal, len(Buckets))
	partyIdx := map[uuid.UUID]int{}
	for _, b := range Buckets {
		rep.Buckets = append(rep.Buckets, BucketTotal{Bucket: b, Amount: decimal.Zero})
	}
	for i := range rep.Buckets {
		totals[rep.Buckets[i].Bucket] = &rep.Buckets[i]
	}

	for i := range docs {
		doc := &docs[i]
		if doc.Kind != kind || !IsOutstanding(doc) {
			continue
		}
		days := timeutil.DaysBetween(doc.DueDate, today)
		bucket := BucketFor(days)
		if days < 0 {
			days = 0
		}
		rep.Rows = append(rep.Rows, AgingRow{
			DocumentID:     doc.ID,
			DocumentNumber: doc.DocumentNumber,
			PartyID:        doc.PartyID,
			PartyName:      doc.PartyName,
			DocumentDate:   doc.DocumentDate,
			DueDate:        doc.DueDate,
			TotalAmount:    doc.TotalAmount,
			BalanceDue:     doc.BalanceDue,
			DaysOverdue:    days,
			Bucket:         bucket,
		})
		t := totals[bucket]
		t.Amount = t.Amount.Add(doc.BalanceDue)
		t.Count++
		rep.Total = rep.Total.Add(doc.BalanceDue)

		idx, ok := partyIdx[doc.PartyID]
		if !ok {
			idx = len(rep.Parties)
			partyIdx[doc.PartyID] = idx
			pa := PartyAging{PartyID: doc.PartyID, PartyName: doc.PartyName, Buckets: map[string]decimal.Decimal{}, Total: decimal.Zero}
			for _, b := range Buckets {
				pa.Buckets[b] = decimal.Zero
			}
			rep.Parties = append(rep.Parties, pa)
		}
		pa := &rep.Parties[idx]
		pa.Buckets[bucket] = pa.Buckets[bucket].Add(doc.BalanceDue)
		pa.Total = pa.Total.Add(doc.BalanceDue)
	}

	sort.SliceStable(rep.Parties, func(a, b int) bool {
		return rep.Parties[a].Total.GreaterThan(rep.Parties[b].Total)
	})
	sort.SliceStable(rep.Rows, func(a, b int) bool {
		return rep.Rows[a].DueDate.Before(rep.Rows[b].DueDate)
	})
	return rep
}

// TDSRow is one document with tax deducted at source.
type TDSRow struct {
	Kind           domain.DocumentKind `json:"kind"`
	DocumentNumber string              `json:"document_number"`
	DocumentDate   time.Time           `json:"document_date"`
	PartyName      string              `json:"party_name"`
	PartyPAN       string              `json:"party_pan"`
	TaxableAmount  decimal.Decimal     `json:"taxable_amount"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	Section        string              `json:"section"`
	Rate           decimal.Decimal     `json:"rate"`
	TDSAmount      decimal.Decimal     `json:"tds_amount"`

	CertificateStatus       domain.TDSCertificateStatus `json:"certificate_status"`
	CertificateReceivedDate *time.Time                  `json:"certificate_received_date,omitempty"`
}

// TDSRegister lists live documents marked TDS applicable, newest first.
func TDSRegister(docs []domain.Document, parties map[uuid.UUID]domain.Party) []TDSRow {
	rows := []TDSRow{}
	for i := range docs {
		doc := &docs[i]
		if doc.DeletedAt != nil || !doc.TDSApplicable || doc.Status == domain.StatusCancelled {
			continue
		}
		rows = append(rows, TDSRow{
			Kind:           doc.Kind,
			DocumentNumber: doc.DocumentNumber,
			DocumentDate:   doc.DocumentDate,
			PartyName:      doc.PartyName,
			PartyPAN:       parties[doc.PartyID].PAN,
			TaxableAmount:  doc.TaxableAmount,
			TotalAmount:    doc.TotalAmount,
			Section:        doc.TDSSection,
			Rate:           doc.TDSRate,
			TDSAmount:      doc.TDSAmount,

			CertificateStatus:       doc.TDSCertificateStatus,
			CertificateReceivedDate: doc.TDSCertificateReceivedDate,
		})
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].DocumentDate.After(rows[b].DocumentDate)
	})
	return rows
}

// MonthSummary aggregates one calendar month of invoices.
type MonthSummary struct {
	Month         string          `json:"month"`
	InvoiceCount  int             `json:"invoice_count"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Collected     decimal.Decimal `json:"collected"`
}

// SalesSummary groups issued invoices by month, latest month first.
func SalesSummary(docs []domain.Document) []MonthSummary {
	byMonth := map[string]*MonthSummary{}
	for i := range docs {
		doc := &docs[i]
		if doc.Kind != domain.DocumentSales || doc.DeletedAt != nil || doc.Status.IsFrozen() {
			continue
		}
		key := doc.DocumentDate.Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = &MonthSummary{
				Month: key, TaxableAmount: decimal.Zero, CGSTAmount: decimal.Zero, SGSTAmount: decimal.Zero,
				IGSTAmount: decimal.Zero, TotalAmount: decimal.Zero, Collected: decimal.Zero,
			}
			byMonth[key] = m
		}
		m.InvoiceCount++
		m.TaxableAmount = m.TaxableAmount.Add(doc.TaxableAmount)
		m.CGSTAmount = m.CGSTAmount.Add(doc.CGSTAmount)
		m.SGSTAmount = m.SGSTAmount.Add(doc.SGSTAmount)
		m.IGSTAmount = m.IGSTAmount.Add(doc.IGSTAmount)
		m.TotalAmount = m.TotalAmount.Add(doc.TotalAmount)
		m.Collected = m.Collected.Add(doc.AmountPaid)
	}

	out := make([]MonthSummary, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Month > out[b].Month })
	return out
}

// GSTRegisterRow is one vendor bill in the input tax register.
type GSTRegisterRow struct {
	BillNumber    string          `json:"bill_number"`
	BillDate      time.Time       `json:"bill_date"`
	VendorName    string          `json:"vendor_name"`
	VendorGSTIN   string          `json:"vendor_gstin"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ITCEligible   bool            `json:"itc_eligible"`
	TDSApplicable bool            `json:"tds_applicable"`
	TDSAmount     decimal.Decimal `json:"tds_amount"`
}

// GSTRegister lists live vendor bills with their tax split, newest first.
func GSTRegister(docs []domain.Document, parties map[uuid.UUID]domain.Party) []GSTRegisterRow {
	rows := []GSTRegisterRow{}
	for i := range docs {
		doc := &docs[i]
		if doc.Kind != domain.DocumentPurchase || doc.DeletedAt != nil || doc.Status == domain.StatusCancelled {
			continue
		}
		rows = append(rows, GSTRegisterRow{
			BillNumber:    doc.DocumentNumber,
			BillDate:      doc.DocumentDate,
			VendorName:    doc.PartyName,
			VendorGSTIN:   parties[doc.PartyID].GSTIN,
			TaxableAmount: doc.TaxableAmount,
			CGSTAmount:    doc.CGSTAmount,
			SGSTAmount:    doc.SGSTAmount,
			IGSTAmount:    doc.IGSTAmount,
			TotalAmount:   doc.TotalAmount,
			ITCEligible:   doc.ITCEligible,
			TDSApplicable: doc.TDSApplicable,
			TDSAmount:     doc.TDSAmount,
		})
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].BillDate.After(rows[b].BillDate)
	})
	return rows
}
