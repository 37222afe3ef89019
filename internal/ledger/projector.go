// Package ledger builds running-balance party statements from documents and
// payments.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"khata/internal/domain"
	"khata/internal/timeutil"
)

// Build merges the documents and payments of party into a chronological
// statement. Draft, cancelled and deleted documents and deleted payments are
// skipped, as are records belonging to another party or the opposite
// direction.
//
// For customers a document is a debit and a payment a credit; for vendors the
// sides are mirrored. The running balance is always what is owed: receivable
// for customers, payable for vendors.
func Build(party *domain.Party, docs []domain.Document, payments []domain.Payment) *domain.LedgerStatement {
	vendor := party.Kind == domain.PartyVendor
	wantKind := domain.DocumentSales
	wantDirection := domain.PaymentReceived
	if vendor {
		wantKind = domain.DocumentPurchase
		wantDirection = domain.PaymentMade
	}

	numbers := make(map[uuid.UUID]string, len(docs))
	for i := range docs {
		numbers[docs[i].ID] = docs[i].DocumentNumber
	}

	entries := make([]domain.LedgerEntry, 0, len(docs)+len(payments))
	for i := range docs {
		doc := &docs[i]
		if doc.PartyID != party.ID || doc.Kind != wantKind || doc.DeletedAt != nil || doc.Status.IsFrozen() {
			continue
		}
		e := domain.LedgerEntry{
			Date:        timeutil.DateOf(doc.DocumentDate),
			Type:        domain.LedgerEntryDocument,
			SourceID:    doc.ID,
			Description: documentLabel(doc),
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if vendor {
			e.Credit = doc.TotalAmount
		} else {
			e.Debit = doc.TotalAmount
		}
		entries = append(entries, e)
	}

	for i := range payments {
		p := &payments[i]
		if p.PartyID != party.ID || p.Direction != wantDirection || p.DeletedAt != nil {
			continue
		}
		e := domain.LedgerEntry{
			Date:        timeutil.DateOf(p.PaymentDate),
			Type:        domain.LedgerEntryPayment,
			SourceID:    p.ID,
			Description: paymentLabel(p, numbers),
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if vendor {
			e.Debit = p.Amount
		} else {
			e.Credit = p.Amount
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		if !entries[a].Date.Equal(entries[b].Date) {
			return entries[a].Date.Before(entries[b].Date)
		}
		return entries[a].Type == domain.LedgerEntryDocument && entries[b].Type == domain.LedgerEntryPayment
	})

	balance := party.OpeningBalance
	for i := range entries {
		if vendor {
			balance = balance.Add(entries[i].Credit).Sub(entries[i].Debit)
		} else {
			balance = balance.Add(entries[i].Debit).Sub(entries[i].Credit)
		}
		entries[i].Balance = balance
	}

	return &domain.LedgerStatement{
		Party:          party,
		OpeningBalance: party.OpeningBalance,
		Entries:        entries,
		ClosingBalance: balance,
	}
}

// Window restricts a statement to entries dated within [from, to]. Entries
// before from fold into the opening balance. Zero bounds are open.
func Window(stmt *domain.LedgerStatement, from, to time.Time) *domain.LedgerStatement {
	out := &domain.LedgerStatement{
		Party:          stmt.Party,
		OpeningBalance: stmt.OpeningBalance,
		Entries:        []domain.LedgerEntry{},
		ClosingBalance: stmt.OpeningBalance,
	}
	for _, e := range stmt.Entries {
		if !from.IsZero() && e.Date.Before(timeutil.DateOf(from)) {
			out.OpeningBalance = e.Balance
			out.ClosingBalance = e.Balance
			continue
		}
		if !to.IsZero() && e.Date.After(timeutil.DateOf(to)) {
			break
		}
		out.Entries = append(out.Entries, e)
		out.ClosingBalance = e.Balance
	}
	return out
}

func documentLabel(doc *domain.Document) string {
	if doc.Kind == domain.DocumentPurchase {
		return "Bill " + doc.DocumentNumber
	}
	return "Invoice " + doc.DocumentNumber
}

func paymentLabel(p *domain.Payment, numbers map[uuid.UUID]string) string {
	label := "Payment"
	if p.DocumentID != nil {
		if n, ok := numbers[*p.DocumentID]; ok && n != "" {
			label = fmt.Sprintf("%s (%s)", label, n)
		}
	}
	if p.Reference != "" {
		label += " - " + p.Reference
	}
	return label
}
