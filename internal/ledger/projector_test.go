package ledger_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/ledger"
)

func day(n int) time.Time {
	return time.Date(2025, 4, n, 0, 0, 0, 0, time.UTC)
}

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func balances(stmt *domain.LedgerStatement) []string {
	out := make([]string, len(stmt.Entries))
	for i, e := range stmt.Entries {
		out[i] = e.Balance.String()
	}
	return out
}

func TestBuild_CustomerSameDayDocumentFirst(t *testing.T) {
	party := &domain.Party{ID: uuid.New(), Kind: domain.PartyCustomer, OpeningBalance: decimal.Zero}
	inv := domain.Document{
		ID: uuid.New(), PartyID: party.ID, Kind: domain.DocumentSales, DocumentNumber: "INV/2025-26/001",
		Status: domain.StatusPartiallyPaid, DocumentDate: day(5), TotalAmount: amt("1000"),
	}
	pay := domain.Payment{
		ID: uuid.New(), PartyID: party.ID, Direction: domain.PaymentReceived, DocumentID: &inv.ID,
		PaymentDate: day(5).Add(2 * time.Hour), Amount: amt("400"), Reference: "UTR9",
	}

	stmt := ledger.Build(party, []domain.Document{inv}, []domain.Payment{pay})

	require.Len(t, stmt.Entries, 2)
	assert.Equal(t, domain.LedgerEntryDocument, stmt.Entries[0].Type)
	assert.Equal(t, "Invoice INV/2025-26/001", stmt.Entries[0].Description)
	assert.Equal(t, "Payment (INV/2025-26/001) - UTR9", stmt.Entries[1].Description)
	assert.Equal(t, []string{"1000", "600"}, balances(stmt))
	assert.Equal(t, "600", stmt.ClosingBalance.String())
}

func TestBuild_CustomerFilters(t *testing.T) {
	party := &domain.Party{ID: uuid.New(), Kind: domain.PartyCustomer, OpeningBalance: amt("250")}
	other := uuid.New()
	now := time.Now()

	docs := []domain.Document{
		{ID: uuid.New(), PartyID: party.ID, Kind: domain.DocumentSales, Status: domain.StatusSent, DocumentDate: day(3), TotalAmount: amt("100")},
		{ID: uuid.New(), PartyID: party.ID, Kind: domain.DocumentSales, Status: domain.StatusDraft, DocumentDate: day(1), TotalAmount: amt("999")},
		{ID: uuid.New(), PartyID: party.ID, Kind: domain.DocumentSales, Status: domain.StatusCancelled, DocumentDate: day(1), TotalAmount: amt("999")},
		{ID: uuid.New(), PartyID: party.ID, Kind: domain.DocumentSales, Status: domain.StatusSent, DocumentDate: day(1), TotalAmount: amt("999"), DeletedAt: &now},
		{ID: uuid.New(), PartyID: other, Kind: domain.DocumentSales, Status: domain.StatusSent, DocumentDate: day(1), TotalAmount: amt("999")},
	}
	payments := []domain.Payment{
		{ID: uuid.New(), PartyID: party.ID, Direction: domain.PaymentReceived, PaymentDate: day(2), Amount: amt("50")},
		{ID: uuid.New(), PartyID: party.ID, Direction: domain.PaymentReceived, PaymentDate: day(2), Amount: amt("999"), DeletedAt: &now},
		{ID: uuid.New(), PartyID: party.ID, Direction: domain.PaymentMade, PaymentDate: day(2), Amount: amt("999")},
	}

	stmt := ledger.Build(party, docs, payments)

	require.Len(t, stmt.Entries, 2)
	assert.Equal(t, "Payment", stmt.Entries[0].Description)
	assert.Equal(t, []string{"200", "300"}, balances(stmt))
	assert.Equal(t, "250", stmt.OpeningBalance.String())
	assert.Equal(t, "300", stmt.ClosingBalance.String())
}

func TestBuild_VendorMirrorsSides(t *testing.T) {
	party := &domain.Party{ID: uuid.New(), Kind: domain.PartyVendor, OpeningBalance: amt("100")}
	bill := domain.Document{
		ID: uuid.New(), PartyID: party.ID, Kind: domain.DocumentPurchase, DocumentNumber: "V-77",
		Status: domain.StatusPending, DocumentDate: day(10), TotalAmount: amt("5000"),
	}
	pay := domain.Payment{
		ID: uuid.New(), PartyID: party.ID, Direction: domain.PaymentMade,
		PaymentDate: day(12), Amount: amt("3000"),
	}

	stmt := ledger.Build(party, []domain.Document{bill}, []domain.Payment{pay})

	require.Len(t, stmt.Entries, 2)
	assert.Equal(t, "Bill V-77", stmt.Entries[0].Description)
	assert.Equal(t, "5000", stmt.Entries[0].Credit.String())
	assert.True(t, stmt.Entries[0].Debit.IsZero())
	assert.Equal(t, "3000", stmt.Entries[1].Debit.String())
	assert.Equal(t, []string{"5100", "2100"}, balances(stmt))
}

func TestBuild_Empty(t *testing.T) {
	party := &domain.Party{ID: uuid.New(), Kind: domain.PartyCustomer, OpeningBalance: amt("42")}
	stmt := ledger.Build(party, nil, nil)
	assert.Empty(t, stmt.Entries)
	assert.Equal(t, "42", stmt.ClosingBalance.String())
}

func TestWindow(t *testing.T) {
	party := &domain.Party{ID: uuid.New(), Kind: domain.PartyCustomer, OpeningBalance: decimal.Zero}
	var docs []domain.Document
	for i, n := range []int{1, 10, 20} {
		docs = append(docs, domain.Document{
			ID: uuid.New(), PartyID: party.ID, Kind: domain.DocumentSales, Status: domain.StatusSent,
			DocumentDate: day(n), TotalAmount: decimal.NewFromInt(int64(100 * (i + 1))),
		})
	}
	full := ledger.Build(party, docs, nil)

	w := ledger.Window(full, day(5), day(15))
	require.Len(t, w.Entries, 1)
	assert.Equal(t, "100", w.OpeningBalance.String())
	assert.Equal(t, "300", w.ClosingBalance.String())

	open := ledger.Window(full, time.Time{}, time.Time{})
	assert.Len(t, open.Entries, 3)
	assert.Equal(t, "600", open.ClosingBalance.String())
}
