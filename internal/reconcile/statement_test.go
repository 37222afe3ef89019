package reconcile_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/reconcile"
)

func TestParseStatementCSV(t *testing.T) {
	csv := "\ufeffTxn Date,Particulars,Chq/Ref No,Withdrawal Amt,Deposit Amt,Closing Balance\n" +
		"02/05/2025,NEFT ACME INV/2024-25/001,UTR123,,\"59,000.00\",\"1,59,000.00\"\n" +
		"03-May-2025,Rent,,25000,,134000\n" +
		",,,,,\n"

	rows, err := reconcile.ParseStatementCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), rows[0].TxnDate)
	assert.Equal(t, "NEFT ACME INV/2024-25/001", rows[0].Description)
	assert.Equal(t, "UTR123", rows[0].ReferenceNumber)
	assert.Equal(t, "59000", rows[0].Credit.String())
	assert.True(t, rows[0].Debit.IsZero())
	assert.True(t, rows[0].Balance.Valid)
	assert.Equal(t, "159000", rows[0].Balance.Decimal.String())

	assert.Equal(t, time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC), rows[1].TxnDate)
	assert.Equal(t, "25000", rows[1].Debit.String())
}

func TestParseStatementCSV_Rejects(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"empty", ""},
		{"no_date_column", "Description,Credit\nx,1\n"},
		{"no_amount_column", "Date,Description\n2025-01-01,x\n"},
		{"bad_date", "Date,Description,Credit\n31/31/2025,x,1\n"},
		{"bad_amount", "Date,Description,Credit\n2025-01-01,x,abc\n"},
		{"zero_amounts", "Date,Description,Debit,Credit\n2025-01-01,x,0,0\n"},
		{"negative_credit", "Date,Description,Credit\n2025-01-01,x,-5\n"},
		{"missing_description", "Date,Description,Credit\n2025-01-01,,5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reconcile.ParseStatementCSV(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestImportHash(t *testing.T) {
	date := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)

	a := reconcile.ImportHash(date, "NEFT", decimal.Zero, decimal.RequireFromString("59000.00"))
	b := reconcile.ImportHash(date, "NEFT", decimal.Zero, decimal.RequireFromString("59000"))
	assert.Equal(t, a, b, "trailing zeros do not change the hash")
	assert.Len(t, a, 64)

	debit := reconcile.ImportHash(date, "NEFT", decimal.RequireFromString("59000"), decimal.Zero)
	assert.Equal(t, a, debit, "amount is whichever side is non-zero")

	other := reconcile.ImportHash(date.AddDate(0, 0, 1), "NEFT", decimal.Zero, decimal.RequireFromString("59000"))
	assert.NotEqual(t, a, other)
}

func TestStatementRow_Transaction(t *testing.T) {
	tenantID := uuid.New()
	row := reconcile.StatementRow{
		TxnDate:     time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Description: "NEFT",
		Credit:      decimal.NewFromInt(10),
		Debit:       decimal.Zero,
	}
	txn := row.Transaction(tenantID, "HDFC")
	assert.Equal(t, tenantID, txn.TenantID)
	assert.Equal(t, "HDFC", txn.AccountLabel)
	assert.Equal(t, domain.BankTxnUnmatched, txn.Status)
	assert.Equal(t, reconcile.ImportHash(row.TxnDate, row.Description, row.Debit, row.Credit), txn.ImportHash)
	assert.NotEqual(t, uuid.Nil, txn.ID)
}
