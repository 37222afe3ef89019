package lifecycle_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/gst"
	"khata/internal/lifecycle"
)

func scenarioAInvoice(t *testing.T) *domain.Document {
	t.Helper()
	line, err := gst.CalcLineItem(gst.LineInput{Quantity: d("1"), Rate: d("50000"), GSTRate: d("18")}, false)
	require.NoError(t, err)
	x := &domain.Document{
		Kind:       domain.DocumentSales,
		Status:     domain.StatusSent,
		AmountPaid: decimal.Zero,
		DueDate:    today.AddDate(0, 0, 30),
	}
	lifecycle.ApplyTotals(x, gst.CalcTotals([]gst.LineAmounts{line}))
	return x
}

func TestApplyPayment_PartialThenFull(t *testing.T) {
	x := scenarioAInvoice(t)
	assert.Equal(t, "59000.00", x.BalanceDue.StringFixed(2))

	require.NoError(t, lifecycle.ApplyPayment(x, d("30000"), today))
	assert.Equal(t, "30000.00", x.AmountPaid.StringFixed(2))
	assert.Equal(t, "29000.00", x.BalanceDue.StringFixed(2))
	assert.Equal(t, domain.StatusPartiallyPaid, x.Status)

	require.NoError(t, lifecycle.ApplyPayment(x, d("29000"), today))
	assert.True(t, x.BalanceDue.IsZero())
	assert.Equal(t, domain.StatusPaid, x.Status)
}

func TestApplyPayment_Rejects(t *testing.T) {
	t.Run("non_positive", func(t *testing.T) {
		x := scenarioAInvoice(t)
		assert.ErrorIs(t, lifecycle.ApplyPayment(x, decimal.Zero, today), domain.ErrNonPositiveAmount)
		assert.ErrorIs(t, lifecycle.ApplyPayment(x, d("-5"), today), domain.ErrNonPositiveAmount)
	})

	t.Run("overpayment", func(t *testing.T) {
		x := scenarioAInvoice(t)
		err := lifecycle.ApplyPayment(x, d("59000.01"), today)
		assert.ErrorIs(t, err, domain.ErrOverpayment)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.True(t, x.AmountPaid.IsZero())
	})

	t.Run("draft", func(t *testing.T) {
		x := scenarioAInvoice(t)
		x.Status = domain.StatusDraft
		assert.ErrorIs(t, lifecycle.ApplyPayment(x, d("1"), today), domain.ErrDocumentNotPayable)
	})

	t.Run("cancelled", func(t *testing.T) {
		x := scenarioAInvoice(t)
		x.Status = domain.StatusCancelled
		assert.ErrorIs(t, lifecycle.ApplyPayment(x, d("1"), today), domain.ErrDocumentNotPayable)
	})
}

func TestReversePayment_ReturnsToSentNotDraft(t *testing.T) {
	x := scenarioAInvoice(t)
	require.NoError(t, lifecycle.ApplyPayment(x, d("59000"), today))
	require.Equal(t, domain.StatusPaid, x.Status)

	require.NoError(t, lifecycle.ReversePayment(x, d("59000"), today))
	assert.Equal(t, domain.StatusSent, x.Status)
	assert.True(t, x.AmountPaid.IsZero())
	assert.Equal(t, "59000.00", x.BalanceDue.StringFixed(2))
}

func TestReversePayment_BillReturnsToPending(t *testing.T) {
	x := doc(domain.DocumentPurchase, domain.StatusPending, "1000", "0", today.AddDate(0, 0, 5))
	require.NoError(t, lifecycle.ApplyPayment(x, d("400"), today))
	require.Equal(t, domain.StatusPartiallyPaid, x.Status)

	require.NoError(t, lifecycle.ReversePayment(x, d("400"), today))
	assert.Equal(t, domain.StatusPending, x.Status)
}

func TestReversePayment_FloorsAtZero(t *testing.T) {
	x := doc(domain.DocumentSales, domain.StatusPartiallyPaid, "100", "10", today.AddDate(0, 0, 5))
	require.NoError(t, lifecycle.ReversePayment(x, d("25"), today))
	assert.True(t, x.AmountPaid.IsZero())
	assert.Equal(t, "100.00", x.BalanceDue.StringFixed(2))
	assert.Equal(t, domain.StatusSent, x.Status)
}

func snapshot(x *domain.Document) [3]string {
	return [3]string{x.AmountPaid.StringFixed(2), x.BalanceDue.StringFixed(2), string(x.Status)}
}

func TestApplyReverse_RoundTripAndBalanceProperty(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	kinds := []domain.DocumentKind{domain.DocumentSales, domain.DocumentPurchase}

	for i := 0; i < 500; i++ {
		kind := kinds[r.Intn(2)]
		total := decimal.New(int64(r.Intn(1_000_000)+100), -2)
		paid := decimal.New(r.Int63n(total.Shift(2).IntPart()), -2)
		due := today.AddDate(0, 0, r.Intn(61)-30)

		x := &domain.Document{
			Kind: kind, TaxableAmount: total, TotalAmount: total, AmountPaid: paid, DueDate: due,
			CGSTAmount: decimal.Zero, SGSTAmount: decimal.Zero, IGSTAmount: decimal.Zero,
			Status: kind.OpenStatus(),
		}
		lifecycle.SettleBalance(x)
		lifecycle.Refresh(x, today)
		before := snapshot(x)

		amount := decimal.New(r.Int63n(x.BalanceDue.Shift(2).IntPart())+1, -2)
		require.NoError(t, lifecycle.ApplyPayment(x, amount, today))
		assert.False(t, x.BalanceDue.IsNegative())
		assert.True(t, x.BalanceDue.Equal(x.TotalAmount.Sub(x.AmountPaid)))

		require.NoError(t, lifecycle.ReversePayment(x, amount, today))
		assert.Equal(t, before, snapshot(x), "round trip of %s on %+v", amount, before)
		assert.False(t, x.BalanceDue.IsNegative())
	}
}

func TestCheckInvariants(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, lifecycle.CheckInvariants(scenarioAInvoice(t)))
	})

	t.Run("total_mismatch", func(t *testing.T) {
		x := scenarioAInvoice(t)
		x.TotalAmount = x.TotalAmount.Add(d("0.01"))
		lifecycle.SettleBalance(x)
		err := lifecycle.CheckInvariants(x)
		assert.ErrorIs(t, err, domain.ErrTotalMismatch)
		assert.ErrorIs(t, err, domain.ErrConsistency)
	})

	t.Run("mixed_split", func(t *testing.T) {
		x := scenarioAInvoice(t)
		x.IGSTAmount = d("1")
		x.TaxableAmount = x.TaxableAmount.Sub(d("1"))
		assert.ErrorIs(t, lifecycle.CheckInvariants(x), domain.ErrTaxSplitMixed)
	})

	t.Run("negative_balance", func(t *testing.T) {
		x := scenarioAInvoice(t)
		x.BalanceDue = d("-1")
		assert.ErrorIs(t, lifecycle.CheckInvariants(x), domain.ErrNegativeBalance)
	})

	t.Run("stale_balance", func(t *testing.T) {
		x := scenarioAInvoice(t)
		x.AmountPaid = d("100")
		assert.ErrorIs(t, lifecycle.CheckInvariants(x), domain.ErrConsistency)
	})
}
