package gst_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/domain"
	"khata/internal/gst"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), field)
}

func TestRound2(t *testing.T) {
	cases := map[string]string{
		"1.005":    "1.01",
		"2.675":    "2.68",
		"1.004":    "1.00",
		"0.125":    "0.13",
		"59000":    "59000.00",
		"4499.995": "4500.00",
	}
	for in, want := range cases {
		assertMoney(t, want, gst.Round2(d(in)), in)
	}
}

func TestCalcLineItem_IntraState(t *testing.T) {
	got, err := gst.CalcLineItem(gst.LineInput{
		Quantity: d("1"), Rate: d("50000"), GSTRate: d("18"),
	}, false)
	require.NoError(t, err)

	assertMoney(t, "50000.00", got.Amount, "amount")
	assertMoney(t, "0.00", got.DiscountAmount, "discount")
	assertMoney(t, "50000.00", got.TaxableAmount, "taxable")
	assertMoney(t, "4500.00", got.CGSTAmount, "cgst")
	assertMoney(t, "4500.00", got.SGSTAmount, "sgst")
	assertMoney(t, "0.00", got.IGSTAmount, "igst")
	assertMoney(t, "59000.00", got.LineTotal, "line total")
}

func TestCalcLineItem_InterState(t *testing.T) {
	got, err := gst.CalcLineItem(gst.LineInput{
		Quantity: d("1"), Rate: d("50000"), GSTRate: d("18"),
	}, true)
	require.NoError(t, err)

	assertMoney(t, "0.00", got.CGSTAmount, "cgst")
	assertMoney(t, "0.00", got.SGSTAmount, "sgst")
	assertMoney(t, "9000.00", got.IGSTAmount, "igst")
	assertMoney(t, "59000.00", got.LineTotal, "line total")
}

func TestCalcLineItem_SGSTAbsorbsRemainder(t *testing.T) {
	got, err := gst.CalcLineItem(gst.LineInput{
		Quantity: d("1"), Rate: d("100.10"), GSTRate: d("5"),
	}, false)
	require.NoError(t, err)

	assertMoney(t, "2.51", got.CGSTAmount, "cgst")
	assertMoney(t, "2.50", got.SGSTAmount, "sgst")
	assertMoney(t, "105.11", got.LineTotal, "line total")
}

func TestCalcLineItem_PercentageDiscount(t *testing.T) {
	got, err := gst.CalcLineItem(gst.LineInput{
		Quantity: d("3"), Rate: d("333.33"), GSTRate: d("18"),
		Discount: &gst.Discount{Type: domain.DiscountPercentage, Value: d("10")},
	}, false)
	require.NoError(t, err)

	assertMoney(t, "999.99", got.Amount, "amount")
	assertMoney(t, "100.00", got.DiscountAmount, "discount")
	assertMoney(t, "899.99", got.TaxableAmount, "taxable")
	assertMoney(t, "81.00", got.CGSTAmount, "cgst")
	assertMoney(t, "81.00", got.SGSTAmount, "sgst")
	assertMoney(t, "1061.99", got.LineTotal, "line total")
}

func TestCalcLineItem_FixedDiscount(t *testing.T) {
	got, err := gst.CalcLineItem(gst.LineInput{
		Quantity: d("2"), Rate: d("500"), GSTRate: d("12"),
		Discount: &gst.Discount{Type: domain.DiscountFixed, Value: d("100.005")},
	}, true)
	require.NoError(t, err)

	assertMoney(t, "100.01", got.DiscountAmount, "discount")
	assertMoney(t, "899.99", got.TaxableAmount, "taxable")
	assertMoney(t, "108.00", got.IGSTAmount, "igst")
}

func TestCalcLineItem_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   gst.LineInput
	}{
		{"negative_quantity", gst.LineInput{Quantity: d("-1"), Rate: d("10"), GSTRate: d("18")}},
		{"zero_quantity", gst.LineInput{Quantity: d("0"), Rate: d("100"), GSTRate: d("18")}},
		{"negative_rate", gst.LineInput{Quantity: d("1"), Rate: d("-10"), GSTRate: d("18")}},
		{"unknown_rate", gst.LineInput{Quantity: d("1"), Rate: d("10"), GSTRate: d("17")}},
		{"fixed_over_amount", gst.LineInput{Quantity: d("1"), Rate: d("10"), GSTRate: d("18"),
			Discount: &gst.Discount{Type: domain.DiscountFixed, Value: d("10.01")}}},
		{"percentage_over_100", gst.LineInput{Quantity: d("1"), Rate: d("10"), GSTRate: d("18"),
			Discount: &gst.Discount{Type: domain.DiscountPercentage, Value: d("101")}}},
		{"unknown_discount_type", gst.LineInput{Quantity: d("1"), Rate: d("10"), GSTRate: d("18"),
			Discount: &gst.Discount{Type: "bogus", Value: d("1")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gst.CalcLineItem(tt.in, false)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCalcLineItem_FullDiscountAllowed(t *testing.T) {
	got, err := gst.CalcLineItem(gst.LineInput{
		Quantity: d("1"), Rate: d("10"), GSTRate: d("18"),
		Discount: &gst.Discount{Type: domain.DiscountPercentage, Value: d("100")},
	}, false)
	require.NoError(t, err)
	assert.True(t, got.TaxableAmount.IsZero())
	assert.True(t, got.LineTotal.IsZero())
}

func randomLine(r *rand.Rand) gst.LineInput {
	qty := decimal.NewFromInt(int64(r.Intn(50) + 1))
	rate := decimal.New(int64(r.Intn(10_000_000)+10_000), -2)
	gstRate := domain.ValidGSTRates[r.Intn(len(domain.ValidGSTRates))]
	return gst.LineInput{Quantity: qty, Rate: rate, GSTRate: gstRate}
}

func TestCalcLineItem_TaxSplitExclusivity(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		in := randomLine(r)
		interState := r.Intn(2) == 0
		got, err := gst.CalcLineItem(in, interState)
		require.NoError(t, err)

		if in.GSTRate.IsZero() {
			assert.True(t, got.GSTAmount().IsZero())
			continue
		}
		if interState {
			assert.True(t, got.IGSTAmount.IsPositive(), "igst for %+v", in)
			assert.True(t, got.CGSTAmount.IsZero() && got.SGSTAmount.IsZero(), "cgst/sgst for %+v", in)
		} else {
			assert.True(t, got.IGSTAmount.IsZero(), "igst for %+v", in)
			assert.True(t, got.CGSTAmount.IsPositive() && got.SGSTAmount.IsPositive(), "cgst/sgst for %+v", in)
		}
	}
}

func TestCalcLineItem_RoundingClosure(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 2000; i++ {
		in := randomLine(r)
		got, err := gst.CalcLineItem(in, false)
		require.NoError(t, err)

		want := gst.Round2(got.TaxableAmount.Mul(in.GSTRate).Div(decimal.NewFromInt(100)))
		assert.True(t, got.CGSTAmount.Add(got.SGSTAmount).Equal(want),
			"cgst %s + sgst %s != %s", got.CGSTAmount, got.SGSTAmount, want)
		assert.True(t, got.LineTotal.Equal(got.TaxableAmount.Add(want)))
	}
}

func TestCalcTotals(t *testing.T) {
	a, err := gst.CalcLineItem(gst.LineInput{Quantity: d("1"), Rate: d("50000"), GSTRate: d("18")}, false)
	require.NoError(t, err)
	b, err := gst.CalcLineItem(gst.LineInput{Quantity: d("3"), Rate: d("333.33"), GSTRate: d("5"),
		Discount: &gst.Discount{Type: domain.DiscountFixed, Value: d("9.99")}}, false)
	require.NoError(t, err)

	tot := gst.CalcTotals([]gst.LineAmounts{a, b})
	assertMoney(t, "50999.99", tot.Subtotal, "subtotal")
	assertMoney(t, "9.99", tot.DiscountAmount, "discount")
	assertMoney(t, "50990.00", tot.TaxableAmount, "taxable")
	assertMoney(t, "4524.75", tot.CGSTAmount, "cgst")
	assertMoney(t, "4524.75", tot.SGSTAmount, "sgst")
	assertMoney(t, "60039.50", tot.TotalAmount, "total")
	assert.True(t, tot.TotalAmount.Equal(tot.TaxableAmount.Add(tot.CGSTAmount).Add(tot.SGSTAmount).Add(tot.IGSTAmount)))
}

func TestCalcTotals_Empty(t *testing.T) {
	tot := gst.CalcTotals(nil)
	assert.True(t, tot.TotalAmount.IsZero())
}

func TestIsInterState(t *testing.T) {
	assert.False(t, gst.IsInterState("", "27"))
	assert.False(t, gst.IsInterState("27", ""))
	assert.False(t, gst.IsInterState("27", "27"))
	assert.True(t, gst.IsInterState("27", "29"))
	assert.True(t, gst.IsInterState("7", "07"))
}

func TestTDSAmount(t *testing.T) {
	assertMoney(t, "1000.00", gst.TDSAmount(d("100000"), d("1")), "tds")
	assertMoney(t, "0.03", gst.TDSAmount(d("1.25"), d("2")), "tds rounding")
}
