// Package gst computes line and document level GST amounts.
//
// Every intermediate amount is rounded half-up to two decimal places before it
// feeds the next step, so totals are reproducible to the paisa.
package gst

import (
	"github.com/shopspring/decimal"

	"khata/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
	half    = decimal.RequireFromString("0.5")
)

// Round2 rounds half-up (toward positive infinity on a tie) to two places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(half).Floor().Shift(-2)
}

// Discount is an optional per-line reduction.
type Discount struct {
	Type  domain.DiscountType
	Value decimal.Decimal
}

// LineInput carries the priced inputs of one line item.
type LineInput struct {
	Quantity decimal.Decimal
	Rate     decimal.Decimal
	GSTRate  decimal.Decimal
	Discount *Discount
}

// LineAmounts are the derived money fields of one line item.
type LineAmounts struct {
	Amount         decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	CGSTAmount     decimal.Decimal
	SGSTAmount     decimal.Decimal
	IGSTAmount     decimal.Decimal
	LineTotal      decimal.Decimal
}

// GSTAmount is the combined tax of the line.
func (l LineAmounts) GSTAmount() decimal.Decimal {
	return l.CGSTAmount.Add(l.SGSTAmount).Add(l.IGSTAmount)
}

// Totals are the document level sums of its lines.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableAmount  decimal.Decimal
	CGSTAmount     decimal.Decimal
	SGSTAmount     decimal.Decimal
	IGSTAmount     decimal.Decimal
	TotalAmount    decimal.Decimal
}

// IsValidRate reports whether rate is one of the notified GST slabs.
func IsValidRate(rate decimal.Decimal) bool {
	for _, r := range domain.ValidGSTRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

// Validate rejects line inputs that cannot produce a meaningful amount.
func (in LineInput) Validate() error {
	if !in.Quantity.IsPositive() {
		return domain.Validationf("quantity must be positive")
	}
	if in.Rate.IsNegative() {
		return domain.Validationf("rate must not be negative")
	}
	if !IsValidRate(in.GSTRate) {
		return domain.Validationf("unknown GST rate %s", in.GSTRate.String())
	}
	if in.Discount == nil {
		return nil
	}
	switch in.Discount.Type {
	case domain.DiscountNone:
	case domain.DiscountPercentage:
		if in.Discount.Value.IsNegative() || in.Discount.Value.GreaterThan(hundred) {
			return domain.Validationf("discount percentage must be between 0 and 100")
		}
	case domain.DiscountFixed:
		if in.Discount.Value.IsNegative() {
			return domain.Validationf("discount must not be negative")
		}
	default:
		return domain.Validationf("unknown discount type %q", in.Discount.Type)
	}
	return nil
}

// CalcLineItem computes the amounts of one line. Discounts larger than the
// line amount are rejected.
func CalcLineItem(in LineInput, interState bool) (LineAmounts, error) {
	if err := in.Validate(); err != nil {
		return LineAmounts{}, err
	}

	var out LineAmounts
	out.Amount = Round2(in.Quantity.Mul(in.Rate))

	out.DiscountAmount = decimal.Zero
	if in.Discount != nil {
		switch in.Discount.Type {
		case domain.DiscountPercentage:
			out.DiscountAmount = Round2(out.Amount.Mul(in.Discount.Value).Div(hundred))
		case domain.DiscountFixed:
			out.DiscountAmount = Round2(in.Discount.Value)
		}
	}
	if out.DiscountAmount.GreaterThan(out.Amount) {
		return LineAmounts{}, domain.Validationf("discount %s exceeds line amount %s",
			out.DiscountAmount.StringFixed(2), out.Amount.StringFixed(2))
	}

	out.TaxableAmount = Round2(out.Amount.Sub(out.DiscountAmount))
	gstAmount := Round2(out.TaxableAmount.Mul(in.GSTRate).Div(hundred))

	out.CGSTAmount, out.SGSTAmount, out.IGSTAmount = decimal.Zero, decimal.Zero, decimal.Zero
	if interState {
		out.IGSTAmount = gstAmount
	} else {
		out.CGSTAmount = Round2(gstAmount.Div(two))
		out.SGSTAmount = Round2(gstAmount.Sub(out.CGSTAmount))
	}

	out.LineTotal = Round2(out.TaxableAmount.Add(gstAmount))
	return out, nil
}

// CalcTotals sums already rounded line amounts. Only the grand total is
// rounded again.
func CalcTotals(lines []LineAmounts) Totals {
	t := Totals{
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxableAmount:  decimal.Zero,
		CGSTAmount:     decimal.Zero,
		SGSTAmount:     decimal.Zero,
		IGSTAmount:     decimal.Zero,
	}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Amount)
		t.DiscountAmount = t.DiscountAmount.Add(l.DiscountAmount)
		t.TaxableAmount = t.TaxableAmount.Add(l.TaxableAmount)
		t.CGSTAmount = t.CGSTAmount.Add(l.CGSTAmount)
		t.SGSTAmount = t.SGSTAmount.Add(l.SGSTAmount)
		t.IGSTAmount = t.IGSTAmount.Add(l.IGSTAmount)
	}
	t.TotalAmount = Round2(t.TaxableAmount.Add(t.CGSTAmount).Add(t.SGSTAmount).Add(t.IGSTAmount))
	return t
}

// IsInterState reports whether supply crosses a state boundary. Missing codes
// are treated as intra-state.
func IsInterState(supplierStateCode, customerStateCode string) bool {
	if supplierStateCode == "" || customerStateCode == "" {
		return false
	}
	return supplierStateCode != customerStateCode
}

// TDSAmount is the tax withheld on a taxable amount at rate percent.
func TDSAmount(taxable, rate decimal.Decimal) decimal.Decimal {
	return Round2(taxable.Mul(rate).Div(hundred))
}
