// Package commission holds the pure commission math. Everything here works
// on decimals so repeated create/refund recomputation cannot drift the way
// binary floats would.
package commission

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Compute returns total * ratePercent / 100 rounded to currency precision.
// Negative inputs clamp to zero; a commission is never negative.
func Compute(total, ratePercent decimal.Decimal) decimal.Decimal {
	amount := total.Mul(ratePercent).Div(hundred).Round(2)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// ApplyRefund recomputes an order's totals after a (possibly partial)
// refund. The remaining total floors at zero even when the refunded amount
// exceeds the original, so an over-refund degrades to a full refund.
func ApplyRefund(originalTotal, refundedAmount, ratePercent decimal.Decimal) (remainingTotal, newCommission decimal.Decimal) {
	remainingTotal = originalTotal.Sub(refundedAmount)
	if remainingTotal.IsNegative() {
		remainingTotal = decimal.Zero
	}
	return remainingTotal, Compute(remainingTotal, ratePercent)
}
