// Package ledger derives the financial state of an invoice from its line
// items and payment history. Everything here is pure arithmetic on currency
// minor units; persistence and transaction boundaries belong to the callers.
package ledger

import (
	"math"

	"github.com/canvascartel/crm-backend/models"
)

type DiscountType string

const (
	DiscountNone       DiscountType = "none"
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

type Status string

const (
	StatusDraft         Status = "draft"
	StatusSent          Status = "sent"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
)

// State is the full derived financial state of one invoice.
type State struct {
	Subtotal       int64
	DiscountAmount int64
	TaxAmount      int64
	Total          int64
	AmountPaid     int64
	Status         Status
}

// roundHalfUp rounds to the nearest minor unit, halves up. All inputs in this
// package are non-negative products of non-negative operands, so this is
// equivalent to rounding half away from zero.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// ComputeDiscount returns the discount amount for a subtotal. A fixed
// discount is taken as-is: it is deliberately not clamped to the subtotal, so
// a fixed discount larger than the subtotal produces a negative discounted
// subtotal. Validation of the value happens at the API boundary.
func ComputeDiscount(subtotal int64, discountType DiscountType, discountValue float64) int64 {
	switch discountType {
	case DiscountFixed:
		return roundHalfUp(discountValue)
	case DiscountPercentage:
		return roundHalfUp(float64(subtotal) * discountValue / 100)
	default:
		return 0
	}
}

// ComputeTax returns the tax amount on the discounted subtotal.
func ComputeTax(discountedSubtotal int64, taxPercentage float64) int64 {
	if taxPercentage == 0 {
		return 0
	}
	return roundHalfUp(float64(discountedSubtotal) * taxPercentage / 100)
}

// ComputeTotal is subtotal - discount + tax. There is no floor at zero: an
// oversized fixed discount flows through as a negative total.
func ComputeTotal(subtotal, discountAmount, taxAmount int64) int64 {
	return subtotal - discountAmount + taxAmount
}

// DeriveStatus maps the paid amount onto the invoice status. When nothing has
// been paid the caller-supplied fallback wins: payment updates pass the
// invoice's current status, payment deletion passes StatusSent. The two paths
// intentionally disagree, matching the system this one replaces.
func DeriveStatus(total, totalPaid int64, fallback Status) Status {
	switch {
	case totalPaid >= total && total > 0:
		return StatusPaid
	case totalPaid > 0:
		return StatusPartiallyPaid
	default:
		return fallback
	}
}

// Recompute derives the complete ledger state for an invoice. The invoice's
// own Status field is the fallback for DeriveStatus. Item amounts are trusted
// as stored (Quantity x Rate, enforced on write); payment amounts are summed
// over the given slice regardless of order. Recomputing with unchanged inputs
// always yields an identical state.
func Recompute(inv models.Invoice, items []models.InvoiceItem, payments []models.Payment) State {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Amount
	}

	discount := ComputeDiscount(subtotal, DiscountType(inv.DiscountType), inv.DiscountValue)
	tax := ComputeTax(subtotal-discount, inv.TaxPercentage)
	total := ComputeTotal(subtotal, discount, tax)

	var paid int64
	for _, p := range payments {
		paid += p.Amount
	}

	return State{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		Total:          total,
		AmountPaid:     paid,
		Status:         DeriveStatus(total, paid, Status(inv.Status)),
	}
}

// ItemAmount is the single place line amounts are computed from quantity and
// rate.
func ItemAmount(quantity int, rate int64) int64 {
	return int64(quantity) * rate
}
