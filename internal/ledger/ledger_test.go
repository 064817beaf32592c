package ledger

import (
	"testing"

	"github.com/canvascartel/crm-backend/models"
	"github.com/stretchr/testify/assert"
)

func items(amounts ...int64) []models.InvoiceItem {
	out := make([]models.InvoiceItem, len(amounts))
	for i, a := range amounts {
		out[i] = models.InvoiceItem{Amount: a}
	}
	return out
}

func payments(amounts ...int64) []models.Payment {
	out := make([]models.Payment, len(amounts))
	for i, a := range amounts {
		out[i] = models.Payment{Amount: a}
	}
	return out
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		typ      DiscountType
		value    float64
		want     int64
	}{
		{"none", 1000, DiscountNone, 50, 0},
		{"unknown type treated as none", 1000, DiscountType("coupon"), 50, 0},
		{"fixed", 1000, DiscountFixed, 100, 100},
		{"fixed exceeding subtotal is not clamped", 1000, DiscountFixed, 1500, 1500},
		{"percentage", 1000, DiscountPercentage, 10, 100},
		{"percentage rounds half up", 1001, DiscountPercentage, 2.5, 25}, // 25.025 -> 25
		{"percentage half exactly", 1000, DiscountPercentage, 2.25, 23}, // 22.5 -> 23
		{"zero subtotal", 0, DiscountPercentage, 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeDiscount(tt.subtotal, tt.typ, tt.value))
		})
	}
}

func TestComputeTax(t *testing.T) {
	assert.Equal(t, int64(162), ComputeTax(900, 18))
	assert.Equal(t, int64(0), ComputeTax(900, 0))
	assert.Equal(t, int64(167), ComputeTax(925, 18)) // 166.5 rounds up
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, int64(1062), ComputeTotal(1000, 100, 162))
	// Oversized fixed discount flows through as a negative total.
	assert.Equal(t, int64(-500), ComputeTotal(1000, 1500, 0))
}

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name     string
		total    int64
		paid     int64
		fallback Status
		want     Status
	}{
		{"fully paid", 500, 500, StatusSent, StatusPaid},
		{"overpaid", 500, 600, StatusSent, StatusPaid},
		{"partially paid", 500, 300, StatusSent, StatusPartiallyPaid},
		{"nothing paid keeps update fallback", 500, 0, StatusDraft, StatusDraft},
		{"nothing paid after delete falls back to sent", 500, 0, StatusSent, StatusSent},
		{"zero total with payments is not paid", 0, 100, StatusDraft, StatusPartiallyPaid},
		{"zero total nothing paid", 0, 0, StatusDraft, StatusDraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.total, tt.paid, tt.fallback))
		})
	}
}

func TestRecompute(t *testing.T) {
	inv := models.Invoice{
		DiscountType:  string(DiscountFixed),
		DiscountValue: 100,
		TaxPercentage: 18,
		Status:        string(StatusSent),
	}

	st := Recompute(inv, items(600, 400), payments(300))
	assert.Equal(t, int64(1000), st.Subtotal)
	assert.Equal(t, int64(100), st.DiscountAmount)
	assert.Equal(t, int64(162), st.TaxAmount) // 18% of 900
	assert.Equal(t, int64(1062), st.Total)
	assert.Equal(t, int64(300), st.AmountPaid)
	assert.Equal(t, StatusPartiallyPaid, st.Status)
}

func TestRecomputeSubtotalOrderIndependent(t *testing.T) {
	inv := models.Invoice{DiscountType: string(DiscountNone), Status: string(StatusDraft)}
	a := Recompute(inv, items(100, 250, 650), nil)
	b := Recompute(inv, items(650, 100, 250), nil)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(1000), a.Subtotal)
}

func TestRecomputeIdempotent(t *testing.T) {
	inv := models.Invoice{
		DiscountType:  string(DiscountPercentage),
		DiscountValue: 10,
		TaxPercentage: 18,
		Status:        string(StatusSent),
	}
	it := items(1000, 2000)
	pays := payments(1500, 500)

	first := Recompute(inv, it, pays)

	// Feed the derived state back in; nothing may change.
	inv.Subtotal = first.Subtotal
	inv.Total = first.Total
	inv.AmountPaid = first.AmountPaid
	inv.Status = string(first.Status)
	second := Recompute(inv, it, pays)

	assert.Equal(t, first, second)
}

func TestRecomputePaymentScenario(t *testing.T) {
	// Invoice of 500 paid with 300 then 200, then the 200 payment removed.
	inv := models.Invoice{DiscountType: string(DiscountNone), Status: string(StatusSent)}
	it := items(500)

	st := Recompute(inv, it, payments(300))
	assert.Equal(t, int64(300), st.AmountPaid)
	assert.Equal(t, StatusPartiallyPaid, st.Status)

	st = Recompute(inv, it, payments(300, 200))
	assert.Equal(t, int64(500), st.AmountPaid)
	assert.Equal(t, StatusPaid, st.Status)

	st = Recompute(inv, it, payments(300))
	assert.Equal(t, int64(300), st.AmountPaid)
	assert.Equal(t, StatusPartiallyPaid, st.Status)
}

func TestRecomputeEmptyInvoice(t *testing.T) {
	inv := models.Invoice{DiscountType: string(DiscountNone), Status: string(StatusDraft)}
	st := Recompute(inv, nil, nil)
	assert.Equal(t, State{Status: StatusDraft}, st)
}

func TestItemAmount(t *testing.T) {
	assert.Equal(t, int64(2500), ItemAmount(5, 500))
	assert.Equal(t, int64(0), ItemAmount(0, 500))
}
