package handlers

import (
	"net/http"
	"testing"

	"github.com/canvascartel/crm-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceComputesLedger(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName":    "Fashion Forward",
		"clientEmail":   "priya@fashionbrand.com",
		"discountType":  "fixed",
		"discountValue": 100,
		"taxPercentage": 18,
		"items": []map[string]any{
			{"description": "Brand identity", "quantity": 2, "rate": 500},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var inv models.Invoice
	decode(t, w, &inv)
	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
	assert.Equal(t, int64(1000), inv.Subtotal)
	// 1000 - 100 = 900, tax 18% = 162, total 1062
	assert.Equal(t, int64(1062), inv.Total)
	assert.Equal(t, int64(0), inv.AmountPaid)
	assert.Equal(t, "draft", inv.Status)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, int64(1000), inv.Items[0].Amount)
}

func TestCreateInvoiceKeepsClientNumber(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName":    "ShopEase",
		"invoiceNumber": "INV-2026-007",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var inv models.Invoice
	decode(t, w, &inv)
	assert.Equal(t, "INV-2026-007", inv.InvoiceNumber)
}

func TestCreateInvoiceRequiresClientName(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientEmail": "nobody@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateInvoiceReplacesItems(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName": "EduBright",
		"items": []map[string]any{
			{"description": "Video production", "quantity": 1, "rate": 2000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv models.Invoice
	decode(t, w, &inv)
	require.Equal(t, int64(2000), inv.Total)

	w = doJSON(t, r, http.MethodPatch, "/api/invoices/"+inv.ID, map[string]any{
		"taxPercentage": 10,
		"items": []map[string]any{
			{"description": "Video production", "quantity": 1, "rate": 2000},
			{"description": "Script writing", "quantity": 3, "rate": 100},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Invoice
	decode(t, w, &updated)
	assert.Equal(t, int64(2300), updated.Subtotal)
	assert.Equal(t, int64(2530), updated.Total)
	assert.Len(t, updated.Items, 2)
	assert.Equal(t, inv.InvoiceNumber, updated.InvoiceNumber)
}

func TestUpdateInvoiceWithoutItemsKeepsThem(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName": "Skyline Properties",
		"items": []map[string]any{
			{"description": "Campaign setup", "quantity": 1, "rate": 5000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv models.Invoice
	decode(t, w, &inv)

	w = doJSON(t, r, http.MethodPatch, "/api/invoices/"+inv.ID, map[string]any{
		"notes": "Phase one only",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Invoice
	decode(t, w, &updated)
	assert.Equal(t, "Phase one only", updated.Notes)
	assert.Len(t, updated.Items, 1)
	assert.Equal(t, int64(5000), updated.Total)
}

func TestGetInvoiceBundlesItemsAndPayments(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName": "Spice Route Restaurants",
		"items": []map[string]any{
			{"description": "Marketing retainer", "quantity": 1, "rate": 1200},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv models.Invoice
	decode(t, w, &inv)

	w = doJSON(t, r, http.MethodPost, "/api/payments", map[string]any{
		"invoiceId": inv.ID, "amount": 400, "method": "upi",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/invoices/"+inv.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		models.Invoice
		Payments []models.Payment `json:"payments"`
	}
	decode(t, w, &payload)
	assert.Equal(t, inv.ID, payload.ID)
	assert.Len(t, payload.Items, 1)
	assert.Len(t, payload.Payments, 1)
	assert.Equal(t, int64(400), payload.AmountPaid)
	assert.Equal(t, "partially_paid", payload.Status)
}

func TestGetInvoiceNotFound(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/invoices/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteInvoiceRemovesChildren(t *testing.T) {
	r, gdb := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName": "TechStartup India",
		"items": []map[string]any{
			{"description": "Website redesign", "quantity": 1, "rate": 900},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv models.Invoice
	decode(t, w, &inv)

	w = doJSON(t, r, http.MethodPost, "/api/payments", map[string]any{
		"invoiceId": inv.ID, "amount": 900,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/invoices/"+inv.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	var items, payments int64
	require.NoError(t, gdb.Model(&models.InvoiceItem{}).Where("invoice_id = ?", inv.ID).Count(&items).Error)
	require.NoError(t, gdb.Model(&models.Payment{}).Where("invoice_id = ?", inv.ID).Count(&payments).Error)
	assert.Zero(t, items)
	assert.Zero(t, payments)
}

func TestAddAndRemoveInvoiceItemRecomputes(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName": "Design Studio",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv models.Invoice
	decode(t, w, &inv)
	require.Equal(t, int64(0), inv.Total)

	w = doJSON(t, r, http.MethodPost, "/api/invoice-items", map[string]any{
		"invoiceId": inv.ID, "description": "Logo design", "quantity": 4, "rate": 250,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var item models.InvoiceItem
	decode(t, w, &item)
	assert.Equal(t, int64(1000), item.Amount)

	got := fetchInvoice(t, r, inv.ID)
	assert.Equal(t, int64(1000), got.Total)

	w = doJSON(t, r, http.MethodDelete, "/api/invoice-items/"+item.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	got = fetchInvoice(t, r, inv.ID)
	assert.Equal(t, int64(0), got.Total)
}

func TestAddItemToMissingInvoice(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/invoice-items", map[string]any{
		"invoiceId": "missing", "description": "Nothing", "quantity": 1, "rate": 10,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestItemValidationRejectsNegatives(t *testing.T) {
	r, _ := newTestRouter(t)
	inv := createInvoiceWithTotal(t, r, "Design Studio", 500)

	w := doJSON(t, r, http.MethodPost, "/api/invoice-items", map[string]any{
		"invoiceId": inv.ID, "description": "Zero qty", "quantity": 0, "rate": 100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/invoice-items", map[string]any{
		"invoiceId": inv.ID, "description": "Negative rate", "quantity": 1, "rate": -100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName": "Bad Items Co",
		"items": []map[string]any{
			{"description": "Negative rate", "quantity": 1, "rate": -100},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The merge-bind PATCH path enforces the same constraints.
	w = doJSON(t, r, http.MethodPatch, "/api/invoices/"+inv.ID, map[string]any{
		"items": []map[string]any{
			{"description": "Negative qty", "quantity": -2, "rate": 100},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/invoices/"+inv.ID, map[string]any{
		"discountValue": -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nothing above may have disturbed the stored totals.
	assert.Equal(t, int64(500), fetchInvoice(t, r, inv.ID).Total)
}

func TestExportInvoicesXLSX(t *testing.T) {
	r, _ := newTestRouter(t)
	createInvoiceWithTotal(t, r, "Skyline Properties", 900)

	w := doJSON(t, r, http.MethodGet, "/api/invoices/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=invoices_")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestSendEmailRequiresClientEmail(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName": "Media House",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv models.Invoice
	decode(t, w, &inv)

	w = doJSON(t, r, http.MethodPost, "/api/invoices/"+inv.ID+"/send-email", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendEmailUnconfiguredMailer(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/invoices", map[string]any{
		"clientName":  "Media House",
		"clientEmail": "karthik@mediahouse.in",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var inv models.Invoice
	decode(t, w, &inv)

	w = doJSON(t, r, http.MethodPost, "/api/invoices/"+inv.ID+"/send-email", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
