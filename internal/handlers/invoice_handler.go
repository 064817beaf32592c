package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/canvascartel/crm-backend/internal/ledger"
	"github.com/canvascartel/crm-backend/internal/mailer"
	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvoiceHandler struct {
	db       *gorm.DB
	activity *ActivityRecorder
	mailer   *mailer.Mailer
}

func NewInvoiceHandler(db *gorm.DB, activity *ActivityRecorder, m *mailer.Mailer) *InvoiceHandler {
	return &InvoiceHandler{db: db, activity: activity, mailer: m}
}

// applyLedger reloads an invoice's items and payments inside tx and persists
// the recomputed financial state. The invoice row is locked for the duration
// on postgres; sqlite serializes writers on its own and rejects FOR UPDATE.
// A non-empty fallback overrides the stored status as the zero-paid fallback.
func applyLedger(tx *gorm.DB, invoiceID string, fallback ledger.Status) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var inv models.Invoice
	if err := q.First(&inv, "id = ?", invoiceID).Error; err != nil {
		return err
	}
	if fallback != "" {
		inv.Status = string(fallback)
	}

	var items []models.InvoiceItem
	if err := tx.Where("invoice_id = ?", invoiceID).Find(&items).Error; err != nil {
		return err
	}
	var payments []models.Payment
	if err := tx.Where("invoice_id = ?", invoiceID).Find(&payments).Error; err != nil {
		return err
	}

	state := ledger.Recompute(inv, items, payments)

	return tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(map[string]any{
		"subtotal":    state.Subtotal,
		"total":       state.Total,
		"amount_paid": state.AmountPaid,
		"status":      string(state.Status),
	}).Error
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices := make([]models.Invoice, 0)
	if err := h.db.Order("created_at desc").Find(&invoices).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// invoiceWithItems flattens the invoice with an always-present items array,
// matching the shape the frontend consumes.
type invoiceWithItems struct {
	models.Invoice
	Items []models.InvoiceItem `json:"items"`
}

type invoiceDetail struct {
	invoiceWithItems
	Payments []models.Payment `json:"payments"`
}

// Get returns the invoice together with its line items and payment history.
func (h *InvoiceHandler) Get(c *gin.Context) {
	withItems, err := h.loadWithItems(c.Param("id"))
	if err != nil {
		if isNotFound(err) {
			notFound(c, "Invoice")
			return
		}
		serverError(c, err)
		return
	}

	payments := make([]models.Payment, 0)
	if err := h.db.Where("invoice_id = ?", withItems.ID).
		Order("created_at asc").Find(&payments).Error; err != nil {
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoiceDetail{
		invoiceWithItems: withItems,
		Payments:         payments,
	})
}

type invoiceCreateRequest struct {
	models.Invoice
	Items []models.InvoiceItem `json:"items"`
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req invoiceCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	inv := req.Invoice
	inv.Items = nil

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if inv.InvoiceNumber == "" {
			var count int64
			if err := tx.Model(&models.Invoice{}).Count(&count).Error; err != nil {
				return err
			}
			inv.InvoiceNumber = fmt.Sprintf("INV-%04d", count+1)
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		for i := range req.Items {
			req.Items[i].InvoiceID = inv.ID
			req.Items[i].Amount = ledger.ItemAmount(req.Items[i].Quantity, req.Items[i].Rate)
			if err := tx.Create(&req.Items[i]).Error; err != nil {
				return err
			}
		}
		return applyLedger(tx, inv.ID, "")
	})
	if err != nil {
		badRequest(c, err)
		return
	}

	detail, err := h.loadWithItems(inv.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	h.activity.Record("invoice_created",
		fmt.Sprintf("Invoice %s created for %s", detail.InvoiceNumber, detail.ClientName),
		"invoice", detail.ID)
	c.JSON(http.StatusCreated, detail)
}

// Update merges the body over the stored invoice. When the body carries an
// "items" key the line items are replaced wholesale; either way the ledger is
// recomputed in the same transaction.
func (h *InvoiceHandler) Update(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, err)
		return
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		badRequest(c, err)
		return
	}
	_, hasItems := probe["items"]

	var inv models.Invoice
	if err := h.db.First(&inv, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Invoice")
			return
		}
		serverError(c, err)
		return
	}

	id, createdAt, number := inv.ID, inv.CreatedAt, inv.InvoiceNumber
	var req invoiceCreateRequest
	req.Invoice = inv
	if err := json.Unmarshal(body, &req); err != nil {
		badRequest(c, err)
		return
	}
	inv = req.Invoice
	inv.ID, inv.CreatedAt = id, createdAt
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = number
	}
	inv.Items = nil

	// Merge-binding bypasses the struct binding tags, so the numeric
	// constraints are checked here.
	if inv.DiscountValue < 0 || inv.TaxPercentage < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "discountValue and taxPercentage must be non-negative"})
		return
	}
	if hasItems {
		for i := range req.Items {
			if req.Items[i].Quantity < 1 || req.Items[i].Rate < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "item quantity must be positive and rate non-negative"})
				return
			}
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&inv).Error; err != nil {
			return err
		}
		if hasItems {
			if err := tx.Where("invoice_id = ?", inv.ID).Delete(&models.InvoiceItem{}).Error; err != nil {
				return err
			}
			for i := range req.Items {
				item := models.InvoiceItem{
					InvoiceID:   inv.ID,
					Description: req.Items[i].Description,
					Quantity:    req.Items[i].Quantity,
					Rate:        req.Items[i].Rate,
					Amount:      ledger.ItemAmount(req.Items[i].Quantity, req.Items[i].Rate),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
		}
		return applyLedger(tx, inv.ID, "")
	})
	if err != nil {
		badRequest(c, err)
		return
	}

	detail, err := h.loadWithItems(inv.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *InvoiceHandler) loadWithItems(id string) (invoiceWithItems, error) {
	var inv models.Invoice
	if err := h.db.First(&inv, "id = ?", id).Error; err != nil {
		return invoiceWithItems{}, err
	}
	items := make([]models.InvoiceItem, 0)
	if err := h.db.Where("invoice_id = ?", id).Find(&items).Error; err != nil {
		return invoiceWithItems{}, err
	}
	return invoiceWithItems{Invoice: inv, Items: items}, nil
}

// Delete removes the invoice with its items and payments.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, "id = ?", id).Error
	})
	if err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendEmail mails the invoice to the client and marks it sent.
func (h *InvoiceHandler) SendEmail(c *gin.Context) {
	var inv models.Invoice
	if err := h.db.Preload("Items").First(&inv, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Invoice")
			return
		}
		serverError(c, err)
		return
	}
	if inv.ClientEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Client email is required"})
		return
	}

	payments := make([]models.Payment, 0)
	if err := h.db.Where("invoice_id = ?", inv.ID).Find(&payments).Error; err != nil {
		serverError(c, err)
		return
	}

	settings, err := settingsMap(h.db)
	if err != nil {
		serverError(c, err)
		return
	}
	if settings["company_name"] == "" {
		settings["company_name"] = "Canvas Cartel"
	}

	state := ledger.Recompute(inv, inv.Items, payments)
	data := mailer.BuildInvoiceEmail(inv, inv.Items, state, settings)
	if err := h.mailer.SendInvoice(c.Request.Context(), data); err != nil {
		slog.Error("failed to send invoice email", "invoice", inv.InvoiceNumber, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send email: " + err.Error()})
		return
	}

	now := time.Now()
	if err := h.db.Model(&models.Invoice{}).Where("id = ?", inv.ID).Updates(map[string]any{
		"status":  string(ledger.StatusSent),
		"sent_at": &now,
	}).Error; err != nil {
		serverError(c, err)
		return
	}

	h.activity.Record("invoice_sent",
		fmt.Sprintf("Invoice %s sent to %s", inv.InvoiceNumber, inv.ClientEmail),
		"invoice", inv.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Invoice sent successfully"})
}
