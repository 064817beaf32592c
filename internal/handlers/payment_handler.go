package handlers

import (
	"fmt"
	"net/http"

	"github.com/canvascartel/crm-backend/internal/ledger"
	"github.com/canvascartel/crm-backend/internal/money"
	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PaymentHandler struct {
	db       *gorm.DB
	activity *ActivityRecorder
}

func NewPaymentHandler(db *gorm.DB, activity *ActivityRecorder) *PaymentHandler {
	return &PaymentHandler{db: db, activity: activity}
}

func (h *PaymentHandler) List(c *gin.Context) {
	payments := make([]models.Payment, 0)
	if err := h.db.Order("created_at desc").Find(&payments).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	payments := make([]models.Payment, 0)
	if err := h.db.Where("invoice_id = ?", c.Param("invoiceId")).
		Order("created_at asc").Find(&payments).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Create records a payment and recomputes the invoice in one transaction. A
// payment against an unknown invoice is a 404, never an orphan row.
func (h *PaymentHandler) Create(c *gin.Context) {
	var payment models.Payment
	if err := c.ShouldBindJSON(&payment); err != nil {
		badRequest(c, err)
		return
	}

	var invoiceNumber string
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, "id = ?", payment.InvoiceID).Error; err != nil {
			return err
		}
		invoiceNumber = inv.InvoiceNumber
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return applyLedger(tx, payment.InvoiceID, "")
	})
	if err != nil {
		if isNotFound(err) {
			notFound(c, "Invoice")
			return
		}
		serverError(c, err)
		return
	}

	h.activity.Record("payment_received",
		fmt.Sprintf("Payment of ₹%s received for invoice %s", money.Format(payment.Amount), invoiceNumber),
		"payment", payment.ID)
	c.JSON(http.StatusCreated, payment)
}

// Update merges the body over the stored payment; the invoice reference is
// immutable. The invoice keeps its current status as the zero-paid fallback.
func (h *PaymentHandler) Update(c *gin.Context) {
	var payment models.Payment
	if err := h.db.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Payment")
			return
		}
		serverError(c, err)
		return
	}
	id, createdAt, invoiceID := payment.ID, payment.CreatedAt, payment.InvoiceID
	if err := c.ShouldBindJSON(&payment); err != nil {
		badRequest(c, err)
		return
	}
	payment.ID, payment.CreatedAt, payment.InvoiceID = id, createdAt, invoiceID

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		return applyLedger(tx, payment.InvoiceID, "")
	})
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Delete removes a payment and recomputes the invoice. When the deleted
// payment was the last one the invoice falls back to sent, regardless of what
// it was before the first payment arrived. Deleting an unknown payment is a
// no-op 204.
func (h *PaymentHandler) Delete(c *gin.Context) {
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.First(&payment, "id = ?", c.Param("id")).Error; err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&models.Payment{}, "id = ?", payment.ID).Error; err != nil {
			return err
		}
		return applyLedger(tx, payment.InvoiceID, ledger.StatusSent)
	})
	if err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
