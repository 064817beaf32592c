package handlers

import (
	"net/http"

	"github.com/canvascartel/crm-backend/internal/ledger"
	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type InvoiceItemHandler struct {
	db *gorm.DB
}

func NewInvoiceItemHandler(db *gorm.DB) *InvoiceItemHandler {
	return &InvoiceItemHandler{db: db}
}

// Create appends a line item to an existing invoice and recomputes its
// financial state in the same transaction.
func (h *InvoiceItemHandler) Create(c *gin.Context) {
	var item models.InvoiceItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, err)
		return
	}
	if item.InvoiceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invoiceId is required"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.First(&inv, "id = ?", item.InvoiceID).Error; err != nil {
			return err
		}
		item.Amount = ledger.ItemAmount(item.Quantity, item.Rate)
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return applyLedger(tx, item.InvoiceID, "")
	})
	if err != nil {
		if isNotFound(err) {
			notFound(c, "Invoice")
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// Delete removes a line item and recomputes the owning invoice. Deleting an
// item that does not exist is a no-op 204.
func (h *InvoiceItemHandler) Delete(c *gin.Context) {
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var item models.InvoiceItem
		if err := tx.First(&item, "id = ?", c.Param("id")).Error; err != nil {
			if isNotFound(err) {
				return nil
			}
			return err
		}
		if err := tx.Delete(&models.InvoiceItem{}, "id = ?", item.ID).Error; err != nil {
			return err
		}
		return applyLedger(tx, item.InvoiceID, "")
	})
	if err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
