package handlers

import (
	"fmt"
	"time"

	"github.com/canvascartel/crm-backend/internal/money"
	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// Export streams every invoice as an .xlsx attachment. Amounts are rendered
// as grouped decimal strings, not raw minor units.
func (h *InvoiceHandler) Export(c *gin.Context) {
	invoices := make([]models.Invoice, 0)
	if err := h.db.Order("created_at asc").Find(&invoices).Error; err != nil {
		serverError(c, err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Invoices"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Invoice #", "Client", "Email", "Subtotal", "Discount Type", "Discount Value", "Tax %", "Total", "Amount Paid", "Status", "Due Date", "Created"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, inv := range invoices {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), inv.InvoiceNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), inv.ClientName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), inv.ClientEmail)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), money.Format(inv.Subtotal))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), inv.DiscountType)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), inv.DiscountValue)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), inv.TaxPercentage)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), money.Format(inv.Total))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), money.Format(inv.AmountPaid))
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), inv.Status)
		if inv.DueDate != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), inv.DueDate.Format("02.01.2006"))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), inv.CreatedAt.Format("02.01.2006"))
	}

	fileName := fmt.Sprintf("invoices_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		serverError(c, err)
	}
}
