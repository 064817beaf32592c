package models

// Payment records money received against one invoice. Every create, update
// and delete retriggers the invoice ledger recomputation in the same
// transaction, keeping invoice.AmountPaid equal to the live payment sum.
type Payment struct {
	Base
	InvoiceID string `json:"invoiceId" gorm:"index;size:36" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	Method    string `json:"method"`
	Notes     string `json:"notes"`
}
