package models

import "time"

// Invoice carries the client identity, the discount/tax policy and the
// derived financial state. Subtotal, Total, AmountPaid and Status are never
// accepted from the client once items or payments exist; they are recomputed
// by the ledger whenever items or payments change.
type Invoice struct {
	Base
	InvoiceNumber string        `json:"invoiceNumber" gorm:"uniqueIndex;size:40"`
	ClientName    string        `json:"clientName" binding:"required"`
	ClientEmail   string        `json:"clientEmail"`
	ClientPhone   string        `json:"clientPhone"`
	ClientAddress string        `json:"clientAddress"`
	Subtotal      int64         `json:"subtotal"`
	DiscountType  string        `json:"discountType" gorm:"default:'none'"`
	DiscountValue float64       `json:"discountValue" binding:"gte=0"`
	TaxPercentage float64       `json:"taxPercentage" binding:"gte=0"`
	Total         int64         `json:"total"`
	AmountPaid    int64         `json:"amountPaid"`
	Status        string        `json:"status" gorm:"default:'draft'"`
	Notes         string        `json:"notes"`
	DueDate       *time.Time    `json:"dueDate"`
	SentAt        *time.Time    `json:"sentAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Items         []InvoiceItem `json:"items,omitempty" gorm:"foreignKey:InvoiceID"`
}

// InvoiceItem is one line of an invoice. Amount is always Quantity times Rate
// in minor units; the server recomputes it and ignores any client-sent value.
type InvoiceItem struct {
	Base
	InvoiceID   string `json:"invoiceId" gorm:"index;size:36"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity" binding:"gte=1"`
	Rate        int64  `json:"rate" binding:"gte=0"`
	Amount      int64  `json:"amount"`
}
