package models

// Setting is one key/value pair of the company profile (name, email, currency
// symbol and so on) used when rendering outbound invoices.
type Setting struct {
	Base
	Key   string `json:"key" gorm:"uniqueIndex;size:120"`
	Value string `json:"value"`
}
