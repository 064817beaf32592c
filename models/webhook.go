package models

// Webhook is a registered n8n intake endpoint. Inactive hooks reject incoming
// payloads with 403.
type Webhook struct {
	Base
	Name     string `json:"name" binding:"required"`
	IsActive *bool  `json:"isActive" gorm:"default:true"`
}

// Active treats a missing flag as enabled, matching the column default.
func (w *Webhook) Active() bool {
	return w.IsActive == nil || *w.IsActive
}
