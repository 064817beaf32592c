package models

// Lead is a prospective client, either entered manually or captured through
// the n8n intake webhook. Quality scoring fields arrive pre-computed from the
// external automation; the backend never derives them.
type Lead struct {
	Base
	Name               string     `json:"name" binding:"required"`
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	Company            string     `json:"company"`
	Category           string     `json:"category"`
	City               string     `json:"city"`
	Country            string     `json:"country"`
	Address            string     `json:"address"`
	Website            string     `json:"website"`
	Linkedin           string     `json:"linkedin"`
	Facebook           string     `json:"facebook"`
	Instagram          string     `json:"instagram"`
	Description        string     `json:"description"`
	BusinessHours      string     `json:"businessHours"`
	LeadQualityScore   *int       `json:"leadQualityScore"`
	QualityReasoning   string     `json:"qualityReasoning"`
	SocialSignals      string     `json:"socialSignals"`
	GrowthSignals      string     `json:"growthSignals"`
	Source             string     `json:"source"`
	Status             string     `json:"status" gorm:"default:'new'"`
	Notes              string     `json:"notes"`
	InterestedServices string     `json:"interestedServices"`
	Value              int64      `json:"value"`
	CallOutcome        string     `json:"callOutcome"`
	Tags               StringList `json:"tags" gorm:"type:json"`
	AssignedTo         string     `json:"assignedTo"`
}
