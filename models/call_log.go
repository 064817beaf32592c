package models

type CallLog struct {
	Base
	LeadID      string `json:"leadId"`
	CalledBy    string `json:"calledBy"`
	Outcome     string `json:"outcome" binding:"required"`
	Duration    string `json:"duration"`
	Notes       string `json:"notes"`
	ScheduledAt string `json:"scheduledAt"`
}
