package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WebhookHandler struct {
	db       *gorm.DB
	activity *ActivityRecorder
}

func NewWebhookHandler(db *gorm.DB, activity *ActivityRecorder) *WebhookHandler {
	return &WebhookHandler{db: db, activity: activity}
}

func (h *WebhookHandler) List(c *gin.Context) {
	webhooks := make([]models.Webhook, 0)
	if err := h.db.Order("created_at desc").Find(&webhooks).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, webhooks)
}

func (h *WebhookHandler) Create(c *gin.Context) {
	var webhook models.Webhook
	if err := c.ShouldBindJSON(&webhook); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.db.Create(&webhook).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, webhook)
}

func (h *WebhookHandler) Update(c *gin.Context) {
	var webhook models.Webhook
	if err := h.db.First(&webhook, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Webhook")
			return
		}
		serverError(c, err)
		return
	}
	id, createdAt := webhook.ID, webhook.CreatedAt
	if err := c.ShouldBindJSON(&webhook); err != nil {
		badRequest(c, err)
		return
	}
	webhook.ID, webhook.CreatedAt = id, createdAt
	if err := h.db.Save(&webhook).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, webhook)
}

func (h *WebhookHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.Webhook{}, "id = ?", c.Param("id")).Error; err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// n8nLeadPayload accepts the field aliases n8n workflows commonly emit,
// alongside the canonical names.
type n8nLeadPayload struct {
	Name               string            `json:"name"`
	Email              string            `json:"email"`
	Phone              string            `json:"phone"`
	PhoneNumber        string            `json:"phoneNumber"`
	Company            string            `json:"company"`
	CompanyName        string            `json:"companyName"`
	Category           string            `json:"category"`
	City               string            `json:"city"`
	Country            string            `json:"country"`
	Address            string            `json:"address"`
	Website            string            `json:"website"`
	Linkedin           string            `json:"linkedin"`
	Facebook           string            `json:"facebook"`
	Instagram          string            `json:"instagram"`
	Description        string            `json:"description"`
	BusinessHours      string            `json:"businessHours"`
	LeadQualityScore   *int              `json:"leadQualityScore"`
	QualityReasoning   string            `json:"qualityReasoning"`
	SocialSignals      string            `json:"socialSignals"`
	GrowthSignals      string            `json:"growthSignals"`
	Source             string            `json:"source"`
	Notes              string            `json:"notes"`
	InterestedServices string            `json:"interestedServices"`
	Value              int64             `json:"value"`
	Tags               models.StringList `json:"tags"`
}

// N8NIntake receives a lead pushed by an external n8n workflow. The webhook id
// in the path must match a registered, active webhook.
func (h *WebhookHandler) N8NIntake(c *gin.Context) {
	var webhook models.Webhook
	if err := h.db.First(&webhook, "id = ?", c.Param("webhookId")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Webhook")
			return
		}
		serverError(c, err)
		return
	}
	if !webhook.Active() {
		c.JSON(http.StatusForbidden, gin.H{"message": "Webhook is inactive"})
		return
	}

	var payload n8nLeadPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err)
		return
	}
	if payload.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required"})
		return
	}

	phone := payload.Phone
	if phone == "" {
		phone = payload.PhoneNumber
	}
	company := payload.Company
	if company == "" {
		company = payload.CompanyName
	}
	source := payload.Source
	if source == "" {
		source = "n8n_webhook"
	}

	lead := models.Lead{
		Name:               payload.Name,
		Email:              payload.Email,
		Phone:              phone,
		Company:            company,
		Category:           payload.Category,
		City:               payload.City,
		Country:            payload.Country,
		Address:            payload.Address,
		Website:            payload.Website,
		Linkedin:           payload.Linkedin,
		Facebook:           payload.Facebook,
		Instagram:          payload.Instagram,
		Description:        payload.Description,
		BusinessHours:      payload.BusinessHours,
		LeadQualityScore:   payload.LeadQualityScore,
		QualityReasoning:   payload.QualityReasoning,
		SocialSignals:      payload.SocialSignals,
		GrowthSignals:      payload.GrowthSignals,
		Source:             source,
		Status:             "new",
		Notes:              payload.Notes,
		InterestedServices: payload.InterestedServices,
		Value:              payload.Value,
		Tags:               payload.Tags,
	}
	if err := h.db.Create(&lead).Error; err != nil {
		serverError(c, err)
		return
	}

	h.activity.Record("lead_created_webhook",
		fmt.Sprintf("Lead %q created via n8n webhook %q", lead.Name, webhook.Name),
		"lead", lead.ID)
	slog.Info("lead captured via webhook", "webhook", webhook.Name, "lead", lead.Name)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Lead created successfully",
		"lead":    lead,
	})
}
