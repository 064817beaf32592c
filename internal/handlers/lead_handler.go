package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LeadHandler struct {
	db       *gorm.DB
	activity *ActivityRecorder
	client   *http.Client
}

func NewLeadHandler(db *gorm.DB, activity *ActivityRecorder) *LeadHandler {
	return &LeadHandler{
		db:       db,
		activity: activity,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (h *LeadHandler) List(c *gin.Context) {
	leads := make([]models.Lead, 0)
	if err := h.db.Order("created_at desc").Find(&leads).Error; err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) Get(c *gin.Context) {
	var lead models.Lead
	if err := h.db.First(&lead, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Lead")
			return
		}
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Create(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.db.Create(&lead).Error; err != nil {
		badRequest(c, err)
		return
	}
	h.activity.Record("lead_created", fmt.Sprintf("New lead created: %s", lead.Name), "lead", lead.ID)
	c.JSON(http.StatusCreated, lead)
}

// Update merges the request body over the stored record, so a partial body
// only touches the fields it names.
func (h *LeadHandler) Update(c *gin.Context) {
	var lead models.Lead
	if err := h.db.First(&lead, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Lead")
			return
		}
		serverError(c, err)
		return
	}
	id, createdAt := lead.ID, lead.CreatedAt
	if err := c.ShouldBindJSON(&lead); err != nil {
		badRequest(c, err)
		return
	}
	lead.ID, lead.CreatedAt = id, createdAt
	if err := h.db.Save(&lead).Error; err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) Delete(c *gin.Context) {
	if err := h.db.Delete(&models.Lead{}, "id = ?", c.Param("id")).Error; err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendToN8N relays a lead as JSON to a caller-supplied n8n webhook URL. A
// non-2xx downstream answer surfaces as 502 with the downstream body.
func (h *LeadHandler) SendToN8N(c *gin.Context) {
	var lead models.Lead
	if err := h.db.First(&lead, "id = ?", c.Param("id")).Error; err != nil {
		if isNotFound(err) {
			notFound(c, "Lead")
			return
		}
		serverError(c, err)
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Webhook URL is required"})
		return
	}
	if !strings.HasPrefix(req.URL, "https://") && !strings.HasPrefix(req.URL, "http://") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Webhook URL must start with http:// or https://"})
		return
	}

	payload := map[string]any{
		"name":               lead.Name,
		"companyName":        lead.Company,
		"category":           lead.Category,
		"phoneNumber":        lead.Phone,
		"email":              lead.Email,
		"city":               lead.City,
		"country":            lead.Country,
		"address":            lead.Address,
		"website":            lead.Website,
		"linkedin":           lead.Linkedin,
		"facebook":           lead.Facebook,
		"instagram":          lead.Instagram,
		"description":        lead.Description,
		"businessHours":      lead.BusinessHours,
		"leadQualityScore":   lead.LeadQualityScore,
		"qualityReasoning":   lead.QualityReasoning,
		"socialSignals":      lead.SocialSignals,
		"growthSignals":      lead.GrowthSignals,
		"source":             lead.Source,
		"status":             lead.Status,
		"notes":              lead.Notes,
		"interestedServices": lead.InterestedServices,
		"value":              lead.Value,
		"callOutcome":        lead.CallOutcome,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		serverError(c, err)
		return
	}

	outReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, req.URL, bytes.NewReader(body))
	if err != nil {
		badRequest(c, err)
		return
	}
	outReq.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(outReq)
	if err != nil {
		slog.Warn("send to n8n failed", "lead_id", lead.ID, "error", err)
		serverError(c, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.JSON(http.StatusBadGateway, gin.H{
			"message": fmt.Sprintf("Webhook returned %d: %s", resp.StatusCode, string(text)),
		})
		return
	}

	h.activity.Record("lead_sent_webhook", fmt.Sprintf("Lead %q sent to n8n webhook", lead.Name), "lead", lead.ID)
	slog.Info("lead sent to n8n webhook", "lead", lead.Name, "url", req.URL)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Lead sent to n8n webhook successfully"})
}
