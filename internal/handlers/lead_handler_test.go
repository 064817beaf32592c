package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createLead(t *testing.T, r *gin.Engine, name string) models.Lead {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/leads", map[string]any{
		"name":    name,
		"email":   "lead@example.com",
		"company": "Example Co",
		"value":   5000000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var lead models.Lead
	decode(t, w, &lead)
	return lead
}

func TestLeadCRUD(t *testing.T) {
	r, _ := newTestRouter(t)
	lead := createLead(t, r, "Rajesh Kumar")
	assert.Equal(t, "new", lead.Status)
	assert.NotEmpty(t, lead.ID)

	// Partial update leaves untouched fields alone.
	w := doJSON(t, r, http.MethodPatch, "/api/leads/"+lead.ID, map[string]any{
		"status": "contacted",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Lead
	decode(t, w, &updated)
	assert.Equal(t, "contacted", updated.Status)
	assert.Equal(t, "Rajesh Kumar", updated.Name)
	assert.Equal(t, int64(5000000), updated.Value)

	w = doJSON(t, r, http.MethodDelete, "/api/leads/"+lead.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/leads/"+lead.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendToN8NRelaysLead(t *testing.T) {
	r, _ := newTestRouter(t)
	lead := createLead(t, r, "Priya Sharma")

	var received map[string]any
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	w := doJSON(t, r, http.MethodPost, "/api/leads/"+lead.ID+"/send-to-n8n", map[string]any{
		"url": backend.URL,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Priya Sharma", received["name"])
	assert.Equal(t, "Example Co", received["companyName"])
}

func TestSendToN8NDownstreamFailure(t *testing.T) {
	r, _ := newTestRouter(t)
	lead := createLead(t, r, "Amit Patel")

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "workflow disabled", http.StatusInternalServerError)
	}))
	defer backend.Close()

	w := doJSON(t, r, http.MethodPost, "/api/leads/"+lead.ID+"/send-to-n8n", map[string]any{
		"url": backend.URL,
	})
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Webhook returned 500")
}

func TestSendToN8NValidatesURL(t *testing.T) {
	r, _ := newTestRouter(t)
	lead := createLead(t, r, "Sneha Reddy")

	w := doJSON(t, r, http.MethodPost, "/api/leads/"+lead.ID+"/send-to-n8n", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/leads/"+lead.ID+"/send-to-n8n", map[string]any{
		"url": "ftp://example.com/hook",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSendToN8NMissingLead(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(t, r, http.MethodPost, "/api/leads/missing/send-to-n8n", map[string]any{
		"url": "https://example.com/hook",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
