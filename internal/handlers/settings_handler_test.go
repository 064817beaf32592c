package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsUpsertAndGet(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/settings", map[string]string{
		"company_name":  "Canvas Cartel",
		"company_email": "hello@canvascartel.in",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success")

	w = doJSON(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var m map[string]string
	decode(t, w, &m)
	assert.Equal(t, "Canvas Cartel", m["company_name"])
	assert.Equal(t, "hello@canvascartel.in", m["company_email"])

	// Upserting an existing key overwrites, never duplicates.
	w = doJSON(t, r, http.MethodPost, "/api/settings", map[string]string{
		"company_email": "accounts@canvascartel.in",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &m)
	assert.Equal(t, "Canvas Cartel", m["company_name"])
	assert.Equal(t, "accounts@canvascartel.in", m["company_email"])
}

func TestSettingsGetEmpty(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var m map[string]string
	decode(t, w, &m)
	assert.Empty(t, m)
}
