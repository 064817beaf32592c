package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/canvascartel/crm-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	settingsCacheKey = "settings:map"
	settingsCacheTTL = 5 * time.Minute
)

// SettingsHandler serves the company profile as a flat key/value map. Reads
// go through redis when a client is configured; writes invalidate the cache.
type SettingsHandler struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewSettingsHandler(db *gorm.DB, rdb *redis.Client) *SettingsHandler {
	return &SettingsHandler{db: db, rdb: rdb}
}

func (h *SettingsHandler) GetMap(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, settingsCacheKey).Result(); err == nil {
			var m map[string]string
			if json.Unmarshal([]byte(cached), &m) == nil {
				c.JSON(http.StatusOK, m)
				return
			}
		}
	}

	m, err := settingsMap(h.db)
	if err != nil {
		serverError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(m); err == nil {
			if err := h.rdb.Set(ctx, settingsCacheKey, data, settingsCacheTTL).Err(); err != nil {
				slog.Warn("failed to cache settings", "error", err)
			}
		}
	}

	c.JSON(http.StatusOK, m)
}

// Upsert takes a flat map and writes each pair, inserting or updating by key.
func (h *SettingsHandler) Upsert(c *gin.Context) {
	var incoming map[string]string
	if err := c.ShouldBindJSON(&incoming); err != nil {
		badRequest(c, err)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range incoming {
			setting := models.Setting{Key: key, Value: value}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&setting).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		serverError(c, err)
		return
	}

	if h.rdb != nil {
		if err := h.rdb.Del(context.Background(), settingsCacheKey).Err(); err != nil {
			slog.Warn("failed to invalidate settings cache", "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// settingsMap loads every setting row into a flat map. Display defaults for
// the invoice email (currency symbol, company name) live in the mailer, not
// here, so the API returns only what was actually stored.
func settingsMap(db *gorm.DB) (map[string]string, error) {
	var settings []models.Setting
	if err := db.Find(&settings).Error; err != nil {
		return nil, err
	}
	m := make(map[string]string, len(settings))
	for _, s := range settings {
		if s.Value != "" {
			m[s.Key] = s.Value
		}
	}
	return m, nil
}
