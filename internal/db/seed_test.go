package db

import (
	"fmt"
	"strings"
	"testing"

	"github.com/canvascartel/crm-backend/config"
	"github.com/canvascartel/crm-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	gdb, err := config.OpenDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	return gdb
}

func TestSeedPopulatesSampleData(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, Seed(gdb))

	var leads, contacts, deals, callLogs, tasks, activities, webhooks int64
	require.NoError(t, gdb.Model(&models.Lead{}).Count(&leads).Error)
	require.NoError(t, gdb.Model(&models.Contact{}).Count(&contacts).Error)
	require.NoError(t, gdb.Model(&models.Deal{}).Count(&deals).Error)
	require.NoError(t, gdb.Model(&models.CallLog{}).Count(&callLogs).Error)
	require.NoError(t, gdb.Model(&models.Task{}).Count(&tasks).Error)
	require.NoError(t, gdb.Model(&models.Activity{}).Count(&activities).Error)
	require.NoError(t, gdb.Model(&models.Webhook{}).Count(&webhooks).Error)

	assert.EqualValues(t, 5, leads)
	assert.EqualValues(t, 3, contacts)
	assert.EqualValues(t, 5, deals)
	assert.EqualValues(t, 5, callLogs)
	assert.EqualValues(t, 4, tasks)
	assert.EqualValues(t, 5, activities)
	assert.EqualValues(t, 1, webhooks)

	var hook models.Webhook
	require.NoError(t, gdb.First(&hook).Error)
	assert.Equal(t, "n8n Lead Capture", hook.Name)
	assert.True(t, hook.Active())

	// Call logs reference seeded leads, not dangling ids.
	var log models.CallLog
	require.NoError(t, gdb.First(&log, "outcome = ?", "picked_up").Error)
	var lead models.Lead
	require.NoError(t, gdb.First(&lead, "id = ?", log.LeadID).Error)
	assert.Equal(t, "Rajesh Kumar", lead.Name)
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, Seed(gdb))
	require.NoError(t, Seed(gdb))

	var leads int64
	require.NoError(t, gdb.Model(&models.Lead{}).Count(&leads).Error)
	assert.EqualValues(t, 5, leads)
}
