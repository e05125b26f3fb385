package slotControllers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/RG-basket/rgbasket-sub001/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.DeliverySlot{}))
	return db
}

func TestSeedDefaultSlotsIsIdempotent(t *testing.T) {
	db := testDB(t)

	require.NoError(t, SeedDefaultSlots(db))
	require.NoError(t, SeedDefaultSlots(db))

	for _, name := range []string{"Morning", "Afternoon", "Evening"} {
		var n int64
		require.NoError(t, db.Model(&models.DeliverySlot{}).Where("name = ?", name).Count(&n).Error)
		assert.EqualValues(t, 1, n, name)
	}
}

func TestDedupeSlotWithNoRows(t *testing.T) {
	db := testDB(t)

	// The seed retry path can reach dedupe when no row exists at all.
	assert.NoError(t, dedupeSlot(db, "No-Such-Slot"))
}
