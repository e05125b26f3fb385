package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kolkata(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	return loc
}

func morningSlot() SlotWindow {
	return SlotWindow{Name: "Morning", StartTime: "07:00", EndTime: "10:00", Capacity: 20, CutoffHours: 1}
}

func TestIsBookableFutureDateIgnoresCutoff(t *testing.T) {
	loc := kolkata(t)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)

	// Even one second before midnight the next civil day stays bookable.
	for _, now := range []time.Time{
		time.Date(2025, 6, 1, 0, 0, 0, 0, loc),
		time.Date(2025, 6, 1, 23, 59, 59, 0, loc),
	} {
		ok, reason := IsBookable(morningSlot(), date, now, loc)
		assert.True(t, ok, "now=%s", now)
		assert.Empty(t, reason)
	}
}

func TestIsBookablePastDateNeverBookable(t *testing.T) {
	loc := kolkata(t)
	date := time.Date(2025, 5, 31, 0, 0, 0, 0, loc)
	now := time.Date(2025, 6, 1, 0, 0, 1, 0, loc)

	ok, reason := IsBookable(morningSlot(), date, now, loc)
	assert.False(t, ok)
	assert.Contains(t, reason, "past date")
}

func TestIsBookableSameDayCutoffBoundary(t *testing.T) {
	loc := kolkata(t)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	cutoff := time.Date(2025, 6, 1, 6, 0, 0, 0, loc) // 07:00 minus 1h

	ok, _ := IsBookable(morningSlot(), date, cutoff, loc)
	assert.True(t, ok, "boundary is inclusive at the cutoff instant")

	ok, reason := IsBookable(morningSlot(), date, cutoff.Add(time.Nanosecond), loc)
	assert.False(t, ok)
	assert.Contains(t, reason, "1 hour(s)")
}

func TestIsBookableSameDayAfterCutoff(t *testing.T) {
	// Scenario: today is 2025-06-01 10:00 local, Morning starts 07:00 with a
	// one-hour cutoff, so booking closed at 06:00.
	loc := kolkata(t)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, loc)

	ok, reason := IsBookable(morningSlot(), date, now, loc)
	assert.False(t, ok)
	assert.Contains(t, reason, "1 hour(s)")
}

func TestIsBookableNowInOtherZoneIsNormalized(t *testing.T) {
	loc := kolkata(t)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	// 2025-06-01 00:30 UTC == 06:00 IST, exactly the cutoff instant.
	now := time.Date(2025, 6, 1, 0, 30, 0, 0, time.UTC)

	ok, _ := IsBookable(morningSlot(), date, now, loc)
	assert.True(t, ok)

	ok, _ = IsBookable(morningSlot(), date, now.Add(time.Minute), loc)
	assert.False(t, ok)
}

func TestParseClockRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "7", "25:00", "07:61", "ab:cd"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}

	h, m, err := ParseClock("07:30")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 30, m)
}

func TestDayWindowCoversWholeCivilDay(t *testing.T) {
	loc := kolkata(t)
	start, end := DayWindow(time.Date(2025, 6, 1, 15, 4, 5, 0, loc), loc)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, loc), end)
}
