package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlots() []SlotWindow {
	return []SlotWindow{
		{Name: "Morning", StartTime: "07:00", EndTime: "10:00", Capacity: 2, CutoffHours: 1},
		{Name: "Afternoon", StartTime: "12:00", EndTime: "15:00", Capacity: 2, CutoffHours: 2},
		{Name: "Evening", StartTime: "17:00", EndTime: "20:00", Capacity: 2, CutoffHours: 2},
	}
}

func testResolver(t *testing.T, now time.Time) *Resolver {
	return &Resolver{Loc: kolkata(t), Now: func() time.Time { return now }}
}

func noBookings(time.Time, string) (int, error) { return 0, nil }

func TestAvailableSlotsForAllOpen(t *testing.T) {
	loc := kolkata(t)
	r := testResolver(t, time.Date(2025, 6, 1, 9, 0, 0, 0, loc))
	date := time.Date(2025, 6, 5, 0, 0, 0, 0, loc)

	got, err := r.AvailableSlotsFor(testSlots(), ProductConstraints{}, date, noBookings)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, st := range got {
		assert.True(t, st.IsAvailable, st.Slot.Name)
		assert.Empty(t, st.Reason)
	}
}

func TestBlackoutDateWinsOverEverything(t *testing.T) {
	loc := kolkata(t)
	r := testResolver(t, time.Date(2025, 6, 1, 9, 0, 0, 0, loc))
	date := time.Date(2025, 6, 5, 0, 0, 0, 0, loc)
	pc := ProductConstraints{
		BlackoutDates: []time.Time{date},
		// A whitelist that would also block; blackout must be reported.
		AllowedSlots: []string{"nonexistent"},
	}

	got, err := r.AvailableSlotsFor(testSlots(), pc, date, noBookings)
	require.NoError(t, err)
	for _, st := range got {
		assert.False(t, st.IsAvailable)
		assert.Equal(t, ReasonBlackoutDate, st.Reason)
	}
}

func TestCutoffReportedBeforeWhitelist(t *testing.T) {
	loc := kolkata(t)
	// Same day, 11:00: Morning's cutoff (06:00) has passed.
	r := testResolver(t, time.Date(2025, 6, 1, 11, 0, 0, 0, loc))
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)
	pc := ProductConstraints{AllowedSlots: []string{"Evening"}}

	got, err := r.AvailableSlotsFor(testSlots(), pc, date, noBookings)
	require.NoError(t, err)

	assert.False(t, got[0].IsAvailable)
	assert.Contains(t, got[0].Reason, "1 hour(s)")
	// Afternoon passed cutoff too (12:00 - 2h = 10:00 < 11:00).
	assert.False(t, got[1].IsAvailable)
	// Evening (cutoff 15:00) is whitelisted and open.
	assert.True(t, got[2].IsAvailable)
}

func TestWhitelistBlocksOtherSlots(t *testing.T) {
	loc := kolkata(t)
	r := testResolver(t, time.Date(2025, 6, 1, 9, 0, 0, 0, loc))
	date := time.Date(2025, 6, 5, 0, 0, 0, 0, loc)
	pc := ProductConstraints{AllowedSlots: []string{"Morning"}}

	got, err := r.AvailableSlotsFor(testSlots(), pc, date, noBookings)
	require.NoError(t, err)
	assert.True(t, got[0].IsAvailable)
	assert.Equal(t, ReasonNotForSlot, got[1].Reason)
	assert.Equal(t, ReasonNotForSlot, got[2].Reason)
}

func TestDateBlockAppliesOnlyToItsDate(t *testing.T) {
	loc := kolkata(t)
	r := testResolver(t, time.Date(2025, 6, 1, 9, 0, 0, 0, loc))
	blocked := time.Date(2025, 6, 5, 0, 0, 0, 0, loc)
	pc := ProductConstraints{DateBlocks: []DateBlock{{Date: blocked, SlotName: "Morning", Reason: "Stocktake"}}}

	got, err := r.AvailableSlotsFor(testSlots(), pc, blocked, noBookings)
	require.NoError(t, err)
	assert.False(t, got[0].IsAvailable)
	assert.Equal(t, "Stocktake", got[0].Reason)
	assert.True(t, got[1].IsAvailable)

	got, err = r.AvailableSlotsFor(testSlots(), pc, blocked.AddDate(0, 0, 1), noBookings)
	require.NoError(t, err)
	assert.True(t, got[0].IsAvailable)
}

func TestDayRuleBlocksWeekday(t *testing.T) {
	loc := kolkata(t)
	r := testResolver(t, time.Date(2025, 6, 1, 9, 0, 0, 0, loc))
	// 2025-06-05 is a Thursday.
	date := time.Date(2025, 6, 5, 0, 0, 0, 0, loc)
	pc := ProductConstraints{DayBlocks: []DayBlock{{Day: time.Thursday, SlotNames: []string{"Evening"}, Reason: "No evening van on Thursdays"}}}

	got, err := r.AvailableSlotsFor(testSlots(), pc, date, noBookings)
	require.NoError(t, err)
	assert.True(t, got[0].IsAvailable)
	assert.True(t, got[1].IsAvailable)
	assert.False(t, got[2].IsAvailable)
	assert.Equal(t, "No evening van on Thursdays", got[2].Reason)
}

func TestCapacityFullSlot(t *testing.T) {
	// Scenario: Morning capacity 2, two bookings already exist for
	// 2025-06-01, so the third check reports the slot full.
	loc := kolkata(t)
	r := testResolver(t, time.Date(2025, 5, 30, 9, 0, 0, 0, loc))
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)

	booked := func(_ time.Time, name string) (int, error) {
		if name == "Morning" {
			return 2, nil
		}
		return 0, nil
	}

	got, err := r.AvailableSlotsFor(testSlots(), ProductConstraints{}, date, booked)
	require.NoError(t, err)
	assert.False(t, got[0].IsAvailable)
	assert.Equal(t, ReasonSlotFull, got[0].Reason)
	assert.Equal(t, 2, got[0].Booked)
	assert.True(t, got[1].IsAvailable)
}

func TestNeverAvailableWhenBookedAtCapacity(t *testing.T) {
	loc := kolkata(t)
	r := testResolver(t, time.Date(2025, 5, 30, 9, 0, 0, 0, loc))
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, loc)

	for n := 2; n < 6; n++ {
		booked := func(time.Time, string) (int, error) { return n, nil }
		got, err := r.AvailableSlotsFor(testSlots(), ProductConstraints{}, date, booked)
		require.NoError(t, err)
		for _, st := range got {
			assert.False(t, st.IsAvailable, "booked=%d slot=%s", n, st.Slot.Name)
		}
	}
}

func TestResolverIsIdempotent(t *testing.T) {
	loc := kolkata(t)
	r := testResolver(t, time.Date(2025, 6, 1, 9, 0, 0, 0, loc))
	date := time.Date(2025, 6, 5, 0, 0, 0, 0, loc)
	pc := ProductConstraints{AllowedSlots: []string{"Morning", "Evening"}}

	first, err := r.AvailableSlotsFor(testSlots(), pc, date, noBookings)
	require.NoError(t, err)
	second, err := r.AvailableSlotsFor(testSlots(), pc, date, noBookings)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCommonAvailableSlots(t *testing.T) {
	slots := testSlots()
	perProduct := [][]DayBlock{
		{{Day: time.Monday, SlotNames: []string{"Morning"}}},
		{{Day: time.Monday, SlotNames: []string{"Evening"}}, {Day: time.Friday, SlotNames: []string{"Morning", "Afternoon"}}},
	}

	got := CommonAvailableSlots(slots, perProduct)

	assert.Equal(t, []string{"Afternoon"}, got["Monday"])
	assert.Equal(t, []string{"Evening"}, got["Friday"])
	assert.Equal(t, []string{"Morning", "Afternoon", "Evening"}, got["Sunday"])
	assert.Len(t, got, 7)
}
