package scheduling

import (
	"fmt"
	"time"
)

// SlotWindow is the scheduling view of a delivery slot definition.
type SlotWindow struct {
	ID          uint
	Name        string
	StartTime   string // "HH:MM"
	EndTime     string // "HH:MM"
	Capacity    int
	CutoffHours int
}

// IsBookable decides whether a slot can still be booked for deliveryDate
// given the current instant. Rules:
//
//   - dates before today (civil date in loc) are never bookable
//   - dates after today are always bookable, no cutoff applies
//   - today is bookable iff now <= slot start minus CutoffHours
//     (the boundary is inclusive at the cutoff instant)
func IsBookable(slot SlotWindow, deliveryDate, now time.Time, loc *time.Location) (bool, string) {
	today := CivilDate(now, loc)
	day := CivilDate(deliveryDate, loc)

	if day.Before(today) {
		return false, "Cannot book a delivery slot for a past date."
	}
	if day.After(today) {
		return true, ""
	}

	hour, minute, err := ParseClock(slot.StartTime)
	if err != nil {
		return false, fmt.Sprintf("Slot %q has an invalid start time.", slot.Name)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc)
	cutoff := start.Add(-time.Duration(slot.CutoffHours) * time.Hour)

	if now.In(loc).After(cutoff) {
		return false, fmt.Sprintf("Booking for this slot closes %d hour(s) before it starts.", slot.CutoffHours)
	}
	return true, ""
}
