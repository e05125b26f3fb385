package scheduling

import "time"

// Reasons reported by the resolver, in rule order.
const (
	ReasonBlackoutDate = "Product unavailable on this date."
	ReasonNotForSlot   = "Not available for this product."
	ReasonSlotFull     = "Slot full."
)

// DateBlock excludes one slot for one exact date.
type DateBlock struct {
	Date     time.Time
	SlotName string
	Reason   string
}

// DayBlock excludes a set of slots on one weekday.
type DayBlock struct {
	Day       time.Weekday
	SlotNames []string
	Reason    string
}

// ProductConstraints collects every per-product scheduling restriction.
type ProductConstraints struct {
	BlackoutDates []time.Time
	AllowedSlots  []string // whitelist; empty means all slots
	DateBlocks    []DateBlock
	DayBlocks     []DayBlock
}

// SlotStatus is the availability verdict for one slot on one date.
type SlotStatus struct {
	Slot        SlotWindow
	Booked      int
	IsAvailable bool
	Reason      string
}

// BookedCountFunc returns the number of live bookings for (date, slot name).
type BookedCountFunc func(date time.Time, slotName string) (int, error)

// Resolver combines the slot catalog with per-product restrictions. The
// clock and timezone are injected so results are reproducible in tests.
type Resolver struct {
	Loc *time.Location
	Now func() time.Time
}

// AvailableSlotsFor evaluates every slot for one product on one date.
// Rule order, first match wins: blackout date, cutoff, whitelist,
// date-specific restriction, day-of-week rule, capacity.
func (r *Resolver) AvailableSlotsFor(slots []SlotWindow, pc ProductConstraints, date time.Time, booked BookedCountFunc) ([]SlotStatus, error) {
	now := r.Now()
	day := CivilDate(date, r.Loc)
	out := make([]SlotStatus, 0, len(slots))

	for _, slot := range slots {
		st := SlotStatus{Slot: slot}
		st.IsAvailable, st.Reason = r.evaluate(slot, pc, day, now, booked, &st.Booked)
		out = append(out, st)
	}
	return out, nil
}

func (r *Resolver) evaluate(slot SlotWindow, pc ProductConstraints, day, now time.Time, booked BookedCountFunc, count *int) (bool, string) {
	for _, b := range pc.BlackoutDates {
		if CivilDate(b, r.Loc).Equal(day) {
			return false, ReasonBlackoutDate
		}
	}

	if ok, reason := IsBookable(slot, day, now, r.Loc); !ok {
		return false, reason
	}

	if len(pc.AllowedSlots) > 0 && !contains(pc.AllowedSlots, slot.Name) {
		return false, ReasonNotForSlot
	}

	for _, db := range pc.DateBlocks {
		if db.SlotName == slot.Name && CivilDate(db.Date, r.Loc).Equal(day) {
			reason := db.Reason
			if reason == "" {
				reason = ReasonNotForSlot
			}
			return false, reason
		}
	}

	for _, db := range pc.DayBlocks {
		if db.Day == day.Weekday() && contains(db.SlotNames, slot.Name) {
			reason := db.Reason
			if reason == "" {
				reason = ReasonNotForSlot
			}
			return false, reason
		}
	}

	n, err := booked(day, slot.Name)
	if err != nil {
		return false, "Could not check slot capacity."
	}
	*count = n
	if n >= slot.Capacity {
		return false, ReasonSlotFull
	}
	return true, ""
}

// CommonAvailableSlots answers "could these products ever share a slot on
// this weekday": for each weekday it starts from the full slot set and
// subtracts any slot a day rule of any product blocks. Capacity and cutoff
// are deliberately not applied here.
func CommonAvailableSlots(slots []SlotWindow, perProduct [][]DayBlock) map[string][]string {
	out := make(map[string][]string, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		blocked := map[string]bool{}
		for _, rules := range perProduct {
			for _, r := range rules {
				if r.Day != d {
					continue
				}
				for _, name := range r.SlotNames {
					blocked[name] = true
				}
			}
		}
		names := make([]string, 0, len(slots))
		for _, s := range slots {
			if !blocked[s.Name] {
				names = append(names, s.Name)
			}
		}
		out[d.String()] = names
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
