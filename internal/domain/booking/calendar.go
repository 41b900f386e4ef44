package booking

import (
	"sort"
	"time"
)

// FindConflicts returns the bookings overlapping r, ordered by start.
func FindConflicts(bookings []*Booking, r TimeRange) []*Booking {
	var conflicts []*Booking
	for _, b := range bookings {
		if b.Overlaps(r) {
			conflicts = append(conflicts, b)
		}
	}
	SortByStart(conflicts)
	return conflicts
}

func StartingIn(bookings []*Booking, p Period) []*Booking {
	var out []*Booking
	for _, b := range bookings {
		if p.Contains(b.Start()) {
			out = append(out, b)
		}
	}
	SortByStart(out)
	return out
}

func SortByStart(bookings []*Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Start().Equal(bookings[j].Start()) {
			return bookings[i].ID() < bookings[j].ID()
		}
		return bookings[i].Start().Before(bookings[j].Start())
	})
}

// ClinicDay describes the bookable hours of a day in UTC.
type ClinicDay struct {
	StartHour int
	EndHour   int
}

// FreeSlots walks the clinic day in slot-sized steps and returns up to limit
// ranges that overlap none of the given bookings.
func FreeSlots(day time.Time, hours ClinicDay, slot time.Duration, limit int, booked []*Booking) []TimeRange {
	if slot <= 0 || limit <= 0 {
		return nil
	}

	y, m, d := day.UTC().Date()
	open := time.Date(y, m, d, hours.StartHour, 0, 0, 0, time.UTC)
	closing := time.Date(y, m, d, hours.EndHour, 0, 0, 0, time.UTC)

	var free []TimeRange
	for cur := open; !cur.Add(slot).After(closing) && len(free) < limit; cur = cur.Add(slot) {
		candidate := TimeRange{start: cur, end: cur.Add(slot)}
		if len(FindConflicts(booked, candidate)) == 0 {
			free = append(free, candidate)
		}
	}
	return free
}
