package app

import (
	"fmt"
	"strconv"
	"time"

	"chalet_booking/internal/domain"
)

// daysIn returns the number of days in year/month (day 0 of the next month).
func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// buildDays merges a month's reservations and price overrides into one
// DayState per calendar day, ascending.
//
// Reservations are expected pre-filtered to those whose check-in falls in the
// requested month, so a stay spanning a month boundary never shows in the
// later month's view. The first reservation containing a day wins; its rate
// replaces the override-derived price only when non-zero. Date containment is
// a plain string comparison, which is correct for well-formed ISO dates and
// as permissive as the store itself for anything else.
func buildDays(year, month int, reservations []domain.Reservation, overrides map[string]float64) []domain.DayState {
	n := daysIn(year, month)
	out := make([]domain.DayState, 0, n)
	for day := 1; day <= n; day++ {
		iso := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		ds := domain.DayState{Date: iso, Status: domain.DayAvailable, Price: overrides[iso]}
		for _, r := range reservations {
			if r.Checkin <= iso && iso <= r.Checkout {
				if r.Status == domain.StatusReserved {
					ds.Status = domain.DayOccupied
				} else {
					ds.Status = domain.DayBlocked
				}
				if r.DailyRate != 0 {
					ds.Price = r.DailyRate
				}
				break
			}
		}
		out = append(out, ds)
	}
	return out
}

func calendarKey(unit string, year, month int) string {
	return fmt.Sprintf("calendar:%s:%04d:%02d", unit, year, month)
}

// monthOf extracts (year, month) from the YYYY-MM prefix of an ISO date.
// It accepts exactly the strings the storage month filter would match, so
// cache invalidation and the month fetch stay in agreement.
func monthOf(date string) (int, int, bool) {
	if len(date) < 7 || date[4] != '-' {
		return 0, 0, false
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(date[5:7])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m, true
}
