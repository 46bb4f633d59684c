package circulation

import (
	"time"

	"github.com/rupam905/libdesk/internal/api"
)

// DailyFineRate is the flat per-day late fee in the system's currency unit.
// The backend applies the same rate; the client-side figure is advisory and
// the committed amount of record is whatever the server accepts.
const DailyFineRate = 10

// Fine computes the late fee for a return happening on actual against the
// planned return date. Partial days do not count.
func Fine(planned, actual time.Time) int {
	lateDays := int(actual.Sub(planned) / (24 * time.Hour))
	if lateDays <= 0 {
		return 0
	}
	return lateDays * DailyFineRate
}

// EstimateFine recomputes a provisional fine from wire-format date strings.
// When either date fails to parse the previous amount is returned unchanged,
// so a half-typed date never zeroes or corrupts the displayed figure.
func EstimateFine(plannedReturn, actualReturn string, previous int) int {
	planned, err := time.Parse(api.DateLayout, plannedReturn)
	if err != nil {
		return previous
	}
	actual, err := time.Parse(api.DateLayout, actualReturn)
	if err != nil {
		return previous
	}
	return Fine(planned, actual)
}
