package workday

import (
	"time"

	"github.com/shopspring/decimal"
)

// Policy controls which weekend days are excluded from the working-day count.
type Policy string

const (
	PolicyNone                  Policy = "none"
	PolicySundayOnly            Policy = "sunday_only"
	PolicySaturdayAndSunday     Policy = "saturday_and_sunday"
	PolicyHalfSaturdayAndSunday Policy = "half_saturday_and_sunday"
)

func (p Policy) IsValid() bool {
	switch p {
	case PolicyNone, PolicySundayOnly, PolicySaturdayAndSunday, PolicyHalfSaturdayAndSunday:
		return true
	}
	return false
}

var half = decimal.NewFromFloat(0.5)

// NetWorkDays counts working days in [start, end] inclusive under the given
// weekend policy. Holidays are not this layer's concern; they are flagged on
// timesheets and handled at calculation time. Callers must ensure start <= end.
func NetWorkDays(start, end time.Time, policy Policy) decimal.Decimal {
	var totalDays, saturdays, sundays int64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		totalDays++
		switch d.Weekday() {
		case time.Saturday:
			saturdays++
		case time.Sunday:
			sundays++
		}
	}

	total := decimal.NewFromInt(totalDays)
	switch policy {
	case PolicySundayOnly:
		return total.Sub(decimal.NewFromInt(sundays))
	case PolicySaturdayAndSunday:
		return total.Sub(decimal.NewFromInt(saturdays)).Sub(decimal.NewFromInt(sundays))
	case PolicyHalfSaturdayAndSunday:
		return total.Sub(half.Mul(decimal.NewFromInt(saturdays))).Sub(decimal.NewFromInt(sundays))
	}
	return total
}

// IsWeekend reports whether a single calendar day counts as weekend under the
// policy. Half-Saturday is an aggregate counting rule only; per day, Saturday
// is a weekend under both Saturday-inclusive policies.
func IsWeekend(date time.Time, policy Policy) bool {
	switch date.Weekday() {
	case time.Sunday:
		return policy != PolicyNone
	case time.Saturday:
		return policy == PolicySaturdayAndSunday || policy == PolicyHalfSaturdayAndSunday
	}
	return false
}
