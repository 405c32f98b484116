package workday

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNetWorkDays_SundayOnly(t *testing.T) {
	t.Parallel()

	// December 2024: 31 days, Sundays on 1, 8, 15, 22, 29.
	got := NetWorkDays(date(2024, time.December, 1), date(2024, time.December, 31), PolicySundayOnly)
	assert.True(t, got.Equal(decimal.NewFromInt(26)), "got %s", got)

	// January 2024: 31 days, Sundays on 7, 14, 21, 28.
	got = NetWorkDays(date(2024, time.January, 1), date(2024, time.January, 31), PolicySundayOnly)
	assert.True(t, got.Equal(decimal.NewFromInt(27)), "got %s", got)
}

func TestNetWorkDays_SaturdayAndSunday(t *testing.T) {
	t.Parallel()

	// July 2024: 31 days, Saturdays on 6, 13, 20, 27; Sundays on 7, 14, 21, 28.
	got := NetWorkDays(date(2024, time.July, 1), date(2024, time.July, 31), PolicySaturdayAndSunday)
	assert.True(t, got.Equal(decimal.NewFromInt(23)), "got %s", got)
}

func TestNetWorkDays_HalfSaturdayAndSunday(t *testing.T) {
	t.Parallel()

	// July 2024: 31 - 0.5*4 - 4 = 25.
	got := NetWorkDays(date(2024, time.July, 1), date(2024, time.July, 31), PolicyHalfSaturdayAndSunday)
	assert.True(t, got.Equal(decimal.NewFromInt(25)), "got %s", got)
}

func TestNetWorkDays_None(t *testing.T) {
	t.Parallel()

	got := NetWorkDays(date(2024, time.February, 1), date(2024, time.February, 29), PolicyNone)
	assert.True(t, got.Equal(decimal.NewFromInt(29)), "got %s", got)
}

func TestNetWorkDays_SingleDay(t *testing.T) {
	t.Parallel()

	// 2024-07-06 is a Saturday.
	got := NetWorkDays(date(2024, time.July, 6), date(2024, time.July, 6), PolicySaturdayAndSunday)
	assert.True(t, got.IsZero(), "got %s", got)

	got = NetWorkDays(date(2024, time.July, 6), date(2024, time.July, 6), PolicyHalfSaturdayAndSunday)
	assert.True(t, got.Equal(decimal.NewFromFloat(0.5)), "got %s", got)
}

func TestIsWeekend(t *testing.T) {
	t.Parallel()

	saturday := date(2024, time.July, 6)
	sunday := date(2024, time.July, 7)
	monday := date(2024, time.July, 8)

	assert.False(t, IsWeekend(saturday, PolicyNone))
	assert.False(t, IsWeekend(sunday, PolicyNone))

	assert.False(t, IsWeekend(saturday, PolicySundayOnly))
	assert.True(t, IsWeekend(sunday, PolicySundayOnly))

	assert.True(t, IsWeekend(saturday, PolicySaturdayAndSunday))
	assert.True(t, IsWeekend(sunday, PolicySaturdayAndSunday))

	// Per-day flag does not halve Saturdays; only the aggregate count does.
	assert.True(t, IsWeekend(saturday, PolicyHalfSaturdayAndSunday))
	assert.True(t, IsWeekend(sunday, PolicyHalfSaturdayAndSunday))

	assert.False(t, IsWeekend(monday, PolicySaturdayAndSunday))
}

func TestPolicyIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, PolicySundayOnly.IsValid())
	assert.True(t, PolicyNone.IsValid())
	assert.False(t, Policy("weekends").IsValid())
}
