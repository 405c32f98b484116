package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDependentCountsAt(t *testing.T) {
	t.Parallel()

	asOf := date(2024, time.December, 31)
	ended := date(2024, time.June, 30)

	active := Dependent{IsActive: true, EffectiveDate: date(2020, time.January, 1)}
	assert.True(t, active.CountsAt(asOf))

	// Not yet effective at the calculation instant.
	notYet := Dependent{IsActive: true, EffectiveDate: date(2025, time.March, 1)}
	assert.False(t, notYet.CountsAt(asOf))

	expired := Dependent{IsActive: true, EffectiveDate: date(2020, time.January, 1), EndDate: &ended}
	assert.False(t, expired.CountsAt(asOf))

	inactive := Dependent{IsActive: false, EffectiveDate: date(2020, time.January, 1)}
	assert.False(t, inactive.CountsAt(asOf))

	// Window boundaries are inclusive on both ends.
	endsToday := Dependent{IsActive: true, EffectiveDate: date(2020, time.January, 1), EndDate: &asOf}
	assert.True(t, endsToday.CountsAt(asOf))
	startsToday := Dependent{IsActive: true, EffectiveDate: asOf}
	assert.True(t, startsToday.CountsAt(asOf))
}
