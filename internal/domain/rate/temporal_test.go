package rate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrStr(s string) *string        { return &s }

func TestIsActiveAt(t *testing.T) {
	t.Parallel()

	row := AllowanceRate{
		EffectiveDate: day(2024, time.January, 1),
		EndDate:       ptrTime(day(2024, time.June, 30)),
	}

	assert.False(t, IsActiveAt(row, day(2023, time.December, 31)))
	assert.True(t, IsActiveAt(row, day(2024, time.January, 1)))
	assert.True(t, IsActiveAt(row, day(2024, time.March, 15)))
	assert.True(t, IsActiveAt(row, day(2024, time.June, 30)))
	assert.False(t, IsActiveAt(row, day(2024, time.July, 1)))
}

func TestIsActiveAt_OpenEnded(t *testing.T) {
	t.Parallel()

	row := SelfDeductionAmount{
		Amount:        decimal.NewFromInt(11000000),
		EffectiveDate: day(2020, time.July, 1),
	}

	assert.True(t, IsActiveAt(row, day(2030, time.January, 1)))
	assert.False(t, IsActiveAt(row, day(2020, time.June, 30)))
}

func TestActiveAt_Filters(t *testing.T) {
	t.Parallel()

	rows := []AllowanceRate{
		{Name: "meal", EffectiveDate: day(2024, time.January, 1)},
		{Name: "old-meal", EffectiveDate: day(2023, time.January, 1), EndDate: ptrTime(day(2023, time.December, 31))},
		{Name: "transport", EffectiveDate: day(2024, time.March, 1)},
	}

	active := ActiveAt(rows, day(2024, time.February, 1))
	assert.Len(t, active, 1)
	assert.Equal(t, "meal", active[0].Name)

	active = ActiveAt(rows, day(2024, time.April, 1))
	assert.Len(t, active, 2)
}

func TestInScope_AdmitsOrgAndGlobal(t *testing.T) {
	t.Parallel()

	rows := []SelfDeductionAmount{
		{ID: "global", OrganizationID: nil},
		{ID: "mine", OrganizationID: ptrStr("org-1")},
		{ID: "other", OrganizationID: ptrStr("org-2")},
	}

	scoped := InScope(rows, "org-1")
	assert.Len(t, scoped, 2)
	assert.Equal(t, "global", scoped[0].ID)
	assert.Equal(t, "mine", scoped[1].ID)
}

func TestSortByEffectiveDate(t *testing.T) {
	t.Parallel()

	rows := []DependentDeductionAmount{
		{ID: "b", EffectiveDate: day(2024, time.January, 1)},
		{ID: "a", EffectiveDate: day(2022, time.January, 1)},
		{ID: "c", EffectiveDate: day(2025, time.January, 1)},
	}

	SortByEffectiveDate(rows)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "b", rows[1].ID)
	assert.Equal(t, "c", rows[2].ID)
}
