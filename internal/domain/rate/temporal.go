package rate

import (
	"sort"
	"time"
)

// EffectiveDated is any configuration row valid over [effectiveDate, endDate],
// where a nil end date means open-ended.
type EffectiveDated interface {
	Window() (effective time.Time, end *time.Time)
}

// OrgScoped is a row owned by one organization or, with a nil scope, by all.
type OrgScoped interface {
	Scope() *string
}

// IsActiveAt reports whether the row's validity window covers t.
func IsActiveAt(row EffectiveDated, t time.Time) bool {
	effective, end := row.Window()
	if effective.After(t) {
		return false
	}
	return end == nil || !end.Before(t)
}

// ActiveAt filters rows down to those whose window covers t.
func ActiveAt[T EffectiveDated](rows []T, t time.Time) []T {
	var active []T
	for _, row := range rows {
		if IsActiveAt(row, t) {
			active = append(active, row)
		}
	}
	return active
}

// InScope filters rows to those owned by organizationID or owned globally.
// Org-specific and global rows are equally admissible; callers that need a
// single value disambiguate by effective date, not by specificity.
func InScope[T OrgScoped](rows []T, organizationID string) []T {
	var scoped []T
	for _, row := range rows {
		owner := row.Scope()
		if owner == nil || *owner == organizationID {
			scoped = append(scoped, row)
		}
	}
	return scoped
}

// SortByEffectiveDate orders rows by effective date ascending, in place.
func SortByEffectiveDate[T EffectiveDated](rows []T) {
	sort.SliceStable(rows, func(i, j int) bool {
		ei, _ := rows[i].Window()
		ej, _ := rows[j].Window()
		return ei.Before(ej)
	})
}
