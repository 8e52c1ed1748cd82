// Package listview derives the displayed projection of the equipment list:
// a case-insensitive search over name, type and status followed by a stable
// sort on one column.
package listview

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"equipment-tracker/internal/model"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortID          SortKey = "id"
	SortName        SortKey = "name"
	SortType        SortKey = "type"
	SortStatus      SortKey = "status"
	SortLastCleaned SortKey = "last_cleaned"
	SortCreatedAt   SortKey = "created_at"
	SortUpdatedAt   SortKey = "updated_at"
)

// SortKeys lists every sortable column.
var SortKeys = []SortKey{SortID, SortName, SortType, SortStatus, SortLastCleaned, SortCreatedAt, SortUpdatedAt}

// ParseSortKey validates a column name.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort column %q", s)
}

// Direction is the sort order.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// SortSpec is the active column and direction.
type SortSpec struct {
	Key       SortKey
	Direction Direction
}

// View is the list's local UI state.
type View struct {
	Search string
	Sort   SortSpec
}

// NewView returns the initial state: no search, status ascending.
func NewView() *View {
	return &View{Sort: SortSpec{Key: SortStatus, Direction: Asc}}
}

// ToggleSort flips the direction when key is already active, otherwise
// selects key ascending.
func (v *View) ToggleSort(key SortKey) {
	if v.Sort.Key == key {
		if v.Sort.Direction == Asc {
			v.Sort.Direction = Desc
		} else {
			v.Sort.Direction = Asc
		}
		return
	}
	v.Sort = SortSpec{Key: key, Direction: Asc}
}

// Indicator is the arrow shown next to a column header.
func (v *View) Indicator(key SortKey) string {
	if v.Sort.Key != key {
		return ""
	}
	if v.Sort.Direction == Asc {
		return "↑"
	}
	return "↓"
}

// Project returns the filtered and sorted records as a new slice; items is
// never modified.
func (v *View) Project(items []model.Equipment) []model.Equipment {
	return Sort(Filter(items, v.Search), v.Sort)
}

// Filter keeps records whose name, type or status contains term,
// ignoring case. An empty term keeps everything.
func Filter(items []model.Equipment, term string) []model.Equipment {
	out := make([]model.Equipment, 0, len(items))
	if term == "" {
		return append(out, items...)
	}
	needle := strings.ToLower(term)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(string(item.Type)), needle) ||
			strings.Contains(strings.ToLower(string(item.Status)), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a stably sorted copy of items. Ties keep their input order in
// both directions.
func Sort(items []model.Equipment, spec SortSpec) []model.Equipment {
	out := slices.Clone(items)
	if spec.Key == "" {
		return out
	}
	slices.SortStableFunc(out, func(a, b model.Equipment) int {
		c := compare(a, b, spec.Key)
		if spec.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

func compare(a, b model.Equipment, key SortKey) int {
	switch key {
	case SortID:
		return cmp.Compare(a.ID, b.ID)
	case SortName:
		return strings.Compare(a.Name, b.Name)
	case SortType:
		return strings.Compare(string(a.Type), string(b.Type))
	case SortStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	case SortLastCleaned:
		return compareDates(a.LastCleaned, b.LastCleaned)
	case SortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
	return 0
}

// compareDates orders an absent date before any present one.
func compareDates(a, b *model.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Time().Compare(b.Time())
}
