package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-tracker/internal/model"
)

func date(y int, m time.Month, d int) *model.Date {
	return &model.Date{Year: y, Month: m, Day: d}
}

func fixture() []model.Equipment {
	return []model.Equipment{
		{ID: 1, Name: "Blender Alpha", Type: model.TypeMixer, Status: model.StatusInactive, LastCleaned: date(2024, 3, 1)},
		{ID: 2, Name: "Boiler", Type: model.TypeVessel, Status: model.StatusActive},
		{ID: 3, Name: "Holding tank", Type: model.TypeTank, Status: model.StatusUnderMaintenance, LastCleaned: date(2023, 12, 24)},
		{ID: 4, Name: "Press", Type: model.TypeMachine, Status: model.StatusActive, LastCleaned: date(2024, 1, 15)},
	}
}

func ids(items []model.Equipment) []int64 {
	out := make([]int64, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	items := fixture()

	testCases := []struct {
		term string
		want []int64
	}{
		{"", []int64{1, 2, 3, 4}},
		{"TANK", []int64{3}},          // name and type, upper-case term
		{"mixer", []int64{1}},         // type only
		{"maint", []int64{3}},         // status substring
		{"active", []int64{1, 2, 4}},  // "Inactive" contains "active"
		{"b", []int64{1, 2}},          // name prefix
		{"nothing here", []int64{}},
	}
	for _, tc := range testCases {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Filter(items, tc.term)))
		})
	}
}

func TestSort_StatusAscThenDesc(t *testing.T) {
	items := []model.Equipment{
		{ID: 1, Status: model.StatusInactive},
		{ID: 2, Status: model.StatusActive},
		{ID: 3, Status: model.StatusUnderMaintenance},
	}
	statuses := func(in []model.Equipment) []model.EquipmentStatus {
		out := make([]model.EquipmentStatus, len(in))
		for i, e := range in {
			out[i] = e.Status
		}
		return out
	}

	v := NewView()
	require.Equal(t, SortStatus, v.Sort.Key)
	assert.Equal(t,
		[]model.EquipmentStatus{model.StatusActive, model.StatusInactive, model.StatusUnderMaintenance},
		statuses(v.Project(items)))

	v.ToggleSort(SortStatus)
	assert.Equal(t,
		[]model.EquipmentStatus{model.StatusUnderMaintenance, model.StatusInactive, model.StatusActive},
		statuses(v.Project(items)))
}

func TestSort_StableForTies(t *testing.T) {
	items := []model.Equipment{
		{ID: 10, Status: model.StatusActive},
		{ID: 11, Status: model.StatusInactive},
		{ID: 12, Status: model.StatusActive},
		{ID: 13, Status: model.StatusActive},
	}

	asc := Sort(items, SortSpec{Key: SortStatus, Direction: Asc})
	assert.Equal(t, []int64{10, 12, 13, 11}, ids(asc))

	desc := Sort(items, SortSpec{Key: SortStatus, Direction: Desc})
	assert.Equal(t, []int64{11, 10, 12, 13}, ids(desc))
}

func TestSort_LastCleanedChronological(t *testing.T) {
	got := Sort(fixture(), SortSpec{Key: SortLastCleaned, Direction: Asc})
	assert.Equal(t, []int64{2, 3, 4, 1}, ids(got))

	got = Sort(fixture(), SortSpec{Key: SortLastCleaned, Direction: Desc})
	assert.Equal(t, []int64{1, 4, 3, 2}, ids(got))
}

func TestProject_DoesNotMutateSource(t *testing.T) {
	items := fixture()
	v := &View{Search: "a", Sort: SortSpec{Key: SortName, Direction: Desc}}

	got := v.Project(items)
	assert.Equal(t, fixture(), items)
	assert.Equal(t, []int64{4, 3, 2, 1}, ids(got))

	got[0].Name = "changed"
	assert.Equal(t, "Blender Alpha", items[0].Name)
}

func TestToggleSort(t *testing.T) {
	v := NewView()

	v.ToggleSort(SortName)
	assert.Equal(t, SortSpec{Key: SortName, Direction: Asc}, v.Sort)
	assert.Equal(t, "↑", v.Indicator(SortName))
	assert.Equal(t, "", v.Indicator(SortStatus))

	v.ToggleSort(SortName)
	assert.Equal(t, Desc, v.Sort.Direction)
	assert.Equal(t, "↓", v.Indicator(SortName))

	v.ToggleSort(SortName)
	assert.Equal(t, Asc, v.Sort.Direction)

	v.ToggleSort(SortType)
	assert.Equal(t, SortSpec{Key: SortType, Direction: Asc}, v.Sort)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey(" Last_Cleaned ")
	require.NoError(t, err)
	assert.Equal(t, SortLastCleaned, k)

	_, err = ParseSortKey("colour")
	assert.Error(t, err)
}
