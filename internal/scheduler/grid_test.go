package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGridSortsByDayThenStart(t *testing.T) {
	slots := []Slot{
		{ID: "wed-9", Day: Wednesday, Start: 9 * 60, End: 10 * 60},
		{ID: "mon-10", Day: Monday, Start: 10 * 60, End: 11 * 60},
		{ID: "mon-8", Day: Monday, Start: 8 * 60, End: 9 * 60},
		{ID: "tue-8", Day: Tuesday, Start: 8 * 60, End: 9 * 60},
	}

	grid, err := BuildGrid(slots, DefaultBlackout())
	require.NoError(t, err)

	ids := make([]string, 0, len(grid))
	for _, slot := range grid {
		ids = append(ids, slot.ID)
	}
	assert.Equal(t, []string{"mon-8", "mon-10", "tue-8", "wed-9"}, ids)
}

func TestBuildGridRemovesBlackoutSlots(t *testing.T) {
	var slots []Slot
	for hour := 8; hour < 18; hour++ {
		slots = append(slots, Slot{
			ID:    hourID(Friday, hour),
			Day:   Friday,
			Start: Minutes(hour * 60),
			End:   Minutes((hour + 1) * 60),
		})
	}

	grid, err := BuildGrid(slots, DefaultBlackout())
	require.NoError(t, err)
	require.Len(t, grid, 8)

	for _, slot := range grid {
		inBlackout := slot.Start >= 13*60 && slot.Start < 15*60
		assert.False(t, inBlackout, "slot %s should have been excluded", slot.ID)
	}
	// Neighbours of the window survive.
	assert.Equal(t, hourID(Friday, 12), grid[4].ID)
	assert.Equal(t, hourID(Friday, 15), grid[5].ID)
}

func TestBuildGridFailsWhenNothingRemains(t *testing.T) {
	slots := []Slot{
		{ID: "fri-13", Day: Friday, Start: 13 * 60, End: 14 * 60},
		{ID: "fri-14", Day: Friday, Start: 14 * 60, End: 15 * 60},
	}

	_, err := BuildGrid(slots, DefaultBlackout())
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestValidStartsStayWithinOneDay(t *testing.T) {
	grid := Grid{
		{Day: Monday, Start: 8 * 60, End: 9 * 60},
		{Day: Monday, Start: 9 * 60, End: 10 * 60},
		{Day: Tuesday, Start: 8 * 60, End: 9 * 60},
	}
	courses := []Course{{ID: "c1"}}
	items := ExpandItems(courses, ConstraintMap{"c1": {Duration: 2, Frequency: 1}})

	starts := validStartsByDuration(grid, items)
	assert.Equal(t, []int{0}, starts[2], "a window must not span the Monday/Tuesday boundary")
}

func TestParseClock(t *testing.T) {
	cases := map[string]Minutes{
		"08:00":    8 * 60,
		"13:30":    13*60 + 30,
		"09:15:00": 9*60 + 15,
	}
	for raw, want := range cases {
		got, err := ParseClock(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "25:00", "08:61", "noon", "08:00xyz", "8:-5", "08:00:00:00", "08:00:61"} {
		_, err := ParseClock(raw)
		assert.Error(t, err, raw)
	}
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("friday")
	require.NoError(t, err)
	assert.Equal(t, Friday, day)

	_, err = ParseDay("Sunday")
	assert.Error(t, err)
}
