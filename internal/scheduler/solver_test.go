package scheduler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolvePlacesDoubleSessionInOnlyWindow(t *testing.T) {
	grid := weekGrid(t, []Day{Monday}, 8, 10)
	courses := []Course{{ID: "csc301", Level: 300}}
	constraints := ConstraintMap{"csc301": {Duration: 2, Frequency: 1}}

	placements, stats, err := New(grid, courses, constraints, Config{Seed: 1}).Solve(context.Background())
	require.NoError(t, err)
	require.Len(t, placements, 2)

	assert.Equal(t, 0, placements[0].SlotIndex)
	assert.Equal(t, 1, placements[1].SlotIndex)
	assert.Equal(t, "csc301", placements[0].CourseID)
	assert.Equal(t, 1, stats.Items)
}

func TestSolveRejectsLecturerDoubleBooking(t *testing.T) {
	grid := weekGrid(t, []Day{Monday}, 8, 9)
	courses := []Course{
		{ID: "a", LecturerID: "lect-1"},
		{ID: "b", LecturerID: "lect-1"},
	}

	_, _, err := New(grid, courses, nil, Config{Seed: 1}).Solve(context.Background())
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveWholeGridCoursesAreInfeasible(t *testing.T) {
	grid := weekGrid(t, []Day{Monday}, 8, 12)
	constraints := ConstraintMap{
		"a": {Duration: len(grid), Frequency: 1},
		"b": {Duration: len(grid), Frequency: 1},
	}
	courses := []Course{
		{ID: "a", LecturerID: "lect-1"},
		{ID: "b", LecturerID: "lect-1"},
	}

	_, _, err := New(grid, courses, constraints, Config{Seed: 7}).Solve(context.Background())
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveEmptyDomainWhenDurationExceedsDay(t *testing.T) {
	grid := weekGrid(t, []Day{Monday, Tuesday}, 8, 10)
	courses := []Course{{ID: "long"}}
	constraints := ConstraintMap{"long": {Duration: 3, Frequency: 1}}

	_, _, err := New(grid, courses, constraints, Config{Seed: 1}).Solve(context.Background())
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestSolveDeterministicForFixedSeed(t *testing.T) {
	grid := weekGrid(t, []Day{Monday, Tuesday, Wednesday, Thursday, Friday}, 8, 12)
	courses, constraints := facultySnapshot()

	first, _, err := New(grid, courses, constraints, Config{Seed: 42}).Solve(context.Background())
	require.NoError(t, err)
	second, _, err := New(grid, courses, constraints, Config{Seed: 42}).Solve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSolveAcceptedScheduleInvariants(t *testing.T) {
	grid := weekGrid(t, []Day{Monday, Tuesday, Wednesday, Thursday, Friday}, 8, 13)
	courses, constraints := facultySnapshot()

	placements, stats, err := New(grid, courses, constraints, Config{Seed: 99}).Solve(context.Background())
	require.NoError(t, err)
	assert.Greater(t, stats.Steps, 0)

	lecturers := make(map[string]string, len(courses))
	for _, course := range courses {
		lecturers[course.ID] = course.LecturerID
	}

	// Lecturer no-overlap: no slot is consumed twice by the same lecturer.
	occupied := make(map[string]map[int]bool)
	for _, p := range placements {
		lect := lecturers[p.CourseID]
		if lect == "" {
			continue
		}
		if occupied[lect] == nil {
			occupied[lect] = make(map[int]bool)
		}
		assert.False(t, occupied[lect][p.SlotIndex],
			"lecturer %s double-booked at slot %d", lect, p.SlotIndex)
		occupied[lect][p.SlotIndex] = true
	}

	// Duration contiguity: each session occupies adjacent indices on one day.
	type sessionKey struct {
		course  string
		session int
	}
	sessions := make(map[sessionKey][]int)
	for _, p := range placements {
		key := sessionKey{p.CourseID, p.Session}
		sessions[key] = append(sessions[key], p.SlotIndex)
	}
	for key, indices := range sessions {
		want := constraints.Get(key.course)
		require.Len(t, indices, want.Duration, "session %v hour count", key)
		for i := 1; i < len(indices); i++ {
			assert.Equal(t, indices[i-1]+1, indices[i], "session %v not contiguous", key)
			assert.Equal(t, grid[indices[i-1]].Day, grid[indices[i]].Day, "session %v crosses a day", key)
		}
	}

	// Frequency completeness: one session per required occurrence.
	perCourse := make(map[string]map[int]bool)
	for key := range sessions {
		if perCourse[key.course] == nil {
			perCourse[key.course] = make(map[int]bool)
		}
		perCourse[key.course][key.session] = true
	}
	for _, course := range courses {
		assert.Len(t, perCourse[course.ID], constraints.Get(course.ID).Frequency,
			"course %s session count", course.ID)
	}
}

func TestSolveRespectsBlackoutWindow(t *testing.T) {
	var slots []Slot
	for hour := 8; hour < 18; hour++ {
		slots = append(slots, Slot{ID: hourID(Friday, hour), Day: Friday, Start: Minutes(hour * 60), End: Minutes((hour + 1) * 60)})
	}
	grid, err := BuildGrid(slots, DefaultBlackout())
	require.NoError(t, err)

	courses, constraints := facultySnapshot()
	placements, _, err := New(grid, courses, constraints, Config{Seed: 3}).Solve(context.Background())
	require.NoError(t, err)

	for _, p := range placements {
		slot := grid[p.SlotIndex]
		inBlackout := slot.Day == Friday && slot.Start >= 13*60 && slot.Start < 15*60
		assert.False(t, inBlackout, "placement landed in the blackout window at %s", slot.Start)
	}
}

func TestSolveStepBudgetFailsClosed(t *testing.T) {
	grid := weekGrid(t, []Day{Monday}, 8, 9)
	courses := []Course{
		{ID: "a", LecturerID: "lect-1"},
		{ID: "b", LecturerID: "lect-1"},
	}

	_, stats, err := New(grid, courses, nil, Config{Seed: 1, MaxSteps: 1}).Solve(context.Background())
	assert.ErrorIs(t, err, ErrSearchExhausted)
	assert.Equal(t, 2, stats.Steps)
}

func TestSolveHonoursContextCancellation(t *testing.T) {
	grid := weekGrid(t, []Day{Monday}, 8, 9)
	courses := []Course{{ID: "a"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New(grid, courses, nil, Config{Seed: 1}).Solve(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExpandItemsDefaultsToSingleHourWeekly(t *testing.T) {
	courses := []Course{{ID: "plain"}, {ID: "tuned"}}
	constraints := ConstraintMap{"tuned": {Duration: 2, Frequency: 3}}

	items := ExpandItems(courses, constraints)
	require.Len(t, items, 4)

	assert.Equal(t, 1, items[0].Duration)
	assert.Equal(t, 0, items[0].Session)
	for i := 1; i < 4; i++ {
		assert.Equal(t, "tuned", items[i].Course.ID)
		assert.Equal(t, 2, items[i].Duration)
		assert.Equal(t, i-1, items[i].Session)
	}
}

func TestPriorityOrderIsLevelThenEnrollmentDescending(t *testing.T) {
	courses := []Course{
		{ID: "small-200", Level: 200, Enrollment: 30},
		{ID: "big-400", Level: 400, Enrollment: 120},
		{ID: "big-200", Level: 200, Enrollment: 90},
		{ID: "tie-a", Level: 100, Enrollment: 50},
		{ID: "tie-b", Level: 100, Enrollment: 50},
	}
	items := ExpandItems(courses, nil)
	sortByPriority(items)

	var order []string
	for _, item := range items {
		order = append(order, item.Course.ID)
	}
	assert.Equal(t, []string{"big-400", "big-200", "small-200", "tie-a", "tie-b"}, order)
}

// --- Fixtures ---

func hourID(day Day, hour int) string {
	return fmt.Sprintf("%s-%02d", day, hour)
}

func weekGrid(t *testing.T, days []Day, fromHour, toHour int) Grid {
	t.Helper()
	var slots []Slot
	for _, day := range days {
		for hour := fromHour; hour < toHour; hour++ {
			slots = append(slots, Slot{
				ID:    hourID(day, hour),
				Day:   day,
				Start: Minutes(hour * 60),
				End:   Minutes((hour + 1) * 60),
			})
		}
	}
	grid, err := BuildGrid(slots, DefaultBlackout())
	require.NoError(t, err)
	return grid
}

func facultySnapshot() ([]Course, ConstraintMap) {
	courses := []Course{
		{ID: "csc401", Level: 400, Enrollment: 80, LecturerID: "lect-1"},
		{ID: "csc402", Level: 400, Enrollment: 60, LecturerID: "lect-2"},
		{ID: "csc301", Level: 300, Enrollment: 150, LecturerID: "lect-1"},
		{ID: "mth201", Level: 200, Enrollment: 200, LecturerID: "lect-3"},
		{ID: "gns101", Level: 100, Enrollment: 400},
		{ID: "phy102", Level: 100, Enrollment: 250, LecturerID: "lect-2"},
	}
	constraints := ConstraintMap{
		"csc401": {Duration: 2, Frequency: 1},
		"csc301": {Duration: 1, Frequency: 2},
		"mth201": {Duration: 2, Frequency: 2},
		"gns101": {Duration: 1, Frequency: 1},
	}
	return courses, constraints
}
