// Package scheduler implements the constraint-satisfaction timetable solver.
// It operates on plain in-memory snapshots and performs no I/O; persistence
// and transport live in the service and repository layers.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// Day is a weekday ordinal inside the scheduling grid (Monday = 0).
type Day int

// Scheduling covers the teaching week only.
const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// String returns the English weekday name.
func (d Day) String() string {
	if d < Monday || d > Friday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// ParseDay maps a weekday name (case-insensitive) onto its ordinal.
func ParseDay(name string) (Day, error) {
	trimmed := strings.TrimSpace(name)
	for i, candidate := range dayNames {
		if strings.EqualFold(candidate, trimmed) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// Minutes is a wall-clock time expressed as minutes since midnight.
type Minutes int

// ParseClock parses "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Every field must be a plain unsigned integer; trailing content is an error.
func ParseClock(raw string) (Minutes, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q", raw)
	}
	fields := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid clock value %q", raw)
		}
		fields[i] = v
	}
	h, m := fields[0], fields[1]
	if h > 23 || m > 59 || (len(fields) == 3 && fields[2] > 59) {
		return 0, fmt.Errorf("clock value %q out of range", raw)
	}
	return Minutes(h*60 + m), nil
}

// String renders the time as "HH:MM".
func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Slot is one schedulable period. Identity inside a generation run is the
// slot's position in the built Grid, not its ID.
type Slot struct {
	ID    string
	Day   Day
	Start Minutes
	End   Minutes
}

// Grid is the ordered, index-addressable slot sequence produced by BuildGrid.
type Grid []Slot

// Blackout is a static window removed from the grid before indexing.
type Blackout struct {
	Day   Day
	Start Minutes
	End   Minutes
}

// DefaultBlackout reserves Friday 13:00-15:00 for the prayer break.
func DefaultBlackout() Blackout {
	return Blackout{Day: Friday, Start: 13 * 60, End: 15 * 60}
}

// Course is the read-only snapshot consumed by the solver. LecturerID is
// empty when the course has no assigned lecturer.
type Course struct {
	ID         string
	Code       string
	Level      int
	Department string
	Enrollment int
	LecturerID string
	Semester   int
}

// Constraint configures one course for a generation run.
type Constraint struct {
	Duration  int
	Frequency int
}

// ConstraintMap keys per-course constraints by course id.
type ConstraintMap map[string]Constraint

// Get returns the constraint for a course, defaulting both fields to 1.
func (m ConstraintMap) Get(courseID string) Constraint {
	c := m[courseID]
	if c.Duration < 1 {
		c.Duration = 1
	}
	if c.Frequency < 1 {
		c.Frequency = 1
	}
	return c
}

// Item is one required weekly session occurrence of a course. Items are
// created at the start of a run and discarded at the end.
type Item struct {
	Course   *Course
	Session  int
	Duration int
}

// Placement is one consumed hour of a committed session. Venue assignment is
// a manual follow-up step, so the automated path never emits one.
type Placement struct {
	CourseID  string
	Session   int
	SlotIndex int
}

// ConfigurationError reports input that can never produce a schedule. It is
// detected before the search starts and is never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "scheduler configuration: " + e.Reason
}
