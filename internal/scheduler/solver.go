package scheduler

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

// DefaultMaxSteps bounds the search: the plain chronological backtracking is
// exponential in the worst case, and a pathological input must fail closed
// instead of occupying the caller forever.
const DefaultMaxSteps = 5_000_000

var (
	// ErrInfeasible reports that the search space was exhausted: no complete
	// assignment exists under the given constraints.
	ErrInfeasible = errors.New("no feasible schedule")

	// ErrSearchExhausted reports that the step budget ran out before the
	// search could either complete or prove infeasibility.
	ErrSearchExhausted = errors.New("search budget exhausted")
)

// Config tunes one generation run. The zero value picks a time-based seed and
// the default step budget.
type Config struct {
	Seed     int64
	MaxSteps int
}

// Stats summarises the work done by a run.
type Stats struct {
	Items      int
	Steps      int
	Backtracks int
	Elapsed    time.Duration
}

// Solver holds the state of one generation run. All state is owned by a
// single invocation and discarded afterwards; concurrent runs must each use
// their own Solver.
type Solver struct {
	grid     Grid
	items    []Item
	domains  [][]int
	maxSteps int
}

// New prepares a run: expands courses into session items, orders them by
// priority, and builds shuffled domains.
func New(grid Grid, courses []Course, constraints ConstraintMap, cfg Config) *Solver {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	maxSteps := cfg.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	rng := rand.New(rand.NewSource(seed))

	items := ExpandItems(courses, constraints)
	sortByPriority(items)

	return &Solver{
		grid:     grid,
		items:    items,
		domains:  buildDomains(grid, items, rng),
		maxSteps: maxSteps,
	}
}

// Solve runs an iterative depth-first backtracking search over the items. It
// returns the per-hour placements of the first complete assignment found, or
// ErrInfeasible / ErrSearchExhausted. A run either fully succeeds or fully
// fails; there is no partial output.
func (s *Solver) Solve(ctx context.Context) ([]Placement, Stats, error) {
	started := time.Now()
	stats := Stats{Items: len(s.items)}

	// assignment[k] is the committed start index of item k, or -1. cursors
	// act as an explicit search stack: cursors[k] is the next domain value to
	// try at depth k, so backtracking resumes exactly where it left off.
	assignment := make([]int, len(s.items))
	for i := range assignment {
		assignment[i] = -1
	}
	cursors := make([]int, len(s.items))

	k := 0
	for k < len(s.items) {
		if err := ctx.Err(); err != nil {
			stats.Elapsed = time.Since(started)
			return nil, stats, err
		}

		advanced := false
		domain := s.domains[k]
		for cursors[k] < len(domain) {
			stats.Steps++
			if stats.Steps > s.maxSteps {
				stats.Elapsed = time.Since(started)
				return nil, stats, ErrSearchExhausted
			}
			start := domain[cursors[k]]
			cursors[k]++
			if s.consistent(assignment, k, start) {
				assignment[k] = start
				k++
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}

		// Dead end: reset this depth and undo the previous commitment. The
		// previous cursor is left alone so its next alternative is tried.
		cursors[k] = 0
		assignment[k] = -1
		stats.Backtracks++
		if k == 0 {
			stats.Elapsed = time.Since(started)
			return nil, stats, ErrInfeasible
		}
		k--
		assignment[k] = -1
	}

	stats.Elapsed = time.Since(started)
	return s.materialize(assignment), stats, nil
}

// consistent checks the candidate window of item k against every committed
// item. The only hard rule: two time-overlapping sessions must not share a
// lecturer. Sessions of the same course may overlap; spacing them is an
// unenforced preference.
func (s *Solver) consistent(assignment []int, k, start int) bool {
	current := s.items[k]
	for j := 0; j < k; j++ {
		other := assignment[j]
		if other < 0 {
			continue
		}
		committed := s.items[j]
		if start >= other+committed.Duration || other >= start+current.Duration {
			continue
		}
		if current.Course.LecturerID == "" || committed.Course.LecturerID == "" {
			continue
		}
		if current.Course.LecturerID == committed.Course.LecturerID {
			return false
		}
	}
	return true
}

// materialize expands each committed session into one placement per consumed
// hour, in item order.
func (s *Solver) materialize(assignment []int) []Placement {
	placements := make([]Placement, 0, len(s.items))
	for i, item := range s.items {
		for offset := 0; offset < item.Duration; offset++ {
			placements = append(placements, Placement{
				CourseID:  item.Course.ID,
				Session:   item.Session,
				SlotIndex: assignment[i] + offset,
			})
		}
	}
	return placements
}

// Grid exposes the solver's slot sequence so callers can map placement
// indices back onto concrete slots.
func (s *Solver) Grid() Grid {
	return s.grid
}
