package scheduler

import "sort"

// BuildGrid orders slots by (day, start time), removes any slot starting
// inside the blackout window, and returns the resulting linear index space.
// The blackout runs before indexing so that index adjacency implies time
// adjacency within a day; a removed mid-day slot leaves a gap that window
// checks detect through the same-day rule in validStarts.
func BuildGrid(slots []Slot, blackout Blackout) (Grid, error) {
	grid := make(Grid, 0, len(slots))
	for _, slot := range slots {
		if slot.Day == blackout.Day && slot.Start >= blackout.Start && slot.Start < blackout.End {
			continue
		}
		grid = append(grid, slot)
	}
	sort.SliceStable(grid, func(i, j int) bool {
		if grid[i].Day != grid[j].Day {
			return grid[i].Day < grid[j].Day
		}
		return grid[i].Start < grid[j].Start
	})
	if len(grid) == 0 {
		return nil, &ConfigurationError{Reason: "no time slots remain after applying the blackout window"}
	}
	return grid, nil
}
