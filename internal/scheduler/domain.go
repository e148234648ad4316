package scheduler

import "math/rand"

// validStartsByDuration precomputes, for each distinct duration among the
// items, the starting indices whose full window fits inside a single day.
// The list is shared by every item of that duration: one source of truth for
// window legality. Comparing the day at both ends (rather than index
// distance alone) also rejects windows that straddle a blackout gap.
func validStartsByDuration(grid Grid, items []Item) map[int][]int {
	starts := make(map[int][]int)
	for _, item := range items {
		d := item.Duration
		if _, done := starts[d]; done {
			continue
		}
		var valid []int
		for i := 0; i+d-1 < len(grid); i++ {
			if grid[i].Day == grid[i+d-1].Day {
				valid = append(valid, i)
			}
		}
		starts[d] = valid
	}
	return starts
}

// buildDomains gives each item an independently shuffled copy of the shared
// start list for its duration. An empty domain is not an error here; it
// surfaces as backtracking failure. Shuffling happens in item order from a
// single source, so a fixed seed yields identical domains.
func buildDomains(grid Grid, items []Item, rng *rand.Rand) [][]int {
	shared := validStartsByDuration(grid, items)
	domains := make([][]int, len(items))
	for i, item := range items {
		base := shared[item.Duration]
		domain := make([]int, len(base))
		copy(domain, base)
		rng.Shuffle(len(domain), func(a, b int) {
			domain[a], domain[b] = domain[b], domain[a]
		})
		domains[i] = domain
	}
	return domains
}
