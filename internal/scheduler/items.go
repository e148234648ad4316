package scheduler

import "sort"

// ExpandItems flattens each course into one item per required weekly session,
// using the per-course constraint (or the {1,1} default). Emission order is
// irrelevant; sortByPriority reorders immediately afterwards.
func ExpandItems(courses []Course, constraints ConstraintMap) []Item {
	items := make([]Item, 0, len(courses))
	for i := range courses {
		course := &courses[i]
		c := constraints.Get(course.ID)
		for session := 0; session < c.Frequency; session++ {
			items = append(items, Item{Course: course, Session: session, Duration: c.Duration})
		}
	}
	return items
}

// sortByPriority orders items by descending (level, enrollment) so that
// senior, high-enrollment courses are committed while the domain space is
// least constrained. The sort is stable: with a fixed shuffle seed, equal
// courses keep their emission order and runs stay reproducible.
func sortByPriority(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Course, items[j].Course
		if a.Level != b.Level {
			return a.Level > b.Level
		}
		return a.Enrollment > b.Enrollment
	})
}
