package faq

// GroupByDepartment partitions entries into per-department groups. Group order
// follows the first appearance of each department and items keep their input
// order, so repeated calls over the same input produce identical output.
func GroupByDepartment(entries []Entry) []Group {
	groups := make([]Group, 0)
	position := make(map[string]int)
	for _, entry := range entries {
		department := NormalizeDepartment(entry.Department)
		idx, ok := position[department]
		if !ok {
			idx = len(groups)
			position[department] = idx
			groups = append(groups, Group{Department: department})
		}
		groups[idx].Items = append(groups[idx].Items, QA{
			Question: entry.Question,
			Answer:   entry.Answer,
		})
	}
	return groups
}

// GroupResults partitions ranked results the same way, preserving rank order
// within each department.
func GroupResults(results []Result) []Group {
	entries := make([]Entry, 0, len(results))
	for _, result := range results {
		entries = append(entries, Entry{
			ID:         result.ID,
			Question:   result.Question,
			Answer:     result.Answer,
			Department: result.Department,
		})
	}
	return GroupByDepartment(entries)
}
