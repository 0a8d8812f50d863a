package main

import "sort"

type divideLine struct {
	Move  string
	Nodes uint64
}

// sortedDivide orders a cached divide map by move for stable output.
func sortedDivide(m map[string]uint64) []divideLine {
	lines := make([]divideLine, 0, len(m))
	for move, nodes := range m {
		lines = append(lines, divideLine{move, nodes})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Move < lines[j].Move })
	return lines
}
