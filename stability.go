package hdbscan

import "math"

// ComputeStability scores each cluster in a condensed tree by how much
// density range it spans weighted by how many points it held onto
// (spec.md §4.8):
//
//	stability(C) = sum over rows with Parent == C of (row.LambdaVal - birth(C)) * row.ChildSize
//
// birth(C) is the lambda at which C was first produced as someone else's
// child — the smallest LambdaVal recorded for it. The tree's root never
// appears as a child, so its birth is pinned to zero.
func ComputeStability(tree []CondensedTreeEntry) map[int]float64 {
	if len(tree) == 0 {
		return nil
	}

	root := math.MaxInt
	birth := make(map[int]float64, len(tree))
	for _, row := range tree {
		if row.Parent < root {
			root = row.Parent
		}
		if b, seen := birth[row.Child]; !seen || row.LambdaVal < b {
			birth[row.Child] = row.LambdaVal
		}
	}
	birth[root] = 0.0

	stability := make(map[int]float64, len(birth))
	for _, row := range tree {
		stability[row.Parent] += (row.LambdaVal - birth[row.Parent]) * float64(row.ChildSize)
	}
	return stability
}
