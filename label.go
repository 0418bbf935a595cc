package hdbscan

import "sort"

// Label builds a single-linkage dendrogram from a set of MST edges
// (component C5, spec.md §4.6). Edges need not arrive sorted; Label sorts
// them by weight ascending before walking them.
//
// Each output row is [left, right, delta, size]: left and right are the
// roots the edge connected (already-merged cluster ids once the dendrogram
// is partway built), delta is the edge weight, and size counts the leaves
// underneath. There are exactly n-1 rows, one per input edge, and delta is
// monotone non-decreasing by construction.
func Label(edges [][3]float64, n int) [][4]float64 {
	if len(edges) == 0 {
		return nil
	}

	byWeight := append([][3]float64(nil), edges...)
	sort.Slice(byWeight, func(i, j int) bool { return byWeight[i][2] < byWeight[j][2] })

	forest := NewUnionFind(n)
	rows := make([][4]float64, len(byWeight))

	for i, edge := range byWeight {
		left := forest.Find(int(edge[0]))
		right := forest.Find(int(edge[1]))
		delta := edge[2]

		combinedSize := forest.size[left] + forest.size[right]
		rows[i] = [4]float64{float64(left), float64(right), delta, float64(combinedSize)}

		forest.Merge(left, right)
	}

	return rows
}
