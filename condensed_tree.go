package hdbscan

import "math"

// CondensedTreeEntry is one row of a condensed cluster tree: child either
// joined or departed parent at LambdaVal. ChildSize is 1 when Child is a
// leaf point, or the number of leaves under it when Child is a cluster.
type CondensedTreeEntry struct {
	Parent    int
	Child     int
	LambdaVal float64
	ChildSize int
}

// CondenseTree walks a single-linkage dendrogram top-down (spec.md §4.7) and
// discards splits that would produce a branch smaller than minClusterSize.
// A split where both sides clear the threshold promotes both sides to
// clusters of their own; a split where exactly one side clears it keeps the
// surviving side under the parent's existing cluster id and folds every
// point under the losing side in as leaf entries at the split's lambda; a
// split where neither side clears it folds both sides in the same way.
//
// dendrogram rows are [left, right, distance, mergedSize], scipy-linkage
// style, as produced by Label. The returned slice has no entries when the
// dendrogram is empty.
func CondenseTree(dendrogram [][4]float64, minClusterSize int) []CondensedTreeEntry {
	mergeCount := len(dendrogram)
	if mergeCount == 0 {
		return nil
	}

	numPoints := mergeCount + 1
	treeRoot := 2 * mergeCount
	spawnLabel := numPoints + 1

	visitOrder := descendantsOf(dendrogram, treeRoot, numPoints)

	clusterOf := map[int]int{treeRoot: numPoints}
	folded := make(map[int]bool)

	var entries []CondensedTreeEntry

	// foldIn records every leaf beneath branchRoot as belonging to
	// intoCluster at the given lambda, and marks the whole branch as
	// already handled so the outer loop skips it.
	var foldIn func(branchRoot, intoCluster int, lambda float64)
	foldIn = func(branchRoot, intoCluster int, lambda float64) {
		if folded[branchRoot] {
			return
		}
		folded[branchRoot] = true

		if branchRoot < numPoints {
			entries = append(entries, CondensedTreeEntry{
				Parent:    intoCluster,
				Child:     branchRoot,
				LambdaVal: lambda,
				ChildSize: 1,
			})
			return
		}

		row := dendrogram[branchRoot-numPoints]
		foldIn(int(row[0]), intoCluster, lambda)
		foldIn(int(row[1]), intoCluster, lambda)
	}

	branchSize := func(node int) int {
		if node < numPoints {
			return 1
		}
		return int(dendrogram[node-numPoints][3])
	}

	for _, node := range visitOrder {
		if folded[node] || node < numPoints {
			continue
		}

		row := dendrogram[node-numPoints]
		left, right, dist := int(row[0]), int(row[1]), row[2]

		lambda := math.Inf(1)
		if dist > 0.0 {
			lambda = 1.0 / dist
		}

		leftOK := branchSize(left) >= minClusterSize
		rightOK := branchSize(right) >= minClusterSize
		parent := clusterOf[node]

		switch {
		case leftOK && rightOK:
			for _, child := range [2]int{left, right} {
				clusterOf[child] = spawnLabel
				entries = append(entries, CondensedTreeEntry{
					Parent:    parent,
					Child:     spawnLabel,
					LambdaVal: lambda,
					ChildSize: branchSize(child),
				})
				spawnLabel++
			}

		case leftOK:
			clusterOf[left] = parent
			foldIn(right, parent, lambda)

		case rightOK:
			clusterOf[right] = parent
			foldIn(left, parent, lambda)

		default:
			foldIn(left, parent, lambda)
			foldIn(right, parent, lambda)
		}
	}

	return entries
}

// descendantsOf returns every node reachable from start, in breadth-first
// order, walking dendrogram's internal nodes (those >= numPoints) down to
// their children until only leaves remain on the frontier.
func descendantsOf(dendrogram [][4]float64, start, numPoints int) []int {
	order := []int{start}
	frontier := []int{start}

	for len(frontier) > 0 {
		var next []int
		for _, node := range frontier {
			if node < numPoints {
				continue
			}
			row := dendrogram[node-numPoints]
			next = append(next, int(row[0]), int(row[1]))
		}
		order = append(order, next...)
		frontier = next
	}

	return order
}
