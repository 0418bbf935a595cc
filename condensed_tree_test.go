package hdbscan

import (
	"math"
	"testing"
)

// sixPointChainDendrogram merges pairs (0,1), (2,3), (4,5), then the first
// two pairs, then the remaining pair with that group of four, in scipy
// [left, right, dist, size]
// format: nodes 6,7,8 are the pairwise merges, 9 joins 6+7, 10 joins 8+9.
func sixPointChainDendrogram() [][4]float64 {
	return [][4]float64{
		{0, 1, 1.0, 2},
		{2, 3, 1.5, 2},
		{4, 5, 2.0, 2},
		{6, 7, 3.0, 4},
		{8, 9, 5.0, 6},
	}
}

func hasEntry(tree []CondensedTreeEntry, parent, child int, lambda float64, size int) bool {
	for _, e := range tree {
		if e.Parent == parent && e.Child == child && e.ChildSize == size &&
			almostEqual(e.LambdaVal, lambda, floatTol) {
			return true
		}
	}
	return false
}

func TestCondenseTree_MinClusterSize2KeepsBothBranchesAtEachBigSplit(t *testing.T) {
	tree := CondenseTree(sixPointChainDendrogram(), 2)

	if len(tree) != 10 {
		t.Fatalf("got %d entries, want 10", len(tree))
	}

	wantEntries := []struct {
		parent, child int
		lambda        float64
		size          int
	}{
		{6, 7, 0.2, 2},
		{6, 8, 0.2, 4},
		{8, 9, 1.0 / 3.0, 2},
		{8, 10, 1.0 / 3.0, 2},
		{7, 4, 0.5, 1},
		{7, 5, 0.5, 1},
		{9, 0, 1.0, 1},
		{9, 1, 1.0, 1},
		{10, 2, 1.0 / 1.5, 1},
		{10, 3, 1.0 / 1.5, 1},
	}
	for _, w := range wantEntries {
		if !hasEntry(tree, w.parent, w.child, w.lambda, w.size) {
			t.Errorf("missing entry: parent=%d child=%d lambda=%v size=%d", w.parent, w.child, w.lambda, w.size)
		}
	}
}

func TestCondenseTree_MinClusterSize3CollapsesEverythingIntoTheRoot(t *testing.T) {
	tree := CondenseTree(sixPointChainDendrogram(), 3)

	if len(tree) != 6 {
		t.Fatalf("got %d entries, want 6 (all points fold into the root)", len(tree))
	}
	for _, e := range tree {
		if e.Parent != 6 {
			t.Errorf("child=%d: parent=%d, want 6", e.Child, e.Parent)
		}
		if e.ChildSize != 1 {
			t.Errorf("child=%d: size=%d, want 1", e.Child, e.ChildSize)
		}
	}

	for _, w := range []struct {
		child  int
		lambda float64
	}{
		{4, 0.2}, {5, 0.2},
		{0, 1.0 / 3.0}, {1, 1.0 / 3.0}, {2, 1.0 / 3.0}, {3, 1.0 / 3.0},
	} {
		if !hasEntry(tree, 6, w.child, w.lambda, 1) {
			t.Errorf("missing entry for point %d at lambda %v", w.child, w.lambda)
		}
	}
}

func TestCondenseTree_ZeroDistanceMergesGiveInfiniteLambda(t *testing.T) {
	dend := [][4]float64{
		{0, 1, 0.0, 2},
		{2, 3, 0.0, 2},
		{4, 5, 0.0, 4},
	}
	tree := CondenseTree(dend, 2)
	if len(tree) == 0 {
		t.Fatal("expected a non-empty tree")
	}
	for _, e := range tree {
		if !math.IsInf(e.LambdaVal, 1) {
			t.Errorf("child=%d: lambda=%v, want +Inf", e.Child, e.LambdaVal)
		}
	}
}

func TestCondenseTree_EmptyDendrogramForSinglePoint(t *testing.T) {
	if tree := CondenseTree(nil, 2); tree != nil {
		t.Fatalf("CondenseTree(nil, 2) = %v, want nil", tree)
	}
}

func TestCondenseTree_TwoPointsBothFoldIntoRoot(t *testing.T) {
	tree := CondenseTree([][4]float64{{0, 1, 2.0, 2}}, 2)

	if len(tree) != 2 {
		t.Fatalf("got %d entries, want 2", len(tree))
	}
	if !hasEntry(tree, 2, 0, 0.5, 1) || !hasEntry(tree, 2, 1, 0.5, 1) {
		t.Errorf("expected both points folded into root cluster 2 at lambda 0.5, got %+v", tree)
	}
}

func TestCondenseTree_EveryChildSizeMatchesItsPointCount(t *testing.T) {
	// Regardless of minClusterSize, a cluster-child's reported ChildSize
	// must equal how many leaves actually sit under it in the dendrogram.
	tree := CondenseTree(sixPointChainDendrogram(), 2)

	leafCount := make(map[int]int)
	for _, e := range tree {
		if e.ChildSize == 1 {
			leafCount[e.Parent]++
		}
	}

	clusterSize := map[int]int{6: 6, 7: 2, 8: 4, 9: 2, 10: 2}
	for cluster, want := range clusterSize {
		count := leafCount[cluster]
		for _, e := range tree {
			if e.Parent == cluster && e.ChildSize > 1 {
				count += e.ChildSize
			}
		}
		if count != want {
			t.Errorf("cluster %d: leaves under it sum to %d, want %d", cluster, count, want)
		}
	}
}
