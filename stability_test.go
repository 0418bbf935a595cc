package hdbscan

import "testing"

// assertFloat is also used by cluster_selection_test.go and
// labeling_test.go to check single stability/probability values against a
// tolerance.
func assertFloat(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if !almostEqual(got, want, eps) {
		t.Errorf("%s: got %v, want %v", name, got, want)
	}
}

func checkStabilities(t *testing.T, stab map[int]float64, want map[int]float64) {
	t.Helper()
	if len(stab) != len(want) {
		t.Errorf("got %d cluster stabilities, want %d", len(stab), len(want))
	}
	for cluster, w := range want {
		if got, ok := stab[cluster]; !ok {
			t.Errorf("missing stability for cluster %d", cluster)
		} else if !almostEqual(got, w, floatTol) {
			t.Errorf("stability[%d] = %v, want %v", cluster, got, w)
		}
	}
}

func TestComputeStability_FourLevelTree(t *testing.T) {
	// Root 6 splits into clusters 7 and 8 at lambda 0.2; 7 holds points 4,5
	// directly; 8 splits again into 9 (points 0,1) and 10 (points 2,3).
	tree := []CondensedTreeEntry{
		{Parent: 6, Child: 7, LambdaVal: 0.2, ChildSize: 2},
		{Parent: 6, Child: 8, LambdaVal: 0.2, ChildSize: 4},
		{Parent: 8, Child: 9, LambdaVal: 1.0 / 3.0, ChildSize: 2},
		{Parent: 8, Child: 10, LambdaVal: 1.0 / 3.0, ChildSize: 2},
		{Parent: 7, Child: 4, LambdaVal: 0.5, ChildSize: 1},
		{Parent: 7, Child: 5, LambdaVal: 0.5, ChildSize: 1},
		{Parent: 9, Child: 0, LambdaVal: 1.0, ChildSize: 1},
		{Parent: 9, Child: 1, LambdaVal: 1.0, ChildSize: 1},
		{Parent: 10, Child: 2, LambdaVal: 1.0 / 1.5, ChildSize: 1},
		{Parent: 10, Child: 3, LambdaVal: 1.0 / 1.5, ChildSize: 1},
	}

	checkStabilities(t, ComputeStability(tree), map[int]float64{
		6:  1.2,       // root: birth 0, (0.2-0)*2 + (0.2-0)*4
		7:  0.6,       // birth 0.2, two points at 0.5
		8:  8.0 / 15.0, // birth 0.2, two children at 1/3
		9:  4.0 / 3.0,  // birth 1/3, two points at 1.0
		10: 2.0 / 3.0,  // birth 1/3, two points at 2/3
	})
}

func TestComputeStability_RootBirthIsAlwaysZero(t *testing.T) {
	tree := []CondensedTreeEntry{
		{Parent: 3, Child: 0, LambdaVal: 0.5, ChildSize: 1},
		{Parent: 3, Child: 1, LambdaVal: 0.5, ChildSize: 1},
		{Parent: 3, Child: 2, LambdaVal: 0.5, ChildSize: 1},
	}

	checkStabilities(t, ComputeStability(tree), map[int]float64{3: 1.5})
}

func TestComputeStability_NestedClustersAccumulateIndependently(t *testing.T) {
	tree := []CondensedTreeEntry{
		{Parent: 5, Child: 6, LambdaVal: 0.5, ChildSize: 3},
		{Parent: 5, Child: 7, LambdaVal: 0.5, ChildSize: 2},
		{Parent: 6, Child: 0, LambdaVal: 1.0, ChildSize: 1},
		{Parent: 6, Child: 1, LambdaVal: 1.0, ChildSize: 1},
		{Parent: 6, Child: 2, LambdaVal: 1.0, ChildSize: 1},
		{Parent: 7, Child: 3, LambdaVal: 1.0, ChildSize: 1},
		{Parent: 7, Child: 4, LambdaVal: 1.0, ChildSize: 1},
	}

	checkStabilities(t, ComputeStability(tree), map[int]float64{
		5: 2.5, // birth 0: 0.5*3 + 0.5*2
		6: 1.5, // birth 0.5: 3 points at 1.0
		7: 1.0, // birth 0.5: 2 points at 1.0
	})
}

func TestComputeStability_EmptyTreeYieldsNil(t *testing.T) {
	if got := ComputeStability(nil); got != nil {
		t.Errorf("ComputeStability(nil) = %v, want nil", got)
	}
}
