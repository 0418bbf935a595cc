package hdbscan

import (
	"math"
	"testing"
)

func mstWeight(edges [][3]float64) float64 {
	sum := 0.0
	for _, e := range edges {
		sum += e[2]
	}
	return sum
}

// squareMatrix flattens a 2D slice into the row-major []float64 layout
// PrimMST expects for an n×n distance matrix.
func squareMatrix(rows [][]float64) []float64 {
	n := len(rows)
	flat := make([]float64, n*n)
	for i, row := range rows {
		copy(flat[i*n:(i+1)*n], row)
	}
	return flat
}

func TestPrimMST_FourPointKnownWeights(t *testing.T) {
	dist := squareMatrix([][]float64{
		{0, 1, 3, 4},
		{1, 0, 2, 5},
		{3, 2, 0, 1},
		{4, 5, 1, 0},
	})

	edges := PrimMST(dist, 4)
	if len(edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(edges))
	}
	if total := mstWeight(edges); !almostEqual(total, 4.0, floatTol) {
		t.Errorf("total weight = %v, want 4", total)
	}

	byWeight := map[float64]int{}
	for _, e := range edges {
		byWeight[e[2]]++
	}
	if byWeight[1.0] != 2 || byWeight[2.0] != 1 {
		t.Errorf("edge weight multiset = %v, want {1:2, 2:1}", byWeight)
	}
}

func TestPrimMST_DisconnectedComponentForcesInfEdge(t *testing.T) {
	inf := math.Inf(1)

	t.Run("finite tree still reachable without the inf edge", func(t *testing.T) {
		dist := squareMatrix([][]float64{
			{0, 2, inf},
			{2, 0, 3},
			{inf, 3, 0},
		})
		edges := PrimMST(dist, 3)
		if len(edges) != 2 {
			t.Fatalf("got %d edges, want 2", len(edges))
		}
		if total := mstWeight(edges); !almostEqual(total, 5.0, floatTol) {
			t.Errorf("total weight = %v, want 5", total)
		}
		for _, e := range edges {
			if math.IsInf(e[2], 1) {
				t.Error("no edge should be +Inf when a finite spanning tree exists")
			}
		}
	})

	t.Run("inf edge required when graph is truly disconnected", func(t *testing.T) {
		dist := squareMatrix([][]float64{
			{0, 2, inf},
			{2, 0, inf},
			{inf, inf, 0},
		})
		edges := PrimMST(dist, 3)
		if len(edges) != 2 {
			t.Fatalf("got %d edges, want 2", len(edges))
		}
		hasInf := false
		for _, e := range edges {
			hasInf = hasInf || math.IsInf(e[2], 1)
		}
		if !hasInf {
			t.Error("expected the MST to be forced to include a +Inf edge")
		}
	})
}

func TestPrimMST_DegenerateSizes(t *testing.T) {
	if edges := PrimMST([]float64{0}, 1); len(edges) != 0 {
		t.Fatalf("n=1: got %d edges, want 0", len(edges))
	}

	dist := squareMatrix([][]float64{{0, 5}, {5, 0}})
	edges := PrimMST(dist, 2)
	if len(edges) != 1 {
		t.Fatalf("n=2: got %d edges, want 1", len(edges))
	}
	if !almostEqual(edges[0][2], 5.0, floatTol) {
		t.Errorf("n=2: edge weight = %v, want 5", edges[0][2])
	}
}

func TestPrimMST_SixPointChainStructure(t *testing.T) {
	// A complete graph whose cheapest spanning structure is the chain
	// 0-1-2-3-4-5 with weights 1,2,3,5,6 — every shortcut costs more.
	dist := squareMatrix([][]float64{
		{0, 1, 4, 7, 10, 13},
		{1, 0, 2, 6, 9, 12},
		{4, 2, 0, 3, 8, 11},
		{7, 6, 3, 0, 5, 10},
		{10, 9, 8, 5, 0, 6},
		{13, 12, 11, 10, 6, 0},
	})

	edges := PrimMST(dist, 6)
	if len(edges) != 5 {
		t.Fatalf("got %d edges, want 5", len(edges))
	}
	if total := mstWeight(edges); !almostEqual(total, 17.0, floatTol) {
		t.Errorf("total weight = %v, want 17", total)
	}
}
