package hdbscan

import "sort"

// CoreDistanceSource is the spatial-index acceleration collaborator spec.md
// §1 declares out of scope: "spatial index structures (KD-tree / ball-tree)
// used as an acceleration for core-distance queries". The core pipeline
// only needs the result of such a query, not the index itself, so it
// depends on this interface rather than any concrete tree.
type CoreDistanceSource interface {
	// CoreDistances returns, for each of the n points in data (flat
	// row-major, dims columns each), the distance to its minPts-th nearest
	// neighbor under metric.
	CoreDistances(data []float64, n, dims, minPts int, metric DistanceMetric) []float64
}

// BruteForceCoreDistanceSource computes exact core distances without any
// spatial index: O(n²) distance evaluations plus an O(n log n) sort per
// point, O(n) memory at any one point in time. It is
// the default CoreDistanceSource and is always correct, independent of
// whether a real tree-backed implementation exists (spec.md §1: the index
// is an acceleration, not a correctness dependency).
type BruteForceCoreDistanceSource struct{}

func (BruteForceCoreDistanceSource) CoreDistances(data []float64, n, dims, minPts int, metric DistanceMetric) []float64 {
	minPts = min(minPts, n-1)
	minPts = max(minPts, 0)

	core := make([]float64, n)
	if minPts == 0 {
		return core
	}

	neighbors := make([]float64, 0, n-1)
	for i := 0; i < n; i++ {
		neighbors = neighbors[:0]
		pi := data[i*dims : (i+1)*dims]
		for j := 0; j < n; j++ {
			if j != i {
				neighbors = append(neighbors, metric.Distance(pi, data[j*dims:(j+1)*dims]))
			}
		}
		sort.Float64s(neighbors)
		core[i] = neighbors[minPts-1]
	}

	return core
}

// ComputeCoreDistances computes core distances from a distance matrix.
// distMatrix is flat n*n row-major. minSamples is clamped to [0, n-1].
// Returns []float64 of length n where core[i] is the distance to the
// minSamples-th nearest neighbor of point i.
func ComputeCoreDistances(distMatrix []float64, n, minSamples int) []float64 {
	minSamples = min(minSamples, n-1)
	minSamples = max(minSamples, 0)

	core := make([]float64, n)
	if minSamples == 0 {
		return core
	}

	for i := 0; i < n; i++ {
		neighbors := make([]float64, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				neighbors = append(neighbors, distMatrix[i*n+j])
			}
		}
		sort.Float64s(neighbors)
		core[i] = neighbors[minSamples-1]
	}

	return core
}
