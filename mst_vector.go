package hdbscan

import (
	"math"

	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// PrimMSTVector builds a minimum spanning tree the same way PrimMST does,
// but without ever materializing the n×n mutual reachability matrix
// (spec.md §4.5): mutual reachability distances are derived from the raw
// point data on the fly, so memory use is O(n) rather than O(n²).
//
// data is flat row-major with n rows and dims columns; coreDistances has
// one entry per point; metric computes raw distances; alpha scales them
// before the max-with-core-distances step (mr = max(dist/alpha, core[i],
// core[j])).
//
// The result has n-1 rows [from, to, weight]. Unlike PrimMST's chained
// format, from here is whichever already-attached node actually produced
// the shortest known path to to, which may not be the node most recently
// attached.
func PrimMSTVector(data []float64, n, dims int, coreDistances []float64, metric DistanceMetric, alpha float64) [][3]float64 {
	if n <= 1 {
		return nil
	}

	attached := make([]bool, n)
	bestDist := make([]float64, n)
	bestSource := make([]int, n)
	for j := range bestDist {
		bestDist[j] = math.Inf(1)
	}

	edges := make([][3]float64, 0, n-1)
	sawInf := false
	frontierNode := 0

	for step := 1; step < n; step++ {
		attached[frontierNode] = true
		frontierCore := coreDistances[frontierNode]
		frontierRow := data[frontierNode*dims : (frontierNode+1)*dims]

		bestNode, bestWeight, bestFrom := -1, math.Inf(1), 0

		for j := 0; j < n; j++ {
			if attached[j] {
				continue
			}

			raw := metric.Distance(frontierRow, data[j*dims:(j+1)*dims])
			if alpha != 1.0 {
				raw /= alpha
			}

			mutual := raw
			if frontierCore > mutual {
				mutual = frontierCore
			}
			if core := coreDistances[j]; core > mutual {
				mutual = core
			}

			if mutual < bestDist[j] {
				bestDist[j] = mutual
				bestSource[j] = frontierNode
			}

			if bestNode == -1 || bestDist[j] < bestWeight {
				bestWeight = bestDist[j]
				bestFrom = bestSource[j]
				bestNode = j
			}
		}

		if math.IsInf(bestWeight, 1) {
			sawInf = true
		}

		edges = append(edges, [3]float64{float64(bestFrom), float64(bestNode), bestWeight})
		frontierNode = bestNode
	}

	if sawInf {
		log.Warn("mst contains edge(s) with +Inf weight", zap.Int("n", n))
	}

	return edges
}
