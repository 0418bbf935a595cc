package hdbscan

import (
	"math"

	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// PrimMST builds a minimum spanning tree over a dense mutual reachability
// matrix with Prim's algorithm (spec.md §4.4). mrMatrix is flat []float64,
// n×n row-major. The result has n-1 rows, each [from, to, weight], where
// from is the node the tree was attached to when to joined it — the same
// chained edge format mst_linkage_core produces, not a sorted edge list.
//
// Rather than a boolean in-tree marker, the frontier is tracked as a
// shrinking slice of not-yet-attached node ids paired with their current
// best distance to the tree; each step does an elementwise min against the
// newly attached node's matrix row and drops that node from the frontier.
func PrimMST(mrMatrix []float64, n int) [][3]float64 {
	if n <= 1 {
		return nil
	}

	frontier := make([]int, n-1)
	distToTree := make([]float64, n-1)
	for j := 1; j < n; j++ {
		frontier[j-1] = j
		distToTree[j-1] = mrMatrix[j]
	}

	attachedFrom := 0
	edges := make([][3]float64, 0, n-1)
	sawInf := false

	for len(frontier) > 0 {
		nearest := 0
		for i := 1; i < len(frontier); i++ {
			if distToTree[i] < distToTree[nearest] {
				nearest = i
			}
		}

		joining := frontier[nearest]
		weight := distToTree[nearest]
		if math.IsInf(weight, 1) {
			sawInf = true
		}

		edges = append(edges, [3]float64{float64(attachedFrom), float64(joining), weight})

		last := len(frontier) - 1
		frontier[nearest] = frontier[last]
		distToTree[nearest] = distToTree[last]
		frontier = frontier[:last]
		distToTree = distToTree[:last]

		row := mrMatrix[joining*n:]
		for i, node := range frontier {
			if d := row[node]; d < distToTree[i] {
				distToTree[i] = d
			}
		}

		attachedFrom = joining
	}

	if sawInf {
		log.Warn("mst contains edge(s) with +Inf weight", zap.Int("n", n))
	}

	return edges
}
