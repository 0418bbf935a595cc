package hdbscan

// MutualReachability turns a pairwise distance matrix into the mutual
// reachability graph HDBSCAN runs its MST over (spec.md §4.3):
//
//	mr[i][j] = max(dist[i][j] / alpha, core[i], core[j])
//
// distMatrix and coreDistances are flat row-major []float64 over n points;
// the result has the same flat n*n layout. alpha == 1.0 skips the division
// entirely rather than dividing by one.
func MutualReachability(distMatrix, coreDistances []float64, n int, alpha float64) []float64 {
	out := make([]float64, n*n)

	scale := alpha != 1.0
	for i := 0; i < n; i++ {
		rowCore := coreDistances[i]
		base := i * n
		for j := 0; j < n; j++ {
			d := distMatrix[base+j]
			if scale {
				d /= alpha
			}
			reach := d
			if rowCore > reach {
				reach = rowCore
			}
			if colCore := coreDistances[j]; colCore > reach {
				reach = colCore
			}
			out[base+j] = reach
		}
	}

	return out
}
