package hdbscan

import (
	"sort"
	"sync"
)

// rowChunks splits the row range [0,n) into at most numWorkers contiguous
// chunks and runs work on each chunk concurrently, blocking until every
// chunk finishes. It's the sharding pattern shared by every *Parallel
// function below: row ranges never overlap, so workers never need to
// synchronize with each other to write their share of a result slice.
func rowChunks(n, numWorkers int, work func(start, end int)) {
	var wg sync.WaitGroup
	chunkSize := (n + numWorkers - 1) / numWorkers

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			work(start, end)
		}(start, end)
	}

	wg.Wait()
}

// ComputePairwiseDistancesParallel is ComputePairwiseDistances sharded
// across numWorkers goroutines, one contiguous band of source rows each.
// data is flat row-major with n rows and dims columns; the result is the
// same flat n*n row-major matrix ComputePairwiseDistances would produce.
// numWorkers <= 1 (or a single point) runs the sequential version instead.
func ComputePairwiseDistancesParallel(data []float64, n, dims int, metric DistanceMetric, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return ComputePairwiseDistances(data, n, dims, metric)
	}

	out := make([]float64, n*n)
	rowChunks(n, numWorkers, func(start, end int) {
		for i := start; i < end; i++ {
			rowI := data[i*dims : (i+1)*dims]
			for j := i + 1; j < n; j++ {
				d := metric.Distance(rowI, data[j*dims:(j+1)*dims])
				out[i*n+j] = d
				out[j*n+i] = d
			}
		}
	})
	return out
}

// ComputeCoreDistancesParallel is ComputeCoreDistances sharded across
// numWorkers goroutines, each owning a contiguous band of points and its
// own scratch buffer for sorting neighbor distances.
func ComputeCoreDistancesParallel(distMatrix []float64, n, minSamples, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return ComputeCoreDistances(distMatrix, n, minSamples)
	}

	minSamples = min(max(minSamples, 0), n-1)
	core := make([]float64, n)
	if minSamples == 0 {
		return core
	}

	rowChunks(n, numWorkers, func(start, end int) {
		neighbors := make([]float64, n-1)
		for i := start; i < end; i++ {
			k := 0
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				neighbors[k] = distMatrix[i*n+j]
				k++
			}
			sort.Float64s(neighbors)
			core[i] = neighbors[minSamples-1]
		}
	})
	return core
}

// MutualReachabilityParallel is MutualReachability sharded across
// numWorkers goroutines, each owning a contiguous band of rows.
func MutualReachabilityParallel(distMatrix, coreDistances []float64, n int, alpha float64, numWorkers int) []float64 {
	if numWorkers <= 1 || n <= 1 {
		return MutualReachability(distMatrix, coreDistances, n, alpha)
	}

	out := make([]float64, n*n)
	scale := alpha != 1.0

	rowChunks(n, numWorkers, func(start, end int) {
		for i := start; i < end; i++ {
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
	})
	return out
}
