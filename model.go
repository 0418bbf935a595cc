package hdbscan

import "sync"

// Model is the stateful HDBSCAN estimator (spec.md §6). Construct one with
// NewModel, call Fit once, then read Labels/NumClusters/NumNoise/Name.
//
// A *Model is safe for concurrent use: Fit is idempotent under a coarse
// lock, so a second concurrent Fit call observes the first call's
// completion and returns its cached result instead of redoing the work
// (spec.md §5). Accessors taken before Fit completes return ErrNotFitted.
type Model struct {
	mu      sync.Mutex
	cfg     Config
	fitted  bool
	fitErr  error
	result  *fitResult
}

// fitResult holds everything a completed Fit publishes. Once fitted is set
// true, this value is never mutated again; readers take a defensive copy.
type fitResult struct {
	labels        []int
	probabilities []float64
	stabilities   map[int]float64
	condensedTree []CondensedTreeEntry
}

// NewModel validates cfg and returns a *Model ready for Fit. Parameter
// errors surface here, before any clustering work begins (spec.md §7).
func NewModel(cfg Config) (*Model, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &Model{cfg: cfg}, nil
}

// Fit runs the HDBSCAN pipeline on data (one point per row, all rows the
// same dimensionality) and publishes the result atomically with the
// "fitted" flag. A second concurrent or sequential call on an already-fit
// Model returns the cached result without recomputing (spec.md §5, §8
// property 8: idempotence).
func (m *Model) Fit(data [][]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fitted {
		return m.fitErr
	}

	result, err := fitPipeline(data, m.cfg)
	m.result = result
	m.fitErr = err
	m.fitted = true
	return m.fitErr
}

// Labels returns a defensive copy of the fitted label vector (NOISE == -1).
func (m *Model) Labels() ([]int, error) {
	r, err := m.fittedResult()
	if err != nil {
		return nil, err
	}
	out := make([]int, len(r.labels))
	copy(out, r.labels)
	return out, nil
}

// Probabilities returns a defensive copy of the fitted membership
// probabilities (SPEC_FULL.md §4 supplement), one per point, in [0, 1].
func (m *Model) Probabilities() ([]float64, error) {
	r, err := m.fittedResult()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(r.probabilities))
	copy(out, r.probabilities)
	return out, nil
}

// Stabilities returns a copy of the fitted cluster-id to stability map.
func (m *Model) Stabilities() (map[int]float64, error) {
	r, err := m.fittedResult()
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(r.stabilities))
	for k, v := range r.stabilities {
		out[k] = v
	}
	return out, nil
}

// CondensedTree returns a copy of the fitted condensed cluster tree, useful
// for visualization or custom post-processing.
func (m *Model) CondensedTree() ([]CondensedTreeEntry, error) {
	r, err := m.fittedResult()
	if err != nil {
		return nil, err
	}
	out := make([]CondensedTreeEntry, len(r.condensedTree))
	copy(out, r.condensedTree)
	return out, nil
}

// NumClusters returns the number of distinct non-noise labels.
func (m *Model) NumClusters() (int, error) {
	r, err := m.fittedResult()
	if err != nil {
		return 0, err
	}
	seen := make(map[int]bool)
	for _, l := range r.labels {
		if l != -1 {
			seen[l] = true
		}
	}
	return len(seen), nil
}

// NumNoise returns the count of NOISE-labeled points.
func (m *Model) NumNoise() (int, error) {
	r, err := m.fittedResult()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, l := range r.labels {
		if l == -1 {
			n++
		}
	}
	return n, nil
}

// Name identifies the estimator, matching spec.md §6's name() operation.
func (m *Model) Name() string {
	return "HDBSCAN"
}

// fittedResult returns the published result under lock, or ErrNotFitted if
// Fit has not completed (spec.md §7).
func (m *Model) fittedResult() (*fitResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.fitted {
		return nil, fail(NotFitted, "Model has not been fitted")
	}
	if m.fitErr != nil {
		return nil, m.fitErr
	}
	return m.result, nil
}

// trivialResult builds the all-noise result spec.md §7 mandates for N < 2
// points: fit succeeds, every point is NOISE, no clusters.
func trivialResult(n int) *fitResult {
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	return &fitResult{
		labels:        labels,
		probabilities: make([]float64, n),
		stabilities:   map[int]float64{},
	}
}

// fitPipeline runs union-find labeling, condensation, stability, selection
// and label assignment (C1-C9) from raw point data through to a fitResult.
// Dispatches between AlgorithmGeneric (dense matrix) and AlgorithmPrimsIndexed
// (CoreDistanceSource, matrix-free) per cfg.Algorithm.
func fitPipeline(data [][]float64, cfg Config) (*fitResult, error) {
	n := len(data)
	if n < 2 {
		return trivialResult(n), nil
	}

	dims := len(data[0])
	flatData := make([]float64, n*dims)
	for i, row := range data {
		if len(row) != dims {
			return nil, fail(InvalidParameter, "row %d has %d dimensions, want %d", i, len(row), dims)
		}
		copy(flatData[i*dims:], row)
	}

	var mstEdges [][3]float64
	switch cfg.Algorithm {
	case AlgorithmPrimsIndexed:
		coreDistances := cfg.CoreDistanceSource.CoreDistances(flatData, n, dims, cfg.MinPts, cfg.Metric)
		mstEdges = PrimMSTVector(flatData, n, dims, coreDistances, cfg.Metric, cfg.Alpha)
	default:
		distMatrix := ComputePairwiseDistancesParallel(flatData, n, dims, cfg.Metric, cfg.Workers)
		coreDistances := ComputeCoreDistancesParallel(distMatrix, n, cfg.MinPts, cfg.Workers)
		mrMatrix := MutualReachabilityParallel(distMatrix, coreDistances, n, cfg.Alpha, cfg.Workers)
		mstEdges = PrimMST(mrMatrix, n)
	}

	dendrogram := Label(mstEdges, n)
	condensedTree := CondenseTree(dendrogram, cfg.MinClusterSize)

	if condensedTree == nil {
		r := trivialResult(n)
		r.condensedTree = nil
		return r, nil
	}

	stability := ComputeStability(condensedTree)

	var selectedClusters map[int]bool
	var updatedStability map[int]float64
	switch cfg.ClusterSelectionMethod {
	case "leaf":
		selectedClusters = SelectClustersLeaf(condensedTree, cfg.ClusterSelectionEpsilon)
		updatedStability = stability
	default:
		selectedClusters, updatedStability = SelectClustersEOM(condensedTree, stability, cfg.AllowSingleCluster)
		if cfg.ClusterSelectionEpsilon > 0 {
			selectedClusters = EpsilonSearch(condensedTree, selectedClusters,
				cfg.ClusterSelectionEpsilon, cfg.AllowSingleCluster)
		}
	}

	labels, probabilities := GetLabelsAndProbabilities(
		condensedTree, selectedClusters, n,
		cfg.AllowSingleCluster, cfg.ClusterSelectionEpsilon,
	)

	return &fitResult{
		labels:        labels,
		probabilities: probabilities,
		stabilities:   updatedStability,
		condensedTree: condensedTree,
	}, nil
}
