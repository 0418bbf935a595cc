package hdbscan

import "runtime"

// Algorithm selects the MST construction strategy (spec.md §6).
type Algorithm string

const (
	// AlgorithmGeneric builds the full N×N mutual-reachability matrix and
	// runs dense Prim's (C4a).
	AlgorithmGeneric Algorithm = "generic"
	// AlgorithmPrimsIndexed runs Prim's without materializing the full
	// matrix, computing mutual reachability on demand from a
	// CoreDistanceSource (C4b).
	AlgorithmPrimsIndexed Algorithm = "prims_indexed"
)

// Config controls HDBSCAN clustering behavior. Start with [DefaultConfig]
// and override the fields that matter for the call.
type Config struct {
	// MinPts is the neighborhood size used for core-distance computation.
	// Must be >= 1. Default: 5.
	MinPts int

	// MinClusterSize is the smallest group of points considered a cluster;
	// any would-be cluster with fewer points is dissolved into fall-outs.
	// Must be >= 2. Default: 5.
	MinClusterSize int

	// Alpha scales pairwise distances before computing mutual reachability.
	// Larger alpha means smaller effective distances and less conservative
	// merges. Must be > 0. Default: 1.0.
	Alpha float64

	// Algorithm selects the MST construction strategy. Default: AlgorithmGeneric.
	Algorithm Algorithm

	// Metric is the pairwise distance function, used by both algorithms:
	// AlgorithmPrimsIndexed computes distances on demand, AlgorithmGeneric
	// computes the full distance matrix once up front. Default: EuclideanMetric.
	Metric DistanceMetric

	// CoreDistanceSource supplies core distances for AlgorithmPrimsIndexed
	// without requiring a full distance matrix; see core_distance.go. A caller
	// may plug in a spatial-index-backed implementation. Default:
	// BruteForceCoreDistanceSource, ignored by AlgorithmGeneric.
	CoreDistanceSource CoreDistanceSource

	// LeafSize is a tree-leaf granularity hint for a spatial index. It is
	// only validated: CoreDistanceSource.CoreDistances takes no leaf size,
	// so no CoreDistanceSource receives it. Must be >= 1. Default: 40.
	LeafSize int

	// ClusterSelectionMethod chooses how flat clusters are extracted from
	// the condensed tree: "eom" (Excess of Mass, maximizes stability) or
	// "leaf" (every leaf of the condensed cluster tree). Default: "eom".
	ClusterSelectionMethod string

	// AllowSingleCluster permits the "eom" selector to choose the tree
	// root as the sole cluster instead of forcing at least one split.
	// Default: false.
	AllowSingleCluster bool

	// ClusterSelectionEpsilon, if > 0, merges clusters born below this
	// distance threshold into their nearest ancestor that clears it.
	// Must be >= 0. Default: 0 (no merging).
	ClusterSelectionEpsilon float64

	// Workers controls the number of goroutines used for the
	// parallelizable distance/core-distance/mutual-reachability stages of
	// AlgorithmGeneric (spec.md §5 permits this as an internal
	// optimization). 0 means runtime.NumCPU(). Default: 0 (auto).
	Workers int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		MinPts:                 5,
		MinClusterSize:         5,
		Alpha:                  1.0,
		Algorithm:              AlgorithmGeneric,
		Metric:                 EuclideanMetric{},
		ClusterSelectionMethod: "eom",
		LeafSize:               40,
	}
}

// validateConfig checks cfg and returns an InvalidParameter error describing
// the first violation found, or nil. Called at construction/Fit entry,
// before any clustering work begins (spec.md §7).
func validateConfig(cfg *Config) error {
	if cfg.MinPts < 1 {
		return fail(InvalidParameter, "MinPts must be >= 1, got %d", cfg.MinPts)
	}
	if cfg.MinClusterSize < 2 {
		return fail(InvalidParameter, "MinClusterSize must be >= 2, got %d", cfg.MinClusterSize)
	}
	if cfg.Alpha <= 0 {
		return fail(InvalidParameter, "Alpha must be > 0, got %f", cfg.Alpha)
	}
	switch cfg.Algorithm {
	case AlgorithmGeneric, AlgorithmPrimsIndexed:
		// valid
	default:
		return fail(InvalidParameter, "invalid Algorithm %q", cfg.Algorithm)
	}
	if cfg.ClusterSelectionMethod != "eom" && cfg.ClusterSelectionMethod != "leaf" {
		return fail(InvalidParameter, "ClusterSelectionMethod must be \"eom\" or \"leaf\", got %q", cfg.ClusterSelectionMethod)
	}
	if cfg.ClusterSelectionEpsilon < 0 {
		return fail(InvalidParameter, "ClusterSelectionEpsilon must be >= 0, got %f", cfg.ClusterSelectionEpsilon)
	}
	if cfg.LeafSize < 1 {
		return fail(InvalidParameter, "LeafSize must be >= 1, got %d", cfg.LeafSize)
	}
	return nil
}

// applyDefaults fills the zero-valued Metric, CoreDistanceSource,
// ClusterSelectionMethod and Workers fields with their defaults. Other
// fields are left as given for validateConfig to check.
func applyDefaults(cfg *Config) {
	if cfg.Metric == nil {
		cfg.Metric = EuclideanMetric{}
	}
	if cfg.CoreDistanceSource == nil {
		cfg.CoreDistanceSource = BruteForceCoreDistanceSource{}
	}
	if cfg.ClusterSelectionMethod == "" {
		cfg.ClusterSelectionMethod = "eom"
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}
