// Package hdbscan implements Hierarchical Density-Based Spatial Clustering
// of Applications with Noise (HDBSCAN).
//
// HDBSCAN extends DBSCAN by converting it into a hierarchical algorithm and
// then extracting a flat clustering based on cluster stability. It can find
// clusters of varying densities and robustly identifies noise points.
//
// Basic usage:
//
//	cfg := hdbscan.DefaultConfig()
//	cfg.MinClusterSize = 10
//
//	model, err := hdbscan.NewModel(cfg)
//	if err != nil {
//		// InvalidParameter: cfg rejected before any clustering work began.
//	}
//	if err := model.Fit(data); err != nil {
//		// InvalidParameter: rows of data differ in dimensionality.
//	}
//	labels, _ := model.Labels()       // labels[i] == -1 marks noise
//	probs, _ := model.Probabilities() // probs[i] in [0, 1]
//	n, _ := model.NumClusters()
//
// A *Model is safe for concurrent use: Fit is idempotent under a coarse
// lock, so a second concurrent Fit observes the first call's completion and
// returns its cached result rather than repeating the work.
//
// # Algorithm selection
//
// Config.Algorithm chooses the MST construction strategy:
//
//	cfg.Algorithm = hdbscan.AlgorithmGeneric      // dense N×N mutual-reachability matrix, Prim's (default)
//	cfg.Algorithm = hdbscan.AlgorithmPrimsIndexed // matrix-free Prim's driven by a CoreDistanceSource
//
// AlgorithmPrimsIndexed never materializes the full distance matrix; it
// consults Config.CoreDistanceSource (BruteForceCoreDistanceSource by
// default) for core distances and Config.Metric for on-demand pairwise
// distances. A caller may supply a spatial-index-backed CoreDistanceSource
// without modifying this package.
package hdbscan
