// Package kcsd reconstructs Current Source Density from extracellular
// potentials with the kernel CSD method (kCSD): basis sources on a
// regular grid, a symmetric electrode kernel, and ridge-regularized
// inversion, with optional cross-validated hyperparameter search.
//
// 🚀 What is kCSD?
//
//	Place M basis sources b_j on a grid covering the electrode span.  Each
//	basis source has a known potential footprint at every electrode,
//	obtained by Simpson integration of the basis profile against the same
//	Poisson kernels the forward package uses.  Collect these into
//	B ∈ ℝ^{N×M} (electrodes × sources), and the basis CSD values on the
//	estimation grid into B̃ ∈ ℝ^{G×M}.  Then
//
//	  K  = B·Bᵀ/M          (N×N electrode kernel, symmetric PSD)
//	  K̃  = B̃·Bᵀ/M          (G×N cross-kernel)
//	  Ĉ  = K̃·(K+λI)⁻¹·V    (estimated CSD on the grid, all time samples)
//
//	λ is the ridge parameter; R (the basis radius) controls smoothness.
//	Both can be selected by leave-one-out cross-validation.
//
// ✨ Key features:
//   - KCSD1D / KCSD2D / KCSD3D and MoIKCSD (Method of Images for a
//     tissue/saline boundary) behind one Estimator type, dispatched by a
//     closed Method enum
//   - Gaussian or step basis sources
//   - Cholesky solve with LU fallback; λ floored at 1e-12 so the system
//     is always invertible
//   - leave-one-out CV over the (Rs × lambdas) grid, parallel across R
//     candidates, deterministic winner selection
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/gocsd/kcsd"
//
//	cfg := kcsd.DefaultConfig(kcsd.KCSD1D)
//	est, err := kcsd.New(kcsd.KCSD1D, coords, pots, cfg)  // pots: N×T
//	if err != nil { ... }
//	_, _, err = est.CrossValidate(nil, nil)  // λ search with default grid
//	grid, err := est.Values()                // G×T estimate
//	xs := est.AxisX()                        // grid axis, length per GridRes
//
// Complexity: kernel construction is O(N·M·Qᵈ) integrand evaluations
// (Q = QuadRes); each solve is O(N³ + G·N·T).
//
// Reference: Potworowski, Jakuczun, Łęski, Wójcik (2012), "Kernel current
// source density method", Neural Computation 24(2).
package kcsd
