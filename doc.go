// Package gocsd estimates Current Source Density (CSD) — the spatial
// distribution of current sources and sinks in neural tissue — from
// extracellular potentials recorded on laminar probes, MEAs and
// multi-shank arrays.
//
// 🚀 What is gocsd?
//
//	A pure-numeric toolkit that brings together:
//		• Kernel CSD estimation (kCSD) in 1D, 2D and 3D
//		• Method-of-Images kernels (MoIKCSD) for slice-on-MEA recordings
//		• Ridge-regularized inversion with leave-one-out cross-validation
//		• Forward modelling: Simpson integration of analytic source profiles
//		• Electrode-grid generation and closed-form test sources
//
// ✨ Why choose gocsd?
//
//   - Fail-fast validation — every malformed input is rejected before any
//     numeric work begins
//   - Deterministic — fixed inputs give bit-identical estimates, including
//     the parallel cross-validation search
//   - Pure Go float64 numerics on top of gonum — no cgo
//
// Under the hood, everything is organized under three subpackages:
//
//	csd/     — dispatch & validation: unit handling, method/dimensionality
//	           checks, tensor-shaped results with spatial axes
//	kcsd/    — the estimator: basis sources, kernel matrices, regularized
//	           inversion, cross-validated hyperparameter search
//	forward/ — forward model: Poisson-kernel quadrature, test source
//	           profiles, electrode grids
//
// Quick sketch of the round trip:
//
//	profile ──FWD──▶ potentials ──CSD──▶ estimated sources
//	   ▲                                        │
//	   └───────────── compare ◀─────────────────┘
//
// Dive into the per-package docs for contracts, complexity notes and
// worked examples.
//
//	go get github.com/katalvlaran/gocsd
package gocsd
