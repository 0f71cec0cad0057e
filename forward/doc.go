// Package forward computes the extracellular potentials that a known
// current-source-density profile produces at a set of electrodes, by
// numerical integration of the profile against the Poisson-equation
// point-source kernels.
//
// 🚀 What is forward modelling?
//
//	CSD estimation is an inverse problem; the forward model is its ground
//	truth generator.  Given an analytic source profile (dipoles, Gaussian
//	blobs), forward computes the potential each electrode would observe,
//	which can then be fed back through the estimator to validate it
//	end-to-end.  It is used in:
//	  • Validation of kernel CSD reconstruction (round-trip tests)
//	  • Synthetic benchmarks for electrode layouts
//	  • Teaching material for volume-conductor physics
//
// ✨ Key features:
//   - 1D / 2D / 3D potentials via composite-Simpson quadrature (gonum)
//   - shared point-source kernels (PotentialKernel1D/2D/3D) with a hard
//     distance floor — no NaN or Inf, even with an electrode sitting
//     exactly on a charge-grid node
//   - closed-form test profiles: Gauss1DDipole, LargeSource2D,
//     SmallSource2D, Gauss3DDipole
//   - regular electrode-grid generation (Electrodes1D/2D/3D)
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/gocsd/forward"
//
//	opts := forward.DefaultOptions()     // bounds [0,1], res 50, σ=1, h=50
//	eleX, err := forward.Electrodes1D([2]float64{0.1, 0.9}, 5)
//	if err != nil { ... }
//	pots, err := forward.Potentials1D(forward.Gauss1DDipole, eleX, &opts)
//
// Physics (Potworowski et al., 2012):
//
//	1D: Φ(x₀) = 1/(2σ) ∫ C(x′)·(√((x′−x₀)²+h²) − |x′−x₀|) dx′
//	2D: Φ(p)  = 1/(2πσ) ∬ C(p′)·asinh(2h/‖p−p′‖) dp′
//	3D: Φ(p)  = 1/(4πσ) ∭ C(p′)/‖p−p′‖ dp′
//
// Complexity: O(E·Rᵈ) integrand evaluations for E electrodes, resolution R
// per axis, dimensionality d.
//
// See example_test.go for runnable examples.
package forward
