// Package kcsd defines the method enum, configuration, and sentinel
// errors for the kernel CSD estimator.
package kcsd

import "errors"

// Sentinel errors for estimator construction and solving.
var (
	// ErrNoElectrodes indicates an empty electrode coordinate set.
	ErrNoElectrodes = errors.New("kcsd: at least one electrode is required")
	// ErrDimension indicates electrode coordinates whose dimensionality
	// does not match the chosen method.
	ErrDimension = errors.New("kcsd: electrode dimensionality does not match the method")
	// ErrShapeMismatch indicates a potential matrix whose row count differs
	// from the electrode count, or with zero time samples.
	ErrShapeMismatch = errors.New("kcsd: potential matrix shape must be electrodes x samples")
	// ErrBadConfig indicates an out-of-range configuration field.
	ErrBadConfig = errors.New("kcsd: invalid configuration")
	// ErrDegenerateGeometry indicates electrodes spanning a zero extent on
	// some axis, leaving no room for an estimation grid.
	ErrDegenerateGeometry = errors.New("kcsd: electrodes span a zero extent on some axis")
	// ErrNonPositiveCandidate indicates a cross-validation candidate R or λ
	// that is not strictly positive.
	ErrNonPositiveCandidate = errors.New("kcsd: cross-validation candidates must be strictly positive")
	// ErrSingularKernel indicates a kernel system that could not be solved
	// even after regularization.
	ErrSingularKernel = errors.New("kcsd: kernel system is singular even after regularization")
)

// Method enumerates the supported kernel CSD variants.
type Method int

const (
	// KCSD1D reconstructs along a laminar probe (1D coordinates).
	KCSD1D Method = iota + 1
	// KCSD2D reconstructs over a planar MEA (2D coordinates).
	KCSD2D
	// KCSD3D reconstructs over a volumetric electrode array (3D coordinates).
	KCSD3D
	// MoIKCSD is KCSD2D with a Method-of-Images kernel correcting for the
	// conductivity step at a tissue/saline boundary.
	MoIKCSD
)

// Availability tables: the methods valid for each electrode
// dimensionality.  Process-wide constants; do not mutate.
var (
	Available1D = []Method{KCSD1D}
	Available2D = []Method{KCSD2D, MoIKCSD}
	Available3D = []Method{KCSD3D}
)

// Dim returns the electrode dimensionality the method operates on,
// or 0 for an unknown method.
func (m Method) Dim() int {
	switch m {
	case KCSD1D:
		return 1
	case KCSD2D, MoIKCSD:
		return 2
	case KCSD3D:
		return 3
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case KCSD1D:
		return "KCSD1D"
	case KCSD2D:
		return "KCSD2D"
	case KCSD3D:
		return "KCSD3D"
	case MoIKCSD:
		return "MoIKCSD"
	default:
		return "Method(unknown)"
	}
}

// BasisKind selects the shape of the basis sources.
type BasisKind int

const (
	// GaussianBasis uses normalized Gaussian sources of radius R (3σ = R support cut at 3R).
	GaussianBasis BasisKind = iota
	// StepBasis uses uniform sources of radius R with unit total current.
	StepBasis
)

// Config holds the estimator hyperparameters.  Zero values are rejected
// by New — construct via DefaultConfig and override fields as needed.
//
// Fields:
//   - NSources — basis sources per axis (≥ 2).
//   - GridRes  — estimation-grid points per axis (≥ 2).
//   - QuadRes  — Simpson nodes per axis for the basis-potential
//     integrals (≥ 3; odd values give the classic composite rule).
//   - R        — basis-source radius, in the coordinate length unit (> 0).
//   - H        — source-plane half-thickness of the volume conductor (> 0).
//   - Sigma    — tissue conductivity σ (> 0).
//   - Lambda   — ridge parameter λ; 0 means "use the invertibility floor"
//     (1e-12).  Negative values are rejected.
//   - Basis    — GaussianBasis or StepBasis.
//   - MoIIters     — number of mirror-image terms for MoIKCSD (≥ 1).
//   - SigmaSaline  — saline conductivity σ_S for MoIKCSD (≥ 0).
//   - Workers  — cross-validation parallelism; ≤ 0 means GOMAXPROCS.
type Config struct {
	NSources int
	GridRes  int
	QuadRes  int
	R        float64
	H        float64
	Sigma    float64
	Lambda   float64
	Basis    BasisKind

	MoIIters    int
	SigmaSaline float64

	Workers int
}

// DefaultConfig returns the documented defaults for a method.  Per-axis
// counts shrink with dimensionality to keep kernel construction tractable
// (64 basis sources in total for every method).
func DefaultConfig(m Method) Config {
	cfg := Config{
		R:           0.23,
		H:           1.0,
		Sigma:       1.0,
		Lambda:      0,
		Basis:       GaussianBasis,
		MoIIters:    20,
		SigmaSaline: 5.0,
	}
	switch m.Dim() {
	case 2:
		cfg.NSources, cfg.GridRes, cfg.QuadRes = 8, 32, 17
	case 3:
		cfg.NSources, cfg.GridRes, cfg.QuadRes = 4, 16, 9
	default: // 1D and the zero Method share the densest layout
		cfg.NSources, cfg.GridRes, cfg.QuadRes = 64, 100, 33
	}
	return cfg
}
