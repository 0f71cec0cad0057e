// Package forward defines options, profile types, and sentinel errors
// for the forward subpackage of github.com/katalvlaran/gocsd.
package forward

import "errors"

// Sentinel errors for forward-model operations.
var (
	// ErrNilProfile indicates a nil source-profile function.
	ErrNilProfile = errors.New("forward: csd profile must not be nil")
	// ErrNoElectrodes indicates an empty electrode coordinate slice.
	ErrNoElectrodes = errors.New("forward: at least one electrode position is required")
	// ErrAxisMismatch indicates per-axis electrode slices of differing lengths.
	ErrAxisMismatch = errors.New("forward: electrode coordinate slices must share one length")
	// ErrBadResolution indicates an integration resolution below 3 nodes.
	ErrBadResolution = errors.New("forward: integration resolution must be at least 3")
	// ErrBadGridResolution indicates an electrode grid resolution below 2.
	ErrBadGridResolution = errors.New("forward: electrode grid resolution must be at least 2")
	// ErrBadBounds indicates an integration interval with low >= high.
	ErrBadBounds = errors.New("forward: bounds must satisfy low < high on every axis")
	// ErrBadConductivity indicates a non-positive tissue conductivity.
	ErrBadConductivity = errors.New("forward: tissue conductivity sigma must be positive")
)

// Profile1D is an analytic CSD profile over one spatial coordinate.
type Profile1D func(x float64) float64

// Profile2D is an analytic CSD profile over two spatial coordinates.
type Profile2D func(x, y float64) float64

// Profile3D is an analytic CSD profile over three spatial coordinates.
type Profile3D func(x, y, z float64) float64

// Options configures the forward-model integration.
//
// Fields:
//   - XBounds/YBounds/ZBounds — integration interval per axis, [low, high].
//     Only the axes of the chosen dimensionality are consulted.
//   - Resolution — number of Simpson nodes per axis (≥ 3).
//   - Sigma      — tissue conductivity σ (> 0).
//   - H          — source-plane half-thickness h of the volume conductor.
//
// Example:
//
//	opts := forward.DefaultOptions()
//	opts.Resolution = 100          // finer quadrature
//	pots, err := forward.Potentials1D(profile, eleX, &opts)
type Options struct {
	XBounds    [2]float64
	YBounds    [2]float64
	ZBounds    [2]float64
	Resolution int
	Sigma      float64
	H          float64
}

// DefaultOptions returns Options with the reference defaults:
// all bounds [0,1], Resolution=50, Sigma=1.0, H=50.
func DefaultOptions() Options {
	return Options{
		XBounds:    [2]float64{0, 1},
		YBounds:    [2]float64{0, 1},
		ZBounds:    [2]float64{0, 1},
		Resolution: 50,
		Sigma:      1.0,
		H:          50,
	}
}

// validate checks the options for the requested dimensionality.
func (o *Options) validate(dim int) error {
	if o.Resolution < 3 {
		return ErrBadResolution
	}
	if o.Sigma <= 0 {
		return ErrBadConductivity
	}
	bounds := [][2]float64{o.XBounds, o.YBounds, o.ZBounds}
	for a := 0; a < dim; a++ {
		if bounds[a][0] >= bounds[a][1] {
			return ErrBadBounds
		}
	}
	return nil
}
