package forward

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// distFloor clamps electrode-to-source distances away from zero so the
// 2D/3D kernels stay finite when an electrode coincides with a grid node.
const distFloor = 1e-7

// PotentialKernel1D is the 1D point-source Poisson kernel for a planar
// source of half-thickness h at signed in-line distance d:
// √(d²+h²) − |d|.  The 1/(2σ) scaling is applied by the integrator.
func PotentialKernel1D(d, h float64) float64 {
	return math.Sqrt(d*d+h*h) - math.Abs(d)
}

// PotentialKernel2D is the 2D point-source kernel asinh(2h/r) for in-plane
// distance r, floored at 1e-7.  The 1/(2πσ) scaling is applied by the
// integrator.
func PotentialKernel2D(r, h float64) float64 {
	if r < distFloor {
		r = distFloor
	}
	return math.Asinh(2 * h / r)
}

// PotentialKernel3D is the free-medium 3D kernel 1/r, floored at 1e-7.
// The 1/(4πσ) scaling is applied by the integrator.
func PotentialKernel3D(r float64) float64 {
	if r < distFloor {
		r = distFloor
	}
	return 1 / r
}

// Potentials1D integrates a 1D source profile against the 1D kernel and
// returns one potential per electrode position in eleX.
//
// Φ(x₀) = 1/(2σ) ∫ profile(x′)·PotentialKernel1D(x′−x₀, h) dx′
// over opts.XBounds with opts.Resolution Simpson nodes.
func Potentials1D(profile Profile1D, eleX []float64, opts *Options) ([]float64, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	if len(eleX) == 0 {
		return nil, ErrNoElectrodes
	}
	o := resolved(opts)
	if err := o.validate(1); err != nil {
		return nil, err
	}

	chrgX := floats.Span(make([]float64, o.Resolution), o.XBounds[0], o.XBounds[1])
	csd := make([]float64, len(chrgX))
	for i, x := range chrgX {
		csd[i] = profile(x)
	}

	integrand := make([]float64, len(chrgX))
	pots := make([]float64, len(eleX))
	for e, x0 := range eleX {
		for i, x := range chrgX {
			integrand[i] = csd[i] * PotentialKernel1D(x-x0, o.H)
		}
		pots[e] = integrate.Simpsons(chrgX, integrand) / (2 * o.Sigma)
	}
	return pots, nil
}

// Potentials2D integrates a 2D source profile against asinh(2h/r) and
// returns one potential per (eleX[i], eleY[i]) electrode.  The inner
// Simpson pass runs over y, the outer over x.
func Potentials2D(profile Profile2D, eleX, eleY []float64, opts *Options) ([]float64, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	if len(eleX) == 0 {
		return nil, ErrNoElectrodes
	}
	if len(eleY) != len(eleX) {
		return nil, ErrAxisMismatch
	}
	o := resolved(opts)
	if err := o.validate(2); err != nil {
		return nil, err
	}

	res := o.Resolution
	xlin := floats.Span(make([]float64, res), o.XBounds[0], o.XBounds[1])
	ylin := floats.Span(make([]float64, res), o.YBounds[0], o.YBounds[1])

	// Profile sampled once; kernel re-sampled per electrode.
	csd := make([][]float64, res)
	for ix := range csd {
		csd[ix] = make([]float64, res)
		for iy := range csd[ix] {
			csd[ix][iy] = profile(xlin[ix], ylin[iy])
		}
	}

	row := make([]float64, res)
	inner := make([]float64, res)
	pots := make([]float64, len(eleX))
	for e := range eleX {
		x0, y0 := eleX[e], eleY[e]
		for ix := range xlin {
			dx := xlin[ix] - x0
			for iy := range ylin {
				dy := ylin[iy] - y0
				row[iy] = csd[ix][iy] * PotentialKernel2D(math.Hypot(dx, dy), o.H)
			}
			inner[ix] = integrate.Simpsons(ylin, row)
		}
		pots[e] = integrate.Simpsons(xlin, inner) / (2 * math.Pi * o.Sigma)
	}
	return pots, nil
}

// Potentials3D integrates a 3D source profile against 1/r and returns one
// potential per (eleX[i], eleY[i], eleZ[i]) electrode.  Simpson passes run
// innermost over z, then y, then x.
func Potentials3D(profile Profile3D, eleX, eleY, eleZ []float64, opts *Options) ([]float64, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	if len(eleX) == 0 {
		return nil, ErrNoElectrodes
	}
	if len(eleY) != len(eleX) || len(eleZ) != len(eleX) {
		return nil, ErrAxisMismatch
	}
	o := resolved(opts)
	if err := o.validate(3); err != nil {
		return nil, err
	}

	res := o.Resolution
	xlin := floats.Span(make([]float64, res), o.XBounds[0], o.XBounds[1])
	ylin := floats.Span(make([]float64, res), o.YBounds[0], o.YBounds[1])
	zlin := floats.Span(make([]float64, res), o.ZBounds[0], o.ZBounds[1])

	csd := make([][][]float64, res)
	for ix := range csd {
		csd[ix] = make([][]float64, res)
		for iy := range csd[ix] {
			csd[ix][iy] = make([]float64, res)
			for iz := range csd[ix][iy] {
				csd[ix][iy][iz] = profile(xlin[ix], ylin[iy], zlin[iz])
			}
		}
	}

	row := make([]float64, res)
	iy2 := make([]float64, res)
	inner := make([]float64, res)
	pots := make([]float64, len(eleX))
	for e := range eleX {
		x0, y0, z0 := eleX[e], eleY[e], eleZ[e]
		for ix := range xlin {
			dx := xlin[ix] - x0
			for iy := range ylin {
				dy := ylin[iy] - y0
				for iz := range zlin {
					dz := zlin[iz] - z0
					row[iz] = csd[ix][iy][iz] * PotentialKernel3D(math.Sqrt(dx*dx+dy*dy+dz*dz))
				}
				iy2[iy] = integrate.Simpsons(zlin, row)
			}
			inner[ix] = integrate.Simpsons(ylin, iy2)
		}
		pots[e] = integrate.Simpsons(xlin, inner) / (4 * math.Pi * o.Sigma)
	}
	return pots, nil
}

// resolved returns the options to use: a copy of opts, or defaults if nil.
func resolved(opts *Options) Options {
	if opts == nil {
		return DefaultOptions()
	}
	return *opts
}
