package kcsd

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"

	"github.com/katalvlaran/gocsd/forward"
)

// Kernel construction: basis-source CSD values and their potential
// footprints at the electrodes.  The potential side shares the Poisson
// point kernels with the forward package, so the estimator inverts
// exactly the physics the forward model integrates.

// basisValue returns the CSD of one basis source of radius r at distance
// d from its center, for dimensionality dim.  Gaussian sources use r as
// the standard deviation and are normalized to unit total current; step
// sources are uniform with unit total current inside radius r.
func basisValue(kind BasisKind, dim int, d, r float64) float64 {
	switch kind {
	case StepBasis:
		if math.Abs(d) > r {
			return 0
		}
		switch dim {
		case 1:
			return 1 / (2 * r)
		case 2:
			return 1 / (math.Pi * r * r)
		default:
			return 3 / (4 * math.Pi * r * r * r)
		}
	default: // GaussianBasis
		g := math.Exp(-d * d / (2 * r * r))
		switch dim {
		case 1:
			return g / (math.Sqrt(2*math.Pi) * r)
		case 2:
			return g / (2 * math.Pi * r * r)
		default:
			return g / (math.Pow(2*math.Pi, 1.5) * r * r * r)
		}
	}
}

// supportRadius is the half-width of the integration box around a basis
// center: the full radius for step sources, 3σ for Gaussians.
func supportRadius(kind BasisKind, r float64) float64 {
	if kind == StepBasis {
		return r
	}
	return 3 * r
}

// potKernel returns the point-source potential kernel for the method.
// The argument is a non-negative electrode distance; scaling by the
// conductivity prefactor happens in basisPotential.
func (e *Estimator) potKernel(r float64) float64 {
	switch e.method {
	case KCSD1D:
		return forward.PotentialKernel1D(r, e.cfg.H)
	case KCSD2D:
		return forward.PotentialKernel2D(r, e.cfg.H)
	case MoIKCSD:
		return e.moiKernel(r)
	default: // KCSD3D
		return forward.PotentialKernel3D(r)
	}
}

// moiKernel is the 2D kernel with a Method-of-Images correction for the
// tissue/saline conductivity step: mirror sources at vertical offsets
// 2nh, attenuated by Wⁿ with W = (σ−σ_S)/(σ+σ_S).
func (e *Estimator) moiKernel(r float64) float64 {
	h := e.cfg.H
	w := (e.cfg.Sigma - e.cfg.SigmaSaline) / (e.cfg.Sigma + e.cfg.SigmaSaline)
	pot := forward.PotentialKernel2D(r, h)
	wn := 1.0
	for n := 1; n <= e.cfg.MoIIters; n++ {
		wn *= w
		off := 2 * float64(n) * h
		pot += wn * 2 * math.Asinh(2*h/math.Hypot(r, off))
	}
	return pot
}

// scale is the conductivity prefactor of the method's Poisson solution.
func (e *Estimator) scale() float64 {
	switch e.method.Dim() {
	case 1:
		return 1 / (2 * e.cfg.Sigma)
	case 2:
		return 1 / (2 * math.Pi * e.cfg.Sigma)
	default:
		return 1 / (4 * math.Pi * e.cfg.Sigma)
	}
}

// basisPotential integrates one basis source (centered at src, radius r)
// against the potential kernel, evaluated at the electrode position ele.
// Composite Simpson over the basis support box, QuadRes nodes per axis.
func (e *Estimator) basisPotential(src, ele []float64, r float64) float64 {
	q := e.cfg.QuadRes
	sup := supportRadius(e.cfg.Basis, r)

	switch e.method.Dim() {
	case 1:
		xs := floats.Span(make([]float64, q), src[0]-sup, src[0]+sup)
		f := make([]float64, q)
		for i, x := range xs {
			f[i] = basisValue(e.cfg.Basis, 1, x-src[0], r) * e.potKernel(x-ele[0])
		}
		return e.scale() * integrate.Simpsons(xs, f)

	case 2:
		xs := floats.Span(make([]float64, q), src[0]-sup, src[0]+sup)
		ys := floats.Span(make([]float64, q), src[1]-sup, src[1]+sup)
		row := make([]float64, q)
		inner := make([]float64, q)
		for ix, x := range xs {
			dx := x - src[0]
			ex := x - ele[0]
			for iy, y := range ys {
				dy := y - src[1]
				ey := y - ele[1]
				row[iy] = basisValue(e.cfg.Basis, 2, math.Hypot(dx, dy), r) *
					e.potKernel(math.Hypot(ex, ey))
			}
			inner[ix] = integrate.Simpsons(ys, row)
		}
		return e.scale() * integrate.Simpsons(xs, inner)

	default: // 3D
		xs := floats.Span(make([]float64, q), src[0]-sup, src[0]+sup)
		ys := floats.Span(make([]float64, q), src[1]-sup, src[1]+sup)
		zs := floats.Span(make([]float64, q), src[2]-sup, src[2]+sup)
		row := make([]float64, q)
		iy2 := make([]float64, q)
		inner := make([]float64, q)
		for ix, x := range xs {
			dx, ex := x-src[0], x-ele[0]
			for iy, y := range ys {
				dy, ey := y-src[1], y-ele[1]
				for iz, z := range zs {
					dz, ez := z-src[2], z-ele[2]
					row[iz] = basisValue(e.cfg.Basis, 3, math.Sqrt(dx*dx+dy*dy+dz*dz), r) *
						e.potKernel(math.Sqrt(ex*ex+ey*ey+ez*ez))
				}
				iy2[iy] = integrate.Simpsons(zs, row)
			}
			inner[ix] = integrate.Simpsons(ys, iy2)
		}
		return e.scale() * integrate.Simpsons(xs, inner)
	}
}
