package forward

import "math"

// Closed-form test source profiles, used to validate the estimator via
// the forward model.  All of them live in the unit box and integrate to
// (approximately) zero total current, as physiological sources must.

// Gauss1DDipole is a 1D Gaussian dipole: a source centered at x=0.7 and a
// sink of equal magnitude at x=0.3, both with variance 0.3.
func Gauss1DDipole(x float64) float64 {
	const s2 = 0.3 // common variance of source and sink
	norm := 0.5 / math.Sqrt(2*math.Pi*s2)
	src := norm * math.Exp(-(x-0.7)*(x-0.7)/(2*s2))
	snk := -norm * math.Exp(-(x-0.3)*(x-0.3)/(2*s2))
	return src + snk
}

// LargeSource2D is a broad four-component 2D Gaussian pattern with two
// sources and two sinks of unequal widths, partially outside the unit box.
func LargeSource2D(x, y float64) float64 {
	f1 := 0.5965 * math.Exp((-1*(x-0.1350)*(x-0.1350)-(y-0.8628)*(y-0.8628))/0.4464)
	f2 := -0.9269 * math.Exp((-2*(x-0.1848)*(x-0.1848)-(y-0.0897)*(y-0.0897))/0.2046)
	f3 := 0.5910 * math.Exp((-3*(x-1.3189)*(x-1.3189)-(y-0.3522)*(y-0.3522))/0.2129)
	f4 := -0.1963 * math.Exp((-4*(x-1.3386)*(x-1.3386)-(y-0.5297)*(y-0.5297))/0.2507)
	return f1 + f2 + f3 + f4
}

// SmallSource2D is a compact quadrupole-like 2D pattern: two narrow
// source/sink pairs near the center of the unit box.
func SmallSource2D(x, y float64) float64 {
	gauss2d := func(x, y float64, p [6]float64) float64 {
		sin, cos := math.Sincos(p[5])
		rcenX := p[0]*cos - p[1]*sin
		rcenY := p[0]*sin + p[1]*cos
		xp := x*cos - y*sin
		yp := x*sin + y*cos
		return p[4] * math.Exp(-(((rcenX-xp)/p[2])*((rcenX-xp)/p[2])+
			((rcenY-yp)/p[3])*((rcenY-yp)/p[3]))/2)
	}
	f1 := gauss2d(x, y, [6]float64{0.3, 0.7, 0.038, 0.058, 0.5, 0})
	f2 := gauss2d(x, y, [6]float64{0.3, 0.6, 0.038, 0.058, -0.5, 0})
	f3 := gauss2d(x, y, [6]float64{0.45, 0.7, 0.038, 0.058, 0.5, 0})
	f4 := gauss2d(x, y, [6]float64{0.45, 0.6, 0.038, 0.058, -0.5, 0})
	return f1 + f2 + f3 + f4
}

// Gauss3DDipole is a 3D Gaussian dipole: source at (0.3,0.7,0.3), sink at
// (0.6,0.5,0.7), both with variance 0.023.
func Gauss3DDipole(x, y, z float64) float64 {
	const (
		x0, y0, z0 = 0.3, 0.7, 0.3
		x1, y1, z1 = 0.6, 0.5, 0.7
		sig2       = 0.023
	)
	amp := 1 / (2 * math.Pi * sig2)
	f1 := amp * math.Exp((-(x-x0)*(x-x0)-(y-y0)*(y-y0)-(z-z0)*(z-z0))/(2*sig2))
	f2 := -amp * math.Exp((-(x-x1)*(x-x1)-(y-y1)*(y-y1)-(z-z1)*(z-z1))/(2*sig2))
	return f1 + f2
}
