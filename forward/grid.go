package forward

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Electrode-grid generation: regularly spaced electrode layouts for the
// forward model and for synthetic estimator inputs.  Multi-axis grids are
// flattened row-major with x outermost, matching the kernel estimator's
// grid ordering.

// Electrodes1D returns res regularly spaced x positions spanning xb
// inclusive.  res below 2 is rejected with ErrBadGridResolution.
func Electrodes1D(xb [2]float64, res int) ([]float64, error) {
	if res < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrBadGridResolution, res)
	}
	return floats.Span(make([]float64, res), xb[0], xb[1]), nil
}

// Electrodes2D returns the flattened coordinates of a res×res electrode
// grid spanning xb×yb, one slice per axis.  res below 2 is rejected with
// ErrBadGridResolution.
func Electrodes2D(xb, yb [2]float64, res int) (eleX, eleY []float64, err error) {
	if res < 2 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrBadGridResolution, res)
	}
	xs := floats.Span(make([]float64, res), xb[0], xb[1])
	ys := floats.Span(make([]float64, res), yb[0], yb[1])
	eleX = make([]float64, 0, res*res)
	eleY = make([]float64, 0, res*res)
	for _, x := range xs {
		for _, y := range ys {
			eleX = append(eleX, x)
			eleY = append(eleY, y)
		}
	}
	return eleX, eleY, nil
}

// Electrodes3D returns the flattened coordinates of a res×res×res
// electrode grid spanning xb×yb×zb, one slice per axis.  res below 2 is
// rejected with ErrBadGridResolution.
func Electrodes3D(xb, yb, zb [2]float64, res int) (eleX, eleY, eleZ []float64, err error) {
	if res < 2 {
		return nil, nil, nil, fmt.Errorf("%w: got %d", ErrBadGridResolution, res)
	}
	xs := floats.Span(make([]float64, res), xb[0], xb[1])
	ys := floats.Span(make([]float64, res), yb[0], yb[1])
	zs := floats.Span(make([]float64, res), zb[0], zb[1])
	n := res * res * res
	eleX = make([]float64, 0, n)
	eleY = make([]float64, 0, n)
	eleZ = make([]float64, 0, n)
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				eleX = append(eleX, x)
				eleY = append(eleY, y)
				eleZ = append(eleZ, z)
			}
		}
	}
	return eleX, eleY, eleZ, nil
}
