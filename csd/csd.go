package csd

import (
	"fmt"

	"github.com/emer/etable/v2/etensor"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/gocsd/kcsd"
)

// Cross-validation parameter keys.  Anything else is rejected.
const (
	cvKeyRs      = "Rs"
	cvKeyLambdas = "lambdas"
)

// CSD estimates the current source density for one recording.
//
// signals are the per-channel potentials, electrodes their recording
// sites in channel order.  method selects the kernel variant; cfg may be
// nil to use kcsd.DefaultConfig(method).  cv, when non-empty, requests
// cross-validation and may hold "Rs" (basis-radius candidates) and/or
// "lambdas" (ridge candidates) — any other key is rejected with ErrCVKey.
//
// On success the returned Result is exclusively owned by the caller.
// On any rejection the error wraps one of the package sentinels and no
// partial result is produced.
func CSD(signals []Signal, electrodes []Electrode, method kcsd.Method,
	cfg *kcsd.Config, cv map[string][]float64) (*Result, error) {

	if method.Dim() == 0 {
		return nil, ErrNoMethod
	}
	if len(signals) == 0 {
		return nil, ErrNoSignals
	}
	if len(electrodes) == 0 {
		return nil, fmt.Errorf("%w: %d signals, 0 electrodes",
			ErrCountMismatch, len(signals))
	}

	// Units first, then counts, matching the pipeline order documented in
	// the package doc.
	coords, dim, err := normalizeElectrodes(electrodes)
	if err != nil {
		return nil, err
	}
	if len(signals) != len(electrodes) {
		return nil, fmt.Errorf("%w: %d signals, %d electrodes",
			ErrCountMismatch, len(signals), len(electrodes))
	}
	if err = checkMethodDim(method, dim); err != nil {
		return nil, err
	}
	pots, err := assemblePotentials(signals)
	if err != nil {
		return nil, err
	}
	// Reject unknown CV keys before any kernel work.
	for key := range cv {
		if key != cvKeyRs && key != cvKeyLambdas {
			return nil, fmt.Errorf("%w: got %q", ErrCVKey, key)
		}
	}

	conf := kcsd.DefaultConfig(method)
	if cfg != nil {
		conf = *cfg
	}
	est, err := kcsd.New(method, coords, pots, conf)
	if err != nil {
		return nil, err
	}
	if len(cv) > 0 {
		if _, _, err = est.CrossValidate(cv[cvKeyRs], cv[cvKeyLambdas]); err != nil {
			return nil, err
		}
	}
	vals, err := est.Values()
	if err != nil {
		return nil, err
	}

	return packResult(est, vals, signals[0]), nil
}

// normalizeElectrodes rescales all coordinates to millimeters and infers
// the shared dimensionality.
func normalizeElectrodes(electrodes []Electrode) ([][]float64, int, error) {
	dim := len(electrodes[0].Pos)
	if dim == 0 || dim > 3 {
		return nil, 0, fmt.Errorf("%w: electrode 0 has %d", ErrTooManyDims, dim)
	}
	coords := make([][]float64, len(electrodes))
	for i, el := range electrodes {
		if len(el.Pos) > 3 {
			return nil, 0, fmt.Errorf("%w: electrode %d has %d", ErrTooManyDims, i, len(el.Pos))
		}
		if len(el.Pos) != dim {
			return nil, 0, fmt.Errorf("%w: electrode %d has %d components, electrode 0 has %d",
				ErrDimMismatch, i, len(el.Pos), dim)
		}
		scale, ok := el.Unit.millimeters()
		if !ok {
			return nil, 0, fmt.Errorf("%w: electrode %d", ErrNoUnit, i)
		}
		c := make([]float64, dim)
		for a, v := range el.Pos {
			c[a] = v * scale
		}
		coords[i] = c
	}
	return coords, dim, nil
}

// checkMethodDim rejects method tags outside the dimensionality's
// availability table, naming the valid options.
func checkMethodDim(method kcsd.Method, dim int) error {
	var allowed []kcsd.Method
	switch dim {
	case 1:
		allowed = kcsd.Available1D
	case 2:
		allowed = kcsd.Available2D
	default:
		allowed = kcsd.Available3D
	}
	for _, m := range allowed {
		if m == method {
			return nil
		}
	}
	return fmt.Errorf("%w: %s on %dD electrodes; available: %v",
		ErrMethodDim, method, dim, allowed)
}

// assemblePotentials builds the channels × samples matrix in millivolts.
func assemblePotentials(signals []Signal) (*mat.Dense, error) {
	t := len(signals[0].Samples)
	if t == 0 {
		return nil, ErrRaggedSignals
	}
	pots := mat.NewDense(len(signals), t, nil)
	for i, sig := range signals {
		if len(sig.Samples) != t {
			return nil, fmt.Errorf("%w: signal %d has %d samples, signal 0 has %d",
				ErrRaggedSignals, i, len(sig.Samples), t)
		}
		scale, ok := sig.Unit.millivolts()
		if !ok {
			return nil, fmt.Errorf("%w: signal %d", ErrNoUnit, i)
		}
		for j, v := range sig.Samples {
			pots.Set(i, j, v*scale)
		}
	}
	return pots, nil
}

// packResult rolls the time axis to the front of the G×T estimate and
// tags it with the spatial axes and the sampling metadata.
func packResult(est *kcsd.Estimator, vals *mat.Dense, first Signal) *Result {
	x, y, z := est.AxisX(), est.AxisY(), est.AxisZ()
	g, t := vals.Dims()

	shape := []int{t, len(x)}
	names := []string{"Time", "X"}
	if y != nil {
		shape = append(shape, len(y))
		names = append(names, "Y")
	}
	if z != nil {
		shape = append(shape, len(z))
		names = append(names, "Z")
	}

	tsr := etensor.NewFloat64(shape, nil, names)
	// The spatial block of the tensor is row-major in grid order, exactly
	// the row ordering of vals; one copy per time sample.
	for ti := 0; ti < t; ti++ {
		for gi := 0; gi < g; gi++ {
			tsr.Values[ti*g+gi] = vals.At(gi, ti)
		}
	}

	conf := est.Config()
	return &Result{
		CSD:              tsr,
		X:                x,
		Y:                y,
		Z:                z,
		TStart:           first.TStart,
		SamplingInterval: first.SamplingInterval,
		Method:           est.Method(),
		R:                conf.R,
		Lambda:           conf.Lambda,
	}
}
