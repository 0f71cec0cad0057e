// Package csd defines units, input records, the result type, and
// sentinel errors for the dispatch layer.
package csd

import (
	"errors"

	"github.com/emer/etable/v2/etensor"

	"github.com/katalvlaran/gocsd/kcsd"
)

// Sentinel errors.  The taxonomy mirrors the three rejection classes of
// the pipeline: unit errors, validation errors, configuration errors.
var (
	// ErrNoUnit indicates electrode coordinates or signal samples supplied
	// without a physical unit.
	ErrNoUnit = errors.New("csd: electrode coordinates and signals must carry physical units")
	// ErrNoMethod indicates a missing estimation method.
	ErrNoMethod = errors.New("csd: no estimation method specified")
	// ErrNoSignals indicates an empty signal set.
	ErrNoSignals = errors.New("csd: at least one signal is required")
	// ErrCountMismatch indicates differing electrode and signal counts.
	ErrCountMismatch = errors.New("csd: number of signals and electrodes is not the same")
	// ErrRaggedSignals indicates empty or unequal-length sample rows.
	ErrRaggedSignals = errors.New("csd: all signals must carry the same, non-zero number of samples")
	// ErrTooManyDims indicates an electrode with more than 3 coordinate
	// components.
	ErrTooManyDims = errors.New("csd: electrode coordinates must have 1 to 3 components")
	// ErrDimMismatch indicates electrodes of differing dimensionality.
	ErrDimMismatch = errors.New("csd: all electrodes must share one dimensionality")
	// ErrMethodDim indicates a method incompatible with the electrode
	// dimensionality; the wrapped message lists the valid methods.
	ErrMethodDim = errors.New("csd: method is invalid for the electrode dimensionality")
	// ErrCVKey indicates cross-validation parameters with keys outside
	// {"Rs", "lambdas"}.
	ErrCVKey = errors.New(`csd: cross-validation parameters allow only the keys "Rs" and "lambdas"`)
)

// LengthUnit tags electrode coordinates.  The zero value means
// "no unit" and is rejected.
type LengthUnit int

const (
	Micrometer LengthUnit = iota + 1
	Millimeter
	Centimeter
	Meter
)

// millimeters returns the scale factor to millimeters, the internal
// length unit, and whether the unit is known.
func (u LengthUnit) millimeters() (float64, bool) {
	switch u {
	case Micrometer:
		return 1e-3, true
	case Millimeter:
		return 1, true
	case Centimeter:
		return 10, true
	case Meter:
		return 1e3, true
	default:
		return 0, false
	}
}

// String implements fmt.Stringer.
func (u LengthUnit) String() string {
	switch u {
	case Micrometer:
		return "um"
	case Millimeter:
		return "mm"
	case Centimeter:
		return "cm"
	case Meter:
		return "m"
	default:
		return "LengthUnit(none)"
	}
}

// PotentialUnit tags signal samples.  The zero value means "no unit" and
// is rejected.
type PotentialUnit int

const (
	Microvolt PotentialUnit = iota + 1
	Millivolt
	Volt
)

// millivolts returns the scale factor to millivolts, the internal
// potential unit, and whether the unit is known.
func (u PotentialUnit) millivolts() (float64, bool) {
	switch u {
	case Microvolt:
		return 1e-3, true
	case Millivolt:
		return 1, true
	case Volt:
		return 1e3, true
	default:
		return 0, false
	}
}

// String implements fmt.Stringer.
func (u PotentialUnit) String() string {
	switch u {
	case Microvolt:
		return "uV"
	case Millivolt:
		return "mV"
	case Volt:
		return "V"
	default:
		return "PotentialUnit(none)"
	}
}

// Electrode is one recording site: 1–3 spatial components plus the unit
// they are expressed in.
type Electrode struct {
	Pos  []float64
	Unit LengthUnit
}

// Signal is one channel's recording: samples with their unit and the
// sampling metadata carried through to the result unchanged.
type Signal struct {
	Samples          []float64
	Unit             PotentialUnit
	TStart           float64
	SamplingInterval float64
}

// Result is the estimated CSD.  CSD is shaped [Time, X(, Y)(, Z)] with
// named dims; the values are µA/mm^dim given millivolt/millimeter
// normalization.  One coordinate axis per spatial dimension, in mm.
// Caller-owned and immutable by convention.
type Result struct {
	CSD *etensor.Float64

	X []float64
	Y []float64 // nil below 2D
	Z []float64 // nil below 3D

	TStart           float64
	SamplingInterval float64

	Method kcsd.Method
	R      float64 // basis radius used (after CV, the selected one)
	Lambda float64 // ridge parameter used (after CV, the selected one)
}
