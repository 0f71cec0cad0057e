// Package csd is the validation and dispatch front door of gocsd: it
// normalizes units, checks electrode/signal/method consistency, runs the
// kernel estimator, and shapes the estimate into a time-leading tensor
// tagged with its spatial axes.
//
// 🚀 What does it do?
//
//	CSD() walks a fixed pipeline — every step rejects before any numeric
//	work begins:
//	  1. normalize electrode coordinates to millimeters (unitless → error)
//	  2. electrode count must equal signal count
//	  3. at most 3 coordinate components per electrode, all uniform
//	  4. method must be valid for the inferred dimensionality
//	  5. assemble the channels × samples potential matrix in millivolts
//	  6. build the kernel estimator; run cross-validation if requested
//	  7. roll the time axis to the front and attach the spatial axes
//
// ✨ Key features:
//   - closed error taxonomy as sentinel errors: unit errors (ErrNoUnit),
//     validation errors (ErrCountMismatch, ErrTooManyDims, ErrMethodDim,
//     ...), and configuration errors (ErrCVKey)
//   - cross-validation parameters restricted to exactly the keys
//     {"Rs", "lambdas"} — anything else is rejected up front
//   - results as etensor.Float64 with named dims [Time, X(, Y)(, Z)],
//     caller-owned, sampling metadata carried through unchanged
//
// ⚙️ Usage:
//
//	import (
//	  "github.com/katalvlaran/gocsd/csd"
//	  "github.com/katalvlaran/gocsd/kcsd"
//	)
//
//	res, err := csd.CSD(signals, electrodes, kcsd.KCSD1D, nil,
//	  map[string][]float64{"Rs": {0.1, 0.25, 0.5}})
//	if err != nil { ... }
//	_ = res.CSD    // [Time, X] tensor, µA/mm
//	_ = res.X      // x axis, mm
//
// Terminal states only: a successful Result or one rejection error —
// never a partial estimate.
package csd
