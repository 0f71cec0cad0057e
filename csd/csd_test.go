package csd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gocsd/csd"
	"github.com/katalvlaran/gocsd/forward"
	"github.com/katalvlaran/gocsd/kcsd"
)

// fastConfig shrinks the estimator so the dispatch tests stay quick.
func fastConfig(m kcsd.Method) *kcsd.Config {
	cfg := kcsd.DefaultConfig(m)
	switch m.Dim() {
	case 1:
		cfg.NSources, cfg.GridRes, cfg.QuadRes = 8, 12, 9
	case 2:
		cfg.NSources, cfg.GridRes, cfg.QuadRes = 3, 6, 5
	default:
		cfg.NSources, cfg.GridRes, cfg.QuadRes = 2, 4, 5
	}
	return &cfg
}

// electrodesForDim places a minimal non-degenerate layout of the given
// dimensionality, in millimeters.
func electrodesForDim(t *testing.T, dim int) []csd.Electrode {
	t.Helper()
	var coords [][]float64
	switch dim {
	case 1:
		for _, x := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
			coords = append(coords, []float64{x})
		}
	case 2:
		x2, y2, err := forward.Electrodes2D([2]float64{0.1, 0.9}, [2]float64{0.1, 0.9}, 2)
		require.NoError(t, err)
		for i := range x2 {
			coords = append(coords, []float64{x2[i], y2[i]})
		}
	default:
		x3, y3, z3, err := forward.Electrodes3D(
			[2]float64{0.1, 0.9}, [2]float64{0.1, 0.9}, [2]float64{0.1, 0.9}, 2)
		require.NoError(t, err)
		for i := range x3 {
			coords = append(coords, []float64{x3[i], y3[i], z3[i]})
		}
	}
	eles := make([]csd.Electrode, len(coords))
	for i, c := range coords {
		eles[i] = csd.Electrode{Pos: c, Unit: csd.Millimeter}
	}
	return eles
}

// signalsFor builds n single-sample millivolt signals with distinct
// values and fixed sampling metadata.
func signalsFor(n int) []csd.Signal {
	sigs := make([]csd.Signal, n)
	for i := range sigs {
		sigs[i] = csd.Signal{
			Samples:          []float64{math.Sin(float64(i + 1))},
			Unit:             csd.Millivolt,
			TStart:           0.25,
			SamplingInterval: 0.001,
		}
	}
	return sigs
}

// TestCSD_MethodDimMatrix: every dimensionality accepts exactly its
// availability table and rejects everything else.
func TestCSD_MethodDimMatrix(t *testing.T) {
	all := []kcsd.Method{kcsd.KCSD1D, kcsd.KCSD2D, kcsd.KCSD3D, kcsd.MoIKCSD}
	allowed := map[int][]kcsd.Method{
		1: kcsd.Available1D,
		2: kcsd.Available2D,
		3: kcsd.Available3D,
	}

	for dim := 1; dim <= 3; dim++ {
		eles := electrodesForDim(t, dim)
		sigs := signalsFor(len(eles))
		for _, m := range all {
			ok := false
			for _, a := range allowed[dim] {
				ok = ok || a == m
			}
			res, err := csd.CSD(sigs, eles, m, fastConfig(m), nil)
			if ok {
				require.NoErrorf(t, err, "%s must accept %dD electrodes", m, dim)
				require.NotNil(t, res)
			} else {
				assert.ErrorIsf(t, err, csd.ErrMethodDim, "%s must reject %dD electrodes", m, dim)
				assert.Nil(t, res)
			}
		}
	}
}

// TestCSD_Rejections walks the validation taxonomy.
func TestCSD_Rejections(t *testing.T) {
	eles := electrodesForDim(t, 1)

	_, err := csd.CSD(signalsFor(5), eles, kcsd.Method(0), nil, nil)
	assert.ErrorIs(t, err, csd.ErrNoMethod)

	_, err = csd.CSD(nil, nil, kcsd.KCSD1D, nil, nil)
	assert.ErrorIs(t, err, csd.ErrNoSignals)

	// 3 electrodes against a 4-row potential matrix: rejected, never truncated.
	_, err = csd.CSD(signalsFor(4), eles[:3], kcsd.KCSD1D, nil, nil)
	assert.ErrorIs(t, err, csd.ErrCountMismatch)

	fourD := []csd.Electrode{
		{Pos: []float64{1, 2, 3, 4}, Unit: csd.Millimeter},
		{Pos: []float64{5, 6, 7, 8}, Unit: csd.Millimeter},
	}
	_, err = csd.CSD(signalsFor(2), fourD, kcsd.KCSD1D, nil, nil)
	assert.ErrorIs(t, err, csd.ErrTooManyDims)

	mixed := electrodesForDim(t, 1)
	mixed[2].Pos = []float64{0.5, 0.5}
	_, err = csd.CSD(signalsFor(5), mixed, kcsd.KCSD1D, nil, nil)
	assert.ErrorIs(t, err, csd.ErrDimMismatch)

	unitless := electrodesForDim(t, 1)
	unitless[0].Unit = 0
	_, err = csd.CSD(signalsFor(5), unitless, kcsd.KCSD1D, nil, nil)
	assert.ErrorIs(t, err, csd.ErrNoUnit)

	noVolt := signalsFor(5)
	noVolt[3].Unit = 0
	_, err = csd.CSD(noVolt, eles, kcsd.KCSD1D, nil, nil)
	assert.ErrorIs(t, err, csd.ErrNoUnit)

	ragged := signalsFor(5)
	ragged[1].Samples = []float64{1, 2}
	_, err = csd.CSD(ragged, eles, kcsd.KCSD1D, nil, nil)
	assert.ErrorIs(t, err, csd.ErrRaggedSignals)
}

// TestCSD_UnitCheckPrecedesCount: with both a unitless electrode and a
// count mismatch, the unit rejection wins; normalization is step one of
// the pipeline.
func TestCSD_UnitCheckPrecedesCount(t *testing.T) {
	eles := electrodesForDim(t, 1)
	eles[0].Unit = 0
	_, err := csd.CSD(signalsFor(len(eles)-1), eles, kcsd.KCSD1D, nil, nil)
	assert.ErrorIs(t, err, csd.ErrNoUnit)
}

// TestCSD_MalformedCVKeys: a key outside {Rs, lambdas} is rejected
// before any kernel work, even when the config itself is broken.
func TestCSD_MalformedCVKeys(t *testing.T) {
	eles := electrodesForDim(t, 1)
	sigs := signalsFor(len(eles))

	broken := fastConfig(kcsd.KCSD1D)
	broken.R = -1 // would fail estimator construction

	_, err := csd.CSD(sigs, eles, kcsd.KCSD1D, broken, map[string][]float64{"foo": {1}})
	assert.ErrorIs(t, err, csd.ErrCVKey, "the CV key check must fire first")

	_, err = csd.CSD(sigs, eles, kcsd.KCSD1D, nil,
		map[string][]float64{"Rs": {0.2}, "lambdas": {1e-6}, "extra": nil})
	assert.ErrorIs(t, err, csd.ErrCVKey)
}

// TestCSD_Scenario1D is the reference scenario: five electrodes at
// 0.1..0.9 mm, potentials from FWD(Gauss1DDipole), KCSD1D estimation.
// The estimate must flip sign between the sink at 0.3 and the source
// at 0.7, and the sampling metadata must ride through unchanged.
func TestCSD_Scenario1D(t *testing.T) {
	eleX, err := forward.Electrodes1D([2]float64{0.1, 0.9}, 5)
	require.NoError(t, err)
	pots, err := forward.Potentials1D(forward.Gauss1DDipole, eleX, nil)
	require.NoError(t, err)

	eles := make([]csd.Electrode, len(eleX))
	sigs := make([]csd.Signal, len(eleX))
	for i := range eleX {
		eles[i] = csd.Electrode{Pos: []float64{eleX[i]}, Unit: csd.Millimeter}
		sigs[i] = csd.Signal{
			Samples:          []float64{pots[i]},
			Unit:             csd.Millivolt,
			TStart:           0.5,
			SamplingInterval: 0.001,
		}
	}

	cfg := kcsd.DefaultConfig(kcsd.KCSD1D)
	cfg.H = 50 // match the forward model
	res, err := csd.CSD(sigs, eles, kcsd.KCSD1D, &cfg,
		map[string][]float64{"Rs": {0.1, 0.25, 0.5}})
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Equal(t, []int{1, cfg.GridRes}, res.CSD.Shape.Shp, "[time, x] tensor")
	require.Len(t, res.X, cfg.GridRes)
	assert.Nil(t, res.Y)
	assert.Nil(t, res.Z)
	assert.Equal(t, 0.5, res.TStart)
	assert.Equal(t, 0.001, res.SamplingInterval)
	assert.Equal(t, kcsd.KCSD1D, res.Method)
	assert.Contains(t, []float64{0.1, 0.25, 0.5}, res.R, "CV winner recorded")
	assert.Positive(t, res.Lambda)

	at := func(x float64) float64 {
		best, dist := 0, math.Inf(1)
		for i, v := range res.X {
			if d := math.Abs(v - x); d < dist {
				best, dist = i, d
			}
		}
		return res.CSD.Values[best] // single time sample, spatial block leads
	}
	assert.Negative(t, at(0.3), "sink at x≈0.3")
	assert.Positive(t, at(0.7), "source at x≈0.7")

	crossed := false
	for i := 1; i < len(res.X); i++ {
		if res.X[i] <= 0.3 || res.X[i] >= 0.7 {
			continue
		}
		if res.CSD.Values[i-1]*res.CSD.Values[i] < 0 {
			crossed = true
		}
	}
	assert.True(t, crossed, "sign change between 0.3 and 0.7")
}

// TestCSD_UnitNormalization: the same geometry expressed in µm and µV
// must give the same estimate as mm and mV, up to scale arithmetic.
func TestCSD_UnitNormalization(t *testing.T) {
	eles := electrodesForDim(t, 1)
	sigs := signalsFor(len(eles))
	cfg := fastConfig(kcsd.KCSD1D)
	cfg.Lambda = 1e-4 // keep the solve well-conditioned for a tight comparison

	resMM, err := csd.CSD(sigs, eles, kcsd.KCSD1D, cfg, nil)
	require.NoError(t, err)

	elesUM := make([]csd.Electrode, len(eles))
	sigsUV := make([]csd.Signal, len(sigs))
	for i := range eles {
		elesUM[i] = csd.Electrode{Pos: []float64{eles[i].Pos[0] * 1000}, Unit: csd.Micrometer}
		sigsUV[i] = sigs[i]
		sigsUV[i].Samples = []float64{sigs[i].Samples[0] * 1000}
		sigsUV[i].Unit = csd.Microvolt
	}
	resUM, err := csd.CSD(sigsUV, elesUM, kcsd.KCSD1D, cfg, nil)
	require.NoError(t, err)

	var scale float64
	for _, v := range resMM.CSD.Values {
		scale = math.Max(scale, math.Abs(v))
	}
	require.Positive(t, scale)
	for i := range resMM.CSD.Values {
		assert.InDelta(t, resMM.CSD.Values[i], resUM.CSD.Values[i], 1e-9*scale)
	}
	assert.InDeltaSlice(t, resMM.X, resUM.X, 1e-9)
}

// TestCSD_TimeAxisLeading: with T samples per channel the tensor is
// [T, X] and, because the solve is linear, a channel-wise ×2 second
// sample doubles the whole second time slice exactly.
func TestCSD_TimeAxisLeading(t *testing.T) {
	eles := electrodesForDim(t, 1)
	sigs := signalsFor(len(eles))
	for i := range sigs {
		v := sigs[i].Samples[0]
		sigs[i].Samples = []float64{v, 2 * v, 0}
	}

	cfg := fastConfig(kcsd.KCSD1D)
	res, err := csd.CSD(sigs, eles, kcsd.KCSD1D, cfg, nil)
	require.NoError(t, err)

	g := cfg.GridRes
	require.Equal(t, []int{3, g}, res.CSD.Shape.Shp)
	require.Len(t, res.CSD.Values, 3*g)
	for i := 0; i < g; i++ {
		assert.Equal(t, 2*res.CSD.Values[i], res.CSD.Values[g+i], "t=1 slice is ×2 of t=0")
		assert.Zero(t, res.CSD.Values[2*g+i], "t=2 slice is all zero")
	}
}
