package kcsd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// lambdaFloor guarantees invertibility of the regularized kernel when the
// caller leaves Lambda at 0.
const lambdaFloor = 1e-12

// Estimator holds the kernel matrices for one electrode geometry and one
// potential matrix.  Construct with New; a built Estimator is safe to
// reuse for Values and CrossValidate but not across goroutines.
type Estimator struct {
	method Method
	cfg    Config
	dim    int

	ele  [][]float64 // N electrode positions, copied from the caller
	pots *mat.Dense  // N×T potentials, copied from the caller

	lo, hi []float64   // electrode extent per axis
	axes   [][]float64 // estimation-grid axis per dimension

	bPot   *mat.Dense    // N×M basis-to-electrode potentials
	kPot   *mat.SymDense // N×N electrode kernel K = B·Bᵀ/M
	kCross *mat.Dense    // G×N cross-kernel K̃ = B̃·Bᵀ/M
}

// New validates the inputs, builds the kernel matrices and returns a
// ready Estimator.  coords is N rows of method.Dim() components; pots is
// the N×T potential matrix (channels × samples).
func New(method Method, coords [][]float64, pots *mat.Dense, cfg Config) (*Estimator, error) {
	dim := method.Dim()
	if dim == 0 {
		return nil, fmt.Errorf("%w: unrecognized method %d", ErrBadConfig, int(method))
	}
	if len(coords) == 0 {
		return nil, ErrNoElectrodes
	}
	for i, c := range coords {
		if len(c) != dim {
			return nil, fmt.Errorf("%w: electrode %d has %d components, %s needs %d",
				ErrDimension, i, len(c), method, dim)
		}
	}
	if pots == nil {
		return nil, ErrShapeMismatch
	}
	if r, c := pots.Dims(); r != len(coords) || c == 0 {
		return nil, fmt.Errorf("%w: got %d×%d for %d electrodes", ErrShapeMismatch, r, c, len(coords))
	}
	if err := cfg.validate(method); err != nil {
		return nil, err
	}

	e := &Estimator{
		method: method,
		cfg:    cfg,
		dim:    dim,
		ele:    make([][]float64, len(coords)),
		pots:   mat.DenseCopyOf(pots),
	}
	for i, c := range coords {
		e.ele[i] = append([]float64(nil), c...)
	}

	e.lo = make([]float64, dim)
	e.hi = make([]float64, dim)
	for a := 0; a < dim; a++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, c := range e.ele {
			lo = math.Min(lo, c[a])
			hi = math.Max(hi, c[a])
		}
		if hi <= lo {
			return nil, fmt.Errorf("%w: axis %d", ErrDegenerateGeometry, a)
		}
		e.lo[a], e.hi[a] = lo, hi
	}

	e.build()
	return e, nil
}

// validate rejects out-of-range hyperparameters with a descriptive error.
func (c Config) validate(method Method) error {
	switch {
	case c.NSources < 2:
		return fmt.Errorf("%w: NSources must be at least 2 per axis", ErrBadConfig)
	case c.GridRes < 2:
		return fmt.Errorf("%w: GridRes must be at least 2 per axis", ErrBadConfig)
	case c.QuadRes < 3:
		return fmt.Errorf("%w: QuadRes must be at least 3 Simpson nodes", ErrBadConfig)
	case c.R <= 0:
		return fmt.Errorf("%w: basis radius R must be positive", ErrBadConfig)
	case c.H <= 0:
		return fmt.Errorf("%w: source half-thickness H must be positive", ErrBadConfig)
	case c.Sigma <= 0:
		return fmt.Errorf("%w: conductivity Sigma must be positive", ErrBadConfig)
	case c.Lambda < 0:
		return fmt.Errorf("%w: Lambda must not be negative", ErrBadConfig)
	case c.Basis != GaussianBasis && c.Basis != StepBasis:
		return fmt.Errorf("%w: unknown basis kind %d", ErrBadConfig, int(c.Basis))
	}
	if method == MoIKCSD {
		if c.MoIIters < 1 {
			return fmt.Errorf("%w: MoIIters must be at least 1 for MoIKCSD", ErrBadConfig)
		}
		if c.SigmaSaline < 0 {
			return fmt.Errorf("%w: SigmaSaline must not be negative", ErrBadConfig)
		}
	}
	return nil
}

// build constructs the axes and all kernel matrices for the current
// configuration.  Re-invoked by CrossValidate after selecting a new R.
func (e *Estimator) build() {
	e.axes = make([][]float64, e.dim)
	for a := 0; a < e.dim; a++ {
		e.axes[a] = floats.Span(make([]float64, e.cfg.GridRes), e.lo[a], e.hi[a])
	}
	e.bPot, e.kPot = e.electrodeKernel(e.cfg.R)
	e.kCross = e.crossKernel(e.cfg.R, e.bPot)
}

// sources returns the M basis-source centers: a regular NSources-per-axis
// grid over the electrode extent, flattened x-outer.
func (e *Estimator) sources() [][]float64 {
	return cartesian(e.spanAxes(e.cfg.NSources))
}

// gridPoints returns the G estimation positions, flattened x-outer to
// match the row ordering of the returned estimate.
func (e *Estimator) gridPoints() [][]float64 {
	return cartesian(e.axes)
}

func (e *Estimator) spanAxes(n int) [][]float64 {
	axes := make([][]float64, e.dim)
	for a := 0; a < e.dim; a++ {
		axes[a] = floats.Span(make([]float64, n), e.lo[a], e.hi[a])
	}
	return axes
}

// cartesian flattens per-axis node slices into row-major points, first
// axis outermost.
func cartesian(axes [][]float64) [][]float64 {
	n := 1
	for _, ax := range axes {
		n *= len(ax)
	}
	pts := make([][]float64, 0, n)
	idx := make([]int, len(axes))
	for i := 0; i < n; i++ {
		p := make([]float64, len(axes))
		for a := range axes {
			p[a] = axes[a][idx[a]]
		}
		pts = append(pts, p)
		for a := len(axes) - 1; a >= 0; a-- {
			idx[a]++
			if idx[a] < len(axes[a]) {
				break
			}
			idx[a] = 0
		}
	}
	return pts
}

// electrodeKernel builds the N×M basis-potential matrix and the N×N
// electrode kernel K = B·Bᵀ/M for basis radius r.  Pure function of the
// geometry: CrossValidate calls it concurrently for candidate radii.
func (e *Estimator) electrodeKernel(r float64) (*mat.Dense, *mat.SymDense) {
	srcs := e.sources()
	n, m := len(e.ele), len(srcs)
	bPot := mat.NewDense(n, m, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			bPot.Set(i, j, e.basisPotential(srcs[j], e.ele[i], r))
		}
	}
	// Explicit symmetric accumulation keeps K exactly symmetric.
	kPot := mat.NewSymDense(n, nil)
	inv := 1 / float64(m)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			kPot.SetSym(i, j, inv*floats.Dot(bPot.RawRowView(i), bPot.RawRowView(j)))
		}
	}
	return bPot, kPot
}

// crossKernel builds the G×N cross-kernel K̃ = B̃·Bᵀ/M for basis radius r,
// where B̃ holds the basis CSD values on the estimation grid.
func (e *Estimator) crossKernel(r float64, bPot *mat.Dense) *mat.Dense {
	srcs := e.sources()
	grid := e.gridPoints()
	g, m := len(grid), len(srcs)
	bCsd := mat.NewDense(g, m, nil)
	for i := 0; i < g; i++ {
		for j := 0; j < m; j++ {
			bCsd.Set(i, j, basisValue(e.cfg.Basis, e.dim, dist(grid[i], srcs[j]), r))
		}
	}
	kCross := mat.NewDense(g, len(e.ele), nil)
	kCross.Mul(bCsd, bPot.T())
	kCross.Scale(1/float64(m), kCross)
	return kCross
}

func dist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return math.Sqrt(s)
}

// Values solves the regularized system and returns the G×T estimate:
// Ĉ = K̃·(K+λI)⁻¹·V, rows ordered like gridPoints (x-outer), columns are
// time samples.  The caller owns the returned matrix.
func (e *Estimator) Values() (*mat.Dense, error) {
	lam := e.cfg.Lambda
	if lam <= 0 {
		lam = lambdaFloor
	}
	beta, err := solveRidge(e.kPot, e.pots, lam)
	if err != nil {
		return nil, err
	}
	var est mat.Dense
	est.Mul(e.kCross, beta)
	return &est, nil
}

// solveRidge computes (K+λI)⁻¹·B, preferring a Cholesky factorization and
// falling back to a general solve when K+λI is not numerically PD.
func solveRidge(k *mat.SymDense, b mat.Matrix, lam float64) (*mat.Dense, error) {
	reg := regularized(k, lam)
	var x mat.Dense
	var ch mat.Cholesky
	if ch.Factorize(reg) {
		if err := ch.SolveTo(&x, b); err == nil {
			return &x, nil
		}
	}
	if err := x.Solve(reg, b); err != nil {
		return nil, fmt.Errorf("%w (λ=%g)", ErrSingularKernel, lam)
	}
	return &x, nil
}

// regularized returns K+λI without mutating K.
func regularized(k *mat.SymDense, lam float64) *mat.SymDense {
	n := k.SymmetricDim()
	reg := mat.NewSymDense(n, nil)
	reg.CopySym(k)
	for i := 0; i < n; i++ {
		reg.SetSym(i, i, reg.At(i, i)+lam)
	}
	return reg
}

// Method returns the estimator's method tag.
func (e *Estimator) Method() Method { return e.method }

// Config returns a copy of the effective configuration, including any
// R/Lambda selected by cross-validation.
func (e *Estimator) Config() Config { return e.cfg }

// AxisX returns a copy of the x estimation axis.
func (e *Estimator) AxisX() []float64 { return append([]float64(nil), e.axes[0]...) }

// AxisY returns a copy of the y estimation axis, or nil for 1D methods.
func (e *Estimator) AxisY() []float64 {
	if e.dim < 2 {
		return nil
	}
	return append([]float64(nil), e.axes[1]...)
}

// AxisZ returns a copy of the z estimation axis, or nil below 3D.
func (e *Estimator) AxisZ() []float64 {
	if e.dim < 3 {
		return nil
	}
	return append([]float64(nil), e.axes[2]...)
}
