package kcsd

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Leave-one-out cross-validation over the (Rs × lambdas) candidate grid.
// Each (R, λ) pair is scored by the closed-form LOO residual derived from
// the hat matrix H = K·(K+λI)⁻¹:
//
//	e_i = (V − K·β)_i / (1 − H_ii),   β = (K+λI)⁻¹·V
//
// summed squared over electrodes and time samples.  The search is
// parallel across R candidates (kernel construction dominates) and the
// reduction is a deterministic argmin: the lowest R index, then the
// lowest λ index, wins ties.

// DefaultLambdas returns the default regularization grid used when the
// caller requests cross-validation without λ candidates: 25 log-spaced
// values from 1e-12 to 1e-2.
func DefaultLambdas() []float64 {
	return floats.LogSpan(make([]float64, 25), 1e-12, 1e-2)
}

// cvScore is one R candidate's best λ and its LOO score.
type cvScore struct {
	lamIdx int
	score  float64
}

// CrossValidate selects the (R, λ) pair minimizing the leave-one-out
// residual and re-fits the estimator with it.  Empty rs defaults to the
// configured R (λ-only search); empty lambdas defaults to DefaultLambdas.
// All candidates must be strictly positive and finite.
func (e *Estimator) CrossValidate(rs, lambdas []float64) (bestR, bestLambda float64, err error) {
	if len(rs) == 0 {
		rs = []float64{e.cfg.R}
	}
	if len(lambdas) == 0 {
		lambdas = DefaultLambdas()
	}
	for _, r := range rs {
		if !(r > 0) || math.IsInf(r, 1) {
			return 0, 0, fmt.Errorf("%w: R=%g", ErrNonPositiveCandidate, r)
		}
	}
	for _, l := range lambdas {
		if !(l > 0) || math.IsInf(l, 1) {
			return 0, 0, fmt.Errorf("%w: lambda=%g", ErrNonPositiveCandidate, l)
		}
	}

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(rs) {
		workers = len(rs)
	}

	// Fan out per R candidate; each worker writes only its own slot.
	scores := make([]cvScore, len(rs))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ri := range jobs {
				scores[ri] = e.evaluateR(rs[ri], lambdas)
			}
		}()
	}
	for ri := range rs {
		jobs <- ri
	}
	close(jobs)
	wg.Wait()

	bestIdx := -1
	bestScore := math.Inf(1)
	for ri := range scores {
		if scores[ri].lamIdx >= 0 && scores[ri].score < bestScore {
			bestIdx, bestScore = ri, scores[ri].score
		}
	}
	if bestIdx < 0 {
		return 0, 0, fmt.Errorf("%w: no usable cross-validation candidate", ErrSingularKernel)
	}

	e.cfg.R = rs[bestIdx]
	e.cfg.Lambda = lambdas[scores[bestIdx].lamIdx]
	e.build()
	return e.cfg.R, e.cfg.Lambda, nil
}

// evaluateR scores every λ candidate against the electrode kernel built
// for one basis radius.  Side-effect free; safe to run concurrently.
func (e *Estimator) evaluateR(r float64, lambdas []float64) cvScore {
	_, kp := e.electrodeKernel(r)
	best := cvScore{lamIdx: -1, score: math.Inf(1)}
	for li, lam := range lambdas {
		s := looError(kp, e.pots, lam)
		if s < best.score {
			best.lamIdx, best.score = li, s
		}
	}
	return best
}

// looError is the summed squared leave-one-out residual for one (K, λ),
// +Inf when the candidate is numerically unusable.
func looError(k *mat.SymDense, pots *mat.Dense, lam float64) float64 {
	beta, err := solveRidge(k, pots, lam)
	if err != nil {
		return math.Inf(1)
	}
	// K and (K+λI)⁻¹ share an eigenbasis, so H = K·(K+λI)⁻¹ = (K+λI)⁻¹·K
	// and one more ridge solve yields the hat matrix.
	hat, err := solveRidge(k, k, lam)
	if err != nil {
		return math.Inf(1)
	}

	var fitted mat.Dense
	fitted.Mul(k, beta)
	n := k.SymmetricDim()
	_, t := pots.Dims()
	var score float64
	for i := 0; i < n; i++ {
		den := 1 - hat.At(i, i)
		if math.Abs(den) < 1e-12 {
			return math.Inf(1)
		}
		for j := 0; j < t; j++ {
			res := (pots.At(i, j) - fitted.At(i, j)) / den
			score += res * res
		}
	}
	if math.IsNaN(score) {
		return math.Inf(1)
	}
	return score
}
