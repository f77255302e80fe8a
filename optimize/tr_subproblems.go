package optimize

import (
	"math"

	"github.com/notargets/gopt/utils"
	"gonum.org/v1/gonum/mat"
)

// cholSolve solves H p = b for symmetric positive definite H. ok is false
// when the factorization fails, which is how an indefinite model matrix
// announces itself.
func cholSolve(H utils.Matrix, b utils.Vector) (p utils.Vector, ok bool) {
	var (
		n, _ = H.Dims()
		chol mat.Cholesky
	)
	sym := mat.NewSymDense(n, H.DataP)
	if ok = chol.Factorize(sym); !ok {
		return
	}
	p = utils.NewVector(n)
	if err := chol.SolveVecTo(p.V, b.V); err != nil {
		ok = false
	}
	return
}

// steepestDescentStep returns the boundary step along -g.
func steepestDescentStep(g utils.Vector, delta float64) utils.Vector {
	return g.Copy().Scale(-delta / g.Norm2())
}

// trustRegionStepDogleg minimizes the quadratic model 0.5 p.H.p + g.p over
// ||p|| <= delta along the dogleg path joining the steepest descent minimizer
// and the Newton point. An indefinite or singular H degrades to the Cauchy
// point rather than failing.
func trustRegionStepDogleg(g utils.Vector, H utils.Matrix, delta float64) (p utils.Vector, hitsBoundary bool) {
	var (
		gNorm = g.Norm2()
	)
	if gNorm == 0 {
		p = utils.NewVector(g.Len())
		return
	}

	pB, newtonOK := cholSolve(H, g.Copy().Scale(-1))
	if newtonOK && pB.Norm2() <= delta {
		return pB, false
	}

	gHg := g.Dot(H.MulVec(g))
	if gHg <= 0 {
		// Negative curvature along -g, run to the boundary.
		return steepestDescentStep(g, delta), true
	}
	pU := g.Copy().Scale(-g.Dot(g) / gHg)
	if pU.Norm2() >= delta {
		return steepestDescentStep(g, delta), true
	}
	if !newtonOK {
		// No Newton point to aim at, settle for the Cauchy point.
		return pU, false
	}

	// Walk from the Cauchy point toward the Newton point until the path
	// crosses the boundary: ||pU + tau*d|| = delta.
	d := pB.Copy().Subtract(pU)
	var (
		a = d.Dot(d)
		b = 2 * pU.Dot(d)
		c = pU.Dot(pU) - delta*delta
	)
	tau := (-b + math.Sqrt(b*b-4*a*c)) / (2 * a)
	p = pU.Add(d.Scale(tau))
	hitsBoundary = true
	return
}

// trustRegionStep2DSubspace minimizes the model over the two dimensional
// subspace spanned by the gradient and the Newton direction, intersected
// with the trust region. When no Newton direction exists the subspace
// collapses to the gradient line.
func trustRegionStep2DSubspace(g utils.Vector, H utils.Matrix, delta float64) (p utils.Vector, hitsBoundary bool) {
	var (
		k     = g.Len()
		gNorm = g.Norm2()
	)
	if gNorm == 0 {
		p = utils.NewVector(k)
		return
	}

	pN, newtonOK := cholSolve(H, g.Copy().Scale(-1))
	if newtonOK && pN.Norm2() <= delta {
		return pN, false
	}

	// Orthonormal basis S via Gram-Schmidt on {g, pN}.
	q1 := g.Copy().Scale(1 / gNorm)
	var q2 utils.Vector
	twoDim := false
	if newtonOK {
		w := pN.Copy().Subtract(q1.Copy().Scale(pN.Dot(q1)))
		if wNorm := w.Norm2(); wNorm > 1.e-12*pN.Norm2() {
			q2 = w.Scale(1 / wNorm)
			twoDim = true
		}
	}

	if !twoDim {
		// One dimensional model along -g.
		var (
			bCurv = q1.Dot(H.MulVec(q1))
			qLin  = gNorm // g.q1
			t     float64
		)
		if bCurv > 0 {
			t = math.Max(-delta, math.Min(delta, -qLin/bCurv))
		} else {
			t = -delta
		}
		p = q1.Scale(t)
		hitsBoundary = math.Abs(t) == delta
		return
	}

	S := utils.NewMatrix(k, 2)
	S.SetCol(0, q1.DataP)
	S.SetCol(1, q2.DataP)

	// Reduced 2x2 model.
	HS := H.Mul(S)
	B := S.Transpose().Mul(HS)
	q := S.Transpose().MulVec(g)

	p2, interior := solveTR2D(B, q, delta)
	p = S.MulVec(p2)
	hitsBoundary = !interior
	return
}

// solveTR2D solves the general two dimensional trust region problem exactly.
// The boundary solution is parameterized by the angle theta with
// t = tan(theta/2), which turns the stationarity condition into a quartic
// whose real roots are candidate boundary minimizers.
func solveTR2D(B utils.Matrix, q utils.Vector, delta float64) (p utils.Vector, interior bool) {
	if pN, ok := cholSolve(B, q.Copy().Scale(-1)); ok {
		if pN.Dot(pN) <= delta*delta {
			return pN, true
		}
	}
	var (
		a = B.At(0, 0) * delta * delta
		b = B.At(0, 1) * delta * delta
		c = B.At(1, 1) * delta * delta
		d = q.AtVec(0) * delta
		f = q.AtVec(1) * delta
	)
	coeffs := []float64{-b + d, 2 * (a - c + f), 6 * b, 2 * (-a + c + f), -b - d}
	roots, err := utils.PolyRoots(coeffs)
	var ts []float64
	if err == nil {
		ts = utils.RealRoots(roots)
	}
	if len(ts) == 0 {
		// Degenerate quartic, fall back to the steepest descent boundary
		// point of the reduced model.
		p = steepestDescentStep(q, delta)
		return
	}
	var (
		best    utils.Vector
		bestVal = math.Inf(1)
	)
	for _, t := range ts {
		den := 1 + t*t
		cand := utils.NewVector(2, []float64{
			delta * 2 * t / den,
			delta * (1 - t*t) / den,
		})
		val := 0.5*cand.Dot(B.MulVec(cand)) + q.Dot(cand)
		if val < bestVal {
			bestVal = val
			best = cand
		}
	}
	p = best
	return
}

// trustRegionStepExact solves the least squares trust region subproblem
// min ||J p + f||^2 over ||p|| <= delta through the SVD of J. uf holds
// U^T f, s the singular values and V the right singular vectors. alphaInit
// carries the Levenberg-Marquardt parameter from the previous solve (NaN on
// the first call). The secular equation ||p(alpha)|| = delta is solved by a
// safeguarded Newton iteration capped at 10 steps with a relative tolerance
// of 0.01*delta, after which the step is rescaled onto the boundary.
func trustRegionStepExact(uf, s utils.Vector, V utils.Matrix, delta, alphaInit float64, nRes int) (p utils.Vector, hitsBoundary bool, alpha float64) {
	var (
		nVars, _ = V.Dims()
		nsv      = s.Len()
		suf      = make([]float64, nsv)
		sufNorm  float64
	)
	for i := range suf {
		suf[i] = s.DataP[i] * uf.DataP[i]
		sufNorm += suf[i] * suf[i]
	}
	sufNorm = math.Sqrt(sufNorm)

	if sufNorm == 0 {
		// The model gradient vanishes, nothing to gain from a step.
		p = utils.NewVector(nVars)
		return
	}

	// phi(alpha) = ||p(alpha)|| - delta and its derivative.
	phi := func(a float64) (val, deriv float64) {
		var pnorm2, sum3 float64
		for i := range suf {
			den := s.DataP[i]*s.DataP[i] + a
			w := suf[i] / den
			pnorm2 += w * w
			sum3 += suf[i] * suf[i] / (den * den * den)
		}
		pnorm := math.Sqrt(pnorm2)
		val = pnorm - delta
		deriv = -sum3 / pnorm
		return
	}

	fullRank := false
	if nRes >= nVars && nsv > 0 {
		threshold := utils.Eps * float64(nRes) * s.AtVec(0)
		fullRank = s.AtVec(nsv-1) > threshold
	}

	if fullRank {
		// Try the interior Gauss-Newton step first.
		w := utils.NewVector(nsv)
		for i := 0; i < nsv; i++ {
			w.DataP[i] = -uf.DataP[i] / s.DataP[i]
		}
		p = V.MulVec(w)
		if p.Norm2() <= delta {
			return p, false, 0
		}
	}

	alphaUpper := sufNorm / delta
	var alphaLower float64
	if fullRank {
		val, deriv := phi(0)
		alphaLower = -val / deriv
	}

	alpha = alphaInit
	if math.IsNaN(alpha) || (fullRank && alpha == 0) {
		alpha = math.Max(0.001*alphaUpper, math.Sqrt(alphaLower*alphaUpper))
	}

	for it := 0; it < 10; it++ {
		if alpha < alphaLower || alpha > alphaUpper {
			alpha = math.Max(0.001*alphaUpper, math.Sqrt(alphaLower*alphaUpper))
		}
		val, deriv := phi(alpha)
		if val < 0 {
			alphaUpper = alpha
		}
		ratio := val / deriv
		alphaLower = math.Max(alphaLower, alpha-ratio)
		alpha -= (val + delta) * ratio / delta
		if math.Abs(val) < 0.01*delta {
			break
		}
	}

	w := utils.NewVector(nsv)
	for i := 0; i < nsv; i++ {
		w.DataP[i] = -suf[i] / (s.DataP[i]*s.DataP[i] + alpha)
	}
	p = V.MulVec(w)
	// Rescale onto the boundary so rounding never pushes the step outside
	// the region.
	p.Scale(delta / p.Norm2())
	if !utils.IsFinite(p) {
		// The secular iteration produced an unusable multiplier. Recover
		// with the steepest descent boundary step, -delta * g/|g| with
		// g = V*suf in model coordinates.
		for i := 0; i < nsv; i++ {
			w.DataP[i] = -suf[i] / sufNorm
		}
		p = V.MulVec(w).Scale(delta)
		alpha = math.NaN()
	}
	hitsBoundary = true
	return
}

// updateTRRadius applies the standard accept/reject radius policy and
// returns the new radius together with the agreement ratio between actual
// and predicted reduction.
func updateTRRadius(trustRadius, actualReduction, predictedReduction, stepNorm float64, boundHit bool, opts Options) (float64, float64) {
	var ratio float64
	switch {
	case predictedReduction > 0:
		ratio = actualReduction / predictedReduction
	case predictedReduction == 0 && actualReduction == 0:
		ratio = 1
	default:
		ratio = 0
	}

	if ratio < opts.TRDecreaseThreshold {
		trustRadius = opts.TRDecreaseRatio * stepNorm
	} else if ratio > opts.TRIncreaseThreshold && boundHit {
		trustRadius *= opts.TRIncreaseRatio
	}
	trustRadius = math.Min(math.Max(trustRadius, opts.MinTrustRadius), opts.MaxTrustRadius)
	return trustRadius, ratio
}
