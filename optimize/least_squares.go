package optimize

import (
	"math"

	"github.com/notargets/gopt/utils"
	"gonum.org/v1/gonum/mat"
)

// lsqtr minimizes cost(x) = 0.5*||f(x)||^2 with a Levenberg-Marquardt style
// trust region iteration. Each outer iteration takes the SVD of the scaled
// Jacobian once and reuses it for every radius retry, solving the secular
// equation exactly for the step. A non-finite trial cost is treated as a
// rejected step, which shrinks the radius and retries.
func lsqtr(prob *Problem, method string, stop StopTol, opts Options, verbose int, cb Callback) (res *Result, err error) {
	if prob.Residual == nil {
		err = ErrResidualRequired
		return
	}
	var (
		obj        = prob.Residual
		x          = prob.X0.Copy()
		n          = x.Len()
		nfev, njev int
		iteration  int
	)
	stop = stop.withDefaults(n)
	opts = opts.withDefaults()

	f := obj.Compute(x)
	nfev++
	m := f.Len()
	J := obj.Jacobian(x)
	njev++
	g := J.Transpose().MulVec(f)
	costVal := cost(f)

	if !utils.IsFinite(f) || !utils.IsFinite(J) {
		res = &Result{
			X: x, Fun: costVal, Residual: f, Grad: g,
			Status: LinAlgFailure, Message: msgLinAlg,
			NFev: nfev, NJev: njev,
		}
		if verbose > 0 {
			printTerminationReport(res)
		}
		return
	}

	var scale, scaleInv utils.Vector
	switch {
	case prob.JacScale:
		scale, scaleInv = computeJacScale(J, utils.Vector{})
	case prob.XScale.V != nil:
		scale = prob.XScale.Copy()
		scaleInv = prob.XScale.Copy().Apply(func(v float64) float64 { return 1 / v })
	default:
		scale = utils.NewVectorConstant(n, 1)
		scaleInv = utils.NewVectorConstant(n, 1)
	}

	trustRadius := opts.InitialTrustRadius
	if trustRadius == 0 {
		trustRadius = x.Copy().ElMul(scaleInv).Norm2()
	}
	if trustRadius == 0 {
		trustRadius = 1.0
	}
	if opts.MaxTrustRadius == 0 {
		opts.MaxTrustRadius = opts.MaxTrustRatio * trustRadius
	}

	var (
		status          Status
		message         string
		xNorm           = x.Norm2()
		gNorm           float64
		stepNorm        = math.Inf(1)
		actualReduction = math.Inf(1)
		ratio           float64
		alpha           = math.NaN() // Levenberg-Marquardt parameter
		allCost         = []float64{costVal}
		allTR           = []float64{trustRadius}
		xNew, fNew      utils.Vector
		costNew         float64
	)

	if verbose > 1 {
		printHeaderNonlinear()
	}

	for {
		gNorm = g.NormInf()
		if stop.GTol > 0 && gNorm < stop.GTol && status == NotTerminated {
			status = GTolConverged
			message = msgSuccess + " " + msgGTol
		}
		if verbose > 1 {
			printIterationNonlinear(iteration, nfev, costVal, actualReduction, stepNorm, gNorm)
		}
		if status != NotTerminated {
			break
		}

		gh := g.Copy().ElMul(scale)
		Jh := J.Copy().ScaleCols(scale)

		var svd mat.SVD
		if ok := svd.Factorize(Jh.M, mat.SVDThin); !ok {
			status = LinAlgFailure
			message = msgLinAlg
			break
		}
		minDim := min(m, n)
		var (
			U = utils.NewMatrix(m, minDim)
			V = utils.NewMatrix(n, minDim)
			s = utils.NewVector(minDim, svd.Values(nil))
		)
		svd.UTo(U.M)
		svd.VTo(V.M)
		Ut := U.Transpose()
		uf := Ut.MulVec(f)

		actualReduction = -1
		for retries := 0; actualReduction <= 0 && nfev < stop.MaxFunEvals; retries++ {
			if retries > opts.MaxStepRetries {
				status = Stalled
				message = msgStalled
				break
			}
			var (
				stepH        utils.Vector
				hitsBoundary bool
			)
			stepH, hitsBoundary, alpha = trustRegionStepExact(uf, s, V, trustRadius, alpha, m)
			stepHNorm := stepH.Norm2()

			// Second order "geodesic" correction from a directional
			// curvature probe.
			if opts.GeodesicAccelRatio > 0 {
				h := opts.GeodesicFDStep
				stepScaled := stepH.Copy().ElMul(scale)
				f1 := obj.Compute(x.Copy().Add(stepScaled.Copy().Scale(h)))
				nfev++
				Jstep := J.MulVec(stepScaled)
				rhs := f1.Copy().Subtract(f).Scale(1 / h).Subtract(Jstep).Scale(2 / h)
				ufGA := Ut.MulVec(rhs)
				gaStep, _, _ := trustRegionStepExact(ufGA, s, V, opts.GeodesicAccelRatio*stepHNorm, alpha, m)
				stepH.Add(gaStep)
			}

			predictedReduction := -evaluateQuadratic(Jh, gh, stepH)

			step := stepH.Copy().ElMul(scale)
			stepNorm = step.Norm2()
			xNew = x.Copy().Add(step)
			fNew = obj.Compute(xNew)
			nfev++

			if utils.IsFinite(fNew) {
				costNew = cost(fNew)
			} else {
				costNew = math.Inf(1)
			}
			actualReduction = costVal - costNew

			trOld := trustRadius
			trustRadius, ratio = updateTRRadius(trustRadius, actualReduction,
				predictedReduction, stepHNorm, hitsBoundary, opts)
			allTR = append(allTR, trustRadius)
			alpha *= trOld / trustRadius

			status, message = checkTermination(actualReduction, costVal, stepNorm,
				xNorm, gNorm, ratio, stop, iteration, nfev, njev, 0, 0)
			if status != NotTerminated {
				break
			}
		}
		if status == NotTerminated && actualReduction <= 0 && nfev >= stop.MaxFunEvals {
			status = MaxFunEvaluations
			message = msgMaxFun
		}

		if actualReduction > 0 {
			x = xNew
			f = fNew
			costVal = costNew
			J = obj.Jacobian(x)
			njev++
			g = J.Transpose().MulVec(f)
			xNorm = x.Norm2()
			allCost = append(allCost, costVal)
			if prob.JacScale {
				scale, scaleInv = computeJacScale(J, scaleInv)
			}
			if cb != nil && cb(x.Copy()) {
				status = CallbackStop
				message = msgCallback
				break
			}
		} else {
			stepNorm = 0
			actualReduction = 0
		}
		iteration++
	}

	res = &Result{
		X:          x,
		Fun:        costVal,
		Residual:   f,
		Grad:       g,
		Optimality: gNorm,
		Success:    status.Success(),
		Status:     status,
		Message:    message,
		NIter:      iteration,
		NFev:       nfev,
		NJev:       njev,
		AllCost:    allCost,
		AllTR:      allTR,
	}
	if verbose > 0 {
		printTerminationReport(res)
	}
	return
}
