package optimize

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gopt/utils"
)

// bfgsUpdate applies the rank two BFGS correction to the Hessian
// approximation H for a step s and gradient change y. The update is skipped
// when the curvature condition y.s > 0 fails, which keeps H positive
// definite.
func bfgsUpdate(H utils.Matrix, s, y utils.Vector) {
	ys := y.Dot(s)
	if ys <= 0 {
		return
	}
	Hs := H.MulVec(s)
	sHs := s.Dot(Hs)
	if sHs <= 0 {
		return
	}
	H.Add(y.Outer(y).Scale(1 / ys))
	H.Subtract(Hs.Outer(Hs).Scale(1 / sHs))
}

// fmintr minimizes a scalar objective with a Newton or quasi-Newton trust
// region iteration. The subproblem solver is selected by the method name,
// "dogleg" or "subspace", and a "-bfgs" suffix replaces the exact Hessian
// with a BFGS approximation built from gradient differences.
func fmintr(prob *Problem, method string, stop StopTol, opts Options, verbose int, cb Callback) (res *Result, err error) {
	if prob.Objective == nil {
		err = ErrObjectiveRequired
		return
	}
	var (
		obj        = prob.Objective
		bfgs       = strings.HasSuffix(method, "-bfgs")
		subproblem func(g utils.Vector, H utils.Matrix, delta float64) (utils.Vector, bool)
	)
	switch strings.TrimSuffix(method, "-bfgs") {
	case "dogleg":
		subproblem = trustRegionStepDogleg
	case "subspace":
		subproblem = trustRegionStep2DSubspace
	default:
		err = fmt.Errorf("fmintr: unsupported subproblem %q", method)
		return
	}

	var hess TwiceDifferentiable
	if !bfgs {
		var ok bool
		if hess, ok = obj.(TwiceDifferentiable); !ok {
			err = ErrHessianRequired
			return
		}
	}

	var (
		x                = prob.X0.Copy()
		n                = x.Len()
		nfev, ngev, nhev int
		iteration        int
	)
	stop = stop.withDefaults(n)
	opts = opts.withDefaults()

	fVal := obj.Value(x)
	nfev++
	g := obj.Gradient(x)
	ngev++
	var H utils.Matrix
	if bfgs {
		H = utils.NewIdentity(n)
	} else {
		H = hess.Hessian(x)
		nhev++
	}

	if !utils.IsFinite(fVal) || !utils.IsFinite(g) || !utils.IsFinite(H) {
		res = &Result{
			X: x, Fun: fVal, Grad: g,
			Status: LinAlgFailure, Message: msgLinAlg,
			NFev: nfev, NGev: ngev, NHev: nhev,
		}
		if verbose > 0 {
			printTerminationReport(res)
		}
		return
	}

	var scale, scaleInv utils.Vector
	switch {
	case prob.JacScale:
		scale, scaleInv = computeJacScale(H, utils.Vector{})
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
		allCost         = []float64{fVal}
		allTR           = []float64{trustRadius}
		xNew            utils.Vector
		fNew            float64
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
			printIterationNonlinear(iteration, nfev, fVal, actualReduction, stepNorm, gNorm)
		}
		if status != NotTerminated {
			break
		}

		gh := g.Copy().ElMul(scale)
		Hh := H.Copy().ScaleCols(scale).ScaleRows(scale)

		actualReduction = -1
		for retries := 0; actualReduction <= 0 && nfev < stop.MaxFunEvals; retries++ {
			if retries > opts.MaxStepRetries {
				status = Stalled
				message = msgStalled
				break
			}
			stepH, hitsBoundary := subproblem(gh, Hh, trustRadius)
			stepHNorm := stepH.Norm2()

			predictedReduction := -evaluateQuadraticForm(gh, Hh, stepH)

			step := stepH.Copy().ElMul(scale)
			stepNorm = step.Norm2()
			xNew = x.Copy().Add(step)
			fNew = obj.Value(xNew)
			nfev++
			if !utils.IsFinite(fNew) {
				fNew = math.Inf(1)
			}
			actualReduction = fVal - fNew

			trustRadius, ratio = updateTRRadius(trustRadius, actualReduction,
				predictedReduction, stepHNorm, hitsBoundary, opts)
			allTR = append(allTR, trustRadius)

			status, message = checkTermination(actualReduction, fVal, stepNorm,
				xNorm, gNorm, ratio, stop, iteration, nfev, 0, ngev, nhev)
			if status != NotTerminated {
				break
			}
		}
		if status == NotTerminated && actualReduction <= 0 && nfev >= stop.MaxFunEvals {
			status = MaxFunEvaluations
			message = msgMaxFun
		}

		if actualReduction > 0 {
			step := xNew.Copy().Subtract(x)
			x = xNew
			fVal = fNew
			gOld := g
			g = obj.Gradient(x)
			ngev++
			xNorm = x.Norm2()
			allCost = append(allCost, fVal)
			if bfgs {
				y := g.Copy().Subtract(gOld)
				bfgsUpdate(H, step, y)
			} else {
				H = hess.Hessian(x)
				nhev++
			}
			if prob.JacScale {
				scale, scaleInv = computeJacScale(H, scaleInv)
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
		Fun:        fVal,
		Grad:       g,
		Optimality: gNorm,
		Success:    status.Success(),
		Status:     status,
		Message:    message,
		NIter:      iteration,
		NFev:       nfev,
		NGev:       ngev,
		NHev:       nhev,
		AllCost:    allCost,
		AllTR:      allTR,
	}
	if verbose > 0 {
		printTerminationReport(res)
	}
	return
}
