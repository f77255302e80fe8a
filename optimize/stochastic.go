package optimize

import (
	"math"

	"github.com/notargets/gopt/utils"
)

// sgd is the first order fallback driver: x steps along the negative
// gradient with a fixed or decaying learning rate. There is no model, no
// step rejection and no descent guarantee; a non-finite evaluation stops the
// run with a failure status rather than being corrected.
func sgd(prob *Problem, method string, stop StopTol, opts Options, verbose int, cb Callback) (res *Result, err error) {
	if prob.Objective == nil {
		err = ErrObjectiveRequired
		return
	}
	var (
		obj        = prob.Objective
		x          = prob.X0.Copy()
		n          = x.Len()
		nfev, ngev int
		iteration  int
	)
	stop = stop.withDefaults(n)
	opts = opts.withDefaults()

	fVal := obj.Value(x)
	nfev++
	g := obj.Gradient(x)
	ngev++

	if !utils.IsFinite(fVal) || !utils.IsFinite(g) {
		res = &Result{
			X: x, Fun: fVal, Grad: g,
			Status: LinAlgFailure, Message: msgLinAlg,
			NFev: nfev, NGev: ngev,
		}
		if verbose > 0 {
			printTerminationReport(res)
		}
		return
	}

	var (
		status          Status
		message         string
		xNorm           = x.Norm2()
		gNorm           float64
		stepNorm        = math.Inf(1)
		actualReduction = math.Inf(1)
		allCost         = []float64{fVal}
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

		eta := opts.LearningRate / (1 + opts.DecayRate*float64(iteration))
		step := g.Copy().Scale(-eta)
		stepNorm = step.Norm2()
		xNew := x.Copy().Add(step)

		fNew := obj.Value(xNew)
		nfev++
		gNew := obj.Gradient(xNew)
		ngev++
		if !utils.IsFinite(fNew) || !utils.IsFinite(gNew) {
			status = LinAlgFailure
			message = msgLinAlg
			break
		}

		actualReduction = fVal - fNew
		x = xNew
		fVal = fNew
		g = gNew
		xNorm = x.Norm2()
		allCost = append(allCost, fVal)

		status, message = checkTermination(math.Abs(actualReduction), fVal, stepNorm,
			xNorm, gNorm, 1, stop, iteration, nfev, 0, ngev, 0)

		if cb != nil && cb(x.Copy()) {
			status = CallbackStop
			message = msgCallback
			break
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
		AllCost:    allCost,
	}
	if verbose > 0 {
		printTerminationReport(res)
	}
	return
}
