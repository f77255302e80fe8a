package optimize

import (
	"fmt"
	"math"

	"github.com/notargets/gopt/utils"
)

// checkTermination applies the shared stopping tests in priority order:
// convergence first, then the iteration and evaluation budgets. It returns
// NotTerminated while the solve should continue.
func checkTermination(dF, f, dxNorm, xNorm, gNorm, ratio float64, stop StopTol,
	iteration, nfev, njev, ngev, nhev int) (status Status, message string) {
	var (
		ftolSat = stop.FTol > 0 && dF < stop.FTol*math.Abs(f) && ratio > 0.25
		xtolSat = stop.XTol > 0 && dxNorm < stop.XTol*(stop.XTol+xNorm)
		gtolSat = stop.GTol > 0 && gNorm < stop.GTol
	)
	if ftolSat || xtolSat || gtolSat {
		switch {
		case ftolSat:
			status = FTolConverged
		case xtolSat:
			status = XTolConverged
		default:
			status = GTolConverged
		}
		message = msgSuccess
		if ftolSat {
			message += " " + msgFTol
		}
		if xtolSat {
			message += " " + msgXTol
		}
		if gtolSat {
			message += " " + msgGTol
		}
		return
	}
	switch {
	case iteration >= stop.MaxIter:
		return MaxIterations, msgMaxIter
	case nfev >= stop.MaxFunEvals:
		return MaxFunEvaluations, msgMaxFun
	case njev >= stop.MaxJacEvals:
		return MaxJacEvaluations, msgMaxJac
	case ngev >= stop.MaxGradEvals:
		return MaxGradEvaluations, msgMaxGrad
	case nhev >= stop.MaxHessEvals:
		return MaxHessEvaluations, msgMaxHess
	}
	return NotTerminated, ""
}

// evaluateQuadratic computes the Gauss-Newton model value
// 0.5*||J s||^2 + g.s for a candidate step s.
func evaluateQuadratic(J utils.Matrix, g, s utils.Vector) float64 {
	Js := J.MulVec(s)
	return 0.5*Js.Dot(Js) + g.Dot(s)
}

// evaluateQuadraticForm computes the Newton model value 0.5*s.H.s + g.s.
func evaluateQuadraticForm(g utils.Vector, H utils.Matrix, s utils.Vector) float64 {
	return 0.5*s.Dot(H.MulVec(s)) + g.Dot(s)
}

// computeJacScale derives per-variable scale factors from the column norms
// of the Jacobian (or Hessian). The inverse scale never shrinks between
// iterations, which keeps the scaled problem stable as columns degenerate.
func computeJacScale(J utils.Matrix, scaleInvOld utils.Vector) (scale, scaleInv utils.Vector) {
	var (
		nr, nc = J.Dims()
	)
	scaleInv = utils.NewVector(nc)
	for j := 0; j < nc; j++ {
		var sum float64
		for i := 0; i < nr; i++ {
			v := J.DataP[i*nc+j]
			sum += v * v
		}
		scaleInv.DataP[j] = math.Sqrt(sum)
	}
	if scaleInvOld.V == nil {
		for j, val := range scaleInv.DataP {
			if val == 0 {
				scaleInv.DataP[j] = 1
			}
		}
	} else {
		for j, val := range scaleInv.DataP {
			scaleInv.DataP[j] = math.Max(val, scaleInvOld.DataP[j])
		}
	}
	scale = scaleInv.Copy().Apply(func(v float64) float64 { return 1 / v })
	return
}

func printHeaderNonlinear() {
	fmt.Printf("%15s%15s%15s%15s%15s%15s\n",
		"Iteration", "Total nfev", "Cost", "Cost reduction", "Step norm", "Optimality")
}

func printIterationNonlinear(iteration, nfev int, cost, reduction, stepNorm, optimality float64) {
	col := func(v float64) string {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Sprintf("%15s", "")
		}
		return fmt.Sprintf("%15.2e", v)
	}
	fmt.Printf("%15d%15d%15.4e%s%s%15.2e\n",
		iteration, nfev, cost, col(reduction), col(stepNorm), optimality)
}

// printTerminationReport emits the verbose level 1 summary.
func printTerminationReport(res *Result) {
	if res.Success {
		fmt.Println(res.Message)
	} else {
		fmt.Println("Warning: " + res.Message)
	}
	fmt.Printf("         Current function value: %.3e\n", res.Fun)
	fmt.Printf("         Iterations: %d\n", res.NIter)
	fmt.Printf("         Function evaluations: %d\n", res.NFev)
	if res.NJev > 0 {
		fmt.Printf("         Jacobian evaluations: %d\n", res.NJev)
	}
	if res.NGev > 0 {
		fmt.Printf("         Gradient evaluations: %d\n", res.NGev)
	}
	if res.NHev > 0 {
		fmt.Printf("         Hessian evaluations: %d\n", res.NHev)
	}
}
