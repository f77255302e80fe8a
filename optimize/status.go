package optimize

import "fmt"

// Status describes why a driver stopped.
type Status int

const (
	NotTerminated Status = iota
	FTolConverged
	XTolConverged
	GTolConverged
	MaxIterations
	MaxFunEvaluations
	MaxJacEvaluations
	MaxGradEvaluations
	MaxHessEvaluations
	Stalled
	CallbackStop
	LinAlgFailure
)

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusStrings) {
		return fmt.Sprintf("Status(%d)", s)
	}
	return statusStrings[s]
}

// Success reports whether the status represents convergence rather than
// budget exhaustion or failure.
func (s Status) Success() bool {
	switch s {
	case FTolConverged, XTolConverged, GTolConverged:
		return true
	}
	return false
}

var statusStrings = []string{
	NotTerminated:      "NotTerminated",
	FTolConverged:      "FTolConverged",
	XTolConverged:      "XTolConverged",
	GTolConverged:      "GTolConverged",
	MaxIterations:      "MaxIterations",
	MaxFunEvaluations:  "MaxFunEvaluations",
	MaxJacEvaluations:  "MaxJacEvaluations",
	MaxGradEvaluations: "MaxGradEvaluations",
	MaxHessEvaluations: "MaxHessEvaluations",
	Stalled:            "Stalled",
	CallbackStop:       "CallbackStop",
	LinAlgFailure:      "LinAlgFailure",
}

// Termination report fragments, composed by checkTermination.
const (
	msgSuccess  = "Optimization terminated successfully."
	msgFTol     = "`ftol` condition satisfied."
	msgXTol     = "`xtol` condition satisfied."
	msgGTol     = "`gtol` condition satisfied."
	msgMaxIter  = "Maximum number of iterations has been exceeded."
	msgMaxFun   = "Maximum number of function evaluations has been exceeded."
	msgMaxJac   = "Maximum number of jacobian evaluations has been exceeded."
	msgMaxGrad  = "Maximum number of gradient evaluations has been exceeded."
	msgMaxHess  = "Maximum number of hessian evaluations has been exceeded."
	msgStalled  = "No step with a positive reduction was found within the retry budget."
	msgCallback = "Optimization terminated by user supplied callback."
	msgLinAlg   = "A linear algebra failure occurred, such as a singular or non-finite system."
)
