package optimize

import (
	"github.com/notargets/gopt/utils"
)

// Differentiable is a scalar objective with a first derivative. It is the
// form consumed by the scalar trust region and stochastic drivers.
type Differentiable interface {
	Value(x utils.Vector) float64
	Gradient(x utils.Vector) utils.Vector
}

// TwiceDifferentiable adds an exact second derivative. Drivers that maintain
// a quasi-Newton approximation never call Hessian.
type TwiceDifferentiable interface {
	Differentiable
	Hessian(x utils.Vector) utils.Matrix
}

// VectorObjective is a residual function f : R^n -> R^m minimized in the
// least squares sense, cost(x) = 0.5*f(x).f(x).
type VectorObjective interface {
	Compute(x utils.Vector) utils.Vector
	Jacobian(x utils.Vector) utils.Matrix
}

// Callback is invoked with a copy of the iterate after every accepted step.
// Returning true stops the solve with an unsuccessful result.
type Callback func(x utils.Vector) bool

// Problem collects the pieces of a single optimization run. Exactly one of
// Objective or Residual must be set to match the chosen method: scalar
// methods read Objective, least squares methods read Residual.
type Problem struct {
	Objective Differentiable
	Residual  VectorObjective

	// X0 is the starting point in full coordinates.
	X0 utils.Vector

	// XScale holds per-variable characteristic scales. A step of a given
	// size along any scaled variable should have a similar effect on the
	// objective. Leave empty for unit scaling.
	XScale utils.Vector

	// JacScale selects adaptive scaling from the column norms of the
	// Jacobian (or Hessian) in place of XScale.
	JacScale bool

	// Constraint restricts iterates to the affine subspace A x = b.
	Constraint *LinearConstraint
}

// cost evaluates 0.5*f.f for a residual vector.
func cost(f utils.Vector) float64 { return 0.5 * f.Dot(f) }
