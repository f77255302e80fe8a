package optimize

import (
	"errors"
	"fmt"

	"github.com/notargets/gopt/utils"
)

var (
	ErrNoStartPoint         = errors.New("optimize: problem has no starting point")
	ErrObjectiveRequired    = errors.New("optimize: method requires a scalar objective")
	ErrResidualRequired     = errors.New("optimize: method requires a vector residual")
	ErrHessianRequired      = errors.New("optimize: method requires a twice differentiable objective")
	ErrConstraintNotAllowed = errors.New("optimize: method does not support equality constraints")
	ErrFullyConstrained     = errors.New("optimize: constraint fixes every degree of freedom")
	ErrScaleWithConstraint  = errors.New("optimize: XScale cannot be combined with a linear constraint, use JacScale")
)

/*
Solve looks up methodName in the registry, validates the problem against the
method's capabilities and runs the driver.

When prob.Constraint is set the search happens in the reduced coordinates
y with x = xp + Z*y, so the equality constraint A*x = b holds exactly at
every iterate. The starting point is projected onto the feasible manifold,
callbacks receive full coordinates, and Result.X is expanded back before
returning. Result.Grad stays in the coordinates the driver worked in.
*/
func Solve(prob *Problem, methodName string, stop StopTol, opts Options, verbose int, cb Callback) (res *Result, err error) {
	var (
		m Method
	)
	if m, err = Lookup(methodName); err != nil {
		return
	}
	if prob == nil || prob.X0.V == nil || prob.X0.Len() == 0 {
		err = ErrNoStartPoint
		return
	}
	if m.Scalar && prob.Objective == nil {
		err = fmt.Errorf("%w (method %q)", ErrObjectiveRequired, methodName)
		return
	}
	if !m.Scalar && prob.Residual == nil {
		err = fmt.Errorf("%w (method %q)", ErrResidualRequired, methodName)
		return
	}
	if m.Hessian {
		if _, ok := prob.Objective.(TwiceDifferentiable); !ok {
			err = fmt.Errorf("%w (method %q)", ErrHessianRequired, methodName)
			return
		}
	}

	var (
		inner   = prob
		lc      = prob.Constraint
		cbInner = cb
	)
	if lc != nil {
		if !m.EqualityConstraints {
			err = fmt.Errorf("%w (method %q)", ErrConstraintNotAllowed, methodName)
			return
		}
		if lc.Dim() != prob.X0.Len() {
			err = fmt.Errorf("%w: constraint has %d columns, x0 has %d",
				ErrConstraintShape, lc.Dim(), prob.X0.Len())
			return
		}
		if lc.ReducedDim() == 0 {
			err = ErrFullyConstrained
			return
		}
		if prob.XScale.V != nil {
			err = ErrScaleWithConstraint
			return
		}
		inner = &Problem{
			X0:       lc.Reduce(prob.X0),
			JacScale: prob.JacScale,
		}
		if prob.Objective != nil {
			inner.Objective = reduceObjective(prob.Objective, lc)
		}
		if prob.Residual != nil {
			inner.Residual = &reducedResidual{obj: prob.Residual, lc: lc}
		}
		if cb != nil {
			cbInner = func(y utils.Vector) bool { return cb(lc.Expand(y)) }
		}
	}

	// With unit variable scale a problem specific radius is unavailable, so
	// start conservatively and cap growth at the unit ball.
	if opts.InitialTrustRadius == 0 && !inner.JacScale && inner.XScale.V == nil {
		opts.InitialTrustRadius = 1.e-3
		if opts.MaxTrustRadius == 0 && opts.MaxTrustRatio == 0 {
			opts.MaxTrustRadius = 1.
		}
	}
	if m.Stochastic && opts.LearningRate == 0 {
		opts.LearningRate = 1.e-2
	}

	if res, err = m.Driver(inner, methodName, stop, opts, verbose, cbInner); err != nil {
		return
	}
	if lc != nil {
		res.X = lc.Expand(res.X)
	}
	return
}

// reduceObjective wraps a scalar objective so that it is evaluated on the
// feasible manifold x = xp + Z*y. The chain rule gives the reduced gradient
// Zt*g and, when available, the reduced Hessian Zt*H*Z.
func reduceObjective(obj Differentiable, lc *LinearConstraint) Differentiable {
	if td, ok := obj.(TwiceDifferentiable); ok {
		return &reducedTwiceDifferentiable{reducedObjective{obj: obj, lc: lc}, td}
	}
	return &reducedObjective{obj: obj, lc: lc}
}

type reducedObjective struct {
	obj Differentiable
	lc  *LinearConstraint
}

func (r *reducedObjective) Value(y utils.Vector) float64 {
	return r.obj.Value(r.lc.Expand(y))
}

func (r *reducedObjective) Gradient(y utils.Vector) utils.Vector {
	g := r.obj.Gradient(r.lc.Expand(y))
	return r.lc.Z.Transpose().MulVec(g)
}

type reducedTwiceDifferentiable struct {
	reducedObjective
	td TwiceDifferentiable
}

func (r *reducedTwiceDifferentiable) Hessian(y utils.Vector) utils.Matrix {
	var (
		h  = r.td.Hessian(r.lc.Expand(y))
		zt = r.lc.Z.Transpose()
	)
	return zt.Mul(h).Mul(r.lc.Z)
}

type reducedResidual struct {
	obj VectorObjective
	lc  *LinearConstraint
}

func (r *reducedResidual) Compute(y utils.Vector) utils.Vector {
	return r.obj.Compute(r.lc.Expand(y))
}

func (r *reducedResidual) Jacobian(y utils.Vector) utils.Matrix {
	j := r.obj.Jacobian(r.lc.Expand(y))
	return j.Mul(r.lc.Z)
}
