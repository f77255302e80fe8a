package optimize

import (
	"errors"
	"testing"

	"github.com/notargets/gopt/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quadObj is the separable quadratic 0.5*sum d_i*x_i^2 - c_i*x_i, the small
// TwiceDifferentiable fixture shared by the driver tests.
type quadObj struct{ d, c []float64 }

func (q quadObj) Value(x utils.Vector) (f float64) {
	for i, xi := range x.DataP {
		f += 0.5*q.d[i]*xi*xi - q.c[i]*xi
	}
	return
}

func (q quadObj) Gradient(x utils.Vector) (g utils.Vector) {
	g = utils.NewVector(x.Len())
	for i, xi := range x.DataP {
		g.DataP[i] = q.d[i]*xi - q.c[i]
	}
	return
}

func (q quadObj) Hessian(x utils.Vector) utils.Matrix {
	return utils.NewDiagMatrix(x.Len(), q.d)
}

// gradOnlyObj strips the Hessian from quadObj.
type gradOnlyObj struct{ q quadObj }

func (o gradOnlyObj) Value(x utils.Vector) float64         { return o.q.Value(x) }
func (o gradOnlyObj) Gradient(x utils.Vector) utils.Vector { return o.q.Gradient(x) }

func TestSolveValidation(t *testing.T) {
	var (
		obj = quadObj{d: []float64{1, 1}, c: []float64{0, 0}}
		x0  = utils.NewVector(2, []float64{1, 1})
	)
	// Unknown method
	{
		_, err := Solve(&Problem{Objective: obj, X0: x0}, "newton-cg", StopTol{}, Options{}, 0, nil)
		assert.True(t, errors.Is(err, ErrUnknownMethod))
	}
	// Missing start point
	{
		_, err := Solve(&Problem{Objective: obj}, "dogleg", StopTol{}, Options{}, 0, nil)
		assert.Equal(t, ErrNoStartPoint, err)
	}
	// Scalar method without an objective
	{
		_, err := Solve(&Problem{X0: x0}, "dogleg", StopTol{}, Options{}, 0, nil)
		assert.True(t, errors.Is(err, ErrObjectiveRequired))
	}
	// Least squares method without a residual
	{
		_, err := Solve(&Problem{Objective: obj, X0: x0}, "lsq-exact", StopTol{}, Options{}, 0, nil)
		assert.True(t, errors.Is(err, ErrResidualRequired))
	}
	// Exact Hessian method with a gradient only objective
	{
		_, err := Solve(&Problem{Objective: gradOnlyObj{q: obj}, X0: x0}, "dogleg", StopTol{}, Options{}, 0, nil)
		assert.True(t, errors.Is(err, ErrHessianRequired))
		// The BFGS variant accepts the same objective
		res, err := Solve(&Problem{Objective: gradOnlyObj{q: obj}, X0: x0}, "dogleg-bfgs", StopTol{}, Options{}, 0, nil)
		require.NoError(t, err)
		assert.True(t, res.Success)
	}
	// Fully constrained problem has no degrees of freedom left
	{
		lc, err := NewLinearConstraint(utils.NewIdentity(2), utils.NewVector(2, []float64{1, 2}))
		require.NoError(t, err)
		_, err = Solve(&Problem{Objective: obj, X0: x0, Constraint: lc}, "dogleg", StopTol{}, Options{}, 0, nil)
		assert.Equal(t, ErrFullyConstrained, err)
	}
	// XScale cannot combine with a constraint
	{
		lc, err := NewLinearConstraint(utils.NewMatrix(1, 2, []float64{1, 1}), utils.NewVector(1, []float64{1}))
		require.NoError(t, err)
		_, err = Solve(&Problem{
			Objective:  obj,
			X0:         x0,
			XScale:     utils.NewVector(2, []float64{1, 1}),
			Constraint: lc,
		}, "dogleg", StopTol{}, Options{}, 0, nil)
		assert.Equal(t, ErrScaleWithConstraint, err)
	}
	// Constraint width must match the start point
	{
		lc, err := NewLinearConstraint(utils.NewMatrix(1, 3, []float64{1, 1, 1}), utils.NewVector(1, []float64{1}))
		require.NoError(t, err)
		_, err = Solve(&Problem{Objective: obj, X0: x0, Constraint: lc}, "dogleg", StopTol{}, Options{}, 0, nil)
		assert.True(t, errors.Is(err, ErrConstraintShape))
	}
	// A method that does not opt into constraints is rejected
	{
		if err := Register(Method{Name: "descent-plain", Scalar: true, Driver: sgd}); err != nil && !errors.Is(err, ErrDuplicateMethod) {
			t.Fatal(err)
		}
		lc, err := NewLinearConstraint(utils.NewMatrix(1, 2, []float64{1, 1}), utils.NewVector(1, []float64{1}))
		require.NoError(t, err)
		_, err = Solve(&Problem{Objective: obj, X0: x0, Constraint: lc}, "descent-plain", StopTol{}, Options{}, 0, nil)
		assert.True(t, errors.Is(err, ErrConstraintNotAllowed))
	}
}

func TestSolveConstrained(t *testing.T) {
	// min |x|^2 subject to x1 + x2 = 1, solution (0.5, 0.5)
	var (
		obj = quadObj{d: []float64{2, 2}, c: []float64{0, 0}}
	)
	lc, err := NewLinearConstraint(utils.NewMatrix(1, 2, []float64{1, 1}), utils.NewVector(1, []float64{1}))
	require.NoError(t, err)

	// Scalar face with an exact reduced Hessian
	{
		var iterates []utils.Vector
		cb := func(x utils.Vector) bool {
			iterates = append(iterates, x)
			return false
		}
		prob := &Problem{
			Objective:  obj,
			X0:         utils.NewVector(2, []float64{1, 0}),
			Constraint: lc,
		}
		res, err := Solve(prob, "dogleg", StopTol{}, Options{}, 0, cb)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.InDeltaSlice(t, []float64{0.5, 0.5}, res.X.DataP, 1.e-8)
		assert.InDelta(t, 0.5, res.Fun, 1.e-10)
		// The reported gradient lives in the reduced coordinates
		assert.Equal(t, 1, res.Grad.Len())
		// Every callback iterate is feasible, in full coordinates
		require.NotEmpty(t, iterates)
		for _, x := range iterates {
			require.Equal(t, 2, x.Len())
			assert.InDelta(t, 1., x.DataP[0]+x.DataP[1], 1.e-12)
		}
	}
	// Same geometry through the least squares face
	{
		prob := &Problem{
			Residual:   shiftResidual{c: utils.NewVector(2)},
			X0:         utils.NewVector(2, []float64{1, 0}),
			Constraint: lc,
		}
		res, err := Solve(prob, "lsq-exact", StopTol{}, Options{}, 0, nil)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.InDeltaSlice(t, []float64{0.5, 0.5}, res.X.DataP, 1.e-8)
		assert.InDelta(t, 0.25, res.Fun, 1.e-10)
	}
}
