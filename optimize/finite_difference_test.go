package optimize

import (
	"testing"

	"github.com/notargets/gopt/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericDerivatives(t *testing.T) {
	// Gradient of the banana valley at the classic start point
	{
		obj := NumericObjective{F: func(x utils.Vector) float64 {
			a := x.AtVec(1) - x.AtVec(0)*x.AtVec(0)
			b := 1 - x.AtVec(0)
			return 100*a*a + b*b
		}}
		g := obj.Gradient(utils.NewVector(2, []float64{-1.2, 1}))
		assert.InEpsilon(t, -215.6, g.AtVec(0), 1.e-6)
		assert.InEpsilon(t, -88., g.AtVec(1), 1.e-6)
	}
	// Hessian of the banana valley at the minimum
	{
		obj := NumericObjective{F: func(x utils.Vector) float64 {
			a := x.AtVec(1) - x.AtVec(0)*x.AtVec(0)
			b := 1 - x.AtVec(0)
			return 100*a*a + b*b
		}}
		H := obj.Hessian(utils.NewVector(2, []float64{1, 1}))
		assert.InDeltaSlice(t, []float64{802, -400, -400, 200}, H.DataP, 1.e-2)
	}
	// Jacobian of a mixed linear and quadratic residual
	{
		res := NumericResidual{F: func(x utils.Vector) utils.Vector {
			return utils.NewVector(2, []float64{
				3*x.AtVec(0) + 2*x.AtVec(1),
				x.AtVec(0) * x.AtVec(0),
			})
		}}
		x := utils.NewVector(2, []float64{2, 3})
		assert.InDeltaSlice(t, []float64{12, 4}, res.Compute(x).DataP, 1.e-14)
		J := res.Jacobian(x)
		assert.InDeltaSlice(t, []float64{3, 2, 4, 0}, J.DataP, 1.e-6)
	}
}

func TestNumericObjectiveSolve(t *testing.T) {
	// A function only objective is enough to drive the exact Hessian
	// methods end to end.
	prob := &Problem{
		Objective: NumericObjective{F: func(x utils.Vector) float64 {
			a := x.AtVec(0) - 1
			b := x.AtVec(1) - 2
			return a*a + b*b
		}},
		X0: utils.NewVector(2, []float64{0, 0}),
	}
	res, err := Solve(prob, "dogleg", StopTol{}, Options{}, 0, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.InDeltaSlice(t, []float64{1, 2}, res.X.DataP, 1.e-5)
}
