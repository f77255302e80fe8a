package model_problems

import (
	"testing"

	"github.com/notargets/gopt/optimize"
	"github.com/notargets/gopt/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	// Catalog listing
	{
		assert.Equal(t, []string{"hilbert", "min-norm-sum", "powell", "quadratic", "rosenbrock"},
			Names())
	}
	// Unknown name
	{
		_, err := Get("branin", 2)
		assert.Error(t, err)
	}
	// Dimension floors and fixed dimensions
	{
		m, err := Get("rosenbrock", 0)
		require.NoError(t, err)
		assert.Equal(t, 2, m.Problem.X0.Len())

		m, err = Get("powell", 17)
		require.NoError(t, err)
		assert.Equal(t, 4, m.Problem.X0.Len())
	}
}

func TestRosenbrockForms(t *testing.T) {
	var (
		n     = 4
		rosen = NewRosenbrock(n)
		resid = NewRosenbrockResidual(n)
		x     = utils.NewVector(n, []float64{-1.2, 1, 0.3, -0.7})
	)
	// The squared residual norm reproduces the scalar value exactly
	{
		r := resid.Compute(x)
		assert.InEpsilon(t, rosen.Value(x), r.Dot(r), 1.e-12)
		assert.Equal(t, 0., rosen.Value(utils.NewVectorConstant(n, 1)))
	}
	// Analytic gradient against central differences
	{
		var (
			want = []float64{-215.6, 192, -46.6, -158}
			g    = rosen.Gradient(x)
			fd   = optimize.NumericObjective{F: rosen.Value}.Gradient(x)
		)
		for i := 0; i < n; i++ {
			assert.InEpsilon(t, want[i], g.AtVec(i), 1.e-12, "component %d", i)
			assert.InEpsilon(t, g.AtVec(i), fd.AtVec(i), 1.e-5, "component %d", i)
		}
	}
	// Analytic Hessian against central differences
	{
		var (
			h  = rosen.Hessian(x)
			fd = optimize.NumericObjective{F: rosen.Value}.Hessian(x)
		)
		assert.InDeltaSlice(t, h.DataP, fd.DataP, 1.e-1)
	}
	// Analytic Jacobian against central differences
	{
		var (
			j  = resid.Jacobian(x)
			fd = optimize.NumericResidual{F: resid.Compute}.Jacobian(x)
		)
		assert.InDeltaSlice(t, j.DataP, fd.DataP, 1.e-5)
	}
}

func TestModelSolves(t *testing.T) {
	// The valley start exercises every trust region method class
	{
		for _, method := range []string{"lsq-exact", "dogleg", "subspace", "dogleg-bfgs", "subspace-bfgs"} {
			m, err := Get("rosenbrock", 2)
			require.NoError(t, err)
			res, err := optimize.Solve(m.Problem, method, optimize.StopTol{}, optimize.Options{}, 0, nil)
			require.NoError(t, err, method)
			assert.True(t, res.Success, "%s: %s", method, res.Message)
			assert.InDeltaSlice(t, m.XStar.DataP, res.X.DataP, 1.e-3, method)
		}
	}
	// The rank deficient Jacobian slows convergence but the singular value
	// step still drives the cost to zero
	{
		m, err := Get("powell", 4)
		require.NoError(t, err)
		res, err := optimize.Solve(m.Problem, "lsq-exact", optimize.StopTol{}, optimize.Options{}, 0, nil)
		require.NoError(t, err)
		assert.Less(t, res.Fun, 1.e-6)
		assert.InDeltaSlice(t, m.XStar.DataP, res.X.DataP, 1.e-1)
	}
	// Ill conditioned linear least squares lands on the exact solution in a
	// single interior Gauss Newton step once the radius admits it
	{
		m, err := Get("hilbert", 4)
		require.NoError(t, err)
		res, err := optimize.Solve(m.Problem, "lsq-exact", optimize.StopTol{}, optimize.Options{}, 0, nil)
		require.NoError(t, err)
		assert.True(t, res.Success, res.Message)
		assert.InDeltaSlice(t, m.XStar.DataP, res.X.DataP, 1.e-4)
	}
	// A generous radius turns the quadratic into a one step Newton solve
	{
		m, err := Get("quadratic", 3)
		require.NoError(t, err)
		res, err := optimize.Solve(m.Problem, "dogleg", optimize.StopTol{},
			optimize.Options{InitialTrustRadius: 10}, 0, nil)
		require.NoError(t, err)
		assert.True(t, res.Success, res.Message)
		assert.Equal(t, 1, res.NIter)
		assert.InDeltaSlice(t, m.XStar.DataP, res.X.DataP, 1.e-10)
		assert.InDelta(t, m.FStar, res.Fun, 1.e-12)
	}
	// The constrained model runs through every method class with the
	// equality constraint held exactly
	{
		m, err := Get("min-norm-sum", 4)
		require.NoError(t, err)
		res, err := optimize.Solve(m.Problem, "lsq-exact", optimize.StopTol{}, optimize.Options{}, 0, nil)
		require.NoError(t, err)
		assert.True(t, res.Success, res.Message)
		assert.InDeltaSlice(t, m.XStar.DataP, res.X.DataP, 1.e-8)
		assert.InDelta(t, 1., sum(res.X), 1.e-10)

		m, err = Get("min-norm-sum", 4)
		require.NoError(t, err)
		res, err = optimize.Solve(m.Problem, "subspace", optimize.StopTol{}, optimize.Options{}, 0, nil)
		require.NoError(t, err)
		assert.True(t, res.Success, res.Message)
		assert.InDeltaSlice(t, m.XStar.DataP, res.X.DataP, 1.e-8)
		assert.InDelta(t, m.FStar, res.Fun, 1.e-8)
		assert.InDelta(t, 1., sum(res.X), 1.e-10)

		m, err = Get("min-norm-sum", 4)
		require.NoError(t, err)
		res, err = optimize.Solve(m.Problem, "sgd", optimize.StopTol{},
			optimize.Options{LearningRate: 0.4}, 0, nil)
		require.NoError(t, err)
		assert.True(t, res.Success, res.Message)
		assert.InDeltaSlice(t, m.XStar.DataP, res.X.DataP, 1.e-2)
		assert.InDelta(t, 1., sum(res.X), 1.e-10)
	}
}

func TestConstraintBuilders(t *testing.T) {
	// FixVariables pins coordinates through the null space machinery
	{
		lc, err := FixVariables(4, []int{0, 2}, []float64{1.5, -0.5})
		require.NoError(t, err)
		assert.Equal(t, 2, lc.Rank())
		assert.Equal(t, 2, lc.ReducedDim())
		x := lc.Expand(utils.NewVector(2, []float64{0.3, -0.9}))
		assert.InDelta(t, 1.5, x.AtVec(0), 1.e-12)
		assert.InDelta(t, -0.5, x.AtVec(2), 1.e-12)
	}
	// FixSum holds a weighted total
	{
		lc, err := FixSum(utils.NewVector(3, []float64{1, 2, 1}), 4)
		require.NoError(t, err)
		assert.Equal(t, 1, lc.Rank())
		x := lc.Expand(utils.NewVector(2, []float64{0.7, -1.3}))
		assert.InDelta(t, 4., x.AtVec(0)+2*x.AtVec(1)+x.AtVec(2), 1.e-12)
	}
	// Contradictory pins are rejected
	{
		_, err := FixVariables(3, []int{1, 1}, []float64{1, 2})
		assert.Error(t, err)
	}
}

func sum(x utils.Vector) (s float64) {
	for _, v := range x.DataP {
		s += v
	}
	return
}
