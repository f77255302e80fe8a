package optimize

import (
	"testing"

	"github.com/notargets/gopt/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBFGSUpdate(t *testing.T) {
	// The updated approximation satisfies the secant condition H s = y
	{
		H := utils.NewIdentity(2)
		s := utils.NewVector(2, []float64{1, 0})
		y := utils.NewVector(2, []float64{2, 0})
		bfgsUpdate(H, s, y)
		assert.InDeltaSlice(t, y.DataP, H.MulVec(s).DataP, 1.e-14)
	}
	// The update is skipped when the curvature condition fails
	{
		H := utils.NewIdentity(2)
		s := utils.NewVector(2, []float64{1, 0})
		y := utils.NewVector(2, []float64{-1, 0})
		bfgsUpdate(H, s, y)
		assert.Equal(t, utils.NewIdentity(2).DataP, H.DataP)
	}
}

func TestFminTRQuadratic(t *testing.T) {
	// Both exact Hessian subproblems land in a single interior Newton step
	for _, method := range []string{"dogleg", "subspace"} {
		prob := &Problem{
			Objective: quadObj{d: []float64{1, 2}, c: []float64{1, 1}},
			X0:        utils.NewVector(2, []float64{4, -2}),
		}
		res, err := Solve(prob, method, StopTol{}, Options{InitialTrustRadius: 10}, 0, nil)
		require.NoError(t, err, method)
		assert.True(t, res.Success, method)
		assert.Equal(t, GTolConverged, res.Status, method)
		assert.Equal(t, 1, res.NIter, method)
		assert.InDeltaSlice(t, []float64{1, 0.5}, res.X.DataP, 1.e-10, method)
		assert.InDelta(t, -0.75, res.Fun, 1.e-12, method)
	}
}

func TestFminTRBFGS(t *testing.T) {
	// The quasi-Newton variants converge without ever calling Hessian
	for _, method := range []string{"dogleg-bfgs", "subspace-bfgs"} {
		prob := &Problem{
			Objective: quadObj{d: []float64{1, 2}, c: []float64{1, 1}},
			X0:        utils.NewVector(2, []float64{3, 3}),
		}
		res, err := Solve(prob, method, StopTol{}, Options{InitialTrustRadius: 1}, 0, nil)
		require.NoError(t, err, method)
		assert.True(t, res.Success, method)
		assert.InDeltaSlice(t, []float64{1, 0.5}, res.X.DataP, 1.e-2, method)
		assert.Equal(t, 0, res.NHev, method)
	}
}

func TestFminTRRadiusGrowth(t *testing.T) {
	// From a tiny initial radius the boundary steps double the region up
	// to the cap while the model agrees
	prob := &Problem{
		Objective: quadObj{d: []float64{1, 1}, c: []float64{0, 0}},
		X0:        utils.NewVector(2, []float64{4, 3}),
	}
	res, err := Solve(prob, "dogleg", StopTol{}, Options{
		InitialTrustRadius: 1.e-3,
		MaxTrustRadius:     0.5,
	}, 0, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.InDeltaSlice(t, []float64{0, 0}, res.X.DataP, 1.e-6)
	require.Greater(t, len(res.AllTR), 10)
	assert.Equal(t, 1.e-3, res.AllTR[0])
	for i, tr := range res.AllTR {
		assert.LessOrEqual(t, tr, 0.5, "trace index %d", i)
		assert.Greater(t, tr, 0., "trace index %d", i)
	}
	// The walk in reaches the cap before the interior Newton finish.
	assert.Equal(t, 0.5, res.AllTR[len(res.AllTR)-1])
}

func TestFminTRUnsupported(t *testing.T) {
	prob := &Problem{
		Objective: quadObj{d: []float64{1}, c: []float64{0}},
		X0:        utils.NewVector(1, []float64{1}),
	}
	_, err := fmintr(prob, "conjugate", StopTol{}, Options{}, 0, nil)
	assert.Error(t, err)
}
