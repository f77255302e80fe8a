package model_problems

import (
	"github.com/notargets/gopt/optimize"
	"github.com/notargets/gopt/utils"
)

/*
FixVariables builds the equality constraint x[idx[k]] = vals[k]. The rows
are unit vectors assembled sparsely, duplicated indices are tolerated and
absorbed by the rank analysis when the values agree.
*/
func FixVariables(n int, idx []int, vals []float64) (*optimize.LinearConstraint, error) {
	if len(idx) != len(vals) {
		panic("FixVariables index and value lengths differ")
	}
	var (
		a = utils.NewDOK(len(idx), n)
		b = utils.NewVector(len(idx))
	)
	for k, i := range idx {
		a.Set(k, i, 1)
		b.DataP[k] = vals[k]
	}
	return optimize.NewLinearConstraint(a.ToCSR().M, b)
}

// FixSum builds the single row constraint sum_i w[i]*x[i] = total.
func FixSum(w utils.Vector, total float64) (*optimize.LinearConstraint, error) {
	var (
		n = w.Len()
		a = utils.NewDOK(1, n)
	)
	for i, wi := range w.DataP {
		if wi != 0 {
			a.Set(0, i, wi)
		}
	}
	return optimize.NewLinearConstraint(a.ToCSR().M, utils.NewVector(1, []float64{total}))
}

/*
NewMinNormSum builds the constrained quadratic

	min |x|^2  subject to  sum_i x[i] = total

whose unique solution is x*[i] = total/n with value total^2/n. It is the
smallest problem that exercises the null space reduction end to end. The
problem carries both faces, the scalar objective |x|^2 and the identity
residual r(x) = x with cost |x|^2/2, so every method class can run it.
*/
func NewMinNormSum(n int, total float64) (prob *optimize.Problem, xStar utils.Vector, fStar float64) {
	var (
		obj = NewQuadratic(utils.NewVectorConstant(n, 2), utils.NewVector(n))
	)
	lc, err := FixSum(utils.NewVectorConstant(n, 1), total)
	if err != nil {
		panic(err)
	}
	xStar = utils.NewVectorConstant(n, total/float64(n))
	fStar = total * total / float64(n)
	x0 := utils.NewVector(n)
	x0.DataP[0] = total
	prob = &optimize.Problem{
		Objective:  obj,
		Residual:   NewShiftResidual(utils.NewVector(n)),
		X0:         x0,
		Constraint: lc,
	}
	return
}
