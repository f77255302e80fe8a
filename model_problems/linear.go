package model_problems

import (
	"github.com/notargets/gopt/utils"
)

/*
LinearResidual is the linear least squares residual r(x) = A*x - b. The
Jacobian is constant, so a Gauss Newton step from any start lands on the
minimizer in one interior iteration once the trust region admits it.
*/
type LinearResidual struct {
	A utils.Matrix
	B utils.Vector
}

func NewLinearResidual(a utils.Matrix, b utils.Vector) *LinearResidual {
	var (
		m, _ = a.Dims()
	)
	if m != b.Len() {
		panic("LinearResidual row count and target length differ")
	}
	a.SetReadOnly("LinearResidual.A")
	return &LinearResidual{A: a, B: b}
}

func (p *LinearResidual) Compute(x utils.Vector) utils.Vector {
	return p.A.MulVec(x).Subtract(p.B)
}

func (p *LinearResidual) Jacobian(x utils.Vector) utils.Matrix {
	return p.A
}

// NewShiftResidual is the identity residual r(x) = x - c, the smallest
// problem where a single Gauss Newton step is exact.
func NewShiftResidual(c utils.Vector) *LinearResidual {
	return NewLinearResidual(utils.NewIdentity(c.Len()), c)
}

/*
NewHilbertResidual builds r(x) = H*x - H*1 with H the n by n Hilbert matrix
H[i][j] = 1/(1+i+j). The minimizer is exactly (1,...,1) and the conditioning
degrades rapidly with n, which exercises the singular value based step.
*/
func NewHilbertResidual(n int) *LinearResidual {
	var (
		a = utils.NewMatrix(n, n)
		b = utils.NewVector(n)
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.DataP[i*n+j] = 1 / float64(1+i+j)
			b.DataP[i] += a.DataP[i*n+j]
		}
	}
	return NewLinearResidual(a, b)
}
