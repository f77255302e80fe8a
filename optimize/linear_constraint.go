package optimize

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/gopt/utils"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrConstraintInfeasible is returned when the right hand side is not
	// in the range of A, so no x satisfies A x = b.
	ErrConstraintInfeasible = errors.New("optimize(constraint): infeasible, right hand side not in the range of A")
	// ErrConstraintShape is returned for mismatched A and b dimensions.
	ErrConstraintShape = errors.New("optimize(constraint): dimension mismatch")
	// ErrConstraintFactorization is returned when the SVD of A fails.
	ErrConstraintFactorization = errors.New("optimize(constraint): factorization failed")
)

// LinearConstraint holds the null space factorization of the affine
// constraint A x = b. Any feasible x decomposes as x = XP + Z y with y free,
// so a constrained problem in n variables becomes an unconstrained one in
// n - rank(A) variables. Redundant and linearly dependent rows of A are
// absorbed by the rank cutoff.
type LinearConstraint struct {
	A  utils.Matrix // dense copy of the constraint matrix, m x n
	B  utils.Vector // right hand side, length m
	XP utils.Vector // a particular solution, minimum norm
	Z  utils.Matrix // orthonormal null space basis, n x (n-rank)

	rank int
}

// NewLinearConstraint factorizes A x = b via a full SVD. A may be any
// mat.Matrix implementation, sparse assemblies included.
func NewLinearConstraint(a mat.Matrix, b utils.Vector) (lc *LinearConstraint, err error) {
	var (
		A    = utils.DenseCopy(a)
		m, n = A.Dims()
	)
	if b.Len() != m {
		err = fmt.Errorf("%w: A is %dx%d, b has length %d", ErrConstraintShape, m, n, b.Len())
		return
	}
	var svd mat.SVD
	if ok := svd.Factorize(A.M, mat.SVDFull); !ok {
		err = fmt.Errorf("%w: SVD of %dx%d constraint matrix did not converge", ErrConstraintFactorization, m, n)
		return
	}
	var (
		s = svd.Values(nil)
		U = utils.NewMatrix(m, m)
		V = utils.NewMatrix(n, n)
	)
	svd.UTo(U.M)
	svd.VTo(V.M)

	// Numerical rank with the standard cutoff relative to the largest
	// singular value.
	var rank int
	if len(s) > 0 && s[0] > 0 {
		thresh := utils.Eps * float64(max(m, n)) * s[0]
		for _, sv := range s {
			if sv > thresh {
				rank++
			}
		}
	}

	// Minimum norm particular solution from the rank-truncated pseudo
	// inverse, XP = V_r diag(1/s_r) U_r^T b.
	xp := utils.NewVector(n)
	for i := 0; i < rank; i++ {
		var ub float64
		for row := 0; row < m; row++ {
			ub += U.DataP[row*m+i] * b.DataP[row]
		}
		c := ub / s[i]
		for row := 0; row < n; row++ {
			xp.DataP[row] += c * V.DataP[row*n+i]
		}
	}

	// Null space basis from the trailing right singular vectors. A full
	// column rank A pins every variable and Z stays empty.
	k := n - rank
	var Z utils.Matrix
	if k > 0 {
		Z = utils.NewMatrix(n, k)
		for i := 0; i < n; i++ {
			for j := 0; j < k; j++ {
				Z.DataP[i*k+j] = V.DataP[i*n+rank+j]
			}
		}
	}

	// Feasibility holds only when b lies in the range of A.
	res := A.MulVec(xp).Subtract(b).Norm2()
	feasTol := math.Sqrt(utils.Eps) * math.Max(1, b.Norm2())
	if res > feasTol {
		err = fmt.Errorf("%w: ||A xp - b|| = %.3e", ErrConstraintInfeasible, res)
		return
	}

	A.SetReadOnly("LinearConstraint.A")
	if k > 0 {
		Z.SetReadOnly("LinearConstraint.Z")
	}
	lc = &LinearConstraint{
		A:    A,
		B:    b.Copy(),
		XP:   xp,
		Z:    Z,
		rank: rank,
	}
	return
}

// Dim returns the number of full coordinates n.
func (lc *LinearConstraint) Dim() int { _, n := lc.A.Dims(); return n }

// ReducedDim returns the null space dimension n - rank(A).
func (lc *LinearConstraint) ReducedDim() int { return lc.Dim() - lc.rank }

// Rank returns the numerical rank of A.
func (lc *LinearConstraint) Rank() int { return lc.rank }

// Reduce maps a full iterate into null space coordinates, y = Z^T (x - XP).
func (lc *LinearConstraint) Reduce(x utils.Vector) (y utils.Vector) {
	dx := x.Copy().Subtract(lc.XP)
	y = lc.Z.Transpose().MulVec(dx)
	return
}

// Expand maps null space coordinates back to full space, x = XP + Z y.
func (lc *LinearConstraint) Expand(y utils.Vector) (x utils.Vector) {
	x = lc.Z.MulVec(y).Add(lc.XP)
	return
}

// Project returns the closest feasible point to x, Expand(Reduce(x)).
func (lc *LinearConstraint) Project(x utils.Vector) utils.Vector {
	return lc.Expand(lc.Reduce(x))
}

// Residual returns A x - b.
func (lc *LinearConstraint) Residual(x utils.Vector) utils.Vector {
	return lc.A.MulVec(x).Subtract(lc.B)
}
