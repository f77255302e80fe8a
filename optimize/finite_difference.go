package optimize

import (
	"math"

	"github.com/notargets/gopt/utils"
)

var (
	fdGradStep = math.Cbrt(utils.Eps)
	fdHessStep = math.Sqrt(math.Sqrt(utils.Eps))
)

// fdStep is the central difference step for component value x. The step
// grows with |x| so that (x+h)-x stays representable.
func fdStep(eps, x float64) float64 {
	return eps * math.Max(1, math.Abs(x))
}

// NumericObjective adapts a plain scalar function to the Differentiable and
// TwiceDifferentiable interfaces using central differences. Each Gradient
// call costs 2n evaluations and each Hessian call costs 2n*n+1, so prefer
// analytic derivatives where they are available.
type NumericObjective struct {
	F func(x utils.Vector) float64
}

func (o NumericObjective) Value(x utils.Vector) float64 { return o.F(x) }

func (o NumericObjective) Gradient(x utils.Vector) (g utils.Vector) {
	var (
		n  = x.Len()
		xx = x.Copy()
	)
	g = utils.NewVector(n)
	for i := 0; i < n; i++ {
		var (
			xi = xx.DataP[i]
			h  = fdStep(fdGradStep, xi)
		)
		xx.DataP[i] = xi + h
		fp := o.F(xx)
		xx.DataP[i] = xi - h
		fm := o.F(xx)
		xx.DataP[i] = xi
		g.DataP[i] = (fp - fm) / (2 * h)
	}
	return
}

func (o NumericObjective) Hessian(x utils.Vector) (hess utils.Matrix) {
	var (
		n  = x.Len()
		xx = x.Copy()
		f0 = o.F(xx)
	)
	hess = utils.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		var (
			xi = xx.DataP[i]
			hi = fdStep(fdHessStep, xi)
		)
		xx.DataP[i] = xi + hi
		fp := o.F(xx)
		xx.DataP[i] = xi - hi
		fm := o.F(xx)
		xx.DataP[i] = xi
		hess.DataP[i*n+i] = (fp - 2*f0 + fm) / (hi * hi)
		for j := i + 1; j < n; j++ {
			var (
				xj = xx.DataP[j]
				hj = fdStep(fdHessStep, xj)
			)
			xx.DataP[i], xx.DataP[j] = xi+hi, xj+hj
			fpp := o.F(xx)
			xx.DataP[j] = xj - hj
			fpm := o.F(xx)
			xx.DataP[i] = xi - hi
			fmm := o.F(xx)
			xx.DataP[j] = xj + hj
			fmp := o.F(xx)
			xx.DataP[i], xx.DataP[j] = xi, xj
			d := (fpp - fpm - fmp + fmm) / (4 * hi * hj)
			hess.DataP[i*n+j] = d
			hess.DataP[j*n+i] = d
		}
	}
	return
}

// NumericResidual adapts a plain vector function to the VectorObjective
// interface, building the Jacobian column by column with central
// differences.
type NumericResidual struct {
	F func(x utils.Vector) utils.Vector
}

func (o NumericResidual) Compute(x utils.Vector) utils.Vector { return o.F(x) }

func (o NumericResidual) Jacobian(x utils.Vector) (jac utils.Matrix) {
	var (
		n  = x.Len()
		xx = x.Copy()
		m  = o.F(xx).Len()
	)
	jac = utils.NewMatrix(m, n)
	for i := 0; i < n; i++ {
		var (
			xi = xx.DataP[i]
			h  = fdStep(fdGradStep, xi)
		)
		xx.DataP[i] = xi + h
		fp := o.F(xx)
		xx.DataP[i] = xi - h
		fm := o.F(xx)
		xx.DataP[i] = xi
		for j := 0; j < m; j++ {
			jac.DataP[j*n+i] = (fp.DataP[j] - fm.DataP[j]) / (2 * h)
		}
	}
	return
}
