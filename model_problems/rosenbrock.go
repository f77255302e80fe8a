package model_problems

import (
	"github.com/notargets/gopt/utils"
)

/*
Rosenbrock is the generalized Rosenbrock valley

	f(x) = sum_i 100*(x[i+1]-x[i]^2)^2 + (1-x[i])^2

with minimum 0 at (1,...,1). The curved valley forces many small trust
region steps, which makes it the standard stress test for step quality.
*/
type Rosenbrock struct {
	N int
}

func NewRosenbrock(n int) *Rosenbrock {
	if n < 2 {
		panic("Rosenbrock needs at least two variables")
	}
	return &Rosenbrock{N: n}
}

func (p *Rosenbrock) Value(x utils.Vector) (f float64) {
	for i := 0; i < p.N-1; i++ {
		var (
			t = x.DataP[i+1] - x.DataP[i]*x.DataP[i]
			u = 1 - x.DataP[i]
		)
		f += 100*t*t + u*u
	}
	return
}

func (p *Rosenbrock) Gradient(x utils.Vector) (g utils.Vector) {
	g = utils.NewVector(p.N)
	for i := 0; i < p.N-1; i++ {
		var (
			xi = x.DataP[i]
			t  = x.DataP[i+1] - xi*xi
		)
		g.DataP[i] += -400*xi*t - 2*(1-xi)
		g.DataP[i+1] += 200 * t
	}
	return
}

func (p *Rosenbrock) Hessian(x utils.Vector) (h utils.Matrix) {
	var (
		n = p.N
	)
	h = utils.NewMatrix(n, n)
	for i := 0; i < n-1; i++ {
		var (
			xi = x.DataP[i]
			xn = x.DataP[i+1]
		)
		h.DataP[i*n+i] += 1200*xi*xi - 400*xn + 2
		h.DataP[i*n+i+1] += -400 * xi
		h.DataP[(i+1)*n+i] += -400 * xi
		h.DataP[(i+1)*n+(i+1)] += 200
	}
	return
}

/*
RosenbrockResidual is the least squares form with 2*(N-1) residuals

	r[2i]   = 10*(x[i+1]-x[i]^2)
	r[2i+1] = 1-x[i]

Note 0.5*|r|^2 is half the scalar Rosenbrock value.
*/
type RosenbrockResidual struct {
	N int
}

func NewRosenbrockResidual(n int) *RosenbrockResidual {
	if n < 2 {
		panic("Rosenbrock needs at least two variables")
	}
	return &RosenbrockResidual{N: n}
}

func (p *RosenbrockResidual) Compute(x utils.Vector) (r utils.Vector) {
	r = utils.NewVector(2 * (p.N - 1))
	for i := 0; i < p.N-1; i++ {
		r.DataP[2*i] = 10 * (x.DataP[i+1] - x.DataP[i]*x.DataP[i])
		r.DataP[2*i+1] = 1 - x.DataP[i]
	}
	return
}

func (p *RosenbrockResidual) Jacobian(x utils.Vector) (jac utils.Matrix) {
	var (
		n = p.N
	)
	jac = utils.NewMatrix(2*(n-1), n)
	for i := 0; i < n-1; i++ {
		jac.DataP[(2*i)*n+i] = -20 * x.DataP[i]
		jac.DataP[(2*i)*n+i+1] = 10
		jac.DataP[(2*i+1)*n+i] = -1
	}
	return
}

// RosenbrockStart is the classic starting point (-1.2, 1, -1.2, 1, ...).
func RosenbrockStart(n int) (x0 utils.Vector) {
	x0 = utils.NewVector(n)
	for i := range x0.DataP {
		if i%2 == 0 {
			x0.DataP[i] = -1.2
		} else {
			x0.DataP[i] = 1
		}
	}
	return
}
