package model_problems

import (
	"github.com/notargets/gopt/utils"
)

/*
Quadratic is the separable convex quadratic

	f(x) = 0.5*sum_i d[i]*x[i]^2 - c[i]*x[i]

with d[i] > 0, minimized at x*[i] = c[i]/d[i]. Spread the d[i] to exercise
conditioning, keep them equal for the textbook sphere.
*/
type Quadratic struct {
	D, C utils.Vector
}

func NewQuadratic(d, c utils.Vector) *Quadratic {
	if d.Len() != c.Len() {
		panic("Quadratic curvature and target lengths differ")
	}
	for _, v := range d.DataP {
		if v <= 0 {
			panic("Quadratic curvature must be positive")
		}
	}
	return &Quadratic{D: d, C: c}
}

func (p *Quadratic) Value(x utils.Vector) (f float64) {
	for i, xi := range x.DataP {
		f += 0.5*p.D.DataP[i]*xi*xi - p.C.DataP[i]*xi
	}
	return
}

func (p *Quadratic) Gradient(x utils.Vector) (g utils.Vector) {
	g = utils.NewVector(x.Len())
	for i, xi := range x.DataP {
		g.DataP[i] = p.D.DataP[i]*xi - p.C.DataP[i]
	}
	return
}

func (p *Quadratic) Hessian(x utils.Vector) utils.Matrix {
	return utils.NewDiagMatrix(p.D.Len(), p.D.DataP)
}

// Minimum returns the analytic minimizer and minimum value.
func (p *Quadratic) Minimum() (xStar utils.Vector, fStar float64) {
	xStar = utils.NewVector(p.D.Len())
	for i := range xStar.DataP {
		xStar.DataP[i] = p.C.DataP[i] / p.D.DataP[i]
		fStar -= 0.5 * p.C.DataP[i] * p.C.DataP[i] / p.D.DataP[i]
	}
	return
}
