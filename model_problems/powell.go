package model_problems

import (
	"math"

	"github.com/notargets/gopt/utils"
)

/*
PowellSingular is Powell's singular function in four variables

	r1 = x1 + 10*x2
	r2 = sqrt(5)*(x3 - x4)
	r3 = (x2 - 2*x3)^2
	r4 = sqrt(10)*(x1 - x4)^2

with minimum 0 at the origin. The Jacobian is rank 2 at the solution, so
methods that assume a full rank Jacobian slow to a crawl while the singular
value decomposition based step keeps converging.
*/
type PowellSingular struct{}

func NewPowellSingular() *PowellSingular { return &PowellSingular{} }

func (p *PowellSingular) Compute(x utils.Vector) (r utils.Vector) {
	var (
		x1, x2, x3, x4 = x.DataP[0], x.DataP[1], x.DataP[2], x.DataP[3]
	)
	r = utils.NewVector(4)
	r.DataP[0] = x1 + 10*x2
	r.DataP[1] = math.Sqrt(5) * (x3 - x4)
	r.DataP[2] = (x2 - 2*x3) * (x2 - 2*x3)
	r.DataP[3] = math.Sqrt(10) * (x1 - x4) * (x1 - x4)
	return
}

func (p *PowellSingular) Jacobian(x utils.Vector) (jac utils.Matrix) {
	var (
		x1, x2, x3, x4 = x.DataP[0], x.DataP[1], x.DataP[2], x.DataP[3]
	)
	jac = utils.NewMatrix(4, 4)
	jac.DataP[0], jac.DataP[1] = 1, 10
	jac.DataP[6], jac.DataP[7] = math.Sqrt(5), -math.Sqrt(5)
	jac.DataP[9], jac.DataP[10] = 2*(x2-2*x3), -4*(x2-2*x3)
	jac.DataP[12], jac.DataP[15] = 2*math.Sqrt(10)*(x1-x4), -2*math.Sqrt(10)*(x1-x4)
	return
}

// PowellStart is the standard starting point (3, -1, 0, 1).
func PowellStart() utils.Vector {
	return utils.NewVector(4, []float64{3, -1, 0, 1})
}
