package model_problems

import (
	"fmt"
	"sort"

	"github.com/notargets/gopt/optimize"
	"github.com/notargets/gopt/utils"
)

// Model bundles a ready to solve problem with its known solution for
// benchmarking and verification. XStar is nil when the minimizer is not
// unique or not known in closed form.
type Model struct {
	Name    string
	Problem *optimize.Problem
	XStar   utils.Vector
	FStar   float64
}

type builder func(n int) (Model, error)

var catalog = map[string]builder{
	"rosenbrock": func(n int) (Model, error) {
		if n < 2 {
			n = 2
		}
		return Model{
			Name: "rosenbrock",
			Problem: &optimize.Problem{
				Objective: NewRosenbrock(n),
				Residual:  NewRosenbrockResidual(n),
				X0:        RosenbrockStart(n),
			},
			XStar: utils.NewVectorConstant(n, 1),
			FStar: 0,
		}, nil
	},
	"quadratic": func(n int) (Model, error) {
		if n < 1 {
			n = 1
		}
		var (
			d = utils.NewVector(n)
			c = utils.NewVectorConstant(n, 1)
		)
		for i := range d.DataP {
			d.DataP[i] = float64(i + 1)
		}
		obj := NewQuadratic(d, c)
		xStar, fStar := obj.Minimum()
		return Model{
			Name: "quadratic",
			Problem: &optimize.Problem{
				Objective: obj,
				X0:        utils.NewVectorConstant(n, 3),
			},
			XStar: xStar,
			FStar: fStar,
		}, nil
	},
	"hilbert": func(n int) (Model, error) {
		if n < 2 {
			n = 2
		}
		res := NewHilbertResidual(n)
		return Model{
			Name: "hilbert",
			Problem: &optimize.Problem{
				Residual: res,
				X0:       utils.NewVector(n),
			},
			XStar: utils.NewVectorConstant(n, 1),
			FStar: 0,
		}, nil
	},
	"powell": func(n int) (Model, error) {
		return Model{
			Name: "powell",
			Problem: &optimize.Problem{
				Residual: NewPowellSingular(),
				X0:       PowellStart(),
			},
			XStar: utils.NewVector(4),
			FStar: 0,
		}, nil
	},
	"min-norm-sum": func(n int) (Model, error) {
		if n < 2 {
			n = 2
		}
		prob, xStar, fStar := NewMinNormSum(n, 1)
		return Model{
			Name:    "min-norm-sum",
			Problem: prob,
			XStar:   xStar,
			FStar:   fStar,
		}, nil
	},
}

// Get builds the named model at dimension n. Models with a fixed dimension,
// like powell, ignore n.
func Get(name string, n int) (Model, error) {
	b, ok := catalog[name]
	if !ok {
		return Model{}, fmt.Errorf("model_problems: unknown model %q", name)
	}
	return b(n)
}

// Names lists the available models in sorted order.
func Names() (names []string) {
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
