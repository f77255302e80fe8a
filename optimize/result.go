package optimize

import "github.com/notargets/gopt/utils"

// Result reports the outcome of a solve in full coordinates.
type Result struct {
	// X is the final iterate.
	X utils.Vector

	// Fun is the final objective value. For least squares methods it is
	// the cost 0.5*f.f.
	Fun float64

	// Residual is the final residual vector. Least squares methods only.
	Residual utils.Vector

	// Grad is the gradient at X, in the coordinates the driver worked in.
	Grad utils.Vector

	// Optimality is the infinity norm of Grad at exit.
	Optimality float64

	Success bool
	Status  Status
	Message string

	NIter int
	NFev  int
	NJev  int
	NGev  int
	NHev  int

	// AllCost traces the objective value per iteration, AllTR the trust
	// region radius per subproblem solve.
	AllCost []float64
	AllTR   []float64
}
