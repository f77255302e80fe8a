package optimize

// StopTol gathers the termination tolerances and evaluation budgets shared
// by every driver. The zero value of each field selects the default noted
// below; set a tolerance negative to disable that test.
type StopTol struct {
	FTol float64 // relative reduction of the objective, default 1e-6
	XTol float64 // relative step size, default 1e-6
	GTol float64 // infinity norm of the gradient, default 1e-6

	MaxIter      int // default 100 * dim
	MaxFunEvals  int // default MaxIter
	MaxJacEvals  int // default MaxFunEvals
	MaxGradEvals int // default MaxFunEvals
	MaxHessEvals int // default MaxFunEvals
}

func (s StopTol) withDefaults(n int) StopTol {
	if s.FTol == 0 {
		s.FTol = 1.e-6
	}
	if s.XTol == 0 {
		s.XTol = 1.e-6
	}
	if s.GTol == 0 {
		s.GTol = 1.e-6
	}
	if s.MaxIter == 0 {
		s.MaxIter = 100 * n
	}
	if s.MaxFunEvals == 0 {
		s.MaxFunEvals = s.MaxIter
	}
	if s.MaxJacEvals == 0 {
		s.MaxJacEvals = s.MaxFunEvals
	}
	if s.MaxGradEvals == 0 {
		s.MaxGradEvals = s.MaxFunEvals
	}
	if s.MaxHessEvals == 0 {
		s.MaxHessEvals = s.MaxFunEvals
	}
	return s
}

// Options carries driver tuning knobs beyond the stopping tests. Zero values
// select the defaults noted below.
type Options struct {
	// InitialTrustRadius defaults to the norm of the scaled starting
	// point, or 1.0 when that norm is zero.
	InitialTrustRadius float64

	// MaxTrustRadius caps the radius. When zero it is set to
	// MaxTrustRatio times the initial radius.
	MaxTrustRadius float64

	// MaxTrustRatio sizes the radius cap relative to the initial radius
	// when MaxTrustRadius is left zero. Default 1000.
	MaxTrustRatio float64

	// MinTrustRadius floors the radius after a shrink. Default 0.
	MinTrustRadius float64

	// Radius update policy: grow by IncreaseRatio when the model agrees
	// with the function (ratio above IncreaseThreshold) and the step hit
	// the boundary, shrink to DecreaseRatio times the step norm when the
	// ratio falls below DecreaseThreshold.
	TRIncreaseThreshold float64 // default 0.75
	TRDecreaseThreshold float64 // default 0.25
	TRIncreaseRatio     float64 // default 2
	TRDecreaseRatio     float64 // default 0.25

	// GeodesicAccelRatio enables a second order correction of the least
	// squares step when positive. The correction is solved on a radius of
	// GeodesicAccelRatio times the step norm. Default 0 (off).
	GeodesicAccelRatio float64

	// GeodesicFDStep is the finite difference fraction used to probe the
	// directional curvature for the acceleration term. Default 1e-3.
	GeodesicFDStep float64

	// MaxStepRetries bounds how many shrink and retry attempts a single
	// outer iteration may spend before declaring the solve stalled.
	// Default 50.
	MaxStepRetries int

	// LearningRate is the sgd step size. The driver takes it literally,
	// so a zero rate leaves the iterate in place; Solve substitutes 1e-2
	// for stochastic methods when the caller leaves it unset. DecayRate
	// shrinks it as rate/(1+decay*iteration), default 0 (constant).
	LearningRate float64
	DecayRate    float64
}

func (o Options) withDefaults() Options {
	if o.TRIncreaseThreshold == 0 {
		o.TRIncreaseThreshold = 0.75
	}
	if o.TRDecreaseThreshold == 0 {
		o.TRDecreaseThreshold = 0.25
	}
	if o.TRIncreaseRatio == 0 {
		o.TRIncreaseRatio = 2
	}
	if o.TRDecreaseRatio == 0 {
		o.TRDecreaseRatio = 0.25
	}
	if o.MaxTrustRatio == 0 {
		o.MaxTrustRatio = 1000
	}
	if o.GeodesicFDStep == 0 {
		o.GeodesicFDStep = 1.e-3
	}
	if o.MaxStepRetries == 0 {
		o.MaxStepRetries = 50
	}
	return o
}
