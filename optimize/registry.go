package optimize

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyName is returned when a method registers without a name.
	ErrEmptyName = errors.New("optimize(registry): empty method name")
	// ErrNilDriver is returned when a method registers without a driver.
	ErrNilDriver = errors.New("optimize(registry): nil driver")
	// ErrDuplicateMethod indicates an attempt to re-register a name.
	ErrDuplicateMethod = errors.New("optimize(registry): method already registered")
	// ErrUnknownMethod is returned by Lookup for unregistered names.
	ErrUnknownMethod = errors.New("optimize(registry): unknown method")
)

// DriverFunc runs a full minimization. The problem handed to a driver is
// already unconstrained: Solve reduces constrained problems onto the null
// space coordinates before dispatch.
type DriverFunc func(prob *Problem, method string, stop StopTol, opts Options,
	verbose int, cb Callback) (*Result, error)

// Method describes a registered optimizer and its capabilities. The flags
// are consulted by Solve to reject incompatible problems before any
// evaluation happens; the registry itself performs no validation beyond
// name and driver presence.
type Method struct {
	Name string

	// Scalar methods read Problem.Objective, non-scalar (least squares)
	// methods read Problem.Residual.
	Scalar bool

	// EqualityConstraints marks drivers that tolerate running in reduced
	// coordinates under a linear equality constraint.
	EqualityConstraints bool

	// InequalityConstraints is reserved; no bundled driver supports them.
	InequalityConstraints bool

	// Stochastic marks drivers without a guaranteed descent property.
	Stochastic bool

	// Hessian marks scalar drivers that require an exact second
	// derivative (a TwiceDifferentiable objective).
	Hessian bool

	Driver DriverFunc
}

// methods is keyed by Method.Name. Registration happens at init time; the
// map is read-only afterwards, so no locking is done.
var methods = make(map[string]Method)

// Register adds a method to the registry.
func Register(m Method) error {
	if m.Name == "" {
		return ErrEmptyName
	}
	if m.Driver == nil {
		return ErrNilDriver
	}
	if _, ok := methods[m.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMethod, m.Name)
	}
	methods[m.Name] = m
	return nil
}

// MustRegister is Register for init time use.
func MustRegister(m Method) {
	if err := Register(m); err != nil {
		panic(err)
	}
}

// Lookup resolves a method by name.
func Lookup(name string) (Method, error) {
	m, ok := methods[name]
	if !ok {
		return Method{}, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
	return m, nil
}

// Names lists the registered method names in sorted order.
func Names() (names []string) {
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func init() {
	MustRegister(Method{
		Name:                "lsq-exact",
		EqualityConstraints: true,
		Driver:              lsqtr,
	})
	MustRegister(Method{
		Name:                "dogleg",
		Scalar:              true,
		EqualityConstraints: true,
		Hessian:             true,
		Driver:              fmintr,
	})
	MustRegister(Method{
		Name:                "subspace",
		Scalar:              true,
		EqualityConstraints: true,
		Hessian:             true,
		Driver:              fmintr,
	})
	MustRegister(Method{
		Name:                "dogleg-bfgs",
		Scalar:              true,
		EqualityConstraints: true,
		Driver:              fmintr,
	})
	MustRegister(Method{
		Name:                "subspace-bfgs",
		Scalar:              true,
		EqualityConstraints: true,
		Driver:              fmintr,
	})
	MustRegister(Method{
		Name:                "sgd",
		Scalar:              true,
		EqualityConstraints: true,
		Stochastic:          true,
		Driver:              sgd,
	})
}
