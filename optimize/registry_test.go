package optimize

import (
	"errors"
	"sort"
	"testing"

	"github.com/notargets/gopt/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	// Bundled methods are present and Names is sorted
	{
		names := Names()
		assert.True(t, sort.StringsAreSorted(names))
		for _, want := range []string{"dogleg", "dogleg-bfgs", "lsq-exact", "sgd", "subspace", "subspace-bfgs"} {
			assert.Contains(t, names, want)
		}
	}
	// Lookup resolves capabilities
	{
		m, err := Lookup("lsq-exact")
		require.NoError(t, err)
		assert.False(t, m.Scalar)
		assert.True(t, m.EqualityConstraints)
		m, err = Lookup("dogleg")
		require.NoError(t, err)
		assert.True(t, m.Scalar)
		assert.True(t, m.Hessian)
		m, err = Lookup("dogleg-bfgs")
		require.NoError(t, err)
		assert.False(t, m.Hessian)
		m, err = Lookup("sgd")
		require.NoError(t, err)
		assert.True(t, m.Stochastic)
	}
	// Unknown name
	{
		_, err := Lookup("levenberg")
		assert.True(t, errors.Is(err, ErrUnknownMethod))
	}
	// Registration validation
	{
		assert.Equal(t, ErrEmptyName, Register(Method{Driver: sgd}))
		assert.Equal(t, ErrNilDriver, Register(Method{Name: "null"}))
		assert.True(t, errors.Is(Register(Method{Name: "dogleg", Driver: fmintr}), ErrDuplicateMethod))
	}
	// Roundtrip for an externally registered method
	{
		driver := func(prob *Problem, method string, stop StopTol, opts Options,
			verbose int, cb Callback) (*Result, error) {
			return &Result{X: prob.X0, Message: "noop driver"}, nil
		}
		if err := Register(Method{Name: "noop", Scalar: true, Driver: driver}); err != nil && !errors.Is(err, ErrDuplicateMethod) {
			t.Fatal(err)
		}
		m, err := Lookup("noop")
		require.NoError(t, err)
		res, err := m.Driver(&Problem{X0: utils.NewVector(1)}, "noop", StopTol{}, Options{}, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "noop driver", res.Message)
	}
}
