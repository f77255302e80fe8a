package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptimizationParameters(t *testing.T) {
	// Full document round trip, including the integer keyed pin map
	{
		var (
			doc = `
Title: Valley benchmark
Model: rosenbrock
Dimension: 8
Method: lsq-exact
FTol: 1.0e-10
GTol: 1.0e-8
MaxIterations: 500
InitialTrustRadius: 0.5
MaxTrustRatio: 100
GeodesicAcceleration: 0.5
X0: [-1.2, 1, -1.2, 1, -1.2, 1, -1.2, 1]
XScale: [1, 1, 1, 1, 1, 1, 1, 0.1]
FixVariables:
  0: 1.0
  3: -0.5
FixSum: 2.0
Verbose: 2
`
			op OptimizationParameters
		)
		require.NoError(t, op.Parse([]byte(doc)))
		assert.Equal(t, "Valley benchmark", op.Title)
		assert.Equal(t, "rosenbrock", op.Model)
		assert.Equal(t, 8, op.Dimension)
		assert.Equal(t, "lsq-exact", op.Method)
		assert.Equal(t, 1.0e-10, op.FTol)
		assert.Equal(t, 1.0e-8, op.GTol)
		assert.Equal(t, 0., op.XTol)
		assert.Equal(t, 500, op.MaxIterations)
		assert.Equal(t, 0.5, op.InitialTrustRadius)
		assert.Equal(t, 100., op.MaxTrustRatio)
		assert.Equal(t, 0.5, op.GeodesicAcceleration)
		assert.Len(t, op.X0, 8)
		assert.Equal(t, -1.2, op.X0[0])
		assert.Len(t, op.XScale, 8)
		assert.Equal(t, 0.1, op.XScale[7])
		assert.Equal(t, map[int]float64{0: 1.0, 3: -0.5}, op.FixVariables)
		require.NotNil(t, op.FixSum)
		assert.Equal(t, 2.0, *op.FixSum)
		assert.Equal(t, 2, op.Verbose)
		op.Print()
	}
	// Bad document
	{
		var op OptimizationParameters
		assert.Error(t, op.Parse([]byte("Method: [unclosed")))
	}
	// Absent optional fields stay at their zero values
	{
		var op OptimizationParameters
		require.NoError(t, op.Parse([]byte("Model: quadratic\n")))
		assert.Nil(t, op.FixSum)
		assert.Empty(t, op.FixVariables)
		assert.False(t, op.JacScale)
	}
}
