package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V     *mat.VecDense
	DataP []float64
}

func NewVector(n int, dataO ...[]float64) (R Vector) {
	var v *mat.VecDense
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			err := fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v\n", n, len(dataO[0]))
			panic(err)
		}
		v = mat.NewVecDense(n, dataO[0])
	} else {
		v = mat.NewVecDense(n, make([]float64, n))
	}
	R = Vector{
		v,
		v.RawVector().Data,
	}
	return
}

func NewVectorConstant(n int, val float64) (R Vector) {
	R = NewVector(n, ConstArray(n, val))
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }

func (v Vector) Set(i int, val float64) { v.V.SetVec(i, val) }

func (v Vector) String() string {
	return fmt.Sprintf("%v", mat.Formatted(v.V, mat.Squeeze()))
}

func (v Vector) Copy() (R Vector) { // Does not change receiver
	var (
		dataR = make([]float64, v.Len())
	)
	copy(dataR, v.DataP)
	R = NewVector(v.Len(), dataR)
	return
}

// Chainable (extended) methods
func (v Vector) Add(a Vector) Vector { // Changes receiver
	var (
		data  = v.DataP
		dataA = a.DataP
	)
	for i, val := range dataA {
		data[i] += val
	}
	return v
}

func (v Vector) Subtract(a Vector) Vector { // Changes receiver
	var (
		data  = v.DataP
		dataA = a.DataP
	)
	for i, val := range dataA {
		data[i] -= val
	}
	return v
}

func (v Vector) AddScalar(a float64) Vector { // Changes receiver
	var (
		data = v.DataP
	)
	for i := range data {
		data[i] += a
	}
	return v
}

func (v Vector) Scale(a float64) Vector { // Changes receiver
	var (
		data = v.DataP
	)
	for i := range data {
		data[i] *= a
	}
	return v
}

func (v Vector) Apply(f func(float64) float64) Vector { // Changes receiver
	var (
		data = v.DataP
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) POW(p int) Vector { // Changes receiver
	var (
		data = v.DataP
	)
	for i, val := range data {
		data[i] = POW(val, p)
	}
	return v
}

func (v Vector) ElMul(a Vector) Vector { // Changes receiver
	var (
		data  = v.DataP
		dataA = a.DataP
	)
	for i, val := range dataA {
		data[i] *= val
	}
	return v
}

func (v Vector) ElDiv(a Vector) Vector { // Changes receiver
	var (
		data  = v.DataP
		dataA = a.DataP
	)
	for i, val := range dataA {
		data[i] /= val
	}
	return v
}

// Non chainable methods
func (v Vector) Dot(a Vector) (dot float64) {
	var (
		data  = v.DataP
		dataA = a.DataP
	)
	for i, val := range data {
		dot += val * dataA[i]
	}
	return
}

func (v Vector) Norm2() (nrm float64) {
	var (
		data = v.DataP
		sum  float64
	)
	for _, val := range data {
		sum += val * val
	}
	nrm = math.Sqrt(sum)
	return
}

func (v Vector) NormInf() (nrm float64) {
	var (
		data = v.DataP
	)
	for _, val := range data {
		if a := math.Abs(val); a > nrm {
			nrm = a
		}
	}
	return
}

func (v Vector) Min() (min float64) {
	var (
		data = v.DataP
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.DataP
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (v Vector) Outer(a Vector) (R Matrix) {
	var (
		nr, nc = v.Len(), a.Len()
		dataV  = v.DataP
		dataA  = a.DataP
	)
	R = NewMatrix(nr, nc)
	for i, val := range dataV {
		for j, valA := range dataA {
			R.DataP[i*nc+j] = val * valA
		}
	}
	return
}
