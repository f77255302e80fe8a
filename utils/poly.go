package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PolyRoots returns the roots of the polynomial with coefficients c ordered
// from the highest power down to the constant term, so that
// c[0]*x^(n-1) + c[1]*x^(n-2) + ... + c[n-1].
// Leading zero coefficients are stripped, then the roots are computed as the
// eigenvalues of the companion matrix.
func PolyRoots(c []float64) (roots []complex128, err error) {
	var (
		lead int
	)
	for lead < len(c) && c[lead] == 0 {
		lead++
	}
	c = c[lead:]
	n := len(c) - 1 // polynomial degree
	switch {
	case n < 1:
		return
	case n == 1:
		roots = []complex128{complex(-c[1]/c[0], 0)}
		return
	}
	A := NewMatrix(n, n)
	for j := 0; j < n; j++ {
		A.DataP[j] = -c[j+1] / c[0]
	}
	for i := 1; i < n; i++ {
		A.DataP[i*n+i-1] = 1
	}
	var eig mat.Eigen
	if ok := eig.Factorize(A.M, mat.EigenNone); !ok {
		err = fmt.Errorf("eigen decomposition of companion matrix failed")
		return
	}
	roots = eig.Values(nil)
	return
}

// RealRoots extracts the real roots from a root set. LAPACK reports the
// eigenvalues of a real matrix with an imaginary part of exactly zero when
// they are real, so the filter is exact.
func RealRoots(roots []complex128) (r []float64) {
	for _, z := range roots {
		if imag(z) == 0 {
			r = append(r, real(z))
		}
	}
	return
}
