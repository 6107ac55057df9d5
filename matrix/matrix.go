package matrix

import (
	"fmt"
	"math"

	filter "github.com/lingauss/go-lingauss"
	"gonum.org/v1/gonum/mat"
)

// symTol is the maximum allowed asymmetry |m[i,j] - m[j,i]| when
// converting a dense matrix into its symmetric view.
const symTol = 1e-10

// AsSymmetric converts m into a symmetric matrix.
// Off-diagonal pairs are averaged to cancel floating point drift
// accumulated by products of symmetric operands.
// It fails with error if m is not square or not symmetric within tolerance.
func AsSymmetric(m mat.Matrix) (*mat.SymDense, error) {
	rows, cols := m.Dims()
	if rows != cols {
		return nil, fmt.Errorf("%w: [%d x %d] matrix is not square", filter.ErrDimensionMismatch, rows, cols)
	}

	s := mat.NewSymDense(rows, nil)
	for i := 0; i < rows; i++ {
		for j := i; j < cols; j++ {
			if math.Abs(m.At(i, j)-m.At(j, i)) > symTol {
				return nil, fmt.Errorf("%w: matrix is not symmetric at [%d, %d]", filter.ErrInvalidCovariance, i, j)
			}
			s.SetSym(i, j, 0.5*(m.At(i, j)+m.At(j, i)))
		}
	}

	return s, nil
}

// InverseSym computes the inverse of s and returns it as a symmetric matrix.
// It fails with error if s is singular.
func InverseSym(s mat.Symmetric) (*mat.SymDense, error) {
	inv := &mat.Dense{}
	if err := inv.Inverse(s); err != nil {
		return nil, fmt.Errorf("%w: %v", filter.ErrSingularMatrix, err)
	}

	return AsSymmetric(inv)
}

// CopySym returns a copy of s.
func CopySym(s mat.Symmetric) *mat.SymDense {
	c := mat.NewSymDense(s.SymmetricDim(), nil)
	c.CopySym(s)

	return c
}
