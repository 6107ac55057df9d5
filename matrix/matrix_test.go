package matrix

import (
	"errors"
	"testing"

	filter "github.com/lingauss/go-lingauss"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestAsSymmetric(t *testing.T) {
	assert := assert.New(t)

	m := mat.NewDense(2, 2, []float64{4.0, 1.0, 1.0, 3.0})
	s, err := AsSymmetric(m)
	assert.NotNil(s)
	assert.NoError(err)
	assert.True(mat.EqualApprox(m, s, 1e-12))

	// not square
	s, err = AsSymmetric(mat.NewDense(2, 3, nil))
	assert.Nil(s)
	assert.True(errors.Is(err, filter.ErrDimensionMismatch))

	// not symmetric
	s, err = AsSymmetric(mat.NewDense(2, 2, []float64{1.0, 2.0, -2.0, 1.0}))
	assert.Nil(s)
	assert.Error(err)
}

func TestInverseSym(t *testing.T) {
	assert := assert.New(t)

	s := mat.NewSymDense(2, []float64{2.0, 0.0, 0.0, 4.0})
	inv, err := InverseSym(s)
	assert.NotNil(inv)
	assert.NoError(err)

	expected := mat.NewSymDense(2, []float64{0.5, 0.0, 0.0, 0.25})
	assert.True(mat.EqualApprox(expected, inv, 1e-12))

	// singular input
	inv, err = InverseSym(mat.NewSymDense(2, nil))
	assert.Nil(inv)
	assert.True(errors.Is(err, filter.ErrSingularMatrix))
}

func TestCopySym(t *testing.T) {
	assert := assert.New(t)

	s := mat.NewSymDense(2, []float64{1.0, 0.5, 0.5, 2.0})
	c := CopySym(s)
	assert.True(mat.EqualApprox(s, c, 0))

	// mutating the copy must not touch the source
	c.SetSym(0, 0, 42.0)
	assert.Equal(1.0, s.At(0, 0))
}
