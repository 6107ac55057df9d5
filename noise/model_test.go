package noise

import (
	"errors"
	"testing"

	filter "github.com/lingauss/go-lingauss"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestFromSigmas(t *testing.T) {
	assert := assert.New(t)

	m, err := FromSigmas([]float64{0.1, 0.2})
	assert.NotNil(m)
	assert.NoError(err)
	assert.Equal(2, m.Dim())

	expected := mat.NewSymDense(2, []float64{0.01, 0.0, 0.0, 0.04})
	assert.True(mat.EqualApprox(expected, m.Cov(), 1e-12))

	// empty sigma vector
	m, err = FromSigmas(nil)
	assert.Nil(m)
	assert.True(errors.Is(err, filter.ErrInvalidDimension))

	// zero sigma produces a singular covariance
	m, err = FromSigmas([]float64{0.1, 0.0})
	assert.Nil(m)
	assert.True(errors.Is(err, filter.ErrInvalidCovariance))
}

func TestFromCovariance(t *testing.T) {
	assert := assert.New(t)

	cov := mat.NewSymDense(2, []float64{1.0, 0.1, 0.1, 1.0})
	m, err := FromCovariance(cov)
	assert.NotNil(m)
	assert.NoError(err)
	assert.True(mat.EqualApprox(cov, m.Cov(), 1e-12))

	// the model holds its own copy
	cov.SetSym(0, 0, 42.0)
	assert.Equal(1.0, m.Cov().At(0, 0))

	// nil covariance
	m, err = FromCovariance(nil)
	assert.Nil(m)
	assert.Error(err)

	// non positive definite covariance
	m, err = FromCovariance(mat.NewSymDense(2, []float64{1.0, 2.0, 2.0, 1.0}))
	assert.Nil(m)
	assert.True(errors.Is(err, filter.ErrInvalidCovariance))
}

func TestSample(t *testing.T) {
	assert := assert.New(t)

	m, err := FromSigmas([]float64{0.1, 0.1, 0.1})
	assert.NotNil(m)
	assert.NoError(err)

	s := m.Sample()
	assert.Equal(3, s.Len())
}
