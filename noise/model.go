package noise

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	filter "github.com/lingauss/go-lingauss"
	"github.com/lingauss/go-lingauss/matrix"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Model is an immutable zero-mean Gaussian noise model.
// It realizes the concrete covariance consumed by a single
// filter predict or update step and can be reused across steps.
type Model struct {
	// dist is a multivariate normal distribution
	dist *distmv.Normal
	// cov is the noise covariance
	cov *mat.SymDense
}

// FromSigmas creates a new Model with diagonal covariance built from the
// given standard deviations: cov[i,i] = sigmas[i]^2.
// It returns error if sigmas is empty or the resulting covariance is
// not positive definite.
func FromSigmas(sigmas []float64) (*Model, error) {
	if len(sigmas) == 0 {
		return nil, fmt.Errorf("%w: empty sigma vector", filter.ErrInvalidDimension)
	}

	cov := mat.NewSymDense(len(sigmas), nil)
	for i, s := range sigmas {
		cov.SetSym(i, i, s*s)
	}

	return newModel(cov)
}

// FromCovariance creates a new Model with the given full covariance.
// It returns error if cov is not positive definite.
func FromCovariance(cov mat.Symmetric) (*Model, error) {
	if cov == nil || cov.SymmetricDim() == 0 {
		return nil, fmt.Errorf("%w: empty covariance", filter.ErrInvalidDimension)
	}

	return newModel(matrix.CopySym(cov))
}

func newModel(cov *mat.SymDense) (*Model, error) {
	// NewNormal factorizes cov and rejects non positive definite matrices
	seed := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	dist, ok := distmv.NewNormal(make([]float64, cov.SymmetricDim()), cov, seed)
	if !ok {
		return nil, fmt.Errorf("%w: noise covariance is not positive definite", filter.ErrInvalidCovariance)
	}

	return &Model{
		dist: dist,
		cov:  cov,
	}, nil
}

// Cov returns covariance matrix of the noise.
func (m *Model) Cov() mat.Symmetric {
	return matrix.CopySym(m.cov)
}

// Dim returns the noise dimension.
func (m *Model) Dim() int {
	return m.cov.SymmetricDim()
}

// Sample generates a random sample from the noise and returns it.
func (m *Model) Sample() mat.Vector {
	r := m.dist.Rand(nil)
	return mat.NewVecDense(len(r), r)
}

// String implements the Stringer interface.
func (m *Model) String() string {
	return fmt.Sprintf("Model{\nCov=%v\n}", mat.Formatted(m.cov, mat.Prefix("    "), mat.Squeeze()))
}
