package gaussian

import (
	"fmt"
	"sync"

	filter "github.com/lingauss/go-lingauss"
	"github.com/lingauss/go-lingauss/matrix"
	"gonum.org/v1/gonum/mat"
)

// State is an immutable Gaussian belief about a system state.
// It holds a mean vector together with exactly one canonical uncertainty
// representation, either a covariance matrix or its inverse (the
// information matrix). The alternate representation is computed by
// inversion on first request and cached for the life of the State,
// so repeated accessor calls return identical values.
//
// State is safe for unrestricted concurrent use: no accessor mutates
// visible data and the cached view is guarded by sync.Once.
type State struct {
	// mean is the point estimate
	mean *mat.VecDense
	// cov is the canonical covariance, nil when information is canonical
	cov *mat.SymDense
	// info is the canonical information matrix, nil when covariance is canonical
	info *mat.SymDense

	// alt caches the lazily inverted alternate view
	once   sync.Once
	alt    *mat.SymDense
	altErr error
}

// NewFromCovariance returns a State with the given mean and covariance.
// It fails with error if the mean and covariance dimensions disagree.
func NewFromCovariance(mean mat.Vector, cov mat.Symmetric) (*State, error) {
	m, err := copyMean(mean, cov)
	if err != nil {
		return nil, err
	}

	return &State{mean: m, cov: matrix.CopySym(cov)}, nil
}

// NewFromInformation returns a State with the given mean and information
// matrix. It fails with error if the mean and information dimensions disagree.
func NewFromInformation(mean mat.Vector, info mat.Symmetric) (*State, error) {
	m, err := copyMean(mean, info)
	if err != nil {
		return nil, err
	}

	return &State{mean: m, info: matrix.CopySym(info)}, nil
}

func copyMean(mean mat.Vector, uncert mat.Symmetric) (*mat.VecDense, error) {
	if mean == nil || uncert == nil {
		return nil, fmt.Errorf("%w: nil mean or uncertainty", filter.ErrDimensionMismatch)
	}

	if mean.Len() != uncert.SymmetricDim() {
		return nil, fmt.Errorf("%w: mean length %d, uncertainty [%d x %d]",
			filter.ErrDimensionMismatch, mean.Len(), uncert.SymmetricDim(), uncert.SymmetricDim())
	}

	m := &mat.VecDense{}
	m.CloneFromVec(mean)

	return m, nil
}

// Dim returns the state dimension.
func (s *State) Dim() int {
	return s.mean.Len()
}

// Mean returns the point estimate.
func (s *State) Mean() mat.Vector {
	m := &mat.VecDense{}
	m.CloneFromVec(s.mean)

	return m
}

// Covariance returns the estimate covariance, inverting the information
// matrix if covariance is not the canonical representation.
// It fails with error if the held information matrix is singular.
func (s *State) Covariance() (mat.Symmetric, error) {
	if s.cov != nil {
		return matrix.CopySym(s.cov), nil
	}

	s.once.Do(func() {
		s.alt, s.altErr = matrix.InverseSym(s.info)
	})
	if s.altErr != nil {
		return nil, s.altErr
	}

	return matrix.CopySym(s.alt), nil
}

// Information returns the estimate information matrix, inverting the
// covariance if information is not the canonical representation.
// It fails with error if the held covariance matrix is singular.
func (s *State) Information() (mat.Symmetric, error) {
	if s.info != nil {
		return matrix.CopySym(s.info), nil
	}

	s.once.Do(func() {
		s.alt, s.altErr = matrix.InverseSym(s.cov)
	})
	if s.altErr != nil {
		return nil, s.altErr
	}

	return matrix.CopySym(s.alt), nil
}

// String implements the Stringer interface.
func (s *State) String() string {
	if s.cov != nil {
		return fmt.Sprintf("State{\nMean=%v\nCov=%v\n}",
			mat.Formatted(s.mean, mat.Prefix("     "), mat.Squeeze()),
			mat.Formatted(s.cov, mat.Prefix("    "), mat.Squeeze()))
	}

	return fmt.Sprintf("State{\nMean=%v\nInfo=%v\n}",
		mat.Formatted(s.mean, mat.Prefix("     "), mat.Squeeze()),
		mat.Formatted(s.info, mat.Prefix("     "), mat.Squeeze()))
}
