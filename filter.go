package filter

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Failure taxonomy shared by all filter implementations.
// Every failure is deterministic and local to the call which produced it:
// previously returned estimates remain valid.
var (
	// ErrInvalidDimension means a filter was constructed with a non-positive state size
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrDimensionMismatch means a supplied matrix or vector disagrees with the filter state size
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidCovariance means a supplied covariance matrix is not positive definite
	ErrInvalidCovariance = errors.New("invalid covariance")
	// ErrSingularMatrix means a required matrix inversion failed
	ErrSingularMatrix = errors.New("singular matrix")
)

// Estimate is a Gaussian belief about the system state.
type Estimate interface {
	// Mean returns the point estimate of the state
	Mean() mat.Vector
	// Covariance returns estimate uncertainty as a covariance matrix
	Covariance() (mat.Symmetric, error)
	// Information returns estimate uncertainty as an information matrix,
	// the inverse of the covariance
	Information() (mat.Symmetric, error)
}

// NoiseModel realizes a concrete noise covariance for a single filter step.
type NoiseModel interface {
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Dim returns the noise dimension
	Dim() int
	// Sample returns a sample of the noise
	Sample() mat.Vector
}

// Filter is a linear state estimator.
// Each operation is pure given its inputs: it allocates and returns
// a new Estimate and never mutates the prior one.
type Filter interface {
	// Init creates the initial state estimate from mean x0 and covariance p0
	Init(x0 mat.Vector, p0 mat.Symmetric) (Estimate, error)
	// Predict propagates the prior estimate through the system dynamics
	Predict(prior Estimate, f, b mat.Matrix, u mat.Vector, q NoiseModel) (Estimate, error)
	// Update corrects the prior estimate with the measurement z
	Update(prior Estimate, h mat.Matrix, z mat.Vector, r NoiseModel) (Estimate, error)
}
