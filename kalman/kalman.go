package kalman

import (
	"fmt"

	filter "github.com/lingauss/go-lingauss"
	"github.com/lingauss/go-lingauss/gaussian"
	"github.com/lingauss/go-lingauss/matrix"
	"gonum.org/v1/gonum/mat"
)

// KF is a linear Kalman filter over a fixed state dimension.
// The filter itself is stateless: every operation is pure given the
// prior estimate and its inputs, returns a new estimate and never
// mutates the prior one, so a single KF is safe to share across
// concurrent callers.
type KF struct {
	// n is the state dimension
	n int
}

// New creates a new KF with state dimension n and returns it.
// It returns error if n is not a positive integer.
func New(n int) (*KF, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: state dimension must be positive, got %d", filter.ErrInvalidDimension, n)
	}

	return &KF{n: n}, nil
}

// Dim returns the filter state dimension.
func (k *KF) Dim() int {
	return k.n
}

// Init creates the initial state estimate with mean x0 and covariance p0.
// p0 must be positive definite, which is validated with a Cholesky
// factorization attempt; symmetry is enforced by the mat.Symmetric type.
func (k *KF) Init(x0 mat.Vector, p0 mat.Symmetric) (filter.Estimate, error) {
	if x0 == nil || x0.Len() != k.n {
		return nil, fmt.Errorf("%w: initial mean must have length %d", filter.ErrDimensionMismatch, k.n)
	}

	if p0 == nil || p0.SymmetricDim() != k.n {
		return nil, fmt.Errorf("%w: initial covariance must be [%d x %d]", filter.ErrDimensionMismatch, k.n, k.n)
	}

	var chol mat.Cholesky
	if !chol.Factorize(p0) {
		return nil, fmt.Errorf("%w: initial covariance is not positive definite", filter.ErrInvalidCovariance)
	}

	return gaussian.NewFromCovariance(x0, p0)
}

// Predict propagates the prior estimate through the system dynamics
// and returns the new estimate:
//
//	x' = F*x + B*u
//	P' = F*P*F' + Q
//
// where Q is the covariance realized from the process noise model q.
// The control matrix b and input u may both be nil, in which case the
// control term is skipped. It returns error if any input shape disagrees
// with the filter dimension, or if the prior holds a singular
// information matrix so its covariance cannot be recovered.
func (k *KF) Predict(prior filter.Estimate, f, b mat.Matrix, u mat.Vector, q filter.NoiseModel) (filter.Estimate, error) {
	if prior == nil {
		return nil, fmt.Errorf("%w: nil prior estimate", filter.ErrDimensionMismatch)
	}

	if err := k.checkSquare(f, "state matrix"); err != nil {
		return nil, err
	}

	if b != nil || u != nil {
		if err := k.checkSquare(b, "control matrix"); err != nil {
			return nil, err
		}
		if u == nil || u.Len() != k.n {
			return nil, fmt.Errorf("%w: control input must have length %d", filter.ErrDimensionMismatch, k.n)
		}
	}

	if err := k.checkNoise(q); err != nil {
		return nil, err
	}

	p, err := prior.Covariance()
	if err != nil {
		return nil, err
	}

	// x' = F*x + B*u
	x := mat.NewVecDense(k.n, nil)
	x.MulVec(f, prior.Mean())
	if u != nil {
		ctl := mat.NewVecDense(k.n, nil)
		ctl.MulVec(b, u)
		x.AddVec(x, ctl)
	}

	// P' = F*P*F' + Q
	cov := &mat.Dense{}
	cov.Mul(f, p)
	cov.Mul(cov, f.T())
	cov.Add(cov, q.Cov())

	pNext, err := matrix.AsSymmetric(cov)
	if err != nil {
		return nil, err
	}

	return gaussian.NewFromCovariance(x, pNext)
}

// Update corrects the prior estimate with the measurement z and returns
// the new estimate. The canonical algorithm is the information form:
//
//	I' = P⁻¹ + H'*R⁻¹*H
//	x' solves I'*x' = P⁻¹*x + H'*R⁻¹*z
//
// where R is the covariance realized from the measurement noise model r.
// Independent measurements therefore accumulate additively in
// information space. The returned estimate holds I' canonically and
// computes its covariance lazily on request.
// It returns error if any input shape disagrees with the filter
// dimension or if R, the prior covariance or I' is singular.
func (k *KF) Update(prior filter.Estimate, h mat.Matrix, z mat.Vector, r filter.NoiseModel) (filter.Estimate, error) {
	if prior == nil {
		return nil, fmt.Errorf("%w: nil prior estimate", filter.ErrDimensionMismatch)
	}

	if err := k.checkSquare(h, "observation matrix"); err != nil {
		return nil, err
	}

	if z == nil || z.Len() != k.n {
		return nil, fmt.Errorf("%w: measurement must have length %d", filter.ErrDimensionMismatch, k.n)
	}

	if err := k.checkNoise(r); err != nil {
		return nil, err
	}

	iPrior, err := prior.Information()
	if err != nil {
		return nil, err
	}

	rInv, err := matrix.InverseSym(r.Cov())
	if err != nil {
		return nil, err
	}

	// H'*R⁻¹
	htri := &mat.Dense{}
	htri.Mul(h.T(), rInv)

	// I' = P⁻¹ + H'*R⁻¹*H
	iNext := &mat.Dense{}
	iNext.Mul(htri, h)
	iNext.Add(iNext, iPrior)

	// information vector: P⁻¹*x + H'*R⁻¹*z
	iv := mat.NewVecDense(k.n, nil)
	iv.MulVec(iPrior, prior.Mean())
	hz := mat.NewVecDense(k.n, nil)
	hz.MulVec(htri, z)
	iv.AddVec(iv, hz)

	// recover the corrected mean
	x := mat.NewVecDense(k.n, nil)
	if err := x.SolveVec(iNext, iv); err != nil {
		return nil, fmt.Errorf("%w: posterior information matrix: %v", filter.ErrSingularMatrix, err)
	}

	iSym, err := matrix.AsSymmetric(iNext)
	if err != nil {
		return nil, err
	}

	return gaussian.NewFromInformation(x, iSym)
}

func (k *KF) checkSquare(m mat.Matrix, name string) error {
	if m == nil {
		return fmt.Errorf("%w: nil %s", filter.ErrDimensionMismatch, name)
	}

	rows, cols := m.Dims()
	if rows != k.n || cols != k.n {
		return fmt.Errorf("%w: %s is [%d x %d], want [%d x %d]",
			filter.ErrDimensionMismatch, name, rows, cols, k.n, k.n)
	}

	return nil
}

func (k *KF) checkNoise(n filter.NoiseModel) error {
	if n == nil {
		return fmt.Errorf("%w: nil noise model", filter.ErrDimensionMismatch)
	}

	if n.Dim() != k.n {
		return fmt.Errorf("%w: noise dimension %d, want %d", filter.ErrDimensionMismatch, n.Dim(), k.n)
	}

	return nil
}
