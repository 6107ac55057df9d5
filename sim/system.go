package sim

import (
	"fmt"

	filter "github.com/lingauss/go-lingauss"
	"gonum.org/v1/gonum/mat"
)

// System is a discrete-time linear system used to generate synthetic
// truth trajectories and noisy measurements for filter exercises.
//
//	x[k+1] = A*x[k] + B*u[k] + w[k]
//	y[k]   = C*x[k] + v[k]
type System struct {
	// A is state propagation matrix
	A *mat.Dense
	// B is control matrix
	B *mat.Dense
	// C is observation matrix
	C *mat.Dense
}

// NewSystem creates a new System from the given matrices and returns it.
// A must be square; B and C, when given, must agree with A's dimension.
func NewSystem(a, b, c *mat.Dense) (*System, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: system matrix must be defined", filter.ErrDimensionMismatch)
	}

	nx, cols := a.Dims()
	if nx != cols {
		return nil, fmt.Errorf("%w: system matrix is [%d x %d]", filter.ErrDimensionMismatch, nx, cols)
	}

	if b != nil {
		if rows, _ := b.Dims(); rows != nx {
			return nil, fmt.Errorf("%w: control matrix has %d rows, want %d", filter.ErrDimensionMismatch, rows, nx)
		}
	}

	if c != nil {
		if _, cols := c.Dims(); cols != nx {
			return nil, fmt.Errorf("%w: observation matrix has %d columns, want %d", filter.ErrDimensionMismatch, cols, nx)
		}
	}

	return &System{A: a, B: b, C: c}, nil
}

// Dims returns state (nx), input (nu) and output (ny) dimensions.
func (s *System) Dims() (nx, nu, ny int) {
	nx, _ = s.A.Dims()
	if s.B != nil {
		_, nu = s.B.Dims()
	}
	if s.C != nil {
		ny, _ = s.C.Dims()
	}

	return nx, nu, ny
}

// Step propagates state x to the next step given input u and process
// noise w; u and w may be nil.
func (s *System) Step(x, u, w mat.Vector) (mat.Vector, error) {
	nx, nu, _ := s.Dims()

	if x == nil || x.Len() != nx {
		return nil, fmt.Errorf("%w: state must have length %d", filter.ErrDimensionMismatch, nx)
	}

	if u != nil && u.Len() != nu {
		return nil, fmt.Errorf("%w: input must have length %d", filter.ErrDimensionMismatch, nu)
	}

	out := new(mat.Dense)
	out.Mul(s.A, x)

	if u != nil && s.B != nil {
		ctl := new(mat.Dense)
		ctl.Mul(s.B, u)
		out.Add(out, ctl)
	}

	next := mat.VecDenseCopyOf(out.ColView(0))
	if w != nil {
		if w.Len() != nx {
			return nil, fmt.Errorf("%w: process noise must have length %d", filter.ErrDimensionMismatch, nx)
		}
		next.AddVec(next, w)
	}

	return next, nil
}

// Observe returns the system output for state x with measurement noise v;
// v may be nil.
func (s *System) Observe(x, v mat.Vector) (mat.Vector, error) {
	if s.C == nil {
		return nil, fmt.Errorf("%w: observation matrix must be defined", filter.ErrDimensionMismatch)
	}

	nx, _, ny := s.Dims()
	if x == nil || x.Len() != nx {
		return nil, fmt.Errorf("%w: state must have length %d", filter.ErrDimensionMismatch, nx)
	}

	out := new(mat.Dense)
	out.Mul(s.C, x)

	y := mat.VecDenseCopyOf(out.ColView(0))
	if v != nil {
		if v.Len() != ny {
			return nil, fmt.Errorf("%w: measurement noise must have length %d", filter.ErrDimensionMismatch, ny)
		}
		y.AddVec(y, v)
	}

	return y, nil
}
