/*package solve provides a scalar root finder with one-sided bracket
expansion. The profile code uses it to invert enclosed-flux relations,
which can require absurdly tight tolerances for sharply peaked profiles.*/
package solve

import (
	"fmt"
	"math"
)

const (
	// Geometric growth factor used when expanding a bracket.
	bracketFactor = 2.0
	// Maximum number of bracket expansion steps before giving up.
	maxBracketIters = 50
	// Maximum number of Brent iterations.
	maxRootIters = 100
)

// Func is the scalar function whose root is being sought.
type Func func(float64) float64

// Brent searches for a root of a function within a bracketing interval
// using Brent's method. The zero value is not usable: create one with
// NewBrent.
type Brent struct {
	f        Func
	a, b     float64
	fa, fb   float64
	xtol     float64
	bound    bool
}

// NewBrent creates a solver for f with the initial interval [a, b]. The
// interval does not need to bracket a root yet: BracketUpper and
// BracketLowerWithLimit can expand it until it does.
func NewBrent(f Func, a, b float64) *Brent {
	return &Brent{f: f, a: a, b: b, fa: f(a), fb: f(b), xtol: 1e-10}
}

// SetXTol sets the absolute x tolerance at which iteration stops.
func (s *Brent) SetXTol(xtol float64) { s.xtol = xtol }

func (s *Brent) bracketed() bool {
	return (s.fa <= 0) != (s.fb <= 0)
}

// BracketUpper expands the upper end of the interval geometrically until
// the interval brackets a sign change. The lower end follows the old
// upper end, so the interval walks upward rather than just stretching.
func (s *Brent) BracketUpper() error {
	for i := 0; i < maxBracketIters; i++ {
		if s.bracketed() {
			s.bound = true
			return nil
		}
		s.a, s.fa = s.b, s.fb
		s.b *= bracketFactor
		s.fb = s.f(s.b)
	}
	return fmt.Errorf(
		"No sign change found above %g after %d expansions",
		s.a, maxBracketIters,
	)
}

// BracketLowerWithLimit walks the lower end of the interval toward lim,
// halving the remaining distance each step, until the interval brackets a
// sign change. lim itself is never evaluated, so it may be a point where
// the function is singular.
func (s *Brent) BracketLowerWithLimit(lim float64) error {
	for i := 0; i < maxBracketIters; i++ {
		if s.bracketed() {
			s.bound = true
			return nil
		}
		s.b, s.fb = s.a, s.fa
		s.a = lim + (s.a-lim)/bracketFactor
		s.fa = s.f(s.a)
	}
	return fmt.Errorf(
		"No sign change found between %g and %g after %d contractions",
		lim, s.b, maxBracketIters,
	)
}

// Root runs Brent iteration and returns the root. An error is returned
// if the current interval does not bracket a sign change or if the
// iteration budget runs out before the x tolerance is met.
func (s *Brent) Root() (float64, error) {
	if !s.bound && !s.bracketed() {
		return 0, fmt.Errorf(
			"Interval [%g, %g] does not bracket a root", s.a, s.b,
		)
	}

	// Standard Brent: inverse quadratic interpolation when it behaves,
	// bisection when it doesn't.
	a, b, c := s.a, s.b, s.b
	fa, fb, fc := s.fa, s.fb, s.fb
	var d, e float64

	for i := 0; i < maxRootIters; i++ {
		if (fb > 0 && fc > 0) || (fb < 0 && fc < 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*math.SmallestNonzeroFloat64*math.Abs(b) + 0.5*s.xtol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q, r float64
			t := fb / fa
			if a == c {
				p = 2 * xm * t
				q = 1 - t
			} else {
				q = fa / fc
				r = fb / fc
				p = t * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (t - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			min1 := 3*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb = s.f(b)
	}
	return 0, fmt.Errorf(
		"Root iteration failed to converge to xtol = %g within %d steps",
		s.xtol, maxRootIters,
	)
}
