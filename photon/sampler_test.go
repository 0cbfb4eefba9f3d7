package photon

import (
	"math"
	"testing"

	"github.com/kuonanhong/GalSim/math/rand"
	"gonum.org/v1/gonum/stat"
)

// A radial Gaussian has closed forms for everything worth checking:
// total flux 2 pi (1 - exp(-rmax^2/2)), mean radius sqrt(pi/2), and
// enclosed fraction 1 - exp(-r^2/2).
func TestSamplerRadialGaussian(t *testing.T) {
	rmax := 8.0
	f := func(r float64) float64 { return math.Exp(-r * r / 2) }
	s, err := NewSampler(f, []float64{0, rmax}, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	wantTotal := 2 * math.Pi * (1 - math.Exp(-rmax*rmax/2))
	if math.Abs(s.TotalFlux()-wantTotal) > 1e-4*wantTotal {
		t.Errorf("Expected total flux %g. Got %g.", wantTotal, s.TotalFlux())
	}

	n := 50000
	gen := rand.New(rand.Xorshift, 1234)
	a := s.Shoot(n, gen)

	if a.Len() != n {
		t.Fatalf("Expected %d photons. Got %d.", n, a.Len())
	}
	if math.Abs(a.TotalFlux()-s.TotalFlux()) > 1e-10 {
		t.Errorf("Photon weights sum to %g, not %g.",
			a.TotalFlux(), s.TotalFlux())
	}

	rs := make([]float64, n)
	inner := 0
	for i := 0; i < n; i++ {
		rs[i] = math.Hypot(a.X[i], a.Y[i])
		if rs[i] < 1 {
			inner++
		}
	}

	// E[r] = sqrt(pi/2), Var(r) = 2 - pi/2.
	wantMean := math.Sqrt(math.Pi / 2)
	sigma := math.Sqrt((2 - math.Pi/2) / float64(n))
	if mean := stat.Mean(rs, nil); math.Abs(mean-wantMean) > 5*sigma {
		t.Errorf("Expected mean radius %g +- %g. Got %g.",
			wantMean, sigma, mean)
	}

	wantFrac := 1 - math.Exp(-0.5)
	fracSigma := math.Sqrt(wantFrac * (1 - wantFrac) / float64(n))
	frac := float64(inner) / float64(n)
	if math.Abs(frac-wantFrac) > 5*fracSigma {
		t.Errorf("Expected enclosed fraction %g +- %g. Got %g.",
			wantFrac, fracSigma, frac)
	}
}

func TestSamplerPiecewiseRange(t *testing.T) {
	// Piecewise density with a breakpoint: constant disc out to 1, then
	// nothing to speak of beyond. Total flux = pi.
	f := func(r float64) float64 {
		if r <= 1 {
			return 1
		}
		return 1e-300
	}
	s, err := NewSampler(f, []float64{0, 1, 2}, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(s.TotalFlux()-math.Pi) > 1e-3 {
		t.Errorf("Expected total flux pi. Got %g.", s.TotalFlux())
	}

	gen := rand.New(rand.Xorshift, 5)
	a := s.Shoot(10000, gen)
	for i := range a.X {
		if r := math.Hypot(a.X[i], a.Y[i]); r > 1.01 {
			t.Fatalf("Photon %d landed at r = %g, outside the disc.", i, r)
		}
	}
}

func TestSamplerNonRadial(t *testing.T) {
	// Linear density on [0, 1]: f(x) = x, total 1/2, E[x] = 2/3.
	s, err := NewSampler(func(x float64) float64 { return x },
		[]float64{0, 1}, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(s.TotalFlux()-0.5) > 1e-4 {
		t.Errorf("Expected total flux 0.5. Got %g.", s.TotalFlux())
	}

	n := 20000
	gen := rand.New(rand.Xorshift, 11)
	a := s.Shoot(n, gen)
	for i := range a.Y {
		if a.Y[i] != 0 {
			t.Fatalf("Non-radial sampler moved photon %d off axis.", i)
		}
	}
	mean := stat.Mean(a.X, nil)
	// Var(x) = 1/2 - 4/9 = 1/18.
	sigma := math.Sqrt(1.0 / 18.0 / float64(n))
	if math.Abs(mean-2.0/3.0) > 5*sigma {
		t.Errorf("Expected mean position 2/3 +- %g. Got %g.", sigma, mean)
	}
}

func TestSamplerBadRanges(t *testing.T) {
	f := func(r float64) float64 { return 1 }
	if _, err := NewSampler(f, []float64{1}, true); err == nil {
		t.Errorf("Expected error from single range point.")
	}
	if _, err := NewSampler(f, []float64{1, 1}, true); err == nil {
		t.Errorf("Expected error from non-increasing range.")
	}
	if _, err := NewSampler(f, []float64{-1, 1}, true); err == nil {
		t.Errorf("Expected error from negative range.")
	}
	neg := func(r float64) float64 { return -1 }
	if _, err := NewSampler(neg, []float64{0, 1}, true); err == nil {
		t.Errorf("Expected error from negative density.")
	}
}
