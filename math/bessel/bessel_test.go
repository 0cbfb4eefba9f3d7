package bessel

import (
	"math"
	"testing"
)

func relEq(x, y, eps float64) bool {
	if y == 0 {
		return math.Abs(x) < eps
	}
	return math.Abs(x-y) < eps*math.Abs(y)
}

// Half-integer orders have elementary closed forms:
// K_{1/2}(x) = sqrt(pi/(2x)) e^-x, K_{3/2}(x) = K_{1/2}(x) (1 + 1/x).
func kHalf(x float64) float64 {
	return math.Sqrt(math.Pi/(2*x)) * math.Exp(-x)
}

func TestKNuHalfInteger(t *testing.T) {
	xs := []float64{0.01, 0.1, 0.5, 1, 2, 5, 10, 30}
	for _, x := range xs {
		if !relEq(KNu(0.5, x), kHalf(x), 1e-12) {
			t.Errorf("K_1/2(%g): expected %g, got %g.",
				x, kHalf(x), KNu(0.5, x))
		}
		want := kHalf(x) * (1 + 1/x)
		if !relEq(KNu(1.5, x), want, 1e-12) {
			t.Errorf("K_3/2(%g): expected %g, got %g.",
				x, want, KNu(1.5, x))
		}
		want = kHalf(x) * (1 + 3/x + 3/(x*x))
		if !relEq(KNu(2.5, x), want, 1e-12) {
			t.Errorf("K_5/2(%g): expected %g, got %g.",
				x, want, KNu(2.5, x))
		}
	}
}

func TestKNuTabulated(t *testing.T) {
	// Abramowitz & Stegun reference values.
	table := []struct {
		nu, x, want float64
	}{
		{0, 1, 0.421024438240708},
		{1, 1, 0.601907230197235},
		{0, 2, 0.113893872749533},
		{1, 2, 0.139865881816522},
		{0, 0.1, 2.427069024702017},
		{1, 0.1, 9.853844780870606},
	}

	for i, line := range table {
		got := KNu(line.nu, line.x)
		if !relEq(got, line.want, 1e-10) {
			t.Errorf("%d) K_%g(%g): expected %.15g, got %.15g.",
				i, line.nu, line.x, line.want, got)
		}
	}
}

// The three-term recurrence K_{nu+1} = K_{nu-1} + (2 nu / x) K_nu holds
// for all real orders; it cross-checks the series and continued-fraction
// branches against each other at orders with no closed form.
func TestKNuRecurrence(t *testing.T) {
	nus := []float64{-0.85, -0.3, 0.2, 0.7, 1.3, 2.8, 4.0}
	xs := []float64{0.05, 0.5, 1.5, 3, 8, 20}
	for _, nu := range nus {
		for _, x := range xs {
			lhs := KNu(nu+1, x)
			rhs := KNu(nu-1, x) + 2*nu/x*KNu(nu, x)
			if !relEq(lhs, rhs, 1e-9) {
				t.Errorf("Recurrence broken at nu = %g, x = %g: "+
					"%.15g != %.15g.", nu, x, lhs, rhs)
			}
		}
	}
}

func TestKNuNegativeOrder(t *testing.T) {
	if KNu(-0.7, 1.3) != KNu(0.7, 1.3) {
		t.Errorf("K_-0.7 != K_0.7.")
	}
}

func TestKNuMonotoneDecay(t *testing.T) {
	prev := math.Inf(1)
	for x := 0.1; x < 50; x *= 1.5 {
		k := KNu(0.5, x)
		if k >= prev || k < 0 {
			t.Errorf("K_1/2 not decreasing at x = %g.", x)
		}
		prev = k
	}
}

func BenchmarkKNuSeries(b *testing.B) {
	for i := 0; i < b.N; i++ {
		KNu(0.5, 0.7)
	}
}

func BenchmarkKNuCF2(b *testing.B) {
	for i := 0; i < b.N; i++ {
		KNu(0.5, 5.0)
	}
}
