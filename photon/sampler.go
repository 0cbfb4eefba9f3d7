package photon

import (
	"fmt"
	"log"
	"math"

	"github.com/kuonanhong/GalSim/logging"
	"github.com/kuonanhong/GalSim/math/interpolate"
	"github.com/kuonanhong/GalSim/math/rand"
)

// Points per breakpoint segment in the cumulative flux table. Geometric
// spacing makes this plenty even for profiles peaked over four decades
// of radius.
const samplerPointsPerSegment = 2048

// Fraction of a segment's upper edge used as the innermost tabulated
// radius when the segment starts at exactly zero.
const samplerZeroEdge = 1e-8

// FluxDensity is a 1D density profile sampled by a Sampler. For radial
// samplers it is interpreted as an azimuthally symmetric surface
// brightness, so the sampled measure is 2 pi r f(r) dr; otherwise it is
// a plain linear density along the x axis.
type FluxDensity func(r float64) float64

// Sampler draws weighted photons from a tabulated 1D density. It
// tabulates the cumulative flux once at construction and inverts it with
// linear interpolation, so a single Sampler can be reused for any number
// of Shoot calls.
type Sampler struct {
	inv    *interpolate.Linear // cumulative flux -> radius
	total  float64
	radial bool
}

// NewSampler tabulates f over the monotonically increasing breakpoints
// in ranges (at least two) and returns a sampler for it. Breakpoints
// should be placed wherever f changes character (piecewise boundaries,
// truncation radii). f must be positive over the tabulated range.
func NewSampler(f FluxDensity, ranges []float64, radial bool) (*Sampler, error) {
	if len(ranges) < 2 {
		return nil, fmt.Errorf(
			"Need at least two range points, got %d", len(ranges),
		)
	}
	if ranges[0] < 0 {
		return nil, fmt.Errorf(
			"Range points must be non-negative: %v", ranges,
		)
	}
	for i := 1; i < len(ranges); i++ {
		if ranges[i] <= ranges[i-1] {
			return nil, fmt.Errorf(
				"Range points are not increasing: %v", ranges,
			)
		}
	}

	rs := tabulateRadii(ranges)
	ys := make([]float64, len(rs))
	for i, r := range rs {
		if radial {
			ys[i] = 2 * math.Pi * r * f(r)
		} else {
			ys[i] = f(r)
		}
		if ys[i] < 0 {
			return nil, fmt.Errorf(
				"Negative density %g at r = %g", ys[i], rs[i],
			)
		}
	}

	// Cumulative trapezoid table. The last entry is what Shoot treats
	// as the density's total flux.
	cum := make([]float64, len(rs))
	for i := 1; i < len(rs); i++ {
		cum[i] = cum[i-1] + 0.5*(ys[i]+ys[i-1])*(rs[i]-rs[i-1])
	}
	if cum[len(cum)-1] <= 0 {
		return nil, fmt.Errorf("Density integrates to zero over %v", ranges)
	}

	// Collapse stretches that carry no flux so the inversion table stays
	// strictly monotonic. Radii dropped here had zero probability of
	// being sampled anyway.
	nKept := 1
	for i := 1; i < len(cum); i++ {
		if cum[i] > cum[nKept-1] {
			cum[nKept], rs[nKept] = cum[i], rs[i]
			nKept++
		}
	}
	cum, rs = cum[:nKept], rs[:nKept]

	if logging.Mode == logging.Debug {
		log.Printf("sampler: %d points over %v, total flux = %g",
			len(rs), ranges, cum[len(cum)-1])
	}

	return &Sampler{
		inv:    interpolate.NewLinear(cum, rs),
		total:  cum[len(cum)-1],
		radial: radial,
	}, nil
}

// TotalFlux returns the tabulated integral of the density.
func (s *Sampler) TotalFlux() float64 { return s.total }

// Shoot draws n photons from the density. Every photon carries weight
// TotalFlux()/n, so the weights sum to the tabulated flux exactly.
func (s *Sampler) Shoot(n int, gen *rand.Generator) *Array {
	if n <= 0 {
		panic("Photon count must be positive.")
	}
	result := NewArray(n)
	w := s.total / float64(n)
	for i := 0; i < n; i++ {
		u := gen.Uniform(0, 1) * s.total
		r := s.inv.Eval(u)
		if s.radial {
			sin, cos := math.Sincos(gen.Uniform(0, 2*math.Pi))
			result.X[i] = r * cos
			result.Y[i] = r * sin
		} else {
			result.X[i] = r
		}
		result.Flux[i] = w
	}
	return result
}

// tabulateRadii lays out the evaluation grid: geometric spacing within
// each segment, since the densities this library shoots are peaked
// toward small radii.
func tabulateRadii(ranges []float64) []float64 {
	var rs []float64
	for seg := 0; seg+1 < len(ranges); seg++ {
		a, b := ranges[seg], ranges[seg+1]
		lo := a
		if lo == 0 {
			rs = append(rs, 0)
			lo = b * samplerZeroEdge
		}
		ratio := math.Pow(b/lo, 1/float64(samplerPointsPerSegment))
		r := lo
		for i := 0; i < samplerPointsPerSegment; i++ {
			// The segment boundary may already have been emitted as
			// the previous segment's endpoint.
			if len(rs) == 0 || r > rs[len(rs)-1] {
				rs = append(rs, r)
			}
			r *= ratio
		}
		rs = append(rs, b)
	}
	return rs
}
