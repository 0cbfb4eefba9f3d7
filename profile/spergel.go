package profile

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/kuonanhong/GalSim/grid"
	"github.com/kuonanhong/GalSim/logging"
	"github.com/kuonanhong/GalSim/math/bessel"
	"github.com/kuonanhong/GalSim/math/rand"
	"github.com/kuonanhong/GalSim/math/solve"
	"github.com/kuonanhong/GalSim/photon"
)

// The supported range of the Spergel index. Outside this interval the
// profile family is either unnormalizable (nu <= -1) or too concentrated
// for the flux-radius brackets used below.
const (
	MinimumSpergelNu = -0.85
	MaximumSpergelNu = 4.0
)

// RadiusKind tags which physical size a profile constructor was given.
type RadiusKind int

const (
	HalfLightRadius RadiusKind = iota
	ScaleRadius
)

// spergelInfo holds everything about a Spergel profile that depends only
// on the index nu: normalization constants up front, and bandwidth
// limits, the half-light radius, and the photon sampler lazily. A single
// spergelInfo is shared by every Spergel instance with the same
// (nu, *GSParams) key.
type spergelInfo struct {
	nu     float64
	params *GSParams

	gammaNup1 float64 // Gamma(nu+1)
	gammaNup2 float64 // Gamma(nu+2)
	xnorm0    float64 // Central surface brightness for nu > 0, else +Inf.

	// Lazily computed under mu; zero means not yet computed.
	mu      sync.Mutex
	maxk    float64
	stepk   float64
	re      float64
	sampler *photon.Sampler
}

func newSpergelInfo(nu float64, params *GSParams) (*spergelInfo, error) {
	if nu < MinimumSpergelNu || nu > MaximumSpergelNu {
		return nil, fmt.Errorf(
			"Spergel index %g is outside the supported range [%g, %g]",
			nu, MinimumSpergelNu, MaximumSpergelNu,
		)
	}

	info := &spergelInfo{nu: nu, params: params}
	info.gammaNup1 = bessel.Gamma(nu + 1)
	info.gammaNup2 = info.gammaNup1 * (nu + 1)
	if nu > 0 {
		info.xnorm0 = info.gammaNup1 / (2 * nu) * math.Pow(2, nu)
	} else {
		info.xnorm0 = math.Inf(1)
	}
	return info, nil
}

// xValue returns the unnormalized real-space profile (r/2)^nu-style form
// r^nu K_nu(r) at dimensionless radius r. Multiply by flux * xNorm() /
// r0^2 to get a surface brightness.
func (info *spergelInfo) xValue(r float64) float64 {
	if r == 0 {
		return info.xnorm0
	}
	return bessel.KNu(info.nu, r) * math.Pow(r, info.nu)
}

// kValue returns the unnormalized Fourier transform at dimensionless
// squared frequency ksq; multiply by flux. Spergel (2010), eqn. 2.
func (info *spergelInfo) kValue(ksq float64) float64 {
	return math.Pow(1+ksq, -1-info.nu)
}

// xNorm is the factor turning xValue into a unit-flux surface
// brightness.
func (info *spergelInfo) xNorm() float64 {
	return math.Pow(2, -info.nu) / info.gammaNup1 / (2 * math.Pi)
}

// integratedFlux returns the fraction of total flux enclosed within
// dimensionless radius r. Derived in Spergel (2010) eqn. 8 by going to
// Fourier space and integrating by parts:
//
//	F(R) = 1 - 2 (1+nu) (R/2)^(nu+1) K_{nu+1}(R) / Gamma(nu+2)
func (info *spergelInfo) integratedFlux(r float64) float64 {
	if r == 0 {
		return 0
	}
	fnup1 := math.Pow(r/2, info.nu+1) *
		bessel.KNu(info.nu+1, r) / info.gammaNup2
	return 1 - 2*(1+info.nu)*fnup1
}

// fluxRadius solves for the dimensionless radius enclosing the given
// fraction of total flux. The initial interval brackets the half-light
// radius for every supported nu; other targets are reached by walking
// the bracket down toward zero or up geometrically.
func (info *spergelInfo) fluxRadius(fluxFrac float64) (float64, error) {
	f := func(r float64) float64 {
		return info.integratedFlux(r) - fluxFrac
	}
	s := solve.NewBrent(f, 0.1, 3.5)
	// Spergels can be super peaky, so need a tight tolerance.
	s.SetXTol(info.params.XTol)

	var err error
	if fluxFrac < 0.5 {
		err = s.BracketLowerWithLimit(0)
	} else {
		err = s.BracketUpper()
	}
	if err != nil {
		return 0, err
	}
	r, err := s.Root()
	if err != nil {
		return 0, err
	}
	if logging.Mode == logging.Debug {
		log.Printf("spergel: fluxRadius(%g) = %g for nu = %g",
			fluxFrac, r, info.nu)
	}
	return r, nil
}

// getHLR returns the half-light radius in scale-radius units, solving
// for it on first use.
func (info *spergelInfo) getHLR() (float64, error) {
	info.mu.Lock()
	defer info.mu.Unlock()
	return info.hlrLocked()
}

func (info *spergelInfo) hlrLocked() (float64, error) {
	if info.re == 0 {
		re, err := info.fluxRadius(0.5)
		if err != nil {
			return 0, err
		}
		info.re = re
	}
	return info.re, nil
}

// maxK returns the dimensionless frequency beyond which the transform
// falls below MaxkThreshold. Solving (1+k^2)^(-1-nu) = threshold with
// the 1+k^2 ~ k^2 approximation is good enough here.
func (info *spergelInfo) maxK() float64 {
	info.mu.Lock()
	defer info.mu.Unlock()
	if info.maxk == 0 {
		info.maxk = math.Pow(
			info.params.MaxkThreshold, -1/(2*(1+info.nu)),
		)
	}
	return info.maxk
}

// stepK returns the dimensionless frequency sampling below which less
// than FoldingThreshold of the flux folds back into the image, going out
// to at least StepKMinimumHLR half-light radii.
func (info *spergelInfo) stepK() (float64, error) {
	info.mu.Lock()
	defer info.mu.Unlock()
	if info.stepk == 0 {
		r, err := info.fluxRadius(1 - info.params.FoldingThreshold)
		if err != nil {
			return 0, err
		}
		re, err := info.hlrLocked()
		if err != nil {
			return 0, err
		}
		if minR := info.params.StepKMinimumHLR * re; r < minR {
			r = minR
		}
		info.stepk = math.Pi / r
	}
	return info.stepk, nil
}

// shoot draws n photons from the unit-flux, unit-scale profile. The
// radial sampler is built on first call and reused afterward.
func (info *spergelInfo) shoot(n int, gen *rand.Generator) (*photon.Array, error) {
	s, err := info.getSampler()
	if err != nil {
		return nil, err
	}
	result := s.Shoot(n, gen)
	if logging.Mode == logging.Debug {
		log.Printf("spergel info shoot: realized flux = %g",
			result.TotalFlux())
	}
	return result, nil
}

func (info *spergelInfo) getSampler() (*photon.Sampler, error) {
	info.mu.Lock()
	defer info.mu.Unlock()
	if info.sampler != nil {
		return info.sampler, nil
	}

	acc := info.params.ShootAccuracy
	rmax, err := info.fluxRadius(1 - acc)
	if err != nil {
		return nil, err
	}
	xnorm := info.xNorm()

	var radial photon.FluxDensity
	var ranges []float64
	if info.nu > 0 {
		// Finite at the origin: sample the profile directly.
		radial = func(r float64) float64 {
			return xnorm * info.xValue(r)
		}
		ranges = []float64{0, rmax}
	} else {
		// The profile diverges at the origin, so replace the innermost
		// circle (enclosing ShootAccuracy of the flux) with a linear
		// function carrying the same flux and matching the profile at
		// its edge. Solving
		//	int(2 pi r (a + b r) dr, 0..rmin) = acc
		//	a + b rmin = f(rmin)
		// gives the coefficients below.
		rmin, err := info.fluxRadius(acc)
		if err != nil {
			return nil, err
		}
		edge := xnorm * info.xValue(rmin)
		b := 3 / rmin * (edge - acc/(math.Pi*rmin*rmin))
		a := edge - b*rmin
		radial = func(r float64) float64 {
			if r <= rmin {
				return a + b*r
			}
			return xnorm * info.xValue(r)
		}
		ranges = []float64{0, rmin, rmax}
	}

	sampler, err := photon.NewSampler(radial, ranges, true)
	if err != nil {
		return nil, err
	}
	info.sampler = sampler
	return sampler, nil
}

// Spergel is the Spergel (2010) galaxy profile: an axisymmetric radial
// profile r^nu K_nu(r) whose index nu trades between a cuspy center and
// heavy wings. nu = 0.5 matches an exponential disc; larger nu
// approaches a Gaussian.
type Spergel struct {
	nu   float64
	flux float64
	r0   float64 // Scale radius.
	re   float64 // Half-light radius.

	xnorm float64 // Surface-brightness normalization of xValue.
	r0Sq  float64
	invR0 float64

	info *spergelInfo
}

// NewSpergel creates a Spergel profile with the given index, physical
// size, and total flux. kind says whether size is the half-light radius
// or the scale radius; the other is derived. A nil params uses
// DefaultGSParams. The error reports an index outside the supported
// range, or a failed flux-radius solve.
func NewSpergel(nu, size float64, kind RadiusKind, flux float64,
	params *GSParams) (*Spergel, error) {
	if size <= 0 {
		return nil, fmt.Errorf("Spergel size %g must be positive", size)
	}
	if params == nil {
		params = DefaultGSParams
	}

	info, err := spergelCache.get(infoKey{nu, params})
	if err != nil {
		return nil, err
	}
	hlr, err := info.getHLR()
	if err != nil {
		return nil, err
	}

	s := &Spergel{nu: nu, flux: flux, info: info}
	switch kind {
	case HalfLightRadius:
		s.re = size
		s.r0 = size / hlr
	case ScaleRadius:
		s.r0 = size
		s.re = size * hlr
	default:
		return nil, fmt.Errorf("Unknown radius kind %d", kind)
	}

	s.r0Sq = s.r0 * s.r0
	s.invR0 = 1 / s.r0
	s.xnorm = s.flux * info.xNorm() / s.r0Sq

	if logging.Mode == logging.Debug {
		log.Printf("spergel: nu = %g r0 = %g re = %g flux = %g",
			s.nu, s.r0, s.re, s.flux)
	}
	return s, nil
}

// Nu returns the Spergel index.
func (s *Spergel) Nu() float64 { return s.nu }

// ScaleRadius returns the scale radius.
func (s *Spergel) ScaleRadius() float64 { return s.r0 }

// HalfLightRadius returns the half-light radius.
func (s *Spergel) HalfLightRadius() float64 { return s.re }

func (s *Spergel) Flux() float64 { return s.flux }

func (s *Spergel) PositiveFlux() float64 {
	if s.flux >= 0 {
		return s.flux
	}
	return 0
}

func (s *Spergel) NegativeFlux() float64 {
	if s.flux < 0 {
		return -s.flux
	}
	return 0
}

func (s *Spergel) Centroid() Position { return Position{} }

func (s *Spergel) IsAxisymmetric() bool { return true }
func (s *Spergel) HasHardEdges() bool   { return false }
func (s *Spergel) IsAnalyticX() bool    { return true }
func (s *Spergel) IsAnalyticK() bool    { return true }

// XValue returns the surface brightness at p. Spergel (2010), eqns. 3
// and 4.
func (s *Spergel) XValue(p Position) float64 {
	r := math.Hypot(p.X, p.Y) * s.invR0
	return s.xnorm * s.info.xValue(r)
}

// KValue returns the Fourier transform at k. Spergel (2010), eqn. 2.
func (s *Spergel) KValue(k Position) complex128 {
	ksq := (k.X*k.X + k.Y*k.Y) * s.r0Sq
	return complex(s.flux*s.info.kValue(ksq), 0)
}

func (s *Spergel) MaxK() float64 { return s.info.maxK() * s.invR0 }

// StepK panics if the underlying flux-radius solve fails. The
// constructor already ran the half-light solve for this index, so a
// failure here would mean the bracket walk diverged for a target the
// profile family supports, which is a bug rather than a user error.
func (s *Spergel) StepK() float64 {
	stepk, err := s.info.stepK()
	if err != nil {
		panic(fmt.Sprintf("stepK solve failed for nu = %g: %v", s.nu, err))
	}
	return stepk * s.invR0
}

// IntegratedFlux returns the fraction of flux enclosed within physical
// radius r.
func (s *Spergel) IntegratedFlux(r float64) float64 {
	return s.info.integratedFlux(r * s.invR0)
}

// FluxRadius returns the physical radius enclosing the given fraction of
// total flux.
func (s *Spergel) FluxRadius(fluxFrac float64) (float64, error) {
	r, err := s.info.fluxRadius(fluxFrac)
	if err != nil {
		return 0, err
	}
	return r * s.r0, nil
}

// Shoot draws photons from the shared unit sampler and rescales them to
// this instance's flux and size.
func (s *Spergel) Shoot(n int, gen *rand.Generator) (*photon.Array, error) {
	if n <= 0 {
		panic("Photon count must be positive.")
	}
	result, err := s.info.shoot(n, gen)
	if err != nil {
		return nil, err
	}
	result.ScaleFlux(s.flux)
	result.ScaleXY(s.r0)
	if logging.Mode == logging.Debug {
		log.Printf("spergel shoot: realized flux = %g", result.TotalFlux())
	}
	return result, nil
}

func (s *Spergel) FillX(im *grid.Image, x0, dx float64, izero int,
	y0, dy float64, jzero int) {
	if izero != 0 || jzero != 0 {
		fillXQuadrant(s, im, x0, dx, izero, y0, dy, jzero)
		return
	}

	x0 *= s.invR0
	dx *= s.invR0
	y0 *= s.invR0
	dy *= s.invR0

	for j := 0; j < im.NY; j++ {
		row := im.Row(j)
		x := x0
		ysq := y0 * y0
		for i := range row {
			row[i] = s.xnorm * s.info.xValue(math.Sqrt(x*x+ysq))
			x += dx
		}
		y0 += dy
	}
}

func (s *Spergel) FillXSheared(im *grid.Image, x0, dx, dxy, y0, dy, dyx float64) {
	x0 *= s.invR0
	dx *= s.invR0
	dxy *= s.invR0
	y0 *= s.invR0
	dy *= s.invR0
	dyx *= s.invR0

	for j := 0; j < im.NY; j++ {
		row := im.Row(j)
		x, y := x0, y0
		for i := range row {
			row[i] = s.xnorm * s.info.xValue(math.Hypot(x, y))
			x += dx
			y += dyx
		}
		x0 += dxy
		y0 += dy
	}
}

func (s *Spergel) FillK(im *grid.KImage, kx0, dkx float64, izero int,
	ky0, dky float64, jzero int) {
	if izero != 0 || jzero != 0 {
		fillKQuadrant(s, im, kx0, dkx, izero, ky0, dky, jzero)
		return
	}

	kx0 *= s.r0
	dkx *= s.r0
	ky0 *= s.r0
	dky *= s.r0

	for j := 0; j < im.NY; j++ {
		row := im.Row(j)
		kx := kx0
		kysq := ky0 * ky0
		for i := range row {
			row[i] = complex(s.flux*s.info.kValue(kx*kx+kysq), 0)
			kx += dkx
		}
		ky0 += dky
	}
}

func (s *Spergel) FillKSheared(im *grid.KImage, kx0, dkx, dkxy, ky0, dky, dkyx float64) {
	kx0 *= s.r0
	dkx *= s.r0
	dkxy *= s.r0
	ky0 *= s.r0
	dky *= s.r0
	dkyx *= s.r0

	for j := 0; j < im.NY; j++ {
		row := im.Row(j)
		kx, ky := kx0, ky0
		for i := range row {
			row[i] = complex(s.flux*s.info.kValue(kx*kx+ky*ky), 0)
			kx += dkx
			ky += dkyx
		}
		kx0 += dkxy
		ky0 += dky
	}
}

// String returns a reconstruction string with enough digits to rebuild
// the profile exactly.
func (s *Spergel) String() string {
	return fmt.Sprintf("profile.Spergel(%.17g, %.17g, ScaleRadius, %.17g)",
		s.nu, s.r0, s.flux)
}
