/*package profile implements the analytic surface-brightness profiles
used to render synthetic astronomical sources: the Spergel profile
family, point sources, and sums of profiles. Each profile evaluates in
real space and Fourier space, reports the frequency-domain bandwidth
needed to sample it faithfully, and supports Monte-Carlo photon
shooting.

Profiles are immutable once constructed. The expensive shape-dependent
quantities for the Spergel family are computed once per index nu and
shared between every instance with the same nu through an LRU cache.*/
package profile

import (
	"github.com/kuonanhong/GalSim/grid"
	"github.com/kuonanhong/GalSim/math/rand"
	"github.com/kuonanhong/GalSim/photon"
)

// Position is a point in the image plane, or a frequency in the Fourier
// plane, depending on context.
type Position struct {
	X, Y float64
}

// mockInf stands in for an infinite spatial frequency on profiles with
// structure at all scales. It is large enough that any realistic grid
// chooses its resolution from some other profile, while staying well
// clear of overflow in the arithmetic that consumes it.
const mockInf = 1e100

// Profile is a surface-brightness profile. Flux may be negative
// (profiles can be subtracted from a sum), but photon shooting always
// produces samples whose signed weights reproduce the flux.
type Profile interface {
	// XValue returns the surface brightness at a position in real
	// space. Profiles with an infinite central density return +Inf
	// there; callers that cannot use an infinite density must
	// special-case it.
	XValue(p Position) float64
	// KValue returns the Fourier transform at a frequency.
	KValue(k Position) complex128

	// MaxK is the frequency beyond which aliasing is negligible.
	MaxK() float64
	// StepK is the frequency sampling needed to avoid folding.
	StepK() float64

	Flux() float64
	// PositiveFlux and NegativeFlux decompose the flux that photon
	// shooting must realize. NegativeFlux is reported as a positive
	// number.
	PositiveFlux() float64
	NegativeFlux() float64
	Centroid() Position

	IsAxisymmetric() bool
	HasHardEdges() bool
	IsAnalyticX() bool
	IsAnalyticK() bool

	// Shoot produces n photons whose signed weights sum to Flux()
	// within Monte-Carlo tolerance. The generator is owned by the call
	// for its duration: draws are strictly sequential.
	Shoot(n int, gen *rand.Generator) (*photon.Array, error)

	// FillX evaluates the profile over the axis-aligned grid
	// x = x0 + i dx, y = y0 + j dy. If izero or jzero is nonzero it is
	// the index at which the corresponding coordinate crosses zero, and
	// implementations may exploit reflection symmetry about that axis.
	FillX(im *grid.Image, x0, dx float64, izero int, y0, dy float64, jzero int)
	// FillXSheared evaluates over the sheared grid
	// x = x0 + i dx + j dxy, y = y0 + i dyx + j dy. No symmetry
	// shortcut applies; every point is evaluated.
	FillXSheared(im *grid.Image, x0, dx, dxy, y0, dy, dyx float64)
	// FillK and FillKSheared are the Fourier-plane analogues.
	FillK(im *grid.KImage, kx0, dkx float64, izero int, ky0, dky float64, jzero int)
	FillKSheared(im *grid.KImage, kx0, dkx, dkxy, ky0, dky, dkyx float64)

	// String returns a deterministic reconstruction string: the
	// parameters sufficient to build an equivalent profile.
	String() string
}

var (
	_ Profile = &Spergel{}
	_ Profile = &Add{}
	_ Profile = &DeltaFunction{}
)
