package profile

import (
	"fmt"
	"math"

	"github.com/kuonanhong/GalSim/grid"
	"github.com/kuonanhong/GalSim/math/rand"
	"github.com/kuonanhong/GalSim/photon"
)

// DeltaFunction is a point source: all of the flux at the origin. Its
// Fourier transform is flat, so both bandwidth limits are effectively
// infinite and any grid resolution decision must come from some other
// profile it is summed with.
type DeltaFunction struct {
	flux float64
}

// NewDeltaFunction creates a point source with the given flux.
func NewDeltaFunction(flux float64) *DeltaFunction {
	return &DeltaFunction{flux: flux}
}

// XValue is +Inf at the origin and 0 elsewhere. An infinite density is
// physically meaningless for most purposes; callers that cannot handle
// it must special-case the origin.
func (d *DeltaFunction) XValue(p Position) float64 {
	if p.X == 0 && p.Y == 0 {
		return math.Inf(1)
	}
	return 0
}

func (d *DeltaFunction) KValue(k Position) complex128 {
	return complex(d.flux, 0)
}

func (d *DeltaFunction) MaxK() float64  { return mockInf }
func (d *DeltaFunction) StepK() float64 { return mockInf }

func (d *DeltaFunction) Flux() float64 { return d.flux }

func (d *DeltaFunction) PositiveFlux() float64 {
	if d.flux >= 0 {
		return d.flux
	}
	return 0
}

func (d *DeltaFunction) NegativeFlux() float64 {
	if d.flux < 0 {
		return -d.flux
	}
	return 0
}

func (d *DeltaFunction) Centroid() Position { return Position{} }

func (d *DeltaFunction) IsAxisymmetric() bool { return true }
func (d *DeltaFunction) HasHardEdges() bool   { return true }
func (d *DeltaFunction) IsAnalyticX() bool    { return true }
func (d *DeltaFunction) IsAnalyticK() bool    { return true }

// Shoot places all n photons at the origin, each carrying flux/n.
func (d *DeltaFunction) Shoot(n int, gen *rand.Generator) (*photon.Array, error) {
	if n <= 0 {
		panic("Photon count must be positive.")
	}
	result := photon.NewArray(n)
	w := d.flux / float64(n)
	for i := range result.Flux {
		result.Flux[i] = w
	}
	return result, nil
}

// FillX cannot work: a delta function has no finite point samples in
// real space.
func (d *DeltaFunction) FillX(im *grid.Image, x0, dx float64, izero int,
	y0, dy float64, jzero int) {
	panic("DeltaFunction cannot be sampled onto a real-space grid.")
}

func (d *DeltaFunction) FillXSheared(im *grid.Image,
	x0, dx, dxy, y0, dy, dyx float64) {
	panic("DeltaFunction cannot be sampled onto a real-space grid.")
}

func (d *DeltaFunction) FillK(im *grid.KImage, kx0, dkx float64, izero int,
	ky0, dky float64, jzero int) {
	for i := range im.Data {
		im.Data[i] = complex(d.flux, 0)
	}
}

func (d *DeltaFunction) FillKSheared(im *grid.KImage,
	kx0, dkx, dkxy, ky0, dky, dkyx float64) {
	for i := range im.Data {
		im.Data[i] = complex(d.flux, 0)
	}
}

func (d *DeltaFunction) String() string {
	return fmt.Sprintf("profile.DeltaFunction(%.17g)", d.flux)
}
