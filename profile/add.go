package profile

import (
	"fmt"
	"log"
	"strings"

	"github.com/kuonanhong/GalSim/grid"
	"github.com/kuonanhong/GalSim/logging"
	"github.com/kuonanhong/GalSim/math/rand"
	"github.com/kuonanhong/GalSim/photon"
)

// Add is the sum of an ordered list of profiles. Nested Adds are
// flattened away at construction: an Add handed another Add as a child
// splices in that child's own list, so the children of an Add are never
// themselves Adds. Aggregate properties are computed once at
// construction, after which the Add and its children are immutable.
type Add struct {
	children []Profile
	params   *GSParams

	sumFlux      float64
	sumFx, sumFy float64
	maxMaxK      float64
	minStepK     float64

	allAxisymmetric bool
	anyHardEdges    bool
	allAnalyticX    bool
	allAnalyticK    bool
}

// NewAdd creates the sum of the given profiles. The list must be
// non-empty. A nil params adopts the first child's tolerance settings
// where the child exposes any, else DefaultGSParams. Child order has no
// effect on any evaluated value; it only affects the variance structure
// of photon shooting.
func NewAdd(children []Profile, params *GSParams) (*Add, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("Add requires at least one child profile")
	}

	a := &Add{
		allAxisymmetric: true,
		allAnalyticX:    true,
		allAnalyticK:    true,
	}
	for _, child := range children {
		if sub, ok := child.(*Add); ok {
			a.children = append(a.children, sub.children...)
		} else {
			a.children = append(a.children, child)
		}
	}

	if params == nil {
		params = childParams(children[0])
	}
	a.params = params

	for _, child := range a.children {
		maxk, stepk := child.MaxK(), child.StepK()
		if logging.Mode == logging.Debug {
			log.Printf("add: component has maxK, stepK = %g, %g",
				maxk, stepk)
		}
		a.sumFlux += child.Flux()
		a.sumFx += child.Flux() * child.Centroid().X
		a.sumFy += child.Flux() * child.Centroid().Y
		if maxk > a.maxMaxK {
			a.maxMaxK = maxk
		}
		if a.minStepK <= 0 || (stepk > 0 && stepk < a.minStepK) {
			a.minStepK = stepk
		}
		a.allAxisymmetric = a.allAxisymmetric && child.IsAxisymmetric()
		a.anyHardEdges = a.anyHardEdges || child.HasHardEdges()
		a.allAnalyticX = a.allAnalyticX && child.IsAnalyticX()
		a.allAnalyticK = a.allAnalyticK && child.IsAnalyticK()
	}
	if logging.Mode == logging.Debug {
		log.Printf("add: net maxK, stepK = %g, %g", a.maxMaxK, a.minStepK)
	}
	return a, nil
}

func childParams(p Profile) *GSParams {
	switch c := p.(type) {
	case *Spergel:
		return c.info.params
	case *Add:
		return c.params
	default:
		return DefaultGSParams
	}
}

// Children returns the flattened child list. The returned slice must not
// be modified.
func (a *Add) Children() []Profile { return a.children }

func (a *Add) Flux() float64 { return a.sumFlux }

func (a *Add) PositiveFlux() float64 {
	result := 0.0
	for _, child := range a.children {
		result += child.PositiveFlux()
	}
	return result
}

func (a *Add) NegativeFlux() float64 {
	result := 0.0
	for _, child := range a.children {
		result += child.NegativeFlux()
	}
	return result
}

// Centroid is the flux-weighted mean of the children's centroids.
func (a *Add) Centroid() Position {
	return Position{a.sumFx / a.sumFlux, a.sumFy / a.sumFlux}
}

func (a *Add) MaxK() float64  { return a.maxMaxK }
func (a *Add) StepK() float64 { return a.minStepK }

func (a *Add) IsAxisymmetric() bool { return a.allAxisymmetric }
func (a *Add) HasHardEdges() bool   { return a.anyHardEdges }
func (a *Add) IsAnalyticX() bool    { return a.allAnalyticX }
func (a *Add) IsAnalyticK() bool    { return a.allAnalyticK }

// XValue returns the elementwise sum of the children's values: no
// approximation is introduced by composition.
func (a *Add) XValue(p Position) float64 {
	xv := a.children[0].XValue(p)
	for _, child := range a.children[1:] {
		xv += child.XValue(p)
	}
	return xv
}

func (a *Add) KValue(k Position) complex128 {
	kv := a.children[0].KValue(k)
	for _, child := range a.children[1:] {
		kv += child.KValue(k)
	}
	return kv
}

// The batched fills evaluate the first child straight into the
// destination, then accumulate the rest through a scratch buffer of the
// same shape.

func (a *Add) FillX(im *grid.Image, x0, dx float64, izero int,
	y0, dy float64, jzero int) {
	a.children[0].FillX(im, x0, dx, izero, y0, dy, jzero)
	if len(a.children) == 1 {
		return
	}
	scratch := grid.NewImage(im.NX, im.NY)
	for _, child := range a.children[1:] {
		child.FillX(scratch, x0, dx, izero, y0, dy, jzero)
		im.Add(scratch)
	}
}

func (a *Add) FillXSheared(im *grid.Image, x0, dx, dxy, y0, dy, dyx float64) {
	a.children[0].FillXSheared(im, x0, dx, dxy, y0, dy, dyx)
	if len(a.children) == 1 {
		return
	}
	scratch := grid.NewImage(im.NX, im.NY)
	for _, child := range a.children[1:] {
		child.FillXSheared(scratch, x0, dx, dxy, y0, dy, dyx)
		im.Add(scratch)
	}
}

func (a *Add) FillK(im *grid.KImage, kx0, dkx float64, izero int,
	ky0, dky float64, jzero int) {
	a.children[0].FillK(im, kx0, dkx, izero, ky0, dky, jzero)
	if len(a.children) == 1 {
		return
	}
	scratch := grid.NewKImage(im.NX, im.NY)
	for _, child := range a.children[1:] {
		child.FillK(scratch, kx0, dkx, izero, ky0, dky, jzero)
		im.Add(scratch)
	}
}

func (a *Add) FillKSheared(im *grid.KImage, kx0, dkx, dkxy, ky0, dky, dkyx float64) {
	a.children[0].FillKSheared(im, kx0, dkx, dkxy, ky0, dky, dkyx)
	if len(a.children) == 1 {
		return
	}
	scratch := grid.NewKImage(im.NX, im.NY)
	for _, child := range a.children[1:] {
		child.FillKSheared(scratch, kx0, dkx, dkxy, ky0, dky, dkyx)
		im.Add(scratch)
	}
}

// Shoot draws n photons from the sum. The photon count is partitioned
// across children by successive binomial draws proportional to each
// child's share of the total absolute flux, which keeps the expected
// allocation unbiased while the counts sum to exactly n. Each child's
// photons are then rescaled onto the common flux-per-photon scale.
//
// Because the per-child counts are drawn jointly, the resulting weights
// are statistically dependent whenever more than one child contributed,
// and the array is marked correlated.
func (a *Add) Shoot(n int, gen *rand.Generator) (*photon.Array, error) {
	if n <= 0 {
		panic("Photon count must be positive.")
	}
	totalAbsFlux := a.PositiveFlux() + a.NegativeFlux()
	fluxPerPhoton := totalAbsFlux / float64(n)
	if logging.Mode == logging.Debug {
		log.Printf("add shoot: n = %d, target flux = %g", n, a.sumFlux)
	}

	result := photon.NewArray(0)
	remainingAbsFlux := totalAbsFlux
	remainingN := n

	for idx, child := range a.children {
		childAbsFlux := child.PositiveFlux() + child.NegativeFlux()

		// The last child takes everything that is left; the others get
		// a binomially randomized share of the remaining photons.
		thisN := remainingN
		if idx != len(a.children)-1 {
			thisN = gen.Binomial(
				remainingN, childAbsFlux/remainingAbsFlux,
			)
		}
		if thisN > 0 && childAbsFlux > 0 {
			pa, err := child.Shoot(thisN, gen)
			if err != nil {
				return nil, err
			}
			// The child realized childAbsFlux/thisN per photon; put its
			// photons on the shared fluxPerPhoton scale.
			pa.ScaleFlux(fluxPerPhoton * float64(thisN) / childAbsFlux)
			result.Append(pa)
		}
		remainingN -= thisN
		remainingAbsFlux -= childAbsFlux
		if remainingN <= 0 || remainingAbsFlux <= 0 {
			break
		}
	}

	if logging.Mode == logging.Debug {
		log.Printf("add shoot: realized flux = %g", result.TotalFlux())
	}

	// The per-child draws make counts across children dependent.
	if len(a.children) > 1 {
		result.SetCorrelated(true)
	}
	return result, nil
}

// String returns a reconstruction string listing every child.
func (a *Add) String() string {
	parts := make([]string, len(a.children))
	for i, child := range a.children {
		parts[i] = child.String()
	}
	return fmt.Sprintf("profile.Add([%s])", strings.Join(parts, ", "))
}
