/*package photon holds weighted point-photon samples produced by
Monte-Carlo shooting, along with the radial sampler used to shoot
profiles that have no closed-form deviate.*/
package photon

import (
	"gonum.org/v1/gonum/floats"
)

// Array is an ordered sequence of (position, flux weight) samples. The
// correlated flag marks sequences whose weights are not statistically
// independent across positions, which downstream noise estimates need to
// know about.
type Array struct {
	X, Y, Flux []float64
	correlated bool
}

// NewArray creates an array with room for n photons, all initialized to
// zero position and weight.
func NewArray(n int) *Array {
	if n < 0 {
		panic("Photon count must be non-negative.")
	}
	return &Array{
		X:    make([]float64, n),
		Y:    make([]float64, n),
		Flux: make([]float64, n),
	}
}

// Len returns the number of photons.
func (a *Array) Len() int { return len(a.X) }

// TotalFlux returns the signed sum of all photon weights.
func (a *Array) TotalFlux() float64 { return floats.Sum(a.Flux) }

// ScaleFlux multiplies every photon weight by f.
func (a *Array) ScaleFlux(f float64) { floats.Scale(f, a.Flux) }

// ScaleXY multiplies every photon position by s.
func (a *Array) ScaleXY(s float64) {
	floats.Scale(s, a.X)
	floats.Scale(s, a.Y)
}

// Append concatenates b's photons onto a. The correlated flags are OR'd:
// gluing a correlated sequence onto anything leaves the result
// correlated.
func (a *Array) Append(b *Array) {
	a.X = append(a.X, b.X...)
	a.Y = append(a.Y, b.Y...)
	a.Flux = append(a.Flux, b.Flux...)
	a.correlated = a.correlated || b.correlated
}

// SetCorrelated marks whether the photon weights are statistically
// dependent across positions.
func (a *Array) SetCorrelated(c bool) { a.correlated = c }

// Correlated reports whether the photon weights are statistically
// dependent across positions.
func (a *Array) Correlated() bool { return a.correlated }
