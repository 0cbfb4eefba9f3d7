/*package grid provides the 2D sample buffers that batched profile
evaluations write into. Buffers are dense and row-major: the i (column)
index is the fast one, matching the order the fill loops walk in.*/
package grid

import (
	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
)

// Image is a dense NX x NY buffer of real samples.
type Image struct {
	Data   []float64
	NX, NY int
}

// NewImage creates a zeroed nx x ny image.
func NewImage(nx, ny int) *Image {
	if nx <= 0 || ny <= 0 {
		panic("Image dimensions must be positive.")
	}
	return &Image{Data: make([]float64, nx*ny), NX: nx, NY: ny}
}

// At returns the sample at column i, row j.
func (im *Image) At(i, j int) float64 { return im.Data[j*im.NX+i] }

// Set overwrites the sample at column i, row j.
func (im *Image) Set(i, j int, v float64) { im.Data[j*im.NX+i] = v }

// Row returns the j'th row as a slice aliasing the underlying buffer.
func (im *Image) Row(j int) []float64 {
	return im.Data[j*im.NX : (j+1)*im.NX]
}

// Add accumulates other into im elementwise. The two buffers must have
// the same shape.
func (im *Image) Add(other *Image) {
	if im.NX != other.NX || im.NY != other.NY {
		panic("Image sizes do not match.")
	}
	floats.Add(im.Data, other.Data)
}

// KImage is a dense NX x NY buffer of complex Fourier samples.
type KImage struct {
	Data   []complex128
	NX, NY int
}

// NewKImage creates a zeroed nx x ny Fourier buffer.
func NewKImage(nx, ny int) *KImage {
	if nx <= 0 || ny <= 0 {
		panic("Image dimensions must be positive.")
	}
	return &KImage{Data: make([]complex128, nx*ny), NX: nx, NY: ny}
}

// At returns the sample at column i, row j.
func (im *KImage) At(i, j int) complex128 { return im.Data[j*im.NX+i] }

// Set overwrites the sample at column i, row j.
func (im *KImage) Set(i, j int, v complex128) { im.Data[j*im.NX+i] = v }

// Row returns the j'th row as a slice aliasing the underlying buffer.
func (im *KImage) Row(j int) []complex128 {
	return im.Data[j*im.NX : (j+1)*im.NX]
}

// Add accumulates other into im elementwise. The two buffers must have
// the same shape.
func (im *KImage) Add(other *KImage) {
	if im.NX != other.NX || im.NY != other.NY {
		panic("Image sizes do not match.")
	}
	cmplxs.Add(im.Data, other.Data)
}
