package profile

import (
	"testing"

	"github.com/kuonanhong/GalSim/grid"
)

// Brute-force reference fill by pointwise XValue calls.
func fillXDirect(p Profile, im *grid.Image, x0, dx, y0, dy float64) {
	for j := 0; j < im.NY; j++ {
		y := y0 + float64(j)*dy
		for i := 0; i < im.NX; i++ {
			im.Set(i, j, p.XValue(Position{x0 + float64(i)*dx, y}))
		}
	}
}

func fillKDirect(p Profile, im *grid.KImage, kx0, dkx, ky0, dky float64) {
	for j := 0; j < im.NY; j++ {
		ky := ky0 + float64(j)*dky
		for i := 0; i < im.NX; i++ {
			im.Set(i, j, p.KValue(Position{kx0 + float64(i)*dkx, ky}))
		}
	}
}

func TestFillXQuadrantMatchesDirect(t *testing.T) {
	s := mustSpergel(t, 0.5, 1, ScaleRadius, 2)

	// Both even and odd spans around the zero column/row.
	table := []struct {
		nx, ny       int
		izero, jzero int
		dx, dy       float64
	}{
		{9, 9, 4, 4, 0.25, 0.25},
		{8, 6, 3, 2, 0.3, 0.4},
		{7, 9, 2, 6, 0.5, 0.2},
	}

	for n, tc := range table {
		x0, y0 := -float64(tc.izero)*tc.dx, -float64(tc.jzero)*tc.dy

		im := grid.NewImage(tc.nx, tc.ny)
		s.FillX(im, x0, tc.dx, tc.izero, y0, tc.dy, tc.jzero)

		ref := grid.NewImage(tc.nx, tc.ny)
		fillXDirect(s, ref, x0, tc.dx, y0, tc.dy)

		for i := range im.Data {
			if !relEq(im.Data[i], ref.Data[i], 1e-12) {
				t.Fatalf("%d) Element %d: quadrant %g, direct %g.",
					n, i, im.Data[i], ref.Data[i])
			}
		}
	}
}

func TestFillKQuadrantMatchesDirect(t *testing.T) {
	s := mustSpergel(t, 1.5, 0.8, ScaleRadius, -1)

	nx, ny := 9, 7
	izero, jzero := 4, 3
	dkx, dky := 0.3, 0.5
	kx0, ky0 := -float64(izero)*dkx, -float64(jzero)*dky

	km := grid.NewKImage(nx, ny)
	s.FillK(km, kx0, dkx, izero, ky0, dky, jzero)

	ref := grid.NewKImage(nx, ny)
	fillKDirect(s, ref, kx0, dkx, ky0, dky)

	for i := range km.Data {
		if !relEq(real(km.Data[i]), real(ref.Data[i]), 1e-12) {
			t.Fatalf("Element %d: quadrant %v, direct %v.",
				i, km.Data[i], ref.Data[i])
		}
	}
}

func TestFillXQuadrantRequiresZeroCrossing(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Expected panic for a grid that misses zero.")
		}
	}()
	s := mustSpergel(t, 0.5, 1, ScaleRadius, 1)
	im := grid.NewImage(5, 5)
	s.FillX(im, -1.1, 0.5, 2, -1.0, 0.5, 2)
}

func TestFillXShearedZeroShearMatchesAxisAligned(t *testing.T) {
	s := mustSpergel(t, -0.3, 1.2, HalfLightRadius, 1.5)

	nx, ny := 6, 5
	x0, dx := -0.7, 0.3
	y0, dy := -0.4, 0.2

	im := grid.NewImage(nx, ny)
	s.FillX(im, x0, dx, 0, y0, dy, 0)

	sheared := grid.NewImage(nx, ny)
	s.FillXSheared(sheared, x0, dx, 0, y0, dy, 0)

	for i := range im.Data {
		if !relEq(im.Data[i], sheared.Data[i], 1e-13) {
			t.Fatalf("Element %d: axis-aligned %g, sheared %g.",
				i, im.Data[i], sheared.Data[i])
		}
	}
}

func TestFillXShearedMatchesDirect(t *testing.T) {
	s := mustSpergel(t, 0.5, 1, ScaleRadius, 1)

	nx, ny := 6, 6
	x0, dx, dxy := -0.7, 0.3, 0.05
	y0, dy, dyx := -0.6, 0.25, -0.04

	im := grid.NewImage(nx, ny)
	s.FillXSheared(im, x0, dx, dxy, y0, dy, dyx)

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			x := x0 + float64(i)*dx + float64(j)*dxy
			y := y0 + float64(i)*dyx + float64(j)*dy
			want := s.XValue(Position{x, y})
			if !relEq(im.At(i, j), want, 1e-12) {
				t.Fatalf("(%d, %d): sheared %g, direct %g.",
					i, j, im.At(i, j), want)
			}
		}
	}
}

func TestFillKShearedMatchesDirect(t *testing.T) {
	s := mustSpergel(t, 2.5, 1, ScaleRadius, 1)

	nx, ny := 5, 5
	kx0, dkx, dkxy := -1.0, 0.5, 0.1
	ky0, dky, dkyx := -1.0, 0.5, -0.1

	km := grid.NewKImage(nx, ny)
	s.FillKSheared(km, kx0, dkx, dkxy, ky0, dky, dkyx)

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			kx := kx0 + float64(i)*dkx + float64(j)*dkxy
			ky := ky0 + float64(i)*dkyx + float64(j)*dky
			want := real(s.KValue(Position{kx, ky}))
			if !relEq(real(km.At(i, j)), want, 1e-12) {
				t.Fatalf("(%d, %d): sheared %v, direct %g.",
					i, j, km.At(i, j), want)
			}
		}
	}
}

func TestQuadrantDimensions(t *testing.T) {
	if got := intAbs(-3); got != 3 {
		t.Errorf("intAbs(-3) = %d.", got)
	}
	if got := intAbs(2); got != 2 {
		t.Errorf("intAbs(2) = %d.", got)
	}
}
