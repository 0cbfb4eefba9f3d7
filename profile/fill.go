package profile

import (
	"math"

	"github.com/kuonanhong/GalSim/grid"
)

// The quadrant fast path evaluates the single quadrant containing the
// coordinate origin and mirrors it into the other three, which is valid
// for any profile symmetric under reflection through both axes. It
// requires the grid to actually cross zero where the caller said it
// does: x0 = -izero dx and y0 = -jzero dy.

func intAbs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func checkQuadrantOrigin(x0, dx float64, izero int, y0, dy float64, jzero int) {
	if math.Abs(x0+float64(izero)*dx) > 1e-10*math.Abs(dx) ||
		math.Abs(y0+float64(jzero)*dy) > 1e-10*math.Abs(dy) {
		panic("Quadrant fill grid does not cross zero at (izero, jzero).")
	}
}

func fillXQuadrant(p Profile, im *grid.Image, x0, dx float64, izero int,
	y0, dy float64, jzero int) {
	checkQuadrantOrigin(x0, dx, izero, y0, dy, jzero)

	m1 := izero
	if im.NX-1-izero > m1 {
		m1 = im.NX - 1 - izero
	}
	n1 := jzero
	if im.NY-1-jzero > n1 {
		n1 = im.NY - 1 - jzero
	}

	q := grid.NewImage(m1+1, n1+1)
	p.FillX(q, 0, math.Abs(dx), 0, 0, math.Abs(dy), 0)

	for j := 0; j < im.NY; j++ {
		row := im.Row(j)
		qRow := q.Row(intAbs(j - jzero))
		for i := range row {
			row[i] = qRow[intAbs(i-izero)]
		}
	}
}

func fillKQuadrant(p Profile, im *grid.KImage, kx0, dkx float64, izero int,
	ky0, dky float64, jzero int) {
	checkQuadrantOrigin(kx0, dkx, izero, ky0, dky, jzero)

	m1 := izero
	if im.NX-1-izero > m1 {
		m1 = im.NX - 1 - izero
	}
	n1 := jzero
	if im.NY-1-jzero > n1 {
		n1 = im.NY - 1 - jzero
	}

	q := grid.NewKImage(m1+1, n1+1)
	p.FillK(q, 0, math.Abs(dkx), 0, 0, math.Abs(dky), 0)

	for j := 0; j < im.NY; j++ {
		row := im.Row(j)
		qRow := q.Row(intAbs(j - jzero))
		for i := range row {
			row[i] = qRow[intAbs(i-izero)]
		}
	}
}
