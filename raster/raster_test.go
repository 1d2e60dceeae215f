// seehuhn.de/go/sketch - animated reveal of vector sketches
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// approaches lists thresholds which force the 2D buffer (A) and the
// active edge list (B).
var approaches = []struct {
	name      string
	threshold int
}{
	{"A", 1 << 30},
	{"B", 0},
}

// canvas collects coverage values into a w×h grid.
type canvas struct {
	w, h int
	pix  []float32
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, pix: make([]float32, w*h)}
}

func (c *canvas) emit(y, xMin int, coverage []float32) {
	copy(c.pix[y*c.w+xMin:], coverage)
}

func (c *canvas) at(x, y int) float32 {
	return c.pix[y*c.w+x]
}

func (c *canvas) sum() float64 {
	total := 0.0
	for _, v := range c.pix {
		total += float64(v)
	}
	return total
}

func newTestRasterizer(w, h, threshold int) *Rasterizer {
	r := NewRasterizer(rect.Rect{URx: float64(w), URy: float64(h)})
	r.smallPathThreshold = threshold
	return r
}

// The triangle (0,0)→(10,0)→(10,1)→close has a diagonal edge y = x/10.
// Each pixel X should have coverage (2X+1)/20: 0.05, 0.15, ..., 0.95.
func TestTriangleCoverage(t *testing.T) {
	triangle := (&path.Data{}).
		MoveTo(vec.Vec2{X: 0, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 0}).
		LineTo(vec.Vec2{X: 10, Y: 1}).
		Close()

	for _, approach := range approaches {
		t.Run(approach.name, func(t *testing.T) {
			r := newTestRasterizer(10, 1, approach.threshold)
			c := newCanvas(10, 1)
			r.FillNonZero(triangle, c.emit)

			const epsilon = 1e-6
			for x := range 10 {
				expected := float32(2*x+1) / 20.0
				if actual := c.at(x, 0); math.Abs(float64(actual-expected)) > epsilon {
					t.Errorf("pixel %d: expected coverage %.4f, got %.4f", x, expected, actual)
				}
			}
		})
	}
}

// TestFillAgainstVector compares polygon fills with golang.org/x/image/vector,
// which computes the same exact area coverage.
func TestFillAgainstVector(t *testing.T) {
	const w, h = 40, 30
	polygons := map[string][]vec.Vec2{
		"triangle": {{X: 3.2, Y: 1.5}, {X: 37.7, Y: 12.1}, {X: 9.4, Y: 28.8}},
		"arrow": {
			{X: 2, Y: 12}, {X: 24, Y: 12}, {X: 24, Y: 4}, {X: 38.5, Y: 15.5},
			{X: 24, Y: 27}, {X: 24, Y: 19}, {X: 2, Y: 19},
		},
		"chevron": {{X: 1.5, Y: 2}, {X: 20, Y: 14.25}, {X: 38.5, Y: 2}, {X: 20, Y: 27.5}},
	}

	for name, poly := range polygons {
		// reference image
		ref := vector.NewRasterizer(w, h)
		ref.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, pt := range poly[1:] {
			ref.LineTo(float32(pt.X), float32(pt.Y))
		}
		ref.ClosePath()
		dst := image.NewAlpha(image.Rect(0, 0, w, h))
		ref.Draw(dst, dst.Bounds(), image.NewUniform(color.Alpha{A: 255}), image.Point{})

		p := (&path.Data{}).MoveTo(poly[0])
		for _, pt := range poly[1:] {
			p = p.LineTo(pt)
		}
		p = p.Close()

		for _, approach := range approaches {
			t.Run(name+"_"+approach.name, func(t *testing.T) {
				r := newTestRasterizer(w, h, approach.threshold)
				c := newCanvas(w, h)
				r.FillNonZero(p, c.emit)

				for y := range h {
					for x := range w {
						want := float64(dst.AlphaAt(x, y).A) / 255
						got := float64(c.at(x, y))
						if math.Abs(got-want) > 3.0/255 {
							t.Errorf("pixel (%d,%d): got %.4f, want %.4f", x, y, got, want)
						}
					}
				}
			})
		}
	}
}

func TestFillCircleArea(t *testing.T) {
	const size = 64
	p := circle(32, 32, 20, false)
	for _, approach := range approaches {
		t.Run(approach.name, func(t *testing.T) {
			r := newTestRasterizer(size, size, approach.threshold)
			c := newCanvas(size, size)
			r.FillNonZero(p, c.emit)

			want := math.Pi * 20 * 20
			if got := c.sum(); math.Abs(got-want) > 0.02*want {
				t.Errorf("area: got %.2f, want %.2f", got, want)
			}
		})
	}
}

func TestStrokeHorizontalLine(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 2, Y: 5}).
		LineTo(vec.Vec2{X: 18, Y: 5})

	cases := []struct {
		cap        graphics.LineCapStyle
		xMin, xMax int // fully covered pixel columns
	}{
		{graphics.LineCapButt, 2, 17},
		{graphics.LineCapSquare, 1, 18},
	}
	for _, tc := range cases {
		for _, approach := range approaches {
			r := newTestRasterizer(20, 10, approach.threshold)
			r.Width = 2
			r.Cap = tc.cap
			c := newCanvas(20, 10)
			r.Stroke(line, c.emit)

			for y := range 10 {
				for x := range 20 {
					want := float32(0)
					if y >= 4 && y <= 5 && x >= tc.xMin && x <= tc.xMax {
						want = 1
					}
					if got := c.at(x, y); math.Abs(float64(got-want)) > 1e-5 {
						t.Errorf("cap %v, %s: pixel (%d,%d) = %.4f, want %.0f",
							tc.cap, approach.name, x, y, got, want)
					}
				}
			}
		}
	}
}

func TestStrokeRoundCapArea(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 30, Y: 10})

	r := newTestRasterizer(40, 20, smallPathThreshold)
	r.Width = 4
	r.Cap = graphics.LineCapRound
	r.Flatness = 0.01
	c := newCanvas(40, 20)
	r.Stroke(line, c.emit)

	want := 20*4 + math.Pi*2*2
	if got := c.sum(); math.Abs(got-want) > 0.3 {
		t.Errorf("area: got %.3f, want %.3f", got, want)
	}
}

func TestStrokeClosedSquare(t *testing.T) {
	square := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 5}).
		LineTo(vec.Vec2{X: 15, Y: 5}).
		LineTo(vec.Vec2{X: 15, Y: 15}).
		LineTo(vec.Vec2{X: 5, Y: 15}).
		Close()

	for _, approach := range approaches {
		t.Run(approach.name, func(t *testing.T) {
			r := newTestRasterizer(20, 20, approach.threshold)
			r.Width = 2
			c := newCanvas(20, 20)
			r.Stroke(square, c.emit)

			checks := []struct {
				x, y int
				want float32
			}{
				{10, 10, 0}, // inside the hole
				{7, 7, 0},
				{4, 10, 1}, // on the left side
				{5, 10, 1},
				{6, 10, 0},
				{4, 4, 1}, // miter corners
				{15, 15, 1},
				{2, 2, 0}, // outside
			}
			for _, ch := range checks {
				if got := c.at(ch.x, ch.y); math.Abs(float64(got-ch.want)) > 1e-5 {
					t.Errorf("pixel (%d,%d) = %.4f, want %.0f", ch.x, ch.y, got, ch.want)
				}
			}

			// ring between the squares [4,16]² and [6,14]²
			want := 12.0*12 - 8*8
			if got := c.sum(); math.Abs(got-want) > 1e-3 {
				t.Errorf("area: got %.4f, want %.4f", got, want)
			}
		})
	}
}

func TestStrokeJoins(t *testing.T) {
	// a right angle with the outer corner at (20,10)
	corner := (&path.Data{}).
		MoveTo(vec.Vec2{X: 5, Y: 10}).
		LineTo(vec.Vec2{X: 20, Y: 10}).
		LineTo(vec.Vec2{X: 20, Y: 25})

	area := func(join graphics.LineJoinStyle) float64 {
		r := newTestRasterizer(30, 30, smallPathThreshold)
		r.Width = 4
		r.Join = join
		r.Flatness = 0.01
		c := newCanvas(30, 30)
		r.Stroke(corner, c.emit)
		return c.sum()
	}
	bevel := area(graphics.LineJoinBevel)
	round := area(graphics.LineJoinRound)
	miter := area(graphics.LineJoinMiter)

	// the joins differ only in the outer corner square of side 2
	if !(bevel < round && round < miter) {
		t.Errorf("areas not ordered: bevel %.3f, round %.3f, miter %.3f", bevel, round, miter)
	}
	if d := miter - bevel; math.Abs(d-2) > 1e-3 {
		t.Errorf("miter - bevel = %.4f, want 2", d)
	}
	if d := miter - round; math.Abs(d-(4-math.Pi)) > 0.05 {
		t.Errorf("miter - round = %.4f, want %.4f", d, 4-math.Pi)
	}
}

func TestStrokeDegenerate(t *testing.T) {
	dot := (&path.Data{}).
		MoveTo(vec.Vec2{X: 10, Y: 10}).
		LineTo(vec.Vec2{X: 10, Y: 10})

	r := newTestRasterizer(20, 20, smallPathThreshold)
	r.Width = 6
	r.Flatness = 0.01
	c := newCanvas(20, 20)
	r.Stroke(dot, c.emit)
	if got := c.sum(); got != 0 {
		t.Errorf("butt cap: got area %.4f, want 0", got)
	}

	r.Cap = graphics.LineCapRound
	r.Stroke(dot, c.emit)
	want := math.Pi * 3 * 3
	if got := c.sum(); math.Abs(got-want) > 0.3 {
		t.Errorf("round cap: got area %.4f, want %.4f", got, want)
	}
}

func TestStrokeCTM(t *testing.T) {
	line := (&path.Data{}).
		MoveTo(vec.Vec2{X: 1, Y: 2.5}).
		LineTo(vec.Vec2{X: 9, Y: 2.5})

	r := newTestRasterizer(20, 10, smallPathThreshold)
	r.CTM = matrix.Matrix{2, 0, 0, 2, 0, 0}
	r.Width = 1
	c := newCanvas(20, 10)
	r.Stroke(line, c.emit)

	// 16×2 device pixels
	if got := c.sum(); math.Abs(got-32) > 1e-3 {
		t.Errorf("area: got %.4f, want 32", got)
	}
}

func TestClip(t *testing.T) {
	p := circle(10, 10, 15, false)
	r := NewRasterizer(rect.Rect{LLx: 2, LLy: 3, URx: 12, URy: 8})
	r.FillNonZero(p, func(y, xMin int, coverage []float32) {
		if y < 3 || y >= 8 {
			t.Errorf("row %d outside the clip rectangle", y)
		}
		if xMin < 2 || xMin+len(coverage) > 12 {
			t.Errorf("row %d: columns [%d,%d) outside the clip rectangle",
				y, xMin, xMin+len(coverage))
		}
	})
}

func TestReuse(t *testing.T) {
	p := circle(16, 16, 10, false)
	r := newTestRasterizer(32, 32, smallPathThreshold)

	first := newCanvas(32, 32)
	r.Width = 3
	r.Stroke(p, first.emit)

	r.Reset(rect.Rect{URx: 32, URy: 32})
	r.FillNonZero(circle(5, 5, 3, true), func(int, int, []float32) {})

	r.Width = 3
	second := newCanvas(32, 32)
	r.Stroke(p, second.emit)
	for i := range first.pix {
		if first.pix[i] != second.pix[i] {
			t.Fatalf("pixel %d differs after reuse: %g != %g", i, first.pix[i], second.pix[i])
		}
	}
}

// circle returns a circle made from four cubic Bézier curves.
func circle(cx, cy, r float64, clockwise bool) *path.Data {
	const k = 0.5522847498
	kr := k * r
	s := 1.0
	if clockwise {
		s = -1
	}
	pt := func(x, y float64) vec.Vec2 {
		return vec.Vec2{X: cx + x, Y: cy + s*y}
	}
	return (&path.Data{}).
		MoveTo(pt(0, -r)).
		CubeTo(pt(kr, -r), pt(r, -kr), pt(r, 0)).
		CubeTo(pt(r, kr), pt(kr, r), pt(0, r)).
		CubeTo(pt(-kr, r), pt(-r, kr), pt(-r, 0)).
		CubeTo(pt(-r, -kr), pt(-kr, -r), pt(0, -r)).
		Close()
}
