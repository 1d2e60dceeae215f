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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

var benchSizes = []int{20, 200, 2000}

// BenchmarkFillO benchmarks our rasterizer filling an "O" shape.
func BenchmarkFillO(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			center := float64(size) / 2
			oPath := circle(center, center, float64(size)*0.45, false)
			inner := circle(center, center, float64(size)*0.30, true)
			oPath.Cmds = append(oPath.Cmds, inner.Cmds...)
			oPath.Coords = append(oPath.Coords, inner.Coords...)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.FillNonZero(oPath, alphaEmitter(dst))
			}
		})
	}
}

// BenchmarkVectorO benchmarks x/image/vector drawing the same shape.
func BenchmarkVectorO(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})

			center := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, center, center, outerR, false)
				addCircleToVector(r, center, center, innerR, true)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkStrokeWave strokes a wavy line, the typical shape of a sketch
// path, with round caps and joins.
func BenchmarkStrokeWave(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			s := float64(size)
			wave := (&path.Data{}).
				MoveTo(vec.Vec2{X: 0.1 * s, Y: 0.5 * s}).
				CubeTo(vec.Vec2{X: 0.3 * s, Y: 0.1 * s}, vec.Vec2{X: 0.4 * s, Y: 0.9 * s}, vec.Vec2{X: 0.5 * s, Y: 0.5 * s}).
				CubeTo(vec.Vec2{X: 0.6 * s, Y: 0.1 * s}, vec.Vec2{X: 0.7 * s, Y: 0.9 * s}, vec.Vec2{X: 0.9 * s, Y: 0.5 * s})

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.Width = max(1, s/100)
				r.Cap = graphics.LineCapRound
				r.Join = graphics.LineJoinRound
				r.Stroke(wave, alphaEmitter(dst))
			}
		})
	}
}

func alphaEmitter(dst *image.Alpha) EmitFunc {
	return func(y, xMin int, coverage []float32) {
		row := dst.Pix[y*dst.Stride+xMin:]
		for i, c := range coverage {
			row[i] = uint8(c * 255)
		}
	}
}

// addCircleToVector adds a circle to a vector.Rasterizer using cubic Bézier curves.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius
	s := float32(1)
	if clockwise {
		s = -1
	}
	r.MoveTo(cx, cy-s*radius)
	r.CubeTo(cx+kr, cy-s*radius, cx+radius, cy-s*kr, cx+radius, cy)
	r.CubeTo(cx+radius, cy+s*kr, cx+kr, cy+s*radius, cx, cy+s*radius)
	r.CubeTo(cx-kr, cy+s*radius, cx-radius, cy+s*kr, cx-radius, cy)
	r.CubeTo(cx-radius, cy-s*kr, cx-kr, cy-s*radius, cx, cy-s*radius)
	r.ClosePath()
}
