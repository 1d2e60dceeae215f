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

package effect

import (
	"image"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/raster"
)

// surface draws the paths of a sketch into an RGBA image.
// It implements the [anim.Drawer] interface.
type surface struct {
	img     *image.RGBA
	paths   []*sketch.Path
	palette Palette
	width   float64 // stroke width in pixels
	r       *raster.Rasterizer
}

// acquire prepares the surface for drawing on buf. The current contents of
// buf are copied into the surface. The returned function copies the
// surface back into buf and must be called once drawing is complete.
func (s *surface) acquire(buf draw.Image) (release func()) {
	b := buf.Bounds()
	if s.img == nil || s.img.Rect.Size() != b.Size() {
		s.img = image.NewRGBA(image.Rectangle{Max: b.Size()})
	}
	draw.Draw(s.img, s.img.Rect, buf, b.Min, draw.Src)

	if s.r == nil {
		s.r = raster.NewRasterizer(s.clip())
	}
	return func() {
		draw.Draw(buf, b, s.img, image.Point{}, draw.Src)
	}
}

func (s *surface) clip() rect.Rect {
	size := s.img.Rect.Size()
	return rect.Rect{URx: float64(size.X), URy: float64(size.Y)}
}

// DrawEntire implements the [anim.Drawer] interface.
func (s *surface) DrawEntire(i int) {
	size := s.img.Rect.Size()
	s.stroke(i, s.paths[i].Data(float64(size.X), float64(size.Y)))
}

// DrawPartial implements the [anim.Drawer] interface.
func (s *surface) DrawPartial(i int, start, end float64) {
	size := s.img.Rect.Size()
	s.stroke(i, s.paths[i].Partial(start, end, float64(size.X), float64(size.Y)))
}

// stroke draws p with round caps and joins, in the palette color of path i.
func (s *surface) stroke(i int, p *path.Data) {
	if len(p.Cmds) == 0 {
		return
	}

	s.r.Reset(s.clip())
	s.r.Width = s.width
	s.r.Cap = graphics.LineCapRound
	s.r.Join = graphics.LineJoinRound

	col := s.palette.Color(i)
	r, g, b, a := float32(col.R), float32(col.G), float32(col.B), float32(col.A)/255
	s.r.Stroke(p, func(y, xMin int, coverage []float32) {
		row := s.img.Pix[s.img.PixOffset(xMin, y):]
		for k, c := range coverage {
			if c == 0 {
				continue
			}
			// source-over, premultiplied
			inv := 1 - a*c
			px := row[4*k : 4*k+4 : 4*k+4]
			px[0] = blend(r*c, px[0], inv)
			px[1] = blend(g*c, px[1], inv)
			px[2] = blend(b*c, px[2], inv)
			px[3] = blend(255*a*c, px[3], inv)
		}
	})
}

func blend(src float32, dst uint8, inv float32) uint8 {
	return uint8(min(src+float32(dst)*inv+0.5, 255))
}
