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
	"image/color"
)

// PixelBuffer is a row-major buffer of RGBA pixels, as used by a lighting
// sequencer for one effect layer. It implements the draw.Image interface.
//
// Pixel (0, 0) is the top left corner. Colors are premultiplied.
type PixelBuffer struct {
	Width, Height int
	Pix           []color.RGBA
}

// NewPixelBuffer allocates a transparent buffer of the given size.
func NewPixelBuffer(width, height int) *PixelBuffer {
	width = max(width, 0)
	height = max(height, 0)
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]color.RGBA, width*height),
	}
}

// ColorModel implements the [image.Image] interface.
func (b *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements the [image.Image] interface.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements the [image.Image] interface.
func (b *PixelBuffer) At(x, y int) color.Color {
	return b.RGBAAt(x, y)
}

// RGBAAt returns the pixel at (x, y).
// Outside the buffer, the result is transparent black.
func (b *PixelBuffer) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(b.Bounds())) {
		return color.RGBA{}
	}
	return b.Pix[y*b.Width+x]
}

// Set implements the draw.Image interface.
// Points outside the buffer are ignored.
func (b *PixelBuffer) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(b.Bounds())) {
		return
	}
	b.Pix[y*b.Width+x] = color.RGBAModel.Convert(c).(color.RGBA)
}

// Fill sets all pixels to c.
func (b *PixelBuffer) Fill(c color.RGBA) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}
