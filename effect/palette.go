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

import "image/color"

// Palette assigns a stroke color to every path of a sketch.
type Palette interface {
	// Color returns the color of the path with index i.
	Color(i int) color.RGBA
}

// Cycle is a palette which repeats a fixed list of colors.
// The colors are premultiplied, as for [color.RGBA].
type Cycle []color.RGBA

// Color implements the [Palette] interface.
// An empty Cycle paints everything white.
func (c Cycle) Color(i int) color.RGBA {
	n := len(c)
	if n == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c[(i%n+n)%n]
}

// DefaultPalette draws the paths in red, green and blue, in turn.
var DefaultPalette = Cycle{
	{R: 255, A: 255},
	{G: 255, A: 255},
	{B: 255, A: 255},
}
