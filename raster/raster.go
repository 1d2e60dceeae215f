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

// Package raster converts vector paths into anti-aliased pixel coverage.
//
// Coverage is reported row by row through a callback, so that callers can
// composite directly into whatever pixel format they use.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// EmitFunc receives the coverage values of one row of pixels, starting at
// pixel xMin. Coverage ranges from 0 (outside) to 1 (inside). The slice is
// only valid during the call.
type EmitFunc func(y, xMin int, coverage []float32)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasterizer computes the fraction of each pixel covered by a filled or
// stroked path. Create one instance and reuse it; internal buffers grow as
// needed but never shrink.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// CTM transforms from user space to device space. Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds output to this device-coordinate rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness controls curve approximation accuracy in device pixels.
	// Must be positive.
	Flatness float64

	// Width sets stroke thickness in user-space units.
	Width float64

	// Cap sets the style for stroke endpoints.
	Cap graphics.LineCapStyle

	// Join sets the style for stroke corners.
	Join graphics.LineJoinStyle

	// MiterLimit caps miter join length. Must be at least 1.0.
	MiterLimit float64

	// smallPathThreshold is the bounding box area (in pixels) below which
	// coverage is accumulated in a 2D buffer. Larger paths are processed
	// one scanline at a time using an active edge list.
	smallPathThreshold int

	cover     []float32 // cover change per pixel; reused as output
	area      []float32 // area within pixel
	edges     []edge
	activeIdx []int  // indices of active edges
	rowUsed   []bool // per-scanline flag for the 2D buffer

	// stroke outlines, all polygons contiguous
	outline        []vec.Vec2
	outlineOffsets []int

	// flattened subpaths for stroking
	segs             []strokeSegment
	segsOffsets      []int
	subpathClosed    []bool
	degeneratePoints []vec.Vec2

	// device space bounding box of the collected edges
	bboxEmpty          bool
	bboxXMin, bboxXMax float64
	bboxYMin, bboxYMax float64
}

// NewRasterizer returns a Rasterizer for the given clip rectangle, with
// the PDF default values for all other parameters.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle,
// keeping the capacity of the internal buffers.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.smallPathThreshold = smallPathThreshold
}

// FillNonZero fills the path using the nonzero winding rule.
func (r *Rasterizer) FillNonZero(p *path.Data, emit EmitFunc) {
	r.resetEdges()
	var current, subpathStart vec.Vec2
	r.walk(p, func(cmd path.Command, a, b vec.Vec2) {
		switch cmd {
		case path.CmdMoveTo:
			r.closeFill(current, subpathStart)
			current, subpathStart = b, b
		case path.CmdLineTo:
			r.addEdge(a, b)
			current = b
		case path.CmdClose:
			r.closeFill(current, subpathStart)
			current = subpathStart
		}
	})
	r.closeFill(current, subpathStart)
	r.rasterizeEdges(emit)
}

// closeFill adds the implicit closing edge of a filled subpath.
func (r *Rasterizer) closeFill(current, start vec.Vec2) {
	if current != start {
		r.addEdge(current, start)
	}
}

// walk visits the path with all curves flattened into lines.
// For MoveTo, b is the new point. For LineTo, the line runs from a to b.
// For Close, a is the current point and b the start of the subpath.
func (r *Rasterizer) walk(p *path.Data, visit func(cmd path.Command, a, b vec.Vec2)) {
	var current, subpathStart vec.Vec2
	lineTo := func(from, to vec.Vec2) {
		visit(path.CmdLineTo, from, to)
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			current = p.Coords[k]
			subpathStart = current
			visit(path.CmdMoveTo, current, current)
			k++
		case path.CmdLineTo:
			lineTo(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], lineTo)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], lineTo)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			visit(path.CmdClose, current, subpathStart)
			current = subpathStart
		}
	}
}

// transformLinear applies the 2×2 linear part of the CTM to a vector.
func (r *Rasterizer) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments.
// The segment count is chosen so that the deviation in device space stays
// below Flatness.
func (r *Rasterizer) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	// e = (P0 - 2*P1 + P2) / 4 bounds the distance between curve and chord
	e := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))

	n := 1
	if dev := e.Length(); dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments, with
// the segment count from Wang's formula.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

func (r *Rasterizer) resetEdges() {
	r.edges = r.edges[:0]
	r.bboxEmpty = true
}

// addEdge transforms a user space line segment to device space and adds
// it to the edge list. Horizontal edges do not contribute to coverage and
// are dropped.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	x0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	y0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	x1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	y1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := y1 - y0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	if r.bboxEmpty {
		r.bboxXMin, r.bboxXMax = min(x0, x1), max(x0, x1)
		r.bboxYMin, r.bboxYMax = min(y0, y1), max(y0, y1)
		r.bboxEmpty = false
	} else {
		r.bboxXMin = min(r.bboxXMin, x0, x1)
		r.bboxXMax = max(r.bboxXMax, x0, x1)
		r.bboxYMin = min(r.bboxYMin, y0, y1)
		r.bboxYMax = max(r.bboxYMax, y0, y1)
	}
}

// rasterizeEdges computes the coverage of the collected edges, using the
// nonzero winding rule.
func (r *Rasterizer) rasterizeEdges(emit EmitFunc) {
	if len(r.edges) == 0 {
		return
	}

	xMin := max(int(math.Floor(r.bboxXMin)), int(r.Clip.LLx))
	xMax := min(int(math.Floor(r.bboxXMax))+1, int(r.Clip.URx))
	yMin := max(int(math.Floor(r.bboxYMin)), int(r.Clip.LLy))
	yMax := min(int(math.Floor(r.bboxYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return
	}

	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmall(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLarge(xMin, xMax, yMin, yMax, emit)
	}
}

// Coverage accumulation
//
// For every pixel two values are collected:
//
//	cover: signed vertical extent of the edges crossing the pixel
//	area:  the same, weighted by the distance of the crossing from the
//	       right pixel boundary
//
// Integrating from left to right, the coverage of pixel i is the running
// sum of cover over all pixels to its left, plus area[i]. This is the
// signed area of the path inside the pixel.

// accumulateEdge adds the contribution of one edge within scanline y.
// The buffers are indexed by x - bboxXMin. Contributions left of the
// buffer are folded into the first pixel.
func accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	if pixRight < bboxXMin {
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		addCrossing(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// the edge crosses several pixel columns: split it at column boundaries
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		ya := e.y0 + dydx*(float64(pix)-e.x0)
		yb := e.y0 + dydx*(float64(pix+1)-e.x0)
		segTop := max(min(ya, yb), yTop)
		segBot := min(max(ya, yb), yBot)
		if segBot <= segTop {
			continue
		}
		addCrossing(e, segTop, segBot, sign, pix, cover, area, bboxXMin, bboxXMax)
	}
}

// addCrossing records an edge piece between yTop and yBot which lies
// within the pixel column pix.
func addCrossing(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	c := sign * float32(yBot-yTop)
	switch {
	case pix < bboxXMin:
		cover[0] += c
		area[0] += c
	case pix < bboxXMax:
		xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
		xFrac := xMid - float64(pix)
		i := pix - bboxXMin
		cover[i] += c
		area[i] += c * float32(1-xFrac)
	}
}

// integrateNonZero turns accumulated cover and area values into coverage,
// in place.
func integrateNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		if raw < 0 {
			raw = -raw
		}
		cover[i] = min(raw, 1)
	}
}

// trimZeros returns the non-zero part of a coverage row and its offset.
func trimZeros(coverage []float32) ([]float32, int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	for hi > lo && coverage[hi-1] == 0 {
		hi--
	}
	if lo == hi {
		return nil, 0
	}
	return coverage[lo:hi], lo
}

// fillSmall rasterizes using a 2D buffer covering the bounding box.
func (r *Rasterizer) fillSmall(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)
	r.rowUsed = slices.Grow(r.rowUsed[:0], height)[:height]
	clear(r.rowUsed)

	for i := range r.edges {
		e := &r.edges[i]
		top := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		bot := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := top; y < bot; y++ {
			row := y - yMin
			off := row * width
			accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			r.rowUsed[row] = true
		}
	}

	for row := range height {
		if !r.rowUsed[row] {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		integrateNonZero(coverage, r.area[off:off+width])
		if trimmed, i := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+i, trimmed)
		}
	}
}

// fillLarge rasterizes one scanline at a time, keeping a list of the
// edges which intersect the current scanline.
func (r *Rasterizer) fillLarge(xMin, xMax, yMin, yMax int, emit EmitFunc) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yf+1 {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		used := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				// finished: swap-remove from the active list
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			used = true
			i++
		}
		if !used {
			continue
		}

		integrateNonZero(r.cover, r.area)
		if trimmed, i := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+i, trimmed)
		}
	}
}

// Default values for rasterizer parameters.
const (
	// defaultFlatness is the curve flattening tolerance in device pixels.
	// 0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF/PostScript. Joins with an interior
	// angle below about 11.5 degrees are beveled.
	defaultMiterLimit = 10.0
)

// Numerical tolerances.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the default bounding box area (in pixels)
	// below which the 2D buffer is used.
	smallPathThreshold = 65536

	// zeroLengthThreshold is the minimum length of a stroke segment.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold detects nearly collinear segments, where no
	// join is needed.
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself.
	// cos(179.43°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
