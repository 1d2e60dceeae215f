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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened line segment in user space.
type strokeSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent, A→B
	N    vec.Vec2 // unit normal, 90° CCW from T
}

// Stroke renders the outline of the path using Width, Cap, Join and
// MiterLimit.
//
// The outlines of all subpaths are filled together with the nonzero
// rule, so that overlapping parts of the stroke are painted only once.
func (r *Rasterizer) Stroke(p *path.Data, emit EmitFunc) {
	r.flattenPath(p)
	if len(r.segsOffsets) == 0 && len(r.degeneratePoints) == 0 {
		return
	}

	r.outline = r.outline[:0]
	r.outlineOffsets = r.outlineOffsets[:0]

	// subpaths without orientation are only visible with round caps
	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.degeneratePoints {
			start := len(r.outline)
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true)
			r.endPolygon(start)
		}
	}

	for i := range r.segsOffsets {
		r.outlineSubpath(r.subpathSegments(i), r.subpathClosed[i])
	}

	r.resetEdges()
	for i, start := range r.outlineOffsets {
		end := len(r.outline)
		if i+1 < len(r.outlineOffsets) {
			end = r.outlineOffsets[i+1]
		}
		poly := r.outline[start:end]
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}
	r.rasterizeEdges(emit)
}

// subpathSegments returns the flattened segments of subpath i.
func (r *Rasterizer) subpathSegments(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[r.segsOffsets[i]:end]
}

// flattenPath splits the path into subpaths of line segments. Subpaths
// which consist of drawing commands but have no extent are collected in
// degeneratePoints.
func (r *Rasterizer) flattenPath(p *path.Data) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]

	var subpathStart vec.Vec2
	first := 0     // index into r.segs where the current subpath starts
	open := false  // a subpath has been started
	drawn := false // the current subpath has a drawing command
	endSubpath := func(closed bool) {
		switch {
		case len(r.segs) > first:
			r.segsOffsets = append(r.segsOffsets, first)
			r.subpathClosed = append(r.subpathClosed, closed)
		case drawn || closed:
			r.degeneratePoints = append(r.degeneratePoints, subpathStart)
		}
		first = len(r.segs)
		drawn = false
	}

	r.walk(p, func(cmd path.Command, a, b vec.Vec2) {
		switch cmd {
		case path.CmdMoveTo:
			if open {
				endSubpath(false)
			}
			subpathStart = b
			open = true
		case path.CmdLineTo:
			if open {
				drawn = true
				r.addStrokeSegment(a, b)
			}
		case path.CmdClose:
			if open {
				if a != b {
					r.addStrokeSegment(a, b)
				}
				endSubpath(true)
				open = false
			}
		}
	})
	if open {
		endSubpath(false)
	}
}

// addStrokeSegment appends a line segment, skipping segments of zero length.
func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / l)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// turn returns the sine of the angle from direction t1 to t2.
func turn(t1, t2 vec.Vec2) float64 {
	return t1.X*t2.Y - t1.Y*t2.X
}

// outlineSubpath appends the stroke outline of one subpath to r.outline.
//
// An open subpath gives a single polygon: the start cap, the +N side in
// path direction, the end cap and the -N side backwards. A closed subpath
// gives two rings, one for each side. Joins are added on the outer side
// of each corner; on the inner side the two offset lines are cut at their
// intersection.
func (r *Rasterizer) outlineSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]

	if closed {
		start := len(r.outline)
		for i := range segs {
			next := first
			if i < len(segs)-1 {
				next = &segs[i+1]
			}
			r.cornerForward(&segs[i], next, d)
		}
		r.endPolygon(start)

		start = len(r.outline)
		r.cornerBackward(last, first, d)
		for i := len(segs) - 1; i > 0; i-- {
			r.cornerBackward(&segs[i-1], &segs[i], d)
		}
		r.endPolygon(start)
		return
	}

	start := len(r.outline)
	r.addCap(first.A, first.T.Mul(-1), d)
	r.outline = append(r.outline, first.A.Add(first.N.Mul(d)))
	for i := range len(segs) - 1 {
		r.cornerForward(&segs[i], &segs[i+1], d)
	}
	r.outline = append(r.outline, last.B.Add(last.N.Mul(d)))

	r.addCap(last.B, last.T, d)
	r.outline = append(r.outline, last.B.Sub(last.N.Mul(d)))
	for i := len(segs) - 1; i > 0; i-- {
		r.cornerBackward(&segs[i-1], &segs[i], d)
	}
	r.outline = append(r.outline, first.A.Sub(first.N.Mul(d)))
	r.endPolygon(start)
}

// endPolygon finishes the polygon which starts at r.outline[start].
// Polygons with fewer than three points enclose no area and are dropped.
func (r *Rasterizer) endPolygon(start int) {
	if len(r.outline)-start < 3 {
		r.outline = r.outline[:start]
		return
	}
	r.outlineOffsets = append(r.outlineOffsets, start)
}

// cornerForward adds the +N side of the corner where seg meets next,
// ending on the offset line of next.
func (r *Rasterizer) cornerForward(seg, next *strokeSegment, d float64) {
	P := seg.B
	a := P.Add(seg.N.Mul(d))
	b := next.A.Add(next.N.Mul(d))
	switch sin := turn(seg.T, next.T); {
	case math.Abs(sin) < collinearityThreshold && seg.T.Dot(next.T) > 0:
		r.outline = append(r.outline, a, b)
	case sin > 0:
		r.addInnerCorner(P, seg, next, d, true, a, b)
	default:
		r.outline = append(r.outline, a)
		r.addJoin(P, seg.T, next.T, d, true)
		r.outline = append(r.outline, b)
	}
}

// cornerBackward adds the -N side of the corner where prev meets seg,
// walking the path backwards. It ends on the offset line of prev.
func (r *Rasterizer) cornerBackward(prev, seg *strokeSegment, d float64) {
	P := seg.A
	a := P.Sub(seg.N.Mul(d))
	b := prev.B.Sub(prev.N.Mul(d))
	switch sin := turn(prev.T, seg.T); {
	case math.Abs(sin) < collinearityThreshold && prev.T.Dot(seg.T) > 0:
		r.outline = append(r.outline, a, b)
	case sin > 0:
		r.outline = append(r.outline, a)
		r.addJoin(P, prev.T, seg.T, d, false)
		r.outline = append(r.outline, b)
	default:
		r.addInnerCorner(P, prev, seg, d, false, a, b)
	}
}

// addCap adds a line cap at P. T is the outward tangent direction and d
// is half the stroke width.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.outline = append(r.outline, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		// half circle from +N through T to -N
		r.addArc(P, d, N, -math.Pi, true)
	}
	// butt caps need no extra points
}

// innerIntersection returns the point where the two offset lines on the
// inner side of a corner meet. ok is false if the tangents are nearly
// collinear, or if the intersection lies further than limit from P along
// the segments.
func innerIntersection(P, T1, T2 vec.Vec2, d, limit float64, positiveSide bool) (pt vec.Vec2, ok bool) {
	cos := T1.Dot(T2)
	if cos > 1-1e-9 || cos < -1+1e-9 {
		return vec.Vec2{}, false
	}
	cosHalf := math.Sqrt((1 + cos) / 2)
	tanHalf := math.Sqrt((1 - cos) / (1 + cos))
	if d*tanHalf > limit {
		return vec.Vec2{}, false
	}

	dir := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
	if !positiveSide {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (l * cosHalf))), true
}

// addInnerCorner handles the inner side of the corner at P between the
// segments s1 and s2. It adds the intersection of the two offset lines if
// this lies within both segments. Otherwise the outline runs from the
// offset point a through P to the offset point b.
func (r *Rasterizer) addInnerCorner(P vec.Vec2, s1, s2 *strokeSegment, d float64, positiveSide bool, a, b vec.Vec2) {
	limit := min(s1.B.Sub(s1.A).Length(), s2.B.Sub(s2.A).Length())
	if pt, ok := innerIntersection(P, s1.T, s2.T, d, limit, positiveSide); ok {
		r.outline = append(r.outline, pt)
		return
	}
	r.outline = append(r.outline, a, P, b)
}

// addJoin adds the outer part of a line join at P, where the tangent
// changes from T1 to T2.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, positiveSide bool) {
	cos := T1.Dot(T2)
	sin := turn(T1, T2)

	// the path doubles back on itself: the cap goes around the tip
	if cos < cuspCosineThreshold {
		r.addCap(P, T1, d)
		return
	}
	if sin > -collinearityThreshold && sin < collinearityThreshold {
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// miter length / line width = 1 / cos(θ/2), θ the angle between tangents
		cosHalf := math.Sqrt((1 + cos) / 2)
		const miterEpsilon = 1e-10
		if cosHalf > 0 && 1/cosHalf <= r.MiterLimit+miterEpsilon {
			bisector := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
			if !positiveSide {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > zeroLengthThreshold {
				r.outline = append(r.outline, P.Add(bisector.Mul(d/(l*cosHalf))))
			}
		}
		// beyond the miter limit the join is beveled

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cos)))
		if positiveSide {
			// forward pass: from +N of T1 to +N of T2
			if sin < 0 {
				angle = -angle
			}
			r.addArc(P, d, vec.Vec2{X: -T1.Y, Y: T1.X}, angle, false)
		} else {
			// backward pass: from -N of T2 to -N of T1
			if sin > 0 {
				angle = -angle
			}
			r.addArc(P, d, vec.Vec2{X: T2.Y, Y: -T2.X}, angle, false)
		}
	}
	// bevel joins need no extra points
}

// addArc appends the points of a circular arc around center, starting in
// direction startDir (a unit vector) and sweeping by sweep radians (positive
// is counter-clockwise). The start point is only added if includeStart
// is set.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	rotate := func(angle float64) vec.Vec2 {
		c, s := math.Cos(angle), math.Sin(angle)
		return vec.Vec2{
			X: startDir.X*c - startDir.Y*s,
			Y: startDir.X*s + startDir.Y*c,
		}
	}

	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())
	if devRadius < r.Flatness {
		if includeStart {
			r.outline = append(r.outline, center.Add(startDir.Mul(radius)))
		}
		r.outline = append(r.outline, center.Add(rotate(sweep).Mul(radius)))
		return
	}

	// A chord spanning the angle θ deviates from the circle by
	// r(1 - cos(θ/2)). Choose θ so that this equals Flatness.
	step := 2 * math.Acos(1-r.Flatness/devRadius)
	if !(step > 0) {
		step = math.Pi / 4
	}
	n := max(int(math.Ceil(math.Abs(sweep)/step)), 1)

	i0 := 1
	if includeStart {
		i0 = 0
	}
	for i := i0; i <= n; i++ {
		angle := sweep * float64(i) / float64(n)
		r.outline = append(r.outline, center.Add(rotate(angle).Mul(radius)))
	}
}
