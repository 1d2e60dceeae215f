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

package sketch

import (
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Data returns the path in device coordinates, for a drawing area of
// w×h pixels. The y-axis is flipped so that the top of the sketch is
// at device y = 0.
func (p *Path) Data(w, h float64) *path.Data {
	d := &path.Data{}
	d = d.MoveTo(toDevice(p.start, w, h))
	for i := range p.segs {
		d = appendSegment(d, &p.segs[i], w, h)
	}
	if p.closed {
		d = d.Close()
	}
	return d
}

// Partial returns the part of the path between the arc-length fractions
// start and end, in device coordinates (see [Path.Data]).
// The fractions are clamped to [0, 1]. If end <= start, or if the path
// has zero length, the result is empty.
func (p *Path) Partial(start, end, w, h float64) *path.Data {
	start = max(0, min(1, start))
	end = max(0, min(1, end))
	if !(end > start) || !(p.length > 0) {
		return &path.Data{}
	}
	if start == 0 && end == 1 {
		return p.Data(w, h)
	}

	s0 := start * p.length
	s1 := end * p.length

	d := &path.Data{}
	pos := 0.0 // arc length at the start of the current segment
	started := false
	for i := range p.segs {
		seg := &p.segs[i]
		segStart, segEnd := pos, pos+seg.length
		pos = segEnd
		if segEnd <= s0 || seg.length == 0 {
			continue
		}
		if segStart >= s1 {
			break
		}

		t0 := 0.0
		if s0 > segStart {
			t0 = seg.paramAt(s0 - segStart)
		}
		t1 := 1.0
		if s1 < segEnd {
			t1 = seg.paramAt(s1 - segStart)
		}
		piece := seg.subsegment(t0, t1)
		if !started {
			d = d.MoveTo(toDevice(piece.p[0], w, h))
			started = true
		}
		d = appendSegment(d, &piece, w, h)
	}
	return d
}

func appendSegment(d *path.Data, seg *segment, w, h float64) *path.Data {
	switch seg.cmd {
	case path.CmdLineTo:
		d = d.LineTo(toDevice(seg.p[1], w, h))
	case path.CmdQuadTo:
		d = d.QuadTo(toDevice(seg.p[1], w, h), toDevice(seg.p[2], w, h))
	case path.CmdCubeTo:
		d = d.CubeTo(toDevice(seg.p[1], w, h), toDevice(seg.p[2], w, h), toDevice(seg.p[3], w, h))
	}
	return d
}

// toDevice maps normalized sketch coordinates onto a w×h pixel area.
func toDevice(pt vec.Vec2, w, h float64) vec.Vec2 {
	return vec.Vec2{X: pt.X * w, Y: (1 - pt.Y) * h}
}

// end returns the end point of the segment.
func (seg *segment) end() vec.Vec2 {
	switch seg.cmd {
	case path.CmdQuadTo:
		return seg.p[2]
	case path.CmdCubeTo:
		return seg.p[3]
	default:
		return seg.p[1]
	}
}

// arcLength computes the length of the segment.
// Curves use adaptive subdivision: the arc length lies between the chord
// and the length of the control polygon, and the two converge as the
// curve is split.
func (seg *segment) arcLength() float64 {
	return seg.arcLengthRec(0)
}

func (seg *segment) arcLengthRec(depth int) float64 {
	if seg.cmd == path.CmdLineTo {
		return seg.p[1].Sub(seg.p[0]).Length()
	}

	n := 2
	if seg.cmd == path.CmdCubeTo {
		n = 3
	}
	chord := seg.p[n].Sub(seg.p[0]).Length()
	polygon := 0.0
	for i := range n {
		polygon += seg.p[i+1].Sub(seg.p[i]).Length()
	}

	if polygon-chord <= arcLengthAccuracy || depth >= maxSubdivisionDepth {
		return (chord + polygon) / 2
	}
	a, b := seg.split(0.5)
	return a.arcLengthRec(depth+1) + b.arcLengthRec(depth+1)
}

// split divides the segment at parameter t, using de Casteljau's algorithm.
func (seg *segment) split(t float64) (segment, segment) {
	a := segment{cmd: seg.cmd}
	b := segment{cmd: seg.cmd}
	switch seg.cmd {
	case path.CmdLineTo:
		m := lerp(seg.p[0], seg.p[1], t)
		a.p[0], a.p[1] = seg.p[0], m
		b.p[0], b.p[1] = m, seg.p[1]
	case path.CmdQuadTo:
		p01 := lerp(seg.p[0], seg.p[1], t)
		p12 := lerp(seg.p[1], seg.p[2], t)
		m := lerp(p01, p12, t)
		a.p[0], a.p[1], a.p[2] = seg.p[0], p01, m
		b.p[0], b.p[1], b.p[2] = m, p12, seg.p[2]
	case path.CmdCubeTo:
		p01 := lerp(seg.p[0], seg.p[1], t)
		p12 := lerp(seg.p[1], seg.p[2], t)
		p23 := lerp(seg.p[2], seg.p[3], t)
		p012 := lerp(p01, p12, t)
		p123 := lerp(p12, p23, t)
		m := lerp(p012, p123, t)
		a.p = [4]vec.Vec2{seg.p[0], p01, p012, m}
		b.p = [4]vec.Vec2{m, p123, p23, seg.p[3]}
	}
	return a, b
}

// subsegment returns the part of the segment between the parameters
// t0 and t1, where 0 <= t0 < t1 <= 1.
func (seg *segment) subsegment(t0, t1 float64) segment {
	res := *seg
	if t1 < 1 {
		res, _ = res.split(t1)
	}
	if t0 > 0 {
		_, res = res.split(t0 / t1)
	}
	return res
}

// paramAt returns the curve parameter at which the arc length, measured
// from the start of the segment, equals s.
func (seg *segment) paramAt(s float64) float64 {
	if s <= 0 {
		return 0
	}
	if s >= seg.length {
		return 1
	}
	if seg.cmd == path.CmdLineTo {
		return s / seg.length
	}

	// bisection on the arc length of the initial piece [0, t]
	lo, hi := 0.0, 1.0
	for range maxBisectionSteps {
		mid := (lo + hi) / 2
		head, _ := seg.split(mid)
		l := head.arcLength()
		if l < s {
			lo = mid
		} else {
			hi = mid
		}
		if d := l - s; d < arcLengthAccuracy && d > -arcLengthAccuracy {
			return mid
		}
	}
	return (lo + hi) / 2
}

func lerp(a, b vec.Vec2, t float64) vec.Vec2 {
	return a.Add(b.Sub(a).Mul(t))
}

const (
	// arcLengthAccuracy is the tolerance for arc length computations, in
	// normalized sketch units. For a 1000 pixel drawing area this is a
	// tenth of a pixel.
	arcLengthAccuracy = 1e-4

	// maxSubdivisionDepth bounds the recursion of arcLength for
	// degenerate curves.
	maxSubdivisionDepth = 16

	// maxBisectionSteps bounds the search in paramAt.
	maxBisectionSteps = 48
)
