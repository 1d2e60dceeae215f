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

// Package sketch implements user-authored vector sketches: ordered lists of
// paths made from lines and Bézier curves, stored as short text definitions.
//
// A sketch definition lists paths separated by "|". Each path is a list of
// items separated by ";". The first item is the start point "x,y", the
// following items are
//
//	Lx,y                  line to (x,y)
//	Qcx,cy,x,y            quadratic Bézier curve
//	Cc1x,c1y,c2x,c2y,x,y  cubic Bézier curve
//	c                     close the path
//
// Coordinates are normalized: (0,0) is the bottom left corner of the
// drawing area and (1,1) is the top right corner.
package sketch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// DefaultDefinition is the sketch shown by a newly created effect:
// a square outline followed by a wave through its middle.
const DefaultDefinition = "0.1,0.1;L0.9,0.1;L0.9,0.9;L0.1,0.9;c|0.2,0.5;C0.35,0.8,0.65,0.2,0.8,0.5"

// Sketch is an ordered list of paths.
// Paths are drawn, and revealed, in slice order.
// A Sketch must not be modified after it has been created.
type Sketch struct {
	Paths []*Path
}

// Path is one continuous stroke, made of line and curve segments.
type Path struct {
	start vec.Vec2
	segs  []segment

	closed     bool // the definition ends with "c"
	closingSeg bool // the last segment was added to close the path

	length float64
}

// segment is a line, quadratic or cubic Bézier segment in normalized
// coordinates. p[0] is the start point; the number of further points
// depends on cmd.
type segment struct {
	cmd    path.Command // path.CmdLineTo, path.CmdQuadTo or path.CmdCubeTo
	p      [4]vec.Vec2
	length float64
}

// Length returns the total arc length of all paths.
func (s *Sketch) Length() float64 {
	total := 0.0
	for _, p := range s.Paths {
		total += p.Length()
	}
	return total
}

// String returns the definition of the sketch.
// The result can be read back using [Parse].
func (s *Sketch) String() string {
	parts := make([]string, len(s.Paths))
	for i, p := range s.Paths {
		parts[i] = p.String()
	}
	return strings.Join(parts, "|")
}

// Length returns the arc length of the path, in normalized units.
// The result is finite and non-negative.
func (p *Path) Length() float64 {
	return p.length
}

// Closed reports whether the path ends where it started.
func (p *Path) Closed() bool {
	return p.closed
}

// String returns the definition of the path.
func (p *Path) String() string {
	var b strings.Builder
	writePoint(&b, p.start)
	segs := p.segs
	if p.closingSeg {
		segs = segs[:len(segs)-1]
	}
	for _, seg := range segs {
		b.WriteByte(';')
		switch seg.cmd {
		case path.CmdLineTo:
			b.WriteByte('L')
			writePoint(&b, seg.p[1])
		case path.CmdQuadTo:
			b.WriteByte('Q')
			writePoint(&b, seg.p[1])
			b.WriteByte(',')
			writePoint(&b, seg.p[2])
		case path.CmdCubeTo:
			b.WriteByte('C')
			writePoint(&b, seg.p[1])
			b.WriteByte(',')
			writePoint(&b, seg.p[2])
			b.WriteByte(',')
			writePoint(&b, seg.p[3])
		}
	}
	if p.closed {
		b.WriteString(";c")
	}
	return b.String()
}

func writePoint(b *strings.Builder, pt vec.Vec2) {
	b.WriteString(strconv.FormatFloat(pt.X, 'g', -1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(pt.Y, 'g', -1, 64))
}

// Parse reads a sketch definition.
//
// Surrounding white space is ignored, and so are empty paths. The empty
// definition gives a sketch without paths. Errors are of type
// [*ParseError].
func Parse(def string) (*Sketch, error) {
	s := &Sketch{}
	for i, pathDef := range strings.Split(def, "|") {
		pathDef = strings.TrimSpace(pathDef)
		if pathDef == "" {
			continue
		}
		p, err := parsePath(i, pathDef)
		if err != nil {
			return nil, err
		}
		s.Paths = append(s.Paths, p)
	}
	return s, nil
}

func parsePath(pathIdx int, def string) (*Path, error) {
	items := strings.Split(def, ";")

	fail := func(itemIdx int, err error) (*Path, error) {
		return nil, &ParseError{
			Path: pathIdx,
			Item: itemIdx,
			Text: strings.TrimSpace(items[itemIdx]),
			Err:  err,
		}
	}

	start, err := parsePoints(items[0], 1)
	if err != nil {
		return fail(0, err)
	}

	p := &Path{start: start[0]}
	current := p.start
	for i := 1; i < len(items); i++ {
		item := strings.TrimSpace(items[i])
		if item == "" {
			continue
		}
		if p.closed {
			return fail(i, errAfterClose)
		}

		var seg segment
		switch item[0] {
		case 'L':
			seg.cmd = path.CmdLineTo
			pts, err := parsePoints(item[1:], 1)
			if err != nil {
				return fail(i, err)
			}
			seg.p = [4]vec.Vec2{current, pts[0]}
		case 'Q':
			seg.cmd = path.CmdQuadTo
			pts, err := parsePoints(item[1:], 2)
			if err != nil {
				return fail(i, err)
			}
			seg.p = [4]vec.Vec2{current, pts[0], pts[1]}
		case 'C':
			seg.cmd = path.CmdCubeTo
			pts, err := parsePoints(item[1:], 3)
			if err != nil {
				return fail(i, err)
			}
			seg.p = [4]vec.Vec2{current, pts[0], pts[1], pts[2]}
		case 'c':
			if item != "c" {
				return fail(i, errUnknownItem)
			}
			p.closed = true
			if current != p.start {
				seg.cmd = path.CmdLineTo
				seg.p = [4]vec.Vec2{current, p.start}
				p.closingSeg = true
			} else {
				continue
			}
		default:
			return fail(i, errUnknownItem)
		}

		seg.length = seg.arcLength()
		p.segs = append(p.segs, seg)
		p.length += seg.length
		current = seg.end()
	}
	return p, nil
}

// parsePoints reads n comma-separated coordinate pairs.
func parsePoints(s string, n int) ([]vec.Vec2, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 2*n {
		return nil, fmt.Errorf("%w: want %d coordinates, got %d", errMalformed, 2*n, len(fields))
	}
	coords := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errMalformed, err)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: coordinate %q is not finite", errMalformed, f)
		}
		coords[i] = x
	}
	pts := make([]vec.Vec2, n)
	for i := range pts {
		pts[i] = vec.Vec2{X: coords[2*i], Y: coords[2*i+1]}
	}
	return pts, nil
}

// ParseError describes a problem with a sketch definition.
type ParseError struct {
	Path int    // index of the path within the definition
	Item int    // index of the item within the path
	Text string // the offending item
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sketch: path %d, item %d %q: %v", e.Path, e.Item, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	errMalformed   = errors.New("malformed coordinates")
	errUnknownItem = errors.New("unknown path item")
	errAfterClose  = errors.New("item after close")
)
