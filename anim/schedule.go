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

package anim

import "fmt"

// Measurer is implemented by paths which know their arc length.
// The length must be finite and non-negative.
type Measurer interface {
	Length() float64
}

// Kind describes how a path is drawn in the current frame.
type Kind int

// These are the possible values of [Kind].
const (
	Skip     Kind = iota // nothing of the path is visible
	Entire               // the whole path is visible
	Partial              // the path is visible from its start up to End
	Windowed             // the path is visible between Start and End
)

func (k Kind) String() string {
	switch k {
	case Skip:
		return "skip"
	case Entire:
		return "entire"
	case Partial:
		return "partial"
	case Windowed:
		return "windowed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Request describes the visible part of one path.
//
// Start and End are path-local fractions of the arc length, 0 being the
// start of the path and 1 its end. Both are always in [0, 1]. For Partial
// requests Start is 0, for Entire requests the fractions are 0 and 1, and
// for Skip requests both are 0.
type Request struct {
	Index int // position of the path in the sketch
	Kind  Kind
	Start float64
	End   float64
}

// Schedule computes the visible part of every path for the given adjusted
// progress (see [AdjustProgress]).
//
// Paths are revealed in slice order, each taking a share of the animation
// proportional to its length. The result has one request per path, in the
// same order as paths. If the total length of all paths is zero, the
// result is empty.
//
// Schedule has no state; calling it twice with the same arguments gives
// the same result.
func Schedule[P Measurer](paths []P, adjusted float64, m Motion) []Request {
	totalLength := 0.0
	for _, p := range paths {
		totalLength += p.Length()
	}
	if !(totalLength > 0) {
		return nil
	}

	reqs := make([]Request, 0, len(paths))
	cumulativeLength := 0.0
	for i, p := range paths {
		pathLength := p.Length()
		startShare := cumulativeLength / totalLength
		endShare := (cumulativeLength + pathLength) / totalLength
		cumulativeLength += pathLength

		req := Request{Index: i}
		switch {
		case !(pathLength > 0):
			// zero-length paths have no arc length to reveal
		case !m.Enabled && endShare <= adjusted:
			req.Kind = Entire
			req.End = 1
		default:
			span := endShare - startShare
			through := clamp01((adjusted - startShare) / span)
			var from float64
			kind := Partial
			if m.Enabled {
				from = clamp01((adjusted - m.Window - startShare) / span)
				kind = Windowed
			}
			if through > 0 && through > from {
				req.Kind = kind
				req.Start = from
				req.End = through
			}
		}
		reqs = append(reqs, req)
	}
	return reqs
}

// Drawer renders parts of paths.
// The path is identified by its index in the sketch.
type Drawer interface {
	// DrawEntire draws the complete path.
	DrawEntire(i int)

	// DrawPartial draws the part of the path between the arc-length
	// fractions start and end, where 0 <= start < end <= 1.
	DrawPartial(i int, start, end float64)
}

// Dispatch forwards the requests to d, in order.
// Skip requests are not forwarded.
func Dispatch(reqs []Request, d Drawer) {
	for _, req := range reqs {
		switch req.Kind {
		case Entire:
			d.DrawEntire(req.Index)
		case Partial, Windowed:
			d.DrawPartial(req.Index, req.Start, req.End)
		}
	}
}

// clamp01 restricts x to the interval [0, 1].
func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
