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

// Package effect renders animated sketches into pixel buffers.
//
// An [Effect] draws the paths of a sketch progressively: as the animation
// advances, the paths are traced in order, each with its own color from a
// [Palette]. With motion enabled, only a trailing window of the paths is
// visible, which travels from the start of the first path to the end of
// the last one.
package effect

import (
	"math"
	"sync"

	"golang.org/x/image/draw"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/anim"
)

// Effect renders frames of an animated sketch.
//
// The parsed sketch is cached between frames and replaced when the
// definition changes. An Effect is safe for concurrent use, but frames are
// rendered one at a time.
type Effect struct {
	palette Palette

	mu     sync.Mutex
	def    string         // definition of the cached sketch
	sketch *sketch.Sketch // nil if def cannot be parsed
	surf   surface
}

// Option configures an [Effect] during creation.
type Option func(*options)

type options struct {
	palette Palette
}

// WithPalette sets the colors of the paths.
// The default is [DefaultPalette].
func WithPalette(p Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// New returns a new effect.
func New(opts ...Option) *Effect {
	o := options{palette: DefaultPalette}
	for _, opt := range opts {
		opt(&o)
	}
	if o.palette == nil {
		o.palette = DefaultPalette
	}
	return &Effect{palette: o.palette}
}

// Render draws one frame of the animation on top of the contents of buf.
//
// Progress is the position within the effect, from 0 at the start to 1 at
// the end (see [Position]); values outside this range are clamped. An
// empty definition draws nothing, and so does a definition which cannot
// be parsed. Parse errors are logged, once per definition.
func (e *Effect) Render(buf draw.Image, s Settings, progress float64) {
	if s.Definition == "" {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sk := e.load(s.Definition)
	if sk == nil {
		return
	}

	if !(progress >= 0) {
		progress = 0
	}
	progress = min(progress, 1)
	m := s.Motion()
	adjusted := anim.AdjustProgress(progress, m)
	reqs := anim.Schedule(sk.Paths, adjusted, m)

	Logger().Debug("sketch frame",
		"progress", progress,
		"adjusted", adjusted,
		"paths", len(sk.Paths),
		"visible", countVisible(reqs))

	if len(reqs) == 0 || buf.Bounds().Empty() {
		return
	}

	e.surf.paths = sk.Paths
	e.surf.palette = e.palette
	e.surf.width = float64(max(s.Thickness, 1))
	release := e.surf.acquire(buf)
	defer release()

	anim.Dispatch(reqs, &e.surf)
}

// load returns the sketch for the given definition, parsing it if it
// differs from the cached one. The result is nil if the definition cannot
// be parsed.
func (e *Effect) load(def string) *sketch.Sketch {
	if def == e.def {
		return e.sketch
	}

	e.def = def
	sk, err := sketch.Parse(def)
	if err != nil {
		Logger().Warn("cannot parse sketch definition", "error", err)
		e.sketch = nil
		return nil
	}
	Logger().Debug("sketch loaded", "paths", len(sk.Paths), "length", sk.Length())
	e.sketch = sk
	return sk
}

func countVisible(reqs []anim.Request) int {
	n := 0
	for _, req := range reqs {
		if req.Kind != anim.Skip {
			n++
		}
	}
	return n
}

// Position returns the position of a frame within an effect which covers
// the frames start to end, inclusive. The result is 0 for the first frame
// and 1 for the last one, and is clamped to this range. If the effect
// lasts a single frame, the result is 0.5.
func Position(frame, start, end int) float64 {
	p := anim.Interpolate(float64(frame), float64(start), 0, float64(end), 1)
	if math.IsNaN(p) {
		return 0
	}
	return max(0, min(1, p))
}
