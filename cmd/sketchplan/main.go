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

// Command sketchplan writes the reveal schedule of an animated sketch as
// JSON. For every frame it lists which part of each path is visible.
package main

import (
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/anim"
	"seehuhn.de/go/sketch/effect"
)

func main() {
	def := flag.String("def", sketch.DefaultDefinition, "sketch definition")
	frames := flag.Int("frames", 11, "number of frames")
	motion := flag.Bool("motion", false, "show a trailing window instead of a growing sketch")
	window := flag.Int("window", 100, "length of the trailing window, in percent")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s := effect.Settings{
		Definition:       *def,
		MotionEnabled:    *motion,
		Thickness:        1,
		MotionPercentage: max(0, min(100, *window)),
	}
	if err := writePlan(os.Stdout, s, max(*frames, 1)); err != nil {
		logger.Error("sketchplan failed", "error", err)
		os.Exit(1)
	}
}

type jsonPlan struct {
	Paths  []jsonPath  `json:"paths"`
	Motion bool        `json:"motion"`
	Window float64     `json:"window,omitempty"`
	Frames []jsonFrame `json:"frames"`
}

type jsonPath struct {
	Definition string  `json:"definition"`
	Length     float64 `json:"length"`
}

type jsonFrame struct {
	Frame    int           `json:"frame"`
	Progress float64       `json:"progress"`
	Adjusted float64       `json:"adjusted"`
	Requests []jsonRequest `json:"requests"`
}

type jsonRequest struct {
	Path  int     `json:"path"`
	Kind  string  `json:"kind"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func writePlan(w io.Writer, s effect.Settings, frames int) error {
	sk, err := sketch.Parse(s.Definition)
	if err != nil {
		return err
	}
	m := s.Motion()

	plan := jsonPlan{
		Motion: m.Enabled,
		Paths:  make([]jsonPath, len(sk.Paths)),
	}
	if m.Enabled {
		plan.Window = m.Window
	}
	for i, p := range sk.Paths {
		plan.Paths[i] = jsonPath{Definition: p.String(), Length: p.Length()}
	}

	for i := range frames {
		progress := effect.Position(i, 0, frames-1)
		adjusted := anim.AdjustProgress(progress, m)
		frame := jsonFrame{
			Frame:    i,
			Progress: progress,
			Adjusted: adjusted,
			Requests: []jsonRequest{},
		}
		for _, req := range anim.Schedule(sk.Paths, adjusted, m) {
			if req.Kind == anim.Skip {
				continue
			}
			frame.Requests = append(frame.Requests, jsonRequest{
				Path:  req.Index,
				Kind:  req.Kind.String(),
				Start: req.Start,
				End:   req.End,
			})
		}
		plan.Frames = append(plan.Frames, frame)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}
