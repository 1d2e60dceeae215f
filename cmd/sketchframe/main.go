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

// Command sketchframe renders the frames of an animated sketch to PNG files.
//
// Usage:
//
//	sketchframe [flags]
//
// The sketch definition is given with -def, either directly or as @file.
// Frame i of n is written to <prefix>-<i>.png.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/effect"
)

func main() {
	def := flag.String("def", sketch.DefaultDefinition, "sketch definition, or @file to read it from a file")
	width := flag.Int("w", 100, "buffer width in pixels")
	height := flag.Int("h", 50, "buffer height in pixels")
	frames := flag.Int("frames", 25, "number of frames")
	motion := flag.Bool("motion", false, "show a trailing window instead of a growing sketch")
	window := flag.Int("window", 100, "length of the trailing window, in percent")
	thickness := flag.Int("thickness", 1, "line thickness in pixels")
	scale := flag.Float64("scale", 1, "scale factor for the output images")
	prefix := flag.String("o", "frame", "prefix for the output file names")
	verbose := flag.Bool("v", false, "log per-frame diagnostics")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	effect.SetLogger(logger)

	cfg := &config{
		width:     *width,
		height:    *height,
		frames:    *frames,
		scale:     *scale,
		prefix:    *prefix,
		motion:    *motion,
		window:    *window,
		thickness: *thickness,
	}
	if err := run(cfg, *def, logger); err != nil {
		logger.Error("sketchframe failed", "error", err)
		os.Exit(1)
	}
}

type config struct {
	width, height int
	frames        int
	scale         float64
	prefix        string

	motion    bool
	window    int
	thickness int
}

func run(cfg *config, def string, logger *slog.Logger) error {
	def, err := loadDefinition(def)
	if err != nil {
		return err
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return fmt.Errorf("invalid buffer size %dx%d", cfg.width, cfg.height)
	}
	if cfg.frames < 1 {
		return fmt.Errorf("invalid number of frames %d", cfg.frames)
	}
	if !(cfg.scale > 0) {
		return fmt.Errorf("invalid scale factor %g", cfg.scale)
	}

	motion := "0"
	if cfg.motion {
		motion = "1"
	}
	settings, err := effect.ParseSettings(map[string]string{
		effect.KeyDefinition:       def,
		effect.KeyMotionEnabled:    motion,
		effect.KeyThickness:        strconv.Itoa(cfg.thickness),
		effect.KeyMotionPercentage: strconv.Itoa(cfg.window),
	})
	if err != nil {
		return err
	}
	if _, err := sketch.Parse(settings.Definition); err != nil {
		return err
	}

	e := effect.New()
	buf := effect.NewPixelBuffer(cfg.width, cfg.height)
	for i := range cfg.frames {
		buf.Fill(color.RGBA{A: 255})
		progress := effect.Position(i, 0, cfg.frames-1)
		e.Render(buf, settings, progress)

		var img image.Image = buf
		if cfg.scale != 1 {
			w := max(1, int(float64(cfg.width)*cfg.scale+0.5))
			h := max(1, int(float64(cfg.height)*cfg.scale+0.5))
			dst := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.CatmullRom.Scale(dst, dst.Bounds(), buf, buf.Bounds(), draw.Src, nil)
			img = dst
		}

		fname := fmt.Sprintf("%s-%04d.png", cfg.prefix, i)
		if err := writePNG(fname, img); err != nil {
			return err
		}
		logger.Debug("frame written", "file", fname, "progress", progress)
	}
	logger.Info("done", "frames", cfg.frames)
	return nil
}

// loadDefinition returns the sketch definition given on the command line.
// Arguments of the form @file are read from the named file.
func loadDefinition(arg string) (string, error) {
	fname, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return arg, nil
	}
	data, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func writePNG(fname string, img image.Image) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
