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

// Command sketchpdf writes a single frame of an animated sketch as a PDF
// file, with the visible parts of the paths as vector strokes.
//
// The output is white on black, so that it can be compared to the coverage
// computed by the raster package.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/anim"
)

func main() {
	def := flag.String("def", sketch.DefaultDefinition, "sketch definition, or @file to read it from a file")
	width := flag.Float64("w", 200, "page width in points")
	height := flag.Float64("h", 100, "page height in points")
	progress := flag.Float64("progress", 1, "position within the animation, from 0 to 1")
	motion := flag.Bool("motion", false, "show a trailing window instead of a growing sketch")
	window := flag.Int("window", 100, "length of the trailing window, in percent")
	thickness := flag.Float64("thickness", 1, "line width in points")
	out := flag.String("o", "sketch.pdf", "output file name")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	m := anim.Motion{Enabled: *motion, Window: 0.01 * float64(max(0, min(100, *window)))}
	if err := run(*def, *out, *width, *height, *thickness, *progress, m); err != nil {
		logger.Error("sketchpdf failed", "error", err)
		os.Exit(1)
	}
}

func run(def, out string, width, height, thickness, progress float64, m anim.Motion) error {
	if fname, ok := strings.CutPrefix(def, "@"); ok {
		data, err := os.ReadFile(fname)
		if err != nil {
			return err
		}
		def = strings.TrimSpace(string(data))
	}
	sk, err := sketch.Parse(def)
	if err != nil {
		return err
	}
	if !(width > 0 && height > 0) {
		return fmt.Errorf("invalid page size %gx%g", width, height)
	}

	progress = max(0, min(1, progress))
	reqs := anim.Schedule(sk.Paths, anim.AdjustProgress(progress, m), m)

	paper := &pdf.Rectangle{URx: width, URy: height}
	page, err := document.CreateSinglePage(out, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(0))
	page.Rectangle(0, 0, width, height)
	page.Fill()

	// PDF origin is bottom-left; device paths have the origin top-left.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, height})

	page.SetStrokeColor(color.DeviceGray(1))
	page.SetLineWidth(max(thickness, 0))
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)

	anim.Dispatch(reqs, &pdfDrawer{
		page:  page,
		paths: sk.Paths,
		w:     width,
		h:     height,
	})

	return page.Close()
}

// pathWriter is the part of the PDF content stream writer used by pdfDrawer.
type pathWriter interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
	Stroke()
}

// pdfDrawer writes the visible parts of the paths to a PDF page.
type pdfDrawer struct {
	page  pathWriter
	paths []*sketch.Path
	w, h  float64
}

func (d *pdfDrawer) DrawEntire(i int) {
	d.stroke(d.paths[i].Data(d.w, d.h))
}

func (d *pdfDrawer) DrawPartial(i int, start, end float64) {
	d.stroke(d.paths[i].Partial(start, end, d.w, d.h))
}

// stroke draws p, converting quadratic curves to cubic ones (PDF has no
// quadratic Bézier curves).
func (d *pdfDrawer) stroke(p *path.Data) {
	if len(p.Cmds) == 0 {
		return
	}
	for cmd, pts := range p.Iter().ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			d.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			d.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			d.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			d.page.ClosePath()
		}
	}
	d.page.Stroke()
}
