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

import (
	"image/color"
	"testing"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/anim"
)

func TestParseSettings(t *testing.T) {
	cases := []struct {
		name string
		in   map[string]string
		want Settings
	}{
		{
			name: "empty",
			in:   map[string]string{},
			want: Settings{Thickness: 1, MotionPercentage: 100},
		},
		{
			name: "all",
			in: map[string]string{
				KeyDefinition:       "0,0;L1,1",
				KeyMotionEnabled:    "1",
				KeyThickness:        "3",
				KeyMotionPercentage: " 25 ",
			},
			want: Settings{Definition: "0,0;L1,1", MotionEnabled: true, Thickness: 3, MotionPercentage: 25},
		},
		{
			name: "clamped",
			in: map[string]string{
				KeyThickness:        "0",
				KeyMotionPercentage: "150",
			},
			want: Settings{Thickness: 1, MotionPercentage: 100},
		},
		{
			name: "negative percentage",
			in:   map[string]string{KeyMotionPercentage: "-5"},
			want: Settings{Thickness: 1, MotionPercentage: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSettings(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseSettingsErrors(t *testing.T) {
	for _, key := range []string{KeyMotionEnabled, KeyThickness, KeyMotionPercentage} {
		_, err := ParseSettings(map[string]string{key: "x"})
		if err == nil {
			t.Errorf("%s: expected an error", key)
		}
	}
}

func TestSettingsMap(t *testing.T) {
	s := Settings{Definition: sketch.DefaultDefinition, MotionEnabled: true, Thickness: 4, MotionPercentage: 30}
	got, err := ParseSettings(s.Map())
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Errorf("got %+v, want %+v", got, s)
	}

	def, err := ParseSettings(DefaultSettings().Map())
	if err != nil {
		t.Fatal(err)
	}
	if def != DefaultSettings() {
		t.Errorf("got %+v, want %+v", def, DefaultSettings())
	}
	if _, err := sketch.Parse(def.Definition); err != nil {
		t.Errorf("default definition: %v", err)
	}
}

func TestSettingsMotion(t *testing.T) {
	s := Settings{MotionEnabled: true, MotionPercentage: 40}
	want := anim.Motion{Enabled: true, Window: 0.4}
	if got := s.Motion(); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCycle(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	cases := []struct {
		i    int
		want color.RGBA
	}{
		{0, red}, {1, green}, {2, blue}, {3, red}, {7, green}, {-1, blue},
	}
	for _, tc := range cases {
		if got := DefaultPalette.Color(tc.i); got != tc.want {
			t.Errorf("Color(%d) = %v, want %v", tc.i, got, tc.want)
		}
	}

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if got := (Cycle{}).Color(5); got != white {
		t.Errorf("empty cycle: got %v, want %v", got, white)
	}
}
