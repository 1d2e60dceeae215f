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
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/sketch"
	"seehuhn.de/go/sketch/anim"
)

// Keys of the settings map, as stored by the host application.
const (
	KeyDefinition       = "TEXTCTRL_SketchDef"
	KeyMotionEnabled    = "CHECKBOX_MotionEnabled"
	KeyThickness        = "SLIDER_Thickness"
	KeyMotionPercentage = "SLIDER_MotionPercentage"
)

// Settings are the user-visible parameters of the effect.
type Settings struct {
	// Definition is the sketch definition, see [sketch.Parse].
	// An empty definition draws nothing.
	Definition string

	// MotionEnabled selects the trailing-window animation.
	MotionEnabled bool

	// Thickness is the stroke width in pixels, at least 1.
	Thickness int

	// MotionPercentage is the length of the trailing window in percent of
	// the animation, in the range 0 to 100.
	MotionPercentage int
}

// DefaultSettings returns the parameters of a newly created effect.
func DefaultSettings() Settings {
	return Settings{
		Definition:       sketch.DefaultDefinition,
		Thickness:        1,
		MotionPercentage: 100,
	}
}

// ParseSettings reads the effect parameters from a settings map.
//
// Missing keys take the values "", false, 1 and 100. Thickness values
// below 1 are raised to 1 and the motion percentage is clamped to the
// range 0 to 100. Values which are not integers cause an error.
func ParseSettings(m map[string]string) (Settings, error) {
	s := Settings{
		Definition: m[KeyDefinition],
	}

	motion, err := intSetting(m, KeyMotionEnabled, 0)
	if err != nil {
		return Settings{}, err
	}
	s.MotionEnabled = motion != 0

	s.Thickness, err = intSetting(m, KeyThickness, 1)
	if err != nil {
		return Settings{}, err
	}
	s.Thickness = max(s.Thickness, 1)

	s.MotionPercentage, err = intSetting(m, KeyMotionPercentage, 100)
	if err != nil {
		return Settings{}, err
	}
	s.MotionPercentage = max(0, min(100, s.MotionPercentage))

	return s, nil
}

func intSetting(m map[string]string, key string, def int) (int, error) {
	v, ok := m[key]
	if !ok {
		return def, nil
	}
	x, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("effect: setting %s: %w", key, err)
	}
	return x, nil
}

// Map returns the settings in the form read by [ParseSettings].
func (s Settings) Map() map[string]string {
	motion := "0"
	if s.MotionEnabled {
		motion = "1"
	}
	return map[string]string{
		KeyDefinition:       s.Definition,
		KeyMotionEnabled:    motion,
		KeyThickness:        strconv.Itoa(s.Thickness),
		KeyMotionPercentage: strconv.Itoa(s.MotionPercentage),
	}
}

// Motion returns the animation mode described by the settings.
func (s Settings) Motion() anim.Motion {
	return anim.Motion{
		Enabled: s.MotionEnabled,
		Window:  0.01 * float64(s.MotionPercentage),
	}
}
