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

// Package anim decides how much of each path of a sketch is visible at a
// given point of the animation.
//
// The animation position is a single progress value. [AdjustProgress] maps
// it onto the range used by the scheduler, and [Schedule] turns the adjusted
// value into one [Request] per path. Paths are revealed one after the
// other, each taking a share of the animation proportional to its arc
// length.
package anim

// Motion selects the trailing-window mode of the animation.
type Motion struct {
	// Enabled switches from a growing reveal to a sliding window.
	Enabled bool

	// Window is the length of the visible window, as a fraction of the
	// full animation range. Only used if Enabled is true.
	Window float64
}

// Interpolate maps x linearly from the interval [loIn, hiIn] onto
// [loOut, hiOut]. Values outside the input interval are extrapolated.
// If the input interval is empty (loIn == hiIn), the midpoint of the
// output interval is returned.
func Interpolate(x, loIn, loOut, hiIn, hiOut float64) float64 {
	if loIn == hiIn {
		return (loOut + hiOut) / 2
	}
	t := (x - loIn) / (hiIn - loIn)
	return loOut + (hiOut-loOut)*t
}

// AdjustProgress converts a progress value in [0, 1] into the adjusted
// progress used by [Schedule].
//
// Without motion, the value is returned unchanged. With motion, the range
// is stretched to [0, 1+m.Window], so that the trailing window can leave
// the last path completely before the animation ends.
func AdjustProgress(progress float64, m Motion) float64 {
	maxProgress := 1.0
	if m.Enabled {
		maxProgress += m.Window
	}
	return Interpolate(progress, 0, 0, 1, maxProgress)
}
