// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ps3000a

import "math"

// Timebase is the device specific code selecting the sampling interval. It
// is not portable to other PicoScope families.
//
// Codes 0 through 2 select the fast clock, which divides 1 GHz by a power of
// two (1 ns, 2 ns, 4 ns). Codes 3 and above select the 125 MHz slow clock,
// where the interval grows linearly with the code.
type Timebase uint32

const (
	fastClockHz       = 1e9
	slowClockHz       = 125e6
	slowClockMinTime  = 8e-9
	fastTimebaseCount = 3
)

// MaxTimebase is the largest timebase code the unit accepts.
const MaxTimebase Timebase = math.MaxUint32

// MaxInterval is the longest sampling interval, in seconds, representable in
// the slow clock regime.
const MaxInterval = (math.MaxUint32 - 2) / slowClockHz

// TimebaseForInterval converts the requested sampling interval in seconds
// into the timebase code to pass to RunBlock and Timebase. Intervals faster
// than the slow clock floor round down to a power of two fast clock code;
// zero, negative, NaN and sub-nanosecond intervals give code 0. Intervals at or
// above MaxInterval are clamped to MaxTimebase.
func TimebaseForInterval(seconds float64) Timebase {
	if !(seconds >= slowClockMinTime) {
		ns := seconds * fastClockHz
		if !(ns >= 1) {
			return 0
		}
		return Timebase(math.Floor(math.Log2(ns)))
	}
	if seconds >= MaxInterval {
		return MaxTimebase
	}
	return Timebase(math.Floor(seconds*slowClockHz + 2))
}

// Interval returns the sampling interval in seconds selected by the
// timebase code. Codes are not bounds checked.
func (tb Timebase) Interval() float64 {
	if tb < fastTimebaseCount {
		return math.Exp2(float64(tb)) / fastClockHz
	}
	return float64(tb-2) / slowClockHz
}
