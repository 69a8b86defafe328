// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package ps3000a is the low-level binding for the PicoScope 3000 series
// (ps3000a driver). Arguments are expected to be validated and converted to
// device units by the caller; this package only marshals them onto the
// driver entry points and turns the returned status into an error.
package ps3000a

import (
	"bytes"

	"github.com/go-logr/logr"
)

const unitInfoBufferSize = 256

// PS3000a models an open PicoScope 3000 series unit.
//
// The driver is not reentrant per handle. A PS3000a must not be used from
// more than one goroutine at a time.
type PS3000a struct {
	Logger     logr.Logger
	Resolution Resolution
	lib        Library
	handle     int16
	maxSamples int32
}

// Open opens the unit with the given serial number. An empty serial opens
// the first unit found. Logging is discarded until Logger is set.
func Open(lib Library, serial string) (*PS3000a, error) {
	return OpenWithLogger(lib, serial, logr.Discard())
}

// OpenWithLogger is Open with logger installed as the unit's Logger before
// the unit is opened.
func OpenWithLogger(lib Library, serial string, logger logr.Logger) (*PS3000a, error) {
	var sn *string
	if serial != "" {
		sn = &serial
	}
	handle, status := lib.OpenUnit(sn)
	if err := check("OpenUnit", status); err != nil {
		return nil, err
	}
	scope := &PS3000a{
		Logger:     logger,
		Resolution: Resolution8Bit,
		lib:        lib,
		handle:     handle,
	}
	scope.Logger.Info("opened unit", "handle", handle, "serial", serial)
	return scope, nil
}

// OpenFirst opens the first unit the driver finds.
func OpenFirst(lib Library) (*PS3000a, error) {
	return Open(lib, "")
}

// Handle returns the driver handle of the unit.
func (ps *PS3000a) Handle() int16 {
	return ps.handle
}

// MaxSamples returns the maximum number of samples per segment last
// reported by Timebase or MemorySegments.
func (ps *PS3000a) MaxSamples() int32 {
	return ps.maxSamples
}

// Close closes the unit. The handle must not be used afterwards.
func (ps *PS3000a) Close() error {
	if err := check("CloseUnit", ps.lib.CloseUnit(ps.handle)); err != nil {
		return err
	}
	ps.Logger.Info("closed unit", "handle", ps.handle)
	return nil
}

// SetChannel enables or disables a channel and sets its coupling, range and
// analog offset in volts.
func (ps *PS3000a) SetChannel(ch Channel, enabled bool, coupling Coupling, rng Range, offset float32) error {
	return check("SetChannel", ps.lib.SetChannel(
		ps.handle, int32(ch), boolToInt16(enabled), int32(coupling), int32(rng), offset))
}

// Stop stops the unit from sampling.
func (ps *PS3000a) Stop() error {
	return check("Stop", ps.lib.Stop(ps.handle))
}

// FlashLED flashes the LED the given number of times. Zero stops flashing
// and a negative value flashes until called again.
func (ps *PS3000a) FlashLED(times int16) error {
	return check("FlashLed", ps.lib.FlashLed(ps.handle, times))
}

// Ping checks that the unit is still connected.
func (ps *PS3000a) Ping() error {
	return check("PingUnit", ps.lib.PingUnit(ps.handle))
}

// UnitInfo returns the information string selected by info. If the driver
// reports that the string needs more room than the default buffer, the
// buffer is grown and the call repeated.
func (ps *PS3000a) UnitInfo(info InfoCode) (string, error) {
	buf := make([]byte, unitInfoBufferSize)
	required, status := ps.lib.GetUnitInfo(ps.handle, buf, uint32(info))
	if err := check("GetUnitInfo", status); err != nil {
		return "", err
	}
	if int(required) > len(buf) {
		ps.Logger.V(1).Info("growing unit info buffer", "info", info, "size", int(required)+1)
		buf = make([]byte, int(required)+1)
		_, status = ps.lib.GetUnitInfo(ps.handle, buf, uint32(info))
		if err := check("GetUnitInfo", status); err != nil {
			return "", err
		}
	}
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// SetSimpleTrigger configures a single channel edge or level trigger. The
// threshold is in ADC counts, the delay in samples and the auto trigger
// timeout in milliseconds (zero waits forever).
func (ps *PS3000a) SetSimpleTrigger(
	enabled bool, source Channel, threshold int16, direction ThresholdDirection,
	delay uint32, autoTriggerMs int16,
) error {
	return check("SetSimpleTrigger", ps.lib.SetSimpleTrigger(
		ps.handle, boolToInt16(enabled), int32(source), threshold,
		int32(direction), delay, autoTriggerMs))
}

// SetNoOfCaptures sets the number of captures collected by one RunBlock in
// rapid block mode.
func (ps *PS3000a) SetNoOfCaptures(captures uint32) error {
	return check("SetNoOfCaptures", ps.lib.SetNoOfCaptures(ps.handle, captures))
}

// MemorySegments divides the capture memory into the given number of
// segments and returns the number of samples available in each. The value is
// also recorded as the unit's maximum samples per segment.
func (ps *PS3000a) MemorySegments(segments uint32) (int32, error) {
	maxSamples, status := ps.lib.MemorySegments(ps.handle, segments)
	if err := check("MemorySegments", status); err != nil {
		return 0, err
	}
	ps.maxSamples = maxSamples
	return maxSamples, nil
}

// MaxSegments returns the maximum number of memory segments the unit
// allows, the upper bound for MemorySegments.
func (ps *PS3000a) MaxSegments() (uint32, error) {
	maxSegments, status := ps.lib.GetMaxSegments(ps.handle)
	if err := check("GetMaxSegments", status); err != nil {
		return 0, err
	}
	return maxSegments, nil
}

// RunBlock starts a block capture and returns the driver's estimate of the
// time in milliseconds the unit will spend collecting. Completion is polled
// with IsReady. The oversample argument is ignored by the 3000 series.
func (ps *PS3000a) RunBlock(
	preTrigger, postTrigger int32, tb Timebase, oversample int16, segmentIndex uint32,
) (int32, error) {
	ms, status := ps.lib.RunBlock(
		ps.handle, preTrigger, postTrigger, uint32(tb), oversample, segmentIndex)
	if err := check("RunBlock", status); err != nil {
		return 0, err
	}
	return ms, nil
}

// IsReady reports whether the block capture started by RunBlock has
// finished.
func (ps *PS3000a) IsReady() (bool, error) {
	ready, status := ps.lib.IsReady(ps.handle)
	if err := check("IsReady", status); err != nil {
		return false, err
	}
	return ready != 0, nil
}

// Timebase asks the driver for the sampling interval, in seconds, that the
// timebase code yields and the maximum number of samples available for that
// configuration. The maximum is recorded for SetMultipleDataBuffers.
func (ps *PS3000a) Timebase(
	tb Timebase, samples int32, oversample int16, segmentIndex uint32,
) (float64, int32, error) {
	ns, maxSamples, status := ps.lib.GetTimebase2(
		ps.handle, uint32(tb), samples, oversample, segmentIndex)
	if err := check("GetTimebase2", status); err != nil {
		return 0, 0, err
	}
	ps.maxSamples = maxSamples
	return float64(ns) * 1e-9, maxSamples, nil
}

func boolToInt16(b bool) int16 {
	if b {
		return 1
	}
	return 0
}
