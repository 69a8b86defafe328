// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ps3000a

// Library is the set of ps3000a driver entry points. Each method maps onto
// exactly one C function and uses the exact integer and float widths of the
// vendor header; the last return value is the raw PICO_STATUS. Enumerations
// are passed as int32, the width of a C enum.
//
// The clib package provides the implementation backed by the vendor shared
// library. Tests substitute a fake.
type Library interface {
	// OpenUnit opens the unit with the given serial number, or the first unit
	// found when serial is nil.
	OpenUnit(serial *string) (handle int16, status uint32)
	CloseUnit(handle int16) uint32
	SetChannel(handle int16, channel int32, enabled int16, coupling int32, vrange int32, analogOffset float32) uint32
	Stop(handle int16) uint32
	// GetUnitInfo writes a NUL-terminated string into buf and reports the
	// size the string needs.
	GetUnitInfo(handle int16, buf []byte, info uint32) (requiredSize int16, status uint32)
	FlashLed(handle int16, start int16) uint32
	SetSimpleTrigger(handle int16, enable int16, source int32, threshold int16, direction int32, delay uint32, autoTriggerMs int16) uint32
	SetNoOfCaptures(handle int16, captures uint32) uint32
	MemorySegments(handle int16, segments uint32) (maxSamples int32, status uint32)
	GetMaxSegments(handle int16) (maxSegments uint32, status uint32)
	RunBlock(handle int16, preTrigger int32, postTrigger int32, timebase uint32, oversample int16, segmentIndex uint32) (timeIndisposedMs int32, status uint32)
	IsReady(handle int16) (ready int16, status uint32)
	PingUnit(handle int16) uint32
	GetTimebase2(handle int16, timebase uint32, samples int32, oversample int16, segmentIndex uint32) (intervalNs float32, maxSamples int32, status uint32)
	// SetDataBuffer registers buffer as the destination of the given
	// segment. A nil buffer unregisters it. The driver keeps the address of
	// the buffer until it is unregistered.
	SetDataBuffer(handle int16, channel int32, buffer []int16, segmentIndex uint32, mode int32) uint32
	GetValues(handle int16, startIndex uint32, samples uint32, ratio uint32, mode int32, segmentIndex uint32) (returned uint32, overflow int16, status uint32)
	GetValuesBulk(handle int16, samples uint32, fromSegment uint32, toSegment uint32, ratio uint32, mode int32, overflow []int16) (returned uint32, status uint32)
	SetSigGenBuiltIn(handle int16, offsetVoltage int32, pkToPk uint32, waveType int16, startFrequency float32, stopFrequency float32, increment float32, dwellTime float32, sweepType int32, operation int32, shots uint32, sweeps uint32, triggerType int32, triggerSource int32, extInThreshold int16) uint32
	SetSigGenArbitrary(handle int16, offsetVoltage int32, pkToPk uint32, startDeltaPhase uint32, stopDeltaPhase uint32, deltaPhaseIncrement uint32, dwellCount uint32, waveform []int16, sweepType int32, operation int32, indexMode int32, shots uint32, sweeps uint32, triggerType int32, triggerSource int32, extInThreshold int16) uint32
}
