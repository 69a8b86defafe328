// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ps3000a

type setDataBufferCall struct {
	channel int32
	length  int
	segment uint32
	mode    int32
}

// fakeLibrary records calls and returns canned values. Statuses default to
// zero (PICO_OK).
type fakeLibrary struct {
	handle     int16
	openSerial *string
	openStatus uint32

	maxSegments       uint32
	maxSegmentsStatus uint32
	maxSamples        int32

	setDataBufferCalls    []setDataBufferCall
	setDataBufferStatuses map[uint32]uint32

	unitInfo        string
	unitInfoCalls   []int
	unitInfoStatus  uint32
	timebaseNs      float32
	timebaseStatus  uint32
	ready           int16
	runBlockMs      int32
	valuesReturned  uint32
	valuesOverflow  int16
	bulkOverflow    []int16
	lastSetChannel  []interface{}
	lastTrigger     []interface{}
	lastSigGen      []interface{}
	lastArbitrary   []interface{}
	lastRunBlock    []interface{}
	closeStatus     uint32
	closed          bool
	genericStatus   uint32
	getValuesCalled int
}

func (f *fakeLibrary) OpenUnit(serial *string) (int16, uint32) {
	f.openSerial = serial
	return f.handle, f.openStatus
}

func (f *fakeLibrary) CloseUnit(handle int16) uint32 {
	f.closed = true
	return f.closeStatus
}

func (f *fakeLibrary) SetChannel(handle int16, channel int32, enabled int16, coupling int32, vrange int32, analogOffset float32) uint32 {
	f.lastSetChannel = []interface{}{handle, channel, enabled, coupling, vrange, analogOffset}
	return f.genericStatus
}

func (f *fakeLibrary) Stop(handle int16) uint32 { return f.genericStatus }

func (f *fakeLibrary) GetUnitInfo(handle int16, buf []byte, info uint32) (int16, uint32) {
	f.unitInfoCalls = append(f.unitInfoCalls, len(buf))
	n := copy(buf, f.unitInfo)
	if n < len(buf) {
		buf[n] = 0
	} else if len(buf) > 0 {
		buf[len(buf)-1] = 0
	}
	return int16(len(f.unitInfo) + 1), f.unitInfoStatus
}

func (f *fakeLibrary) FlashLed(handle int16, start int16) uint32 { return f.genericStatus }

func (f *fakeLibrary) SetSimpleTrigger(handle int16, enable int16, source int32, threshold int16, direction int32, delay uint32, autoTriggerMs int16) uint32 {
	f.lastTrigger = []interface{}{enable, source, threshold, direction, delay, autoTriggerMs}
	return f.genericStatus
}

func (f *fakeLibrary) SetNoOfCaptures(handle int16, captures uint32) uint32 {
	return f.genericStatus
}

func (f *fakeLibrary) MemorySegments(handle int16, segments uint32) (int32, uint32) {
	f.maxSegments = segments
	return f.maxSamples, f.genericStatus
}

func (f *fakeLibrary) GetMaxSegments(handle int16) (uint32, uint32) {
	return f.maxSegments, f.maxSegmentsStatus
}

func (f *fakeLibrary) RunBlock(handle int16, preTrigger int32, postTrigger int32, timebase uint32, oversample int16, segmentIndex uint32) (int32, uint32) {
	f.lastRunBlock = []interface{}{preTrigger, postTrigger, timebase, oversample, segmentIndex}
	return f.runBlockMs, f.genericStatus
}

func (f *fakeLibrary) IsReady(handle int16) (int16, uint32) {
	return f.ready, f.genericStatus
}

func (f *fakeLibrary) PingUnit(handle int16) uint32 { return f.genericStatus }

func (f *fakeLibrary) GetTimebase2(handle int16, timebase uint32, samples int32, oversample int16, segmentIndex uint32) (float32, int32, uint32) {
	return f.timebaseNs, f.maxSamples, f.timebaseStatus
}

func (f *fakeLibrary) SetDataBuffer(handle int16, channel int32, buffer []int16, segmentIndex uint32, mode int32) uint32 {
	f.setDataBufferCalls = append(f.setDataBufferCalls, setDataBufferCall{
		channel: channel,
		length:  len(buffer),
		segment: segmentIndex,
		mode:    mode,
	})
	return f.setDataBufferStatuses[segmentIndex]
}

func (f *fakeLibrary) GetValues(handle int16, startIndex uint32, samples uint32, ratio uint32, mode int32, segmentIndex uint32) (uint32, int16, uint32) {
	f.getValuesCalled++
	return f.valuesReturned, f.valuesOverflow, f.genericStatus
}

func (f *fakeLibrary) GetValuesBulk(handle int16, samples uint32, fromSegment uint32, toSegment uint32, ratio uint32, mode int32, overflow []int16) (uint32, uint32) {
	copy(overflow, f.bulkOverflow)
	return samples, f.genericStatus
}

func (f *fakeLibrary) SetSigGenBuiltIn(handle int16, offsetVoltage int32, pkToPk uint32, waveType int16, startFrequency float32, stopFrequency float32, increment float32, dwellTime float32, sweepType int32, operation int32, shots uint32, sweeps uint32, triggerType int32, triggerSource int32, extInThreshold int16) uint32 {
	f.lastSigGen = []interface{}{offsetVoltage, pkToPk, waveType, startFrequency, stopFrequency}
	return f.genericStatus
}

func (f *fakeLibrary) SetSigGenArbitrary(handle int16, offsetVoltage int32, pkToPk uint32, startDeltaPhase uint32, stopDeltaPhase uint32, deltaPhaseIncrement uint32, dwellCount uint32, waveform []int16, sweepType int32, operation int32, indexMode int32, shots uint32, sweeps uint32, triggerType int32, triggerSource int32, extInThreshold int16) uint32 {
	f.lastArbitrary = []interface{}{offsetVoltage, pkToPk, startDeltaPhase, stopDeltaPhase, len(waveform), indexMode}
	return f.genericStatus
}

func openFake(t interface{ Fatalf(string, ...interface{}) }, f *fakeLibrary) *PS3000a {
	scope, err := Open(f, "")
	if err != nil {
		t.Fatalf("open fake unit: %s", err)
	}
	return scope
}
