// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ps3000a

import "math"

// Overflow is the bitmask returned by Values. Bit n is set when channel n
// went over range during the capture.
type Overflow int16

// Channel reports whether the given channel overflowed.
func (o Overflow) Channel(ch Channel) bool {
	if ch < 0 || ch >= 16 {
		return false
	}
	return o&(1<<uint(ch)) != 0
}

// NewSegmentBuffers allocates a sample buffer with one row per memory
// segment. All rows share a single contiguous backing array. Negative
// counts are treated as zero.
func NewSegmentBuffers(segments, samples int) [][]int16 {
	if segments < 0 {
		segments = 0
	}
	if samples < 0 {
		samples = 0
	}
	backing := make([]int16, segments*samples)
	rows := make([][]int16, segments)
	for i := range rows {
		rows[i] = backing[i*samples : (i+1)*samples : (i+1)*samples]
	}
	return rows
}

// SetDataBuffer registers data as the destination of the samples captured on
// the channel for the given segment. The driver keeps the address of data,
// so it must not be reallocated until ClearDataBuffer is called for the same
// channel and segment.
func (ps *PS3000a) SetDataBuffer(ch Channel, data []int16, mode RatioMode, segmentIndex uint32) error {
	if len(data) == 0 {
		return configErrorf("empty data buffer for channel %s segment %d", ch, segmentIndex)
	}
	if len(data) > math.MaxInt32 {
		return configErrorf("data buffer of %d samples exceeds the driver limit", len(data))
	}
	return check("SetDataBuffer", ps.lib.SetDataBuffer(
		ps.handle, int32(ch), data, segmentIndex, int32(mode)))
}

// ClearDataBuffer unregisters the buffer of the channel and segment.
// Without it subsequent calls to Values keep writing to the old buffer.
func (ps *PS3000a) ClearDataBuffer(ch Channel, segmentIndex uint32) error {
	return check("SetDataBuffer", ps.lib.SetDataBuffer(
		ps.handle, int32(ch), nil, segmentIndex, int32(RatioModeNone)))
}

// SetMultipleDataBuffers registers each row of data as the destination of
// the matching memory segment. data must have at least one row per memory
// segment currently configured on the unit, and each of those rows must hold
// at least MaxSamples samples; both are checked before any buffer is
// registered. The first failed registration stops the loop and is returned.
// Buffers registered before the failure stay registered.
func (ps *PS3000a) SetMultipleDataBuffers(ch Channel, data [][]int16, mode RatioMode) error {
	maxSegments, err := ps.MaxSegments()
	if err != nil {
		return err
	}
	if uint64(len(data)) < uint64(maxSegments) {
		return configErrorf(
			"data has %d rows, fewer than the %d memory segments", len(data), maxSegments)
	}
	for i := uint32(0); i < maxSegments; i++ {
		if int64(len(data[i])) < int64(ps.maxSamples) {
			return configErrorf(
				"data row %d has %d columns, fewer than the %d max samples",
				i, len(data[i]), ps.maxSamples)
		}
	}
	ps.Logger.V(1).Info("registering segment buffers",
		"channel", ch, "segments", maxSegments, "mode", mode)
	for i := uint32(0); i < maxSegments; i++ {
		if err := ps.SetDataBuffer(ch, data[i], mode, i); err != nil {
			return err
		}
	}
	return nil
}

// Values copies captured samples into the registered buffers, starting at
// startIndex within the segment. It returns the number of samples actually
// copied and the overflow mask.
func (ps *PS3000a) Values(
	startIndex, samples, ratio uint32, mode RatioMode, segmentIndex uint32,
) (uint32, Overflow, error) {
	returned, overflow, status := ps.lib.GetValues(
		ps.handle, startIndex, samples, ratio, int32(mode), segmentIndex)
	if err := check("GetValues", status); err != nil {
		return 0, 0, err
	}
	return returned, Overflow(overflow), nil
}

// ValuesBulk copies the captures of segments fromSegment through toSegment
// into their registered buffers. overflow receives one mask per segment and
// must have room for toSegment-fromSegment+1 entries.
func (ps *PS3000a) ValuesBulk(
	samples, fromSegment, toSegment, ratio uint32, mode RatioMode, overflow []int16,
) (uint32, error) {
	if toSegment < fromSegment {
		return 0, configErrorf("segment range %d..%d is reversed", fromSegment, toSegment)
	}
	if uint64(len(overflow)) < uint64(toSegment-fromSegment)+1 {
		return 0, configErrorf(
			"overflow has %d entries, need %d", len(overflow), toSegment-fromSegment+1)
	}
	returned, status := ps.lib.GetValuesBulk(
		ps.handle, samples, fromSegment, toSegment, ratio, int32(mode), overflow)
	if err := check("GetValuesBulk", status); err != nil {
		return 0, err
	}
	return returned, nil
}
