// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ps3000a

import "math"

// SigGenBuiltIn holds the arguments of SetSigGenBuiltIn. Voltages are in
// volts and frequencies in hertz.
type SigGenBuiltIn struct {
	OffsetVoltage  float64
	PkToPk         float64
	WaveType       WaveType
	StartFrequency float32
	StopFrequency  float32
	Increment      float32
	DwellTime      float32
	SweepType      SweepType
	Operation      ExtraOperations
	Shots          uint32
	Sweeps         uint32
	TriggerType    SigGenTriggerType
	TriggerSource  SigGenTriggerSource
	ExtInThreshold int16
}

// SetSigGenBuiltIn starts the built-in signal generator.
func (ps *PS3000a) SetSigGenBuiltIn(sg SigGenBuiltIn) error {
	if err := checkSigGenVoltages(sg.OffsetVoltage, sg.PkToPk); err != nil {
		return err
	}
	return check("SetSigGenBuiltIn", ps.lib.SetSigGenBuiltIn(
		ps.handle,
		microvolts(sg.OffsetVoltage),
		microvoltsUnsigned(sg.PkToPk),
		int16(sg.WaveType),
		sg.StartFrequency,
		sg.StopFrequency,
		sg.Increment,
		sg.DwellTime,
		int32(sg.SweepType),
		int32(sg.Operation),
		sg.Shots,
		sg.Sweeps,
		int32(sg.TriggerType),
		int32(sg.TriggerSource),
		sg.ExtInThreshold,
	))
}

// SetSigGenArbitrary plays waveform, a slice of AWG samples between
// AWGMinVal and AWGMaxVal, at a fixed delta phase. The offset and peak to
// peak voltages are in volts.
func (ps *PS3000a) SetSigGenArbitrary(
	waveform []int16, deltaPhase uint32, offsetVoltage, pkToPk float64,
	indexMode IndexMode, shots uint32,
	triggerType SigGenTriggerType, triggerSource SigGenTriggerSource,
) error {
	if len(waveform) == 0 || len(waveform) > AWGMaxSamples {
		return configErrorf("waveform has %d samples, want 1 to %d", len(waveform), AWGMaxSamples)
	}
	if err := checkSigGenVoltages(offsetVoltage, pkToPk); err != nil {
		return err
	}
	return check("SetSigGenArbitrary", ps.lib.SetSigGenArbitrary(
		ps.handle,
		microvolts(offsetVoltage),
		microvoltsUnsigned(pkToPk),
		deltaPhase, // start
		deltaPhase, // stop
		0,          // increment
		0,          // dwell count
		waveform,
		int32(SweepUp),
		int32(ExtraOperationsOff),
		int32(indexMode),
		shots,
		0, // sweeps
		int32(triggerType),
		int32(triggerSource),
		0, // ext in threshold
	))
}

func checkSigGenVoltages(offset, pkToPk float64) error {
	if math.IsNaN(offset) {
		return configErrorf("offset voltage is NaN")
	}
	if math.IsNaN(pkToPk) || pkToPk < 0 {
		return configErrorf("peak to peak voltage %g V must not be negative", pkToPk)
	}
	return nil
}

// microvolts converts volts into the integer microvolts the signal generator
// expects, truncating toward zero.
func microvolts(v float64) int32 {
	uv := math.Trunc(v * 1e6)
	switch {
	case uv > math.MaxInt32:
		return math.MaxInt32
	case uv < math.MinInt32:
		return math.MinInt32
	}
	return int32(uv)
}

// microvoltsUnsigned is microvolts for the unsigned peak to peak argument,
// clamped to [0, MaxUint32].
func microvoltsUnsigned(v float64) uint32 {
	uv := math.Trunc(v * 1e6)
	switch {
	case !(uv > 0):
		return 0
	case uv > math.MaxUint32:
		return math.MaxUint32
	}
	return uint32(uv)
}
