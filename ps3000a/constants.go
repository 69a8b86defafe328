// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ps3000a

import (
	"encoding/json"
	"fmt"
)

// The enumerations below mirror the C enums of the vendor header, which are
// int sized (32-bit) on every supported platform.

// Channel identifies an input channel or trigger source.
type Channel int32

// Available channels.
const (
	ChannelA   Channel = 0
	ChannelB   Channel = 1
	ChannelC   Channel = 2
	ChannelD   Channel = 3
	External   Channel = 4
	TriggerAux Channel = 5
)

// NumChannels is the number of analog input channels on a 4-channel unit.
// MaxChannels in the vendor header shares its value with External.
const NumChannels = 4

// Channels maps the string keys used in config files to the Channel values.
var Channels = map[string]Channel{
	"A":          ChannelA,
	"B":          ChannelB,
	"C":          ChannelC,
	"D":          ChannelD,
	"External":   External,
	"TriggerAux": TriggerAux,
}

var channelStrings = map[Channel]string{
	ChannelA:   "A",
	ChannelB:   "B",
	ChannelC:   "C",
	ChannelD:   "D",
	External:   "External",
	TriggerAux: "TriggerAux",
}

// String implements the Stringer interface for Channel.
func (ch Channel) String() string {
	if s, ok := channelStrings[ch]; ok {
		return s
	}
	return fmt.Sprintf("Channel(%d)", int32(ch))
}

// ParseChannel looks up a Channel by its config name.
func ParseChannel(s string) (Channel, error) {
	ch, ok := Channels[s]
	if !ok {
		return 0, fmt.Errorf("invalid channel %q", s)
	}
	return ch, nil
}

// Coupling selects AC or DC input coupling.
type Coupling int32

// Available couplings.
const (
	AC Coupling = 0
	DC Coupling = 1
)

// Couplings maps the string keys used in config files to the Coupling values.
var Couplings = map[string]Coupling{
	"AC": AC,
	"DC": DC,
}

// String implements the Stringer interface for Coupling.
func (c Coupling) String() string {
	switch c {
	case AC:
		return "AC"
	case DC:
		return "DC"
	}
	return fmt.Sprintf("Coupling(%d)", int32(c))
}

// UnmarshalJSON implements the Unmarshaler interface for Coupling.
func (c *Coupling) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("coupling should be a string, got %s", data)
	}
	got, ok := Couplings[s]
	if !ok {
		return fmt.Errorf("invalid coupling %q", s)
	}
	*c = got
	return nil
}

// MarshalJSON implements the Marshaler interface for Coupling.
func (c Coupling) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Range is the input voltage range code passed to SetChannel.
type Range int32

// Available voltage ranges. Each range is ± the named voltage.
const (
	Range10mV  Range = 0
	Range20mV  Range = 1
	Range50mV  Range = 2
	Range100mV Range = 3
	Range200mV Range = 4
	Range500mV Range = 5
	Range1V    Range = 6
	Range2V    Range = 7
	Range5V    Range = 8
	Range10V   Range = 9
	Range20V   Range = 10
	Range50V   Range = 11
)

type rangeInfo struct {
	volts float64
	label string
}

var rangeTable = [...]rangeInfo{
	Range10mV:  {10e-3, "10 mV"},
	Range20mV:  {20e-3, "20 mV"},
	Range50mV:  {50e-3, "50 mV"},
	Range100mV: {100e-3, "100 mV"},
	Range200mV: {200e-3, "200 mV"},
	Range500mV: {500e-3, "500 mV"},
	Range1V:    {1.0, "1 V"},
	Range2V:    {2.0, "2 V"},
	Range5V:    {5.0, "5 V"},
	Range10V:   {10.0, "10 V"},
	Range20V:   {20.0, "20 V"},
	Range50V:   {50.0, "50 V"},
}

// InputRanges maps the string keys that can be used in a config file to the
// Range values.
var InputRanges = func() map[string]Range {
	m := make(map[string]Range, len(rangeTable))
	for i, info := range rangeTable {
		m[info.label] = Range(i)
	}
	return m
}()

func (r Range) valid() bool {
	return r >= 0 && int(r) < len(rangeTable)
}

// Volts returns the full scale voltage of the range, or zero for an unknown
// range code.
func (r Range) Volts() float64 {
	if !r.valid() {
		return 0
	}
	return rangeTable[r].volts
}

// String implements the Stringer interface for Range.
func (r Range) String() string {
	if !r.valid() {
		return fmt.Sprintf("Range(%d)", int32(r))
	}
	return rangeTable[r].label
}

// ParseRange looks up a Range by its label, e.g. "500 mV".
func ParseRange(s string) (Range, error) {
	r, ok := InputRanges[s]
	if !ok {
		return 0, fmt.Errorf("invalid voltage range %q", s)
	}
	return r, nil
}

// UnmarshalJSON implements the Unmarshaler interface for Range by taking a
// string that matches a key in the InputRanges map.
func (r *Range) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("range should be a string, got %s", data)
	}
	got, err := ParseRange(s)
	if err != nil {
		return err
	}
	*r = got
	return nil
}

// MarshalJSON implements the Marshaler interface for Range.
func (r Range) MarshalJSON() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("invalid voltage range code %d", int32(r))
	}
	return json.Marshal(r.String())
}

// Resolution is the ADC resolution code.
type Resolution int32

// Available ADC resolutions.
const (
	Resolution8Bit  Resolution = 0
	Resolution12Bit Resolution = 1
	Resolution14Bit Resolution = 2
	Resolution15Bit Resolution = 3
	Resolution16Bit Resolution = 4
)

// Resolutions maps the bit count used in config files to the Resolution
// values.
var Resolutions = map[string]Resolution{
	"8":  Resolution8Bit,
	"12": Resolution12Bit,
	"14": Resolution14Bit,
	"15": Resolution15Bit,
	"16": Resolution16Bit,
}

// ADC limits. 8-bit units scale their samples to ±32512, all others use the
// full int16 span less one.
const (
	MaxValue8Bit  int16 = 32512
	MinValue8Bit  int16 = -32512
	MaxValueOther int16 = 32767
	MinValueOther int16 = -32767
)

// MaxValue returns the largest ADC count produced at the resolution.
func (r Resolution) MaxValue() int16 {
	if r == Resolution8Bit {
		return MaxValue8Bit
	}
	return MaxValueOther
}

// MinValue returns the smallest ADC count produced at the resolution.
func (r Resolution) MinValue() int16 {
	if r == Resolution8Bit {
		return MinValue8Bit
	}
	return MinValueOther
}

// ExtRangeVolts is the full scale range of the external trigger input.
const ExtRangeVolts = 5

// ThresholdDirection selects the trigger edge or level.
type ThresholdDirection int32

// Available threshold directions.
const (
	Above           ThresholdDirection = 0
	Below           ThresholdDirection = 1
	Rising          ThresholdDirection = 2
	Falling         ThresholdDirection = 3
	RisingOrFalling ThresholdDirection = 4
)

// ThresholdDirections maps config strings to ThresholdDirection values.
var ThresholdDirections = map[string]ThresholdDirection{
	"Above":           Above,
	"Below":           Below,
	"Rising":          Rising,
	"Falling":         Falling,
	"RisingOrFalling": RisingOrFalling,
}

// RatioMode is the down sampling (decimation) mode.
type RatioMode int32

// Available ratio modes. They are bit flags in the vendor header.
const (
	RatioModeNone      RatioMode = 0
	RatioModeAggregate RatioMode = 1
	RatioModeDecimate  RatioMode = 2
	RatioModeAverage   RatioMode = 4
)

// RatioModes maps config strings to RatioMode values.
var RatioModes = map[string]RatioMode{
	"None":      RatioModeNone,
	"Aggregate": RatioModeAggregate,
	"Decimate":  RatioModeDecimate,
	"Average":   RatioModeAverage,
}

// InfoCode selects the string returned by UnitInfo.
type InfoCode uint32

// Unit info codes.
const (
	InfoDriverVersion           InfoCode = 0x0
	InfoUSBVersion              InfoCode = 0x1
	InfoHardwareVersion         InfoCode = 0x2
	InfoVariantInfo             InfoCode = 0x3
	InfoBatchAndSerial          InfoCode = 0x4
	InfoCalDate                 InfoCode = 0x5
	InfoKernelVersion           InfoCode = 0x6
	InfoDigitalHardwareVersion  InfoCode = 0x7
	InfoAnalogueHardwareVersion InfoCode = 0x8
	InfoFirmwareVersion1        InfoCode = 0x9
	InfoFirmwareVersion2        InfoCode = 0xa
)

var infoStrings = map[InfoCode]string{
	InfoDriverVersion:           "Driver version",
	InfoUSBVersion:              "USB version",
	InfoHardwareVersion:         "Hardware version",
	InfoVariantInfo:             "Variant",
	InfoBatchAndSerial:          "Batch and serial",
	InfoCalDate:                 "Calibration date",
	InfoKernelVersion:           "Kernel driver version",
	InfoDigitalHardwareVersion:  "Digital hardware version",
	InfoAnalogueHardwareVersion: "Analogue hardware version",
	InfoFirmwareVersion1:        "Firmware version 1",
	InfoFirmwareVersion2:        "Firmware version 2",
}

// String implements the Stringer interface for InfoCode.
func (i InfoCode) String() string {
	return infoStrings[i]
}

// WaveType is the built-in signal generator waveform. The vendor passes it
// as an int16 rather than an enum.
type WaveType int16

// Available waveforms.
const (
	Sine       WaveType = 0
	Square     WaveType = 1
	Triangle   WaveType = 2
	RampUp     WaveType = 3
	RampDown   WaveType = 4
	Sinc       WaveType = 5
	Gaussian   WaveType = 6
	HalfSine   WaveType = 7
	DCVoltage  WaveType = 8
	WhiteNoise WaveType = 9
)

// WaveTypes maps config strings to WaveType values.
var WaveTypes = map[string]WaveType{
	"Sine":       Sine,
	"Square":     Square,
	"Triangle":   Triangle,
	"RampUp":     RampUp,
	"RampDown":   RampDown,
	"Sinc":       Sinc,
	"Gaussian":   Gaussian,
	"HalfSine":   HalfSine,
	"DCVoltage":  DCVoltage,
	"WhiteNoise": WhiteNoise,
}

// SweepType is the frequency sweep direction of the signal generator.
type SweepType int32

// Available sweep types.
const (
	SweepUp     SweepType = 0
	SweepDown   SweepType = 1
	SweepUpDown SweepType = 2
	SweepDownUp SweepType = 3
)

// ExtraOperations replaces the signal generator output with noise.
type ExtraOperations int32

// Available extra operations.
const (
	ExtraOperationsOff ExtraOperations = 0
	ExtraWhiteNoise    ExtraOperations = 1
	ExtraPRBS          ExtraOperations = 2
)

// SigGenTriggerType selects what starts the signal generator.
type SigGenTriggerType int32

// Available signal generator trigger types.
const (
	SigGenRising   SigGenTriggerType = 0
	SigGenFalling  SigGenTriggerType = 1
	SigGenGateHigh SigGenTriggerType = 2
	SigGenGateLow  SigGenTriggerType = 3
)

// SigGenTriggerTypes maps config strings to SigGenTriggerType values.
var SigGenTriggerTypes = map[string]SigGenTriggerType{
	"Rising":   SigGenRising,
	"Falling":  SigGenFalling,
	"GateHigh": SigGenGateHigh,
	"GateLow":  SigGenGateLow,
}

// SigGenTriggerSource selects the source of the signal generator trigger.
type SigGenTriggerSource int32

// Available signal generator trigger sources.
const (
	SigGenSourceNone       SigGenTriggerSource = 0
	SigGenSourceScopeTrig  SigGenTriggerSource = 1
	SigGenSourceAuxIn      SigGenTriggerSource = 2
	SigGenSourceExtIn      SigGenTriggerSource = 3
	SigGenSourceSoftTrig   SigGenTriggerSource = 4
	SigGenSourceTriggerRaw SigGenTriggerSource = 5
)

// SigGenTriggerSources maps config strings to SigGenTriggerSource values.
var SigGenTriggerSources = map[string]SigGenTriggerSource{
	"None":       SigGenSourceNone,
	"ScopeTrig":  SigGenSourceScopeTrig,
	"AuxIn":      SigGenSourceAuxIn,
	"ExtIn":      SigGenSourceExtIn,
	"SoftTrig":   SigGenSourceSoftTrig,
	"TriggerRaw": SigGenSourceTriggerRaw,
}

// IndexMode is the arbitrary waveform playback mode.
type IndexMode int32

// Available AWG index modes.
const (
	IndexSingle IndexMode = 0
	IndexDual   IndexMode = 1
	IndexQuad   IndexMode = 2
)

// Arbitrary waveform generator constants. AWGMaxVal differs from the value
// printed in some revisions of the programming guide; the hardware accepts
// 12-bit samples.
const (
	AWGPhaseAccumulatorSize = 32
	AWGBufferAddressWidth   = 14
	AWGMaxSamples           = 1 << AWGBufferAddressWidth
	AWGDACInterval          = 5e-9 // seconds
	AWGDACFrequency         = 1 / AWGDACInterval
	AWGMaxVal               = 0x0fff
	AWGMinVal               = 0x0000
)
