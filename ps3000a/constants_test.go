// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ps3000a

import (
	"encoding/json"
	"fmt"
	"testing"

	c "github.com/smartystreets/goconvey/convey"
)

func TestRangeVolts(t *testing.T) {
	testCases := []struct {
		rng   Range
		volts float64
		label string
	}{
		{Range10mV, 0.01, "10 mV"},
		{Range500mV, 0.5, "500 mV"},
		{Range1V, 1.0, "1 V"},
		{Range50V, 50.0, "50 V"},
	}
	c.Convey("Given the need to describe the input ranges", t, func() {
		for _, testCase := range testCases {
			conveyance := fmt.Sprintf("When the range code is %d", int32(testCase.rng))
			c.Convey(conveyance, func() {
				conveyance := fmt.Sprintf("Then the range should be ±%s", testCase.label)
				c.Convey(conveyance, func() {
					c.So(testCase.rng.Volts(), c.ShouldAlmostEqual, testCase.volts)
					c.So(testCase.rng.String(), c.ShouldEqual, testCase.label)
					parsed, err := ParseRange(testCase.label)
					c.So(err, c.ShouldBeNil)
					c.So(parsed, c.ShouldEqual, testCase.rng)
				})
			})
		}
	})
}

func TestUnknownRange(t *testing.T) {
	if v := Range(12).Volts(); v != 0 {
		t.Errorf("Expected 0 V for an unknown range, got %g", v)
	}
	if s := Range(-1).String(); s != "Range(-1)" {
		t.Errorf("Expected Range(-1), got %s", s)
	}
	if _, err := ParseRange("3 V"); err == nil {
		t.Errorf("Expected an error for an unknown range label")
	}
}

func TestChannelConfigJSON(t *testing.T) {
	var ch struct {
		Coupling Coupling `json:"coupling"`
		Range    Range    `json:"range"`
	}
	if err := json.Unmarshal([]byte(`{"coupling":"AC","range":"200 mV"}`), &ch); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if ch.Coupling != AC || ch.Range != Range200mV {
		t.Errorf("Expected AC/200 mV, got %s/%s", ch.Coupling, ch.Range)
	}
	out, err := json.Marshal(ch)
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}
	if string(out) != `{"coupling":"AC","range":"200 mV"}` {
		t.Errorf("Unexpected JSON %s", out)
	}

	badCases := []string{
		`{"range":"7 V"}`,
		`{"range":5}`,
		`{"coupling":"XX"}`,
	}
	for _, bad := range badCases {
		t.Run(bad, func(t *testing.T) {
			if err := json.Unmarshal([]byte(bad), &ch); err == nil {
				t.Errorf("Expected an error unmarshaling %s", bad)
			}
		})
	}
}

func TestResolutionLimits(t *testing.T) {
	testCases := []struct {
		resolution string
		max, min   int16
	}{
		{"8", 32512, -32512},
		{"12", 32767, -32767},
		{"16", 32767, -32767},
	}
	for _, tc := range testCases {
		t.Run(tc.resolution+" bit", func(t *testing.T) {
			r, ok := Resolutions[tc.resolution]
			if !ok {
				t.Fatalf("resolution %s missing", tc.resolution)
			}
			if r.MaxValue() != tc.max || r.MinValue() != tc.min {
				t.Errorf("Expected %d..%d, got %d..%d", tc.min, tc.max, r.MinValue(), r.MaxValue())
			}
		})
	}
}

func TestChannelLookup(t *testing.T) {
	for name, ch := range Channels {
		got, err := ParseChannel(name)
		if err != nil || got != ch {
			t.Errorf("ParseChannel(%q) = %s, %v", name, got, err)
		}
		if ch.String() != name {
			t.Errorf("Channel %d String() = %s, want %s", int32(ch), ch, name)
		}
	}
	if NumChannels != int(External) {
		t.Errorf("NumChannels should share its value with External")
	}
}

func TestAWGConstants(t *testing.T) {
	if AWGMaxSamples != 16384 {
		t.Errorf("Expected 16384 AWG samples, got %d", AWGMaxSamples)
	}
	if AWGDACFrequency != 200e6 {
		t.Errorf("Expected a 200 MHz DAC, got %g", AWGDACFrequency)
	}
}

func TestStatusString(t *testing.T) {
	testCases := []struct {
		status Status
		want   string
	}{
		{StatusOK, "PICO_OK"},
		{StatusInvalidTimebase, "PICO_INVALID_TIMEBASE"},
		{Status(0x1234), "PICO_STATUS(0x1234)"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.status.String(); got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}
