// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gotmc/picoscope/ps3000a"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := `
serial: "AB123/0042"
channels:
  B:
    enabled: true
    range: "500 mV"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Resolution != "8" {
		t.Fatalf("expected resolution default 8, got %s", cfg.Resolution)
	}
	if cfg.Block.SampleInterval != time.Microsecond {
		t.Fatalf("expected sample interval default 1us, got %s", cfg.Block.SampleInterval)
	}
	if cfg.Block.Segments != 1 {
		t.Fatalf("expected 1 segment by default, got %d", cfg.Block.Segments)
	}
	if cfg.Timebase() != 127 {
		t.Fatalf("expected timebase 127 for 1us, got %d", cfg.Timebase())
	}
	if cfg.TriggerSource() != ps3000a.ChannelA || cfg.TriggerDirection() != ps3000a.Rising {
		t.Fatalf("expected trigger default A/Rising, got %s/%d", cfg.TriggerSource(), cfg.TriggerDirection())
	}

	settings, err := cfg.ChannelSettings()
	if err != nil {
		t.Fatalf("channel settings: %v", err)
	}
	want := []Channel{{
		Channel:  ps3000a.ChannelB,
		Enabled:  true,
		Coupling: ps3000a.DC,
		Range:    ps3000a.Range500mV,
	}}
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Fatalf("channel settings mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFullConfig(t *testing.T) {
	data := `
resolution: "12"
channels:
  D: {enabled: true, coupling: AC, range: "20 mV", offset: -0.01}
  A: {enabled: false}
trigger:
  enabled: true
  source: External
  threshold_adc: -512
  direction: Falling
  delay: 10
  auto_trigger_ms: 100
block:
  sample_interval: 4ns
  pre_trigger: 200
  post_trigger: 800
  segments: 8
  ratio_mode: Decimate
log:
  verbosity: 2
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Timebase() != 2 {
		t.Errorf("expected timebase 2 for 4ns, got %d", cfg.Timebase())
	}
	if cfg.Samples() != 1000 {
		t.Errorf("expected 1000 samples, got %d", cfg.Samples())
	}
	if cfg.RatioMode() != ps3000a.RatioModeDecimate {
		t.Errorf("expected Decimate, got %d", cfg.RatioMode())
	}
	if cfg.TriggerSource() != ps3000a.External {
		t.Errorf("expected External trigger, got %s", cfg.TriggerSource())
	}
	if cfg.Log.Verbosity != 2 {
		t.Errorf("expected verbosity 2, got %d", cfg.Log.Verbosity)
	}
	settings, err := cfg.ChannelSettings()
	if err != nil {
		t.Fatalf("channel settings: %v", err)
	}
	if len(settings) != 2 || settings[0].Channel != ps3000a.ChannelA || settings[1].Channel != ps3000a.ChannelD {
		t.Fatalf("expected channels A and D in order, got %+v", settings)
	}
	if settings[1].Coupling != ps3000a.AC || settings[1].Range != ps3000a.Range20mV || settings[1].Offset != -0.01 {
		t.Errorf("unexpected channel D settings %+v", settings[1])
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
		want string
	}{
		{"resolution", `resolution: "10"`, "resolution"},
		{"range", `channels: {A: {range: "3 V"}}`, "voltage range"},
		{"coupling", `channels: {A: {coupling: "GND"}}`, "coupling"},
		{"channel", `channels: {Z: {enabled: true}}`, "invalid channel"},
		{"external as input", `channels: {External: {enabled: true}}`, "not an analog input"},
		{"trigger source", `trigger: {source: "Q"}`, "trigger source"},
		{"direction", `trigger: {direction: "Sideways"}`, "direction"},
		{"ratio mode", `block: {ratio_mode: "Median"}`, "ratio_mode"},
		{"pre trigger", `block: {pre_trigger: -1}`, "pre_trigger"},
		{"sample count overflow", `block: {pre_trigger: 2147483647, post_trigger: 10}`, "must not exceed"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}
