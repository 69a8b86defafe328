// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package config loads the YAML acquisition config used by the example
// programs and maps its strings onto ps3000a codes.
package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/gotmc/picoscope/ps3000a"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Serial     string                   `yaml:"serial"`
	Resolution string                   `yaml:"resolution"`
	Channels   map[string]ChannelConfig `yaml:"channels"`
	Trigger    TriggerConfig            `yaml:"trigger"`
	Block      BlockConfig              `yaml:"block"`
	Log        LogConfig                `yaml:"log"`
}

type ChannelConfig struct {
	Enabled  bool    `yaml:"enabled"`
	Coupling string  `yaml:"coupling"`
	Range    string  `yaml:"range"`
	Offset   float32 `yaml:"offset"`
}

type TriggerConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Source        string `yaml:"source"`
	ThresholdADC  int16  `yaml:"threshold_adc"`
	Direction     string `yaml:"direction"`
	Delay         uint32 `yaml:"delay"`
	AutoTriggerMs int16  `yaml:"auto_trigger_ms"`
}

type BlockConfig struct {
	SampleInterval time.Duration `yaml:"sample_interval"`
	PreTrigger     int32         `yaml:"pre_trigger"`
	PostTrigger    int32         `yaml:"post_trigger"`
	Segments       uint32        `yaml:"segments"`
	RatioMode      string        `yaml:"ratio_mode"`
	PollInterval   time.Duration `yaml:"poll_interval"`
}

type LogConfig struct {
	Verbosity int `yaml:"verbosity"`
}

// Channel is a validated channel configuration.
type Channel struct {
	Channel  ps3000a.Channel
	Enabled  bool
	Coupling ps3000a.Coupling
	Range    ps3000a.Range
	Offset   float32
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Resolution == "" {
		c.Resolution = "8"
	}
	if len(c.Channels) == 0 {
		c.Channels = map[string]ChannelConfig{
			"A": {Enabled: true},
		}
	}
	for name, ch := range c.Channels {
		if ch.Coupling == "" {
			ch.Coupling = "DC"
		}
		if ch.Range == "" {
			ch.Range = "5 V"
		}
		c.Channels[name] = ch
	}
	if c.Trigger.Source == "" {
		c.Trigger.Source = "A"
	}
	if c.Trigger.Direction == "" {
		c.Trigger.Direction = "Rising"
	}
	if c.Block.SampleInterval == 0 {
		c.Block.SampleInterval = time.Microsecond
	}
	if c.Block.PostTrigger == 0 {
		c.Block.PostTrigger = 1000
	}
	if c.Block.Segments == 0 {
		c.Block.Segments = 1
	}
	if c.Block.RatioMode == "" {
		c.Block.RatioMode = "None"
	}
	if c.Block.PollInterval == 0 {
		c.Block.PollInterval = 10 * time.Millisecond
	}
}

func (c *Config) validate() error {
	if _, ok := ps3000a.Resolutions[c.Resolution]; !ok {
		return fmt.Errorf("resolution %q must be one of 8, 12, 14, 15, 16", c.Resolution)
	}
	if _, err := c.ChannelSettings(); err != nil {
		return err
	}
	if _, err := ps3000a.ParseChannel(c.Trigger.Source); err != nil {
		return fmt.Errorf("trigger source: %w", err)
	}
	if _, ok := ps3000a.ThresholdDirections[c.Trigger.Direction]; !ok {
		return fmt.Errorf("invalid trigger direction %q", c.Trigger.Direction)
	}
	if c.Trigger.AutoTriggerMs < 0 {
		return fmt.Errorf("auto_trigger_ms must be non-negative")
	}
	if c.Block.SampleInterval < 0 {
		return fmt.Errorf("sample_interval must be positive")
	}
	if c.Block.PreTrigger < 0 || c.Block.PostTrigger < 0 {
		return fmt.Errorf("pre_trigger and post_trigger must be non-negative")
	}
	if int64(c.Block.PreTrigger)+int64(c.Block.PostTrigger) > math.MaxInt32 {
		return fmt.Errorf("pre_trigger plus post_trigger must not exceed %d samples", math.MaxInt32)
	}
	if _, ok := ps3000a.RatioModes[c.Block.RatioMode]; !ok {
		return fmt.Errorf("invalid ratio_mode %q", c.Block.RatioMode)
	}
	return nil
}

// ChannelSettings returns the configured analog channels ordered by channel.
func (c *Config) ChannelSettings() ([]Channel, error) {
	settings := make([]Channel, 0, len(c.Channels))
	for name, ch := range c.Channels {
		channel, err := ps3000a.ParseChannel(name)
		if err != nil {
			return nil, err
		}
		if channel >= ps3000a.NumChannels {
			return nil, fmt.Errorf("channel %s is not an analog input", name)
		}
		coupling, ok := ps3000a.Couplings[ch.Coupling]
		if !ok {
			return nil, fmt.Errorf("channel %s: invalid coupling %q", name, ch.Coupling)
		}
		rng, err := ps3000a.ParseRange(ch.Range)
		if err != nil {
			return nil, fmt.Errorf("channel %s: %w", name, err)
		}
		settings = append(settings, Channel{
			Channel:  channel,
			Enabled:  ch.Enabled,
			Coupling: coupling,
			Range:    rng,
			Offset:   ch.Offset,
		})
	}
	sort.Slice(settings, func(i, j int) bool {
		return settings[i].Channel < settings[j].Channel
	})
	return settings, nil
}

// Timebase returns the timebase code for the configured sample interval.
func (c *Config) Timebase() ps3000a.Timebase {
	return ps3000a.TimebaseForInterval(c.Block.SampleInterval.Seconds())
}

// TriggerSource returns the validated trigger source.
func (c *Config) TriggerSource() ps3000a.Channel {
	return ps3000a.Channels[c.Trigger.Source]
}

// TriggerDirection returns the validated trigger direction.
func (c *Config) TriggerDirection() ps3000a.ThresholdDirection {
	return ps3000a.ThresholdDirections[c.Trigger.Direction]
}

// RatioMode returns the validated down sampling mode.
func (c *Config) RatioMode() ps3000a.RatioMode {
	return ps3000a.RatioModes[c.Block.RatioMode]
}

// Samples is the number of samples per segment, pre and post trigger.
func (c *Config) Samples() int32 {
	return c.Block.PreTrigger + c.Block.PostTrigger
}
