// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/go-logr/stdr"
	"github.com/gotmc/picoscope/internal/config"
	"github.com/gotmc/picoscope/picousb"
	"github.com/gotmc/picoscope/ps3000a"
	"github.com/gotmc/picoscope/ps3000a/clib"
)

func main() {
	configPath := flag.String("config", "./block_capture.yaml", "acquisition config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error reading config %s: %s", *configPath, err)
	}
	stdr.SetVerbosity(cfg.Log.Verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("ps3000a")

	// List the attached units. Failing to talk to libusb isn't fatal since
	// the vendor driver does its own enumeration.
	if ctx, err := picousb.Init(); err != nil {
		logger.Error(err, "couldn't create USB context")
	} else {
		units, err := picousb.List(ctx)
		if err != nil {
			logger.Error(err, "couldn't list USB devices")
		}
		for _, unit := range units {
			logger.Info("found unit", "unit", unit.String())
		}
		ctx.Close()
	}

	lib, err := clib.Load()
	if err != nil {
		log.Fatalf("Couldn't load the ps3000a driver: %s", err)
	}
	defer lib.Close()

	scope, err := ps3000a.OpenWithLogger(lib, cfg.Serial, logger)
	if err != nil {
		log.Fatalf("Couldn't open a PicoScope 3000: %s", err)
	}
	defer scope.Close()
	scope.Resolution = ps3000a.Resolutions[cfg.Resolution]

	for _, info := range []ps3000a.InfoCode{ps3000a.InfoVariantInfo, ps3000a.InfoBatchAndSerial} {
		s, err := scope.UnitInfo(info)
		if err != nil {
			log.Fatalf("Error reading unit info: %s", err)
		}
		logger.Info("unit info", "info", info.String(), "value", s)
	}

	if err := run(scope, cfg, logger.V(1).Enabled()); err != nil {
		log.Printf("Error running block capture: %s", err)
		if err := scope.Stop(); err != nil {
			log.Printf("Error stopping unit: %s", err)
		}
	}
}

func run(scope *ps3000a.PS3000a, cfg *config.Config, verbose bool) error {
	channels, err := cfg.ChannelSettings()
	if err != nil {
		return err
	}
	var enabled []ps3000a.Channel
	for _, ch := range channels {
		if err := scope.SetChannel(ch.Channel, ch.Enabled, ch.Coupling, ch.Range, ch.Offset); err != nil {
			return err
		}
		if ch.Enabled {
			enabled = append(enabled, ch.Channel)
		}
	}
	err = scope.SetSimpleTrigger(cfg.Trigger.Enabled, cfg.TriggerSource(), cfg.Trigger.ThresholdADC,
		cfg.TriggerDirection(), cfg.Trigger.Delay, cfg.Trigger.AutoTriggerMs)
	if err != nil {
		return err
	}

	// SetMultipleDataBuffers needs a row for every segment the unit allows,
	// so memory is split into that many segments and only the configured
	// number are captured.
	maxSegments, err := scope.MaxSegments()
	if err != nil {
		return err
	}
	if _, err := scope.MemorySegments(maxSegments); err != nil {
		return err
	}
	segments := cfg.Block.Segments
	if segments > maxSegments {
		segments = maxSegments
	}
	if err := scope.SetNoOfCaptures(segments); err != nil {
		return err
	}

	tb := cfg.Timebase()
	interval, maxSamples, err := scope.Timebase(tb, cfg.Samples(), 0, 0)
	if err != nil {
		return err
	}
	log.Printf("Timebase %d: requested %s, got %g s, max %d samples per segment",
		tb, cfg.Block.SampleInterval, interval, maxSamples)

	buffers := make(map[ps3000a.Channel][][]int16, len(enabled))
	for _, ch := range enabled {
		data := ps3000a.NewSegmentBuffers(int(maxSegments), int(maxSamples))
		if err := scope.SetMultipleDataBuffers(ch, data, cfg.RatioMode()); err != nil {
			return err
		}
		buffers[ch] = data
	}
	defer func() {
		for ch := range buffers {
			for i := uint32(0); i < maxSegments; i++ {
				if err := scope.ClearDataBuffer(ch, i); err != nil {
					log.Printf("Error clearing buffer %s/%d: %s", ch, i, err)
				}
			}
		}
	}()

	ms, err := scope.RunBlock(cfg.Block.PreTrigger, cfg.Block.PostTrigger, tb, 0, 0)
	if err != nil {
		return err
	}
	log.Printf("Capturing %d segments, expected to take %d ms", segments, ms)
	start := time.Now()
	for {
		ready, err := scope.IsReady()
		if err != nil {
			return err
		}
		if ready {
			break
		}
		time.Sleep(cfg.Block.PollInterval)
	}
	log.Printf("Capture took %.3f s", time.Since(start).Seconds())

	overflow := make([]int16, segments)
	n, err := scope.ValuesBulk(uint32(cfg.Samples()), 0, segments-1, 1, cfg.RatioMode(), overflow)
	if err != nil {
		return err
	}
	for _, ch := range enabled {
		for i, segment := range buffers[ch][:segments] {
			count := minInt(int(n), len(segment))
			lo, hi := minMax(segment[:count])
			over := ps3000a.Overflow(overflow[i]).Channel(ch)
			log.Printf("Channel %s segment %d: %d samples, min %d, max %d, overflow %t",
				ch, i, count, lo, hi, over)
			if verbose {
				log.Printf("Channel %s segment %d first samples: %v", ch, i, segment[:minInt(count, 8)])
			}
		}
	}
	return nil
}

func minMax(samples []int16) (int16, int16) {
	if len(samples) == 0 {
		return 0, 0
	}
	lo, hi := samples[0], samples[0]
	for _, s := range samples[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return lo, hi
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
