// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package clib

import (
	"runtime"
	"sync"
	"testing"

	c "github.com/smartystreets/goconvey/convey"
)

func pin(buf []int16) *runtime.Pinner {
	p := new(runtime.Pinner)
	p.Pin(&buf[0])
	return p
}

func TestPinSet(t *testing.T) {
	c.Convey("Given an empty pin set", t, func() {
		var s pinSet
		c.Convey("When buffers are registered for two units", func() {
			s.replace(bufferKey{handle: 1, channel: 0, segment: 0}, pin(make([]int16, 4)))
			s.replace(bufferKey{handle: 1, channel: 0, segment: 1}, pin(make([]int16, 4)))
			s.replace(bufferKey{handle: 2, channel: 0, segment: 0}, pin(make([]int16, 4)))
			c.So(s.len(), c.ShouldEqual, 3)
			c.Convey("Then replacing a key keeps one entry", func() {
				s.replace(bufferKey{handle: 1, channel: 0, segment: 0}, pin(make([]int16, 4)))
				c.So(s.len(), c.ShouldEqual, 3)
			})
			c.Convey("Then a nil pinner clears the key", func() {
				s.replace(bufferKey{handle: 2, channel: 0, segment: 0}, nil)
				c.So(s.len(), c.ShouldEqual, 2)
			})
			c.Convey("Then releasing one unit leaves the other", func() {
				s.releaseHandle(1)
				c.So(s.len(), c.ShouldEqual, 1)
			})
			c.Convey("Then releasing everything empties the set", func() {
				s.releaseAll()
				c.So(s.len(), c.ShouldEqual, 0)
			})
		})
	})
}

func TestPinSetConcurrentUnits(t *testing.T) {
	var s pinSet
	var wg sync.WaitGroup
	for h := int16(1); h <= 4; h++ {
		wg.Add(1)
		go func(handle int16) {
			defer wg.Done()
			for round := 0; round < 50; round++ {
				for seg := uint32(0); seg < 8; seg++ {
					key := bufferKey{handle: handle, channel: 0, segment: seg}
					s.replace(key, pin(make([]int16, 16)))
				}
				s.releaseHandle(handle)
			}
		}(h)
	}
	wg.Wait()
	if n := s.len(); n != 0 {
		t.Errorf("Expected every buffer released, %d still pinned", n)
	}
}
