// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package clib

import (
	"runtime"
	"sync"
)

type bufferKey struct {
	handle  int16
	channel int32
	segment uint32
}

// pinSet tracks the pinned buffers registered with the driver, shared by
// every unit opened through one Library.
type pinSet struct {
	mu sync.Mutex
	m  map[bufferKey]*runtime.Pinner
}

// replace unpins the buffer previously registered under key and records
// pinner in its place. A nil pinner only releases the old buffer.
func (s *pinSet) replace(key bufferKey, pinner *runtime.Pinner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.m[key]; ok {
		old.Unpin()
		delete(s.m, key)
	}
	if pinner == nil {
		return
	}
	if s.m == nil {
		s.m = make(map[bufferKey]*runtime.Pinner)
	}
	s.m[key] = pinner
}

func (s *pinSet) releaseHandle(handle int16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, pinner := range s.m {
		if key.handle == handle {
			pinner.Unpin()
			delete(s.m, key)
		}
	}
}

func (s *pinSet) releaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, pinner := range s.m {
		pinner.Unpin()
		delete(s.m, key)
	}
}

func (s *pinSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
