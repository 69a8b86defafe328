// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package clib loads the vendor ps3000a shared library at run time and
// exposes its entry points with the exact C integer and float widths of the
// vendor header. *Library satisfies ps3000a.Library.
package clib

/*
#cgo linux LDFLAGS: -ldl
#cgo darwin LDFLAGS: -ldl
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

#ifdef _WIN32
#include <windows.h>
#define PICO_CALL __stdcall
#else
#include <dlfcn.h>
#define PICO_CALL
#endif

typedef uint32_t PICO_STATUS;

static void *pico_dlopen(const char *name) {
#ifdef _WIN32
	return (void *)LoadLibraryA(name);
#else
	return dlopen(name, RTLD_NOW | RTLD_LOCAL);
#endif
}

static void *pico_dlsym(void *lib, const char *name) {
#ifdef _WIN32
	return (void *)GetProcAddress((HMODULE)lib, name);
#else
	return dlsym(lib, name);
#endif
}

static int pico_dlclose(void *lib) {
#ifdef _WIN32
	return FreeLibrary((HMODULE)lib) ? 0 : -1;
#else
	return dlclose(lib);
#endif
}

// pico_errmsg copies the last loader error into buf. It must run in the
// same C call as the failing loader function since the error is per thread
// and cleared by later loader calls.
static void pico_errmsg(char *buf, size_t n) {
	buf[0] = 0;
#ifdef _WIN32
	FormatMessageA(FORMAT_MESSAGE_FROM_SYSTEM | FORMAT_MESSAGE_IGNORE_INSERTS,
		NULL, GetLastError(), 0, buf, (DWORD)n, NULL);
#else
	const char *msg = dlerror();
	if (msg != NULL) {
		strncpy(buf, msg, n - 1);
		buf[n - 1] = 0;
	}
#endif
}

static void *pico_dlopen_err(const char *name, char *buf, size_t n) {
	void *lib = pico_dlopen(name);
	if (lib == NULL) {
		pico_errmsg(buf, n);
	}
	return lib;
}

static void *pico_dlsym_err(void *lib, const char *name, char *buf, size_t n) {
	void *fn = pico_dlsym(lib, name);
	if (fn == NULL) {
		pico_errmsg(buf, n);
	}
	return fn;
}

static int pico_dlclose_err(void *lib, char *buf, size_t n) {
	int rc = pico_dlclose(lib);
	if (rc != 0) {
		pico_errmsg(buf, n);
	}
	return rc;
}

typedef PICO_STATUS (PICO_CALL *openUnitFn)(int16_t *, int8_t *);
typedef PICO_STATUS (PICO_CALL *handleFn)(int16_t);
typedef PICO_STATUS (PICO_CALL *setChannelFn)(int16_t, int32_t, int16_t, int32_t, int32_t, float);
typedef PICO_STATUS (PICO_CALL *getUnitInfoFn)(int16_t, int8_t *, int16_t, int16_t *, uint32_t);
typedef PICO_STATUS (PICO_CALL *flashLedFn)(int16_t, int16_t);
typedef PICO_STATUS (PICO_CALL *setSimpleTriggerFn)(int16_t, int16_t, int32_t, int16_t, int32_t, uint32_t, int16_t);
typedef PICO_STATUS (PICO_CALL *setNoOfCapturesFn)(int16_t, uint32_t);
typedef PICO_STATUS (PICO_CALL *memorySegmentsFn)(int16_t, uint32_t, int32_t *);
typedef PICO_STATUS (PICO_CALL *getMaxSegmentsFn)(int16_t, uint32_t *);
typedef PICO_STATUS (PICO_CALL *runBlockFn)(int16_t, int32_t, int32_t, uint32_t, int16_t, int32_t *, uint32_t, void *, void *);
typedef PICO_STATUS (PICO_CALL *isReadyFn)(int16_t, int16_t *);
typedef PICO_STATUS (PICO_CALL *getTimebase2Fn)(int16_t, uint32_t, int32_t, float *, int16_t, int32_t *, uint32_t);
typedef PICO_STATUS (PICO_CALL *setDataBufferFn)(int16_t, int32_t, int16_t *, int32_t, uint32_t, int32_t);
typedef PICO_STATUS (PICO_CALL *getValuesFn)(int16_t, uint32_t, uint32_t *, uint32_t, int32_t, uint32_t, int16_t *);
typedef PICO_STATUS (PICO_CALL *getValuesBulkFn)(int16_t, uint32_t *, uint32_t, uint32_t, uint32_t, int32_t, int16_t *);
typedef PICO_STATUS (PICO_CALL *setSigGenBuiltInFn)(int16_t, int32_t, uint32_t, int16_t, float, float, float, float, int32_t, int32_t, uint32_t, uint32_t, int32_t, int32_t, int16_t);
typedef PICO_STATUS (PICO_CALL *setSigGenArbitraryFn)(int16_t, int32_t, uint32_t, uint32_t, uint32_t, uint32_t, uint32_t, int16_t *, int32_t, int32_t, int32_t, int32_t, uint32_t, uint32_t, int32_t, int32_t, int16_t);

static PICO_STATUS call_openUnit(void *fn, int16_t *handle, int8_t *serial) {
	return ((openUnitFn)fn)(handle, serial);
}

static PICO_STATUS call_handle(void *fn, int16_t handle) {
	return ((handleFn)fn)(handle);
}

static PICO_STATUS call_setChannel(void *fn, int16_t handle, int32_t channel, int16_t enabled, int32_t coupling, int32_t range, float offset) {
	return ((setChannelFn)fn)(handle, channel, enabled, coupling, range, offset);
}

static PICO_STATUS call_getUnitInfo(void *fn, int16_t handle, int8_t *buf, int16_t len, int16_t *required, uint32_t info) {
	return ((getUnitInfoFn)fn)(handle, buf, len, required, info);
}

static PICO_STATUS call_flashLed(void *fn, int16_t handle, int16_t start) {
	return ((flashLedFn)fn)(handle, start);
}

static PICO_STATUS call_setSimpleTrigger(void *fn, int16_t handle, int16_t enable, int32_t source, int16_t threshold, int32_t direction, uint32_t delay, int16_t autoTriggerMs) {
	return ((setSimpleTriggerFn)fn)(handle, enable, source, threshold, direction, delay, autoTriggerMs);
}

static PICO_STATUS call_setNoOfCaptures(void *fn, int16_t handle, uint32_t captures) {
	return ((setNoOfCapturesFn)fn)(handle, captures);
}

static PICO_STATUS call_memorySegments(void *fn, int16_t handle, uint32_t segments, int32_t *maxSamples) {
	return ((memorySegmentsFn)fn)(handle, segments, maxSamples);
}

static PICO_STATUS call_getMaxSegments(void *fn, int16_t handle, uint32_t *maxSegments) {
	return ((getMaxSegmentsFn)fn)(handle, maxSegments);
}

static PICO_STATUS call_runBlock(void *fn, int16_t handle, int32_t pre, int32_t post, uint32_t timebase, int16_t oversample, int32_t *ms, uint32_t segment) {
	return ((runBlockFn)fn)(handle, pre, post, timebase, oversample, ms, segment, NULL, NULL);
}

static PICO_STATUS call_isReady(void *fn, int16_t handle, int16_t *ready) {
	return ((isReadyFn)fn)(handle, ready);
}

static PICO_STATUS call_getTimebase2(void *fn, int16_t handle, uint32_t timebase, int32_t samples, float *intervalNs, int16_t oversample, int32_t *maxSamples, uint32_t segment) {
	return ((getTimebase2Fn)fn)(handle, timebase, samples, intervalNs, oversample, maxSamples, segment);
}

static PICO_STATUS call_setDataBuffer(void *fn, int16_t handle, int32_t channel, int16_t *buffer, int32_t length, uint32_t segment, int32_t mode) {
	return ((setDataBufferFn)fn)(handle, channel, buffer, length, segment, mode);
}

static PICO_STATUS call_getValues(void *fn, int16_t handle, uint32_t start, uint32_t *samples, uint32_t ratio, int32_t mode, uint32_t segment, int16_t *overflow) {
	return ((getValuesFn)fn)(handle, start, samples, ratio, mode, segment, overflow);
}

static PICO_STATUS call_getValuesBulk(void *fn, int16_t handle, uint32_t *samples, uint32_t from, uint32_t to, uint32_t ratio, int32_t mode, int16_t *overflow) {
	return ((getValuesBulkFn)fn)(handle, samples, from, to, ratio, mode, overflow);
}

static PICO_STATUS call_setSigGenBuiltIn(void *fn, int16_t handle, int32_t offset, uint32_t pkToPk, int16_t waveType, float startFreq, float stopFreq, float increment, float dwell, int32_t sweepType, int32_t operation, uint32_t shots, uint32_t sweeps, int32_t triggerType, int32_t triggerSource, int16_t extInThreshold) {
	return ((setSigGenBuiltInFn)fn)(handle, offset, pkToPk, waveType, startFreq, stopFreq, increment, dwell, sweepType, operation, shots, sweeps, triggerType, triggerSource, extInThreshold);
}

static PICO_STATUS call_setSigGenArbitrary(void *fn, int16_t handle, int32_t offset, uint32_t pkToPk, uint32_t startDelta, uint32_t stopDelta, uint32_t deltaIncrement, uint32_t dwellCount, int16_t *waveform, int32_t waveformSize, int32_t sweepType, int32_t operation, int32_t indexMode, uint32_t shots, uint32_t sweeps, int32_t triggerType, int32_t triggerSource, int16_t extInThreshold) {
	return ((setSigGenArbitraryFn)fn)(handle, offset, pkToPk, startDelta, stopDelta, deltaIncrement, dwellCount, waveform, waveformSize, sweepType, operation, indexMode, shots, sweeps, triggerType, triggerSource, extInThreshold);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

const (
	prefix              = "ps3000a"
	picoStatusNullParam = 0x16
)

// Library is a loaded ps3000a shared library. Calls for different unit
// handles may run concurrently.
type Library struct {
	handle unsafe.Pointer
	fns    entryPoints
	pinned pinSet
}

type entryPoints struct {
	openUnit           unsafe.Pointer
	closeUnit          unsafe.Pointer
	setChannel         unsafe.Pointer
	stop               unsafe.Pointer
	getUnitInfo        unsafe.Pointer
	flashLed           unsafe.Pointer
	setSimpleTrigger   unsafe.Pointer
	setNoOfCaptures    unsafe.Pointer
	memorySegments     unsafe.Pointer
	getMaxSegments     unsafe.Pointer
	runBlock           unsafe.Pointer
	isReady            unsafe.Pointer
	pingUnit           unsafe.Pointer
	getTimebase2       unsafe.Pointer
	setDataBuffer      unsafe.Pointer
	getValues          unsafe.Pointer
	getValuesBulk      unsafe.Pointer
	setSigGenBuiltIn   unsafe.Pointer
	setSigGenArbitrary unsafe.Pointer
}

// symbols lists every entry point resolved at load time, keyed by the name
// without the ps3000a prefix.
func (e *entryPoints) symbols() map[string]*unsafe.Pointer {
	return map[string]*unsafe.Pointer{
		"OpenUnit":           &e.openUnit,
		"CloseUnit":          &e.closeUnit,
		"SetChannel":         &e.setChannel,
		"Stop":               &e.stop,
		"GetUnitInfo":        &e.getUnitInfo,
		"FlashLed":           &e.flashLed,
		"SetSimpleTrigger":   &e.setSimpleTrigger,
		"SetNoOfCaptures":    &e.setNoOfCaptures,
		"MemorySegments":     &e.memorySegments,
		"GetMaxSegments":     &e.getMaxSegments,
		"RunBlock":           &e.runBlock,
		"IsReady":            &e.isReady,
		"PingUnit":           &e.pingUnit,
		"GetTimebase2":       &e.getTimebase2,
		"SetDataBuffer":      &e.setDataBuffer,
		"GetValues":          &e.getValues,
		"GetValuesBulk":      &e.getValuesBulk,
		"SetSigGenBuiltIn":   &e.setSigGenBuiltIn,
		"SetSigGenArbitrary": &e.setSigGenArbitrary,
	}
}

// Load loads the vendor library using the platform's default library name.
func Load() (*Library, error) {
	return LoadFrom(libraryName)
}

// LoadFrom loads the vendor library from the given file name or path and
// resolves every entry point.
func LoadFrom(name string) (*Library, error) {
	var msg errBuf
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	handle := C.pico_dlopen_err(cname, msg.ptr(), msg.size())
	if handle == nil {
		return nil, fmt.Errorf("error loading %s: %w", name, msg.err())
	}
	lib := &Library{handle: handle}
	for sym, dst := range lib.fns.symbols() {
		csym := C.CString(prefix + sym)
		fn := C.pico_dlsym_err(handle, csym, msg.ptr(), msg.size())
		C.free(unsafe.Pointer(csym))
		if fn == nil {
			err := msg.err()
			C.pico_dlclose(handle)
			return nil, fmt.Errorf("error resolving %s%s in %s: %w", prefix, sym, name, err)
		}
		*dst = fn
	}
	return lib, nil
}

type errBuf [512]C.char

func (b *errBuf) ptr() *C.char { return &b[0] }
func (b *errBuf) size() C.size_t { return C.size_t(len(b)) }

func (b *errBuf) err() error {
	if b[0] == 0 {
		return errors.New("library or symbol not found")
	}
	return errors.New(C.GoString(&b[0]))
}

// Close releases every pinned buffer and unloads the library. Units must be
// closed first.
func (l *Library) Close() error {
	l.pinned.releaseAll()
	var msg errBuf
	if C.pico_dlclose_err(l.handle, msg.ptr(), msg.size()) != 0 {
		return fmt.Errorf("error unloading %s: %w", libraryName, msg.err())
	}
	return nil
}

// OpenUnit implements ps3000a.Library.
func (l *Library) OpenUnit(serial *string) (int16, uint32) {
	var handle C.int16_t
	var cserial *C.int8_t
	if serial != nil {
		cs := C.CString(*serial)
		defer C.free(unsafe.Pointer(cs))
		cserial = (*C.int8_t)(unsafe.Pointer(cs))
	}
	status := C.call_openUnit(l.fns.openUnit, &handle, cserial)
	return int16(handle), uint32(status)
}

// CloseUnit implements ps3000a.Library. Buffers still registered for the
// handle are unpinned.
func (l *Library) CloseUnit(handle int16) uint32 {
	status := C.call_handle(l.fns.closeUnit, C.int16_t(handle))
	l.pinned.releaseHandle(handle)
	return uint32(status)
}

// SetChannel implements ps3000a.Library.
func (l *Library) SetChannel(handle int16, channel int32, enabled int16, coupling int32, vrange int32, analogOffset float32) uint32 {
	return uint32(C.call_setChannel(l.fns.setChannel, C.int16_t(handle), C.int32_t(channel),
		C.int16_t(enabled), C.int32_t(coupling), C.int32_t(vrange), C.float(analogOffset)))
}

// Stop implements ps3000a.Library.
func (l *Library) Stop(handle int16) uint32 {
	return uint32(C.call_handle(l.fns.stop, C.int16_t(handle)))
}

// GetUnitInfo implements ps3000a.Library.
func (l *Library) GetUnitInfo(handle int16, buf []byte, info uint32) (int16, uint32) {
	var required C.int16_t
	if len(buf) == 0 {
		return 0, picoStatusNullParam
	}
	length := len(buf)
	if length > 32767 {
		length = 32767
	}
	status := C.call_getUnitInfo(l.fns.getUnitInfo, C.int16_t(handle),
		(*C.int8_t)(unsafe.Pointer(&buf[0])), C.int16_t(length), &required, C.uint32_t(info))
	return int16(required), uint32(status)
}

// FlashLed implements ps3000a.Library.
func (l *Library) FlashLed(handle int16, start int16) uint32 {
	return uint32(C.call_flashLed(l.fns.flashLed, C.int16_t(handle), C.int16_t(start)))
}

// SetSimpleTrigger implements ps3000a.Library.
func (l *Library) SetSimpleTrigger(handle int16, enable int16, source int32, threshold int16, direction int32, delay uint32, autoTriggerMs int16) uint32 {
	return uint32(C.call_setSimpleTrigger(l.fns.setSimpleTrigger, C.int16_t(handle),
		C.int16_t(enable), C.int32_t(source), C.int16_t(threshold), C.int32_t(direction),
		C.uint32_t(delay), C.int16_t(autoTriggerMs)))
}

// SetNoOfCaptures implements ps3000a.Library.
func (l *Library) SetNoOfCaptures(handle int16, captures uint32) uint32 {
	return uint32(C.call_setNoOfCaptures(l.fns.setNoOfCaptures, C.int16_t(handle), C.uint32_t(captures)))
}

// MemorySegments implements ps3000a.Library.
func (l *Library) MemorySegments(handle int16, segments uint32) (int32, uint32) {
	var maxSamples C.int32_t
	status := C.call_memorySegments(l.fns.memorySegments, C.int16_t(handle), C.uint32_t(segments), &maxSamples)
	return int32(maxSamples), uint32(status)
}

// GetMaxSegments implements ps3000a.Library.
func (l *Library) GetMaxSegments(handle int16) (uint32, uint32) {
	var maxSegments C.uint32_t
	status := C.call_getMaxSegments(l.fns.getMaxSegments, C.int16_t(handle), &maxSegments)
	return uint32(maxSegments), uint32(status)
}

// RunBlock implements ps3000a.Library. No ready callback is registered;
// completion is polled with IsReady.
func (l *Library) RunBlock(handle int16, preTrigger int32, postTrigger int32, timebase uint32, oversample int16, segmentIndex uint32) (int32, uint32) {
	var ms C.int32_t
	status := C.call_runBlock(l.fns.runBlock, C.int16_t(handle), C.int32_t(preTrigger),
		C.int32_t(postTrigger), C.uint32_t(timebase), C.int16_t(oversample), &ms, C.uint32_t(segmentIndex))
	return int32(ms), uint32(status)
}

// IsReady implements ps3000a.Library.
func (l *Library) IsReady(handle int16) (int16, uint32) {
	var ready C.int16_t
	status := C.call_isReady(l.fns.isReady, C.int16_t(handle), &ready)
	return int16(ready), uint32(status)
}

// PingUnit implements ps3000a.Library.
func (l *Library) PingUnit(handle int16) uint32 {
	return uint32(C.call_handle(l.fns.pingUnit, C.int16_t(handle)))
}

// GetTimebase2 implements ps3000a.Library.
func (l *Library) GetTimebase2(handle int16, timebase uint32, samples int32, oversample int16, segmentIndex uint32) (float32, int32, uint32) {
	var intervalNs C.float
	var maxSamples C.int32_t
	status := C.call_getTimebase2(l.fns.getTimebase2, C.int16_t(handle), C.uint32_t(timebase),
		C.int32_t(samples), &intervalNs, C.int16_t(oversample), &maxSamples, C.uint32_t(segmentIndex))
	return float32(intervalNs), int32(maxSamples), uint32(status)
}

// SetDataBuffer implements ps3000a.Library. The driver writes into the
// buffer after the call returns, so the buffer is pinned until it is
// replaced, cleared, or its unit closed.
func (l *Library) SetDataBuffer(handle int16, channel int32, buffer []int16, segmentIndex uint32, mode int32) uint32 {
	key := bufferKey{handle: handle, channel: channel, segment: segmentIndex}
	var ptr *C.int16_t
	var pinner *runtime.Pinner
	if len(buffer) > 0 {
		pinner = new(runtime.Pinner)
		pinner.Pin(&buffer[0])
		ptr = (*C.int16_t)(unsafe.Pointer(&buffer[0]))
	}
	status := C.call_setDataBuffer(l.fns.setDataBuffer, C.int16_t(handle), C.int32_t(channel),
		ptr, C.int32_t(len(buffer)), C.uint32_t(segmentIndex), C.int32_t(mode))
	if status != 0 {
		if pinner != nil {
			pinner.Unpin()
		}
		return uint32(status)
	}
	l.pinned.replace(key, pinner)
	return uint32(status)
}

// GetValues implements ps3000a.Library.
func (l *Library) GetValues(handle int16, startIndex uint32, samples uint32, ratio uint32, mode int32, segmentIndex uint32) (uint32, int16, uint32) {
	n := C.uint32_t(samples)
	var overflow C.int16_t
	status := C.call_getValues(l.fns.getValues, C.int16_t(handle), C.uint32_t(startIndex),
		&n, C.uint32_t(ratio), C.int32_t(mode), C.uint32_t(segmentIndex), &overflow)
	return uint32(n), int16(overflow), uint32(status)
}

// GetValuesBulk implements ps3000a.Library.
func (l *Library) GetValuesBulk(handle int16, samples uint32, fromSegment uint32, toSegment uint32, ratio uint32, mode int32, overflow []int16) (uint32, uint32) {
	if len(overflow) == 0 {
		return 0, picoStatusNullParam
	}
	n := C.uint32_t(samples)
	status := C.call_getValuesBulk(l.fns.getValuesBulk, C.int16_t(handle), &n,
		C.uint32_t(fromSegment), C.uint32_t(toSegment), C.uint32_t(ratio), C.int32_t(mode),
		(*C.int16_t)(unsafe.Pointer(&overflow[0])))
	return uint32(n), uint32(status)
}

// SetSigGenBuiltIn implements ps3000a.Library.
func (l *Library) SetSigGenBuiltIn(handle int16, offsetVoltage int32, pkToPk uint32, waveType int16, startFrequency float32, stopFrequency float32, increment float32, dwellTime float32, sweepType int32, operation int32, shots uint32, sweeps uint32, triggerType int32, triggerSource int32, extInThreshold int16) uint32 {
	return uint32(C.call_setSigGenBuiltIn(l.fns.setSigGenBuiltIn, C.int16_t(handle),
		C.int32_t(offsetVoltage), C.uint32_t(pkToPk), C.int16_t(waveType),
		C.float(startFrequency), C.float(stopFrequency), C.float(increment), C.float(dwellTime),
		C.int32_t(sweepType), C.int32_t(operation), C.uint32_t(shots), C.uint32_t(sweeps),
		C.int32_t(triggerType), C.int32_t(triggerSource), C.int16_t(extInThreshold)))
}

// SetSigGenArbitrary implements ps3000a.Library.
func (l *Library) SetSigGenArbitrary(handle int16, offsetVoltage int32, pkToPk uint32, startDeltaPhase uint32, stopDeltaPhase uint32, deltaPhaseIncrement uint32, dwellCount uint32, waveform []int16, sweepType int32, operation int32, indexMode int32, shots uint32, sweeps uint32, triggerType int32, triggerSource int32, extInThreshold int16) uint32 {
	if len(waveform) == 0 {
		return picoStatusNullParam
	}
	return uint32(C.call_setSigGenArbitrary(l.fns.setSigGenArbitrary, C.int16_t(handle),
		C.int32_t(offsetVoltage), C.uint32_t(pkToPk), C.uint32_t(startDeltaPhase),
		C.uint32_t(stopDeltaPhase), C.uint32_t(deltaPhaseIncrement), C.uint32_t(dwellCount),
		(*C.int16_t)(unsafe.Pointer(&waveform[0])), C.int32_t(len(waveform)),
		C.int32_t(sweepType), C.int32_t(operation), C.int32_t(indexMode), C.uint32_t(shots),
		C.uint32_t(sweeps), C.int32_t(triggerType), C.int32_t(triggerSource),
		C.int16_t(extInThreshold)))
}
