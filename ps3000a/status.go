// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package ps3000a

import "fmt"

// Status is the PICO_STATUS code returned by every driver entry point. Zero
// is success.
type Status uint32

// Common status codes.
const (
	StatusOK                      Status = 0x00
	StatusMaxUnitsOpened          Status = 0x01
	StatusMemoryFail              Status = 0x02
	StatusNotFound                Status = 0x03
	StatusFirmwareFail            Status = 0x04
	StatusOpenOperationInProgress Status = 0x05
	StatusOperationFailed         Status = 0x06
	StatusNotResponding           Status = 0x07
	StatusConfigFail              Status = 0x08
	StatusKernelDriverTooOld      Status = 0x09
	StatusEEPROMCorrupt           Status = 0x0a
	StatusOSNotSupported          Status = 0x0b
	StatusInvalidHandle           Status = 0x0c
	StatusInvalidParameter        Status = 0x0d
	StatusInvalidTimebase         Status = 0x0e
	StatusInvalidVoltageRange     Status = 0x0f
	StatusInvalidChannel          Status = 0x10
	StatusInvalidTriggerChannel   Status = 0x11
	StatusInvalidConditionChannel Status = 0x12
	StatusNoSignalGenerator       Status = 0x13
	StatusStreamingFailed         Status = 0x14
	StatusBlockModeFailed         Status = 0x15
	StatusNullParameter           Status = 0x16
	StatusETSModeSet              Status = 0x17
	StatusDataNotAvailable        Status = 0x18
	StatusStringBufferTooSmall    Status = 0x19
	StatusETSNotSupported         Status = 0x1a
	StatusAutoTriggerTimeTooShort Status = 0x1b
	StatusBufferStall             Status = 0x1c
	StatusTooManySamples          Status = 0x1d
	StatusTooManySegments         Status = 0x1e
	StatusPulseWidthQualifier     Status = 0x1f
	StatusDelay                   Status = 0x20
	StatusSourceDetails           Status = 0x21
	StatusConditions              Status = 0x22
	StatusUserCallback            Status = 0x23
	StatusDeviceSampling          Status = 0x24
	StatusNoSamplesAvailable      Status = 0x25
	StatusSegmentOutOfRange       Status = 0x26
	StatusBusy                    Status = 0x27
	StatusStartIndexInvalid       Status = 0x28
	StatusInvalidInfo             Status = 0x29
	StatusInfoUnavailable         Status = 0x2a
	StatusInvalidSampleInterval   Status = 0x2b
)

var statusStrings = map[Status]string{
	StatusOK:                      "PICO_OK",
	StatusMaxUnitsOpened:          "PICO_MAX_UNITS_OPENED",
	StatusMemoryFail:              "PICO_MEMORY_FAIL",
	StatusNotFound:                "PICO_NOT_FOUND",
	StatusFirmwareFail:            "PICO_FW_FAIL",
	StatusOpenOperationInProgress: "PICO_OPEN_OPERATION_IN_PROGRESS",
	StatusOperationFailed:         "PICO_OPERATION_FAILED",
	StatusNotResponding:           "PICO_NOT_RESPONDING",
	StatusConfigFail:              "PICO_CONFIG_FAIL",
	StatusKernelDriverTooOld:      "PICO_KERNEL_DRIVER_TOO_OLD",
	StatusEEPROMCorrupt:           "PICO_EEPROM_CORRUPT",
	StatusOSNotSupported:          "PICO_OS_NOT_SUPPORTED",
	StatusInvalidHandle:           "PICO_INVALID_HANDLE",
	StatusInvalidParameter:        "PICO_INVALID_PARAMETER",
	StatusInvalidTimebase:         "PICO_INVALID_TIMEBASE",
	StatusInvalidVoltageRange:     "PICO_INVALID_VOLTAGE_RANGE",
	StatusInvalidChannel:          "PICO_INVALID_CHANNEL",
	StatusInvalidTriggerChannel:   "PICO_INVALID_TRIGGER_CHANNEL",
	StatusInvalidConditionChannel: "PICO_INVALID_CONDITION_CHANNEL",
	StatusNoSignalGenerator:       "PICO_NO_SIGNAL_GENERATOR",
	StatusStreamingFailed:         "PICO_STREAMING_FAILED",
	StatusBlockModeFailed:         "PICO_BLOCK_MODE_FAILED",
	StatusNullParameter:           "PICO_NULL_PARAMETER",
	StatusETSModeSet:              "PICO_ETS_MODE_SET",
	StatusDataNotAvailable:        "PICO_DATA_NOT_AVAILABLE",
	StatusStringBufferTooSmall:    "PICO_STRING_BUFFER_TOO_SMALL",
	StatusETSNotSupported:         "PICO_ETS_NOT_SUPPORTED",
	StatusAutoTriggerTimeTooShort: "PICO_AUTO_TRIGGER_TIME_TOO_SHORT",
	StatusBufferStall:             "PICO_BUFFER_STALL",
	StatusTooManySamples:          "PICO_TOO_MANY_SAMPLES",
	StatusTooManySegments:         "PICO_TOO_MANY_SEGMENTS",
	StatusPulseWidthQualifier:     "PICO_PULSE_WIDTH_QUALIFIER",
	StatusDelay:                   "PICO_DELAY",
	StatusSourceDetails:           "PICO_SOURCE_DETAILS",
	StatusConditions:              "PICO_CONDITIONS",
	StatusUserCallback:            "PICO_USER_CALLBACK",
	StatusDeviceSampling:          "PICO_DEVICE_SAMPLING",
	StatusNoSamplesAvailable:      "PICO_NO_SAMPLES_AVAILABLE",
	StatusSegmentOutOfRange:       "PICO_SEGMENT_OUT_OF_RANGE",
	StatusBusy:                    "PICO_BUSY",
	StatusStartIndexInvalid:       "PICO_STARTINDEX_INVALID",
	StatusInvalidInfo:             "PICO_INVALID_INFO",
	StatusInfoUnavailable:         "PICO_INFO_UNAVAILABLE",
	StatusInvalidSampleInterval:   "PICO_INVALID_SAMPLE_INTERVAL",
}

// String implements the Stringer interface for Status. Codes without a
// known name are printed in hex.
func (s Status) String() string {
	if name, ok := statusStrings[s]; ok {
		return name
	}
	return fmt.Sprintf("PICO_STATUS(%#x)", uint32(s))
}

// DriverError is returned when a driver entry point reports a non-zero
// status. Op names the entry point.
type DriverError struct {
	Op     string
	Status Status
}

// Error satisfies the error interface.
func (e *DriverError) Error() string {
	return fmt.Sprintf("ps3000a: %s failed with status %#x (%s)", e.Op, uint32(e.Status), e.Status)
}

// ConfigurationError is returned before any driver call when the arguments
// are inconsistent with the unit's current segment or sample configuration.
type ConfigurationError struct {
	Msg string
}

// Error satisfies the error interface.
func (e *ConfigurationError) Error() string {
	return "ps3000a: " + e.Msg
}

func configErrorf(format string, a ...interface{}) error {
	return &ConfigurationError{Msg: fmt.Sprintf(format, a...)}
}

// check converts a status into a *DriverError, or nil on success.
func check(op string, status uint32) error {
	if status != uint32(StatusOK) {
		return &DriverError{Op: op, Status: Status(status)}
	}
	return nil
}
