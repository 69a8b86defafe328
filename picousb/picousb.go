// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

// Package picousb lists the Pico Technology units attached over USB so a
// caller can choose a serial number to open with the vendor driver. The
// vendor driver owns all other USB traffic.
package picousb

import (
	"fmt"

	"github.com/gotmc/libusb"
)

// VendorID is the USB vendor ID of Pico Technology.
const VendorID = 0x0ce9

// Device describes an attached Pico Technology unit.
type Device struct {
	VendorID  uint16
	ProductID uint16
	Serial    string
}

// String implements the Stringer interface for Device.
func (d Device) String() string {
	return fmt.Sprintf("%04x:%04x S/N %s", d.VendorID, d.ProductID, d.Serial)
}

// Init initializes a new libusb session/context.
func Init() (*libusb.Context, error) {
	return libusb.NewContext()
}

// List returns every Pico Technology unit in the USB context.
func List(ctx *libusb.Context) ([]Device, error) {
	usbDevices, err := ctx.GetDeviceList()
	if err != nil {
		return nil, fmt.Errorf("error getting USB device list: %w", err)
	}
	var units []Device
	for _, usbDevice := range usbDevices {
		desc, err := usbDevice.GetDeviceDescriptor()
		if err != nil {
			return units, fmt.Errorf("error getting device descriptor: %w", err)
		}
		// Only open devices from Pico; there's no reason to read the S/N of
		// anything else.
		if !isPico(uint16(desc.VendorID)) {
			continue
		}
		dh, err := usbDevice.Open()
		if err != nil {
			return units, fmt.Errorf("error getting device handle: %w", err)
		}
		serial, err := dh.GetStringDescriptorASCII(desc.SerialNumberIndex)
		dh.Close()
		if err != nil {
			return units, fmt.Errorf("error reading S/N: %w", err)
		}
		units = append(units, Device{
			VendorID:  uint16(desc.VendorID),
			ProductID: uint16(desc.ProductID),
			Serial:    serial,
		})
	}
	return units, nil
}

// Find returns the attached unit with the given serial number.
func Find(ctx *libusb.Context, serial string) (Device, error) {
	units, err := List(ctx)
	if err != nil {
		return Device{}, err
	}
	return find(units, serial)
}

func find(units []Device, serial string) (Device, error) {
	for _, unit := range units {
		if unit.Serial == serial {
			return unit, nil
		}
	}
	return Device{}, fmt.Errorf("couldn't find Pico unit %s", serial)
}

func isPico(vendorID uint16) bool {
	return vendorID == VendorID
}
