// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package picousb

import (
	"fmt"
	"testing"

	c "github.com/smartystreets/goconvey/convey"
)

func TestIsPico(t *testing.T) {
	testCases := []struct {
		vendorID uint16
		pico     bool
	}{
		{0x0ce9, true},
		{0x09db, false},
		{0x0000, false},
	}
	c.Convey("Given the need to filter USB devices by vendor", t, func() {
		for _, testCase := range testCases {
			conveyance := fmt.Sprintf("When the vendor ID is %#04x", testCase.vendorID)
			c.Convey(conveyance, func() {
				conveyance := fmt.Sprintf("Then the device is a Pico unit: %t", testCase.pico)
				c.Convey(conveyance, func() {
					c.So(isPico(testCase.vendorID), c.ShouldEqual, testCase.pico)
				})
			})
		}
	})
}

func TestFind(t *testing.T) {
	units := []Device{
		{VendorID: VendorID, ProductID: 0x1016, Serial: "AB123/0001"},
		{VendorID: VendorID, ProductID: 0x1016, Serial: "AB123/0002"},
	}
	got, err := find(units, "AB123/0002")
	if err != nil {
		t.Fatalf("find: %s", err)
	}
	if got != units[1] {
		t.Errorf("Expected %s, got %s", units[1], got)
	}
	if got.String() != "0ce9:1016 S/N AB123/0002" {
		t.Errorf("Unexpected String() %q", got)
	}
	if _, err := find(units, "missing"); err == nil {
		t.Errorf("Expected an error for a missing serial")
	}
}
