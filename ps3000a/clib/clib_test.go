// Copyright (c) 2026 The picoscope developers. All rights reserved.
// Project site: https://github.com/gotmc/picoscope
// Use of this source code is governed by a MIT-style license that
// can be found in the LICENSE.txt file for the project.

package clib_test

import (
	"strings"
	"testing"

	"github.com/gotmc/picoscope/ps3000a"
	"github.com/gotmc/picoscope/ps3000a/clib"
)

var _ ps3000a.Library = (*clib.Library)(nil)

func TestLoadMissingLibrary(t *testing.T) {
	const name = "libps3000a-does-not-exist.so"
	lib, err := clib.LoadFrom(name)
	if err == nil {
		lib.Close()
		t.Fatalf("Expected an error loading %s", name)
	}
	if !strings.Contains(err.Error(), name) {
		t.Errorf("Expected the library name in %q", err)
	}
}
