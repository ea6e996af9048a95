// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segdisplay is a container for the TM1637 7-segment display driver
// and the tools built around it.
//
// See tm1637 for the driver, tm1637/tm1637test for a pin level emulator,
// screen7seg and image7seg to look at the result without hardware.
package segdisplay
