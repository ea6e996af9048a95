// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tm1637 drives a 4 digit 7-segment LED display controlled by a
// Titan Micro TM1637.
//
// The chip is wired with two GPIO lines, CLK and DIO, and talks a two-wire
// protocol that looks like I²C without addressing. The protocol is generated
// in software by toggling the two pins (bit banging); the acknowledge slot
// the chip offers after each byte is clocked but never sampled, so an absent
// chip is not detected.
//
// Every digit update is a full three part transaction: a data command
// selecting fixed address mode, the address command followed by the segment
// pattern, and the display control command carrying the brightness.
//
// # Datasheet
//
// https://www.mcielectronics.cl/website_MCI/static/documents/Datasheet_TM1637.pdf
package tm1637
