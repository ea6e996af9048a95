// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/GermanBionicSystems/segdisplay/tm1637"
	"github.com/GermanBionicSystems/segdisplay/tm1637/tm1637test"
)

func TestRun(t *testing.T) {
	c := tm1637test.NewChip()
	dev, err := tm1637.New(c.CLK, c.DIO, nil)
	if err != nil {
		t.Fatal(err)
	}
	cmds := [][]string{
		{"show", "1234"},
		{"point", "on"},
		{"brightness", "2"},
		{"bit", "9", "3"},
	}
	for _, args := range cmds {
		if err := run(dev, args, false, "", nil); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	if want := [tm1637.NumDigits]byte{1, 2, 3, 9}; dev.Digits() != want {
		t.Errorf("digits %x expected %x", dev.Digits(), want)
	}
	segs := segments(dev)
	if want := []byte{0x06, 0x5b | 0x80, 0x4f, 0x6f}; string(segs) != string(want) {
		t.Errorf("segments %x expected %x", segs, want)
	}
	if s := c.State(); string(s.RAM[:4]) != string(segs) || s.Brightness != 2 {
		t.Errorf("chip RAM %x brightness %d", s.RAM[:4], s.Brightness)
	}
	if err := run(dev, []string{"clear"}, false, "", nil); err != nil {
		t.Fatal(err)
	}
	if want := [tm1637.NumDigits]byte{tm1637.Blank, tm1637.Blank, tm1637.Blank, tm1637.Blank}; dev.Digits() != want {
		t.Errorf("digits %x after clear", dev.Digits())
	}
}

func TestRunErrors(t *testing.T) {
	c := tm1637test.NewChip()
	dev, err := tm1637.New(c.CLK, c.DIO, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, args := range [][]string{
		{"blink"},
		{"show"},
		{"show", "twelve"},
		{"point", "maybe"},
		{"brightness", "-1"},
		{"show", "-5"},
	} {
		if err := run(dev, args, false, "", nil); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestRpioNumber(t *testing.T) {
	for in, want := range map[string]int{"GPIO23": 23, "gpio4": 4, "17": 17} {
		if n, err := rpioNumber(in); err != nil || n != want {
			t.Errorf("rpioNumber(%q)=%d, %v expected %d", in, n, err, want)
		}
	}
	if _, err := rpioNumber("SPI0"); err == nil {
		t.Error("expected an error")
	}
}
