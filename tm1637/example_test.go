// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637_test

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/segdisplay/tm1637"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	clk := gpioreg.ByName("GPIO23")
	dio := gpioreg.ByName("GPIO24")
	if clk == nil || dio == nil {
		log.Fatal("failed to find the CLK and DIO pins")
	}
	// Memory mapped GPIO toggles faster than the chip can follow.
	dev, err := tm1637.New(clk, dio, &tm1637.Opts{Delay: 5 * time.Microsecond})
	if err != nil {
		log.Fatalf("failed to initialize tm1637: %v", err)
	}
	if err := dev.SetBrightness(2); err != nil {
		log.Fatal(err)
	}
	for i := 0; i < 60; i++ {
		if err := dev.Show(1200+i, true); err != nil {
			log.Fatal(err)
		}
		if err := dev.Point(i%2 == 0); err != nil {
			log.Fatal(err)
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err := dev.Halt(); err != nil {
		log.Fatal(err)
	}
}
