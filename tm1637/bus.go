// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// bus bit-bangs the TM1637 serial protocol on two output pins.
//
// Once a pin write fails, err is set and every following write is skipped
// until the next transaction resets it.
type bus struct {
	clk   gpio.PinOut
	dio   gpio.PinOut
	delay time.Duration
	err   error
}

func (b *bus) out(p gpio.PinOut, l gpio.Level) {
	if b.err != nil {
		return
	}
	if err := p.Out(l); err != nil {
		b.err = &PinError{Pin: p.Name(), Level: l, Err: err}
		return
	}
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
}

// start signals the beginning of a transaction: DIO falls while CLK is high.
func (b *bus) start() {
	b.out(b.clk, gpio.High)
	b.out(b.dio, gpio.High)
	b.out(b.dio, gpio.Low)
	b.out(b.clk, gpio.Low)
}

// stop signals the end of a transaction: DIO rises while CLK is high.
func (b *bus) stop() {
	b.out(b.clk, gpio.Low)
	b.out(b.dio, gpio.Low)
	b.out(b.clk, gpio.High)
	b.out(b.dio, gpio.High)
}

// writeByte shifts v out least significant bit first, then clocks the
// acknowledge slot with DIO released high.
func (b *bus) writeByte(v byte) {
	for i := 0; i < 8; i++ {
		b.out(b.clk, gpio.Low)
		b.out(b.dio, v&0x01 != 0)
		b.out(b.clk, gpio.High)
		v >>= 1
	}
	b.out(b.clk, gpio.Low)
	b.out(b.dio, gpio.High)
	b.out(b.clk, gpio.High)
}

// send writes one framed transaction.
func (b *bus) send(data ...byte) {
	b.start()
	for _, v := range data {
		b.writeByte(v)
	}
	b.stop()
}

// tx runs a sequence of frames and returns the first pin error, if any.
func (b *bus) tx(frames ...[]byte) error {
	b.err = nil
	for _, f := range frames {
		b.send(f...)
		if b.err != nil {
			break
		}
	}
	return b.err
}
