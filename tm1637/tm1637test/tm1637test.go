// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tm1637test emulates a TM1637 at the pin level.
//
// A Chip exposes two gpio.PinOut, CLK and DIO. Every level written to them is
// decoded the way the real chip would: start and stop conditions, bytes
// clocked in least significant bit first, acknowledge slots. Complete frames
// are interpreted as data, address and display control commands and applied
// to an emulated display RAM.
package tm1637test

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// NumGrids is the number of display registers of the chip.
const NumGrids = 6

// Write is one level written to a pin.
type Write struct {
	Pin string
	L   gpio.Level
}

func (w Write) String() string {
	return fmt.Sprintf("%s=%s", w.Pin, w.L)
}

// State is the emulated chip content.
type State struct {
	RAM        [NumGrids]byte
	Brightness byte
	On         bool
}

// Chip is an emulated TM1637.
type Chip struct {
	CLK *Pin
	DIO *Pin

	// OnChange, if set, is called with the new state after every frame that
	// wrote the display RAM or the display control. It is called without
	// the chip lock held.
	OnChange func(State)

	mu      sync.Mutex
	clk     bool
	dio     bool
	inFrame bool
	nbits   int
	cur     byte
	ackNext bool
	frame   []byte
	fixed   bool
	frames  [][]byte
	writes  []Write
	state   State
}

// NewChip returns a chip with both lines idle high.
func NewChip() *Chip {
	c := &Chip{clk: true, dio: true}
	c.CLK = &Pin{chip: c, name: "CLK", number: 0}
	c.DIO = &Pin{chip: c, name: "DIO", number: 1}
	return c
}

// Frames returns every complete frame received, each one being the bytes
// sent between a start and a stop condition.
func (c *Chip) Frames() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.frames))
	for i, f := range c.frames {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// Writes returns every pin write received, in order.
func (c *Chip) Writes() []Write {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Write(nil), c.writes...)
}

// State returns the emulated display content.
func (c *Chip) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset forgets the recorded frames and writes. The display state is kept.
func (c *Chip) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
	c.writes = nil
}

func (c *Chip) out(p *Pin, l gpio.Level) error {
	c.mu.Lock()
	if p.Fail != nil {
		c.mu.Unlock()
		return p.Fail
	}
	c.writes = append(c.writes, Write{Pin: p.name, L: l})
	changed := false
	high := bool(l)
	if p == c.CLK {
		rising := !c.clk && high
		c.clk = high
		if rising && c.inFrame {
			c.clock()
		}
	} else {
		prev := c.dio
		c.dio = high
		if c.clk {
			switch {
			case prev && !high:
				c.begin()
			case !prev && high && c.inFrame:
				changed = c.end()
			}
		}
	}
	s := c.state
	cb := c.OnChange
	c.mu.Unlock()
	if changed && cb != nil {
		cb(s)
	}
	return nil
}

// begin handles a start condition. A repeated start drops the frame in
// progress.
func (c *Chip) begin() {
	c.inFrame = true
	c.nbits = 0
	c.cur = 0
	c.ackNext = false
	c.frame = nil
}

// clock samples DIO on a CLK rising edge.
func (c *Chip) clock() {
	if c.ackNext {
		c.ackNext = false
		return
	}
	if c.dio {
		c.cur |= 1 << c.nbits
	}
	c.nbits++
	if c.nbits == 8 {
		c.frame = append(c.frame, c.cur)
		c.nbits = 0
		c.cur = 0
		c.ackNext = true
	}
}

// end handles a stop condition. Incomplete bytes are discarded.
func (c *Chip) end() bool {
	c.inFrame = false
	f := c.frame
	c.frame = nil
	if len(f) == 0 {
		return false
	}
	c.frames = append(c.frames, f)
	cmd := f[0]
	switch cmd & 0xc0 {
	case 0x40:
		// Bits 0-1 select write or key scan; only writes are emulated.
		c.fixed = cmd&0x04 != 0
	case 0xc0:
		addr := int(cmd & 0x0f)
		for _, v := range f[1:] {
			if addr < NumGrids {
				c.state.RAM[addr] = v
			}
			if !c.fixed {
				addr++
			}
		}
		return len(f) > 1
	case 0x80:
		c.state.On = cmd&0x08 != 0
		c.state.Brightness = cmd & 0x07
		return true
	}
	return false
}

// Pin is one of the two lines of a Chip.
type Pin struct {
	// Fail, when set, is returned by Out and the write is not applied.
	Fail error

	chip   *Chip
	name   string
	number int
}

func (p *Pin) String() string {
	return "TM1637TEST_" + p.name
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name returns the name of the pin.
func (p *Pin) Name() string {
	return p.name
}

// Number returns the number of the pin.
func (p *Pin) Number() int {
	return p.number
}

// Deprecated: returns "Out"
func (p *Pin) Function() string {
	return "Out"
}

// Out sets the level of the line and feeds the protocol decoder.
func (p *Pin) Out(l gpio.Level) error {
	return p.chip.out(p, l)
}

// PWM is not supported.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return fmt.Errorf("tm1637test: %s: PWM not supported", p.name)
}

var _ gpio.PinOut = &Pin{}
