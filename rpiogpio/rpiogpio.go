// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rpiogpio exposes Raspberry Pi GPIO lines driven through
// github.com/stianeikeland/go-rpio as gpio.PinOut.
//
// go-rpio maps /dev/gpiomem and toggles lines with plain memory writes, which
// is the fastest way to bit bang on a Pi when periph's host drivers are not
// an option.
package rpiogpio

import (
	"errors"
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrNotImplemented is returned for PWM.
var ErrNotImplemented = errors.New("rpiogpio: not implemented")

// Open maps the GPIO memory. It must be called once before using any Pin.
func Open() error {
	if err := rpio.Open(); err != nil {
		return fmt.Errorf("rpiogpio: %w", err)
	}
	return nil
}

// Close unmaps the GPIO memory.
func Close() error {
	return rpio.Close()
}

// Pin is a BCM numbered GPIO line set as output.
type Pin struct {
	p rpio.Pin
}

// New returns BCM line number set as output, driven low.
func New(number int) *Pin {
	p := rpio.Pin(number)
	p.Output()
	p.Low()
	return &Pin{p: p}
}

func (p *Pin) String() string {
	return p.Name()
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name returns the name of the GPIO pin.
func (p *Pin) Name() string {
	return fmt.Sprintf("GPIO%d", int(p.p))
}

// Number returns the BCM number of the GPIO pin.
func (p *Pin) Number() int {
	return int(p.p)
}

// Deprecated: returns "Out"
func (p *Pin) Function() string {
	return "Out"
}

// Out sets the level of the line. Memory mapped writes cannot fail.
func (p *Pin) Out(l gpio.Level) error {
	if l {
		p.p.High()
	} else {
		p.p.Low()
	}
	return nil
}

// Not implemented.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

var _ gpio.PinOut = &Pin{}
