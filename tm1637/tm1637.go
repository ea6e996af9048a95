// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

const (
	cmdDataFixedAddr byte = 0x44 // write display register, fixed address
	cmdAddr          byte = 0xc0 // address command, OR'd with grid 0-5
	cmdDisplayCtrl   byte = 0x80 // display control, OR'd with on bit and brightness
	displayOn        byte = 0x08

	// NumDigits is the number of positions on the display, 0 is leftmost.
	NumDigits = 4
	// MaxBrightness is the highest brightness level accepted by SetBrightness.
	MaxBrightness byte = 7
)

var (
	// ErrInvalidDigit is returned for digit values that have no encoding, or
	// by Bit in strict mode for values it would otherwise ignore.
	ErrInvalidDigit = errors.New("tm1637: invalid digit")
	// ErrInvalidPosition is returned by Bit in strict mode when the position
	// is outside 0-3.
	ErrInvalidPosition = errors.New("tm1637: invalid position")
	// ErrInvalidBrightness is returned by SetBrightness in strict mode when
	// the level is above MaxBrightness.
	ErrInvalidBrightness = errors.New("tm1637: invalid brightness")
	// ErrNegative is returned by Show for negative numbers.
	ErrNegative = errors.New("tm1637: negative numbers are not supported")
)

// PinError is returned when writing a level to CLK or DIO fails. The
// transaction in progress is abandoned; the next one starts with a fresh
// start condition.
type PinError struct {
	Pin   string
	Level gpio.Level
	Err   error
}

func (e *PinError) Error() string {
	return fmt.Sprintf("tm1637: writing %s to %s: %v", e.Level, e.Pin, e.Err)
}

func (e *PinError) Unwrap() error {
	return e.Err
}

// Opts holds the configuration options.
type Opts struct {
	// Strict makes Bit and SetBrightness return an error for arguments they
	// would otherwise silently ignore or clamp.
	Strict bool
	// Delay is slept after every pin write. Leave at 0 when the pin write is
	// slow enough on its own, a few microseconds otherwise.
	Delay time.Duration
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{}

// Dev is a handle to a TM1637 driving a 4 digit display.
//
// It is safe for concurrent use; every method is applied atomically with
// respect to the others.
type Dev struct {
	mu     sync.Mutex
	bus    bus
	strict bool

	digits     [NumDigits]byte
	brightness byte
	colon      bool
}

// New binds the display to its CLK and DIO pins, sets full brightness with
// the colon off and blanks every digit.
func New(clk, dio gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		bus:        bus{clk: clk, dio: dio, delay: opts.Delay},
		strict:     opts.Strict,
		brightness: MaxBrightness,
	}
	if err := d.Clear(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("TM1637{%s, %s}", d.bus.clk, d.bus.dio)
}

// Halt switches the display off. The digits are kept in the chip and come
// back on the next write.
//
// Implements conn.Resource.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bus.tx([]byte{cmdDisplayCtrl | d.brightness})
}

// Digits returns the value last written to each position. Values are the
// digit 0-9 or one of Blank and ZeroGlyph, not segment patterns.
func (d *Dev) Digits() [NumDigits]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.digits
}

// Brightness returns the current brightness level.
func (d *Dev) Brightness() byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

// Colon reports whether the colon is on.
func (d *Dev) Colon() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.colon
}

// Bit writes a single digit at position pos, 0 being the leftmost.
//
// digit is 0-9, Blank or ZeroGlyph. Any other combination is ignored and
// returns nil, unless the device was created with Opts.Strict.
func (d *Dev) Bit(digit byte, pos int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bit(digit, pos)
}

func (d *Dev) bit(digit byte, pos int) error {
	if pos < 0 || pos >= NumDigits {
		if d.strict {
			return ErrInvalidPosition
		}
		return nil
	}
	if digit != Blank && digit != ZeroGlyph && digit > 9 {
		if d.strict {
			return ErrInvalidDigit
		}
		return nil
	}
	seg, err := Encode(digit)
	if err != nil {
		return err
	}
	if pos == 1 && d.colon {
		seg |= ColonBit
	}
	err = d.bus.tx(
		[]byte{cmdDataFixedAddr},
		[]byte{cmdAddr | byte(pos), seg},
		[]byte{cmdDisplayCtrl | displayOn | d.brightness},
	)
	if err != nil {
		return err
	}
	d.digits[pos] = digit
	return nil
}

// Show displays n right aligned. Positions left of the most significant
// digit are blanked, or show 0 when fillWithZeros is set.
//
// Only the low 4 digits of n are displayed, so 12345 shows as 2345 and 10000
// as 0000.
func (d *Dev) Show(n int, fillWithZeros bool) error {
	if n < 0 {
		return ErrNegative
	}
	fill := Blank
	if fillWithZeros {
		fill = ZeroGlyph
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	v := n
	for pos := NumDigits - 1; pos >= 0; pos-- {
		digit := fill
		if pos == NumDigits-1 || v > 0 {
			digit = byte(v % 10)
		}
		if err := d.bit(digit, pos); err != nil {
			return err
		}
		v /= 10
	}
	return nil
}

// SetBrightness sets the brightness from 0 (dimmest) to 7 and rewrites every
// digit so it takes effect immediately. Higher levels are clamped to 7.
func (d *Dev) SetBrightness(level byte) error {
	if level > MaxBrightness {
		if d.strict {
			return ErrInvalidBrightness
		}
		level = MaxBrightness
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.brightness = level
	return d.rewrite(0, 1, 2, 3)
}

// Point turns the colon on or off. Only position 1 is rewritten.
func (d *Dev) Point(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.colon = on
	return d.rewrite(1)
}

// Clear blanks all the digits.
func (d *Dev) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for pos := 0; pos < NumDigits; pos++ {
		if err := d.bit(Blank, pos); err != nil {
			return err
		}
	}
	return nil
}

// rewrite sends the buffered value of each position again.
func (d *Dev) rewrite(positions ...int) error {
	for _, pos := range positions {
		if err := d.bit(d.digits[pos], pos); err != nil {
			return err
		}
	}
	return nil
}

var _ conn.Resource = &Dev{}
