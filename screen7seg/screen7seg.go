// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen7seg draws a 4 digit 7-segment display on the terminal
// (stdout) using ANSI color codes.
//
// Useful to watch what a TM1637 would show while the LED module is still in
// the mail; see tm1637test to produce the segment data.
package screen7seg

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// Rows is the height of a rendered frame in lines.
const Rows = 5

// Segment bits, as sent to the display.
const (
	segA = 1 << iota
	segB
	segC
	segD
	segE
	segF
	segG
	segDP
)

// cells is the 4x5 raster of one digit; each cell is lit by the segment bit
// it holds, 0 is background.
var cells = [Rows][4]byte{
	{0, segA, segA, 0},
	{segF, 0, 0, segB},
	{0, segG, segG, 0},
	{segE, 0, 0, segC},
	{0, segD, segD, 0},
}

// Opts represents the options available for this display.
type Opts struct {
	// W receives the frames. Defaults to a colorable stdout.
	W       io.Writer
	Palette *ansi256.Palette
	// Lit is the color of a lit segment at full brightness. Defaults to red.
	Lit color.NRGBA

	_ struct{}
}

// Dev is a 7-segment display emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	lit     color.NRGBA

	drawn bool
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	lit := opts.Lit
	if lit == (color.NRGBA{}) {
		lit = color.NRGBA{R: 255, A: 255}
	}
	return &Dev{w: w, palette: *p, lit: lit}
}

func (d *Dev) String() string {
	return "Screen7Seg"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

// Render draws segs, one segment pattern per digit from the left. Bit 7 of
// digit 1 lights the colon. brightness is 0-7; nothing is lit when on is
// false.
func (d *Dev) Render(segs []byte, brightness byte, on bool) error {
	lit := d.palette.Block(d.shade(brightness))
	off := d.palette.Block(color.NRGBA{R: 0x30, A: 255})
	bg := d.palette.Block(color.NRGBA{A: 255})

	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.drawn {
		_, _ = d.buf.WriteString("\033[5A")
	}
	for row := 0; row < Rows; row++ {
		_, _ = d.buf.WriteString("\r")
		for i, s := range segs {
			if !on {
				s = 0
			}
			for _, bit := range cells[row] {
				switch {
				case bit == 0:
					_, _ = io.WriteString(&d.buf, bg)
				case s&bit != 0:
					_, _ = io.WriteString(&d.buf, lit)
				default:
					_, _ = io.WriteString(&d.buf, off)
				}
			}
			_, _ = io.WriteString(&d.buf, bg)
			if i == 1 {
				c := bg
				if (row == 1 || row == 3) && s&segDP != 0 {
					c = lit
				}
				_, _ = io.WriteString(&d.buf, c)
				_, _ = io.WriteString(&d.buf, bg)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

// shade scales the lit color with the brightness level.
func (d *Dev) shade(brightness byte) color.NRGBA {
	if brightness > 7 {
		brightness = 7
	}
	scale := func(v uint8) uint8 {
		return uint8(uint32(v) * (3 + uint32(brightness)) / 10)
	}
	return color.NRGBA{R: scale(d.lit.R), G: scale(d.lit.G), B: scale(d.lit.B), A: 255}
}

var _ conn.Resource = &Dev{}
