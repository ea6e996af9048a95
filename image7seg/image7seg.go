// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package image7seg renders the content of a 4 digit 7-segment display as an
// image, for documentation or to check a clock face without the hardware.
package image7seg

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Geometry, in pixels.
const (
	Margin    = 20
	Width     = 60  // digit width
	Height    = 100 // digit height
	Thickness = 10
	gap       = 30 // between two digits
	colonGap  = 20 // extra space around the colon
	caption   = 30
)

// Opts represents the options available for rendering.
type Opts struct {
	// Lit is the color of a lit segment at full brightness. Defaults to red.
	Lit color.NRGBA
	// NoCaption drops the brightness line under the digits.
	NoCaption bool
}

var (
	faceOnce sync.Once
	face     font.Face
	faceErr  error
)

func captionFace() (font.Face, error) {
	faceOnce.Do(func() {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			faceErr = fmt.Errorf("image7seg: %w", err)
			return
		}
		face = truetype.NewFace(f, &truetype.Options{Size: 14})
	})
	return face, faceErr
}

// Bounds returns the size of the rendered image.
func Bounds(opts *Opts) image.Rectangle {
	h := 2*Margin + Height
	if opts == nil || !opts.NoCaption {
		h += caption
	}
	return image.Rect(0, 0, 2*Margin+4*Width+3*gap+colonGap, h)
}

// DigitOrigin returns the top left corner of digit i.
func DigitOrigin(i int) image.Point {
	x := Margin + i*(Width+gap)
	if i >= 2 {
		x += colonGap
	}
	return image.Pt(x, Margin)
}

// Draw renders segs, one segment pattern per digit from the left. Bit 7 of
// digit 1 lights the colon. brightness is 0-7; nothing is lit when on is
// false.
func Draw(segs []byte, brightness byte, on bool, opts *Opts) (image.Image, error) {
	if opts == nil {
		opts = &Opts{}
	}
	lit := opts.Lit
	if lit == (color.NRGBA{}) {
		lit = color.NRGBA{R: 255, A: 255}
	}
	r := Bounds(opts)
	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.SetRGB(0, 0, 0)
	dc.Clear()

	litColor := shade(lit, brightness)
	offColor := color.NRGBA{R: 0x30, A: 255}
	for i, s := range segs {
		if i >= 4 {
			break
		}
		if !on {
			s = 0
		}
		o := DigitOrigin(i)
		x, y := float64(o.X), float64(o.Y)
		for bit, seg := range segments {
			dc.SetColor(offColor)
			if s&(1<<bit) != 0 {
				dc.SetColor(litColor)
			}
			seg(dc, x, y)
			dc.Fill()
		}
		if i == 1 {
			dc.SetColor(offColor)
			if s&0x80 != 0 {
				dc.SetColor(litColor)
			}
			cx := x + Width + (gap+colonGap)/2
			dc.DrawCircle(cx, y+Height/3, Thickness/2)
			dc.DrawCircle(cx, y+2*Height/3, Thickness/2)
			dc.Fill()
		}
	}

	if !opts.NoCaption {
		f, err := captionFace()
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(f)
		dc.SetRGB(0.8, 0.8, 0.8)
		text := fmt.Sprintf("brightness %d", brightness)
		if !on {
			text = "off"
		}
		dc.DrawStringAnchored(text, float64(r.Dx())/2, float64(2*Margin+Height+caption/2), 0.5, 0.5)
	}
	return dc.Image(), nil
}

// SavePNG renders the display and writes it to path.
func SavePNG(path string, segs []byte, brightness byte, on bool, opts *Opts) error {
	img, err := Draw(segs, brightness, on, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("image7seg: %w", err)
	}
	return nil
}

func shade(c color.NRGBA, brightness byte) color.NRGBA {
	if brightness > 7 {
		brightness = 7
	}
	scale := func(v uint8) uint8 {
		return uint8(uint32(v) * (3 + uint32(brightness)) / 10)
	}
	return color.NRGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 255}
}

// segments draws A to G, in bit order, for a digit at x, y.
var segments = [7]func(dc *gg.Context, x, y float64){
	func(dc *gg.Context, x, y float64) { horizontal(dc, x, y) },
	func(dc *gg.Context, x, y float64) { vertical(dc, x+Width, y) },
	func(dc *gg.Context, x, y float64) { vertical(dc, x+Width, y+Height/2) },
	func(dc *gg.Context, x, y float64) { horizontal(dc, x, y+Height) },
	func(dc *gg.Context, x, y float64) { vertical(dc, x, y+Height/2) },
	func(dc *gg.Context, x, y float64) { vertical(dc, x, y) },
	func(dc *gg.Context, x, y float64) { horizontal(dc, x, y+Height/2) },
}

// horizontal adds a hexagonal segment from x to x+Width centered on y.
func horizontal(dc *gg.Context, x, y float64) {
	const t = Thickness / 2
	dc.MoveTo(x, y)
	dc.LineTo(x+t, y-t)
	dc.LineTo(x+Width-t, y-t)
	dc.LineTo(x+Width, y)
	dc.LineTo(x+Width-t, y+t)
	dc.LineTo(x+t, y+t)
	dc.ClosePath()
}

// vertical adds a hexagonal segment from y to y+Height/2 centered on x.
func vertical(dc *gg.Context, x, y float64) {
	const t = Thickness / 2
	const l = Height / 2
	dc.MoveTo(x, y)
	dc.LineTo(x+t, y+t)
	dc.LineTo(x+t, y+l-t)
	dc.LineTo(x, y+l)
	dc.LineTo(x-t, y+l-t)
	dc.LineTo(x-t, y+t)
	dc.ClosePath()
}
