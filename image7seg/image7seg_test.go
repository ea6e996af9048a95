// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package image7seg

import (
	"image"
	"os"
	"path/filepath"
	"testing"
)

func red(img image.Image, x, y int) uint32 {
	r, _, _, _ := img.At(x, y).RGBA()
	return r >> 8
}

func TestDraw(t *testing.T) {
	// "1" on digit 0, "8" on digit 3, colon on.
	img, err := Draw([]byte{0x06, 0x80, 0x00, 0x7f}, 7, true, &Opts{NoCaption: true})
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b != Bounds(&Opts{NoCaption: true}) {
		t.Errorf("bounds %v", b)
	}
	o0 := DigitOrigin(0)
	o3 := DigitOrigin(3)
	data := []struct {
		name string
		x, y int
		lit  bool
	}{
		{"digit 0 segment A", o0.X + Width/2, o0.Y, false},
		{"digit 0 segment B", o0.X + Width, o0.Y + Height/4, true},
		{"digit 0 segment C", o0.X + Width, o0.Y + 3*Height/4, true},
		{"digit 0 segment G", o0.X + Width/2, o0.Y + Height/2, false},
		{"digit 3 segment A", o3.X + Width/2, o3.Y, true},
		{"digit 3 segment E", o3.X, o3.Y + 3*Height/4, true},
		{"colon", DigitOrigin(1).X + Width + 25, Margin + Height/3, true},
	}
	for _, line := range data {
		v := red(img, line.x, line.y)
		if line.lit && v < 0xf0 {
			t.Errorf("%s: red=0x%x, expected lit", line.name, v)
		}
		if !line.lit && (v == 0 || v > 0x40) {
			t.Errorf("%s: red=0x%x, expected unlit", line.name, v)
		}
	}
	if v := red(img, 2, 2); v != 0 {
		t.Errorf("background red=0x%x", v)
	}
}

func TestDrawOff(t *testing.T) {
	img, err := Draw([]byte{0x7f, 0xff, 0x7f, 0x7f}, 7, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	o := DigitOrigin(2)
	if v := red(img, o.X+Width/2, o.Y); v > 0x40 {
		t.Errorf("segment lit while display is off: red=0x%x", v)
	}
}

func TestSavePNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "display.png")
	if err := SavePNG(p, []byte{0x3f, 0x06, 0x5b, 0x4f}, 3, true, nil); err != nil {
		t.Fatal(err)
	}
	st, err := os.Stat(p)
	if err != nil {
		t.Fatal(err)
	}
	if st.Size() == 0 {
		t.Error("empty PNG")
	}
}
