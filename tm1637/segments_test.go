// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

import (
	"errors"
	"testing"
)

func TestEncode(t *testing.T) {
	for d := byte(0); d < 16; d++ {
		seg, err := Encode(d)
		if err != nil {
			t.Fatalf("Encode(%d): %v", d, err)
		}
		if seg != segmentTable[d] {
			t.Errorf("Encode(%d)=0x%x expected 0x%x", d, seg, segmentTable[d])
		}
		if seg&ColonBit != 0 {
			t.Errorf("Encode(%d) sets the colon bit", d)
		}
	}
	data := []struct {
		in  byte
		out byte
	}{
		{0, 0x3f},
		{1, 0x06},
		{8, 0x7f},
		{9, 0x6f},
		{Blank, 0x00},
		{ZeroGlyph, 0x3f},
	}
	for _, line := range data {
		if seg, _ := Encode(line.in); seg != line.out {
			t.Errorf("Encode(0x%x)=0x%x expected 0x%x", line.in, seg, line.out)
		}
	}
}

func TestEncodeInvalid(t *testing.T) {
	for _, v := range []byte{0x10, 0x3e, 0x40, 0x7e, 0x80, 0xff} {
		if _, err := Encode(v); !errors.Is(err, ErrInvalidDigit) {
			t.Errorf("Encode(0x%x): expected ErrInvalidDigit, got %v", v, err)
		}
	}
}
