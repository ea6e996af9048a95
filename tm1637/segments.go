// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tm1637

const (
	// Blank is the digit value that turns every segment of a position off.
	Blank byte = 0x7f
	// ZeroGlyph is the digit value used to pad numbers with leading zeros.
	// It is sent as a raw segment pattern, which happens to draw a 0.
	ZeroGlyph byte = 0x3f
	// ColonBit is OR'd into the segment pattern of position 1 when the colon
	// is on.
	ColonBit byte = 0x80
)

// segmentTable maps 0-F to segment patterns. Bit order: DP.G.F.E.D.C.B.A.
var segmentTable = [16]byte{
	0x3f, 0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d, 0x07,
	0x7f, 0x6f, 0x77, 0x7c, 0x39, 0x5e, 0x79, 0x71,
}

// Encode returns the segment pattern for a digit value.
//
// Blank encodes to 0, ZeroGlyph is returned unchanged and 0x0-0xF are looked
// up in the hex font. The colon bit is never set here.
func Encode(v byte) (byte, error) {
	switch {
	case v == Blank:
		return 0, nil
	case v == ZeroGlyph:
		return ZeroGlyph, nil
	case int(v) < len(segmentTable):
		return segmentTable[v], nil
	}
	return 0, ErrInvalidDigit
}
