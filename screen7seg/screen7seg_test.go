// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen7seg

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func litBlock() string {
	return ansi256.Default.Block(color.NRGBA{R: 255, A: 255})
}

func TestRender(t *testing.T) {
	data := []struct {
		name string
		segs []byte
		on   bool
		lit  int
	}{
		{"eights", []byte{0x7f, 0x7f, 0x7f, 0x7f}, true, 40},
		{"one", []byte{0, 0, 0, 0x06}, true, 2},
		{"colon", []byte{0, 0x80, 0, 0}, true, 2},
		{"blank", []byte{0, 0, 0, 0}, true, 0},
		{"off", []byte{0x7f, 0xff, 0x7f, 0x7f}, false, 0},
	}
	for _, line := range data {
		var buf bytes.Buffer
		d := New(&Opts{W: &buf})
		if err := d.Render(line.segs, 7, line.on); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if n := strings.Count(out, "\n"); n != Rows {
			t.Errorf("%s: %d lines, expected %d", line.name, n, Rows)
		}
		if n := strings.Count(out, litBlock()); n != line.lit {
			t.Errorf("%s: %d lit cells, expected %d", line.name, n, line.lit)
		}
	}
}

func TestRedraw(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: &buf})
	if err := d.Render([]byte{0, 0, 0, 0}, 7, true); err != nil {
		t.Fatal(err)
	}
	if strings.HasPrefix(buf.String(), "\033[5A") {
		t.Error("first frame moves the cursor up")
	}
	buf.Reset()
	if err := d.Render([]byte{0, 0, 0, 0}, 7, true); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "\033[5A") {
		t.Error("second frame does not overwrite the first one")
	}
	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m" {
		t.Errorf("Halt wrote %q", buf.String())
	}
	if d.String() != "Screen7Seg" {
		t.Errorf("String()=%q", d.String())
	}
}
