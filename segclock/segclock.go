// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segclock turns a 4 digit 7-segment display into a wall clock.
package segclock

import (
	"context"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
)

// Display is the part of a display driver the clock needs.
// *tm1637.Dev implements it.
type Display interface {
	Show(n int, fillWithZeros bool) error
	Point(on bool) error
}

// Opts holds the configuration options.
type Opts struct {
	// Clock is the time source. Defaults to the real clock.
	Clock clockwork.Clock
	// Interval between two refreshes. Defaults to one second.
	Interval time.Duration
	// Blink toggles the colon on every refresh; otherwise it stays on.
	Blink bool
	// Location of the displayed time. Defaults to time.Local.
	Location *time.Location
	// Hour12 shows 1-12 instead of 0-23.
	Hour12 bool
}

// Run refreshes the display until ctx is done, in which case ctx.Err() is
// returned. A display error stops the clock and is returned.
func Run(ctx context.Context, d Display, opts *Opts) error {
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Interval <= 0 {
		o.Interval = time.Second
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	colon := true
	for {
		if err := refresh(d, o.Clock.Now().In(o.Location), colon, o.Hour12); err != nil {
			log.Printf("segclock: %v", err)
			return err
		}
		if o.Blink {
			colon = !colon
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-o.Clock.After(o.Interval):
		}
	}
}

func refresh(d Display, now time.Time, colon, hour12 bool) error {
	if err := d.Show(Value(now, hour12), true); err != nil {
		return err
	}
	return d.Point(colon)
}

// Value returns the number displayed for t: hours times 100 plus minutes.
func Value(t time.Time, hour12 bool) int {
	h := t.Hour()
	if hour12 {
		h %= 12
		if h == 0 {
			h = 12
		}
	}
	return h*100 + t.Minute()
}
