// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tm1637 drives a 4 digit 7-segment display wired to a TM1637.
//
// Usage:
//
//	tm1637 [flags] show <n> | clear | brightness <0-7> | point <on|off> |
//	               bit <digit> <pos> | clock | serve
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/segdisplay/image7seg"
	"github.com/GermanBionicSystems/segdisplay/rpiogpio"
	"github.com/GermanBionicSystems/segdisplay/screen7seg"
	"github.com/GermanBionicSystems/segdisplay/segclock"
	"github.com/GermanBionicSystems/segdisplay/segserver"
	"github.com/GermanBionicSystems/segdisplay/tm1637"
	"github.com/GermanBionicSystems/segdisplay/tm1637/tm1637test"
)

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "tm1637: %s.\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	clkName := flag.String("clk", "GPIO23", "CLK pin")
	dioName := flag.String("dio", "GPIO24", "DIO pin")
	backend := flag.String("backend", "periph", "GPIO backend: periph or rpio")
	sim := flag.Bool("sim", false, "emulate the display on the terminal instead of using GPIO")
	delay := flag.Duration("delay", 5*time.Microsecond, "delay after each pin write")
	strict := flag.Bool("strict", false, "reject invalid digits, positions and brightness")
	zeros := flag.Bool("zeros", false, "show: pad with leading zeros")
	pngPath := flag.String("png", "", "write an image of the final display content")
	logPath := flag.String("log", "", "log to this file, rotated, instead of stderr")
	addr := flag.String("addr", ":8080", "serve: listen address")
	blink := flag.Bool("blink", true, "clock: blink the colon")
	hour12 := flag.Bool("12h", false, "clock: 12 hour format")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] show <n> | clear | brightness <0-7> | point <on|off> | bit <digit> <pos> | clock | serve\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		return errors.New("missing command")
	}
	if *logPath != "" {
		l := &lumberjack.Logger{Filename: *logPath, MaxSize: 1, MaxBackups: 3}
		defer l.Close()
		log.SetOutput(l)
	}

	var clk, dio gpio.PinOut
	switch {
	case *sim:
		chip := tm1637test.NewChip()
		screen := screen7seg.New(&screen7seg.Opts{})
		defer screen.Halt()
		chip.OnChange = func(s tm1637test.State) {
			if err := screen.Render(s.RAM[:tm1637.NumDigits], s.Brightness, s.On); err != nil {
				log.Printf("screen: %v", err)
			}
		}
		clk, dio = chip.CLK, chip.DIO
		*delay = 0
	case *backend == "rpio":
		c, err := rpioNumber(*clkName)
		if err != nil {
			return err
		}
		d, err := rpioNumber(*dioName)
		if err != nil {
			return err
		}
		if err := rpiogpio.Open(); err != nil {
			return err
		}
		defer rpiogpio.Close()
		clk, dio = rpiogpio.New(c), rpiogpio.New(d)
	case *backend == "periph":
		if _, err := host.Init(); err != nil {
			return err
		}
		if clk = gpioreg.ByName(*clkName); clk == nil {
			return fmt.Errorf("unknown pin %q", *clkName)
		}
		if dio = gpioreg.ByName(*dioName); dio == nil {
			return fmt.Errorf("unknown pin %q", *dioName)
		}
	default:
		return fmt.Errorf("unknown backend %q", *backend)
	}

	dev, err := tm1637.New(clk, dio, &tm1637.Opts{Strict: *strict, Delay: *delay})
	if err != nil {
		return err
	}
	log.Printf("opened %s", dev)
	if err := run(dev, flag.Args(), *zeros, *addr, &segclock.Opts{Blink: *blink, Hour12: *hour12}); err != nil {
		return err
	}
	if *pngPath != "" {
		return image7seg.SavePNG(*pngPath, segments(dev), dev.Brightness(), true, nil)
	}
	return nil
}

func run(dev *tm1637.Dev, args []string, zeros bool, addr string, clockOpts *segclock.Opts) error {
	argc := map[string]int{"show": 1, "clear": 0, "brightness": 1, "point": 1, "bit": 2, "clock": 0, "serve": 0}
	n, ok := argc[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", args[0])
	}
	if len(args)-1 != n {
		return fmt.Errorf("%s expects %d argument(s)", args[0], n)
	}
	ints := make([]int, n)
	if args[0] != "point" {
		for i, a := range args[1:] {
			v, err := strconv.Atoi(a)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			ints[i] = v
		}
	}

	switch args[0] {
	case "show":
		return dev.Show(ints[0], zeros)
	case "clear":
		return dev.Clear()
	case "brightness":
		if ints[0] < 0 || ints[0] > 255 {
			return fmt.Errorf("brightness %d out of range", ints[0])
		}
		return dev.SetBrightness(byte(ints[0]))
	case "point":
		on, err := parseOnOff(args[1])
		if err != nil {
			return err
		}
		return dev.Point(on)
	case "bit":
		if ints[0] < 0 || ints[0] > 255 {
			return fmt.Errorf("digit %d out of range", ints[0])
		}
		return dev.Bit(byte(ints[0]), ints[1])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if args[0] == "clock" {
		if err := segclock.Run(ctx, dev, clockOpts); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}
	srv := &http.Server{Addr: addr, Handler: segserver.New(dev)}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("point: expected on or off, got %q", s)
}

// rpioNumber accepts "GPIO23" or "23".
func rpioNumber(name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(name), "GPIO"))
	if err != nil {
		return 0, fmt.Errorf("invalid BCM pin %q", name)
	}
	return n, nil
}

// segments returns the patterns the chip currently displays.
func segments(dev *tm1637.Dev) []byte {
	digits := dev.Digits()
	out := make([]byte, len(digits))
	for i, v := range digits {
		out[i], _ = tm1637.Encode(v)
	}
	if dev.Colon() {
		out[1] |= tm1637.ColonBit
	}
	return out
}
