// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segserver exposes a 4 digit 7-segment display over HTTP.
//
// Routes:
//
//	GET    /                    current state as JSON
//	PUT    /show/{n}            show n, ?zeros=1 pads with zeros
//	PUT    /brightness/{level}  0-7
//	PUT    /point/{on|off}      colon
//	PUT    /bit/{digit}/{pos}   single digit
//	DELETE /                    clear
package segserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GermanBionicSystems/segdisplay/tm1637"
)

// Display is the driver surface served. *tm1637.Dev implements it.
type Display interface {
	Show(n int, fillWithZeros bool) error
	SetBrightness(level byte) error
	Point(on bool) error
	Bit(digit byte, pos int) error
	Clear() error
	Digits() [tm1637.NumDigits]byte
	Brightness() byte
	Colon() bool
}

// State is the JSON document returned by every route.
type State struct {
	Digits     []int `json:"digits"`
	Brightness int   `json:"brightness"`
	Colon      bool  `json:"colon"`
}

type server struct {
	d Display
}

// New returns the HTTP handler controlling d.
func New(d Display) http.Handler {
	s := &server{d: d}
	r := mux.NewRouter()
	r.HandleFunc("/", s.state).Methods(http.MethodGet)
	r.HandleFunc("/", s.clear).Methods(http.MethodDelete)
	r.HandleFunc("/show/{n:[0-9]+}", s.show).Methods(http.MethodPut)
	r.HandleFunc("/brightness/{level:[0-9]+}", s.brightness).Methods(http.MethodPut)
	r.HandleFunc("/point/{on:on|off}", s.point).Methods(http.MethodPut)
	r.HandleFunc("/bit/{digit:[0-9]+}/{pos:[0-9]+}", s.bit).Methods(http.MethodPut)
	return r
}

func (s *server) state(w http.ResponseWriter, r *http.Request) {
	digits := s.d.Digits()
	st := State{Digits: make([]int, len(digits)), Brightness: int(s.d.Brightness()), Colon: s.d.Colon()}
	for i, v := range digits {
		st.Digits[i] = int(v)
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		log.Printf("segserver: %v", err)
	}
}

func (s *server) reply(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, tm1637.ErrInvalidDigit) || errors.Is(err, tm1637.ErrInvalidPosition) ||
			errors.Is(err, tm1637.ErrInvalidBrightness) {
			code = http.StatusBadRequest
		} else {
			log.Printf("segserver: %s %s: %v", r.Method, r.URL.Path, err)
		}
		http.Error(w, err.Error(), code)
		return
	}
	s.state(w, r)
}

func (s *server) clear(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, s.d.Clear())
}

func (s *server) show(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["n"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	zeros, _ := strconv.ParseBool(r.URL.Query().Get("zeros"))
	s.reply(w, r, s.d.Show(n, zeros))
}

func (s *server) brightness(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.ParseUint(mux.Vars(r)["level"], 10, 8)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.reply(w, r, s.d.SetBrightness(byte(level)))
}

func (s *server) point(w http.ResponseWriter, r *http.Request) {
	s.reply(w, r, s.d.Point(mux.Vars(r)["on"] == "on"))
}

func (s *server) bit(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	digit, err := strconv.ParseUint(vars["digit"], 10, 8)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	pos, err := strconv.Atoi(vars["pos"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.reply(w, r, s.d.Bit(byte(digit), pos))
}
