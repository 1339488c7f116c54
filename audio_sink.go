// audio_sink.go - Output sink contract and backend selection
/*
██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	AUDIO_BACKEND_AUTO   = "auto"
	AUDIO_BACKEND_OTO    = "oto"
	AUDIO_BACKEND_EBITEN = "ebiten"
	AUDIO_BACKEND_NULL   = "null"
)

var (
	ErrSinkClosed          = errors.New("audio sink closed")
	ErrSampleRateMismatch  = errors.New("audio device already running at a different sample rate")
	ErrBackendUnavailable  = errors.New("audio backend not compiled into this build")
	errUnsupportedSinkFormat = errors.New("unsupported sink format")
)

type SinkConfig struct {
	SampleRate   int
	Channels     int
	BitDepth     int
	BufferFrames int
	DrainTimeout time.Duration // Upper bound for Stop to flush queued audio
}

func (c SinkConfig) validate() error {
	if c.Channels != NOISE_CHANNELS || c.BitDepth != NOISE_BIT_DEPTH {
		return fmt.Errorf("%w: %d channel(s) at %d bits", errUnsupportedSinkFormat, c.Channels, c.BitDepth)
	}
	if c.SampleRate <= 0 || c.BufferFrames <= 0 {
		return fmt.Errorf("%w: rate %d, buffer %d", errUnsupportedSinkFormat, c.SampleRate, c.BufferFrames)
	}
	return nil
}

// AudioSink opens output streams. Each stream is owned by exactly one session.
type AudioSink interface {
	Open(cfg SinkConfig) (SinkStream, error)
}

// SinkStream is one opened output handle.
type SinkStream interface {
	Start() error
	// Write blocks until the device has accepted the buffer.
	Write(samples []int16) error
	// Stop flushes queued audio, waiting at most the configured drain timeout.
	Stop() error
	// Release frees the handle. Safe to call more than once.
	Release() error
}

// NewAudioSink selects a backend by name. "auto" prefers the oto device.
func NewAudioSink(backend string) (AudioSink, error) {
	switch backend {
	case AUDIO_BACKEND_AUTO, AUDIO_BACKEND_OTO, "":
		return newOtoSink()
	case AUDIO_BACKEND_EBITEN:
		return newEbitenSink()
	case AUDIO_BACKEND_NULL:
		return NewNullSink(), nil
	}
	return nil, fmt.Errorf("unknown audio backend %q", backend)
}

// NullSink discards audio but paces writes at real time, so sessions behave
// as they would against a device.
type NullSink struct{}

func NewNullSink() *NullSink {
	return &NullSink{}
}

func (s *NullSink) Open(cfg SinkConfig) (SinkStream, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &nullStream{sampleRate: cfg.SampleRate}, nil
}

type nullStream struct {
	mutex      sync.Mutex
	sampleRate int
	started    bool
	released   bool
}

func (ns *nullStream) Start() error {
	ns.mutex.Lock()
	defer ns.mutex.Unlock()
	if ns.released {
		return ErrSinkClosed
	}
	ns.started = true
	return nil
}

func (ns *nullStream) Write(samples []int16) error {
	ns.mutex.Lock()
	ok := ns.started && !ns.released
	ns.mutex.Unlock()
	if !ok {
		return ErrSinkClosed
	}
	time.Sleep(time.Duration(len(samples)) * time.Second / time.Duration(ns.sampleRate))
	return nil
}

func (ns *nullStream) Stop() error {
	ns.mutex.Lock()
	defer ns.mutex.Unlock()
	ns.started = false
	return nil
}

func (ns *nullStream) Release() error {
	ns.mutex.Lock()
	defer ns.mutex.Unlock()
	ns.started = false
	ns.released = true
	return nil
}
