// engine_config.go - Engine configuration and validation
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
	"fmt"
	"strings"
	"time"
)

// SwitchMode controls how a noise-type change is applied while playing.
type SwitchMode int

const (
	// SwitchRestart stops the session and starts a fresh one with a fade-in.
	SwitchRestart SwitchMode = iota
	// SwitchSeamless swaps the generator at the next buffer boundary without a fade.
	SwitchSeamless
)

func (m SwitchMode) String() string {
	if m == SwitchSeamless {
		return "seamless"
	}
	return "restart"
}

func ParseSwitchMode(s string) (SwitchMode, error) {
	switch strings.ToLower(s) {
	case "", "restart":
		return SwitchRestart, nil
	case "seamless":
		return SwitchSeamless, nil
	}
	return SwitchRestart, fmt.Errorf("invalid switch mode %q (want restart or seamless)", s)
}

type EngineConfig struct {
	SampleRate   int
	BufferFrames int
	FadeDuration time.Duration
	StopGrace    time.Duration
	SwitchMode   SwitchMode
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SampleRate:   NOISE_SAMPLE_RATE,
		BufferFrames: NOISE_BUFFER_FRAMES,
		FadeDuration: FADE_DURATION,
		StopGrace:    STOP_GRACE,
		SwitchMode:   SwitchRestart,
	}
}

func (c EngineConfig) Validate() error {
	if c.SampleRate < 1000 || c.SampleRate > 192000 {
		return fmt.Errorf("sample rate %d out of range (1000-192000)", c.SampleRate)
	}
	if c.BufferFrames <= 0 {
		return fmt.Errorf("buffer frames must be positive, got %d", c.BufferFrames)
	}
	if c.FadeDuration < 0 {
		return fmt.Errorf("fade duration must not be negative, got %v", c.FadeDuration)
	}
	if c.StopGrace < 0 {
		return fmt.Errorf("stop grace must not be negative, got %v", c.StopGrace)
	}
	return nil
}

// FadeSamples is the fade window length in samples at the configured rate.
func (c EngineConfig) FadeSamples() int64 {
	return fadeSamples(c.SampleRate, c.FadeDuration)
}

// BufferDuration is the real-time length of one buffer.
func (c EngineConfig) BufferDuration() time.Duration {
	return time.Duration(c.BufferFrames) * time.Second / time.Duration(c.SampleRate)
}

// DrainTimeout bounds how long a sink may take to flush after the final buffer.
func (c EngineConfig) DrainTimeout() time.Duration {
	return c.FadeDuration + c.StopGrace
}

func (c EngineConfig) sinkConfig() SinkConfig {
	return SinkConfig{
		SampleRate:   c.SampleRate,
		Channels:     NOISE_CHANNELS,
		BitDepth:     NOISE_BIT_DEPTH,
		BufferFrames: c.BufferFrames,
		DrainTimeout: c.DrainTimeout(),
	}
}
