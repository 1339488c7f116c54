package main

import (
	"errors"
	"flag"
	"testing"
	"time"
)

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.engine != DefaultEngineConfig() {
		t.Fatalf("expected default engine config, got %+v", opts.engine)
	}
	if opts.noise != NoiseWhite {
		t.Fatalf("expected white, got %s", opts.noise)
	}
	if opts.ui != UI_TERMINAL || opts.backend != AUDIO_BACKEND_AUTO {
		t.Fatalf("expected terminal/auto, got %s/%s", opts.ui, opts.backend)
	}
	if opts.timer != 0 || opts.autoplay {
		t.Fatal("expected no timer and no autoplay by default")
	}
}

func TestParseFlags_AllOptions(t *testing.T) {
	opts, err := parseFlags([]string{
		"-noise", "brown", "-rate", "48000", "-buffer", "1024", "-fade", "250ms",
		"-switch", "seamless", "-backend", "null", "-ui", "none",
		"-timer", "30m", "-autoplay", "-log-level", "debug",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.noise != NoiseBrown {
		t.Fatalf("expected brown, got %s", opts.noise)
	}
	if opts.engine.SampleRate != 48000 || opts.engine.BufferFrames != 1024 {
		t.Fatalf("rate/buffer not applied: %+v", opts.engine)
	}
	if opts.engine.FadeDuration != 250*time.Millisecond {
		t.Fatalf("expected 250ms fade, got %v", opts.engine.FadeDuration)
	}
	if opts.engine.SwitchMode != SwitchSeamless {
		t.Fatalf("expected seamless, got %s", opts.engine.SwitchMode)
	}
	if opts.timer != 30*time.Minute || !opts.autoplay {
		t.Fatalf("timer/autoplay not applied: %v %v", opts.timer, opts.autoplay)
	}
	if opts.engine.FadeSamples() != 12000 {
		t.Fatalf("fade samples should follow the rate, got %d", opts.engine.FadeSamples())
	}
}

func TestParseFlags_Rejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"noise", []string{"-noise", "purple"}},
		{"switch", []string{"-switch", "crossfade"}},
		{"ui", []string{"-ui", "gtk"}},
		{"rate", []string{"-rate", "10"}},
		{"buffer", []string{"-buffer", "0"}},
		{"fade", []string{"-fade", "-1s"}},
		{"timer", []string{"-timer", "-5m"}},
		{"positional", []string{"extra"}},
		{"unknown flag", []string{"-psg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFlags(tt.args); err == nil {
				t.Fatalf("expected %v to be rejected", tt.args)
			}
		})
	}
}

func TestParseFlags_UnknownNoiseIsTyped(t *testing.T) {
	_, err := parseFlags([]string{"-noise", "grey"})
	if !errors.Is(err, ErrUnknownNoiseType) {
		t.Fatalf("expected ErrUnknownNoiseType, got %v", err)
	}
}

func TestParseFlags_Help(t *testing.T) {
	_, err := parseFlags([]string{"-h"})
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}

func TestResolveBackend(t *testing.T) {
	tests := []struct {
		backend, ui, want string
	}{
		{AUDIO_BACKEND_AUTO, UI_TERMINAL, AUDIO_BACKEND_OTO},
		{AUDIO_BACKEND_AUTO, UI_NONE, AUDIO_BACKEND_OTO},
		{AUDIO_BACKEND_AUTO, UI_WINDOW, AUDIO_BACKEND_EBITEN},
		{"", UI_WINDOW, AUDIO_BACKEND_EBITEN},
		{AUDIO_BACKEND_NULL, UI_WINDOW, AUDIO_BACKEND_NULL},
		{AUDIO_BACKEND_OTO, UI_TERMINAL, AUDIO_BACKEND_OTO},
	}
	for _, tt := range tests {
		if got := resolveBackend(tt.backend, tt.ui); got != tt.want {
			t.Fatalf("resolveBackend(%q, %q) = %q, want %q", tt.backend, tt.ui, got, tt.want)
		}
	}
}

func TestNoiseDebugEnabled(t *testing.T) {
	for _, v := range []string{"1", "true", "YES"} {
		t.Setenv(NOISE_DEBUG_ENV, v)
		if !noiseDebugEnabled() {
			t.Fatalf("expected %q to enable debug", v)
		}
	}
	t.Setenv(NOISE_DEBUG_ENV, "0")
	if noiseDebugEnabled() {
		t.Fatal("expected 0 to leave debug off")
	}
}

func TestConfigureLogging_RejectsUnknownLevel(t *testing.T) {
	if err := configureLogging("chatty"); err == nil {
		t.Fatal("expected unknown level to be rejected")
	}
}
