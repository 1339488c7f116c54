// noise_envelope.go - Fade envelope for click-free start and stop
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

import "time"

// FadePhase is derived from the session's sample position and stop flag.
type FadePhase int

const (
	FadingIn FadePhase = iota
	Steady
	FadingOut
)

func (p FadePhase) String() string {
	switch p {
	case FadingIn:
		return "fading-in"
	case Steady:
		return "steady"
	case FadingOut:
		return "fading-out"
	}
	return "unknown"
}

// FadeFactor returns the envelope gain in [0, 1] for a position inside a phase.
// Fade-in reaches 1.0 at position == length; fade-out reaches 0.0 there.
func FadeFactor(phase FadePhase, position, length int64) float64 {
	switch phase {
	case FadingIn:
		if position >= length {
			return 1.0
		}
		if position <= 0 {
			return 0.0
		}
		return float64(position) / float64(length)
	case FadingOut:
		if position >= length {
			return 0.0
		}
		if position <= 0 {
			return 1.0
		}
		return 1.0 - float64(position)/float64(length)
	default:
		return 1.0
	}
}

// fadeSamples converts a fade duration into a sample count at sampleRate.
func fadeSamples(sampleRate int, d time.Duration) int64 {
	if d <= 0 || sampleRate <= 0 {
		return 0
	}
	return int64(sampleRate) * int64(d) / int64(time.Second)
}

// fadeEnvelope tracks one session's position through fade-in, steady state
// and fade-out. Owned by the session worker; not safe for concurrent use.
type fadeEnvelope struct {
	length   int64
	position int64   // Samples emitted since the session started
	stopAt   int64   // Position at which the stop request was observed
	outLevel float64 // Gain when the fade-out began
	stopping bool
}

func newFadeEnvelope(length int64) *fadeEnvelope {
	return &fadeEnvelope{length: length}
}

func (e *fadeEnvelope) Phase() FadePhase {
	if e.stopping {
		return FadingOut
	}
	if e.position < e.length {
		return FadingIn
	}
	return Steady
}

// next returns the gain for the current sample and advances the position.
func (e *fadeEnvelope) next() float64 {
	var gain float64
	switch e.Phase() {
	case FadingIn:
		gain = FadeFactor(FadingIn, e.position, e.length)
	case FadingOut:
		gain = e.outLevel * FadeFactor(FadingOut, e.position-e.stopAt, e.length)
	default:
		gain = 1.0
	}
	e.position++
	return gain
}

// beginFadeOut starts the fade-out window at the current position. A stop
// that lands mid fade-in ramps down from the level already reached.
func (e *fadeEnvelope) beginFadeOut() {
	if e.stopping {
		return
	}
	e.outLevel = FadeFactor(FadingIn, e.position, e.length)
	e.stopAt = e.position
	e.stopping = true
}

func (e *fadeEnvelope) fadeOutComplete() bool {
	return e.stopping && e.position-e.stopAt >= e.length
}
