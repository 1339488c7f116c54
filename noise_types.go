// noise_types.go - Noise colour selector
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
	"strings"
)

// NoiseType selects which generator feeds the stream.
type NoiseType int32

const (
	NoiseWhite NoiseType = iota
	NoisePink
	NoiseBrown
	noiseTypeCount
)

var ErrUnknownNoiseType = errors.New("unknown noise type")

func (t NoiseType) String() string {
	switch t {
	case NoiseWhite:
		return "white"
	case NoisePink:
		return "pink"
	case NoiseBrown:
		return "brown"
	}
	return fmt.Sprintf("NoiseType(%d)", int32(t))
}

// Label is the display name shown by the control surfaces.
func (t NoiseType) Label() string {
	switch t {
	case NoiseWhite:
		return "White Noise"
	case NoisePink:
		return "Pink Noise"
	case NoiseBrown:
		return "Brown Noise"
	}
	return t.String()
}

func (t NoiseType) Description() string {
	switch t {
	case NoiseWhite:
		return "Equal energy across all frequencies"
	case NoisePink:
		return "Equal energy per octave"
	case NoiseBrown:
		return "Deep, rumbling tone"
	}
	return ""
}

// Next cycles White -> Pink -> Brown -> White.
func (t NoiseType) Next() NoiseType {
	return (t + 1) % noiseTypeCount
}

// Prev cycles White -> Brown -> Pink -> White.
func (t NoiseType) Prev() NoiseType {
	return (t + noiseTypeCount - 1) % noiseTypeCount
}

func (t NoiseType) valid() bool {
	return t >= NoiseWhite && t < noiseTypeCount
}

func ParseNoiseType(s string) (NoiseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return NoiseWhite, nil
	case "pink", "p":
		return NoisePink, nil
	case "brown", "b", "red":
		return NoiseBrown, nil
	}
	return NoiseWhite, fmt.Errorf("%w: %q", ErrUnknownNoiseType, s)
}

// SwipeNoiseType maps a finished horizontal drag to the colour it selects.
// Dragging right steps back, dragging left steps forward.
func SwipeNoiseType(current NoiseType, dx float64) (NoiseType, bool) {
	switch {
	case dx > SWIPE_THRESHOLD:
		return current.Prev(), true
	case dx < -SWIPE_THRESHOLD:
		return current.Next(), true
	}
	return current, false
}
