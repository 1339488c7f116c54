// noise_generator.go - White, pink and brown noise generators
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
	"math/rand/v2"
)

// RandomSource returns a uniformly distributed value in [-1.0, 1.0].
type RandomSource func() float64

// NewUniformSource builds a private PCG-backed source. Sources are not safe
// for concurrent use; every session owns its own.
func NewUniformSource(seed uint64) RandomSource {
	r := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	return func() float64 {
		return r.Float64()*2 - 1
	}
}

func newSeededSource() RandomSource {
	return NewUniformSource(rand.Uint64())
}

// NoiseGenerator holds the per-colour filter state of one synthesis session.
type NoiseGenerator struct {
	pink  [7]float64 // Kellet taps b0..b6
	brown float64    // Random-walk accumulator, clamped to [-1, 1]
	rnd   RandomSource
}

func NewNoiseGenerator(rnd RandomSource) *NoiseGenerator {
	if rnd == nil {
		rnd = newSeededSource()
	}
	return &NoiseGenerator{rnd: rnd}
}

// Reset zeroes all filter state. Called whenever synthesis restarts from silence.
func (g *NoiseGenerator) Reset() {
	g.pink = [7]float64{}
	g.brown = 0
}

// NextSample advances the generator for t by one sample.
// Pink output may marginally exceed [-1, 1] and brown spans [-BROWN_GAIN, BROWN_GAIN];
// the engine clamps before quantization.
func (g *NoiseGenerator) NextSample(t NoiseType) float64 {
	switch t {
	case NoisePink:
		return g.nextPink()
	case NoiseBrown:
		return g.nextBrown()
	default:
		return g.nextWhite()
	}
}

func (g *NoiseGenerator) nextWhite() float64 {
	return g.rnd()
}

func (g *NoiseGenerator) nextPink() float64 {
	white := g.rnd()
	b := &g.pink

	b[0] = PINK_B0_POLE*b[0] + white*PINK_B0_GAIN
	b[1] = PINK_B1_POLE*b[1] + white*PINK_B1_GAIN
	b[2] = PINK_B2_POLE*b[2] + white*PINK_B2_GAIN
	b[3] = PINK_B3_POLE*b[3] + white*PINK_B3_GAIN
	b[4] = PINK_B4_POLE*b[4] + white*PINK_B4_GAIN
	b[5] = PINK_B5_POLE*b[5] - white*PINK_B5_GAIN

	// b6 contributes last call's value; it is refreshed only after the sum.
	pink := b[0] + b[1] + b[2] + b[3] + b[4] + b[5] + b[6] + white*PINK_DIRECT
	b[6] = white * PINK_B6_GAIN

	return pink * PINK_SCALE
}

func (g *NoiseGenerator) nextBrown() float64 {
	white := g.rnd()
	g.brown = clampAmplitude(g.brown + white*BROWN_STEP)
	return g.brown * BROWN_GAIN
}

func clampAmplitude(v float64) float64 {
	if v > MAX_AMPLITUDE {
		return MAX_AMPLITUDE
	}
	if v < MIN_AMPLITUDE {
		return MIN_AMPLITUDE
	}
	return v
}

// quantizePCM16 clamps to the encodable range and scales to full-scale int16.
func quantizePCM16(v float64) int16 {
	return int16(clampAmplitude(v) * PCM16_SCALE)
}
