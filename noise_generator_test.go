package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoiseGenerator_WhiteIsUniformInRange(t *testing.T) {
	gen := NewNoiseGenerator(NewUniformSource(1))

	const n = 200000
	var sum float64
	for range n {
		v := gen.NextSample(NoiseWhite)
		require.GreaterOrEqual(t, v, -1.0)
		require.LessOrEqual(t, v, 1.0)
		sum += v
	}
	assert.InDelta(t, 0, sum/n, 0.01, "white noise should be zero mean")
}

func TestNoiseGenerator_PinkFollowsKelletRecurrence(t *testing.T) {
	draws := []float64{0.9, -0.3, 0.45, -1.0, 0.2, 0.0, 0.77, -0.61}
	gen := NewNoiseGenerator(sequenceSource(draws...))

	var b0, b1, b2, b3, b4, b5, b6 float64
	for i := range 64 {
		w := draws[i%len(draws)]
		b0 = 0.99886*b0 + w*0.0555179
		b1 = 0.99332*b1 + w*0.0750759
		b2 = 0.96900*b2 + w*0.1538520
		b3 = 0.86650*b3 + w*0.3104856
		b4 = 0.55000*b4 + w*0.5329522
		b5 = -0.7616*b5 - w*0.0168980
		want := (b0 + b1 + b2 + b3 + b4 + b5 + b6 + w*0.5362) * 0.11
		b6 = w * 0.115926

		require.InDeltaf(t, want, gen.NextSample(NoisePink), 1e-12, "sample %d", i)
	}
}

func TestNoiseGenerator_PinkSumsPreviousB6(t *testing.T) {
	gen := NewNoiseGenerator(sequenceSource(1.0, 0.0))

	first := gen.NextSample(NoisePink)
	taps := 0.0555179 + 0.0750759 + 0.1538520 + 0.3104856 + 0.5329522 - 0.0168980
	assert.InDelta(t, (taps+0.5362)*0.11, first, 1e-12, "b6 starts at zero")

	second := gen.NextSample(NoisePink)
	decayed := 0.99886*0.0555179 + 0.99332*0.0750759 + 0.96900*0.1538520 +
		0.86650*0.3104856 + 0.55000*0.5329522 + 0.7616*0.0168980
	assert.InDelta(t, (decayed+0.115926)*0.11, second, 1e-12, "b6 from the first draw")
}

func TestNoiseGenerator_BrownAccumulatorStaysClamped(t *testing.T) {
	n := 10_000_000
	if testing.Short() {
		n = 100_000
	}
	gen := NewNoiseGenerator(NewUniformSource(7))
	for i := range n {
		v := gen.NextSample(NoiseBrown)
		if gen.brown > 1.0 || gen.brown < -1.0 {
			t.Fatalf("accumulator %v out of range at sample %d", gen.brown, i)
		}
		if math.Abs(v) > BROWN_GAIN {
			t.Fatalf("output %v exceeds gain at sample %d", v, i)
		}
	}
}

func TestNoiseGenerator_BrownSaturatesAtRails(t *testing.T) {
	tests := []struct {
		name string
		draw float64
		want float64
	}{
		{"positive", 1.0, BROWN_GAIN},
		{"negative", -1.0, -BROWN_GAIN},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewNoiseGenerator(constantSource(tt.draw))
			var v float64
			for range 1000 {
				v = gen.NextSample(NoiseBrown)
			}
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestNoiseGenerator_ResetClearsState(t *testing.T) {
	gen := NewNoiseGenerator(constantSource(0.5))
	for range 100 {
		gen.NextSample(NoisePink)
		gen.NextSample(NoiseBrown)
	}
	require.NotZero(t, gen.brown)

	gen.Reset()
	assert.Equal(t, [7]float64{}, gen.pink)
	assert.Zero(t, gen.brown)
	assert.InDelta(t, 0.5*BROWN_STEP*BROWN_GAIN, gen.NextSample(NoiseBrown), 1e-12)
}

func TestQuantizePCM16_ClampsToFullScale(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32767},
		{3.5, 32767},
		{-3.5, -32767},
		{0.5, 16383},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, quantizePCM16(tt.in), "quantize(%v)", tt.in)
	}
}

// octaveSlope estimates the spectral slope in dB/octave by averaging
// Hann-windowed single-bin power over many segments at octave-spaced bins.
func octaveSlope(t *testing.T, noise NoiseType) float64 {
	t.Helper()
	const (
		segment  = 4096
		segments = 48
		firstBin = 8 // ~86 Hz at 44.1 kHz
		octaves  = 7
	)

	gen := NewNoiseGenerator(NewUniformSource(2024))
	window := make([]float64, segment)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(segment-1))
	}

	power := make([]float64, octaves)
	buf := make([]float64, segment)
	for range segments {
		var mean float64
		for i := range buf {
			buf[i] = gen.NextSample(noise)
			mean += buf[i]
		}
		mean /= segment
		for i := range buf {
			buf[i] = (buf[i] - mean) * window[i]
		}
		for o := range octaves {
			power[o] += goertzelPower(buf, firstBin<<o)
		}
	}

	// Least-squares fit of dB against octave index.
	var sx, sy, sxx, sxy float64
	for o, p := range power {
		x := float64(o)
		y := 10 * math.Log10(p/segments)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
	}
	n := float64(octaves)
	slope := (n*sxy - sx*sy) / (n*sxx - sx*sx)
	t.Logf("%s: %.2f dB/octave", noise, slope)
	return slope
}

func goertzelPower(x []float64, bin int) float64 {
	coeff := 2 * math.Cos(2*math.Pi*float64(bin)/float64(len(x)))
	var s1, s2 float64
	for _, v := range x {
		s0 := v + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	return s1*s1 + s2*s2 - coeff*s1*s2
}

func TestNoiseGenerator_SpectralSlopes(t *testing.T) {
	tests := []struct {
		noise    NoiseType
		min, max float64
	}{
		{NoiseWhite, -1.0, 1.0},
		{NoisePink, -4.5, -1.5},
		{NoiseBrown, -8.0, -4.0},
	}
	for _, tt := range tests {
		t.Run(tt.noise.String(), func(t *testing.T) {
			slope := octaveSlope(t, tt.noise)
			assert.GreaterOrEqual(t, slope, tt.min)
			assert.LessOrEqual(t, slope, tt.max)
		})
	}
}
