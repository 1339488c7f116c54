package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedKeys(d *keyDecoder, in string) []KeyAction {
	var out []KeyAction
	for i := 0; i < len(in); i++ {
		if a := d.Feed(in[i]); a != KeyNone {
			out = append(out, a)
		}
	}
	return out
}

func TestKeyDecoder_SingleKeys(t *testing.T) {
	tests := []struct {
		in   byte
		want KeyAction
	}{
		{' ', KeyToggle},
		{'\r', KeyToggle},
		{'w', KeyWhite},
		{'1', KeyWhite},
		{'P', KeyPink},
		{'b', KeyBrown},
		{']', KeyNext},
		{'[', KeyPrev},
		{'q', KeyQuit},
		{KEY_CTRL_C, KeyQuit},
		{KEY_CTRL_D, KeyQuit},
		{'x', KeyNone},
	}
	for _, tt := range tests {
		var d keyDecoder
		assert.Equalf(t, tt.want, d.Feed(tt.in), "key %q", tt.in)
	}
}

func TestKeyDecoder_ArrowSequences(t *testing.T) {
	var d keyDecoder
	got := feedKeys(&d, "\x1b[C\x1b[D\x1bOC")
	assert.Equal(t, []KeyAction{KeyNext, KeyPrev, KeyNext}, got)
}

func TestKeyDecoder_UnknownEscapeDoesNotLeak(t *testing.T) {
	var d keyDecoder
	// Up arrow is ignored, and the bracket is not read as "previous".
	got := feedKeys(&d, "\x1b[A w")
	assert.Equal(t, []KeyAction{KeyToggle, KeyWhite}, got)

	// A lone ESC followed by a normal key still decodes the key.
	got = feedKeys(&d, "\x1bp")
	assert.Equal(t, []KeyAction{KeyPink}, got)
}

func TestApplyKeyAction_DrivesController(t *testing.T) {
	sink := newRecordingSink()
	ctrl := newTestController(t, sink, nil)

	require.NoError(t, applyKeyAction(ctrl, KeyToggle))
	assert.True(t, ctrl.IsPlaying())

	require.NoError(t, applyKeyAction(ctrl, KeyNext))
	assert.Equal(t, NoisePink, ctrl.CurrentNoiseType())
	require.NoError(t, applyKeyAction(ctrl, KeyPrev))
	require.NoError(t, applyKeyAction(ctrl, KeyPrev))
	assert.Equal(t, NoiseBrown, ctrl.CurrentNoiseType())
	require.NoError(t, applyKeyAction(ctrl, KeyWhite))
	assert.Equal(t, NoiseWhite, ctrl.CurrentNoiseType())
	assert.True(t, ctrl.IsPlaying())

	require.NoError(t, applyKeyAction(ctrl, KeyToggle))
	assert.False(t, ctrl.IsPlaying())
	require.NoError(t, applyKeyAction(ctrl, KeyQuit), "quit is handled by the host")
}

func TestApplyKeyAction_SurfacesOpenFailure(t *testing.T) {
	sink := newRecordingSink()
	sink.openErr = errors.New("no device")
	ctrl := newTestController(t, sink, nil)

	assert.Error(t, applyKeyAction(ctrl, KeyToggle))
	assert.False(t, ctrl.IsPlaying())
}

func TestFormatStatusLine(t *testing.T) {
	line := formatStatusLine(runtimeStatusSnapshot{noiseType: NoisePink}, 0)
	assert.True(t, strings.HasPrefix(line, "stopped"))
	assert.Contains(t, line, "Pink Noise")
	assert.NotContains(t, line, "sleep")

	line = formatStatusLine(runtimeStatusSnapshot{
		noiseType: NoiseBrown,
		playing:   true,
		phase:     Steady,
		lastError: "write buffer 3: boom",
	}, 90*time.Second)
	assert.True(t, strings.HasPrefix(line, "playing"))
	assert.Contains(t, line, "Brown Noise")
	assert.Contains(t, line, "steady")
	assert.Contains(t, line, "sleep 01:30")
	assert.Contains(t, line, "err: write buffer 3: boom")
}
