package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAudioSink_Null(t *testing.T) {
	sink, err := NewAudioSink(AUDIO_BACKEND_NULL)
	require.NoError(t, err)
	assert.IsType(t, &NullSink{}, sink)

	_, err = NewAudioSink("alsa")
	assert.Error(t, err)
}

func TestSinkConfig_RejectsUnsupportedFormats(t *testing.T) {
	cfg := testEngineConfig().sinkConfig()
	require.NoError(t, cfg.validate())

	stereo := cfg
	stereo.Channels = 2
	assert.ErrorIs(t, stereo.validate(), errUnsupportedSinkFormat)

	eightBit := cfg
	eightBit.BitDepth = 8
	assert.ErrorIs(t, eightBit.validate(), errUnsupportedSinkFormat)

	_, err := NewNullSink().Open(stereo)
	assert.Error(t, err)
}

func TestNullSink_Lifecycle(t *testing.T) {
	cfg := testEngineConfig().sinkConfig()
	st, err := NewNullSink().Open(cfg)
	require.NoError(t, err)

	assert.ErrorIs(t, st.Write(make([]int16, 8)), ErrSinkClosed, "write before start")
	require.NoError(t, st.Start())

	start := time.Now()
	require.NoError(t, st.Write(make([]int16, 80))) // 10ms at 8 kHz
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond, "writes are paced at real time")

	require.NoError(t, st.Stop())
	require.NoError(t, st.Release())
	require.NoError(t, st.Release())
	assert.ErrorIs(t, st.Write(make([]int16, 8)), ErrSinkClosed)
	assert.ErrorIs(t, st.Start(), ErrSinkClosed)
}

func TestPlaybackController_OverNullSink(t *testing.T) {
	ctrl, err := NewPlaybackController(ControllerOptions{
		Config:      testEngineConfig(),
		Sink:        NewNullSink(),
		InitialType: NoisePink,
	})
	require.NoError(t, err)

	require.NoError(t, ctrl.Play())
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, ctrl.SetNoiseType(NoiseBrown))
	time.Sleep(30 * time.Millisecond)
	ctrl.Release()
	waitSessions(t, ctrl)
	assert.False(t, ctrl.IsPlaying())
}
