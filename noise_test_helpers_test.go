// noise_test_helpers_test.go - Test helpers for the noise engine and controller.

package main

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errInjectedWrite = errors.New("injected write failure")

// testEngineConfig is small enough that a full fade runs in a few buffers.
func testEngineConfig() EngineConfig {
	return EngineConfig{
		SampleRate:   8000,
		BufferFrames: 64,
		FadeDuration: 20 * time.Millisecond, // 160 samples
		StopGrace:    5 * time.Millisecond,
		SwitchMode:   SwitchRestart,
	}
}

func constantSource(v float64) RandomSource {
	return func() float64 { return v }
}

// sequenceSource cycles through vals.
func sequenceSource(vals ...float64) RandomSource {
	i := 0
	return func() float64 {
		v := vals[i%len(vals)]
		i++
		return v
	}
}

// recordingSink hands out in-memory streams and tracks how many are writing
// at once.
type recordingSink struct {
	mu        sync.Mutex
	streams   []*recordingStream
	openErr   error
	failAt    int           // Stream write number (1-based) that fails; 0 never
	pace      time.Duration // Sleep per write
	active    int
	maxActive int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{pace: 500 * time.Microsecond}
}

func (s *recordingSink) Open(cfg SinkConfig) (SinkStream, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	st := &recordingStream{sink: s, cfg: cfg, pace: s.pace, failAt: s.failAt}
	s.streams = append(s.streams, st)
	return st, nil
}

func (s *recordingSink) Streams() []*recordingStream {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.streams)
}

func (s *recordingSink) MaxActive() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxActive
}

func (s *recordingSink) streamStarted() {
	s.mu.Lock()
	s.active++
	s.maxActive = max(s.maxActive, s.active)
	s.mu.Unlock()
}

func (s *recordingSink) streamReleased() {
	s.mu.Lock()
	s.active--
	s.mu.Unlock()
}

type recordingStream struct {
	sink   *recordingSink
	cfg    SinkConfig
	pace   time.Duration
	failAt int

	mu       sync.Mutex
	buffers  [][]int16
	writes   int
	starts   int
	stops    int
	releases int
}

func (st *recordingStream) Start() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.releases > 0 {
		return ErrSinkClosed
	}
	st.starts++
	st.sink.streamStarted()
	return nil
}

func (st *recordingStream) Write(samples []int16) error {
	st.mu.Lock()
	if st.starts == 0 || st.releases > 0 {
		st.mu.Unlock()
		return ErrSinkClosed
	}
	st.writes++
	if st.failAt > 0 && st.writes == st.failAt {
		st.mu.Unlock()
		return errInjectedWrite
	}
	st.buffers = append(st.buffers, slices.Clone(samples))
	st.mu.Unlock()

	if st.pace > 0 {
		time.Sleep(st.pace)
	}
	return nil
}

func (st *recordingStream) Stop() error {
	st.mu.Lock()
	st.stops++
	st.mu.Unlock()
	return nil
}

func (st *recordingStream) Release() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.releases++
	if st.releases == 1 && st.starts > 0 {
		st.sink.streamReleased()
	}
	return nil
}

func (st *recordingStream) Buffers() [][]int16 {
	st.mu.Lock()
	defer st.mu.Unlock()
	return slices.Clone(st.buffers)
}

func (st *recordingStream) Samples() []int16 {
	st.mu.Lock()
	defer st.mu.Unlock()
	var out []int16
	for _, b := range st.buffers {
		out = append(out, b...)
	}
	return out
}

func (st *recordingStream) SampleCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for _, b := range st.buffers {
		n += len(b)
	}
	return n
}

func (st *recordingStream) Counts() (starts, stops, releases int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.starts, st.stops, st.releases
}

// newTestController builds a controller over a recording sink. The cleanup
// releases it and waits for every session to finish.
func newTestController(t *testing.T, sink *recordingSink, mutate func(*ControllerOptions)) *PlaybackController {
	t.Helper()
	opts := ControllerOptions{
		Config:      testEngineConfig(),
		Sink:        sink,
		InitialType: NoiseWhite,
		NewSource:   func() RandomSource { return NewUniformSource(42) },
	}
	if mutate != nil {
		mutate(&opts)
	}
	ctrl, err := NewPlaybackController(opts)
	require.NoError(t, err)

	t.Cleanup(func() {
		ctrl.Release()
		waitSessions(t, ctrl)
	})
	return ctrl
}

func waitSessions(t *testing.T, ctrl *PlaybackController) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, ctrl.Wait(ctx), "sessions did not finish")
}

// requireAllReleased checks every stream the sink handed out was released
// exactly once.
func requireAllReleased(t *testing.T, sink *recordingSink) {
	t.Helper()
	for i, st := range sink.Streams() {
		_, _, releases := st.Counts()
		require.Equalf(t, 1, releases, "stream %d released %d times", i, releases)
	}
}
