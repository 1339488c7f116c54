package main

import "sync"

type runtimeStatusSnapshot struct {
	noiseType NoiseType
	playing   bool
	phase     FadePhase

	sessionsStarted uint64
	buffersWritten  uint64
	samplesWritten  uint64
	lastError       string
}

type runtimeStatusStore struct {
	mu sync.RWMutex
	runtimeStatusSnapshot
}

func (s *runtimeStatusStore) setPlayback(playing bool, noiseType NoiseType) {
	s.mu.Lock()
	s.playing = playing
	s.noiseType = noiseType
	s.mu.Unlock()
}

func (s *runtimeStatusStore) sessionStarted() {
	s.mu.Lock()
	s.sessionsStarted++
	s.phase = FadingIn
	s.mu.Unlock()
}

func (s *runtimeStatusStore) bufferWritten(frames int, phase FadePhase) {
	s.mu.Lock()
	s.buffersWritten++
	s.samplesWritten += uint64(frames)
	s.phase = phase
	s.mu.Unlock()
}

func (s *runtimeStatusStore) setError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *runtimeStatusStore) snapshot() runtimeStatusSnapshot {
	s.mu.RLock()
	snap := s.runtimeStatusSnapshot
	s.mu.RUnlock()
	return snap
}

var runtimeStatus = &runtimeStatusStore{}
