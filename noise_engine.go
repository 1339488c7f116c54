// noise_engine.go - Streaming engine: buffer production loop for one playback session
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
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// StreamEngine owns one playback session: generator state, fade envelope and
// the sink stream. Its loop runs on a dedicated goroutine; the only fields
// shared with callers are the atomic stop flag and noise-type selector.
type StreamEngine struct {
	id     uint64
	cfg    EngineConfig
	stream SinkStream
	gen    *NoiseGenerator
	env    *fadeEnvelope
	status *runtimeStatusStore

	noiseType atomic.Int32
	stopReq   atomic.Bool
	buffers   atomic.Uint64

	prev   <-chan struct{} // Previous session's done; its sink must be gone first
	done   chan struct{}
	err    error // Valid once done is closed
	onExit func(*StreamEngine, error)

	log *logrus.Entry
}

func newStreamEngine(id uint64, cfg EngineConfig, stream SinkStream, noiseType NoiseType, gen *NoiseGenerator, prev <-chan struct{}) *StreamEngine {
	e := &StreamEngine{
		id:     id,
		cfg:    cfg,
		stream: stream,
		gen:    gen,
		env:    newFadeEnvelope(cfg.FadeSamples()),
		prev:   prev,
		done:   make(chan struct{}),
		log: logrus.WithFields(logrus.Fields{
			"component": "engine",
			"session":   id,
		}),
	}
	e.noiseType.Store(int32(noiseType))
	return e
}

// SetNoiseType swaps the generator from the next buffer boundary on. No fade
// is applied and the envelope position is left untouched.
func (e *StreamEngine) SetNoiseType(t NoiseType) {
	e.noiseType.Store(int32(t))
}

func (e *StreamEngine) NoiseType() NoiseType {
	return NoiseType(e.noiseType.Load())
}

// RequestStop asks the loop to fade out and finish. It never blocks.
func (e *StreamEngine) RequestStop() {
	e.stopReq.Store(true)
}

func (e *StreamEngine) StopRequested() bool {
	return e.stopReq.Load()
}

func (e *StreamEngine) Done() <-chan struct{} {
	return e.done
}

// Err reports why the session ended. Only meaningful after Done is closed.
func (e *StreamEngine) Err() error {
	select {
	case <-e.done:
		return e.err
	default:
		return nil
	}
}

func (e *StreamEngine) BuffersWritten() uint64 {
	return e.buffers.Load()
}

func (e *StreamEngine) run() {
	err := e.produce()
	if err != nil {
		e.log.WithError(err).Error("Session ended with error")
	} else {
		e.log.WithField("buffers", e.buffers.Load()).Debug("Session finished")
	}
	e.err = err
	if e.onExit != nil {
		e.onExit(e, err)
	}
	close(e.done)
}

func (e *StreamEngine) produce() (err error) {
	if e.prev != nil {
		<-e.prev
	}

	started := false
	defer func() {
		if started && err == nil {
			if stopErr := e.stream.Stop(); stopErr != nil {
				err = fmt.Errorf("stop sink: %w", stopErr)
			}
		}
		if relErr := e.stream.Release(); relErr != nil && err == nil {
			err = fmt.Errorf("release sink: %w", relErr)
		}
		e.log.Debug("Sink released")
	}()

	// Stopped before a single sample was produced: nothing to fade.
	if e.stopReq.Load() {
		return nil
	}

	if err := e.stream.Start(); err != nil {
		return fmt.Errorf("start sink: %w", err)
	}
	started = true
	e.log.WithField("noise", e.NoiseType()).Debug("Session started")

	buf := make([]int16, e.cfg.BufferFrames)
	for {
		if e.stopReq.Load() && e.env.Phase() != FadingOut {
			e.env.beginFadeOut()
			e.log.WithField("position", e.env.position).Debug("Fade-out started")
		}
		noiseType := e.NoiseType()
		phase := e.env.Phase()

		e.fill(buf, noiseType)

		if err := e.stream.Write(buf); err != nil {
			return fmt.Errorf("write buffer %d: %w", e.buffers.Load(), err)
		}
		e.buffers.Add(1)
		if e.status != nil {
			e.status.bufferWritten(len(buf), phase)
		}

		if e.env.fadeOutComplete() {
			return nil
		}
	}
}

// fill renders one buffer with a single generator. Samples past the end of a
// completed fade-out are silent.
func (e *StreamEngine) fill(buf []int16, noiseType NoiseType) {
	for i := range buf {
		sample := e.gen.NextSample(noiseType)
		buf[i] = quantizePCM16(sample * e.env.next())
	}
}
