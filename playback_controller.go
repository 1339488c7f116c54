// playback_controller.go - Public playback state machine
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
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

var ErrControllerReleased = errors.New("playback controller released")

type ControllerOptions struct {
	Config      EngineConfig
	Sink        AudioSink
	InitialType NoiseType
	// NewSource supplies a private random source for each session.
	NewSource func() RandomSource
	Status    *runtimeStatusStore
}

// PlaybackController is the Stopped/Playing state machine the control
// surfaces talk to. Commands are serialised; none waits for audio to drain.
type PlaybackController struct {
	mu        sync.Mutex // Serialises commands and session handoff
	cfg       EngineConfig
	sink      AudioSink
	newSource func() RandomSource
	status    *runtimeStatusStore

	playing   *StateValue[bool]
	noiseType *StateValue[NoiseType]

	current  *StreamEngine
	lastDone <-chan struct{} // Done of the most recently launched session
	sessions sync.WaitGroup
	nextID   uint64
	released bool

	log *logrus.Entry
}

func NewPlaybackController(opts ControllerOptions) (*PlaybackController, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}
	if opts.Sink == nil {
		return nil, errors.New("playback controller needs an audio sink")
	}
	if !opts.InitialType.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNoiseType, opts.InitialType)
	}
	if opts.NewSource == nil {
		opts.NewSource = newSeededSource
	}
	if opts.Status == nil {
		opts.Status = &runtimeStatusStore{}
	}

	c := &PlaybackController{
		cfg:       opts.Config,
		sink:      opts.Sink,
		newSource: opts.NewSource,
		status:    opts.Status,
		playing:   NewStateValue(false),
		noiseType: NewStateValue(opts.InitialType),
		log:       logrus.WithField("component", "controller"),
	}
	c.status.setPlayback(false, opts.InitialType)
	return c, nil
}

func (c *PlaybackController) IsPlaying() bool {
	return c.playing.Get()
}

func (c *PlaybackController) CurrentNoiseType() NoiseType {
	return c.noiseType.Get()
}

// OnPlayingChanged registers an observer for the playing flag. Observers run
// while a command is in progress and must not call back into the controller
// synchronously.
func (c *PlaybackController) OnPlayingChanged(fn func(bool)) func() {
	return c.playing.Subscribe(fn)
}

func (c *PlaybackController) OnNoiseTypeChanged(fn func(NoiseType)) func() {
	return c.noiseType.Subscribe(fn)
}

func (c *PlaybackController) Config() EngineConfig {
	return c.cfg
}

// Play starts a session with the current noise type. A sink that fails to
// open leaves the controller Stopped and the error is returned.
func (c *PlaybackController) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playLocked()
}

// Pause requests a fade-out and reports Stopped immediately. The sink is
// released by the session worker once the fade-out has been written.
func (c *PlaybackController) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

// Stop is an alias for Pause.
func (c *PlaybackController) Stop() {
	c.Pause()
}

func (c *PlaybackController) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.playing.Get() {
		c.pauseLocked()
		return nil
	}
	return c.playLocked()
}

func (c *PlaybackController) playLocked() error {
	if c.released {
		return ErrControllerReleased
	}
	if c.playing.Get() {
		return nil
	}
	if err := c.startSessionLocked(c.noiseType.Get()); err != nil {
		return err
	}
	c.setPlayingLocked(true)
	return nil
}

func (c *PlaybackController) pauseLocked() {
	if c.released || !c.playing.Get() {
		return
	}
	c.stopSessionLocked()
	c.setPlayingLocked(false)
}

// SetNoiseType records t. While playing, the change is applied according to
// the configured switch mode.
func (c *PlaybackController) SetNoiseType(t NoiseType) error {
	if !t.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownNoiseType, t)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return ErrControllerReleased
	}
	if c.noiseType.Get() == t {
		return nil
	}
	if !c.playing.Get() {
		c.setNoiseTypeLocked(t)
		return nil
	}

	if c.cfg.SwitchMode == SwitchSeamless && c.current != nil {
		c.current.SetNoiseType(t)
		c.setNoiseTypeLocked(t)
		return nil
	}

	c.stopSessionLocked()
	c.setNoiseTypeLocked(t)
	if err := c.startSessionLocked(t); err != nil {
		c.setPlayingLocked(false)
		return err
	}
	return nil
}

// Release stops playback and rejects further commands. Use Wait to block
// until every sink has been closed.
func (c *PlaybackController) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return
	}
	c.released = true
	c.stopSessionLocked()
	c.setPlayingLocked(false)
	c.log.Debug("Controller released")
}

// Wait blocks until all session workers have released their sinks or ctx ends.
// Call it after Pause or Release; sessions started concurrently are not covered.
func (c *PlaybackController) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *PlaybackController) startSessionLocked(t NoiseType) error {
	stream, err := c.sink.Open(c.cfg.sinkConfig())
	if err != nil {
		c.status.setError(err)
		c.log.WithError(err).Error("Failed to open audio sink")
		return fmt.Errorf("open audio sink: %w", err)
	}

	c.nextID++
	gen := NewNoiseGenerator(c.newSource())
	gen.Reset()

	e := newStreamEngine(c.nextID, c.cfg, stream, t, gen, c.lastDone)
	e.status = c.status
	e.onExit = c.sessionExited
	c.current = e
	c.lastDone = e.Done()
	c.status.sessionStarted()

	c.log.WithFields(logrus.Fields{
		"session": e.id,
		"noise":   t,
	}).Info("Starting playback session")

	c.sessions.Go(e.run)
	return nil
}

func (c *PlaybackController) stopSessionLocked() {
	if c.current == nil {
		return
	}
	c.log.WithField("session", c.current.id).Info("Stopping playback session")
	c.current.RequestStop()
	c.current = nil
}

// sessionExited runs on the worker goroutine. A session that ends while still
// current did so without being asked (sink failure), so playback stops.
func (c *PlaybackController) sessionExited(e *StreamEngine, err error) {
	if err != nil {
		c.status.setError(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != e {
		return
	}
	c.current = nil
	c.setPlayingLocked(false)
	c.log.WithField("session", e.id).Warn("Session ended unexpectedly, playback stopped")
}

func (c *PlaybackController) setPlayingLocked(playing bool) {
	c.status.setPlayback(playing, c.noiseType.Get())
	c.playing.Set(playing)
}

func (c *PlaybackController) setNoiseTypeLocked(t NoiseType) {
	c.status.setPlayback(c.playing.Get(), t)
	c.noiseType.Set(t)
}
