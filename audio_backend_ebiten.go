//go:build !headless

// audio_backend_ebiten.go - Ebiten audio output, used alongside the ebiten window
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
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/sirupsen/logrus"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:ebiten")
}

// ebitenDeviceChannels is fixed by audio.Context.NewPlayer: 16-bit stereo LE.
const ebitenDeviceChannels = 2

type EbitenSink struct {
	mutex sync.Mutex
}

func newEbitenSink() (AudioSink, error) {
	return &EbitenSink{}, nil
}

func (s *EbitenSink) context(sampleRate int) (*audio.Context, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	ctx := audio.CurrentContext()
	if ctx == nil {
		return audio.NewContext(sampleRate), nil
	}
	if ctx.SampleRate() != sampleRate {
		return nil, fmt.Errorf("%w: device %d Hz, requested %d Hz", ErrSampleRateMismatch, ctx.SampleRate(), sampleRate)
	}
	return ctx, nil
}

func (s *EbitenSink) Open(cfg SinkConfig) (SinkStream, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ctx, err := s.context(cfg.SampleRate)
	if err != nil {
		return nil, err
	}
	pipe := newPCMPipe(ebitenDeviceChannels, cfg.BufferFrames)
	player, err := ctx.NewPlayer(pipe)
	if err != nil {
		return nil, fmt.Errorf("ebiten player: %w", err)
	}
	player.SetBufferSize(time.Duration(cfg.BufferFrames) * time.Second / time.Duration(cfg.SampleRate))

	logrus.WithFields(logrus.Fields{
		"component":   "sink",
		"backend":     AUDIO_BACKEND_EBITEN,
		"sample_rate": cfg.SampleRate,
		"frames":      cfg.BufferFrames,
	}).Debug("Opened ebiten stream")

	return &ebitenStream{
		player:       player,
		pipe:         pipe,
		drainTimeout: cfg.DrainTimeout,
	}, nil
}

type ebitenStream struct {
	player       *audio.Player
	pipe         *pcmPipe
	drainTimeout time.Duration
	started      bool
	released     bool
	mutex        sync.Mutex
}

func (es *ebitenStream) Start() error {
	es.mutex.Lock()
	defer es.mutex.Unlock()

	if es.released {
		return ErrSinkClosed
	}
	if !es.started {
		es.player.Play()
		es.started = true
	}
	return nil
}

func (es *ebitenStream) Write(samples []int16) error {
	return es.pipe.WriteSamples(samples)
}

func (es *ebitenStream) Stop() error {
	es.mutex.Lock()
	defer es.mutex.Unlock()

	if !es.started {
		return nil
	}
	es.started = false
	if err := es.pipe.CloseWrite(); err != nil {
		return err
	}
	if !waitIdle(es.player.IsPlaying, es.drainTimeout) {
		es.player.Pause()
	}
	return nil
}

func (es *ebitenStream) Release() error {
	es.mutex.Lock()
	defer es.mutex.Unlock()

	if es.released {
		return nil
	}
	es.released = true
	es.started = false
	es.pipe.Abort()
	return es.player.Close()
}
