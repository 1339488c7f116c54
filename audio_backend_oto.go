//go:build !headless

// audio_backend_oto.go - OTO v3 audio output implementation
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

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:oto")
}

// oto permits a single context per process; every stream shares it.
var otoDevice struct {
	once       sync.Once
	ctx        *oto.Context
	sampleRate int
	err        error
}

func sharedOtoContext(cfg SinkConfig) (*oto.Context, error) {
	otoDevice.once.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   cfg.SampleRate,
			ChannelCount: cfg.Channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   time.Duration(cfg.BufferFrames) * time.Second / time.Duration(cfg.SampleRate),
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoDevice.err = fmt.Errorf("oto context: %w", err)
			return
		}
		<-ready
		otoDevice.ctx = ctx
		otoDevice.sampleRate = cfg.SampleRate
	})
	if otoDevice.err != nil {
		return nil, otoDevice.err
	}
	if otoDevice.sampleRate != cfg.SampleRate {
		return nil, fmt.Errorf("%w: device %d Hz, requested %d Hz", ErrSampleRateMismatch, otoDevice.sampleRate, cfg.SampleRate)
	}
	return otoDevice.ctx, nil
}

type OtoSink struct{}

func newOtoSink() (AudioSink, error) {
	return &OtoSink{}, nil
}

func (s *OtoSink) Open(cfg SinkConfig) (SinkStream, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ctx, err := sharedOtoContext(cfg)
	if err != nil {
		return nil, err
	}
	pipe := newPCMPipe(cfg.Channels, cfg.BufferFrames)
	player := ctx.NewPlayer(pipe)
	player.SetBufferSize(cfg.BufferFrames * cfg.Channels * 2)

	logrus.WithFields(logrus.Fields{
		"component":   "sink",
		"backend":     AUDIO_BACKEND_OTO,
		"sample_rate": cfg.SampleRate,
		"frames":      cfg.BufferFrames,
	}).Debug("Opened oto stream")

	return &otoStream{
		player:       player,
		pipe:         pipe,
		drainTimeout: cfg.DrainTimeout,
	}, nil
}

type otoStream struct {
	player       *oto.Player
	pipe         *pcmPipe
	drainTimeout time.Duration
	started      bool
	released     bool
	mutex        sync.Mutex // Only for control operations; Write runs unlocked
}

func (ot *otoStream) Start() error {
	ot.mutex.Lock()
	defer ot.mutex.Unlock()

	if ot.released {
		return ErrSinkClosed
	}
	if !ot.started {
		ot.player.Play()
		ot.started = true
	}
	return nil
}

func (ot *otoStream) Write(samples []int16) error {
	if err := ot.player.Err(); err != nil {
		return fmt.Errorf("oto player: %w", err)
	}
	return ot.pipe.WriteSamples(samples)
}

func (ot *otoStream) Stop() error {
	ot.mutex.Lock()
	defer ot.mutex.Unlock()

	if !ot.started {
		return nil
	}
	ot.started = false
	if err := ot.pipe.CloseWrite(); err != nil {
		return err
	}
	if !waitIdle(ot.player.IsPlaying, ot.drainTimeout) {
		logrus.WithFields(logrus.Fields{
			"component": "sink",
			"backend":   AUDIO_BACKEND_OTO,
			"timeout":   ot.drainTimeout,
		}).Warn("Drain timed out, pausing player")
		ot.player.Pause()
	}
	return nil
}

func (ot *otoStream) Release() error {
	ot.mutex.Lock()
	defer ot.mutex.Unlock()

	if ot.released {
		return nil
	}
	ot.released = true
	ot.started = false
	ot.pipe.Abort()
	return ot.player.Close()
}
