// audio_pcm_pipe.go - Push-to-pull bridge between the engine and reader-driven players
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
	"encoding/binary"
	"errors"
	"io"
	"time"
)

// pcmPipe adapts blocking int16 writes to the io.Reader that oto and ebiten
// players pull from. A write returns only once the player has read every
// byte, which paces the engine to the device.
type pcmPipe struct {
	r        *io.PipeReader
	w        *io.PipeWriter
	channels int // Device channels; mono input is duplicated across them
	scratch  []byte
}

func newPCMPipe(channels, frames int) *pcmPipe {
	r, w := io.Pipe()
	return &pcmPipe{
		r:        r,
		w:        w,
		channels: channels,
		scratch:  make([]byte, frames*channels*2),
	}
}

func (p *pcmPipe) Read(b []byte) (int, error) {
	return p.r.Read(b)
}

// WriteSamples encodes mono samples as signed 16-bit little endian frames.
func (p *pcmPipe) WriteSamples(samples []int16) error {
	n := len(samples) * p.channels * 2
	if cap(p.scratch) < n {
		p.scratch = make([]byte, n)
	}
	buf := p.scratch[:n]
	off := 0
	for _, s := range samples {
		for c := 0; c < p.channels; c++ {
			binary.LittleEndian.PutUint16(buf[off:], uint16(s))
			off += 2
		}
	}
	if _, err := p.w.Write(buf); err != nil {
		if errors.Is(err, io.ErrClosedPipe) {
			return ErrSinkClosed
		}
		return err
	}
	return nil
}

// CloseWrite lets the reader drain what it already holds and then see EOF.
func (p *pcmPipe) CloseWrite() error {
	return p.w.Close()
}

// Abort unblocks any pending write with ErrSinkClosed.
func (p *pcmPipe) Abort() {
	_ = p.r.CloseWithError(ErrSinkClosed)
}

// waitIdle polls isPlaying until it reports false or timeout elapses.
func waitIdle(isPlaying func() bool, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for isPlaying() {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(10 * time.Millisecond)
	}
	return true
}
