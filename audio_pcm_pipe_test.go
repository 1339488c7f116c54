package main

import (
	"encoding/binary"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPCMPipe_EncodesLittleEndianMono(t *testing.T) {
	p := newPCMPipe(1, 4)
	samples := []int16{0, 1, -1, 32767, -32767}

	done := make(chan error, 1)
	go func() {
		done <- p.WriteSamples(samples)
		p.CloseWrite()
	}()

	raw, err := io.ReadAll(p)
	require.NoError(t, err)
	require.NoError(t, <-done)
	require.Len(t, raw, len(samples)*2)
	for i, s := range samples {
		assert.Equal(t, s, int16(binary.LittleEndian.Uint16(raw[2*i:])))
	}
}

func TestPCMPipe_DuplicatesAcrossChannels(t *testing.T) {
	p := newPCMPipe(2, 2)
	go func() {
		_ = p.WriteSamples([]int16{100, -200})
		p.CloseWrite()
	}()

	raw, err := io.ReadAll(p)
	require.NoError(t, err)
	require.Len(t, raw, 8)
	want := []int16{100, 100, -200, -200}
	for i, s := range want {
		assert.Equal(t, s, int16(binary.LittleEndian.Uint16(raw[2*i:])))
	}
}

func TestPCMPipe_WriteBlocksUntilRead(t *testing.T) {
	p := newPCMPipe(1, 8)
	var written atomic.Bool
	go func() {
		_ = p.WriteSamples(make([]int16, 8))
		written.Store(true)
	}()

	time.Sleep(20 * time.Millisecond)
	require.False(t, written.Load(), "write returned before the player read it")

	buf := make([]byte, 16)
	_, err := io.ReadFull(p, buf)
	require.NoError(t, err)
	require.Eventually(t, written.Load, time.Second, time.Millisecond)
}

func TestPCMPipe_AbortUnblocksWriter(t *testing.T) {
	p := newPCMPipe(1, 8)
	errCh := make(chan error, 1)
	go func() { errCh <- p.WriteSamples(make([]int16, 8)) }()

	time.Sleep(10 * time.Millisecond)
	p.Abort()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSinkClosed)
	case <-time.After(time.Second):
		t.Fatal("writer still blocked after abort")
	}
	assert.ErrorIs(t, p.WriteSamples([]int16{1}), ErrSinkClosed)
}

func TestPCMPipe_WriteAfterCloseWrite(t *testing.T) {
	p := newPCMPipe(1, 1)
	require.NoError(t, p.CloseWrite())
	assert.ErrorIs(t, p.WriteSamples([]int16{1}), ErrSinkClosed)
}

func TestWaitIdle(t *testing.T) {
	assert.True(t, waitIdle(func() bool { return false }, 0))

	start := time.Now()
	assert.False(t, waitIdle(func() bool { return true }, 30*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	var calls atomic.Int32
	assert.True(t, waitIdle(func() bool { return calls.Add(1) < 3 }, time.Second))
}
