package main

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleepTimer_FiresOnce(t *testing.T) {
	var fired atomic.Int32
	timer := NewSleepTimer(func() { fired.Add(1) })

	timer.Start(10 * time.Millisecond)
	require.True(t, timer.Active())
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.False(t, timer.Active())
	assert.Zero(t, timer.Remaining())
}

func TestSleepTimer_CancelPreventsExpiry(t *testing.T) {
	var fired atomic.Int32
	timer := NewSleepTimer(func() { fired.Add(1) })

	timer.Start(15 * time.Millisecond)
	timer.Cancel()
	time.Sleep(40 * time.Millisecond)

	assert.Zero(t, fired.Load())
	assert.False(t, timer.Active())
}

func TestSleepTimer_RestartReplacesDeadline(t *testing.T) {
	var fired atomic.Int32
	timer := NewSleepTimer(func() { fired.Add(1) })

	timer.Start(15 * time.Millisecond)
	timer.Start(time.Hour)
	time.Sleep(40 * time.Millisecond)

	assert.Zero(t, fired.Load())
	rem := timer.Remaining()
	assert.Greater(t, rem, 59*time.Minute)
	assert.LessOrEqual(t, rem, time.Hour)
	timer.Cancel()
}

func TestSleepTimer_RemainingUsesClock(t *testing.T) {
	now := time.Date(2026, 1, 1, 22, 0, 0, 0, time.UTC)
	timer := NewSleepTimer(nil)
	timer.now = func() time.Time { return now }

	timer.Start(30 * time.Minute)
	defer timer.Cancel()
	now = now.Add(10 * time.Minute)
	assert.Equal(t, 20*time.Minute, timer.Remaining())

	now = now.Add(time.Hour)
	assert.Zero(t, timer.Remaining(), "never negative")
}

func TestSleepTimer_PausesController(t *testing.T) {
	sink := newRecordingSink()
	ctrl := newTestController(t, sink, nil)
	timer := NewSleepTimer(ctrl.Pause)

	ctrl.OnPlayingChanged(func(p bool) {
		if p {
			timer.Start(20 * time.Millisecond)
		} else {
			timer.Cancel()
		}
	})

	require.NoError(t, ctrl.Play())
	require.True(t, timer.Active())
	require.Eventually(t, func() bool { return !ctrl.IsPlaying() }, time.Second, time.Millisecond)
	assert.False(t, timer.Active())
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{25 * time.Minute, "25:00"},
		{90*time.Minute + 5*time.Second, "1:30:05"},
		{1499 * time.Millisecond, "00:01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRemaining(tt.d))
	}
}
