package main

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestPlaybackController_ConcurrentCommands hammers the controller from
// several goroutines while sessions are being created and torn down.
// Run with: go test -race -run TestPlaybackController_ConcurrentCommands -count=1
func TestPlaybackController_ConcurrentCommands(t *testing.T) {
	for _, mode := range []SwitchMode{SwitchRestart, SwitchSeamless} {
		t.Run(mode.String(), func(t *testing.T) {
			sink := newRecordingSink()
			sink.pace = 100 * time.Microsecond
			ctrl := newTestController(t, sink, func(o *ControllerOptions) {
				o.Config.SwitchMode = mode
			})

			var wg sync.WaitGroup
			stop := make(chan struct{})

			wg.Go(func() {
				for i := 0; ; i++ {
					select {
					case <-stop:
						return
					default:
					}
					if i%2 == 0 {
						_ = ctrl.Play()
					} else {
						ctrl.Pause()
					}
				}
			})
			wg.Go(func() {
				for i := 0; ; i++ {
					select {
					case <-stop:
						return
					default:
					}
					_ = ctrl.SetNoiseType(NoiseType(i % int(noiseTypeCount)))
				}
			})
			wg.Go(func() {
				for {
					select {
					case <-stop:
						return
					default:
					}
					_ = ctrl.Toggle()
					time.Sleep(50 * time.Microsecond)
				}
			})
			wg.Go(func() {
				for {
					select {
					case <-stop:
						return
					default:
					}
					_ = ctrl.IsPlaying()
					_ = ctrl.CurrentNoiseType()
					_ = ctrl.status.snapshot()
				}
			})

			time.Sleep(150 * time.Millisecond)
			close(stop)
			wg.Wait()

			ctrl.Release()
			waitSessions(t, ctrl)

			requireAllReleased(t, sink)
			assert.LessOrEqual(t, sink.MaxActive(), 1, "more than one session wrote at once")
			assert.False(t, ctrl.IsPlaying())
			t.Logf("%d sessions opened", len(sink.Streams()))
		})
	}
}
