//go:build headless

package main

import "context"

func RunNoiseWindow(_ context.Context, _ *PlaybackController, _ *SleepTimer) error {
	return ErrWindowUnavailable
}
