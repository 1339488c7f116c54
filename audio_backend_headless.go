//go:build headless

package main

func init() {
	compiledFeatures = append(compiledFeatures, "audio:headless")
}

func newOtoSink() (AudioSink, error) {
	return nil, ErrBackendUnavailable
}

func newEbitenSink() (AudioSink, error) {
	return nil, ErrBackendUnavailable
}
