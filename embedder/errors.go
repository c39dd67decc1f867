package embedder

import "errors"

var (
	// ErrNoRenderTarget is returned when neither the cache nor the host
	// supplied a render target for a layer.
	ErrNoRenderTarget = errors.New("embedder: no render target")
	// ErrMakeCurrentFailed is returned when a render target could not be
	// bound.
	ErrMakeCurrentFailed = errors.New("embedder: make current failed")
	// ErrPresentFailed is returned when the host's present callback reports
	// failure.
	ErrPresentFailed = errors.New("embedder: present callback failed")
	// ErrNoFrame is returned by SubmitFrame when no frame was begun.
	ErrNoFrame = errors.New("embedder: no frame begun")
)
