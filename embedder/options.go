package embedder

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/config"
)

// Option configures an ExternalViewEmbedder.
type Option func(*ExternalViewEmbedder)

// WithConfig applies the cache settings of cfg.
func WithConfig(cfg *config.Config) Option {
	return func(e *ExternalViewEmbedder) {
		if cfg == nil {
			return
		}
		e.avoidCache = cfg.AvoidBackingStoreCache
		e.keyCacheByView = cfg.KeyCacheByView
	}
}

// WithSurfaceTransformation installs the callback queried at the start of
// every frame for the root surface transformation, e.g. the display
// rotation. Without it the transformation is the identity.
func WithSurfaceTransformation(fn func() compositor.Matrix) Option {
	return func(e *ExternalViewEmbedder) { e.surfaceTransformation = fn }
}

// WithAvoidBackingStoreCache asks the host for new render targets every
// frame and releases them after presentation.
func WithAvoidBackingStoreCache(avoid bool) Option {
	return func(e *ExternalViewEmbedder) { e.avoidCache = avoid }
}

// WithCacheKeyedByView restricts reuse of cached render targets to the view
// that first acquired them.
func WithCacheKeyedByView(keyed bool) Option {
	return func(e *ExternalViewEmbedder) { e.keyCacheByView = keyed }
}
