package image

import (
	"context"
	"fmt"
	"sync"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
)

// Provider turns a text prompt into encoded image bytes with exactly one network
// exchange per call.
type Provider interface {
	Platform() consts.ImagePlatform
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

type Factory func(token string, opts Options) Provider

var (
	registryMu sync.RWMutex
	registry   = map[consts.ImagePlatform]Factory{}
)

// Register binds a factory to a platform. Variants call it from init.
func Register(platform consts.ImagePlatform, factory Factory) {
	if factory == nil {
		panic("image: nil factory for " + platform.String())
	}
	if _, ok := consts.LookupImagePlatform(platform.String()); !ok {
		panic("image: unknown platform " + platform.String())
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[platform]; exists {
		panic("image: platform registered twice: " + platform.String())
	}
	registry[platform] = factory
}

// New resolves name to a provider. The platform name is validated before the
// credential is looked up, and neither check touches the network.
func New(name string, creds ai.Credentials, opts Options) (Provider, error) {
	platform, ok := consts.LookupImagePlatform(name)
	if !ok {
		return nil, &ai.InvalidImagePlatformError{GivenPlatform: name, ValidPlatforms: consts.ImagePlatformNames()}
	}
	token, ok := creds.For(platform).Get()
	if !ok {
		return nil, &ai.MissingAPIKeyError{Platform: platform.String()}
	}
	registryMu.RLock()
	factory, ok := registry[platform]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("image: no provider registered for %s", platform)
	}
	return factory(token, opts), nil
}

// Generate runs one image generation on the named platform.
func Generate(ctx context.Context, name string, prompt string, creds ai.Credentials, opts Options) ([]byte, error) {
	provider, err := New(name, creds, opts)
	if err != nil {
		return nil, err
	}
	return provider.Generate(ctx, prompt)
}
