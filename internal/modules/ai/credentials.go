package ai

import (
	"strings"

	"github.com/reusedev/meme-hub/internal/consts"
)

// APIKey is an optional secret. The zero value is "not present".
type APIKey struct {
	value   string
	present bool
}

func NewAPIKey(value string) APIKey {
	value = strings.TrimSpace(value)
	if value == "" {
		return APIKey{}
	}
	return APIKey{value: value, present: true}
}

func (k APIKey) Get() (string, bool) {
	return k.value, k.present
}

func (k APIKey) Present() bool {
	return k.present
}

// Or returns k when present, otherwise fallback.
func (k APIKey) Or(fallback APIKey) APIKey {
	if k.present {
		return k
	}
	return fallback
}

// String masks everything but the last four characters.
func (k APIKey) String() string {
	if !k.present {
		return "<none>"
	}
	if len(k.value) <= 4 {
		return "****"
	}
	return "****" + k.value[len(k.value)-4:]
}

// Credentials is built once at startup and never mutated.
type Credentials struct {
	openAI    APIKey
	clipDrop  APIKey
	stability APIKey
}

func NewCredentials(openAI, clipDrop, stability APIKey) Credentials {
	return Credentials{openAI: openAI, clipDrop: clipDrop, stability: stability}
}

func (c Credentials) OpenAI() APIKey    { return c.openAI }
func (c Credentials) ClipDrop() APIKey  { return c.clipDrop }
func (c Credentials) Stability() APIKey { return c.stability }

// For returns the key used by an image platform.
func (c Credentials) For(platform consts.ImagePlatform) APIKey {
	switch platform {
	case consts.OpenAI:
		return c.openAI
	case consts.Stability:
		return c.stability
	case consts.ClipDrop:
		return c.clipDrop
	default:
		return APIKey{}
	}
}

// Merge keeps every key of c that is present and fills the rest from fallback.
func (c Credentials) Merge(fallback Credentials) Credentials {
	return Credentials{
		openAI:    c.openAI.Or(fallback.openAI),
		clipDrop:  c.clipDrop.Or(fallback.clipDrop),
		stability: c.stability.Or(fallback.stability),
	}
}
