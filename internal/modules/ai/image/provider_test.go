package image_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/internal/modules/ai/image"
	_ "github.com/reusedev/meme-hub/internal/modules/ai/image/clipdrop"
	_ "github.com/reusedev/meme-hub/internal/modules/ai/image/gpt"
	_ "github.com/reusedev/meme-hub/internal/modules/ai/image/stability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func allCredentials() ai.Credentials {
	return ai.NewCredentials(ai.NewAPIKey("sk-openai"), ai.NewAPIKey("cd-key"), ai.NewAPIKey("sk-stability"))
}

func TestNewInvalidPlatform(t *testing.T) {
	srv, hits := countingServer(t)

	for _, name := range []string{"midjourney", "", "dalle"} {
		_, err := image.Generate(context.Background(), name, "a cat", ai.Credentials{}, image.Options{BaseURL: srv.URL})
		var invalid *ai.InvalidImagePlatformError
		require.ErrorAs(t, err, &invalid, name)
		assert.Equal(t, name, invalid.GivenPlatform)
		assert.Equal(t, []string{"openai", "stability", "clipdrop"}, invalid.ValidPlatforms)
	}
	assert.Contains(t, (&ai.InvalidImagePlatformError{GivenPlatform: "x", ValidPlatforms: consts.ImagePlatformNames()}).Error(),
		"openai, stability, clipdrop")
	require.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestNewMissingKey(t *testing.T) {
	srv, hits := countingServer(t)

	for _, platform := range consts.ImagePlatforms() {
		t.Run(platform.String(), func(t *testing.T) {
			_, err := image.Generate(context.Background(), platform.String(), "a cat", ai.Credentials{}, image.Options{BaseURL: srv.URL})
			var missing *ai.MissingAPIKeyError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, platform.String(), missing.Platform)
		})
	}
	require.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestNewResolvesEachPlatform(t *testing.T) {
	for _, name := range []string{"openai", "Stability", " clipdrop "} {
		provider, err := image.New(name, allCredentials(), image.Options{})
		require.NoError(t, err)
		p, _ := consts.LookupImagePlatform(name)
		assert.Equal(t, p, provider.Platform())
	}
}

func TestOnlyTheSelectedKeyIsNeeded(t *testing.T) {
	creds := ai.NewCredentials(ai.APIKey{}, ai.NewAPIKey("cd-key"), ai.APIKey{})
	_, err := image.New("clipdrop", creds, image.Options{})
	require.NoError(t, err)

	_, err = image.New("stability", creds, image.Options{})
	var missing *ai.MissingAPIKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "stability", missing.Platform)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	require.Panics(t, func() {
		image.Register(consts.ClipDrop, func(string, image.Options) image.Provider { return nil })
	})
	require.Panics(t, func() {
		image.Register(consts.ImagePlatform("bogus"), func(string, image.Options) image.Provider { return nil })
	})
}
