package image

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestDetectError(t *testing.T) {
	tests := []struct {
		name     string
		platform consts.ImagePlatform
		status   int
		body     string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "stability filtered words",
			platform: consts.Stability,
			status:   http.StatusBadRequest,
			body:     `{"id":"x","name":"invalid_prompts","message":"Your prompt contains filtered words"}`,
			check: func(t *testing.T, err error) {
				var target *ai.ContentFilteredError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "Your prompt contains filtered words", target.Detail)
			},
		},
		{
			name:     "unauthorized",
			platform: consts.Stability,
			status:   http.StatusUnauthorized,
			body:     `{"name":"unauthorized","message":"missing key"}`,
			check: func(t *testing.T, err error) {
				var target *ai.ProviderAuthError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, http.StatusUnauthorized, target.StatusCode)
			},
		},
		{
			name:     "forbidden",
			platform: consts.Stability,
			status:   http.StatusForbidden,
			check: func(t *testing.T, err error) {
				var target *ai.ProviderAuthError
				require.ErrorAs(t, err, &target)
			},
		},
		{
			name:     "payment required",
			platform: consts.Stability,
			status:   http.StatusPaymentRequired,
			check: func(t *testing.T, err error) {
				var target *ai.ProviderQuotaError
				require.ErrorAs(t, err, &target)
			},
		},
		{
			name:     "rate limited",
			platform: consts.Stability,
			status:   http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				var target *ai.ProviderQuotaError
				require.ErrorAs(t, err, &target)
			},
		},
		{
			name:     "server error keeps body",
			platform: consts.Stability,
			status:   http.StatusInternalServerError,
			body:     "boom",
			check: func(t *testing.T, err error) {
				var target *ai.ProviderRequestError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "boom", target.Body)
				assert.Equal(t, http.StatusInternalServerError, target.StatusCode)
			},
		},
		{
			name:     "markers only apply to their platform",
			platform: consts.ClipDrop,
			status:   http.StatusBadRequest,
			body:     "invalid_prompts",
			check: func(t *testing.T, err error) {
				var target *ai.ProviderRequestError
				require.ErrorAs(t, err, &target)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, DetectError(tt.platform, tt.status, tt.body))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "top", ErrorMessage(`{"message":"top"}`))
	assert.Equal(t, "nested", ErrorMessage(`{"error":{"message":"nested"}}`))
	assert.Equal(t, "flat", ErrorMessage(`{"error":"flat"}`))
	assert.Equal(t, "detail", ErrorMessage(`{"detail":"detail"}`))
	assert.Equal(t, "plain text", ErrorMessage("  plain text \n"))
	assert.Equal(t, `{"code":3}`, ErrorMessage(`{"code":3}`))
}

func TestBytesParser(t *testing.T) {
	p := &BytesParser{Platform: consts.ClipDrop}

	data, err := p.Parse(response(http.StatusOK, "\x89PNG raw"))
	require.NoError(t, err)
	require.Equal(t, []byte("\x89PNG raw"), data)

	_, err = p.Parse(response(http.StatusOK, ""))
	var unexpected *ai.UnexpectedProviderResponseError
	require.ErrorAs(t, err, &unexpected)

	_, err = p.Parse(response(http.StatusPaymentRequired, `{"error":"no credits"}`))
	var request *ai.ProviderRequestError
	require.ErrorAs(t, err, &request)
	assert.Equal(t, http.StatusPaymentRequired, request.StatusCode)
	assert.Equal(t, `{"error":"no credits"}`, request.Body)
	assert.Equal(t, "clipdrop", request.Platform)
}

func TestSucceeded(t *testing.T) {
	assert.True(t, Succeeded(200))
	assert.True(t, Succeeded(204))
	assert.False(t, Succeeded(199))
	assert.False(t, Succeeded(301))
	assert.False(t, Succeeded(500))
}
