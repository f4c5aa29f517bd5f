package image

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/internal/modules/logs"
	"github.com/tidwall/gjson"
)

const errorBodyTimeout = 90 * time.Second

// policyMarkers are fragments of non-2xx bodies that mean the prompt itself was refused.
var policyMarkers = map[consts.ImagePlatform][]string{
	consts.Stability: {
		"invalid_prompts",
		"contains filtered words",
	},
}

// BytesParser returns a 2xx body unchanged; any other status is a request error.
type BytesParser struct {
	Platform consts.ImagePlatform
}

func (b *BytesParser) Parse(resp *http.Response) ([]byte, error) {
	if !Succeeded(resp.StatusCode) {
		body := ReadErrorBody(resp)
		LogFailure(b.Platform, resp, body)
		return nil, StatusError(b.Platform, resp.StatusCode, body)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ai.ProviderRequestError{ProviderError: ai.ProviderError{
			Platform: b.Platform.String(), StatusCode: resp.StatusCode, Err: err,
		}}
	}
	if len(data) == 0 {
		return nil, &ai.UnexpectedProviderResponseError{Platform: b.Platform.String(), Reason: "empty image body"}
	}
	return data, nil
}

func Succeeded(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// ReadErrorBody reads a failed response body, giving up after errorBodyTimeout
// because some endpoints keep error connections open for minutes.
func ReadErrorBody(resp *http.Response) string {
	ctx, cancel := context.WithTimeout(context.Background(), errorBodyTimeout)
	defer cancel()
	type result struct {
		data []byte
		err  error
	}
	resultCh := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(resp.Body)
		resultCh <- result{data: data, err: err}
	}()
	select {
	case res := <-resultCh:
		return string(res.data)
	case <-ctx.Done():
		return ""
	}
}

// StatusError reports a non-2xx status without interpreting it.
func StatusError(platform consts.ImagePlatform, statusCode int, body string) error {
	return &ai.ProviderRequestError{ProviderError: ai.ProviderError{
		Platform: platform.String(), StatusCode: statusCode, Body: body,
	}}
}

// DetectError maps a non-2xx status onto the auth, quota, content-policy and request kinds.
func DetectError(platform consts.ImagePlatform, statusCode int, body string) error {
	for _, marker := range policyMarkers[platform] {
		if strings.Contains(body, marker) {
			return &ai.ContentFilteredError{Platform: platform.String(), Detail: ErrorMessage(body)}
		}
	}
	detail := ai.ProviderError{Platform: platform.String(), StatusCode: statusCode, Body: body}
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ai.ProviderAuthError{ProviderError: detail}
	case http.StatusPaymentRequired, http.StatusTooManyRequests:
		return &ai.ProviderQuotaError{ProviderError: detail}
	default:
		return &ai.ProviderRequestError{ProviderError: detail}
	}
}

// ErrorMessage probes the usual JSON error shapes for a human readable message,
// falling back to the trimmed body.
func ErrorMessage(body string) string {
	if gjson.Valid(body) {
		for _, path := range []string{"message", "error.message", "error", "detail", "name"} {
			if v := gjson.Get(body, path); v.Exists() && v.Type == gjson.String && v.String() != "" {
				return v.String()
			}
		}
	}
	return strings.TrimSpace(body)
}

func LogFailure(platform consts.ImagePlatform, resp *http.Response, body string) {
	event := logs.Logger.Warn().
		Str("platform", platform.String()).
		Int("status_code", resp.StatusCode).
		Str("error_message", ErrorMessage(body))
	if resp.Request != nil {
		event = event.Str("path", resp.Request.URL.Path).Str("method", resp.Request.Method)
	}
	event.Msg("image resp error")
}
