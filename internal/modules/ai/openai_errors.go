package ai

import (
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// FromOpenAIError maps a go-openai client error onto the error taxonomy,
// keeping the original error as the cause.
func FromOpenAIError(platform string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		code, _ := apiErr.Code.(string)
		detail := ProviderError{
			Platform:   platform,
			StatusCode: apiErr.HTTPStatusCode,
			Body:       apiErr.Message,
			Err:        err,
		}
		switch {
		case code == "content_policy_violation":
			return &ContentFilteredError{Platform: platform, Detail: apiErr.Message}
		case code == "insufficient_quota" || apiErr.Type == "insufficient_quota" ||
			apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ProviderQuotaError{detail}
		case apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden:
			return &ProviderAuthError{detail}
		default:
			return &ProviderRequestError{detail}
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := ProviderError{Platform: platform, StatusCode: reqErr.HTTPStatusCode, Err: err}
		switch reqErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &ProviderAuthError{detail}
		case http.StatusTooManyRequests:
			return &ProviderQuotaError{detail}
		}
		return &ProviderRequestError{detail}
	}
	return &ProviderRequestError{ProviderError{Platform: platform, Err: err}}
}
