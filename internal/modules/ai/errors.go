package ai

import (
	"errors"
	"fmt"
	"strings"
)

// UserError is implemented by every error kind below. SimpleMessage is the short
// text shown to the operator, Error the full diagnostic.
type UserError interface {
	error
	SimpleMessage() string
}

type MissingAPIKeyError struct {
	Platform string
}

func (e *MissingAPIKeyError) Error() string {
	return fmt.Sprintf("%s API key not found: pass it as a flag or add it to the api keys file", e.Platform)
}

func (e *MissingAPIKeyError) SimpleMessage() string {
	return fmt.Sprintf("Missing %s API key", e.Platform)
}

type InvalidImagePlatformError struct {
	GivenPlatform  string
	ValidPlatforms []string
}

func (e *InvalidImagePlatformError) Error() string {
	return fmt.Sprintf("invalid image platform '%s'. Valid platforms are: %s",
		e.GivenPlatform, strings.Join(e.ValidPlatforms, ", "))
}

func (e *InvalidImagePlatformError) SimpleMessage() string {
	return "Invalid image platform"
}

type ResponseFormatError struct {
	Raw     string
	Missing []string
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("chat reply is missing %s; raw reply: %q", strings.Join(e.Missing, " and "), e.Raw)
}

func (e *ResponseFormatError) SimpleMessage() string {
	return "Could not parse the chat reply into meme text and image prompt"
}

type ContentFilteredError struct {
	Platform string
	Detail   string
}

func (e *ContentFilteredError) Error() string {
	return fmt.Sprintf("%s rejected the prompt on content-policy grounds: %s", e.Platform, e.Detail)
}

func (e *ContentFilteredError) SimpleMessage() string {
	return "The image prompt was blocked by the provider's safety filter"
}

// ProviderError is the detail shared by the auth, quota and request failures.
type ProviderError struct {
	Platform   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) describe(kind string) string {
	var b strings.Builder
	b.WriteString(e.Platform)
	b.WriteString(" ")
	b.WriteString(kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Body != "" {
		b.WriteString("; body: ")
		b.WriteString(e.Body)
	}
	return b.String()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

type ProviderAuthError struct {
	ProviderError
}

func (e *ProviderAuthError) Error() string {
	return e.describe("authentication failed")
}

func (e *ProviderAuthError) SimpleMessage() string {
	return fmt.Sprintf("%s rejected the API key", e.Platform)
}

type ProviderQuotaError struct {
	ProviderError
}

func (e *ProviderQuotaError) Error() string {
	return e.describe("quota exceeded")
}

func (e *ProviderQuotaError) SimpleMessage() string {
	return fmt.Sprintf("%s quota or rate limit exceeded", e.Platform)
}

type ProviderRequestError struct {
	ProviderError
}

func (e *ProviderRequestError) Error() string {
	return e.describe("request failed")
}

func (e *ProviderRequestError) SimpleMessage() string {
	return fmt.Sprintf("%s request failed", e.Platform)
}

type UnexpectedProviderResponseError struct {
	Platform string
	Reason   string
	Raw      string
}

func (e *UnexpectedProviderResponseError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("unexpected %s response: %s", e.Platform, e.Reason)
	}
	return fmt.Sprintf("unexpected %s response: %s; raw: %s", e.Platform, e.Reason, e.Raw)
}

func (e *UnexpectedProviderResponseError) SimpleMessage() string {
	return fmt.Sprintf("Unexpected response from %s", e.Platform)
}

type NoFontFileError struct {
	FontFile string
	Err      error
}

func (e *NoFontFileError) Error() string {
	return fmt.Sprintf("font file %q not found: %v", e.FontFile, e.Err)
}

func (e *NoFontFileError) SimpleMessage() string {
	return "Font file not found"
}

func (e *NoFontFileError) Unwrap() error {
	return e.Err
}

// SimpleMessage returns the short message of the first UserError in err's chain,
// or err.Error() when there is none.
func SimpleMessage(err error) string {
	if err == nil {
		return ""
	}
	var u UserError
	if errors.As(err, &u) {
		return u.SimpleMessage()
	}
	return err.Error()
}

// Retryable reports whether the caller may reasonably try the same call again.
func Retryable(err error) bool {
	var quota *ProviderQuotaError
	if errors.As(err, &quota) {
		return true
	}
	var request *ProviderRequestError
	if errors.As(err, &request) {
		return request.StatusCode == 0 || request.StatusCode >= 500
	}
	return false
}
