package image

import (
	"io"
	"net/http"
	"time"
)

// Options tunes a provider. Zero values select the documented defaults.
type Options struct {
	// BaseURL replaces the selected platform's public endpoint.
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Stability  StabilityOptions
	OpenAI     OpenAIOptions
}

type StabilityOptions struct {
	Engine   string
	Width    int
	Height   int
	Steps    int
	CfgScale float64
	Sampler  string
	// Seed 0 lets the provider pick one.
	Seed uint32
}

type OpenAIOptions struct {
	Model string
	Size  string
}

// Request describes the single HTTP exchange a provider makes.
type Request interface {
	BodyContentType() (io.Reader, string, error)
	Path() string
	// Headers carries the platform's authentication scheme.
	Headers(token string) map[string]string
}

type Parser[T any] interface {
	Parse(resp *http.Response) (T, error)
}
