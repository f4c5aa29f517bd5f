package image

import (
	"context"
	"net/http"
	"time"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/internal/modules/http_client"
	"github.com/reusedev/meme-hub/internal/modules/logs"
	"github.com/reusedev/meme-hub/tools"
)

// SyncRequester performs one POST and hands the response to its parser.
type SyncRequester[T any] struct {
	ctx      context.Context
	platform consts.ImagePlatform
	token    string
	baseURL  string
	client   *http_client.HttpClient
	Request  Request
	Parser   Parser[T]
}

func NewRequester[T any](ctx context.Context, platform consts.ImagePlatform, token string, request Request, parser Parser[T]) *SyncRequester[T] {
	return &SyncRequester[T]{
		ctx:      ctx,
		platform: platform,
		token:    token,
		client:   http_client.New(),
		Request:  request,
		Parser:   parser,
	}
}

// WithOptions applies the endpoint and client settings of opts.
func (r *SyncRequester[T]) WithOptions(opts Options) *SyncRequester[T] {
	r.baseURL = opts.BaseURL
	switch {
	case opts.HTTPClient != nil:
		r.client = http_client.Wrap(opts.HTTPClient)
	case opts.Timeout > 0:
		r.client = http_client.NewWithTimeout(opts.Timeout)
	}
	return r
}

func (r *SyncRequester[T]) Do() (T, error) {
	var zero T
	body, contentType, err := r.Request.BodyContentType()
	if err != nil {
		return zero, err
	}
	options := []http_client.RequestOption{
		http_client.WithHeader("Content-Type", contentType),
		http_client.WithBody(body),
		http_client.WithContext(r.ctx),
	}
	for k, v := range r.Request.Headers(r.token) {
		options = append(options, http_client.WithHeader(k, v))
	}
	req, err := r.client.NewRequest(
		http.MethodPost,
		tools.FullURL(tools.BaseURLByPlatform(r.platform, r.baseURL), r.Request.Path()),
		options...,
	)
	if err != nil {
		return zero, err
	}
	reqAt := time.Now()
	resp, err := r.client.Do(req)
	respAt := time.Now()
	if err != nil {
		logs.Logger.Warn().Err(err).
			Str("platform", r.platform.String()).
			Str("path", r.Request.Path()).
			Dur("req_consume_ms", respAt.Sub(reqAt)).
			Msg("image request failed")
		return zero, &ai.ProviderRequestError{ProviderError: ai.ProviderError{Platform: r.platform.String(), Err: err}}
	}
	defer resp.Body.Close()
	logs.Logger.Info().
		Str("platform", r.platform.String()).
		Str("path", r.Request.Path()).
		Str("method", req.Method).
		Int("status_code", resp.StatusCode).
		Dur("req_consume_ms", respAt.Sub(reqAt)).
		Msg("image request")
	return r.Parser.Parse(resp)
}
