package gpt

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/internal/modules/ai/image"
	"github.com/reusedev/meme-hub/internal/modules/http_client"
	"github.com/reusedev/meme-hub/internal/modules/logs"
	"github.com/reusedev/meme-hub/tools"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel = openai.CreateImageModelDallE2
	DefaultSize  = openai.CreateImageSize512x512
)

func init() {
	image.Register(consts.OpenAI, New)
}

type Provider struct {
	token string
	opts  image.Options
}

var _ image.Provider = (*Provider)(nil)

func New(token string, opts image.Options) image.Provider {
	return &Provider{token: token, opts: opts}
}

func (p *Provider) Platform() consts.ImagePlatform {
	return consts.OpenAI
}

func (p *Provider) Generate(ctx context.Context, prompt string) ([]byte, error) {
	request := NewImageRequest(prompt, p.opts.OpenAI)
	start := time.Now()
	resp, err := p.client().CreateImage(ctx, request)
	duration := time.Since(start)
	if err != nil {
		logs.Logger.Warn().Err(err).
			Str("platform", consts.OpenAI.String()).
			Str("model", request.Model).
			Dur("req_consume_ms", duration).
			Msg("image request failed")
		return nil, ai.FromOpenAIError(consts.OpenAI.String(), err)
	}
	logs.Logger.Info().
		Str("platform", consts.OpenAI.String()).
		Str("model", request.Model).
		Str("size", request.Size).
		Dur("req_consume_ms", duration).
		Msg("image request")
	return decode(resp)
}

func (p *Provider) client() *openai.Client {
	cfg := openai.DefaultConfig(p.token)
	cfg.BaseURL = strings.TrimRight(tools.BaseURLByPlatform(consts.OpenAI, p.opts.BaseURL), "/")
	switch {
	case p.opts.HTTPClient != nil:
		cfg.HTTPClient = p.opts.HTTPClient
	default:
		cfg.HTTPClient = http_client.NewWithTimeout(p.opts.Timeout).HttpClient
	}
	return openai.NewClientWithConfig(cfg)
}

func NewImageRequest(prompt string, opts image.OpenAIOptions) openai.ImageRequest {
	r := openai.ImageRequest{
		Prompt:         prompt,
		Model:          opts.Model,
		N:              1,
		Size:           opts.Size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	}
	if r.Model == "" {
		r.Model = DefaultModel
	}
	if r.Size == "" {
		r.Size = DefaultSize
	}
	return r
}

func decode(resp openai.ImageResponse) ([]byte, error) {
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, &ai.UnexpectedProviderResponseError{Platform: consts.OpenAI.String(), Reason: "no b64_json image in response"}
	}
	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, &ai.UnexpectedProviderResponseError{
			Platform: consts.OpenAI.String(),
			Reason:   "b64_json is not valid base64: " + err.Error(),
		}
	}
	return data, nil
}
