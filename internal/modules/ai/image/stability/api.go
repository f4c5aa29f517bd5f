package stability

import (
	"context"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai/image"
)

func init() {
	image.Register(consts.Stability, New)
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
	return consts.Stability
}

func (p *Provider) Generate(ctx context.Context, prompt string) ([]byte, error) {
	request := NewTextToImageRequest(prompt, p.opts.Stability)
	return image.NewRequester[[]byte](ctx, consts.Stability, p.token, request, &Parser{}).
		WithOptions(p.opts).
		Do()
}

func NewTextToImageRequest(prompt string, opts image.StabilityOptions) *TextToImageRequest {
	r := &TextToImageRequest{
		Engine:      opts.Engine,
		TextPrompts: []TextPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    opts.CfgScale,
		Width:       opts.Width,
		Height:      opts.Height,
		Steps:       opts.Steps,
		Samples:     1,
		Sampler:     opts.Sampler,
		Seed:        opts.Seed,
	}
	if r.Engine == "" {
		r.Engine = DefaultEngine
	}
	if r.CfgScale == 0 {
		r.CfgScale = DefaultCfgScale
	}
	if r.Width == 0 {
		r.Width = DefaultWidth
	}
	if r.Height == 0 {
		r.Height = DefaultHeight
	}
	if r.Steps == 0 {
		r.Steps = DefaultSteps
	}
	if r.Sampler == "" {
		r.Sampler = DefaultSampler
	}
	return r
}
