package clipdrop

import (
	"context"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai/image"
)

func init() {
	image.Register(consts.ClipDrop, New)
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
	return consts.ClipDrop
}

func (p *Provider) Generate(ctx context.Context, prompt string) ([]byte, error) {
	return image.NewRequester[[]byte](ctx, consts.ClipDrop, p.token, &TextToImageRequest{Prompt: prompt}, NewParser()).
		WithOptions(p.opts).
		Do()
}
