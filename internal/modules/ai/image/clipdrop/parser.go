package clipdrop

import (
	"net/http"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai/image"
	"github.com/reusedev/meme-hub/internal/modules/logs"
)

type Parser struct {
	*image.BytesParser
}

func NewParser() *Parser {
	return &Parser{BytesParser: &image.BytesParser{Platform: consts.ClipDrop}}
}

func (p *Parser) Parse(resp *http.Response) ([]byte, error) {
	data, err := p.BytesParser.Parse(resp)
	if err == nil {
		logs.Logger.Debug().
			Str("remaining_credits", resp.Header.Get("x-remaining-credits")).
			Str("credits_consumed", resp.Header.Get("x-credits-consumed")).
			Msg("clipdrop credits")
	}
	return data, err
}
