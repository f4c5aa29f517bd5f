package stability

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai/image"
	"github.com/reusedev/meme-hub/internal/modules/logs"
)

type Parser struct{}

func (p *Parser) Parse(resp *http.Response) ([]byte, error) {
	if !image.Succeeded(resp.StatusCode) {
		body := image.ReadErrorBody(resp)
		image.LogFailure(consts.Stability, resp, body)
		return nil, image.DetectError(consts.Stability, resp.StatusCode, body)
	}
	return image.ConsumeEvents(consts.Stability.String(), NewEventStream(resp))
}

// NewEventStream yields one event per artifact, decoded as the body arrives.
func NewEventStream(resp *http.Response) image.EventStream {
	return image.NewArtifactStream(resp.Body, "artifacts", Classify)
}

func Classify(raw []byte) (image.Event, error) {
	var artifact Artifact
	if err := jsoniter.Unmarshal(raw, &artifact); err != nil {
		logs.Logger.Warn().Err(err).Msg("stability artifact is not an object")
		return image.Event{Kind: image.EventUnknown, Raw: raw}, nil
	}
	ev := image.Event{
		FinishReason: artifact.FinishReason,
		Seed:         artifact.Seed,
		Raw:          raw,
	}
	switch {
	case artifact.FinishReason == FinishFiltered:
		ev.Kind = image.EventFiltered
	case artifact.FinishReason == FinishSuccess && artifact.Base64 != "":
		ev.Kind = image.EventArtifact
		ev.Payload = artifact.Base64
	default:
		ev.Kind = image.EventUnknown
	}
	return ev, nil
}
