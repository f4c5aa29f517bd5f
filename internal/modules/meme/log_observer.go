package meme

import (
	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/logs"
)

// LogObserver writes one structured line per pipeline event.
type LogObserver struct{}

func (LogObserver) Update(event consts.Event, data any) {
	r, ok := data.(*Result)
	if !ok {
		return
	}
	e := logs.Logger.Info().
		Str("event", event.String()).
		Str("meme_id", r.ID).
		Str("platform", r.Platform.String())
	switch event {
	case consts.EventChatReply:
		e = e.Str("subject", r.Subject).Str("caption", r.Meme.Caption).Str("image_prompt", r.Meme.ImagePrompt)
	case consts.EventMemeRendered:
		e = e.Int("size", len(r.Image))
	case consts.EventMemeSaved:
		e = e.Str("file", r.FilePath)
	case consts.EventMemeUploaded:
		e = e.Str("object_key", r.ObjectKey)
	}
	e.Msg("meme progress")
}
