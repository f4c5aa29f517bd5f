package image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/reusedev/meme-hub/internal/modules/ai"
)

type EventKind int

const (
	EventUnknown EventKind = iota
	EventArtifact
	EventFiltered
)

func (k EventKind) String() string {
	switch k {
	case EventArtifact:
		return "artifact"
	case EventFiltered:
		return "filtered"
	default:
		return "unknown"
	}
}

// Event is one unit of a generation session.
type Event struct {
	Kind         EventKind
	FinishReason string
	Seed         int64
	// Payload is the base64 encoded image of an artifact event.
	Payload string
	Raw     []byte
}

// EventStream is a finite, non-restartable sequence of events. Next returns
// io.EOF once the sequence is exhausted, and keeps returning it afterwards.
type EventStream interface {
	Next() (Event, error)
}

// Classifier turns one raw JSON element into an event.
type Classifier func(raw []byte) (Event, error)

// ArtifactStream lazily decodes the elements of the array stored under field in a
// JSON object, one element per Next call, straight from the reader.
type ArtifactStream struct {
	iter     *jsoniter.Iterator
	field    string
	classify Classifier
	started  bool
	done     bool
}

func NewArtifactStream(r io.Reader, field string, classify Classifier) *ArtifactStream {
	return &ArtifactStream{
		iter:     jsoniter.Parse(jsoniter.ConfigCompatibleWithStandardLibrary, r, 4096),
		field:    field,
		classify: classify,
	}
}

func (s *ArtifactStream) Next() (Event, error) {
	if s.done {
		return Event{}, io.EOF
	}
	if !s.started {
		s.started = true
		if !s.seek() {
			return s.finish()
		}
	}
	if !s.iter.ReadArray() {
		return s.finish()
	}
	raw := s.iter.SkipAndReturnBytes()
	if err := s.iterErr(); err != nil {
		s.done = true
		return Event{}, err
	}
	return s.classify(append([]byte(nil), raw...))
}

func (s *ArtifactStream) seek() bool {
	for field := s.iter.ReadObject(); field != ""; field = s.iter.ReadObject() {
		if field == s.field {
			return true
		}
		s.iter.Skip()
	}
	return false
}

func (s *ArtifactStream) finish() (Event, error) {
	s.done = true
	if err := s.iterErr(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

func (s *ArtifactStream) iterErr() error {
	if s.iter.Error == nil || errors.Is(s.iter.Error, io.EOF) {
		return nil
	}
	return fmt.Errorf("decode %s stream: %w", s.field, s.iter.Error)
}

// ConsumeEvents reads stream up to its first event, which is always terminal: an
// artifact yields its decoded bytes, a filtered event a ContentFilteredError, and
// anything else an UnexpectedProviderResponseError.
func ConsumeEvents(platform string, stream EventStream) ([]byte, error) {
	ev, err := stream.Next()
	if errors.Is(err, io.EOF) {
		return nil, &ai.UnexpectedProviderResponseError{Platform: platform, Reason: "generation finished without any artifact"}
	}
	if err != nil {
		return nil, &ai.UnexpectedProviderResponseError{Platform: platform, Reason: err.Error()}
	}
	switch ev.Kind {
	case EventArtifact:
		data, err := base64.StdEncoding.DecodeString(ev.Payload)
		if err != nil {
			return nil, &ai.UnexpectedProviderResponseError{
				Platform: platform,
				Reason:   fmt.Sprintf("artifact payload is not valid base64: %v", err),
				Raw:      string(ev.Raw),
			}
		}
		return data, nil
	case EventFiltered:
		return nil, &ai.ContentFilteredError{
			Platform: platform,
			Detail:   fmt.Sprintf("generation finished with %s (seed %d)", ev.FinishReason, ev.Seed),
		}
	default:
		return nil, &ai.UnexpectedProviderResponseError{
			Platform: platform,
			Reason:   fmt.Sprintf("unexpected %s event with finish reason %q", ev.Kind, ev.FinishReason),
			Raw:      string(ev.Raw),
		}
	}
}
