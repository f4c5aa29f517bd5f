package meme

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/internal/modules/ai/chat"
	"github.com/reusedev/meme-hub/internal/modules/ai/image"
	_ "github.com/reusedev/meme-hub/internal/modules/ai/image/clipdrop"
	"github.com/reusedev/meme-hub/internal/modules/observer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	calls   int
	request chat.Request
	meme    chat.Meme
	err     error
}

func (f *fakeChat) Generate(_ context.Context, request chat.Request) (chat.Response, error) {
	f.calls++
	f.request = request
	if f.err != nil {
		return chat.Response{}, f.err
	}
	return chat.Response{Model: request.Model, Meme: f.meme}, nil
}

type fakeUploader struct {
	uploaded []byte
}

func (f *fakeUploader) UploadImage(_ context.Context, b []byte) (string, error) {
	f.uploaded = b
	return "memes/abc.png", nil
}

func clipDropServer(t *testing.T, png []byte) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "a cat at a keyboard", r.FormValue("prompt"))
		_, _ = w.Write(png)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func clipDropCreds() ai.Credentials {
	return ai.NewCredentials(ai.NewAPIKey("sk-openai"), ai.NewAPIKey("cd-key"), ai.APIKey{})
}

func TestGeneratorGenerate(t *testing.T) {
	srv, hits := clipDropServer(t, encodeImage(t, 256, 256, imaging.PNG))
	renderer, err := NewRenderer("")
	require.NoError(t, err)
	folder := t.TempDir()
	chatClient := &fakeChat{meme: chat.Meme{Caption: "Me pretending to work", ImagePrompt: "a cat at a keyboard"}}
	uploader := &fakeUploader{}
	var events []consts.Event

	g, err := NewGenerator(chatClient, renderer, clipDropCreds(), image.Options{BaseURL: srv.URL}, Settings{
		ChatModel:                "gpt-4",
		Temperature:              0.5,
		BasicInstructions:        "be funny",
		ImageSpecialInstructions: "photographic",
		ImagePlatform:            "ClipDrop",
		OutputFolder:             folder,
		BaseFileName:             "meme",
	},
		WithUploader(uploader),
		WithClock(func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }),
		WithObserver(observer.Func(func(event consts.Event, data any) { events = append(events, event) })),
		WithObserver(LogObserver{}),
	)
	require.NoError(t, err)
	require.Equal(t, consts.ClipDrop, g.Platform())

	result, err := g.Generate(context.Background(), "office life")
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(hits))

	assert.Equal(t, "office life", chatClient.request.Subject)
	assert.Equal(t, "gpt-4", chatClient.request.Model)
	assert.Equal(t, 0.5, chatClient.request.Temperature)
	assert.Contains(t, chatClient.request.SystemPrompt, "be funny")

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "Me pretending to work", result.Meme.Caption)
	assert.Equal(t, filepath.Join(folder, "meme_2024-03-09-14-05-07.png"), result.FilePath)
	saved, err := os.ReadFile(result.FilePath)
	require.NoError(t, err)
	assert.Equal(t, result.Image, saved)
	assert.Equal(t, result.Image, uploader.uploaded)
	assert.Equal(t, "memes/abc.png", result.ObjectKey)
	assert.Equal(t, []consts.Event{
		consts.EventChatReply, consts.EventImageGenerated, consts.EventMemeRendered,
		consts.EventMemeSaved, consts.EventMemeUploaded,
	}, events)

	second, err := g.Generate(context.Background(), "office life")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(folder, "meme_2024-03-09-14-05-07_1.png"), second.FilePath)
}

func TestGeneratorNoFileSave(t *testing.T) {
	srv, _ := clipDropServer(t, encodeImage(t, 64, 64, imaging.PNG))
	renderer, err := NewRenderer("")
	require.NoError(t, err)
	folder := filepath.Join(t.TempDir(), "out")

	g, err := NewGenerator(&fakeChat{meme: chat.Meme{Caption: "c", ImagePrompt: "a cat at a keyboard"}}, renderer,
		clipDropCreds(), image.Options{BaseURL: srv.URL},
		Settings{ImagePlatform: "clipdrop", OutputFolder: folder, NoFileSave: true})
	require.NoError(t, err)

	result, err := g.Generate(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, result.FilePath)
	assert.NotEmpty(t, result.Image)
	_, err = os.Stat(folder)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewGeneratorFailsBeforeChat(t *testing.T) {
	renderer, err := NewRenderer("")
	require.NoError(t, err)
	chatClient := &fakeChat{}

	_, err = NewGenerator(chatClient, renderer, clipDropCreds(), image.Options{}, Settings{ImagePlatform: "stability"})
	var missing *ai.MissingAPIKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "stability", missing.Platform)

	_, err = NewGenerator(chatClient, renderer, clipDropCreds(), image.Options{}, Settings{ImagePlatform: "dreamstudio"})
	var invalid *ai.InvalidImagePlatformError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, chatClient.calls)
}

func TestGeneratorStopsOnChatError(t *testing.T) {
	srv, hits := clipDropServer(t, nil)
	renderer, err := NewRenderer("")
	require.NoError(t, err)
	formatErr := &ai.ResponseFormatError{Raw: "lol", Missing: []string{consts.MemeTextLabel}}

	g, err := NewGenerator(&fakeChat{err: formatErr}, renderer, clipDropCreds(), image.Options{BaseURL: srv.URL},
		Settings{ImagePlatform: "clipdrop", OutputFolder: t.TempDir()})
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "x")
	require.ErrorIs(t, err, formatErr)
	require.Equal(t, int32(0), atomic.LoadInt32(hits))
}
