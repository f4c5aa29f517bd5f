package meme

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/internal/modules/ai/chat"
	"github.com/reusedev/meme-hub/internal/modules/ai/image"
	"github.com/reusedev/meme-hub/internal/modules/observer"
	"github.com/reusedev/meme-hub/internal/modules/storage/local"
)

type ChatClient interface {
	Generate(ctx context.Context, request chat.Request) (chat.Response, error)
}

type Uploader interface {
	UploadImage(ctx context.Context, b []byte) (string, error)
}

type Settings struct {
	ChatModel                string
	Temperature              float64
	BasicInstructions        string
	ImageSpecialInstructions string
	ImagePlatform            string
	OutputFolder             string
	BaseFileName             string
	NoFileSave               bool
}

// Result is one finished meme.
type Result struct {
	ID       string
	Subject  string
	Meme     chat.Meme
	Platform consts.ImagePlatform
	// Image is the rendered PNG.
	Image     []byte
	FilePath  string
	ObjectKey string
}

// Generator runs chat, parse, image, render, save and upload for one subject at a time.
type Generator struct {
	observer.Observers
	chat         ChatClient
	provider     image.Provider
	renderer     *Renderer
	uploader     Uploader
	settings     Settings
	systemPrompt string
	now          func() time.Time
}

type Option func(g *Generator)

func WithUploader(u Uploader) Option {
	return func(g *Generator) {
		g.uploader = u
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func WithObserver(o observer.Observer) Option {
	return func(g *Generator) {
		g.Attach(o)
	}
}

// NewGenerator resolves the image provider up front, so an unknown platform or a
// missing image key fails before any chat request is spent.
func NewGenerator(chatClient ChatClient, renderer *Renderer, creds ai.Credentials, imageOpts image.Options, settings Settings, opts ...Option) (*Generator, error) {
	provider, err := image.New(settings.ImagePlatform, creds, imageOpts)
	if err != nil {
		return nil, err
	}
	if settings.OutputFolder == "" {
		settings.OutputFolder = consts.DefaultOutputFolder
	}
	if settings.BaseFileName == "" {
		settings.BaseFileName = consts.DefaultBaseFileName
	}
	g := &Generator{
		chat:         chatClient,
		provider:     provider,
		renderer:     renderer,
		settings:     settings,
		systemPrompt: chat.BuildSystemPrompt(settings.BasicInstructions, settings.ImageSpecialInstructions),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Generator) Platform() consts.ImagePlatform {
	return g.provider.Platform()
}

func (g *Generator) Generate(ctx context.Context, subject string) (*Result, error) {
	result := &Result{
		ID:       uuid.New().String(),
		Subject:  subject,
		Platform: g.provider.Platform(),
	}
	resp, err := g.chat.Generate(ctx, chat.Request{
		Model:        g.settings.ChatModel,
		SystemPrompt: g.systemPrompt,
		Subject:      subject,
		Temperature:  g.settings.Temperature,
	})
	if err != nil {
		return nil, err
	}
	result.Meme = resp.Meme
	g.Notify(consts.EventChatReply, result)

	raw, err := g.provider.Generate(ctx, resp.Meme.ImagePrompt)
	if err != nil {
		return nil, err
	}
	g.Notify(consts.EventImageGenerated, result)

	result.Image, err = g.renderer.Render(resp.Meme.Caption, raw)
	if err != nil {
		return nil, fmt.Errorf("render meme: %w", err)
	}
	g.Notify(consts.EventMemeRendered, result)

	if !g.settings.NoFileSave {
		if result.FilePath, err = g.save(result.Image); err != nil {
			return nil, fmt.Errorf("save meme: %w", err)
		}
		g.Notify(consts.EventMemeSaved, result)
	}
	if g.uploader != nil {
		if result.ObjectKey, err = g.uploader.UploadImage(ctx, result.Image); err != nil {
			return nil, fmt.Errorf("upload meme: %w", err)
		}
		g.Notify(consts.EventMemeUploaded, result)
	}
	return result, nil
}

func (g *Generator) save(data []byte) (string, error) {
	base := g.settings.BaseFileName + "_" + g.now().Format(consts.OutputTimestampLayout)
	path, err := local.FreePath(g.settings.OutputFolder, base, ".png")
	if err != nil {
		return "", err
	}
	if err := local.SaveFile(bytes.NewReader(data), path); err != nil {
		return "", err
	}
	return path, nil
}
