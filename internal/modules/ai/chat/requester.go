package chat

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/internal/modules/logs"
	"github.com/sashabaranov/go-openai"
)

type Requester struct {
	key        ai.APIKey
	baseURL    string
	httpClient *http.Client
}

type Option func(r *Requester)

// WithBaseURL points the requester at an OpenAI-compatible endpoint, e.g. "http://host/v1".
func WithBaseURL(baseURL string) Option {
	return func(r *Requester) {
		r.baseURL = baseURL
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(r *Requester) {
		r.httpClient = c
	}
}

func NewRequester(key ai.APIKey, opts ...Option) *Requester {
	r := &Requester{key: key}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Do sends one chat completion and returns the assistant text.
func (r *Requester) Do(ctx context.Context, request Request) (string, error) {
	token, ok := r.key.Get()
	if !ok {
		return "", &ai.MissingAPIKeyError{Platform: consts.OpenAI.String()}
	}
	cfg := openai.DefaultConfig(token)
	if strings.TrimSpace(r.baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(strings.TrimSpace(r.baseURL), "/")
	}
	if r.httpClient != nil {
		cfg.HTTPClient = r.httpClient
	}
	client := openai.NewClientWithConfig(cfg)

	model := request.Model
	if model == "" {
		model = consts.DefaultChatModel
	}
	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: request.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: request.Subject},
		},
		Temperature: temperature(request.Temperature),
	})
	duration := time.Since(start)
	if err != nil {
		logs.Logger.Warn().Err(err).
			Str("model", model).
			Dur("duration", duration).
			Msg("chat request failed")
		return "", ai.FromOpenAIError(consts.OpenAI.String(), err)
	}
	logs.Logger.Info().
		Str("model", model).
		Int("total_tokens", resp.Usage.TotalTokens).
		Dur("duration", duration).
		Msg("chat request")
	if len(resp.Choices) == 0 {
		return "", &ai.UnexpectedProviderResponseError{Platform: consts.OpenAI.String(), Reason: "chat completion returned no choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

// Generate asks for a meme about subject and parses the reply.
func (r *Requester) Generate(ctx context.Context, request Request) (Response, error) {
	content, err := r.Do(ctx, request)
	if err != nil {
		return Response{}, err
	}
	meme, err := ParseMeme(content)
	if err != nil {
		return Response{Model: request.Model, Content: content}, err
	}
	return Response{Model: request.Model, Content: content, Meme: meme}, nil
}

// temperature keeps an explicit zero on the wire; the request field is omitempty.
func temperature(t float64) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}
