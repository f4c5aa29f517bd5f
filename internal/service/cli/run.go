package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/reusedev/meme-hub/config"
	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/internal/modules/ai/chat"
	"github.com/reusedev/meme-hub/internal/modules/ai/image"
	"github.com/reusedev/meme-hub/internal/modules/http_client"
	"github.com/reusedev/meme-hub/internal/modules/logs"
	"github.com/reusedev/meme-hub/internal/modules/meme"
	"github.com/reusedev/meme-hub/internal/modules/storage/ali"
)

const presignExpire = 24 * time.Hour

type options struct {
	configPath               string
	keysPath                 string
	openAIKey                string
	clipDropKey              string
	stabilityKey             string
	userPrompt               string
	memeCount                int
	imagePlatform            string
	temperature              float64
	basicInstructions        string
	imageSpecialInstructions string
	noUserInput              bool
	noFileSave               bool
	changed                  func(name string) bool
}

func (o *options) isSet(name string) bool {
	return o.changed != nil && o.changed(name)
}

// apply lays flags over the settings file. Only flags given on the command line count,
// and empty instructions fall back to the built-in ones.
func (o *options) apply(cfg *config.Config) {
	if o.isSet("imageplatform") {
		cfg.AI.ImagePlatform = o.imagePlatform
	}
	if o.isSet("temperature") {
		t := o.temperature
		cfg.AI.Temperature = &t
	}
	if o.isSet("basicinstructions") {
		cfg.Meme.BasicInstructions = orDefault(o.basicInstructions, consts.DefaultBasicInstructions)
	}
	if o.isSet("imagespecialinstructions") {
		cfg.Meme.ImageSpecialInstructions = orDefault(o.imageSpecialInstructions, consts.DefaultImageInstructions)
	}
	if o.isSet("nofilesave") {
		cfg.Output.NoFileSave = o.noFileSave
	}
	if o.isSet("keys") {
		cfg.APIKeysFile = o.keysPath
	}
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func (o *options) credentials() ai.Credentials {
	return ai.NewCredentials(ai.NewAPIKey(o.openAIKey), ai.NewAPIKey(o.clipDropKey), ai.NewAPIKey(o.stabilityKey))
}

func run(ctx context.Context, opts *options, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	if !opts.noUserInput {
		defer waitForEnter(reader, out)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.apply(cfg)
	if err := cfg.Verify(); err != nil {
		return err
	}
	config.GConfig = cfg
	logs.InitLogger()

	if opts.memeCount < 1 {
		return fmt.Errorf("memecount must be at least 1, got %d", opts.memeCount)
	}
	creds, err := config.LoadCredentials(cfg.APIKeysFile, opts.credentials())
	if err != nil {
		return err
	}
	logs.Logger.Debug().
		Str("openai_key", creds.OpenAI().String()).
		Str("clipdrop_key", creds.ClipDrop().String()).
		Str("stability_key", creds.Stability().String()).
		Msg("credentials loaded")

	generator, uploader, err := newGenerator(cfg, creds)
	if err != nil {
		return err
	}

	subject := opts.userPrompt
	if !opts.isSet("userprompt") && !opts.noUserInput {
		subject = askSubject(reader, out)
	}
	if strings.TrimSpace(subject) == "" {
		subject = consts.DefaultUserPrompt
	}

	for i := 1; i <= opts.memeCount; i++ {
		fmt.Fprintf(out, "\nGenerating meme %d of %d using %s...\n", i, opts.memeCount, generator.Platform())
		result, err := generator.Generate(ctx, subject)
		if err != nil {
			return err
		}
		printResult(ctx, out, result, uploader)
	}
	return nil
}

func newGenerator(cfg *config.Config, creds ai.Credentials) (*meme.Generator, *ali.Client, error) {
	renderer, err := meme.NewRenderer(cfg.Meme.FontFile)
	if err != nil {
		return nil, nil, err
	}
	httpClient := http_client.NewWithTimeout(cfg.Timeout())
	requester := chat.NewRequester(creds.OpenAI(),
		chat.WithBaseURL(cfg.AI.ChatBaseURL),
		chat.WithHTTPClient(httpClient.HttpClient),
	)

	genOpts := []meme.Option{meme.WithObserver(meme.LogObserver{})}
	var uploader *ali.Client
	if cfg.AliOss.Enabled {
		if uploader, err = ali.New(cfg.AliOss); err != nil {
			return nil, nil, err
		}
		genOpts = append(genOpts, meme.WithUploader(uploader))
	}

	generator, err := meme.NewGenerator(requester, renderer, creds, imageOptions(cfg, httpClient), meme.Settings{
		ChatModel:                cfg.AI.ChatModel,
		Temperature:              *cfg.AI.Temperature,
		BasicInstructions:        cfg.Meme.BasicInstructions,
		ImageSpecialInstructions: cfg.Meme.ImageSpecialInstructions,
		ImagePlatform:            cfg.AI.ImagePlatform,
		OutputFolder:             cfg.Output.Folder,
		BaseFileName:             cfg.Output.BaseFileName,
		NoFileSave:               cfg.Output.NoFileSave,
	}, genOpts...)
	if err != nil {
		return nil, nil, err
	}
	return generator, uploader, nil
}

func imageOptions(cfg *config.Config, httpClient *http_client.HttpClient) image.Options {
	opts := image.Options{
		HTTPClient: httpClient.HttpClient,
		Timeout:    cfg.Timeout(),
		Stability: image.StabilityOptions{
			Engine:   cfg.Stability.Engine,
			Width:    cfg.Stability.Width,
			Height:   cfg.Stability.Height,
			Steps:    cfg.Stability.Steps,
			CfgScale: cfg.Stability.CfgScale,
			Sampler:  cfg.Stability.Sampler,
			Seed:     cfg.Stability.Seed,
		},
		OpenAI: image.OpenAIOptions{
			Model: cfg.OpenAIImage.Model,
			Size:  cfg.OpenAIImage.Size,
		},
	}
	platform, _ := consts.LookupImagePlatform(cfg.AI.ImagePlatform)
	switch platform {
	case consts.OpenAI:
		opts.BaseURL = cfg.OpenAIImage.BaseURL
	case consts.Stability:
		opts.BaseURL = cfg.Stability.BaseURL
	case consts.ClipDrop:
		opts.BaseURL = cfg.ClipDrop.BaseURL
	}
	return opts
}

func askSubject(reader *bufio.Reader, out io.Writer) string {
	fmt.Fprint(out, "Enter a meme subject or concept (Or just hit enter to let the AI decide): ")
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func printResult(ctx context.Context, out io.Writer, result *meme.Result, uploader *ali.Client) {
	fmt.Fprintf(out, "   Meme Text: %s\n", result.Meme.Caption)
	fmt.Fprintf(out, "   Image Prompt: %s\n", result.Meme.ImagePrompt)
	if result.FilePath != "" {
		fmt.Fprintf(out, "   Saved to: %s\n", result.FilePath)
	}
	if result.ObjectKey == "" || uploader == nil {
		return
	}
	url, err := uploader.URL(ctx, result.ObjectKey, presignExpire)
	if err != nil {
		logs.Logger.Warn().Err(err).Str("object_key", result.ObjectKey).Msg("presign meme url failed")
		fmt.Fprintf(out, "   Uploaded as: %s\n", result.ObjectKey)
		return
	}
	fmt.Fprintf(out, "   Uploaded to: %s\n", url)
}

func waitForEnter(reader *bufio.Reader, out io.Writer) {
	fmt.Fprint(out, "\nFinished. Press Enter to exit...")
	_, _ = reader.ReadString('\n')
}
