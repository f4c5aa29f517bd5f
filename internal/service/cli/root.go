package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/internal/modules/logs"
	"github.com/spf13/cobra"

	_ "github.com/reusedev/meme-hub/internal/modules/ai/image/clipdrop"
	_ "github.com/reusedev/meme-hub/internal/modules/ai/image/gpt"
	_ "github.com/reusedev/meme-hub/internal/modules/ai/image/stability"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "meme-hub",
		Short:         "Generate captioned memes with a chat model and an image model",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.changed = cmd.Flags().Changed
			return run(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "config.yml", "Settings file path")
	flags.StringVar(&opts.keysPath, "keys", "", "API keys file path (default from settings, then api_keys.ini)")
	flags.StringVar(&opts.openAIKey, "openaikey", "", "OpenAI API key, overrides the keys file")
	flags.StringVar(&opts.clipDropKey, "clipdropkey", "", "ClipDrop API key, overrides the keys file")
	flags.StringVar(&opts.stabilityKey, "stabilitykey", "", "Stability AI API key, overrides the keys file")
	flags.StringVar(&opts.userPrompt, "userprompt", "", "Meme subject or concept; asked interactively when omitted")
	flags.IntVar(&opts.memeCount, "memecount", 1, "Number of memes to generate")
	flags.StringVar(&opts.imagePlatform, "imageplatform", "", "Image platform: openai, stability or clipdrop")
	flags.Float64Var(&opts.temperature, "temperature", 0, "Chat model temperature, 0 to 2")
	flags.StringVar(&opts.basicInstructions, "basicinstructions", "", "Basic instructions for the chat model")
	flags.StringVar(&opts.imageSpecialInstructions, "imagespecialinstructions", "", "Extra instructions for the image prompt")
	flags.BoolVar(&opts.noUserInput, "nouserinput", false, "Never read from stdin")
	flags.BoolVar(&opts.noFileSave, "nofilesave", false, "Do not write memes to the output folder")
	return cmd
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logs.Logger.Error().Err(err).Msg("meme-hub failed")
		fmt.Fprintln(os.Stderr, "Error:", ai.SimpleMessage(err))
		stop()
		os.Exit(1)
	}
}
