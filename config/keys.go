package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/spf13/viper"
)

// Key file layout:
//
//	[OpenAI]
//	Key = sk-...
//	[ClipDrop]
//	Key = ...
//	[StabilityAI]
//	Key = sk-...
const (
	openAIKeyPath    = "openai.key"
	clipDropKeyPath  = "clipdrop.key"
	stabilityKeyPath = "stabilityai.key"
)

// LoadAPIKeys reads the INI key file. A missing file yields empty credentials.
func LoadAPIKeys(path string) (ai.Credentials, error) {
	if path == "" {
		return ai.Credentials{}, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return ai.Credentials{}, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")
	if err := v.ReadInConfig(); err != nil {
		return ai.Credentials{}, fmt.Errorf("read api keys file %s: %w", path, err)
	}
	return ai.NewCredentials(
		ai.NewAPIKey(v.GetString(openAIKeyPath)),
		ai.NewAPIKey(v.GetString(clipDropKeyPath)),
		ai.NewAPIKey(v.GetString(stabilityKeyPath)),
	), nil
}

// LoadCredentials merges command-line keys over the key file.
func LoadCredentials(path string, overrides ai.Credentials) (ai.Credentials, error) {
	fromFile, err := LoadAPIKeys(path)
	if err != nil {
		return ai.Credentials{}, err
	}
	return overrides.Merge(fromFile), nil
}
