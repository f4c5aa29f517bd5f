package config

import (
	"path/filepath"
	"testing"

	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_keys.ini")
	writeFile(t, path, "[OpenAI]\nKey = sk-openai\n\n[ClipDrop]\nKey = \n\n[StabilityAI]\nKey = sk-stability\n")

	creds, err := LoadAPIKeys(path)
	require.NoError(t, err)
	v, ok := creds.OpenAI().Get()
	require.True(t, ok)
	require.Equal(t, "sk-openai", v)
	require.False(t, creds.ClipDrop().Present())
	v, ok = creds.Stability().Get()
	require.True(t, ok)
	require.Equal(t, "sk-stability", v)
}

func TestLoadAPIKeysMissingFile(t *testing.T) {
	creds, err := LoadAPIKeys(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)
	require.False(t, creds.OpenAI().Present())
	require.False(t, creds.ClipDrop().Present())
	require.False(t, creds.Stability().Present())
}

func TestLoadCredentialsFlagsWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_keys.ini")
	writeFile(t, path, "[OpenAI]\nKey = from-file\n[ClipDrop]\nKey = clip-from-file\n")

	creds, err := LoadCredentials(path, ai.NewCredentials(ai.NewAPIKey("from-flag"), ai.APIKey{}, ai.APIKey{}))
	require.NoError(t, err)
	v, _ := creds.OpenAI().Get()
	require.Equal(t, "from-flag", v)
	v, _ = creds.ClipDrop().Get()
	require.Equal(t, "clip-from-file", v)
	require.False(t, creds.Stability().Present())
}
