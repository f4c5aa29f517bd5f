package local

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meme.png")
	require.NoError(t, SaveFile(strings.NewReader("png"), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "png", string(data))
}

func TestSaveWithRemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meme.png")
	boom := errors.New("encode failed")

	err := SaveWith(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "half")
		return boom
	})
	require.ErrorIs(t, err, boom)
	_, statErr := os.Stat(path)
	require.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestSaveWithKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meme.png")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	err := SaveWith(path, func(w io.Writer) error { return nil })
	require.Error(t, err)
	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	require.Equal(t, "old", string(data))
}

func TestFreePath(t *testing.T) {
	dir := t.TempDir()
	p, err := FreePath(dir, "meme_2024-01-02-03-04-05", ".png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "meme_2024-01-02-03-04-05.png"), p)

	require.NoError(t, os.WriteFile(p, nil, 0644))
	p, err = FreePath(dir, "meme_2024-01-02-03-04-05", ".png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "meme_2024-01-02-03-04-05_1.png"), p)

	require.NoError(t, os.WriteFile(p, nil, 0644))
	p, err = FreePath(dir, "meme_2024-01-02-03-04-05", ".png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "meme_2024-01-02-03-04-05_2.png"), p)
}
