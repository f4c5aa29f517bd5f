package meme

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func joinLines(lines []string) string {
	return strings.Join(lines, " ")
}
