package tools

import (
	"strings"

	"github.com/reusedev/meme-hub/internal/consts"
)

// BaseURLByPlatform returns override when set, otherwise the platform's public endpoint.
func BaseURLByPlatform(platform consts.ImagePlatform, override string) string {
	if strings.TrimSpace(override) != "" {
		return strings.TrimSpace(override)
	}
	return platform.BaseURL()
}

func FullURL(baseURL, path string) string {
	if baseURL == "" {
		return ""
	}
	if baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	if path == "" {
		return baseURL
	}
	if path[0] == '/' {
		path = path[1:]
	}
	return baseURL + "/" + path
}
