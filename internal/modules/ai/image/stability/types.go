package stability

import (
	"bytes"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

const (
	DefaultEngine   = "stable-diffusion-xl-1024-v1-0"
	DefaultWidth    = 1024
	DefaultHeight   = 1024
	DefaultSteps    = 30
	DefaultCfgScale = 7.0
	DefaultSampler  = "K_DPMPP_2M"
)

const (
	FinishSuccess  = "SUCCESS"
	FinishFiltered = "CONTENT_FILTERED"
	FinishError    = "ERROR"
)

type TextPrompt struct {
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// TextToImageRequest Reference: https://platform.stability.ai/docs/api-reference#tag/SDXL-and-SD1.6/operation/textToImage
type TextToImageRequest struct {
	Engine      string       `json:"-"`
	TextPrompts []TextPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Steps       int          `json:"steps"`
	Samples     int          `json:"samples"`
	Sampler     string       `json:"sampler,omitempty"`
	Seed        uint32       `json:"seed"`
}

func (t *TextToImageRequest) BodyContentType() (io.Reader, string, error) {
	data, err := jsoniter.Marshal(t)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewBuffer(data), "application/json", nil
}

func (t *TextToImageRequest) Path() string {
	return fmt.Sprintf("v1/generation/%s/text-to-image", t.Engine)
}

func (t *TextToImageRequest) Headers(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
		"Accept":        "application/json",
	}
}

// Artifact is one element of the "artifacts" array in a generation response.
type Artifact struct {
	Base64       string `json:"base64"`
	Seed         int64  `json:"seed"`
	FinishReason string `json:"finishReason"`
}
