package clipdrop

import (
	"bytes"
	"io"
	"mime/multipart"
)

// TextToImageRequest Reference: https://clipdrop.co/apis/docs/text-to-image
type TextToImageRequest struct {
	Prompt string
}

func (t *TextToImageRequest) BodyContentType() (io.Reader, string, error) {
	payload := &bytes.Buffer{}
	writer := multipart.NewWriter(payload)
	if err := writer.WriteField("prompt", t.Prompt); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return payload, writer.FormDataContentType(), nil
}

func (t *TextToImageRequest) Path() string {
	return "text-to-image/v1"
}

func (t *TextToImageRequest) Headers(token string) map[string]string {
	return map[string]string{"x-api-key": token}
}
