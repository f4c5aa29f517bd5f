package tools

import "bytes"

type ImageType string

const (
	ImageTypePNG     ImageType = "png"
	ImageTypeJPEG    ImageType = "jpeg"
	ImageTypeGIF     ImageType = "gif"
	ImageTypeWEBP    ImageType = "webp"
	ImageTypeUnknown ImageType = "unknown"
)

func (t ImageType) String() string {
	return string(t)
}

func (t ImageType) Ext() string {
	switch t {
	case ImageTypeJPEG:
		return ".jpg"
	case ImageTypeUnknown:
		return ".bin"
	default:
		return "." + string(t)
	}
}

func (t ImageType) ContentType() string {
	if t == ImageTypeUnknown {
		return "application/octet-stream"
	}
	return "image/" + string(t)
}

// DetectImageType sniffs the magic bytes of an encoded image.
func DetectImageType(data []byte) ImageType {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return ImageTypePNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return ImageTypeJPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return ImageTypeGIF
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return ImageTypeWEBP
	default:
		return ImageTypeUnknown
	}
}
