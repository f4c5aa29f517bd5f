package consts

import "strings"

const (
	OpenAIBaseURL    = "https://api.openai.com/v1"
	StabilityBaseURL = "https://api.stability.ai"
	ClipDropBaseURL  = "https://clipdrop-api.co"
)

type ImagePlatform string

const (
	OpenAI    ImagePlatform = "openai"
	Stability ImagePlatform = "stability"
	ClipDrop  ImagePlatform = "clipdrop"
)

func (p ImagePlatform) String() string {
	return string(p)
}

func (p ImagePlatform) BaseURL() string {
	switch p {
	case OpenAI:
		return OpenAIBaseURL
	case Stability:
		return StabilityBaseURL
	case ClipDrop:
		return ClipDropBaseURL
	default:
		return ""
	}
}

// ImagePlatforms returns the recognized platforms in their canonical order.
func ImagePlatforms() []ImagePlatform {
	return []ImagePlatform{OpenAI, Stability, ClipDrop}
}

func ImagePlatformNames() []string {
	platforms := ImagePlatforms()
	names := make([]string, 0, len(platforms))
	for _, p := range platforms {
		names = append(names, p.String())
	}
	return names
}

// LookupImagePlatform matches name case-insensitively after trimming.
func LookupImagePlatform(name string) (ImagePlatform, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, p := range ImagePlatforms() {
		if key == p.String() {
			return p, true
		}
	}
	return "", false
}

// Labels the chat model is instructed to start its reply lines with.
const (
	MemeTextLabel    = "Meme Text:"
	ImagePromptLabel = "Image Prompt:"
)

const (
	DefaultChatModel         = "gpt-4"
	DefaultTemperature       = 1.0
	DefaultImagePlatform     = ClipDrop
	DefaultUserPrompt        = "anything"
	DefaultBasicInstructions = "You will create funny memes that are clever and original, and not cliche or lame."
	DefaultImageInstructions = "The images should be photographic."
	DefaultOutputFolder      = "Outputs"
	DefaultBaseFileName      = "meme"
	DefaultAPIKeysFile       = "api_keys.ini"
	DefaultLogFile           = "log.txt"
	OutputTimestampLayout    = "2006-01-02-15-04-05"
)

type Event string

const (
	EventChatReply      Event = "chat_reply"
	EventImageGenerated Event = "image_generated"
	EventMemeRendered   Event = "meme_rendered"
	EventMemeSaved      Event = "meme_saved"
	EventMemeUploaded   Event = "meme_uploaded"
)

func (e Event) String() string {
	return string(e)
}
