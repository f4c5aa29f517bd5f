package chat

import (
	"bufio"
	"strings"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
)

type Meme struct {
	Caption     string `json:"caption"`
	ImagePrompt string `json:"image_prompt"`
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
}

// ParseMeme extracts the caption and image prompt from a chat reply.
//
// A line carries a field when, after trimming whitespace, it starts with the field's
// label compared case-insensitively. Lines may come in any order, blank and unrelated
// lines are skipped, and the first occurrence of a label wins even when its value is
// empty. Values lose the label, surrounding whitespace and surrounding quote pairs
// whose quote characters do not also occur inside the value; nothing else is changed.
func ParseMeme(raw string) (Meme, error) {
	var meme Meme
	var seenCaption, seenPrompt bool

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 4*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !seenCaption {
			if v, ok := cutLabel(line, consts.MemeTextLabel); ok {
				meme.Caption, seenCaption = v, true
				continue
			}
		}
		if !seenPrompt {
			if v, ok := cutLabel(line, consts.ImagePromptLabel); ok {
				meme.ImagePrompt, seenPrompt = v, true
			}
		}
	}

	var missing []string
	if meme.Caption == "" {
		missing = append(missing, consts.MemeTextLabel)
	}
	if meme.ImagePrompt == "" {
		missing = append(missing, consts.ImagePromptLabel)
	}
	if err := scanner.Err(); err != nil || len(missing) != 0 {
		return Meme{}, &ai.ResponseFormatError{Raw: raw, Missing: missing}
	}
	return meme, nil
}

func cutLabel(line, label string) (string, bool) {
	if len(line) < len(label) || !strings.EqualFold(line[:len(label)], label) {
		return "", false
	}
	return trimValue(line[len(label):]), true
}

func trimValue(v string) string {
	v = strings.TrimSpace(v)
	for {
		stripped := false
		for _, q := range quotePairs {
			if len(v) < len(q[0])+len(q[1]) || !strings.HasPrefix(v, q[0]) || !strings.HasSuffix(v, q[1]) {
				continue
			}
			inner := v[len(q[0]) : len(v)-len(q[1])]
			if strings.Contains(inner, q[0]) || strings.Contains(inner, q[1]) {
				continue
			}
			v = strings.TrimSpace(inner)
			stripped = true
		}
		if !stripped {
			return v
		}
	}
}
