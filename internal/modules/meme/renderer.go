package meme

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"github.com/reusedev/meme-hub/tools"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/webp"
)

const (
	// MaxWidth bounds the rendered meme; wider images are scaled down first.
	MaxWidth    = 2048
	minFontSize = 16
)

// Renderer puts a caption in a white band above an image.
type Renderer struct {
	font *opentype.Font
}

// NewRenderer loads fontFile, or the embedded Go bold font when fontFile is empty.
func NewRenderer(fontFile string) (*Renderer, error) {
	data := gobold.TTF
	if fontFile != "" {
		var err error
		data, err = os.ReadFile(fontFile)
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ai.NoFontFileError{FontFile: fontFile, Err: err}
		}
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", fontFile, err)
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", fontFile, err)
	}
	return &Renderer{font: f}, nil
}

// Render returns the captioned meme encoded as PNG.
func (r *Renderer) Render(caption string, data []byte) ([]byte, error) {
	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dx() > MaxWidth {
		img = imaging.Resize(img, MaxWidth, 0, imaging.Lanczos)
	}
	width := img.Bounds().Dx()
	margin := max(width/32, 8)

	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(max(width/16, minFontSize)),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	lines := wrap(face, caption, width-2*margin)
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	band := len(lines)*lineHeight + 2*margin

	canvas := imaging.New(width, img.Bounds().Dy()+band, color.White)
	canvas = imaging.Paste(canvas, img, image.Pt(0, band))
	drawer := &font.Drawer{Dst: canvas, Src: image.NewUniform(color.Black), Face: face}
	for i, line := range lines {
		lineWidth := drawer.MeasureString(line).Ceil()
		drawer.Dot = fixed.P((width-lineWidth)/2, margin+i*lineHeight+metrics.Ascent.Ceil())
		drawer.DrawString(line)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode meme: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (image.Image, error) {
	var img image.Image
	var err error
	switch tools.DetectImageType(data) {
	case tools.ImageTypeWEBP:
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		img, err = imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, errors.New("failed to decode image: empty bounds")
	}
	return img, nil
}

// wrap breaks text into lines no wider than maxWidth pixels. A word wider than
// maxWidth gets a line of its own.
func wrap(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}
