package output

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/image/bmp"

	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// Format identifies an image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// Formats lists every supported encoding
var Formats = []Format{FormatPPM, FormatPNG, FormatBMP}

// ParseFormat resolves a format name such as "png" (case insensitive)
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimPrefix(name, ".")))
	for _, f := range Formats {
		if f == format {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported image format %q", name)
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("cannot infer image format from %q", path)
	}
	return ParseFormat(ext)
}

// ToRGBA converts an accumulated frame to an 8-bit image using the same
// color pipeline as the PPM writer
func ToRGBA(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			ps := frame.At(x, y)
			r, g, b := ToRGB8(ps.ColorAccum, ps.SampleCount)
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

// Encode writes frame to w in the given format
func Encode(w io.Writer, frame *renderer.Frame, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, frame)
	case FormatPNG:
		return png.Encode(w, ToRGBA(frame))
	case FormatBMP:
		return bmp.Encode(w, ToRGBA(frame))
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Save writes frame to path, creating parent directories as needed
func Save(path string, frame *renderer.Frame, format Format) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(file))

	writer := bufio.NewWriter(file)
	if err := Encode(writer, frame, format); err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return writer.Flush()
}
