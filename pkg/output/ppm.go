package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// ErrPixelCount is returned when a PPM image receives more or fewer pixels
// than its header announced
var ErrPixelCount = errors.New("ppm pixel count does not match header")

// PPMWriter streams an ASCII (P3) PPM image. Writes are buffered; the first
// I/O error is sticky and returned by every later call.
type PPMWriter struct {
	w       *bufio.Writer
	width   int
	height  int
	written int
	err     error
}

// NewPPMWriter wraps w in a buffered PPM writer
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the P3 magic, the dimensions and the maximum channel value
func (p *PPMWriter) WriteHeader(width, height int) error {
	p.width, p.height = width, height
	return p.printf("P3\n%d %d\n255\n", width, height)
}

// WritePixel writes one pixel given the sum of its samples
func (p *PPMWriter) WritePixel(sum core.Vec3, samples int) error {
	if p.written >= p.width*p.height {
		return fmt.Errorf("%w: pixel %d of %dx%d", ErrPixelCount, p.written+1, p.width, p.height)
	}
	r, g, b := ToRGB8(sum, samples)
	if err := p.printf("%d %d %d\n", r, g, b); err != nil {
		return fmt.Errorf("write pixel %d: %w", p.written, err)
	}
	p.written++
	return nil
}

// Flush writes any buffered data and checks that the image is complete
func (p *PPMWriter) Flush() error {
	if p.err == nil {
		p.err = p.w.Flush()
	}
	if p.err != nil {
		return p.err
	}
	if p.written != p.width*p.height {
		return fmt.Errorf("%w: wrote %d of %d pixels", ErrPixelCount, p.written, p.width*p.height)
	}
	return nil
}

func (p *PPMWriter) printf(format string, args ...interface{}) error {
	if p.err != nil {
		return p.err
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
	return p.err
}

// WritePPM writes frame as a P3 image, top row first. It stops at the first
// failed write.
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	ppm := NewPPMWriter(w)
	if err := ppm.WriteHeader(frame.Width, frame.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	for i := range frame.Pixels {
		ps := &frame.Pixels[i]
		if err := ppm.WritePixel(ps.ColorAccum, ps.SampleCount); err != nil {
			return err
		}
	}
	return ppm.Flush()
}
