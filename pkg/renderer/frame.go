package renderer

// Frame holds the accumulated samples of every pixel in row-major order,
// starting with the top row of the image
type Frame struct {
	Width  int
	Height int
	Pixels []PixelStats
}

// NewFrame allocates an empty frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]PixelStats, width*height),
	}
}

// At returns the pixel in column x of row y (y = 0 is the top row)
func (f *Frame) At(x, y int) *PixelStats {
	return &f.Pixels[y*f.Width+x]
}

// Equal reports whether two frames hold identical accumulated samples
func (f *Frame) Equal(other *Frame) bool {
	if f.Width != other.Width || f.Height != other.Height {
		return false
	}
	for i := range f.Pixels {
		if f.Pixels[i] != other.Pixels[i] {
			return false
		}
	}
	return true
}
