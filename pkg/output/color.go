package output

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// maxChannel keeps 1.0 from rounding up to 256
const maxChannel = 0.999

// ToRGB8 converts the sum of samples accumulated for one pixel into 8-bit
// channels: average, gamma 2 correct, clamp, then scale to [0, 255].
// Non-finite channels come out as 0.
func ToRGB8(sum core.Vec3, samples int) (r, g, b uint8) {
	if samples <= 0 {
		return 0, 0, 0
	}

	color := sum.Multiply(1.0/float64(samples)).
		GammaCorrect(2.0).
		Clamp(0, maxChannel)

	return channel(color.X), channel(color.Y), channel(color.Z)
}

func channel(c float64) uint8 {
	// min and max propagate NaN, so Clamp lets it through
	if math.IsNaN(c) {
		return 0
	}
	return uint8(256 * c)
}
