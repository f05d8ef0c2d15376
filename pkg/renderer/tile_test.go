package renderer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	width, height := 10, 7
	tiles := NewTileGrid(width, height, 4)
	require.Len(t, tiles, 6)

	covered := make([]int, width*height)
	for i, tile := range tiles {
		assert.Equal(t, i, tile.ID)
		assert.True(t, tile.Bounds.In(image.Rect(0, 0, width, height)), "tile %d out of bounds: %v", i, tile.Bounds)
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[y*width+x]++
			}
		}
	}
	for i, count := range covered {
		assert.Equal(t, 1, count, "pixel %d covered %d times", i, count)
	}

	// Edge tiles are clipped
	assert.Equal(t, image.Rect(8, 4, 10, 7), tiles[5].Bounds)
}

func TestNewTileGrid_LargerThanImage(t *testing.T) {
	tiles := NewTileGrid(3, 2, 16)
	require.Len(t, tiles, 1)
	assert.Equal(t, image.Rect(0, 0, 3, 2), tiles[0].Bounds)
}

func TestProgress_ConcurrentAdds(t *testing.T) {
	progress := NewProgress(800)
	assert.Equal(t, 0.0, progress.Fraction())

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 100; j++ {
				progress.Add(1)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(800), progress.Done())
	assert.Equal(t, int64(800), progress.Total())
	assert.Equal(t, 1.0, progress.Fraction())
	assert.Equal(t, 1.0, NewProgress(0).Fraction())
}
