package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestPNG creates a 2x2 PNG: white, red on top; green, blue at the bottom
func writeTestPNG(t *testing.T) string {
	t.Helper()
	testFile := filepath.Join(t.TempDir(), "test.png")

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(testFile)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return testFile
}

func TestLoadImage(t *testing.T) {
	data, err := LoadImage(writeTestPNG(t), false, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, data.Width)
	assert.Equal(t, 2, data.Height)
	assert.Equal(t, 3, data.Channels)
	assert.Equal(t, []byte{
		255, 255, 255, 255, 0, 0,
		0, 255, 0, 0, 0, 255,
	}, data.Pixels)
}

func TestLoadImageFlipVertically(t *testing.T) {
	data, err := LoadImage(writeTestPNG(t), true, 4)
	require.NoError(t, err)

	// Bottom row (green, blue) comes first
	assert.Equal(t, []byte{0, 255, 0, 255}, data.Pixels[0:4])
	assert.Equal(t, []byte{255, 255, 255, 255}, data.Pixels[8:12])
}

func TestLoadImageGray(t *testing.T) {
	data, err := LoadImage(writeTestPNG(t), false, 1)
	require.NoError(t, err)

	require.Len(t, data.Pixels, 4)
	assert.Equal(t, uint8(255), data.Pixels[0])
	assert.Equal(t, uint8(76), data.Pixels[1]) // 0.299 * 255
}

func TestLoadImageErrors(t *testing.T) {
	_, err := LoadImage("nonexistent.png", false, 3)
	assert.Error(t, err)

	_, err = LoadImage(writeTestPNG(t), false, 5)
	assert.True(t, errors.Is(err, ErrInvalidChannelCount))

	garbage := filepath.Join(t.TempDir(), "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0644))
	_, err = LoadImage(garbage, false, 3)
	assert.Error(t, err)
}

func TestStoreImageRoundTrip(t *testing.T) {
	pixels := []float32{
		1, 0, 0, 0, 1, 0,
		0, 0, 1, 2, -1, 0.5, // out-of-range values are clamped
	}

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "nested", "out"+ext)
			require.NoError(t, StoreImage(out, 2, 2, 3, pixels, true))

			data, err := LoadImage(out, false, 3)
			require.NoError(t, err)
			assert.Equal(t, []byte{
				255, 0, 0, 0, 255, 0,
				0, 0, 255, 255, 0, 128,
			}, data.Pixels)
		})
	}
}

func TestStoreImageValidation(t *testing.T) {
	dir := t.TempDir()

	err := StoreImage(filepath.Join(dir, "a.png"), 2, 2, 3, make([]float32, 5), true)
	assert.True(t, errors.Is(err, ErrBufferSize))

	err = StoreImage(filepath.Join(dir, "a.png"), 1, 1, 7, make([]float32, 7), true)
	assert.True(t, errors.Is(err, ErrInvalidChannelCount))

	err = StoreImage(filepath.Join(dir, "a.xyz"), 1, 1, 3, make([]float32, 3), true)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	_, statErr := os.Stat(filepath.Join(dir, "a.xyz"))
	assert.True(t, os.IsNotExist(statErr), "failed store should not leave a file behind")
}

func TestStoreImageUnnormalized(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gray.png")
	require.NoError(t, StoreImage(out, 1, 1, 1, []float32{128}, false))

	data, err := LoadImage(out, false, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte{128, 128, 128}, data.Pixels)
}
