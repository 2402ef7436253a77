package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif" // GIF decoder
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // WebP decoder
)

var (
	ErrUnsupportedFormat   = errors.New("unsupported image format")
	ErrInvalidChannelCount = errors.New("channel count must be between 1 and 4")
	ErrBufferSize          = errors.New("pixel buffer does not match image dimensions")
)

// ImageData is a decoded 8-bit image with interleaved channels
type ImageData struct {
	Width    int
	Height   int
	Channels int
	Pixels   []byte // Row-major, Channels bytes per pixel, row 0 is the top unless flipped
}

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file into channels bytes per pixel
// (1 = gray, 2 = gray+alpha, 3 = RGB, 4 = RGBA; 0 selects 4). With flipVertically the
// bottom image row comes first.
func LoadImage(filename string, flipVertically bool, channels int) (*ImageData, error) {
	if channels == 0 {
		channels = 4
	}
	if channels < 1 || channels > 4 {
		return nil, fmt.Errorf("load %s: %w", filename, ErrInvalidChannelCount)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	nrgba := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Copy(nrgba, image.Point{}, img, bounds, draw.Src, nil)

	pixels := make([]byte, 0, width*height*channels)
	for row := 0; row < height; row++ {
		y := row
		if flipVertically {
			y = height - 1 - row
		}
		for x := 0; x < width; x++ {
			c := nrgba.NRGBAAt(x, y)
			switch channels {
			case 1:
				pixels = append(pixels, gray(c.R, c.G, c.B))
			case 2:
				pixels = append(pixels, gray(c.R, c.G, c.B), c.A)
			case 3:
				pixels = append(pixels, c.R, c.G, c.B)
			default:
				pixels = append(pixels, c.R, c.G, c.B, c.A)
			}
		}
	}

	return &ImageData{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pixels:   pixels,
	}, nil
}

func gray(r, g, b uint8) uint8 {
	return uint8((299*uint32(r) + 587*uint32(g) + 114*uint32(b) + 500) / 1000)
}

// StoreImage encodes a float pixel buffer (row 0 at the top) to filename. The encoder is
// picked from the extension: .png, .jpg/.jpeg, .bmp, .tif/.tiff. When isNormalized is set
// values are in [0,1], otherwise in [0,255]; out-of-range values are clamped here.
func StoreImage(filename string, width, height, channels int, pixels []float32, isNormalized bool) error {
	if channels < 1 || channels > 4 {
		return fmt.Errorf("store %s: %w", filename, ErrInvalidChannelCount)
	}
	if width <= 0 || height <= 0 || len(pixels) != width*height*channels {
		return fmt.Errorf("store %s: %w", filename, ErrBufferSize)
	}

	scale := float32(1)
	if isNormalized {
		scale = 255
	}
	toByte := func(v float32) uint8 {
		v = v*scale + 0.5
		if v <= 0 {
			return 0
		}
		if v >= 255 {
			return 255
		}
		return uint8(v)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := pixels[(y*width+x)*channels:]
			off := img.PixOffset(x, y)
			switch channels {
			case 1, 2:
				g := toByte(px[0])
				img.Pix[off], img.Pix[off+1], img.Pix[off+2] = g, g, g
			default:
				img.Pix[off], img.Pix[off+1], img.Pix[off+2] = toByte(px[0]), toByte(px[1]), toByte(px[2])
			}
			img.Pix[off+3] = 255
			if channels == 2 || channels == 4 {
				img.Pix[off+3] = toByte(px[channels-1])
			}
		}
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		err = png.Encode(file, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: 95})
	case ".bmp":
		err = bmp.Encode(file, img)
	case ".tif", ".tiff":
		err = tiff.Encode(file, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = fmt.Errorf("store %s: %w", filename, ErrUnsupportedFormat)
	}

	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filename)
		return err
	}
	return nil
}
