package browser

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down to width keeping the aspect ratio. Images that
// are already narrow enough, or a zero width, return img unchanged.
func Thumbnail(img image.Image, width uint) image.Image {
	if width == 0 || uint(img.Bounds().Dx()) <= width {
		return img
	}
	return resize.Resize(width, 0, img, resize.Lanczos3)
}

// writeThumbnail decodes a PNG screenshot, scales it and writes it to path.
func writeThumbnail(path string, shot []byte, width uint) error {
	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return fmt.Errorf("browser: decode screenshot: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("browser: create %s: %w", path, err)
	}
	if err := png.Encode(f, Thumbnail(img, width)); err != nil {
		f.Close()
		return fmt.Errorf("browser: encode %s: %w", path, err)
	}
	return f.Close()
}
