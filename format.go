package celpaint

import "github.com/gogpu/celpaint/internal/imageio"

// Format names the encoder used when saving frames.
type Format = imageio.Format

// Output formats.
const (
	FormatPNG  = imageio.PNG
	FormatJPEG = imageio.JPEG
	FormatGIF  = imageio.GIF
	FormatBMP  = imageio.BMP
	FormatTIFF = imageio.TIFF
)

// ErrUnsupportedFormat is returned for an unknown output format.
var ErrUnsupportedFormat = imageio.ErrUnsupportedFormat

// ParseFormat maps a case-insensitive format name or extension ("png",
// ".jpg", "tif", ...) to a Format.
func ParseFormat(name string) (Format, error) {
	return imageio.ParseFormat(name)
}
