package imageio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image types handled by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

// tgaTopLeft is the descriptor bit selecting top-to-bottom row order.
const tgaTopLeft = 0x20

// ErrUnsupportedTGA is returned for TGA variants other than 24/32-bit
// true-color, raw or run-length encoded.
var ErrUnsupportedTGA = errors.New("imageio: unsupported TGA variant")

// ErrTGATooLarge is returned for TGA headers declaring more than
// MaxTGAPixels pixels.
var ErrTGATooLarge = errors.New("imageio: TGA image too large")

// MaxTGAPixels bounds the width*height a TGA header may declare. The pixel
// buffer is allocated from the header before any pixel data is read.
const MaxTGAPixels = 8192 * 8192

type tgaHeader struct {
	IDLength        uint8
	ColorMapType    uint8
	ImageType       uint8
	ColorMapFirst   uint16
	ColorMapLength  uint16
	ColorMapEntry   uint8
	XOrigin         uint16
	YOrigin         uint16
	Width           uint16
	Height          uint16
	PixelDepth      uint8
	ImageDescriptor uint8
}

// DecodeTGA decodes an uncompressed or RLE true-color TGA image with 24 or
// 32 bits per pixel. Rows are stored bottom-up unless the descriptor says
// otherwise. Pixel data that ends early leaves the remaining pixels
// transparent.
func DecodeTGA(r io.Reader) (*image.NRGBA, error) {
	var h tgaHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("imageio: read TGA header: %w", err)
	}

	if (h.ImageType != tgaTrueColor && h.ImageType != tgaTrueColorRLE) ||
		(h.PixelDepth != 24 && h.PixelDepth != 32) {
		return nil, fmt.Errorf("%w: type %d, depth %d", ErrUnsupportedTGA, h.ImageType, h.PixelDepth)
	}

	skip := int64(h.IDLength)
	if h.ColorMapType != 0 {
		skip += int64(h.ColorMapLength) * int64((h.ColorMapEntry+7)/8)
	}
	if _, err := io.CopyN(io.Discard, r, skip); err != nil {
		return nil, fmt.Errorf("imageio: skip TGA header fields: %w", err)
	}

	width, height := int(h.Width), int(h.Height)
	if width*height > MaxTGAPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTGATooLarge, width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	topDown := h.ImageDescriptor&tgaTopLeft != 0
	bpp := int(h.PixelDepth) / 8

	set := func(i int, c color.NRGBA) {
		x, y := i%width, i/width
		if !topDown {
			y = height - 1 - y
		}
		img.SetNRGBA(x, y, c)
	}

	readPixel := func() (color.NRGBA, error) {
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:bpp]); err != nil {
			return color.NRGBA{}, err
		}
		c := color.NRGBA{R: buf[2], G: buf[1], B: buf[0], A: 255}
		if bpp == 4 {
			c.A = buf[3]
		}
		return c, nil
	}

	total := width * height
	rle := h.ImageType == tgaTrueColorRLE

	for i := 0; i < total; {
		count := total - i
		raw := true
		if rle {
			var hdr [1]byte
			if _, err := io.ReadFull(r, hdr[:]); err != nil {
				break
			}
			count = int(hdr[0]&0x7f) + 1
			raw = hdr[0] < 0x80
		}

		if raw {
			for j := 0; j < count && i < total; j++ {
				c, err := readPixel()
				if err != nil {
					return img, nil
				}
				set(i, c)
				i++
			}
			continue
		}

		c, err := readPixel()
		if err != nil {
			break
		}
		for j := 0; j < count && i < total; j++ {
			set(i, c)
			i++
		}
	}

	return img, nil
}
