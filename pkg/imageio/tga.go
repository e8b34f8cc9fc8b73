package imageio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"io"
)

const (
	tgaTypeTrueColor = 2
	tgaBitsPerPixel  = 32
	tgaAlphaBits     = 8 // image descriptor: 8 alpha bits, bottom-left origin
)

// tgaHeader is the fixed 18-byte header of an uncompressed true color TGA
type tgaHeader struct {
	IDLength        uint8
	ColorMapType    uint8
	ImageType       uint8
	ColorMapStart   uint16
	ColorMapLength  uint16
	ColorMapDepth   uint8
	XOrigin         uint16
	YOrigin         uint16
	Width           uint16
	Height          uint16
	BitsPerPixel    uint8
	ImageDescriptor uint8
}

// WriteTGA writes img as an uncompressed 32-bit BGRA TGA. Rows are written
// bottom first to match the bottom-left origin in the header.
func WriteTGA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > 0xFFFF || height > 0xFFFF {
		return fmt.Errorf("image %dx%d too large for TGA", width, height)
	}

	bw := bufio.NewWriter(w)

	header := tgaHeader{
		ImageType:       tgaTypeTrueColor,
		Width:           uint16(width),
		Height:          uint16(height),
		BitsPerPixel:    tgaBitsPerPixel,
		ImageDescriptor: tgaAlphaBits,
	}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("failed to write TGA header: %w", err)
	}

	row := make([]byte, width*4)
	for y := bounds.Max.Y - 1; y >= bounds.Min.Y; y-- {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, y)).(color.NRGBA)
			row[x*4+0] = c.B
			row[x*4+1] = c.G
			row[x*4+2] = c.R
			row[x*4+3] = c.A
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write TGA pixels: %w", err)
		}
	}

	return bw.Flush()
}
