package imageio

import (
	"errors"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names
var ErrUnknownFormat = errors.New("unknown image format")

// Format is an output image encoding
type Format int

const (
	TGA Format = iota
	PNG
	JPEG
	BMP
)

// JPEGQuality is used for every JPEG encode
const JPEGQuality = 95

// ParseFormat accepts a format name or file extension, case insensitive
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "tga":
		return TGA, nil
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	default:
		return TGA, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// String returns the canonical name of the format
func (f Format) String() string {
	switch f {
	case TGA:
		return "tga"
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case BMP:
		return "bmp"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the file extension, without the dot
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return f.String()
}

// ContentType returns the MIME type for HTTP responses and uploads
func (f Format) ContentType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case BMP:
		return "image/bmp"
	default:
		return "image/x-tga"
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case TGA:
		err = WriteTGA(w, img)
	case PNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case JPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality))
	case BMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}
