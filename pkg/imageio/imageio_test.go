package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

// testImage is 2x2: red, green on the top row; blue, transparent on the bottom
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	return img
}

func opaqueImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	return img
}

func TestWriteTGA_Header(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTGA(&buf, image.NewRGBA(image.Rect(0, 0, 300, 2))); err != nil {
		t.Fatalf("WriteTGA failed: %v", err)
	}

	data := buf.Bytes()
	if len(data) != 18+300*2*4 {
		t.Fatalf("Expected %d bytes, got %d", 18+300*2*4, len(data))
	}

	expected := []byte{
		0, 0, 2, // ID length, no color map, true color
		0, 0, 0, 0, 0, // color map spec
		0, 0, 0, 0, // origin
		44, 1, // width 300
		2, 0, // height 2
		32, 8,
	}
	if !bytes.Equal(data[:18], expected) {
		t.Errorf("Header = %v, want %v", data[:18], expected)
	}
}

func TestWriteTGA_PixelOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTGA(&buf, testImage()); err != nil {
		t.Fatalf("WriteTGA failed: %v", err)
	}

	// Bottom row first, each pixel BGRA
	expected := []byte{
		255, 0, 0, 255, // blue
		0, 0, 0, 0, // transparent
		0, 0, 255, 255, // red
		0, 255, 0, 255, // green
	}
	if got := buf.Bytes()[18:]; !bytes.Equal(got, expected) {
		t.Errorf("Pixels = %v, want %v", got, expected)
	}
}

func TestWriteTGA_SubImage(t *testing.T) {
	sub := opaqueImage(4, 4).SubImage(image.Rect(1, 1, 3, 3))

	var buf bytes.Buffer
	if err := WriteTGA(&buf, sub); err != nil {
		t.Fatalf("WriteTGA failed: %v", err)
	}
	data := buf.Bytes()
	if data[12] != 2 || data[14] != 2 {
		t.Errorf("Expected 2x2 header, got %dx%d", data[12], data[14])
	}
	// First pixel written is (1, 2): B=128, G=2, R=1
	if data[18] != 128 || data[19] != 2 || data[20] != 1 {
		t.Errorf("Unexpected first pixel %v", data[18:22])
	}
}

func TestWriteTGA_TooLarge(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 70000, 1))
	if err := WriteTGA(&bytes.Buffer{}, img); err == nil {
		t.Error("Expected an error for a width beyond 16 bits")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		ext   string
		mime  string
	}{
		{"tga", TGA, "tga", "image/x-tga"},
		{"PNG", PNG, "png", "image/png"},
		{".png", PNG, "png", "image/png"},
		{"jpg", JPEG, "jpg", "image/jpeg"},
		{"jpeg", JPEG, "jpg", "image/jpeg"},
		{"bmp", BMP, "bmp", "image/bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.input, err)
			}
			if f != tt.want || f.Extension() != tt.ext || f.ContentType() != tt.mime {
				t.Errorf("ParseFormat(%q) = %v (%s, %s), want %v (%s, %s)",
					tt.input, f, f.Extension(), f.ContentType(), tt.want, tt.ext, tt.mime)
			}
		})
	}

	if _, err := ParseFormat("gif"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat for gif, got %v", err)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	img := opaqueImage(8, 5)

	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		PNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		JPEG: func(b *bytes.Buffer) (image.Image, error) { return jpeg.Decode(b) },
		BMP:  func(b *bytes.Buffer) (image.Image, error) { return bmp.Decode(b) },
	}

	for format, decode := range decoders {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, img, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			decoded, err := decode(&buf)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 5 {
				t.Errorf("Expected 8x5, got %v", decoded.Bounds())
			}
		})
	}
}

func TestEncode_PNGPreservesPixels(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), PNG); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	r, g, b, a := decoded.At(1, 0).RGBA()
	if r != 0 || g != 0xffff || b != 0 || a != 0xffff {
		t.Errorf("Expected opaque green at (1,0), got %v %v %v %v", r, g, b, a)
	}
	if _, _, _, a := decoded.At(1, 1).RGBA(); a != 0 {
		t.Errorf("Expected transparent pixel at (1,1), got alpha %v", a)
	}
}

func TestEncode_TGA(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), TGA); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if buf.Len() != 18+2*2*4 {
		t.Errorf("Unexpected TGA size %d", buf.Len())
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, testImage(), Format(42)); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		maxSize       int
		wantW, wantH  int
	}{
		{"landscape", 200, 100, 50, 50, 25},
		{"portrait", 100, 400, 100, 25, 100},
		{"already small", 20, 10, 50, 20, 10},
		{"disabled", 200, 100, 0, 200, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thumb := Thumbnail(opaqueImage(tt.width, tt.height), tt.maxSize)
			b := thumb.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Thumbnail = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}
