package sprite

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/spf13/afero"
)

// Processor handles sprite decoding and encoding against a filesystem.
type Processor struct {
	fs afero.Fs
}

// NewProcessor creates a new sprite processor
func NewProcessor(fs afero.Fs) *Processor {
	return &Processor{fs: fs}
}

// ReadImage loads and decodes an image file into a 4-channel buffer.
func (p *Processor) ReadImage(path string) (*ImageData, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return nil, err
	}
	return p.DecodeImage(data)
}

// DecodeImage detects image format and decodes
func (p *Processor) DecodeImage(data []byte) (*ImageData, error) {
	if len(data) >= 4 && bytes.Equal(data[:4], []byte{0x89, 0x50, 0x4E, 0x47}) {
		return p.readPNG(data)
	} else if len(data) >= 2 && bytes.Equal(data[:2], []byte{0xFF, 0xD8}) {
		return p.readJPEG(data)
	}

	return nil, fmt.Errorf("unrecognized image format")
}

// readPNG decodes PNG image
func (p *Processor) readPNG(data []byte) (*ImageData, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Convert to RGBA
	buf := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := (y*width + x) * 4
			buf[idx] = byte(r >> 8)
			buf[idx+1] = byte(g >> 8)
			buf[idx+2] = byte(b >> 8)
			buf[idx+3] = byte(a >> 8)
		}
	}

	return &ImageData{
		Buf:    buf,
		Width:  width,
		Height: height,
		Depth:  4,
	}, nil
}

// readJPEG decodes JPEG image
func (p *Processor) readJPEG(data []byte) (*ImageData, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Convert to RGBA - JPEG doesn't have alpha, so we'll use RGB with full alpha
	buf := make([]byte, width*height*4)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := (y*width + x) * 4
			buf[idx] = byte(r >> 8)   // R
			buf[idx+1] = byte(g >> 8) // G
			buf[idx+2] = byte(b >> 8) // B
			buf[idx+3] = 255          // A (full opacity for JPEG)
		}
	}

	return &ImageData{
		Buf:    buf,
		Width:  width,
		Height: height,
		Depth:  3, // JPEG is RGB, not RGBA
	}, nil
}

// EncodePNG encodes the image as PNG bytes. PNG is lossless and preserves
// per-pixel alpha exactly, which the sheet round-trip relies on.
func (p *Processor) EncodePNG(img *ImageData) ([]byte, error) {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Buf)

	var output bytes.Buffer
	if err := png.Encode(&output, out); err != nil {
		return nil, err
	}

	return output.Bytes(), nil
}

// WritePNG encodes the image and writes it to the given path.
func (p *Processor) WritePNG(path string, img *ImageData) error {
	data, err := p.EncodePNG(img)
	if err != nil {
		return err
	}
	return afero.WriteFile(p.fs, path, data, 0o644)
}
