package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// Variant is a named resize target for listing photos.
type Variant struct {
	Name  string
	Width int
}

var (
	VariantThumb = Variant{Name: "thumb", Width: 320}
	VariantFull  = Variant{Name: "full", Width: 1600}
)

// Processor downscales uploaded photos and re-encodes them.
type Processor struct {
	quality int
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{quality: quality}
}

// Resize decodes the image, scales it down to the variant width keeping the
// aspect ratio, and re-encodes in the source format. Images already narrower
// than the target are re-encoded without scaling.
func (p *Processor) Resize(reader io.Reader, v Variant) (io.Reader, string, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > v.Width {
		height := bounds.Dy() * v.Width / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, v.Width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality})
	case "png":
		err = png.Encode(&buf, img)
	default:
		return nil, "", fmt.Errorf("unsupported image format: %s", format)
	}
	if err != nil {
		return nil, "", fmt.Errorf("encode %s: %w", format, err)
	}

	return &buf, "image/" + format, nil
}

// IsValidImage reports whether the reader holds a decodable image.
func IsValidImage(reader io.Reader) bool {
	_, _, err := image.Decode(reader)
	return err == nil
}
