package adapter

import (
	"image"
	"image/png"
	"io"
)

// ImageEncoder defines an interface for encoding images
//
//go:generate mockgen -source=image.go -destination=../mocks/image.go -package=mocks -mock_names=ImageEncoder=MockImageEncoder,ResvgClient=MockResvgClient
type ImageEncoder interface {
	// EncodePNG encodes an image to PNG format
	EncodePNG(w io.Writer, img image.Image) error
}

// ResvgClient renders SVG documents
type ResvgClient interface {
	// Render renders SVG data scaled to width (0 = SVG natural size), keeping the aspect ratio
	Render(data []byte, width int) (image.Image, error)
}

// RealImageEncoder implements ImageEncoder using image/png
type RealImageEncoder struct {
	encoder png.Encoder
}

// NewImageEncoder creates a PNG encoder tuned for flat artwork
func NewImageEncoder() ImageEncoder {
	return &RealImageEncoder{
		encoder: png.Encoder{CompressionLevel: png.BestCompression},
	}
}

func (e *RealImageEncoder) EncodePNG(w io.Writer, img image.Image) error {
	return e.encoder.Encode(w, img)
}
