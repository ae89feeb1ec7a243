package rasterizer

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/band-ledger/internal/adapter"
	"github.com/feral-file/band-ledger/internal/logger"
)

// Rasterizer converts song artwork from SVG to PNG
//
//go:generate mockgen -source=rasterizer.go -destination=../../mocks/rasterizer.go -package=mocks -mock_names=Rasterizer=MockRasterizer
type Rasterizer interface {
	// Rasterize renders an SVG document to PNG bytes
	Rasterize(ctx context.Context, svgData []byte) ([]byte, error)
}

// Config holds configuration for the rasterizer
type Config struct {
	// Width is the target width (0 = SVG natural size); height follows the aspect ratio
	Width int
}

type rasterizer struct {
	resvgClient  adapter.ResvgClient
	imageEncoder adapter.ImageEncoder
	width        int
}

// NewRasterizer creates a new SVG rasterizer
func NewRasterizer(resvgClient adapter.ResvgClient, imageEncoder adapter.ImageEncoder, cfg *Config) Rasterizer {
	r := &rasterizer{
		resvgClient:  resvgClient,
		imageEncoder: imageEncoder,
	}
	if cfg != nil && cfg.Width > 0 {
		r.width = cfg.Width
	}
	return r
}

func (r *rasterizer) Rasterize(ctx context.Context, svgData []byte) ([]byte, error) {
	if len(svgData) == 0 {
		return nil, fmt.Errorf("empty SVG document")
	}

	img, err := r.resvgClient.Render(svgData, r.width)
	if err != nil {
		return nil, fmt.Errorf("failed to render SVG: %w", err)
	}

	var buf bytes.Buffer
	if err := r.imageEncoder.EncodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	bounds := img.Bounds()
	logger.DebugCtx(ctx, "Artwork rasterized",
		zap.Int("svgSize", len(svgData)),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()),
		zap.Int("pngSize", buf.Len()),
	)

	return buf.Bytes(), nil
}
