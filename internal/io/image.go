package ioutils

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ArtworkInfo describes an embedded cover image.
type ArtworkInfo struct {
	// Format is the decoder name, e.g. "jpeg" or "webp".
	Format string

	Width  int
	Height int
}

// ImageService inspects cover art embedded in tags.
//
// Only the image header is decoded, so inspecting large pictures is cheap.
//
// Example usage:
//
//	svc := NewImageService()
//	info, err := svc.Describe(ctx, rec.Artwork)
//	// info.Format = "jpeg", info.Width = 1000, info.Height = 1000
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Describe reports the format and dimensions of an encoded image.
//
// JPEG, PNG, GIF, BMP and WebP are recognized. An error is returned for
// other formats or truncated data.
func (s *ImageService) Describe(ctx context.Context, data []byte) (ArtworkInfo, error) {
	if err := ctx.Err(); err != nil {
		return ArtworkInfo{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ArtworkInfo{}, err
	}

	return ArtworkInfo{
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
