package store

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// Inline images wider than this are downscaled before upload. Profile and
// logo images never need more.
const maxImageWidth = 1600

// substituteInline uploads an inline data-URI image and returns a pointer to
// its public URL. Anything that is not an inline image, or any failure along
// the way, returns the input untouched: graceful degradation, the inline
// data stays in the profile.
func (s *Store) substituteInline(ctx context.Context, image *string, folder string) *string {
	if image == nil || !isInlineImage(*image) || s.uploader == nil {
		return image
	}

	url, err := s.uploadInline(ctx, *image, folder)
	if err != nil {
		s.logger.Warn("Image upload failed, keeping inline data",
			zap.String("folder", folder), zap.Error(err))
		s.notify("Could not upload the image. It is kept locally.")
		return image
	}
	return &url
}

func (s *Store) uploadInline(ctx context.Context, inline, folder string) (string, error) {
	comma := strings.IndexByte(inline, ',')
	if comma < 0 {
		return "", fmt.Errorf("malformed data URI")
	}

	raw, err := base64.StdEncoding.DecodeString(inline[comma+1:])
	if err != nil {
		return "", fmt.Errorf("decode inline image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode image bytes: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	publicID := fmt.Sprintf("%s-%d", folder, time.Now().UnixMilli())
	url, err := s.uploader.Upload(ctx, &buf, folder, publicID)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}
