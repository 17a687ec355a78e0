package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"net/http"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"basha-backend/logging"
	"basha-backend/storage"
)

var ErrInvalidPhoto = errors.New("invalid_photo")

// MaxPhotoSide bounds both dimensions of a stored listing photo.
const MaxPhotoSide = 1600

const photoJPEGQuality = 85

// Upload limits, checked before the image is decoded.
const (
	MaxPhotoBytes  = 10 << 20
	MaxPhotoPixels = 40_000_000
)

type photoFormat struct {
	format      imaging.Format
	ext         string
	contentType string
}

var (
	jpegPhoto = photoFormat{imaging.JPEG, ".jpg", "image/jpeg"}
	pngPhoto  = photoFormat{imaging.PNG, ".png", "image/png"}
)

// Accepted uploads and what they are stored as. GIFs keep their first frame.
var photoFormats = map[string]photoFormat{
	"image/jpeg": jpegPhoto,
	"image/png":  pngPhoto,
	"image/gif":  pngPhoto,
}

type ImageService struct {
	store     storage.Storage
	maxBytes  int
	maxPixels int
}

func NewImageService(store storage.Storage) *ImageService {
	return &ImageService{store: store, maxBytes: MaxPhotoBytes, maxPixels: MaxPhotoPixels}
}

// StoredImage is a photo written to storage.
type StoredImage struct {
	Key string
	URL string
}

// SaveBase64Image stores a base64 image, with or without a data URL prefix,
// under subdir. The image is re-encoded and scaled down to fit MaxPhotoSide.
func (s *ImageService) SaveBase64Image(ctx context.Context, b64, subdir string) (StoredImage, error) {
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		b64 = b64[idx+7:]
	}
	b64 = strings.TrimSpace(b64)
	if base64.StdEncoding.DecodedLen(len(b64)) > s.maxBytes {
		return StoredImage{}, fmt.Errorf("%w: larger than %d bytes", ErrInvalidPhoto, s.maxBytes)
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil || len(data) == 0 {
		return StoredImage{}, fmt.Errorf("%w: decode base64", ErrInvalidPhoto)
	}
	detected := http.DetectContentType(data)
	out, ok := photoFormats[detected]
	if !ok {
		return StoredImage{}, fmt.Errorf("%w: unsupported content type %s", ErrInvalidPhoto, detected)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return StoredImage{}, fmt.Errorf("%w: read header: %v", ErrInvalidPhoto, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > s.maxPixels/cfg.Height {
		return StoredImage{}, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidPhoto, cfg.Width, cfg.Height, s.maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return StoredImage{}, fmt.Errorf("%w: decode image: %v", ErrInvalidPhoto, err)
	}
	if b := img.Bounds(); b.Dx() > MaxPhotoSide || b.Dy() > MaxPhotoSide {
		img = imaging.Fit(img, MaxPhotoSide, MaxPhotoSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, out.format, imaging.JPEGQuality(photoJPEGQuality)); err != nil {
		return StoredImage{}, fmt.Errorf("encode photo: %w", err)
	}

	key := path.Join(subdir, uuid.NewString()+out.ext)
	if err := s.store.Write(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), out.contentType); err != nil {
		return StoredImage{}, fmt.Errorf("store photo: %w", err)
	}
	return StoredImage{Key: key, URL: s.store.PublicURL(key)}, nil
}

// Remove deletes stored photos. Failures are logged and skipped so every key
// gets a delete attempt.
func (s *ImageService) Remove(ctx context.Context, keys ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			l := logging.Ctx(ctx)
			l.Warn().Err(err).Str("key", key).Msg("remove photo failed")
		}
	}
}
