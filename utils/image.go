package utils

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	// Register decoders for the accepted input formats.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	maxImageBytes = 10 * 1024 * 1024 // decoded payload cap
	maxDimension  = 1024
)

var (
	ErrImageDecode   = errors.New("image decode failed")
	ErrImageTooLarge = errors.New("image size exceeds 10MB limit")
)

var acceptedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"webp": true,
}

// ProcessBase64Image turns an inbound base64 payload (optionally a data URL)
// into canonical JPEG bytes: decoded, size-bounded, downsampled so the
// longer side is at most 1024px. Pure and side-effect-free; the output is
// what gets hashed and sent downstream.
func ProcessBase64Image(base64Data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(stripDataURL(base64Data))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrImageDecode, err)
	}

	if len(raw) > maxImageBytes {
		return nil, ErrImageTooLarge
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: unrecognized image data: %v", ErrImageDecode, err)
	}
	if !acceptedFormats[format] {
		return nil, fmt.Errorf("%w: unsupported format %q, use JPEG, PNG or WebP", ErrImageDecode, format)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := imaging.Encode(&out, img, imaging.JPEG); err != nil {
		return nil, fmt.Errorf("%w: re-encode: %v", ErrImageDecode, err)
	}
	return out.Bytes(), nil
}

// CalculateHash returns the hex SHA-256 digest of the canonical image bytes,
// used as a dedup/cache key by callers.
func CalculateHash(imageData []byte) string {
	sum := sha256.Sum256(imageData)
	return hex.EncodeToString(sum[:])
}

func stripDataURL(data string) string {
	if !strings.HasPrefix(data, "data:image/") {
		return data
	}
	if _, rest, ok := strings.Cut(data, ","); ok {
		return rest
	}
	return data
}
