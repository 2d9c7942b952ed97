package media

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"

	"slidemarket/internal/domain/service"
	"slidemarket/pkg/errors"
	"slidemarket/pkg/logger"
)

const (
	// Telegram rejects photos over 10MB.
	maxEncodedBytes = 10 * 1024 * 1024

	encodeQuality   = 70
	fallbackQuality = 50
)

type jpegNormalizer struct{}

// NewJPEGNormalizer returns the normalizer used for listing previews and
// payment receipts: decode, strip to RGB JPEG, downsample into a maxDim
// bounding box, and recompress once more if the result is still over the
// size ceiling.
func NewJPEGNormalizer() service.MediaNormalizer {
	return &jpegNormalizer{}
}

func (n *jpegNormalizer) Normalize(raw []byte, maxDim int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Media("Could not decode image", err)
	}

	// Fit never upscales; small images pass through at original size.
	img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	encoded, err := encodeJPEG(img, encodeQuality)
	if err != nil {
		return nil, err
	}

	if len(encoded) > maxEncodedBytes {
		logger.Warn("Normalized image is %d bytes, recompressing at quality %d", len(encoded), fallbackQuality)
		encoded, err = encodeJPEG(img, fallbackQuality)
		if err != nil {
			return nil, err
		}
		if len(encoded) > maxEncodedBytes {
			return nil, errors.Media("Image is still too large after compression", nil)
		}
	}

	return encoded, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, errors.Media("Could not encode image", err)
	}
	return buf.Bytes(), nil
}
