package service

// MediaNormalizer re-encodes an incoming image into a bounded JPEG. maxDim is
// the side of the bounding box the image is downsampled into. Fails with a
// MEDIA_ERROR when the input is not a decodable image or stays over the size
// ceiling after recompression.
type MediaNormalizer interface {
	Normalize(raw []byte, maxDim int) ([]byte, error)
}
