package normalizer

import (
	"context"
	"image"

	"github.com/Tera-Dark/ArtClipper-AI/internal/analyzer"
	"github.com/Tera-Dark/ArtClipper-AI/internal/imaging"
)

// Recognizer obtains raw recognition text for an image. The transport and
// authentication behind it are the caller's concern; only the result format
// is interpreted here.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// DetectExternal runs the external detection path for one image: downscale
// per the transmit rule, call the recognizer, then parse and normalize its
// response against the original dimensions. A response that survives no
// recovery strategy surfaces ErrUnparsable.
func DetectExternal(ctx context.Context, rec Recognizer, img image.Image, transmitMaxDim int) ([]analyzer.Region, error) {
	bounds := img.Bounds()
	origW, origH := bounds.Dx(), bounds.Dy()

	resized := imaging.ResizeForTransmit(img, transmitMaxDim)
	raw, err := rec.Recognize(ctx, resized)
	if err != nil {
		return nil, err
	}

	boxes, err := ParseBoxes(raw)
	if err != nil {
		return nil, err
	}
	return Normalize(boxes, origW, origH, transmitMaxDim), nil
}
