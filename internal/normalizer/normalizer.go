package normalizer

import (
	"math"

	"github.com/google/uuid"

	"github.com/Tera-Dark/ArtClipper-AI/internal/analyzer"
	"github.com/Tera-Dark/ArtClipper-AI/internal/imaging"
)

// minBoxPixels is the size floor: boxes at or below it on either side are
// dropped silently.
const minBoxPixels = 64

// Scale thresholds for coordinate-convention auto-detection. Values near the
// boundaries can misclassify; the heuristic is kept as-is.
const (
	normalizedMax  = 1.5
	thousandthsMax = 1000
)

// Normalize canonicalizes recognizer boxes into unit-square Regions against
// the original image dimensions. transmittedMaxDim is the longest-side cap
// that was applied before the image was sent to the recognizer; it anchors
// the pixel scale when the recognizer answered in absolute coordinates.
// Output order mirrors input order; ids are freshly generated.
func Normalize(boxes []RawBox, originalW, originalH, transmittedMaxDim int) []analyzer.Region {
	if len(boxes) == 0 || originalW <= 0 || originalH <= 0 {
		return nil
	}

	scale := detectScale(boxes, originalW, originalH, transmittedMaxDim)

	out := make([]analyzer.Region, 0, len(boxes))
	for _, b := range boxes {
		region, ok := resolveBox(b, scale, originalW, originalH)
		if !ok {
			continue
		}
		out = append(out, region)
	}
	return out
}

// detectScale infers the divisor that brings all box values into [0,1]:
// already normalized, thousandths (common for vision LLM output), or
// absolute pixels against the resized image the recognizer actually saw.
func detectScale(boxes []RawBox, originalW, originalH, transmittedMaxDim int) float64 {
	var maxVal float64
	for _, b := range boxes {
		for _, v := range b {
			if a := math.Abs(v); a > maxVal {
				maxVal = a
			}
		}
	}

	switch {
	case maxVal <= normalizedMax:
		return 1
	case maxVal <= thousandthsMax:
		return 1000
	default:
		tw, th := imaging.TransmitSize(originalW, originalH, transmittedMaxDim)
		longer := tw
		if th > longer {
			longer = th
		}
		if longer <= 0 {
			return 1
		}
		return float64(longer)
	}
}

// resolveBox applies scale division, axis resolution, clamping and the size
// floor. Default axis order is [ymin, xmin, ymax, xmax]; a geometrically
// invalid reading falls back to generic min/max pairing, which also covers
// [x1, y1, x2, y2] input.
func resolveBox(b RawBox, scale float64, originalW, originalH int) (analyzer.Region, bool) {
	var v [4]float64
	for i := range b {
		v[i] = b[i] / scale
	}

	ymin, xmin, ymax, xmax := v[0], v[1], v[2], v[3]
	if ymin > ymax || xmin > xmax {
		xmin = math.Min(v[0], v[2])
		xmax = math.Max(v[0], v[2])
		ymin = math.Min(v[1], v[3])
		ymax = math.Max(v[1], v[3])
	}

	x := clamp01(xmin)
	y := clamp01(ymin)
	w := xmax - x
	h := ymax - y
	if x+w > 1 {
		w = 1 - x
	}
	if y+h > 1 {
		h = 1 - y
	}

	if w <= 0 || h <= 0 {
		return analyzer.Region{}, false
	}
	if w*float64(originalW) <= minBoxPixels || h*float64(originalH) <= minBoxPixels {
		return analyzer.Region{}, false
	}

	return analyzer.Region{ID: uuid.NewString(), X: x, Y: y, W: w, H: h}, true
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
