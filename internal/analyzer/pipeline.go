package analyzer

import (
	"math"

	"github.com/Tera-Dark/ArtClipper-AI/internal/imaging"
)

var _ Detector = (*SliceDetector)(nil)

// SliceDetector is the full local detection pipeline: connected components,
// box merging, then a gutter split of every merged box.
type SliceDetector struct {
	// ColorThreshold is the foreground color distance (see ComponentDetector).
	ColorThreshold int
	// GutterThreshold is the 1-100 gutter sensitivity (see GutterSplitter).
	GutterThreshold int
}

// NewSliceDetector returns the pipeline with default sensitivities.
func NewSliceDetector() *SliceDetector {
	return &SliceDetector{ColorThreshold: 30, GutterThreshold: 50}
}

// Detect runs the pipeline and returns the final slice set. It never fails
// on well-formed input; a degenerate buffer yields an empty list.
func (d *SliceDetector) Detect(buf *imaging.Buffer) ([]Region, error) {
	if buf.Empty() {
		return nil, nil
	}

	rects := DetectComponents(buf, d.ColorThreshold)
	raw := make([]Region, 0, len(rects))
	for _, r := range rects {
		raw = append(raw, toRegion(r, buf.W, buf.H))
	}

	merged := MergeBoxes(raw)

	var out []Region
	for _, region := range merged {
		rect, ok := toPixelRect(region, buf.W, buf.H)
		if !ok {
			continue
		}
		out = append(out, SplitGutters(rect, buf, d.GutterThreshold)...)
	}
	return out, nil
}

// toPixelRect converts a normalized region back to inclusive pixel bounds,
// clamped to the buffer. Zero-area results are dropped (ok=false).
func toPixelRect(r Region, w, h int) (PixelRect, bool) {
	minX := clampInt(int(math.Floor(r.X*float64(w))), 0, w-1)
	minY := clampInt(int(math.Floor(r.Y*float64(h))), 0, h-1)
	maxX := clampInt(int(math.Ceil((r.X+r.W)*float64(w)))-1, 0, w-1)
	maxY := clampInt(int(math.Ceil((r.Y+r.H)*float64(h)))-1, 0, h-1)
	if maxX < minX || maxY < minY {
		return PixelRect{}, false
	}
	return PixelRect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
