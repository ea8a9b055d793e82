package analyzer

import (
	"math"

	"github.com/Tera-Dark/ArtClipper-AI/internal/imaging"
)

// foreground alpha floor: pixels more transparent than this never count.
const alphaFloor = 10

var _ Detector = (*ComponentDetector)(nil)

// ComponentDetector groups foreground pixels into connected components and
// emits their bounding boxes. A pixel is foreground when it is sufficiently
// opaque and its RGB distance from the background reference (sampled at the
// top-left corner) exceeds the color threshold.
type ComponentDetector struct {
	// ColorThreshold is the minimum Euclidean RGB distance from the
	// background color; values below 10 are raised to 10.
	ColorThreshold int
}

// NewComponentDetector creates a detector with a moderate default threshold.
func NewComponentDetector() *ComponentDetector {
	return &ComponentDetector{ColorThreshold: 30}
}

// Detect runs component detection and returns normalized regions in raster
// scan order, or an empty list for a degenerate buffer. It never fails on
// well-formed input.
func (d *ComponentDetector) Detect(buf *imaging.Buffer) ([]Region, error) {
	rects := DetectComponents(buf, d.ColorThreshold)
	regions := make([]Region, 0, len(rects))
	for _, r := range rects {
		regions = append(regions, toRegion(r, buf.W, buf.H))
	}
	return regions, nil
}

// DetectComponents flood-fills foreground pixels into connected components
// and returns the bounding rect of every component that passes the minimum
// dimension filter. A zero-dimension buffer yields an empty list.
//
// Single O(W*H) pass: every pixel is visited at most once, the flood fill
// uses an explicit stack so memory stays proportional to the component
// frontier rather than its depth.
func DetectComponents(buf *imaging.Buffer, colorThreshold int) []PixelRect {
	if buf.Empty() {
		return nil
	}
	w, h := buf.W, buf.H

	threshold := colorThreshold
	if threshold < 10 {
		threshold = 10
	}
	thresholdSq := threshold * threshold

	minDim := minComponentDim(w, h)

	bgR, bgG, bgB, _ := buf.At(0, 0)
	foreground := func(x, y int) bool {
		r, g, b, a := buf.At(x, y)
		if a < alphaFloor {
			return false
		}
		dr := int(r) - int(bgR)
		dg := int(g) - int(bgG)
		db := int(b) - int(bgB)
		return dr*dr+dg*dg+db*db > thresholdSq
	}

	visited := make([]bool, w*h)
	var rects []PixelRect
	var stack []point

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			if visited[sy*w+sx] || !foreground(sx, sy) {
				continue
			}

			rect := PixelRect{MinX: sx, MinY: sy, MaxX: sx, MaxY: sy}
			visited[sy*w+sx] = true
			stack = append(stack[:0], point{sx, sy})

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				if p.x < rect.MinX {
					rect.MinX = p.x
				}
				if p.x > rect.MaxX {
					rect.MaxX = p.x
				}
				if p.y < rect.MinY {
					rect.MinY = p.y
				}
				if p.y > rect.MaxY {
					rect.MaxY = p.y
				}

				for _, n := range [4]point{{p.x + 1, p.y}, {p.x - 1, p.y}, {p.x, p.y + 1}, {p.x, p.y - 1}} {
					if n.x < 0 || n.x >= w || n.y < 0 || n.y >= h {
						continue
					}
					if visited[n.y*w+n.x] || !foreground(n.x, n.y) {
						continue
					}
					visited[n.y*w+n.x] = true
					stack = append(stack, n)
				}
			}

			if rect.Width() >= minDim && rect.Height() >= minDim {
				rects = append(rects, rect)
			}
		}
	}

	return rects
}

// minComponentDim is the smallest pixel width/height a component must reach
// to survive: 64px, or 5% of the shorter image side for large images.
func minComponentDim(w, h int) int {
	shorter := w
	if h < shorter {
		shorter = h
	}
	dim := int(math.Floor(0.05 * float64(shorter)))
	if dim < 64 {
		dim = 64
	}
	return dim
}

type point struct {
	x, y int
}
