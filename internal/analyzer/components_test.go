package analyzer

import (
	"testing"

	"github.com/Tera-Dark/ArtClipper-AI/internal/imaging"
)

// newTestBuffer creates a w*h buffer filled with one opaque color.
func newTestBuffer(w, h int, r, g, b uint8) *imaging.Buffer {
	buf := &imaging.Buffer{Pix: make([]uint8, w*h*4), W: w, H: h}
	for i := 0; i < w*h; i++ {
		buf.Pix[i*4] = r
		buf.Pix[i*4+1] = g
		buf.Pix[i*4+2] = b
		buf.Pix[i*4+3] = 255
	}
	return buf
}

// fillRect paints an opaque rectangle, inclusive bounds.
func fillRect(buf *imaging.Buffer, minX, minY, maxX, maxY int, r, g, b uint8) {
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			i := (y*buf.W + x) * 4
			buf.Pix[i] = r
			buf.Pix[i+1] = g
			buf.Pix[i+2] = b
			buf.Pix[i+3] = 255
		}
	}
}

func checkUnitSquare(t *testing.T, regions []Region) {
	t.Helper()
	const eps = 1e-6
	for _, r := range regions {
		if r.X < 0 || r.Y < 0 || r.X+r.W > 1+eps || r.Y+r.H > 1+eps {
			t.Errorf("region %v escapes the unit square", r)
		}
		if r.W <= 0 || r.H <= 0 {
			t.Errorf("region %v has degenerate size", r)
		}
	}
}

func TestDetectComponentsSingleRect(t *testing.T) {
	buf := newTestBuffer(400, 400, 255, 255, 255)
	fillRect(buf, 100, 120, 250, 280, 0, 0, 0)

	rects := DetectComponents(buf, 30)
	if len(rects) != 1 {
		t.Fatalf("expected 1 component, got %d", len(rects))
	}

	r := rects[0]
	if r.MinX != 100 || r.MinY != 120 || r.MaxX != 250 || r.MaxY != 280 {
		t.Errorf("unexpected bounds: %+v", r)
	}
}

func TestDetectComponentsRasterOrder(t *testing.T) {
	buf := newTestBuffer(500, 500, 255, 255, 255)
	// bottom-left box first spatially, top-right box first in raster order
	fillRect(buf, 300, 20, 420, 140, 200, 0, 0)
	fillRect(buf, 20, 300, 140, 420, 0, 0, 200)

	rects := DetectComponents(buf, 30)
	if len(rects) != 2 {
		t.Fatalf("expected 2 components, got %d", len(rects))
	}
	if rects[0].MinY > rects[1].MinY {
		t.Errorf("components not in raster scan order: %+v", rects)
	}
}

func TestDetectComponentsMinDimensionFilter(t *testing.T) {
	buf := newTestBuffer(400, 400, 255, 255, 255)
	// 30x30: below the 64px floor
	fillRect(buf, 10, 10, 39, 39, 0, 0, 0)
	// 80x200: wide enough but present to prove the filter is per-component
	fillRect(buf, 200, 100, 279, 299, 0, 0, 0)

	rects := DetectComponents(buf, 30)
	if len(rects) != 1 {
		t.Fatalf("expected the small component to be filtered, got %d", len(rects))
	}
	if rects[0].MinX != 200 {
		t.Errorf("wrong component survived: %+v", rects[0])
	}
}

func TestDetectComponentsTransparentPixelsAreBackground(t *testing.T) {
	buf := newTestBuffer(300, 300, 255, 255, 255)
	fillRect(buf, 50, 50, 200, 200, 0, 0, 0)
	// punch the component transparent: alpha below the floor
	for y := 50; y <= 200; y++ {
		for x := 50; x <= 200; x++ {
			buf.Pix[(y*buf.W+x)*4+3] = 0
		}
	}

	if rects := DetectComponents(buf, 30); len(rects) != 0 {
		t.Errorf("transparent pixels must not form components, got %d", len(rects))
	}
}

func TestDetectComponentsDegenerateBuffer(t *testing.T) {
	for _, buf := range []*imaging.Buffer{nil, {W: 0, H: 100}, {W: 100, H: 0}} {
		if rects := DetectComponents(buf, 30); len(rects) != 0 {
			t.Errorf("degenerate buffer must yield no components, got %d", len(rects))
		}
	}
}

func TestComponentDetectorNormalizedOutput(t *testing.T) {
	buf := newTestBuffer(400, 200, 255, 255, 255)
	fillRect(buf, 100, 50, 299, 149, 0, 0, 0)

	d := NewComponentDetector()
	regions, err := d.Detect(buf)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	checkUnitSquare(t, regions)

	r := regions[0]
	if r.ID == "" {
		t.Error("region id must be assigned")
	}
	if r.X != 0.25 || r.Y != 0.25 || r.W != 0.5 || r.H != 0.5 {
		t.Errorf("unexpected normalized bounds: %+v", r)
	}
}
