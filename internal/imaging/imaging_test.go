package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestTransmitSize(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		maxDim int
		wantW  int
		wantH  int
	}{
		{"landscape above cap", 4000, 2000, 1024, 1024, 512},
		{"portrait above cap", 1000, 4000, 1024, 256, 1024},
		{"already within cap", 800, 600, 1024, 800, 600},
		{"exactly at cap", 1024, 768, 1024, 1024, 768},
		{"degenerate", 0, 100, 1024, 0, 0},
		{"no cap", 5000, 3000, 0, 5000, 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := TransmitSize(tt.w, tt.h, tt.maxDim)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("TransmitSize(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.w, tt.h, tt.maxDim, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFromImageConvertsNonRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 8))
	gray.SetGray(3, 2, color.Gray{Y: 200})

	buf := FromImage(gray)
	if buf.W != 10 || buf.H != 8 {
		t.Fatalf("unexpected dimensions %dx%d", buf.W, buf.H)
	}
	r, g, b, a := buf.At(3, 2)
	if r != 200 || g != 200 || b != 200 || a != 255 {
		t.Errorf("converted sample wrong: %d %d %d %d", r, g, b, a)
	}
}

func TestFromImageReusesTightRGBA(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 6, 4))
	rgba.Pix[0] = 42

	buf := FromImage(rgba)
	if &buf.Pix[0] != &rgba.Pix[0] {
		t.Error("a tightly packed RGBA image must be reused, not copied")
	}
}

func TestFromImageOffsetBounds(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(5, 5, 15, 12))
	buf := FromImage(rgba)
	if buf.W != 10 || buf.H != 7 {
		t.Errorf("offset bounds not repacked: %dx%d", buf.W, buf.H)
	}
}

func TestResizeForTransmit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2048, 1024))
	out := ResizeForTransmit(src, 1024)
	b := out.Bounds()
	if b.Dx() != 1024 || b.Dy() != 512 {
		t.Errorf("resized to %dx%d, want 1024x512", b.Dx(), b.Dy())
	}

	small := image.NewRGBA(image.Rect(0, 0, 100, 50))
	if ResizeForTransmit(small, 1024) != image.Image(small) {
		t.Error("images within the cap must be returned untouched")
	}
}

func TestBufferRelease(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 8, 8))
	buf := FromImage(gray)
	buf.Release()
	if buf.Pix != nil {
		t.Error("released buffer still holds pixels")
	}
	buf.Release() // second call is a no-op

	rgba := image.NewRGBA(image.Rect(0, 0, 8, 8))
	owned := FromImage(rgba)
	owned.Release()
	if owned.Pix == nil {
		t.Error("caller-owned pixels must survive Release")
	}
}

func TestRGBAPoolRoundTrip(t *testing.T) {
	rect := image.Rect(0, 0, 16, 9)
	img := GetRGBA(rect)
	if img.Bounds() != rect {
		t.Fatalf("pooled image bounds = %v, want %v", img.Bounds(), rect)
	}
	PutRGBA(img)

	again := GetRGBA(rect)
	if again.Bounds() != rect {
		t.Errorf("reused image bounds = %v, want %v", again.Bounds(), rect)
	}

	// handing back a size the pool never issued must not panic
	PutRGBA(image.NewRGBA(image.Rect(0, 0, 3, 3)))
	PutRGBA(nil)
}
