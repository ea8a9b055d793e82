package imaging

import (
	"image"
	"image/draw"
)

// Buffer is a decoded RGBA pixel buffer: one byte per channel, row-major,
// stride exactly W*4. It is the read-only input to the detection engines.
type Buffer struct {
	Pix []uint8
	W   int
	H   int

	// pooled is set when the backing pixels came from the scratch pool and
	// should go back there on Release.
	pooled *image.RGBA
}

// FromImage converts any image into a tightly packed Buffer.
// The fast path reuses the pixel slice of an already well-formed *image.RGBA.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rgba, ok := img.(*image.RGBA)
	if ok && rgba.Stride == w*4 && rgba.Rect.Min.X == 0 && rgba.Rect.Min.Y == 0 {
		return &Buffer{Pix: rgba.Pix, W: w, H: h}
	}

	scratch := GetRGBA(image.Rect(0, 0, w, h))
	draw.Draw(scratch, scratch.Rect, img, bounds.Min, draw.Src)
	return &Buffer{Pix: scratch.Pix, W: w, H: h, pooled: scratch}
}

// Release returns pooled backing pixels to the scratch pool. The buffer must
// not be read afterwards. Safe to call on buffers that own their pixels.
func (b *Buffer) Release() {
	if b == nil || b.pooled == nil {
		return
	}
	PutRGBA(b.pooled)
	b.pooled = nil
	b.Pix = nil
}

// At returns the RGBA sample at (x, y). Callers must stay in bounds.
func (b *Buffer) At(x, y int) (r, g, bl, a uint8) {
	i := (y*b.W + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Empty reports whether the buffer has no addressable pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.W <= 0 || b.H <= 0 || len(b.Pix) < b.W*b.H*4
}
