package imaging

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// DefaultTransmitMaxDim is the longest side an image is reduced to before it
// is sent to an external recognizer.
const DefaultTransmitMaxDim = 1024

// TransmitSize applies the aspect-preserving transmit resize rule: the longer
// side is capped at maxDim, the shorter side scales proportionally (rounded,
// never below 1). Images already within the cap are left unchanged.
//
// The recognizer result normalizer recomputes the same rule to recover the
// pixel scale of absolute-coordinate responses, so the two must stay in sync.
func TransmitSize(w, h, maxDim int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	longer := w
	if h > longer {
		longer = h
	}
	if maxDim <= 0 || longer <= maxDim {
		return w, h
	}
	scale := float64(maxDim) / float64(longer)
	tw := int(float64(w)*scale + 0.5)
	th := int(float64(h)*scale + 0.5)
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}
	return tw, th
}

// ResizeForTransmit downscales an image per TransmitSize using a Catmull-Rom
// kernel. The original is returned untouched when no resize is needed.
func ResizeForTransmit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	tw, th := TransmitSize(bounds.Dx(), bounds.Dy(), maxDim)
	if tw == bounds.Dx() && th == bounds.Dy() {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.CatmullRom.Scale(dst, dst.Rect, img, bounds, xdraw.Src, nil)
	return dst
}
