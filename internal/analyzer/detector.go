// Package analyzer segments a pixel buffer into normalized rectangular
// slices: connected-component detection, box merging and gutter splitting.
package analyzer

import (
	"github.com/google/uuid"

	"github.com/Tera-Dark/ArtClipper-AI/internal/imaging"
)

// Region is a final detected slice in coordinates normalized to [0,1]
// relative to the image dimensions. Regions are immutable once produced.
type Region struct {
	ID string  `yaml:"id" json:"id"`
	X  float64 `yaml:"x" json:"x"`
	Y  float64 `yaml:"y" json:"y"`
	W  float64 `yaml:"width" json:"width"`
	H  float64 `yaml:"height" json:"height"`
}

// PixelRect is an axis-aligned rectangle in pixel space with inclusive
// bounds. It only exists inside the detection engines; emitted results are
// converted to Region.
type PixelRect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Width returns the pixel width of the rect (inclusive bounds).
func (r PixelRect) Width() int { return r.MaxX - r.MinX + 1 }

// Height returns the pixel height of the rect (inclusive bounds).
func (r PixelRect) Height() int { return r.MaxY - r.MinY + 1 }

// Detector is the interface for slice detection strategies.
type Detector interface {
	Detect(buf *imaging.Buffer) ([]Region, error)
}

// newRegionID mints a fresh unique id for an emitted region.
func newRegionID() string {
	return uuid.NewString()
}

// toRegion converts a pixel rect into a normalized Region against the given
// buffer dimensions, assigning a fresh id.
func toRegion(r PixelRect, w, h int) Region {
	return Region{
		ID: newRegionID(),
		X:  float64(r.MinX) / float64(w),
		Y:  float64(r.MinY) / float64(h),
		W:  float64(r.Width()) / float64(w),
		H:  float64(r.Height()) / float64(h),
	}
}
