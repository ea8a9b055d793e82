package analyzer

import (
	"math"

	"github.com/Tera-Dark/ArtClipper-AI/internal/imaging"
)

const (
	// leafDim: rects thinner than this on either side are emitted as-is.
	leafDim = 80
	// minSubThickness: both halves of a cut must keep at least this many
	// pixels on the split axis.
	minSubThickness = 30
	// flatEnergy: profile noise floor below which a stretch counts as flat.
	flatEnergy = 5.0
)

// GutterSplitter re-cuts a merged bounding box that straddles two textured
// sub-panels joined only by a flat visual gap (a gutter). Threshold is a
// 1-100 sensitivity: higher values accept narrower, less padded gutters.
type GutterSplitter struct {
	Threshold int
}

// splitParams are derived from the sensitivity threshold.
type splitParams struct {
	dilationRadius int
	minGapSize     int
}

func deriveParams(threshold int) splitParams {
	if threshold < 1 {
		threshold = 1
	}
	if threshold > 100 {
		threshold = 100
	}
	t := float64(threshold)
	radius := int(math.Floor(40 - 0.4*t))
	if radius < 0 {
		radius = 0
	}
	gap := int(math.Floor(16 - 0.15*t))
	if gap < 4 {
		gap = 4
	}
	return splitParams{dilationRadius: radius, minGapSize: gap}
}

// SplitGutters recursively partitions rect along flat low-energy strips and
// returns the resulting normalized regions. A rect with no qualifying gutter
// on either axis comes back as exactly one Region. Pure function of its
// inputs; never fails.
//
// The recursion is expressed as an explicit work stack in pre-order, so
// pathological inputs with many thin alternating gutters cannot exhaust call
// depth, and the output order matches depth-first top/left-before-bottom/
// right traversal.
func SplitGutters(rect PixelRect, buf *imaging.Buffer, threshold int) []Region {
	if buf.Empty() {
		return nil
	}
	params := deriveParams(threshold)

	var out []Region
	stack := []PixelRect{rect}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.Width() < leafDim || cur.Height() < leafDim {
			out = append(out, toRegion(cur, buf.W, buf.H))
			continue
		}

		// rows first; a row cut wins outright and skips the column search
		if start, end, ok := findGutter(rowProfile(buf, cur), params); ok {
			top := PixelRect{MinX: cur.MinX, MinY: cur.MinY, MaxX: cur.MaxX, MaxY: cur.MinY + start - 1}
			bottom := PixelRect{MinX: cur.MinX, MinY: cur.MinY + end + 1, MaxX: cur.MaxX, MaxY: cur.MaxY}
			stack = append(stack, bottom, top)
			continue
		}

		if start, end, ok := findGutter(colProfile(buf, cur), params); ok {
			left := PixelRect{MinX: cur.MinX, MinY: cur.MinY, MaxX: cur.MinX + start - 1, MaxY: cur.MaxY}
			right := PixelRect{MinX: cur.MinX + end + 1, MinY: cur.MinY, MaxX: cur.MaxX, MaxY: cur.MaxY}
			stack = append(stack, right, left)
			continue
		}

		out = append(out, toRegion(cur, buf.W, buf.H))
	}

	return out
}

// findGutter scans the profile for the first flat run that qualifies as a
// gutter and returns its inclusive index extent. Qualification happens on
// the dilated profile, where the sliding maximum has already erased flat
// runs narrower than the dilation window; the accepted run is then grown
// back along the raw profile to the true gutter extent before the cut.
func findGutter(raw EnergyProfile, params splitParams) (start, end int, ok bool) {
	n := len(raw)
	if n == 0 {
		return 0, 0, false
	}
	dilated := dilateMax(raw, params.dilationRadius)

	i := 0
	for i < n {
		if dilated[i] >= flatEnergy {
			i++
			continue
		}
		runStart := i
		for i < n && dilated[i] < flatEnergy {
			i++
		}
		runEnd := i - 1

		if runEnd-runStart+1 < params.minGapSize {
			continue
		}

		for runStart > 0 && raw[runStart-1] < flatEnergy {
			runStart--
		}
		for runEnd < n-1 && raw[runEnd+1] < flatEnergy {
			runEnd++
		}

		if runStart < minSubThickness || n-1-runEnd < minSubThickness {
			continue
		}
		return runStart, runEnd, true
	}
	return 0, 0, false
}
