package analyzer

import "github.com/Tera-Dark/ArtClipper-AI/internal/imaging"

// EnergyProfile holds one non-negative activity value per row or column of a
// pixel rect: the mean absolute RGB difference between axis-adjacent pixels.
// Flat stretches (gutters) read near zero, textured content reads high.
type EnergyProfile []float64

// rowProfile measures vertical variation per row of rect: entry i compares
// row MinY+i against the row below it, averaged across the rect width. A
// flat horizontal gutter reads near zero for every row inside it.
func rowProfile(buf *imaging.Buffer, rect PixelRect) EnergyProfile {
	profile := make(EnergyProfile, rect.Height())
	for y := rect.MinY; y < rect.MaxY; y++ {
		var sum float64
		var pairs int
		for x := rect.MinX; x <= rect.MaxX; x++ {
			d, ok := pairDiff(buf, x, y, x, y+1)
			if !ok {
				continue
			}
			sum += d
			pairs++
		}
		if pairs > 0 {
			profile[y-rect.MinY] = sum / float64(pairs)
		}
	}
	carryLast(profile)
	return profile
}

// colProfile measures horizontal variation per column of rect: entry i
// compares column MinX+i against the column to its right, averaged down the
// rect height.
func colProfile(buf *imaging.Buffer, rect PixelRect) EnergyProfile {
	profile := make(EnergyProfile, rect.Width())
	for x := rect.MinX; x < rect.MaxX; x++ {
		var sum float64
		var pairs int
		for y := rect.MinY; y <= rect.MaxY; y++ {
			d, ok := pairDiff(buf, x, y, x+1, y)
			if !ok {
				continue
			}
			sum += d
			pairs++
		}
		if pairs > 0 {
			profile[x-rect.MinX] = sum / float64(pairs)
		}
	}
	carryLast(profile)
	return profile
}

// carryLast fills the final entry, which has no forward neighbor, with the
// value before it so the profile tail never reads as a spurious gutter.
func carryLast(profile EnergyProfile) {
	if n := len(profile); n >= 2 {
		profile[n-1] = profile[n-2]
	}
}

// pairDiff returns the mean absolute RGB channel difference between two
// samples. Pairs where both samples are essentially transparent are excluded
// from the profile entirely (ok=false) rather than counted as zero, so
// transparent margins never masquerade as gutters.
func pairDiff(buf *imaging.Buffer, x0, y0, x1, y1 int) (float64, bool) {
	r0, g0, b0, a0 := buf.At(x0, y0)
	r1, g1, b1, a1 := buf.At(x1, y1)
	if a0 < alphaFloor && a1 < alphaFloor {
		return 0, false
	}
	d := absDiff(r0, r1) + absDiff(g0, g1) + absDiff(b0, b1)
	return float64(d) / 3.0, true
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// dilateMax applies a 1-D sliding-window maximum of the given radius,
// bridging short low-energy noise so only genuinely wide flat stretches
// survive as candidate gutters. Radius 0 returns the profile unchanged.
func dilateMax(profile EnergyProfile, radius int) EnergyProfile {
	if radius <= 0 || len(profile) == 0 {
		return profile
	}
	out := make(EnergyProfile, len(profile))
	for i := range profile {
		lo := i - radius
		if lo < 0 {
			lo = 0
		}
		hi := i + radius
		if hi > len(profile)-1 {
			hi = len(profile) - 1
		}
		max := profile[lo]
		for j := lo + 1; j <= hi; j++ {
			if profile[j] > max {
				max = profile[j]
			}
		}
		out[i] = max
	}
	return out
}
