package analyzer

// mergePad expands boxes during the overlap test so near-touching regions
// merge as if they overlapped (normalized units).
const mergePad = 0.005

// MergeBoxes collapses overlapping or near-touching regions into their union
// bounding boxes. The merge is a greedy fixed point: each pass scans all
// pairs, folds the first intersecting pair into the earlier region (keeping
// its id) and rescans; passes repeat until one makes no merge. Idempotent on
// already-disjoint input.
//
// The outcome is order dependent when three or more regions chain-overlap,
// and the restart-on-splice scan is O(n³) in the worst case. Both are
// acceptable: n is the number of slices on one image.
func MergeBoxes(regions []Region) []Region {
	if len(regions) < 2 {
		return regions
	}

	merged := make([]Region, len(regions))
	copy(merged, regions)

	for {
		didMerge := false
		for i := 0; i < len(merged); i++ {
			for j := i + 1; j < len(merged); j++ {
				if !boxesIntersect(merged[i], merged[j]) {
					continue
				}
				merged[i] = unionBox(merged[i], merged[j])
				merged = append(merged[:j], merged[j+1:]...)
				didMerge = true
				// restart against the shrunk remainder from the same i
				j = i
			}
		}
		if !didMerge {
			return merged
		}
	}
}

// boxesIntersect is an axis-aligned overlap test with a fixed expansion
// buffer, so regions separated by less than mergePad count as overlapping.
func boxesIntersect(a, b Region) bool {
	return a.X-mergePad < b.X+b.W+mergePad &&
		a.X+a.W+mergePad > b.X-mergePad &&
		a.Y-mergePad < b.Y+b.H+mergePad &&
		a.Y+a.H+mergePad > b.Y-mergePad
}

// unionBox returns the bounding box of a and b, keeping a's id.
func unionBox(a, b Region) Region {
	minX := a.X
	if b.X < minX {
		minX = b.X
	}
	minY := a.Y
	if b.Y < minY {
		minY = b.Y
	}
	maxX := a.X + a.W
	if b.X+b.W > maxX {
		maxX = b.X + b.W
	}
	maxY := a.Y + a.H
	if b.Y+b.H > maxY {
		maxY = b.Y + b.H
	}
	return Region{ID: a.ID, X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
