package gallery

import "math"

// Unknown is the label for a face whose nearest gallery entry is farther
// than the match threshold, and for faces that cannot be embedded at all.
const Unknown = "Unknown"

// NoIdentity is the placeholder label used when recognition is disabled or
// the gallery has no entries; no inference runs in that mode.
const NoIdentity = "no identity"

// Match scans the whole gallery and returns the display name of the nearest
// entry by Euclidean distance, together with that distance. The minimum is
// tracked with a strict comparison, so the first-seen entry wins exact ties.
// If the best distance is strictly greater than threshold the name is
// overridden to Unknown after the scan completes; a distance exactly at the
// threshold is still accepted.
func (g *Gallery) Match(query []float32, threshold float64) (string, float64) {
	best := math.Inf(1)
	name := Unknown

	for _, entry := range g.entries {
		if d := EuclideanDistance(query, entry.Vector); d < best {
			best = d
			name = entry.Name
		}
	}

	if best > threshold {
		return Unknown, best
	}
	return name, best
}

// EuclideanDistance computes the L2 norm of the difference between two
// embedding vectors. Mismatched dimensionality cannot be compared and yields
// +Inf, which no threshold accepts.
func EuclideanDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		diff := float64(a[i]) - float64(b[i])
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
