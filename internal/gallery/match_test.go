package gallery

import (
	"math"
	"testing"
)

func galleryOf(entries ...Entry) *Gallery {
	g := Empty()
	for _, e := range entries {
		g.byKey[e.Key] = len(g.entries)
		g.entries = append(g.entries, e)
	}
	return g
}

func TestMatch_ExactMatch(t *testing.T) {
	g := galleryOf(
		Entry{Key: "alice", Name: "alice", Vector: []float32{1, 2, 3}},
		Entry{Key: "bob", Name: "bob", Vector: []float32{4, 5, 6}},
	)

	name, dist := g.Match([]float32{1, 2, 3}, 1.0)

	if name != "alice" {
		t.Errorf("expected alice, got %q", name)
	}
	if dist != 0 {
		t.Errorf("expected distance 0, got %f", dist)
	}
}

func TestMatch_BoundaryDistanceAccepted(t *testing.T) {
	// Distance is exactly 1.0; the override is strictly-greater-than, so
	// the match is kept.
	g := galleryOf(Entry{Key: "alice", Name: "alice", Vector: []float32{0, 0}})

	name, dist := g.Match([]float32{1, 0}, 1.0)

	if dist != 1.0 {
		t.Fatalf("expected distance exactly 1.0, got %f", dist)
	}
	if name != "alice" {
		t.Errorf("expected boundary distance to be accepted, got %q", name)
	}
}

func TestMatch_FarQueryIsUnknown(t *testing.T) {
	g := galleryOf(
		Entry{Key: "alice", Name: "alice", Vector: []float32{0, 0}},
		Entry{Key: "bob", Name: "bob", Vector: []float32{10, 10}},
	)

	name, dist := g.Match([]float32{5, 5}, 1.0)

	if name != Unknown {
		t.Errorf("expected Unknown for far query, got %q", name)
	}
	if dist <= 1.0 {
		t.Errorf("expected reported distance above threshold, got %f", dist)
	}
}

func TestMatch_FirstSeenWinsOnTie(t *testing.T) {
	g := galleryOf(
		Entry{Key: "alice", Name: "alice", Vector: []float32{1, 0}},
		Entry{Key: "bob", Name: "bob", Vector: []float32{0, 1}},
	)

	// Equidistant from both entries.
	name, _ := g.Match([]float32{0, 0}, 2.0)

	if name != "alice" {
		t.Errorf("expected first-seen entry to win the tie, got %q", name)
	}
}

func TestMatch_EmptyGallery(t *testing.T) {
	name, dist := Empty().Match([]float32{1, 2}, 1.0)

	if name != Unknown {
		t.Errorf("expected Unknown for empty gallery, got %q", name)
	}
	if !math.IsInf(dist, 1) {
		t.Errorf("expected +Inf distance for empty gallery, got %f", dist)
	}
}

func TestMatch_DimensionMismatchIsUnknown(t *testing.T) {
	g := galleryOf(Entry{Key: "alice", Name: "alice", Vector: []float32{1, 2, 3}})

	name, dist := g.Match([]float32{1, 2}, 1.0)

	if name != Unknown {
		t.Errorf("expected Unknown for mismatched dimensions, got %q", name)
	}
	if !math.IsInf(dist, 1) {
		t.Errorf("expected +Inf distance for mismatched dimensions, got %f", dist)
	}
}

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"unit apart", []float32{0, 0}, []float32{1, 0}, 1},
		{"3-4-5 triangle", []float32{0, 0}, []float32{3, 4}, 5},
		{"negative components", []float32{-1, -1}, []float32{2, 3}, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EuclideanDistance(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("EuclideanDistance(%v, %v) = %f; want %f", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestEuclideanDistance_Invalid(t *testing.T) {
	if d := EuclideanDistance([]float32{1, 2}, []float32{1, 2, 3}); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf for mismatched lengths, got %f", d)
	}
	if d := EuclideanDistance(nil, nil); !math.IsInf(d, 1) {
		t.Errorf("expected +Inf for empty vectors, got %f", d)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"bob_smith", "bob smith"},
		{"eva-maria", "eva maria"},
		{"Jiří_Novák", "Jiri Novak"},
		{"  spaced  ", "spaced"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := DisplayName(tc.in); got != tc.want {
				t.Errorf("DisplayName(%q) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}
