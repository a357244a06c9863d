// Package gallery holds the in-memory set of known faces. It is built once
// at startup from a flat directory of labeled images and never mutated
// afterwards, so the capture loop can read it without locking.
package gallery

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// ImageEmbedder is the subset of the embedding backend the gallery needs to
// build itself.
type ImageEmbedder interface {
	EmbedImage(img image.Image) ([]float32, error)
}

// Entry is one known face.
type Entry struct {
	Key    string // filename stem, the identity key
	Name   string // display name rendered on frame labels
	File   string // source file name inside the gallery directory
	Vector []float32
}

// LoadOptions tweaks gallery construction.
type LoadOptions struct {
	// OnProgress is called after each image is embedded; the CLI drives a
	// progress bar with it. May be nil.
	OnProgress func(done, total int)
}

// Gallery is the reference set for recognition.
type Gallery struct {
	entries []Entry
	byKey   map[string]int // key -> position in entries
}

// Load builds a gallery from the image files directly inside dir
// (non-recursive). Files with extensions other than .png/.jpg/.jpeg
// (case-insensitive) are silently skipped. Images are processed in sorted
// filename order and keyed by the filename stem; when two files collide on
// the same stem the later one wins, deterministically under that order.
func Load(dir string, embedder ImageEmbedder, opts LoadOptions) (*Gallery, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery directory: %w", err)
	}

	// os.ReadDir returns entries sorted by filename, which fixes the
	// last-write-wins order for stem collisions.
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isImageFile(entry.Name()) {
			continue
		}
		files = append(files, entry.Name())
	}

	g := &Gallery{byKey: make(map[string]int)}
	for i, name := range files {
		vec, err := embedFile(filepath.Join(dir, name), embedder)
		if err != nil {
			return nil, fmt.Errorf("failed to embed gallery image %s: %w", name, err)
		}

		key := stem(name)
		entry := Entry{
			Key:    key,
			Name:   DisplayName(key),
			File:   name,
			Vector: vec,
		}

		if pos, ok := g.byKey[key]; ok {
			g.entries[pos] = entry
		} else {
			g.byKey[key] = len(g.entries)
			g.entries = append(g.entries, entry)
		}

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, len(files))
		}
	}

	return g, nil
}

// Empty returns a gallery with no entries, used when no known-faces
// directory is configured.
func Empty() *Gallery {
	return &Gallery{byKey: make(map[string]int)}
}

// Size returns the number of known identities.
func (g *Gallery) Size() int {
	return len(g.entries)
}

// Entries returns the known faces in load order.
func (g *Gallery) Entries() []Entry {
	return g.entries
}

func embedFile(path string, embedder ImageEmbedder) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return embedder.EmbedImage(img)
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
