package gallery

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// sizeEmbedder returns the image width as a one-component vector, so tests
// can tell which file produced an entry.
type sizeEmbedder struct{}

func (sizeEmbedder) EmbedImage(img image.Image) ([]float32, error) {
	return []float32{float32(img.Bounds().Dx())}, nil
}

// writePNG writes a width x 1 image; width doubles as a marker value.
func writePNG(t *testing.T, dir, name string, width int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, 1))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.White)
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
}

func TestLoad_KeysAndNames(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "alice.png", 10)
	writePNG(t, dir, "bob_smith.png", 20)

	g, err := Load(dir, sizeEmbedder{}, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if g.Size() != 2 {
		t.Fatalf("expected 2 entries, got %d", g.Size())
	}

	entries := g.Entries()
	if entries[0].Key != "alice" || entries[1].Key != "bob_smith" {
		t.Errorf("unexpected keys: %q, %q", entries[0].Key, entries[1].Key)
	}
	if entries[1].Name != "bob smith" {
		t.Errorf("expected display name 'bob smith', got %q", entries[1].Name)
	}
	if entries[0].File != "alice.png" {
		t.Errorf("expected source file 'alice.png', got %q", entries[0].File)
	}
}

func TestLoad_SkipsNonImages(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "alice.png", 10)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "animation.gif"), []byte{0x47, 0x49, 0x46}, 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := Load(dir, sizeEmbedder{}, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g.Size() != 1 {
		t.Errorf("expected only the png to load, got %d entries", g.Size())
	}
}

func TestLoad_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "alice.png", 10)

	sub := filepath.Join(dir, "more")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, sub, "bob.png", 20)

	g, err := Load(dir, sizeEmbedder{}, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g.Size() != 1 {
		t.Errorf("expected subdirectory to be ignored, got %d entries", g.Size())
	}
}

func TestLoad_CaseInsensitiveExtensions(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "alice.PNG", 10)
	writePNG(t, dir, "bob.Png", 20)

	g, err := Load(dir, sizeEmbedder{}, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g.Size() != 2 {
		t.Errorf("expected upper and mixed case extensions to load, got %d entries", g.Size())
	}
}

func TestLoad_LastWriteWinsOnStemCollision(t *testing.T) {
	dir := t.TempDir()
	// Both files share the stem "alice"; sorted order is .jpg before .png,
	// so the .png embedding must win.
	writePNG(t, dir, "alice.jpg", 10) // png payload, but the decoder sniffs content
	writePNG(t, dir, "alice.png", 20)

	g, err := Load(dir, sizeEmbedder{}, LoadOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if g.Size() != 1 {
		t.Fatalf("expected collision to collapse to 1 entry, got %d", g.Size())
	}

	entry := g.Entries()[0]
	if entry.Vector[0] != 20 {
		t.Errorf("expected later file to win (vector 20), got %f", entry.Vector[0])
	}
	if entry.File != "alice.png" {
		t.Errorf("expected winning source file alice.png, got %q", entry.File)
	}
}

func TestLoad_ProgressCallback(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "alice.png", 10)
	writePNG(t, dir, "bob.png", 20)

	var calls []int
	_, err := Load(dir, sizeEmbedder{}, LoadOptions{
		OnProgress: func(done, total int) {
			if total != 2 {
				t.Errorf("expected total 2, got %d", total)
			}
			calls = append(calls, done)
		},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(calls) != 2 || calls[0] != 1 || calls[1] != 2 {
		t.Errorf("unexpected progress calls: %v", calls)
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	if _, err := Load("/does/not/exist", sizeEmbedder{}, LoadOptions{}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
