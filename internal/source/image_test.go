package source

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 20, 10)
	writePNG(t, filepath.Join(dir, "a.png"), 30, 15)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := NewImageSource(dir)
	if err != nil {
		t.Fatalf("NewImageSource failed: %v", err)
	}
	defer src.Close()

	if src.ItemCount() != 2 {
		t.Fatalf("item count = %d, want 2 (non-image files skipped)", src.ItemCount())
	}
	if filepath.Base(src.ItemName(0)) != "a.png" || filepath.Base(src.ItemName(1)) != "b.png" {
		t.Errorf("items not sorted by name: %s, %s", src.ItemName(0), src.ItemName(1))
	}

	img, err := src.Load(0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 30 || img.Bounds().Dy() != 15 {
		t.Errorf("loaded %dx%d, want 30x15", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestImageSourceSingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.png")
	writePNG(t, path, 40, 25)

	src, err := NewImageSource(path)
	if err != nil {
		t.Fatalf("NewImageSource failed: %v", err)
	}
	defer src.Close()

	if src.ItemCount() != 1 {
		t.Fatalf("item count = %d, want 1", src.ItemCount())
	}
	img, err := src.Load(0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 40 {
		t.Errorf("width = %d, want 40", img.Bounds().Dx())
	}
}

func TestImageSourceEmptyDirectory(t *testing.T) {
	if _, err := NewImageSource(t.TempDir()); err == nil {
		t.Error("expected error for directory without images")
	}
}

func TestImageSourceMissingPath(t *testing.T) {
	if _, err := NewImageSource(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing path")
	}
}
