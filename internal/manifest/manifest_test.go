package manifest

import (
	"path/filepath"
	"testing"

	"github.com/Tera-Dark/ArtClipper-AI/internal/analyzer"
)

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slices.yaml")

	m := &Manifest{
		Version: "1",
		Items: []Item{
			{
				Name:   "pages.pdf#page1",
				Width:  1200,
				Height: 1800,
				Slices: []analyzer.Region{
					{ID: "r1", X: 0.1, Y: 0.1, W: 0.8, H: 0.35},
					{ID: "r2", X: 0.1, Y: 0.55, W: 0.8, H: 0.35},
				},
			},
			{
				Name:  "pages.pdf#page2",
				Error: "detect: unparsable recognizer output",
			},
		},
	}

	if err := Write(m, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Version != "1" {
		t.Errorf("version = %q", got.Version)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(got.Items))
	}
	first := got.Items[0]
	if first.Name != "pages.pdf#page1" || first.Width != 1200 || first.Height != 1800 {
		t.Errorf("unexpected first item: %+v", first)
	}
	if len(first.Slices) != 2 || first.Slices[0].ID != "r1" || first.Slices[1].H != 0.35 {
		t.Errorf("slices did not round-trip: %+v", first.Slices)
	}
	if got.Items[1].Error == "" {
		t.Error("failed item lost its error")
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
