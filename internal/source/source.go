// Package source enumerates and decodes the items of a batch: standalone
// image files, image directories, or the pages of a PDF.
package source

import "image"

// Source yields the decodable items of one batch input.
type Source interface {
	// ItemCount returns the number of items (files or pages).
	ItemCount() int
	// ItemName returns a stable human-readable name for item index.
	ItemName(index int) string
	// Load decodes item index into an image.
	Load(index int) (image.Image, error)
	Close() error
}
