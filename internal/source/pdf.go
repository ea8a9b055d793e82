package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// renderDPI is the rasterization density for PDF pages. Comic scans are
// usually produced around print resolution; 150 keeps buffers manageable
// while leaving gutters several pixels wide.
const renderDPI = 150

// PDFSource exposes each page of a PDF document as one batch item.
type PDFSource struct {
	doc  *fitz.Document
	path string
}

// NewPDFSource opens a PDF for page-by-page rendering.
func NewPDFSource(path string) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &PDFSource{doc: doc, path: path}, nil
}

func (s *PDFSource) ItemCount() int {
	return s.doc.NumPage()
}

func (s *PDFSource) ItemName(index int) string {
	return fmt.Sprintf("%s#page%d", s.path, index+1)
}

// Load renders one page. A fresh document handle is opened per call because
// fitz handles are not safe for concurrent rendering, and pages of one batch
// load in parallel.
func (s *PDFSource) Load(index int) (image.Image, error) {
	workerDoc, err := fitz.New(s.path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", s.path, err)
	}
	defer workerDoc.Close()

	img, err := workerDoc.ImageDPI(index, renderDPI)
	if err != nil {
		return nil, fmt.Errorf("render page %d of %s: %w", index+1, s.path, err)
	}
	return img, nil
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}
