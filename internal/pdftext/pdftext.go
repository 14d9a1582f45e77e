/*
Package pdftext extracts the plain text of PDF documents.
*/
package pdftext

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor returns the full text of the document at path, pages
// concatenated in order with no separator between them.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// DocumentError reports a document that could not be opened or decoded.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("cannot read document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// New returns the extractor for the named backend: "native" or "pdftotext".
func New(backend string) (Extractor, error) {
	switch backend {
	case "", "native":
		return NewNativeExtractor(), nil
	case "pdftotext":
		return NewPopplerExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown extraction backend %q", backend)
	}
}

// NativeExtractor decodes PDFs in-process.
type NativeExtractor struct{}

// NewNativeExtractor returns an extractor backed by github.com/ledongthuc/pdf.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// Extract opens the file, reads every page and closes it again before
// returning, including when decoding fails partway through.
func (e *NativeExtractor) Extract(ctx context.Context, path string) (text string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &DocumentError{Path: path, Err: err}
	}
	defer f.Close()

	// The decoder panics on some malformed object graphs.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = &DocumentError{Path: path, Err: fmt.Errorf("malformed PDF: %v", rec)}
		}
	}()

	fi, err := f.Stat()
	if err != nil {
		return "", &DocumentError{Path: path, Err: err}
	}

	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return "", &DocumentError{Path: path, Err: err}
	}

	var sb strings.Builder

	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		// Fonts are resolved from each page's own resources.
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", &DocumentError{Path: path, Err: fmt.Errorf("page %d: %w", i, err)}
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}
