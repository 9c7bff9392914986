// Package pdf renders registered document content to PDF bytes and
// inspects rendered output.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ContentType is the MIME type of rendered output.
const ContentType = "application/pdf"

// Field is a single labelled value rendered as one line of the document.
// Order is significant: the same fields in the same order always produce
// byte-identical output, so rendered content can be digest-addressed.
type Field struct {
	Name  string
	Value string
}

// creationDate pins the PDF metadata timestamp so rendering is
// deterministic; a wall-clock date would change the digest on every call.
var creationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Render produces a single-column PDF with one "Name: Value" block per
// field, in field order.
func Render(fields []Field) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(creationDate)
	doc.AddPage()
	doc.SetFont("Arial", "", 12)

	for _, f := range fields {
		doc.MultiCell(190, 10, fmt.Sprintf("%s: %s", f.Name, f.Value), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	return buf.Bytes(), nil
}

// PageCount returns the number of pages in the given PDF content.
func PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("read pdf page count: %w", err)
	}
	return count, nil
}
