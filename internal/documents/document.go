// Package documents implements the document registry domain: registering
// generated PDFs, accepting a signed counterpart exactly once, and
// verifying uploads against registered signed digests.
package documents

import (
	"io"
	"time"
)

// Document is the sole persisted entity: one registered document and,
// once signing succeeds, its signed counterpart. The signed fields and
// IsSigned are all unset or all set together; once set they never change.
type Document struct {
	ID                   int64     `json:"id"`
	OriginalDocumentHash string    `json:"original_document_hash"`
	OriginalDocumentPath string    `json:"original_document_path"`
	SignedDocumentHash   *string   `json:"signed_document_hash"`
	SignedDocumentPath   *string   `json:"signed_document_path"`
	IsSigned             bool      `json:"is_signed"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// FilePart carries one uploaded file: its stream and the content type
// the client declared for it. The declared type is validated before any
// bytes are read.
type FilePart struct {
	Reader      io.Reader
	ContentType string
	Filename    string
}

// GenerateCommand carries the content to render and register as a new
// unsigned document.
type GenerateCommand struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Version *string `json:"version,omitempty"`
}

// SignCommand carries the original and externally signed files for the
// signing workflow.
type SignCommand struct {
	Original FilePart
	Signed   FilePart
}

// GeneratedResponse reports a newly registered document.
type GeneratedResponse struct {
	ID                   int64  `json:"id"`
	OriginalDocumentHash string `json:"original_document_hash"`
	LinkToDownload       string `json:"link_to_download"`
}

// SignedResponse reports a successful signing transition.
type SignedResponse struct {
	ID                 int64  `json:"id"`
	SignedDocumentHash string `json:"signed_document_hash"`
}

// VerificationResponse reports whether an uploaded file matches a
// registered signed document.
type VerificationResponse struct {
	Valid bool `json:"valid"`
}
