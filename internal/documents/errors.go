package documents

import (
	"errors"
	"net/http"
)

// Domain errors for document operations. The workflow-state conflicts
// (ErrNotRegistered, ErrAlreadySigned, ErrDuplicateSignature) are
// user-correctable and map to 400 with messages distinguishing each case.
var (
	ErrNotFound           = errors.New("document not found")
	ErrDuplicate          = errors.New("document is already registered")
	ErrNotRegistered      = errors.New("original document is not registered")
	ErrAlreadySigned      = errors.New("document has already been signed")
	ErrDuplicateSignature = errors.New("signed file is already registered")
	ErrNotPDF             = errors.New("file must be application/pdf")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrFileTooLarge       = errors.New("file exceeds maximum upload size")

	// ErrInternal replaces unexpected failures at the workflow boundary
	// so internal detail never reaches the caller.
	ErrInternal = errors.New("could not complete the operation, retry later or contact support")
)

// MapHTTPStatus maps document domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrNotRegistered),
		errors.Is(err, ErrAlreadySigned),
		errors.Is(err, ErrDuplicateSignature),
		errors.Is(err, ErrNotPDF),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
