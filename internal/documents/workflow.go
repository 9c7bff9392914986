package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/docstamp/docstamp/pkg/hashing"
	"github.com/docstamp/docstamp/pkg/pagination"
	"github.com/docstamp/docstamp/pkg/pdf"
	"github.com/docstamp/docstamp/pkg/storage"
)

type workflow struct {
	repo    Repository
	store   storage.System
	pages   pagination.Config
	logger  *slog.Logger
	handler *Handler
}

// New creates the document domain system.
func New(
	repo Repository,
	store storage.System,
	pages pagination.Config,
	logger *slog.Logger,
) System {
	return &workflow{
		repo:   repo,
		store:  store,
		pages:  pages,
		logger: logger.With("system", "documents"),
	}
}

func (w *workflow) Handler(maxUploadSize int64) *Handler {
	if w.handler == nil {
		w.handler = NewHandler(w, w.store, w.pages, maxUploadSize, w.logger)
	}
	return w.handler
}

func (w *workflow) Generate(ctx context.Context, cmd GenerateCommand) (*GeneratedResponse, error) {
	if strings.TrimSpace(cmd.Title) == "" || strings.TrimSpace(cmd.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrInvalidRequest)
	}

	fields := []pdf.Field{
		{Name: "Title", Value: cmd.Title},
		{Name: "Content", Value: cmd.Content},
	}
	if cmd.Version != nil {
		fields = append(fields, pdf.Field{Name: "Version", Value: *cmd.Version})
	}

	rendered, err := pdf.Render(fields)
	if err != nil {
		return nil, w.internal("generate: render", err)
	}

	// Probe the rendered output so a rendering regression is caught
	// before anything is stored.
	if _, err := pdf.PageCount(rendered); err != nil {
		return nil, w.internal("generate: probe rendered output", err)
	}

	digest, err := hashing.Sum(bytes.NewReader(rendered))
	if err != nil {
		return nil, w.internal("generate: hash rendered output", err)
	}

	key, err := w.store.Put(ctx, bytes.NewReader(rendered), pdf.ContentType)
	if err != nil {
		return nil, w.internal("generate: upload", err)
	}

	doc, err := w.repo.Create(ctx, digest, key)
	if err != nil {
		// The blob has no transactional coupling with the row insert.
		// The unreferenced key is accepted collateral; log it so it can
		// be reaped out of band.
		w.logger.Error("document insert failed after upload, blob orphaned",
			"storage_key", key,
			"original_document_hash", digest,
			"error", err)

		if errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		return nil, w.internal("generate: insert", err)
	}

	return &GeneratedResponse{
		ID:                   doc.ID,
		OriginalDocumentHash: doc.OriginalDocumentHash,
		LinkToDownload:       w.store.PublicURL(doc.OriginalDocumentPath),
	}, nil
}

func (w *workflow) Sign(ctx context.Context, cmd SignCommand) (*SignedResponse, error) {
	// Both content types are checked before any bytes are read so an
	// invalid request never incurs hashing or storage cost.
	if err := requirePDF(cmd.Original); err != nil {
		return nil, err
	}
	if err := requirePDF(cmd.Signed); err != nil {
		return nil, err
	}

	originalHash, err := hashing.Sum(cmd.Original.Reader)
	if err != nil {
		return nil, w.internal("sign: hash original", err)
	}

	doc, err := w.repo.GetByOriginalHash(ctx, originalHash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, w.internal("sign: look up original", err)
	}
	if doc.IsSigned {
		return nil, ErrAlreadySigned
	}

	// The signed bytes are needed twice: once for the digest, once for
	// upload. Spool them to a scratch file while hashing, then rewind.
	scratch, cleanup, err := w.spool(cmd.Signed.Reader)
	if err != nil {
		return nil, w.internal("sign: spool signed file", err)
	}
	defer cleanup()

	signedHash, err := hashing.SumFile(scratch.Name())
	if err != nil {
		return nil, w.internal("sign: hash signed file", err)
	}

	if _, err := w.repo.GetBySignedHash(ctx, signedHash); err == nil {
		return nil, ErrDuplicateSignature
	} else if !errors.Is(err, ErrNotFound) {
		return nil, w.internal("sign: look up signed hash", err)
	}

	if _, err := scratch.Seek(0, io.SeekStart); err != nil {
		return nil, w.internal("sign: rewind scratch file", err)
	}

	key, err := w.store.Put(ctx, scratch, cmd.Signed.ContentType)
	if err != nil {
		return nil, w.internal("sign: upload signed file", err)
	}

	// The conditional update is the single atomic commit point; a race
	// loser gets ErrAlreadySigned or ErrDuplicateSignature here and the
	// uploaded blob stays unreferenced.
	signed, err := w.repo.AddSignature(ctx, doc.ID, signedHash, key)
	if err != nil {
		if errors.Is(err, ErrAlreadySigned) || errors.Is(err, ErrDuplicateSignature) {
			w.logger.Warn("sign conflict after upload, blob orphaned",
				"document_id", doc.ID,
				"storage_key", key,
				"error", err)
			return nil, err
		}
		return nil, w.internal("sign: record signature", err)
	}

	return &SignedResponse{
		ID:                 signed.ID,
		SignedDocumentHash: *signed.SignedDocumentHash,
	}, nil
}

func (w *workflow) Verify(ctx context.Context, file FilePart) (*VerificationResponse, error) {
	if err := requirePDF(file); err != nil {
		return nil, err
	}

	digest, err := hashing.Sum(file.Reader)
	if err != nil {
		return nil, w.internal("verify: hash upload", err)
	}

	if _, err := w.repo.GetBySignedHash(ctx, digest); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &VerificationResponse{Valid: false}, nil
		}
		return nil, w.internal("verify: look up signed hash", err)
	}

	return &VerificationResponse{Valid: true}, nil
}

func (w *workflow) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Document], error) {
	page.Normalize(w.pages)

	docs, total, err := w.repo.ListPaged(ctx, page, filters)
	if err != nil {
		return nil, w.internal("list documents", err)
	}

	result := pagination.NewPageResult(docs, total, page.Page, page.PageSize)
	return &result, nil
}

// internal logs the underlying failure and substitutes the generic
// error so internal detail never reaches a caller.
func (w *workflow) internal(op string, err error) error {
	w.logger.Error(op, "error", err)
	return ErrInternal
}

func (w *workflow) spool(r io.Reader) (*os.File, func(), error) {
	f, err := os.CreateTemp("", "docstamp-*.pdf")
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
		if err := os.Remove(f.Name()); err != nil {
			w.logger.Warn("failed to remove scratch file", "path", f.Name(), "error", err)
		}
	}

	if _, err := io.Copy(f, r); err != nil {
		cleanup()
		return nil, nil, err
	}

	return f, cleanup, nil
}

func requirePDF(file FilePart) error {
	if file.Reader == nil {
		return fmt.Errorf("%w: missing file", ErrInvalidRequest)
	}
	if mediaType(file.ContentType) != pdf.ContentType {
		return ErrNotPDF
	}
	return nil
}

// mediaType strips any parameters (e.g. "; charset=...") from a
// Content-Type header value.
func mediaType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
