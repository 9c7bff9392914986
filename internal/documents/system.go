package documents

import (
	"context"

	"github.com/docstamp/docstamp/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Generate renders new document content, registers its digest, and
	// stores the rendered blob.
	Generate(ctx context.Context, cmd GenerateCommand) (*GeneratedResponse, error)

	// Sign attaches an externally signed counterpart to a registered,
	// unsigned document. Signing is single-shot and replay-safe.
	Sign(ctx context.Context, cmd SignCommand) (*SignedResponse, error)

	// Verify reports whether the uploaded file's digest matches a
	// registered signed document. Never mutates state.
	Verify(ctx context.Context, file FilePart) (*VerificationResponse, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)
}
