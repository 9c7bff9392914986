package documents

import (
	"context"
	"database/sql"

	"github.com/docstamp/docstamp/pkg/pagination"
	"github.com/docstamp/docstamp/pkg/query"
	"github.com/docstamp/docstamp/pkg/repository"
)

// Repository persists Document rows. Implementations map storage-level
// failures to the package's domain errors.
type Repository interface {
	// Create registers a new unsigned document. Returns ErrDuplicate when
	// the original hash is already registered.
	Create(ctx context.Context, originalHash, originalPath string) (Document, error)

	// GetByOriginalHash returns the document registered with the given
	// original digest, or ErrNotFound.
	GetByOriginalHash(ctx context.Context, hash string) (Document, error)

	// GetBySignedHash returns the document whose signed counterpart has
	// the given digest, or ErrNotFound.
	GetBySignedHash(ctx context.Context, hash string) (Document, error)

	// AddSignature transitions an unsigned document to signed. Returns
	// ErrAlreadySigned when the row is already signed and
	// ErrDuplicateSignature when another document holds the signed hash.
	AddSignature(ctx context.Context, id int64, signedHash, signedPath string) (Document, error)

	// ListPaged returns one page of documents plus the total count,
	// both read from a single consistent snapshot.
	ListPaged(ctx context.Context, page pagination.PageRequest, filters Filters) ([]Document, int, error)
}

type documentRepository struct {
	db *sql.DB
}

// NewRepository creates a Postgres-backed document repository.
func NewRepository(db *sql.DB) Repository {
	return &documentRepository{db: db}
}

const insertDocument = `
	INSERT INTO documents (original_document_hash, original_document_path)
	VALUES ($1, $2)
	RETURNING
		id, original_document_hash, original_document_path,
		signed_document_hash, signed_document_path, is_signed,
		created_at, updated_at`

func (r *documentRepository) Create(ctx context.Context, originalHash, originalPath string) (Document, error) {
	doc, err := repository.QueryOne(
		ctx, r.db, insertDocument,
		[]any{originalHash, originalPath},
		scanDocument,
	)
	if err != nil {
		return Document{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return doc, nil
}

func (r *documentRepository) GetByOriginalHash(ctx context.Context, hash string) (Document, error) {
	return r.getByField(ctx, "OriginalDocumentHash", hash)
}

func (r *documentRepository) GetBySignedHash(ctx context.Context, hash string) (Document, error) {
	return r.getByField(ctx, "SignedDocumentHash", hash)
}

func (r *documentRepository) getByField(ctx context.Context, field, value string) (Document, error) {
	sqlQuery, args := query.
		NewBuilder(projection).
		WhereEquals(field, value).
		BuildSingleOrNull()

	doc, err := repository.QueryOne(ctx, r.db, sqlQuery, args, scanDocument)
	if err != nil {
		return Document{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return doc, nil
}

// The is_signed guard makes the UPDATE the arbiter under concurrency:
// of two racing sign attempts exactly one matches the unsigned row,
// the other sees no rows and reports ErrAlreadySigned.
const signDocument = `
	UPDATE documents
	SET signed_document_hash = $2,
		signed_document_path = $3,
		is_signed = TRUE,
		updated_at = NOW()
	WHERE id = $1 AND is_signed = FALSE
	RETURNING
		id, original_document_hash, original_document_path,
		signed_document_hash, signed_document_path, is_signed,
		created_at, updated_at`

func (r *documentRepository) AddSignature(ctx context.Context, id int64, signedHash, signedPath string) (Document, error) {
	doc, err := repository.QueryOne(
		ctx, r.db, signDocument,
		[]any{id, signedHash, signedPath},
		scanDocument,
	)
	if err != nil {
		return Document{}, repository.MapError(err, ErrAlreadySigned, ErrDuplicateSignature)
	}
	return doc, nil
}

type pageData struct {
	docs  []Document
	total int
}

func (r *documentRepository) ListPaged(ctx context.Context, page pagination.PageRequest, filters Filters) ([]Document, int, error) {
	builder := filters.Apply(query.NewBuilder(projection, defaultSort))

	countQuery, countArgs := builder.BuildCount()
	pageQuery, pageArgs := builder.BuildPage(page.PageSize, page.Offset())

	result, err := repository.WithReadTx(ctx, r.db, func(tx *sql.Tx) (pageData, error) {
		var total int
		if err := tx.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return pageData{}, err
		}

		docs, err := repository.QueryMany(ctx, tx, pageQuery, pageArgs, scanDocument)
		if err != nil {
			return pageData{}, err
		}

		return pageData{docs: docs, total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	return result.docs, result.total, nil
}
