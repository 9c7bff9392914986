package documents

import (
	"net/url"
	"strconv"

	"github.com/docstamp/docstamp/pkg/query"
	"github.com/docstamp/docstamp/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "documents", "d").
	Project("id", "ID").
	Project("original_document_hash", "OriginalDocumentHash").
	Project("original_document_path", "OriginalDocumentPath").
	Project("signed_document_hash", "SignedDocumentHash").
	Project("signed_document_path", "SignedDocumentPath").
	Project("is_signed", "IsSigned").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// Pages are stable-ordered by primary key ascending.
var defaultSort = query.SortField{Field: "ID"}

// Filters contains optional filtering criteria for document queries.
// Nil fields are ignored.
type Filters struct {
	IsSigned *bool `json:"is_signed,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("IsSigned", f.IsSigned)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("is_signed"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			f.IsSigned = &v
		}
	}

	return f
}

func scanDocument(s repository.Scanner) (Document, error) {
	var d Document
	err := s.Scan(
		&d.ID,
		&d.OriginalDocumentHash,
		&d.OriginalDocumentPath,
		&d.SignedDocumentHash,
		&d.SignedDocumentPath,
		&d.IsSigned,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}
