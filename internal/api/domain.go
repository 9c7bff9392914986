package api

import (
	"github.com/docstamp/docstamp/internal/documents"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Documents documents.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	docsSystem := documents.New(
		documents.NewRepository(runtime.Database.Connection()),
		runtime.Storage,
		runtime.Pagination,
		runtime.Logger,
	)

	return &Domain{
		Documents: docsSystem,
	}
}
