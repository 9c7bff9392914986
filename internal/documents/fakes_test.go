package documents_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/docstamp/docstamp/internal/documents"
	"github.com/docstamp/docstamp/pkg/lifecycle"
	"github.com/docstamp/docstamp/pkg/pagination"
	"github.com/docstamp/docstamp/pkg/storage"
)

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPages() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

type createCall struct {
	hash string
	path string
}

type signCall struct {
	id         int64
	signedHash string
	signedPath string
}

type fakeRepository struct {
	byOriginal map[string]documents.Document
	bySigned   map[string]documents.Document

	createErr error
	signErr   error
	listErr   error

	listDocs  []documents.Document
	listTotal int

	created   []createCall
	signCalls []signCall
	nextID    int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byOriginal: make(map[string]documents.Document),
		bySigned:   make(map[string]documents.Document),
		nextID:     1,
	}
}

func (r *fakeRepository) register(doc documents.Document) {
	r.byOriginal[doc.OriginalDocumentHash] = doc
	if doc.SignedDocumentHash != nil {
		r.bySigned[*doc.SignedDocumentHash] = doc
	}
}

func (r *fakeRepository) Create(_ context.Context, hash, path string) (documents.Document, error) {
	r.created = append(r.created, createCall{hash: hash, path: path})
	if r.createErr != nil {
		return documents.Document{}, r.createErr
	}
	if _, exists := r.byOriginal[hash]; exists {
		return documents.Document{}, documents.ErrDuplicate
	}

	doc := documents.Document{
		ID:                   r.nextID,
		OriginalDocumentHash: hash,
		OriginalDocumentPath: path,
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}
	r.nextID++
	r.register(doc)
	return doc, nil
}

func (r *fakeRepository) GetByOriginalHash(_ context.Context, hash string) (documents.Document, error) {
	doc, ok := r.byOriginal[hash]
	if !ok {
		return documents.Document{}, documents.ErrNotFound
	}
	return doc, nil
}

func (r *fakeRepository) GetBySignedHash(_ context.Context, hash string) (documents.Document, error) {
	doc, ok := r.bySigned[hash]
	if !ok {
		return documents.Document{}, documents.ErrNotFound
	}
	return doc, nil
}

func (r *fakeRepository) AddSignature(_ context.Context, id int64, signedHash, signedPath string) (documents.Document, error) {
	r.signCalls = append(r.signCalls, signCall{id: id, signedHash: signedHash, signedPath: signedPath})
	if r.signErr != nil {
		return documents.Document{}, r.signErr
	}

	for _, doc := range r.byOriginal {
		if doc.ID != id {
			continue
		}
		if doc.IsSigned {
			return documents.Document{}, documents.ErrAlreadySigned
		}
		doc.SignedDocumentHash = &signedHash
		doc.SignedDocumentPath = &signedPath
		doc.IsSigned = true
		doc.UpdatedAt = time.Now()
		r.register(doc)
		return doc, nil
	}
	return documents.Document{}, documents.ErrAlreadySigned
}

func (r *fakeRepository) ListPaged(_ context.Context, _ pagination.PageRequest, _ documents.Filters) ([]documents.Document, int, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	return r.listDocs, r.listTotal, nil
}

type blob struct {
	key         string
	contentType string
	data        []byte
}

type fakeStore struct {
	putErr error
	blobs  []blob
	nextID int
}

func (s *fakeStore) Start(*lifecycle.Coordinator) error { return nil }

func (s *fakeStore) Put(_ context.Context, reader io.Reader, contentType string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}

	s.nextID++
	b := blob{
		key:         fmt.Sprintf("blob-%d.pdf", s.nextID),
		contentType: contentType,
		data:        data,
	}
	s.blobs = append(s.blobs, b)
	return b.key, nil
}

func (s *fakeStore) Download(_ context.Context, key string) (io.ReadCloser, error) {
	for _, b := range s.blobs {
		if b.key == key {
			return io.NopCloser(bytes.NewReader(b.data)), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	for _, b := range s.blobs {
		if b.key == key {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) PublicURL(key string) string {
	return "http://127.0.0.1:10000/docstampstore/documents/" + key
}

// failingReader errors on first read so tests can prove no bytes were
// consumed before validation rejected the request.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read should not have been attempted")
}
