package documents

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/docstamp/docstamp/pkg/handlers"
	"github.com/docstamp/docstamp/pkg/pagination"
	"github.com/docstamp/docstamp/pkg/pdf"
	"github.com/docstamp/docstamp/pkg/routes"
	"github.com/docstamp/docstamp/pkg/storage"
)

// Handler exposes the document system over HTTP.
type Handler struct {
	system        System
	store         storage.System
	maxUploadSize int64
	pages         pagination.Config
	logger        *slog.Logger
}

// NewHandler creates a Handler over an existing document system.
func NewHandler(
	system System,
	store storage.System,
	pages pagination.Config,
	maxUploadSize int64,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		system:        system,
		store:         store,
		maxUploadSize: maxUploadSize,
		pages:         pages,
		logger:        logger,
	}
}

// Routes returns the document route group mounted at /docs.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/docs",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/list", Handler: h.list},
			{Method: http.MethodGet, Pattern: "/download/{key...}", Handler: h.download},
			{Method: http.MethodPost, Pattern: "/generate", Handler: h.generate},
			{Method: http.MethodPost, Pattern: "/sign", Handler: h.sign},
			{Method: http.MethodPost, Pattern: "/verify", Handler: h.verify},
		},
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pages)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.system.List(r.Context(), page, filters)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	reader, err := h.store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", pdf.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("failed streaming document", "storage_key", key, "error", err)
	}
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var cmd GenerateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		h.respondError(w, fmt.Errorf("%w: malformed JSON body", ErrInvalidRequest))
		return
	}

	result, err := h.system.Generate(r.Context(), cmd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) sign(w http.ResponseWriter, r *http.Request) {
	original, closeOriginal, err := h.filePart(r, "original_file")
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer closeOriginal()

	signed, closeSigned, err := h.filePart(r, "signed_file")
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer closeSigned()

	result, err := h.system.Sign(r.Context(), SignCommand{Original: original, Signed: signed})
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	file, closeFile, err := h.filePart(r, "file")
	if err != nil {
		h.respondError(w, err)
		return
	}
	defer closeFile()

	result, err := h.system.Verify(r.Context(), file)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// filePart extracts one named multipart file from the request, parsing
// the form on first use. MaxBytesReader bounds the whole request body.
func (h *Handler) filePart(r *http.Request, field string) (FilePart, func(), error) {
	if r.MultipartForm == nil {
		r.Body = http.MaxBytesReader(nil, r.Body, h.maxUploadSize)
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			var maxBytes *http.MaxBytesError
			if errors.As(err, &maxBytes) {
				return FilePart{}, nil, ErrFileTooLarge
			}
			return FilePart{}, nil, fmt.Errorf("%w: malformed multipart body", ErrInvalidRequest)
		}
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return FilePart{}, nil, fmt.Errorf("%w: missing file %q", ErrInvalidRequest, field)
		}
		return FilePart{}, nil, fmt.Errorf("%w: reading file %q", ErrInvalidRequest, field)
	}

	part := FilePart{
		Reader:      file,
		ContentType: partContentType(header),
		Filename:    header.Filename,
	}

	return part, func() { file.Close() }, nil
}

func partContentType(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	return header.Header.Get("Content-Type")
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}
