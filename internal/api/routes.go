package api

import (
	"net/http"

	"github.com/docstamp/docstamp/internal/config"
	"github.com/docstamp/docstamp/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)
}
