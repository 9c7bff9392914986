package storage_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/docstamp/docstamp/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=docstampstore;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/docstampstore;"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewReturnsSystem(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "documents",
		ConnectionString: azuriteConnString,
		PublicEndpoint:   "http://localhost:10000",
	}

	sys, err := storage.New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if sys == nil {
		t.Fatal("New() returned nil system")
	}
}

func TestNewInvalidConnectionString(t *testing.T) {
	cfg := &storage.Config{
		ContainerName:    "documents",
		ConnectionString: "not-a-connection-string",
		PublicEndpoint:   "http://localhost:10000",
	}

	_, err := storage.New(cfg, discardLogger())
	if err == nil {
		t.Fatal("expected error for invalid connection string, got nil")
	}
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		key      string
		want     string
	}{
		{
			name:     "plain endpoint",
			endpoint: "http://localhost:10000",
			key:      "abc.pdf",
			want:     "http://localhost:10000/documents/abc.pdf",
		},
		{
			name:     "trailing slash trimmed",
			endpoint: "https://cdn.example.com/",
			key:      "abc.pdf",
			want:     "https://cdn.example.com/documents/abc.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &storage.Config{
				ContainerName:    "documents",
				ConnectionString: azuriteConnString,
				PublicEndpoint:   tt.endpoint,
			}

			sys, err := storage.New(cfg, discardLogger())
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if got := sys.PublicURL(tt.key); got != tt.want {
				t.Errorf("PublicURL() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", storage.ErrNotFound, http.StatusNotFound},
		{"empty key", storage.ErrEmptyKey, http.StatusBadRequest},
		{"invalid key", storage.ErrInvalidKey, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := storage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Setenv("TEST_STORAGE_CONTAINER", "override")

	cfg := storage.Config{ConnectionString: azuriteConnString}
	env := &storage.Env{ContainerName: "TEST_STORAGE_CONTAINER"}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if cfg.ContainerName != "override" {
		t.Errorf("ContainerName = %s, want override", cfg.ContainerName)
	}
	if cfg.PublicEndpoint == "" {
		t.Error("PublicEndpoint default not applied")
	}
}

func TestConfigFinalizeMissingConnectionString(t *testing.T) {
	cfg := storage.Config{}
	if err := cfg.Finalize(nil); err == nil {
		t.Fatal("expected validation error, got nil")
	}
}
