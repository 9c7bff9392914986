package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/docstamp/docstamp/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "5m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "docstamp"
user = "docstamp"
password = "docstamp"
ssl_mode = "disable"

[storage]
container_name = "documents"
connection_string = "DefaultEndpointsProtocol=http;AccountName=docstampstore;AccountKey=key;BlobEndpoint=http://127.0.0.1:10000/docstampstore;"
public_endpoint = "http://127.0.0.1:10000"

[api]
base_path = "/api"
max_upload_size = "50MB"

[api.pagination]
default_page_size = 25
max_page_size = 50
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "prodhost"
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func TestLoadBaseConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Server.Addr())
	}
	if cfg.Database.Name != "docstamp" {
		t.Errorf("Database.Name = %q, want docstamp", cfg.Database.Name)
	}
	if cfg.Storage.ContainerName != "documents" {
		t.Errorf("Storage.ContainerName = %q, want documents", cfg.Storage.ContainerName)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("DefaultPageSize = %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.prod.toml", overlayConfig)
	t.Chdir(dir)
	t.Setenv("DOCSTAMP_ENV", "prod")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want overlay 9090", cfg.Server.Port)
	}
	if cfg.Database.Host != "prodhost" {
		t.Errorf("Database.Host = %q, want overlay prodhost", cfg.Database.Host)
	}
	// Untouched fields keep base values.
	if cfg.Database.Name != "docstamp" {
		t.Errorf("Database.Name = %q, want base docstamp", cfg.Database.Name)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	t.Chdir(dir)
	t.Setenv("DOCSTAMP_SERVER_PORT", "7070")
	t.Setenv("DOCSTAMP_DB_PASSWORD", "secret")
	t.Setenv("DOCSTAMP_API_MAX_UPLOAD_SIZE", "10MB")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want env 7070", cfg.Server.Port)
	}
	if cfg.Database.Password != "secret" {
		t.Errorf("Database.Password = %q, want env secret", cfg.Database.Password)
	}
	if got := cfg.API.MaxUploadSizeBytes(); got != 10*1024*1024 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 10485760", got)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOCSTAMP_DB_NAME", "docstamp")
	t.Setenv("DOCSTAMP_DB_USER", "docstamp")
	t.Setenv("DOCSTAMP_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want /api", cfg.API.BasePath)
	}
	if cfg.API.Pagination.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d, want default 20", cfg.API.Pagination.DefaultPageSize)
	}
	if got := cfg.API.MaxUploadSizeBytes(); got != 50*1024*1024 {
		t.Errorf("MaxUploadSizeBytes() = %d, want 50MB", got)
	}
}

func TestLoadInvalidShutdownTimeout(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", `shutdown_timeout = "soon"`)
	t.Chdir(dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("Load() error = nil, want invalid shutdown_timeout")
	}
}
