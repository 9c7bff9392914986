package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docstamp/docstamp/pkg/routes"
)

func TestRegisterRoutes(t *testing.T) {
	mux := http.NewServeMux()

	group := routes.Group{
		Prefix: "/docs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/list", Handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}},
			{Method: "POST", Pattern: "/verify", Handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			}},
		},
	}

	routes.Register(mux, group)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/docs/list", http.StatusOK},
		{"POST", "/docs/verify", http.StatusAccepted},
		{"POST", "/docs/list", http.StatusMethodNotAllowed},
		{"GET", "/docs/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	group := routes.Group{
		Prefix: "/docs",
		Children: []routes.Group{
			{
				Prefix: "/download",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "/{key}", Handler: func(w http.ResponseWriter, r *http.Request) {
						w.WriteHeader(http.StatusOK)
					}},
				},
			},
		},
	}

	routes.Register(mux, group)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/docs/download/abc.pdf", nil)
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
