package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calyxlabs/calyx/pkg/routes"
)

func nameHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}

func TestRegisterFlatGroup(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/datasets",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: nameHandler("list")},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: nameHandler("find")},
			{Method: http.MethodPost, Pattern: "", Handler: nameHandler("create")},
		},
	})

	tests := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{"list", http.MethodGet, "/datasets", "list"},
		{"find", http.MethodGet, "/datasets/abc", "find"},
		{"create", http.MethodPost, "/datasets", "create"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux, routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{
				Prefix: "/tunings",
				Routes: []routes.Route{
					{Method: http.MethodGet, Pattern: "/best/{dataset_id}", Handler: nameHandler("best")},
				},
				Children: []routes.Group{
					{
						Prefix: "/archive",
						Routes: []routes.Route{
							{Method: http.MethodGet, Pattern: "", Handler: nameHandler("archive")},
						},
					},
				},
			},
		},
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{"child route", "/api/tunings/best/abc", "best"},
		{"grandchild route", "/api/tunings/archive", "archive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if got := rec.Body.String(); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegisterMultipleGroups(t *testing.T) {
	mux := http.NewServeMux()

	routes.Register(mux,
		routes.Group{
			Prefix: "/users",
			Routes: []routes.Route{
				{Method: http.MethodGet, Pattern: "", Handler: nameHandler("users")},
			},
		},
		routes.Group{
			Prefix: "/classifications",
			Routes: []routes.Route{
				{Method: http.MethodGet, Pattern: "", Handler: nameHandler("classifications")},
			},
		},
	)

	for _, path := range []string{"/users", "/classifications"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}
