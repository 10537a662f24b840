// Package scalar serves the Scalar API reference UI for the published
// OpenAPI document.
package scalar

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/calyxlabs/calyx/pkg/module"
)

//go:embed index.html
var staticFS embed.FS

// NewModule creates a module that serves the Scalar API reference UI at basePath.
func NewModule(basePath string) *module.Module {
	return module.New(basePath, buildRouter(basePath))
}

func buildRouter(basePath string) http.Handler {
	mux := http.NewServeMux()

	tmpl := template.Must(template.ParseFS(staticFS, "index.html"))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		tmpl.Execute(w, map[string]string{"BasePath": basePath})
	})

	return mux
}
