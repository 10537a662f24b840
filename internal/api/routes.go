package api

import (
	"net/http"

	"github.com/calyxlabs/calyx/internal/config"
	"github.com/calyxlabs/calyx/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Datasets.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Classifications.Handler().Routes(),
		domain.Tunings.Handler().Routes(),
		domain.Users.Handler().Routes(),
	)
}
