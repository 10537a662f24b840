package api

import (
	"github.com/calyxlabs/calyx/internal/config"
	"github.com/calyxlabs/calyx/internal/infrastructure"
	"github.com/calyxlabs/calyx/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Model      config.ModelConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Model:      cfg.Model,
	}
}
