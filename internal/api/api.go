// Package api assembles the API module with all domain systems, route
// registration, and HTTP Basic authentication.
package api

import (
	"net/http"

	"github.com/calyxlabs/calyx/internal/config"
	"github.com/calyxlabs/calyx/internal/infrastructure"
	"github.com/calyxlabs/calyx/internal/users"
	"github.com/calyxlabs/calyx/pkg/middleware"
	"github.com/calyxlabs/calyx/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	if cfg.API.AdminUsername != "" && cfg.API.AdminPassword != "" {
		runtime.Lifecycle.OnStartup(func() {
			cmd := users.CreateCommand{
				Username: cfg.API.AdminUsername,
				Password: cfg.API.AdminPassword,
				Role:     users.RoleResearcher,
			}
			if err := users.Bootstrap(runtime.Lifecycle.Context(), domain.Users, cmd); err != nil {
				runtime.Logger.Error("admin user bootstrap failed", "error", err)
				return
			}
			runtime.Logger.Info("admin user bootstrap complete", "username", cmd.Username)
		})
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.BasicAuth(domain.Users, cfg.API.AuthRealm, runtime.Logger))

	return m, nil
}
