package config

import (
	"fmt"
	"os"

	"github.com/calyxlabs/calyx/pkg/formatting"
	"github.com/calyxlabs/calyx/pkg/middleware"
	"github.com/calyxlabs/calyx/pkg/openapi"
	"github.com/calyxlabs/calyx/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CALYX_CORS_ENABLED",
	Origins:          "CALYX_CORS_ORIGINS",
	AllowedMethods:   "CALYX_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CALYX_CORS_ALLOWED_HEADERS",
	AllowCredentials: "CALYX_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CALYX_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "CALYX_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "CALYX_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "CALYX_OPENAPI_TITLE",
	Description: "CALYX_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	AuthRealm     string                `toml:"auth_realm"`
	MaxUploadSize string                `toml:"max_upload_size"`
	AdminUsername string                `toml:"admin_username"`
	AdminPassword string                `toml:"admin_password"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 10 * 1024 * 1024 // 10MB fallback
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.AuthRealm != "" {
		c.AuthRealm = overlay.AuthRealm
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
	if overlay.AdminUsername != "" {
		c.AdminUsername = overlay.AdminUsername
	}
	if overlay.AdminPassword != "" {
		c.AdminPassword = overlay.AdminPassword
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.AuthRealm == "" {
		c.AuthRealm = "calyx"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("CALYX_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("CALYX_API_AUTH_REALM"); v != "" {
		c.AuthRealm = v
	}
	if v := os.Getenv("CALYX_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
	if v := os.Getenv("CALYX_API_ADMIN_USERNAME"); v != "" {
		c.AdminUsername = v
	}
	if v := os.Getenv("CALYX_API_ADMIN_PASSWORD"); v != "" {
		c.AdminPassword = v
	}
}
