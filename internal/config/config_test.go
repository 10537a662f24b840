package config_test

import (
	"testing"
	"time"

	"github.com/calyxlabs/calyx/internal/config"
	"github.com/calyxlabs/calyx/pkg/knn"
)

func TestServerConfigFinalizeDefaults(t *testing.T) {
	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Addr())
	}
	if cfg.ReadTimeoutDuration() != time.Minute {
		t.Errorf("ReadTimeoutDuration() = %v, want 1m", cfg.ReadTimeoutDuration())
	}
	if cfg.WriteTimeoutDuration() != 2*time.Minute {
		t.Errorf("WriteTimeoutDuration() = %v, want 2m", cfg.WriteTimeoutDuration())
	}
}

func TestServerConfigEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvServerHost, "127.0.0.1")
	t.Setenv(config.EnvServerPort, "9090")

	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9090", cfg.Addr())
	}
}

func TestServerConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ServerConfig
	}{
		{"negative port", config.ServerConfig{Port: -1}},
		{"port too large", config.ServerConfig{Port: 70000}},
		{"bad read timeout", config.ServerConfig{ReadTimeout: "soon"}},
		{"bad write timeout", config.ServerConfig{WriteTimeout: "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestServerConfigMerge(t *testing.T) {
	cfg := config.ServerConfig{Host: "0.0.0.0", Port: 8080, ReadTimeout: "1m", WriteTimeout: "2m"}
	cfg.Merge(&config.ServerConfig{Port: 9090, ReadTimeout: "30s"})

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.ReadTimeout != "30s" {
		t.Errorf("ReadTimeout = %q, want 30s", cfg.ReadTimeout)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want 0.0.0.0", cfg.Host)
	}
}

func TestAPIConfigAdminCredentialsEnv(t *testing.T) {
	t.Setenv("CALYX_API_ADMIN_USERNAME", "admin")
	t.Setenv("CALYX_API_ADMIN_PASSWORD", "first-login")

	var cfg config.APIConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q, want admin", cfg.AdminUsername)
	}
	if cfg.AdminPassword != "first-login" {
		t.Errorf("AdminPassword = %q, want first-login", cfg.AdminPassword)
	}
}

func TestAPIConfigAdminCredentialsDefaultEmpty(t *testing.T) {
	var cfg config.APIConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.AdminUsername != "" || cfg.AdminPassword != "" {
		t.Errorf("admin credentials = %q/%q, want empty", cfg.AdminUsername, cfg.AdminPassword)
	}
}

func TestAPIConfigMergeAdminCredentials(t *testing.T) {
	cfg := config.APIConfig{AdminUsername: "admin", AdminPassword: "first"}
	cfg.Merge(&config.APIConfig{AdminPassword: "rotated"})

	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q, want admin", cfg.AdminUsername)
	}
	if cfg.AdminPassword != "rotated" {
		t.Errorf("AdminPassword = %q, want rotated", cfg.AdminPassword)
	}
}

func TestModelConfigFinalizeDefaults(t *testing.T) {
	var cfg config.ModelConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.DefaultK != 5 {
		t.Errorf("DefaultK = %d, want 5", cfg.DefaultK)
	}
	if cfg.DefaultDistance != "euclidean" {
		t.Errorf("DefaultDistance = %q, want euclidean", cfg.DefaultDistance)
	}
	if cfg.SplitPolicy != config.SplitIndexed {
		t.Errorf("SplitPolicy = %q, want %q", cfg.SplitPolicy, config.SplitIndexed)
	}
	if cfg.SplitModulus != 5 {
		t.Errorf("SplitModulus = %d, want 5", cfg.SplitModulus)
	}
}

func TestModelConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.ModelConfig
	}{
		{"negative k", config.ModelConfig{DefaultK: -3}},
		{"unknown distance", config.ModelConfig{DefaultDistance: "cosine"}},
		{"unknown split policy", config.ModelConfig{SplitPolicy: "random"}},
		{"modulus too small", config.ModelConfig{SplitPolicy: config.SplitIndexed, SplitModulus: 1}},
		{"ratio too large", config.ModelConfig{SplitPolicy: config.SplitShuffled, SplitRatio: 1.5}},
		{"negative ratio", config.ModelConfig{SplitPolicy: config.SplitShuffled, SplitRatio: -0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestModelConfigEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvModelDefaultK, "7")
	t.Setenv(config.EnvModelDefaultDistance, "manhattan")
	t.Setenv(config.EnvModelSplitPolicy, "shuffled")
	t.Setenv(config.EnvModelSplitRatio, "0.75")

	var cfg config.ModelConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize error: %v", err)
	}

	if cfg.DefaultK != 7 {
		t.Errorf("DefaultK = %d, want 7", cfg.DefaultK)
	}
	if cfg.DefaultDistance != "manhattan" {
		t.Errorf("DefaultDistance = %q, want manhattan", cfg.DefaultDistance)
	}
	if cfg.SplitPolicy != config.SplitShuffled {
		t.Errorf("SplitPolicy = %q, want shuffled", cfg.SplitPolicy)
	}
	if cfg.SplitRatio != 0.75 {
		t.Errorf("SplitRatio = %g, want 0.75", cfg.SplitRatio)
	}
}

func TestModelConfigSplitter(t *testing.T) {
	indexed := config.ModelConfig{SplitPolicy: config.SplitIndexed, SplitModulus: 5}
	if _, ok := indexed.Splitter().(knn.IndexedSplitter); !ok {
		t.Errorf("Splitter() = %T, want knn.IndexedSplitter", indexed.Splitter())
	}

	shuffled := config.ModelConfig{SplitPolicy: config.SplitShuffled, SplitRatio: 0.8, SplitSeed: 42}
	if _, ok := shuffled.Splitter().(knn.ShuffleSplitter); !ok {
		t.Errorf("Splitter() = %T, want knn.ShuffleSplitter", shuffled.Splitter())
	}
}
