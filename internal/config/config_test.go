package config

import (
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv blanks every recognized override so defaults are observable
// regardless of the test environment. Empty values count as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
	}
}

// TestLoadDefaults validates that absence of every override resolves to the
// built-in defaults, with directory defaults cascading from the home dir.
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"home dir", cfg.HomeDir, "/app"},
		{"data dir", cfg.DataDir, "/app/data"},
		{"models dir", cfg.ModelsDir, "/app/models"},
		{"logs dir", cfg.LogsDir, "/app/logs"},
		{"training db", cfg.TrainingDBPath, "/app/data/training_db/jarvis_training.db"},
		{"host", cfg.Host, "0.0.0.0"},
		{"python", cfg.Python, "python3"},
		{"prime url", cfg.PrimeURL, "http://localhost:8002"},
		{"log level", cfg.LogLevel, "INFO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	if cfg.APIPort != 8000 {
		t.Errorf("APIPort = %d, want 8000", cfg.APIPort)
	}
	if cfg.LoadingPort != 8001 {
		t.Errorf("LoadingPort = %d, want 8001", cfg.LoadingPort)
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey should default to empty, got %q", cfg.APIKey)
	}
}

// TestLoadOverrides validates that non-empty environment values take
// precedence over defaults and that derived defaults follow overrides.
func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JARVIS_HOME", "/opt/jarvis")
	t.Setenv("JARVIS_DATA_DIR", "/var/lib/jarvis")
	t.Setenv("JARVIS_PORT", "9000")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("TIERED_STORAGE_COLD_BUCKET", "jarvis-cold")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HomeDir != "/opt/jarvis" {
		t.Errorf("HomeDir = %q, want /opt/jarvis", cfg.HomeDir)
	}
	if cfg.DataDir != "/var/lib/jarvis" {
		t.Errorf("DataDir = %q, want /var/lib/jarvis", cfg.DataDir)
	}

	// Models and logs cascade from the overridden home.
	if cfg.ModelsDir != "/opt/jarvis/models" {
		t.Errorf("ModelsDir = %q, want /opt/jarvis/models", cfg.ModelsDir)
	}
	if cfg.LogsDir != "/opt/jarvis/logs" {
		t.Errorf("LogsDir = %q, want /opt/jarvis/logs", cfg.LogsDir)
	}

	// Training database cascades from the overridden data dir.
	want := filepath.Join("/var/lib/jarvis", "training_db", "jarvis_training.db")
	if cfg.TrainingDBPath != want {
		t.Errorf("TrainingDBPath = %q, want %q", cfg.TrainingDBPath, want)
	}

	if cfg.APIPort != 9000 {
		t.Errorf("APIPort = %d, want 9000", cfg.APIPort)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.APIKey)
	}
	if cfg.ColdBucket != "jarvis-cold" {
		t.Errorf("ColdBucket = %q, want jarvis-cold", cfg.ColdBucket)
	}
}

// TestLoadValidation validates that structurally invalid overrides are
// rejected before any stage can observe them.
func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		value   string
		wantErr string
	}{
		{
			name:    "relative home dir",
			env:     "JARVIS_HOME",
			value:   "relative/path",
			wantErr: "absolute path",
		},
		{
			name:    "port out of range",
			env:     "JARVIS_PORT",
			value:   "70000",
			wantErr: "port",
		},
		{
			name:    "loading port zero",
			env:     "JARVIS_LOADING_PORT",
			value:   "0",
			wantErr: "port",
		},
		{
			name:    "bogus log level",
			env:     "JARVIS_LOG_LEVEL",
			value:   "VERBOSE",
			wantErr: "log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.env, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() should reject %s=%s", tt.env, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestSchemaPath validates the fixed schema location under the home dir.
func TestSchemaPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("JARVIS_HOME", "/opt/jarvis")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	want := "/opt/jarvis/backend/database/schema.sql"
	if cfg.SchemaPath() != want {
		t.Errorf("SchemaPath() = %q, want %q", cfg.SchemaPath(), want)
	}
	if cfg.BackendDir() != "/opt/jarvis/backend" {
		t.Errorf("BackendDir() = %q, want /opt/jarvis/backend", cfg.BackendDir())
	}
}

// TestEnvironCaptured validates that Load captures a process environment
// snapshot for dispatch.
func TestEnvironCaptured(t *testing.T) {
	clearEnv(t)
	t.Setenv("JARVIS_TEST_SENTINEL", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	found := false
	for _, kv := range cfg.Environ {
		if kv == "JARVIS_TEST_SENTINEL=1" {
			found = true
			break
		}
	}
	if !found {
		t.Error("captured environment should contain JARVIS_TEST_SENTINEL=1")
	}
}
