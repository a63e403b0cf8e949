// Package config implements the environment resolver stage: it derives the
// effective runtime configuration by overlaying environment-supplied values
// onto built-in defaults.
//
// The environment is read exactly once, inside Load. Every later stage works
// from the returned RuntimeConfig value, including dispatch, which uses the
// captured process environment rather than re-reading it. Resolution never
// fails on an absent value; absence always falls back to a default. Only
// structurally invalid values (relative paths, out-of-range ports) are
// rejected, before any stage has side effects.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/drussell23/jarvis-bootstrap/internal/logging"
	"github.com/drussell23/jarvis-bootstrap/internal/validate"
)

const (
	// DefaultHomeDir is where the container image installs the workload tree.
	DefaultHomeDir = "/app"

	// DefaultHost binds all interfaces so the container port mapping works
	// regardless of the pod network setup.
	DefaultHost = "0.0.0.0"

	// DefaultAPIPort is the primary API port of the workload.
	DefaultAPIPort = 8000

	// DefaultLoadingPort serves the loading screen while the supervisor
	// brings the main application up.
	DefaultLoadingPort = 8001

	// DefaultPython is the workload interpreter resolved via PATH.
	DefaultPython = "python3"

	// DefaultPrimeURL is the local JARVIS-Prime inference sidecar.
	DefaultPrimeURL = "http://localhost:8002"

	// DefaultLogLevel is the bootstrap's own log verbosity.
	DefaultLogLevel = "INFO"
)

// envBindings maps internal setting keys to the environment variables that
// may override them. An unset or empty variable leaves the default in place.
var envBindings = map[string]string{
	"home_dir":     "JARVIS_HOME",
	"data_dir":     "JARVIS_DATA_DIR",
	"models_dir":   "JARVIS_MODELS_DIR",
	"logs_dir":     "JARVIS_LOGS_DIR",
	"training_db":  "JARVIS_TRAINING_DB",
	"host":         "JARVIS_HOST",
	"api_port":     "JARVIS_PORT",
	"loading_port": "JARVIS_LOADING_PORT",
	"python":       "JARVIS_PYTHON",
	"api_key":      "ANTHROPIC_API_KEY",
	"cold_bucket":  "TIERED_STORAGE_COLD_BUCKET",
	"prime_url":    "JARVIS_PRIME_URL",
	"log_level":    "JARVIS_LOG_LEVEL",
}

// RuntimeConfig holds every setting the bootstrap stages consume. Immutable
// once resolved; built exactly once per run.
type RuntimeConfig struct {
	HomeDir        string // workload installation root
	DataDir        string // persistent data root
	ModelsDir      string // model artifact root
	LogsDir        string // log and report output
	TrainingDBPath string // SQLite training database file
	Host           string // bind host for launched servers
	APIPort        int    // primary API port
	LoadingPort    int    // secondary loading-screen port
	Python         string // workload interpreter binary
	PrimeURL       string // external inference service base URL
	LogLevel       string // bootstrap log verbosity

	// APIKey is the Anthropic credential. Absence degrades downstream
	// features but never blocks startup.
	APIKey string

	// ColdBucket identifies the object-storage bucket for the tiered
	// storage cold tier. Informational only; the workload owns it.
	ColdBucket string

	// Environ is the process environment captured at resolution time.
	// Dispatch composes the workload environment from this copy so no
	// stage reads the environment after Load returns.
	Environ []string
}

// Load resolves the runtime configuration from built-in defaults overlaid by
// environment values. This is the only place the bootstrap reads the
// environment. Defaults cascade: the data, models, and logs directories
// default relative to the resolved home directory, and the training database
// defaults relative to the resolved data directory.
func Load() (*RuntimeConfig, error) {
	v := viper.New()
	for key, env := range envBindings {
		// BindEnv only errors on empty arguments, which are all literals here.
		_ = v.BindEnv(key, env)
	}

	v.SetDefault("home_dir", DefaultHomeDir)
	home := v.GetString("home_dir")

	v.SetDefault("data_dir", filepath.Join(home, "data"))
	v.SetDefault("models_dir", filepath.Join(home, "models"))
	v.SetDefault("logs_dir", filepath.Join(home, "logs"))
	data := v.GetString("data_dir")

	v.SetDefault("training_db", filepath.Join(data, "training_db", "jarvis_training.db"))
	v.SetDefault("host", DefaultHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("loading_port", DefaultLoadingPort)
	v.SetDefault("python", DefaultPython)
	v.SetDefault("prime_url", DefaultPrimeURL)
	v.SetDefault("log_level", DefaultLogLevel)

	cfg := &RuntimeConfig{
		HomeDir:        v.GetString("home_dir"),
		DataDir:        v.GetString("data_dir"),
		ModelsDir:      v.GetString("models_dir"),
		LogsDir:        v.GetString("logs_dir"),
		TrainingDBPath: v.GetString("training_db"),
		Host:           v.GetString("host"),
		APIPort:        v.GetInt("api_port"),
		LoadingPort:    v.GetInt("loading_port"),
		Python:         v.GetString("python"),
		PrimeURL:       v.GetString("prime_url"),
		LogLevel:       v.GetString("log_level"),
		APIKey:         v.GetString("api_key"),
		ColdBucket:     v.GetString("cold_bucket"),
		Environ:        os.Environ(),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects structurally invalid overrides. Defaults always pass; only
// a bad explicit override can fail here.
func (c *RuntimeConfig) validate() error {
	paths := []struct {
		value string
		name  string
	}{
		{c.HomeDir, "home directory"},
		{c.DataDir, "data directory"},
		{c.ModelsDir, "models directory"},
		{c.LogsDir, "logs directory"},
		{c.TrainingDBPath, "training database path"},
	}
	for _, p := range paths {
		if err := validate.ValidateAbsolutePath(p.value, p.name); err != nil {
			return err
		}
	}

	if err := validate.ValidatePortRange(c.APIPort); err != nil {
		return fmt.Errorf("invalid API port %d: %w", c.APIPort, err)
	}
	if err := validate.ValidatePortRange(c.LoadingPort); err != nil {
		return fmt.Errorf("invalid loading port %d: %w", c.LoadingPort, err)
	}

	if err := validate.ValidateRequiredString(c.Python, "interpreter"); err != nil {
		return err
	}

	if !logging.IsValidLogLevel(c.LogLevel) {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}

// SchemaPath returns the fixed location of the SQL schema file relative to
// the home directory.
func (c *RuntimeConfig) SchemaPath() string {
	return filepath.Join(c.HomeDir, "backend", "database", "schema.sql")
}

// BackendDir returns the workload's importable backend package root.
func (c *RuntimeConfig) BackendDir() string {
	return filepath.Join(c.HomeDir, "backend")
}
