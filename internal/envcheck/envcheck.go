// Package envcheck implements the environment validator stage: it reports on
// required and optional runtime configuration, captures the workload
// interpreter version, and probes the external inference service.
//
// Everything here is advisory. A missing credential degrades a downstream
// feature but never blocks startup. Reports are derived from the resolved
// RuntimeConfig value, not from the process environment, which is read only
// once by the config layer.
package envcheck

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/drussell23/jarvis-bootstrap/internal/config"
	"github.com/drussell23/jarvis-bootstrap/internal/version"
)

// probeTimeout bounds the one-shot service reachability probe so a hung
// sidecar cannot stall container startup.
const probeTimeout = 3 * time.Second

// VarReport records presence of one external configuration value. Secret
// values carry no detail; identifiers carry their contents for the log line.
type VarReport struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Set      bool   `json:"set"`
	Detail   string `json:"detail,omitempty"`
}

// Report derives the environment report from the resolved configuration.
func Report(cfg *config.RuntimeConfig) []VarReport {
	return []VarReport{
		{
			Name:     "ANTHROPIC_API_KEY",
			Required: true,
			Set:      cfg.APIKey != "",
		},
		{
			Name:   "TIERED_STORAGE_COLD_BUCKET",
			Set:    cfg.ColdBucket != "",
			Detail: cfg.ColdBucket,
		},
		{
			Name:   "JARVIS_PRIME_URL",
			Set:    cfg.PrimeURL != "",
			Detail: cfg.PrimeURL,
		},
	}
}

// RuntimeVersion captures the workload interpreter's version string for
// diagnostics, e.g. "Python 3.11.9".
func RuntimeVersion(ctx context.Context, python string) (string, error) {
	out, err := exec.CommandContext(ctx, python, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("cannot determine interpreter version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ProbeService performs a one-shot reachability check against the external
// inference service's health endpoint. Failure is advisory: the workload has
// its own fallback path when the service is down.
func ProbeService(baseURL string) error {
	client := resty.New().
		SetTimeout(probeTimeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("jarvis-bootstrap/%s", version.BootstrapVersion))

	resp, err := client.R().Get(strings.TrimRight(baseURL, "/") + "/health")
	if err != nil {
		return fmt.Errorf("service unreachable: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("service returned %s", resp.Status())
	}
	return nil
}
