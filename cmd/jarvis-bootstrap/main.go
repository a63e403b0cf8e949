// Package main implements the JARVIS container entrypoint (jarvis-bootstrap).
// The bootstrap verifies the runtime environment in a fixed stage order and
// then replaces its own process image with exactly one long-lived workload:
// the lifecycle supervisor, the API server, the training engine, a shell, or
// an arbitrary passthrough command.
package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/drussell23/jarvis-bootstrap/internal/artifacts"
	"github.com/drussell23/jarvis-bootstrap/internal/config"
	"github.com/drussell23/jarvis-bootstrap/internal/deps"
	"github.com/drussell23/jarvis-bootstrap/internal/envcheck"
	"github.com/drussell23/jarvis-bootstrap/internal/launch"
	"github.com/drussell23/jarvis-bootstrap/internal/logging"
	"github.com/drussell23/jarvis-bootstrap/internal/provision"
	"github.com/drussell23/jarvis-bootstrap/internal/report"
	"github.com/drussell23/jarvis-bootstrap/internal/trainingdb"
	"github.com/drussell23/jarvis-bootstrap/internal/version"
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "jarvis-bootstrap [command] [args...]",
	Short: "Container entrypoint for the JARVIS runtime",
	Long: `jarvis-bootstrap prepares the container runtime and hands control to one
long-lived workload process.

Stages run in strict order: configuration resolution, directory provisioning,
best-effort training database initialization, model artifact and environment
reporting, a fatal dependency health check, and finally dispatch. Dispatch
replaces the bootstrap process image, so the workload receives signals from
the container scheduler directly.`,
	Version: version.BootstrapVersion,
	Example: `  # Default: launch the full supervisor
  jarvis-bootstrap

  # Launch only the API server, forwarding flags to it
  jarvis-bootstrap api --reload

  # Launch the training engine in continuous mode
  jarvis-bootstrap training

  # Debugging shell inside the container
  jarvis-bootstrap shell

  # Arbitrary passthrough command
  jarvis-bootstrap ls -la /app/data`,
	Args:         cobra.ArbitraryArgs,
	RunE:         runBootstrap,
	SilenceUsage: true,
}

func init() {
	// Flags after the command token belong to the launched workload and must
	// be forwarded verbatim, never parsed here.
	rootCmd.Flags().SetInterspersed(false)
}

// runBootstrap executes the stage pipeline. Returning an error aborts the
// run with a non-zero exit; a successful dispatch never returns at all.
func runBootstrap(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	started := time.Now().UTC()

	// Stage 1: environment resolver. The only place the environment is read.
	cfg, err := config.Load()
	if err != nil {
		logging.Error("Configuration resolution failed: %v", err)
		return err
	}
	logging.SetLevel(cfg.LogLevel)

	logging.Info("Starting JARVIS bootstrap v%s", version.BootstrapVersion)
	logging.Info("Home: %s", cfg.HomeDir)
	logging.Info("Data: %s, Models: %s, Logs: %s", cfg.DataDir, cfg.ModelsDir, cfg.LogsDir)

	rep := &report.Bootstrap{
		Version:   version.BootstrapVersion,
		StartedAt: started,
	}

	// Stage 2: filesystem provisioner. Fatal on failure.
	if err := provision.EnsureTree(cfg); err != nil {
		logging.Error("Directory provisioning failed: %v", err)
		return err
	}
	logging.Success("Directory tree provisioned")

	// Stage 3: schema initializer. Best-effort, never fatal.
	rep.Schema = trainingdb.Initialize(ctx, cfg)
	if rep.Schema.SchemaFound {
		logging.Success("Training database initialized (%d tables)", rep.Schema.TableCount)
	}

	// Stage 4: resource availability checker. Informational only.
	rep.Artifacts = artifacts.Check(cfg)
	for _, st := range rep.Artifacts {
		if st.Found {
			logging.Success("Model artifact found: %s (%s)", st.Name, st.Path)
		} else {
			logging.Warn("Model artifact missing: %s (%s); it will be fetched lazily", st.Name, st.Path)
		}
	}

	// Stage 5: environment validator. Advisory only.
	rep.Environment = envcheck.Report(cfg)
	for _, vr := range rep.Environment {
		switch {
		case vr.Required && !vr.Set:
			logging.Warn("%s is not set; dependent features will be degraded", vr.Name)
		case vr.Set && vr.Detail != "":
			logging.Info("%s = %s", vr.Name, vr.Detail)
		case vr.Set:
			logging.Info("%s is set", vr.Name)
		}
	}

	if rv, err := envcheck.RuntimeVersion(ctx, cfg.Python); err != nil {
		logging.Warn("Interpreter version unavailable: %v", err)
	} else {
		rep.RuntimeVersion = rv
		logging.Info("Workload runtime: %s", rv)
	}

	if err := envcheck.ProbeService(cfg.PrimeURL); err != nil {
		rep.ServiceProbe = err.Error()
		logging.Warn("Inference service probe failed for %s: %v", cfg.PrimeURL, err)
	} else {
		rep.ServiceProbe = "ok"
		logging.Success("Inference service reachable at %s", cfg.PrimeURL)
	}

	// Stage 6: dependency health checker. The single hard-fail gate.
	if err := deps.Check(ctx, cfg.Python); err != nil {
		logging.Error("Dependency health check failed: %v", err)
		return err
	}
	logging.Success("All required workload modules resolved")

	// Stage 7: command dispatcher. Replaces this process image.
	target := launch.Resolve(cfg, args)
	rep.Target = target.Name

	if err := rep.Write(cfg.LogsDir); err != nil {
		logging.Warn("Bootstrap report not written: %v", err)
	}

	logging.Info("Dispatching to %s: %s", target.Name, strings.Join(target.Argv, " "))
	if err := launch.Exec(target); err != nil {
		logging.Error("Dispatch failed: %v", err)
		return err
	}
	return nil // unreachable: a successful exec never returns
}

// Main entry point
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
