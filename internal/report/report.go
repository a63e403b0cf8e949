// Package report assembles a machine-readable record of the bootstrap run
// for orchestration systems that cannot parse the human log lines.
//
// The report is written once, immediately before dispatch, so it describes
// the state the workload was launched into. Writing it is best-effort: the
// log lines remain the authoritative surface and a write failure is only a
// warning.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/drussell23/jarvis-bootstrap/internal/artifacts"
	"github.com/drussell23/jarvis-bootstrap/internal/envcheck"
	"github.com/drussell23/jarvis-bootstrap/internal/trainingdb"
)

// FileName is the report location relative to the logs directory.
const FileName = "bootstrap_report.json"

// Bootstrap aggregates the advisory outcomes of every stage.
type Bootstrap struct {
	Version        string               `json:"version"`
	StartedAt      time.Time            `json:"started_at"`
	Schema         *trainingdb.Report   `json:"schema,omitempty"`
	Artifacts      []artifacts.Status   `json:"artifacts,omitempty"`
	Environment    []envcheck.VarReport `json:"environment,omitempty"`
	RuntimeVersion string               `json:"runtime_version,omitempty"`
	ServiceProbe   string               `json:"service_probe,omitempty"` // "ok" or the failure text
	Target         string               `json:"target"`
}

// Write serializes the report into the logs directory.
func (b *Bootstrap) Write(logsDir string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode bootstrap report: %w", err)
	}

	path := filepath.Join(logsDir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write bootstrap report %s: %w", path, err)
	}
	return nil
}
