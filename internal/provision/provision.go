// Package provision implements the filesystem provisioner stage: it ensures
// the fixed directory tree the workloads expect exists before any of them is
// launched.
//
// Creation is idempotent; re-running on an already-provisioned tree is a
// no-op. A failure to create any directory is fatal to the bootstrap since
// every downstream process assumes the tree is in place.
package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drussell23/jarvis-bootstrap/internal/config"
)

// dirMode is the permission set for provisioned directories. The workload
// runs as the same user as the bootstrap, so group/world write is not needed.
const dirMode = 0o755

// Directories returns the ordered set of required directories derived from
// the resolved configuration. The training database directory comes first so
// the schema initializer can rely on it.
func Directories(cfg *config.RuntimeConfig) []string {
	return []string{
		filepath.Dir(cfg.TrainingDBPath),
		filepath.Join(cfg.DataDir, "voiceprints"),
		filepath.Join(cfg.DataDir, "experiences"),
		filepath.Join(cfg.DataDir, "knowledge"),
		cfg.LogsDir,
		filepath.Join(cfg.ModelsDir, "current"),
		filepath.Join(cfg.ModelsDir, "archive"),
	}
}

// EnsureTree creates every required directory, including intermediate path
// components. Returns on the first failure with a diagnostic identifying the
// failing path; the caller treats any error as fatal.
func EnsureTree(cfg *config.RuntimeConfig) error {
	for _, dir := range Directories(cfg) {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
