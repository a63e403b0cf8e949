// Package artifacts implements the resource availability checker stage: it
// reports presence or absence of known model artifacts without ever blocking
// startup. Absent models are fetched lazily by the launched workload.
package artifacts

import (
	"os"
	"path/filepath"

	"github.com/drussell23/jarvis-bootstrap/internal/config"
)

// Artifact names a model resource expected somewhere under the models tree.
type Artifact struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Dir  bool   `json:"dir"` // true when the artifact is a directory tree
}

// Status pairs an artifact with an existence fact.
type Status struct {
	Artifact
	Found bool `json:"found"`
}

// Known returns the model artifacts the bootstrap knows to look for.
func Known(cfg *config.RuntimeConfig) []Artifact {
	return []Artifact{
		{
			Name: "ECAPA voiceprint model",
			Path: filepath.Join(cfg.ModelsDir, "current", "ecapa_voiceprint.pt"),
		},
		{
			Name: "Whisper model directory",
			Path: filepath.Join(cfg.ModelsDir, "whisper"),
			Dir:  true,
		},
	}
}

// Check inspects every known artifact path. Purely informational: results
// feed log lines and the bootstrap report, never control flow.
func Check(cfg *config.RuntimeConfig) []Status {
	arts := Known(cfg)
	statuses := make([]Status, 0, len(arts))
	for _, a := range arts {
		info, err := os.Stat(a.Path)
		found := err == nil && (info.IsDir() == a.Dir)
		statuses = append(statuses, Status{Artifact: a, Found: found})
	}
	return statuses
}
