// Package deps implements the dependency health checker stage: the single
// hard-fail gate of the bootstrap pipeline.
//
// Each required workload module is resolved by asking the interpreter to
// import it. Any resolution failure is fatal: the workload would crash on
// startup anyway, and failing here produces a far clearer diagnostic than a
// traceback from deep inside the application.
package deps

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/drussell23/jarvis-bootstrap/internal/logging"
)

// RequiredModules is the fixed list of modules every launch target depends
// on. Target-specific extras (torch, speechbrain) are resolved lazily by the
// workload itself and intentionally not gated here.
var RequiredModules = []string{
	"fastapi",
	"uvicorn",
	"pydantic",
	"websockets",
	"anthropic",
	"numpy",
}

// Check resolves every required module in the target runtime. Returns the
// first failure, naming the missing module; nil means the gate is open.
func Check(ctx context.Context, python string) error {
	for _, module := range RequiredModules {
		if err := probe(ctx, python, module); err != nil {
			return fmt.Errorf("required module %q cannot be resolved: %w", module, err)
		}
		logging.Debug("Resolved module %s", module)
	}
	return nil
}

// probe runs a single import in the interpreter. Import-time diagnostics are
// routed through the logging pipeline at debug level so a failing probe can
// be diagnosed without rerunning by hand.
func probe(ctx context.Context, python, module string) error {
	cmd := exec.CommandContext(ctx, python, "-c", fmt.Sprintf("import %s", module))
	cmd.Stdout = logging.NewLevelWriter("DEBUG", python)
	cmd.Stderr = logging.NewLevelWriter("DEBUG", python)
	return cmd.Run()
}
