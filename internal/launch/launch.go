// Package launch implements the command dispatcher stage: it maps the first
// positional argument onto a launch target and replaces the bootstrap process
// image with it.
//
// Dispatch uses execve via syscall.Exec, so after a successful handoff the
// workload owns the pid, stdio, and signal disposition of the container's
// main process; no supervising wrapper survives to intercept termination
// signals meant for the workload. An exec failure is the only way control
// returns to the bootstrap.
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"syscall"

	"github.com/drussell23/jarvis-bootstrap/internal/config"
)

// DefaultCommand is selected when the bootstrap is invoked without arguments.
const DefaultCommand = "supervisor"

// pythonPathVar is the module search path variable of the workload runtime.
const pythonPathVar = "PYTHONPATH"

// Target is a fully resolved executable invocation. Argv[0] is the executable
// name, resolved against PATH at exec time. An empty Dir keeps the current
// working directory; a nil Env keeps the current environment.
type Target struct {
	Name string   `json:"name"`
	Argv []string `json:"argv"`
	Dir  string   `json:"dir,omitempty"`
	Env  []string `json:"-"`
}

// Resolve maps the argument list onto a launch target. The first argument is
// the command name, defaulting to the supervisor when absent; it is consumed
// and the remainder is forwarded verbatim and in order. Unrecognized commands
// become a passthrough invocation of the entire remaining command line.
func Resolve(cfg *config.RuntimeConfig, args []string) Target {
	command := DefaultCommand
	var rest []string
	if len(args) > 0 {
		command = args[0]
		rest = args[1:]
	}

	switch command {
	case "supervisor":
		argv := []string{
			cfg.Python, "unified_supervisor.py",
			"--host", cfg.Host,
			"--port", strconv.Itoa(cfg.APIPort),
			"--loading-port", strconv.Itoa(cfg.LoadingPort),
			"--no-browser",
		}
		return named(cfg, command, append(argv, rest...))

	case "api":
		argv := []string{
			cfg.Python, "backend/main.py",
			"--host", cfg.Host,
			"--port", strconv.Itoa(cfg.APIPort),
		}
		return named(cfg, command, append(argv, rest...))

	case "training":
		argv := []string{
			cfg.Python, "backend/intelligence/advanced_training_coordinator.py",
			"--continuous",
		}
		return named(cfg, command, append(argv, rest...))

	case "shell":
		// Interactive shell for debugging; trailing arguments are ignored.
		return named(cfg, command, []string{"/bin/bash"})

	case "python":
		return named(cfg, command, append([]string{cfg.Python}, rest...))

	default:
		// Arbitrary passthrough: the unrecognized token is the executable.
		// Runs verbatim with the caller's working directory and environment.
		return Target{Name: "passthrough", Argv: args, Env: cfg.Environ}
	}
}

// named builds a target that runs from the home directory with the workload
// module search path prefixed onto the captured environment.
func named(cfg *config.RuntimeConfig, name string, argv []string) Target {
	return Target{
		Name: name,
		Argv: argv,
		Dir:  cfg.HomeDir,
		Env:  workloadEnv(cfg),
	}
}

// workloadEnv composes the launch environment from the environment captured
// at resolution time, with PYTHONPATH prefixed by the home and backend
// directories. Any pre-existing value is preserved as a suffix.
func workloadEnv(cfg *config.RuntimeConfig) []string {
	prefix := cfg.HomeDir + ":" + cfg.BackendDir()

	env := make([]string, 0, len(cfg.Environ)+1)
	replaced := false
	for _, kv := range cfg.Environ {
		if v, ok := strings.CutPrefix(kv, pythonPathVar+"="); ok {
			value := prefix
			if v != "" {
				value += ":" + v
			}
			env = append(env, pythonPathVar+"="+value)
			replaced = true
			continue
		}
		env = append(env, kv)
	}
	if !replaced {
		env = append(env, pythonPathVar+"="+prefix)
	}
	return env
}

// Exec replaces the bootstrap process image with the target. On success this
// function does not return; the returned error always means the handoff
// failed and the bootstrap must exit non-zero.
func Exec(t Target) error {
	if len(t.Argv) == 0 {
		return fmt.Errorf("launch target %q has no command line", t.Name)
	}

	path, err := exec.LookPath(t.Argv[0])
	if err != nil {
		return fmt.Errorf("cannot resolve executable %q: %w", t.Argv[0], err)
	}

	if t.Dir != "" {
		if err := os.Chdir(t.Dir); err != nil {
			return fmt.Errorf("cannot enter working directory %s: %w", t.Dir, err)
		}
	}

	env := t.Env
	if env == nil {
		env = os.Environ()
	}
	return syscall.Exec(path, t.Argv, env)
}
