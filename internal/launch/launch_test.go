package launch

import (
	"reflect"
	"strings"
	"testing"

	"github.com/drussell23/jarvis-bootstrap/internal/config"
)

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		HomeDir:     "/app",
		Host:        "0.0.0.0",
		APIPort:     8000,
		LoadingPort: 8001,
		Python:      "python3",
		Environ:     []string{"PATH=/usr/bin", "HOME=/root"},
	}
}

// TestResolveDefault validates that an empty argument list selects the full
// supervisor bound to both ports with browser auto-launch disabled.
func TestResolveDefault(t *testing.T) {
	target := Resolve(testConfig(), nil)

	if target.Name != "supervisor" {
		t.Fatalf("default target = %q, want supervisor", target.Name)
	}

	want := []string{
		"python3", "unified_supervisor.py",
		"--host", "0.0.0.0",
		"--port", "8000",
		"--loading-port", "8001",
		"--no-browser",
	}
	if !reflect.DeepEqual(target.Argv, want) {
		t.Errorf("Argv = %v, want %v", target.Argv, want)
	}
	if target.Dir != "/app" {
		t.Errorf("Dir = %q, want /app", target.Dir)
	}
}

// TestResolveForwarding validates that trailing arguments are forwarded
// verbatim and in order, with the command token removed.
func TestResolveForwarding(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantName string
		wantTail []string
	}{
		{
			name:     "supervisor with flags",
			args:     []string{"supervisor", "--verbose", "--tier", "2"},
			wantName: "supervisor",
			wantTail: []string{"--verbose", "--tier", "2"},
		},
		{
			name:     "api with reload flag",
			args:     []string{"api", "--reload"},
			wantName: "api",
			wantTail: []string{"--reload"},
		},
		{
			name:     "training with extra args",
			args:     []string{"training", "--epochs", "5"},
			wantName: "training",
			wantTail: []string{"--epochs", "5"},
		},
		{
			name:     "python with script",
			args:     []string{"python", "-m", "backend.tools.inspect"},
			wantName: "python",
			wantTail: []string{"-m", "backend.tools.inspect"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := Resolve(testConfig(), tt.args)

			if target.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", target.Name, tt.wantName)
			}
			// The command token is consumed, not forwarded.
			for _, arg := range target.Argv {
				if arg == tt.args[0] {
					t.Errorf("command token %q leaked into Argv %v", arg, target.Argv)
				}
			}
			gotTail := target.Argv[len(target.Argv)-len(tt.wantTail):]
			if !reflect.DeepEqual(gotTail, tt.wantTail) {
				t.Errorf("forwarded tail = %v, want %v", gotTail, tt.wantTail)
			}
		})
	}
}

// TestResolveShellIgnoresArgs validates that the shell target discards
// trailing arguments.
func TestResolveShellIgnoresArgs(t *testing.T) {
	target := Resolve(testConfig(), []string{"shell", "-c", "rm -rf /"})

	want := []string{"/bin/bash"}
	if !reflect.DeepEqual(target.Argv, want) {
		t.Errorf("Argv = %v, want %v", target.Argv, want)
	}
}

// TestResolvePassthrough validates that an unrecognized command becomes a
// verbatim invocation including the command token itself.
func TestResolvePassthrough(t *testing.T) {
	args := []string{"frobnicate", "--x", "1"}
	target := Resolve(testConfig(), args)

	if target.Name != "passthrough" {
		t.Errorf("Name = %q, want passthrough", target.Name)
	}
	if !reflect.DeepEqual(target.Argv, args) {
		t.Errorf("Argv = %v, want %v verbatim", target.Argv, args)
	}
	if target.Dir != "" {
		t.Errorf("passthrough should keep the current working directory, got %q", target.Dir)
	}
}

// TestWorkloadEnv validates the module search path composition for named
// targets.
func TestWorkloadEnv(t *testing.T) {
	tests := []struct {
		name    string
		environ []string
		want    string
	}{
		{
			name:    "no existing PYTHONPATH",
			environ: []string{"PATH=/usr/bin"},
			want:    "PYTHONPATH=/app:/app/backend",
		},
		{
			name:    "existing PYTHONPATH preserved as suffix",
			environ: []string{"PYTHONPATH=/opt/lib", "PATH=/usr/bin"},
			want:    "PYTHONPATH=/app:/app/backend:/opt/lib",
		},
		{
			name:    "empty PYTHONPATH",
			environ: []string{"PYTHONPATH="},
			want:    "PYTHONPATH=/app:/app/backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Environ = tt.environ

			env := workloadEnv(cfg)

			found := ""
			count := 0
			for _, kv := range env {
				if strings.HasPrefix(kv, "PYTHONPATH=") {
					found = kv
					count++
				}
			}
			if count != 1 {
				t.Fatalf("environment has %d PYTHONPATH entries, want 1: %v", count, env)
			}
			if found != tt.want {
				t.Errorf("PYTHONPATH entry = %q, want %q", found, tt.want)
			}
		})
	}
}

// TestWorkloadEnvPreservesOthers validates that unrelated variables survive
// environment composition untouched.
func TestWorkloadEnvPreservesOthers(t *testing.T) {
	cfg := testConfig()
	env := workloadEnv(cfg)

	for _, want := range cfg.Environ {
		found := false
		for _, kv := range env {
			if kv == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("environment entry %q lost during composition", want)
		}
	}
}

// TestExecFailure validates that exec failures return control with an error
// rather than terminating the test process.
func TestExecFailure(t *testing.T) {
	tests := []struct {
		name   string
		target Target
	}{
		{
			name:   "empty argv",
			target: Target{Name: "broken"},
		},
		{
			name:   "unresolvable executable",
			target: Target{Name: "ghost", Argv: []string{"no-such-binary-jarvis-test"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Exec(tt.target); err == nil {
				t.Error("Exec() should fail")
			}
		})
	}
}
