// Package version provides centralized version information for the bootstrap
// binary. The bootstrap is versioned independently from the workloads it
// launches so container image updates can be tracked separately.
// Follows semantic versioning (semver) conventions.

package version

// BootstrapVersion holds the current jarvis-bootstrap version.
// Format: major.minor.patch[-prerelease][+build]
const BootstrapVersion = "0.1.0-dev"
