// Package logging provides centralized log level validation for the bootstrap.
//
// This file defines the canonical set of valid log levels used by the config
// layer and the CLI flag. Centralizing validation ensures consistency and
// makes it easy to add new log levels without updating multiple files.
package logging

// ValidLogLevels defines the canonical set of supported log levels. This map
// is the single source of truth for log level validation in the config layer.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel checks if the provided log level string is supported.
// Log level strings are case-sensitive and must be uppercase.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}
