// Package validate provides configuration validation utilities for the
// bootstrap pipeline.
//
// Implements common validation patterns used by the config layer to ensure
// resolved settings are structurally sound before any stage runs. All
// functions leverage the go-playground/validator library for standardized
// validation behavior.
//
// VALIDATION UTILITIES:
//   - Port validation: Standard port range checking (1-65535)
//   - String validation: Required field and non-empty string checking
//   - Path validation: Absolute filesystem path checking
//
// These utilities replace manual validation code scattered across the config
// package with centralized, consistent validation using the validator
// library's built-in tags and error handling.
package validate

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
	// Using built-in validators: min, max, required - no custom registration needed
}

// ValidateField validates individual values against specified validation rules
// using the go-playground/validator library. Provides flexible validation for
// single fields without requiring struct definitions.
//
// Example: ValidateField(8000, "required,min=1,max=65535")
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// ValidateStruct validates a struct against its `validate` field tags.
// Used by the config layer to check the fully resolved RuntimeConfig in one
// pass before any stage observes it.
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidatePortRange validates that a port number is within the valid range
// (1-65535). Rejects port 0 (OS-assigned) since the launched workloads must
// bind to predictable addresses that the container scheduler can reach.
func ValidatePortRange(port int) error {
	return ValidateField(port, "required,min=1,max=65535")
}

// ValidateRequiredString validates that a string field is not empty.
//
// Ensures required configuration fields like the home directory and database
// path are specified before provisioning runs. Prevents runtime failures from
// missing essential configuration parameters.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateAbsolutePath validates that a path is non-empty and absolute.
// Relative paths would silently resolve against whatever working directory
// the container runtime happened to start the entrypoint in.
func ValidateAbsolutePath(path, fieldName string) error {
	if err := ValidateRequiredString(path, fieldName); err != nil {
		return err
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be an absolute path, got '%s'", fieldName, path)
	}
	return nil
}
