package importer

import (
	"fmt"
	"strings"
)

const maxNameLen = 80

// ValidateProfileFile checks a decoded profile before it is stored.
// Returns a slice of all validation errors found.
func ValidateProfileFile(f *ProfileFile) []error {
	var errs []error

	if f.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("version: unsupported profile version %d (expected %d)", f.Version, CurrentVersion))
	}
	errs = append(errs, ValidateName(f.Name)...)
	errs = append(errs, f.Config.Validate()...)
	return errs
}

// ValidateName checks a profile name.
func ValidateName(name string) []error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return []error{fmt.Errorf("name is required")}
	case len(trimmed) > maxNameLen:
		return []error{fmt.Errorf("name: must be at most %d characters", maxNameLen)}
	case trimmed != name:
		return []error{fmt.Errorf("name: must not start or end with whitespace")}
	}
	return nil
}
