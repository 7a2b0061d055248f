package application

import (
	"path"
	"strings"
)

// ValidateRequired checks that a string field is non-empty after
// trimming whitespace
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fieldName + " is required",
		}
	}
	return nil
}

// ValidateCorpusPath checks that a caller-supplied path stays inside
// the corpus: relative, forward-going, no traversal escapes.
func ValidateCorpusPath(fieldName, value string) error {
	if err := ValidateRequired(fieldName, value); err != nil {
		return err
	}

	p := strings.ReplaceAll(value, "\\", "/")
	if strings.HasPrefix(p, "/") {
		return &PathError{Path: value, Reason: "must be corpus-relative, not absolute"}
	}

	cleaned := path.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return &PathError{Path: value, Reason: "escapes the corpus root"}
	}
	return nil
}
