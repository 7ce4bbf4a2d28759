package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound       = errors.New("form not found")
	ErrNoRateFields   = errors.New("no valid fields to update")
	ErrCodeGeneration = errors.New("code generation failed")
)

// ValidationError reports create payload fields that failed validation,
// keyed by JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		if e.Fields[name] == "required" {
			parts = append(parts, name+" is required")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", name, e.Fields[name]))
	}
	return "form validation failed: " + strings.Join(parts, ", ")
}

// MissingFieldsError is returned by a full update whose body lacks keys.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
