package handler

import (
	"errors"
	"sort"
	"strings"
)

// ErrNilResponse indicates a handler returned nil instead of a Response
var ErrNilResponse = errors.New("handler returned nil response")

// ValidationError maps field names to validation messages.
type ValidationError map[string][]string

func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], ", "))
	}
	return strings.Join(parts, "; ")
}

// Add appends a message for field.
func (e ValidationError) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Empty reports whether no messages were recorded.
func (e ValidationError) Empty() bool {
	return len(e) == 0
}
