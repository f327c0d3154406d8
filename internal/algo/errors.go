package algo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrValidation is matched by every input validation failure.
var ErrValidation = errors.New("algo: invalid input")

// ValidationError reports input that an engine refuses to start on.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	c := make([]int, len(s))
	copy(c, s)
	return c
}

func formatInts(s []int) string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func badPC(frame string, pc int) string {
	return fmt.Sprintf("algo: %s resumed at unknown pc %d", frame, pc)
}
