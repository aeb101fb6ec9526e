package mcp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidArguments is returned when a tool call is missing a required
// argument or carries one of the wrong type.
var ErrInvalidArguments = errors.New("invalid arguments")

// Arguments are the decoded arguments of a tool call.
type Arguments map[string]any

// String returns a string argument, or "" when absent.
func (a Arguments) String(key string) string {
	switch v := a[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Require returns the named string arguments, failing on the first one that is
// absent or blank.
func (a Arguments) Require(keys ...string) ([]string, error) {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		v := a.String(key)
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("missing required argument %q: %w", key, ErrInvalidArguments)
		}
		out = append(out, v)
	}
	return out, nil
}

// Bool returns a boolean argument, accepting JSON booleans and "true"/"false".
func (a Arguments) Bool(key string, fallback bool) (bool, error) {
	switch v := a[key].(type) {
	case nil:
		return fallback, nil
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("argument %q must be a boolean: %w", key, ErrInvalidArguments)
		}
		return b, nil
	default:
		return false, fmt.Errorf("argument %q must be a boolean: %w", key, ErrInvalidArguments)
	}
}

// Int returns an integer argument. JSON numbers arrive as float64.
func (a Arguments) Int(key string, fallback int) (int, error) {
	switch v := a[key].(type) {
	case nil:
		return fallback, nil
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer: %w", key, ErrInvalidArguments)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer: %w", key, ErrInvalidArguments)
	}
}

// Value returns a string argument that must be present but may be blank.
func (a Arguments) Value(key string) (string, error) {
	if _, ok := a[key]; !ok {
		return "", fmt.Errorf("missing required argument %q: %w", key, ErrInvalidArguments)
	}
	return a.String(key), nil
}
