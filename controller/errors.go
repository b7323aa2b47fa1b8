package controller

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError is returned when a session setting cannot be used,
// such as a time zone id the host cannot resolve.
type ConfigurationError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IOError represents a failure touching the log directory or file.
type IOError struct {
	Op    string // "mkdir", "create", "append"
	Path  string
	Fatal bool // raised while initialising the session
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// MissingReferenceError is reported on every tick while a tracked body is
// not assigned.
type MissingReferenceError struct {
	Bodies []string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("missing reference in rig: %s", strings.Join(e.Bodies, ", "))
}

// IsFatal reports whether err must abort the session. Missing references
// and append failures are reported and the loop carries on.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return true
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr.Fatal
	}
	var refErr *MissingReferenceError
	return !errors.As(err, &refErr)
}
