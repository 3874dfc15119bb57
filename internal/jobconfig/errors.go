package jobconfig

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidConfiguration  = errors.New("jobconfig: invalid configuration")
	ErrConfigurationNotFound = errors.New("jobconfig: configuration not found")
	ErrConfigurationExists   = errors.New("jobconfig: configuration key already exists")
	ErrKeyRequired           = errors.New("jobconfig: key is required")
)

// ConfigurationError reports a malformed configuration field. It is raised
// before any computation starts.
type ConfigurationError struct {
	Key   string
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return ErrInvalidConfiguration.Error()
	}
	var b strings.Builder
	b.WriteString(ErrInvalidConfiguration.Error())
	if e.Key != "" {
		fmt.Fprintf(&b, ": configuration=%s", e.Key)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field=%s", e.Field)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Is matches ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFoundError reports a missing configuration.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Key == "" {
		return ErrConfigurationNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrConfigurationNotFound.Error(), e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrConfigurationNotFound
}
