package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidValue marks a settings value that failed validation.
	ErrInvalidValue = errors.New("invalid settings value")

	// ErrConfigLoadFailed wraps every failure to read, decode or validate the settings file.
	ErrConfigLoadFailed = errors.New("failed to load configuration")
)

// NewErrInvalidValue reports that the settings key holds an unusable value.
func NewErrInvalidValue(key string, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: '%s' is empty", ErrInvalidValue, key)
	}
	return fmt.Errorf("%w: '%s' (value: '%s')", ErrInvalidValue, key, value)
}
