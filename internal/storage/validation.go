package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrInvalidLimit = errors.New("limit must be positive")
	ErrNameTooLong  = errors.New("preset name is too long")
)

// maxPresetNameLen bounds preset names in characters.
const maxPresetNameLen = 64

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validatePresetName(name string) error {
	if err := validateString(name, "name"); err != nil {
		return err
	}
	if utf8.RuneCountInString(name) > maxPresetNameLen {
		return fmt.Errorf("%w: %d characters max", ErrNameTooLong, maxPresetNameLen)
	}
	return nil
}

func validateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return nil
}
