package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig          = errors.New("invalid selection widget config")
	ErrSelectionLimitExceeded = errors.New("selection limit exceeded")
)

// ConfigError reports a widget constructed with an unusable setting.
type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("selection widget: %s must be positive, got %d", e.Field, e.Value)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// SelectionLimitError is returned when a pick would grow the selection past Max.
// Its message is the notice shown to the user.
type SelectionLimitError struct {
	Max int
}

func (e *SelectionLimitError) Error() string {
	return fmt.Sprintf("You can only select up to %d options.", e.Max)
}

func (e *SelectionLimitError) Is(target error) bool { return target == ErrSelectionLimitExceeded }
