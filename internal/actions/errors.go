package actions

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is matched by every error about an action kind
	// outside the closed set.
	ErrUnknownAction = errors.New("unknown action")

	// ErrNoStore is returned when dispatch is attempted without a store.
	ErrNoStore = errors.New("list store is not initialized")
)

// ValidationError reports a rejected action before any mutation happened.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnknownActionError names the unrecognized action.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("Unknown action: %s", e.Name)
}

// Is makes errors.Is(err, ErrUnknownAction) hold.
func (e *UnknownActionError) Is(target error) bool {
	return target == ErrUnknownAction
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
