package errs

import (
	"errors"
	"fmt"
)

const unknownReason = "Unknown error"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrStatusConflict = errors.New("status changed concurrently")
)

// ValidationError is a user-correctable problem with the request payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigurationError means mail delivery credentials or addresses are missing.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// DeliveryError is returned when the mail provider rejected or failed a send.
// Details holds the provider's structured error messages, if it sent any.
type DeliveryError struct {
	StatusCode int
	Message    string
	Details    []string
	Err        error
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

func (e *DeliveryError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("delivery failed (status %d): %s", e.StatusCode, e.Reason())
	}

	return fmt.Sprintf("delivery failed: %s", e.Reason())
}

// Reason prefers the first structured detail over the generic message.
func (e *DeliveryError) Reason() string {
	if len(e.Details) > 0 && e.Details[0] != "" {
		return e.Details[0]
	}
	if e.Message != "" {
		return e.Message
	}

	return unknownReason
}

// DeliveryReason extracts a human-readable failure reason from any send error.
func DeliveryReason(err error) string {
	if err == nil {
		return unknownReason
	}

	var de *DeliveryError
	if errors.As(err, &de) {
		return de.Reason()
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return unknownReason
}
