// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gen abstracts the text-generation services behind a common
// Backend interface and classifies their failures into the two classes
// the pipeline distinguishes: transient (retryable) and validation
// (never retried). The classification is carried in the error type so
// retry loops can make the decision with errors.As instead of
// inspecting messages.
package gen

import (
	"context"
	"errors"
	"fmt"
)

// Backend generates text from a system instruction and a user prompt.
// Implementations perform exactly one attempt per call; retry policy
// belongs to the caller.
type Backend interface {
	Name() string
	Generate(ctx context.Context, system, user string) (string, error)
}

// TransientError marks a failure worth retrying: connectivity loss,
// rate limiting, upstream server errors.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return fmt.Sprintf("transient: %v", e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

// ValidationError marks a malformed request. Retrying cannot succeed;
// the failure must propagate immediately.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("validation: %v", e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsValidation reports whether err is a non-retryable request error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// classifyStatus wraps err according to an HTTP status code. Statuses
// the server cannot recover from by itself (bad request, auth,
// not found, unprocessable) are validation-class; everything else is
// transient.
func classifyStatus(status int, err error) error {
	switch status {
	case 400, 401, 403, 404, 422:
		return &ValidationError{Err: err}
	}
	return &TransientError{Err: err}
}
