package contract

import "errors"

var (
	ErrModelInvoke     = errors.New("model invoke failed")
	ErrSchemaViolation = errors.New("model response violates schema")
	ErrPromptMissing   = errors.New("required prompt is missing")
	ErrValidation      = errors.New("validation failed")

	ErrTimeout          = errors.New("calculation request timed out")
	ErrRemoteService    = errors.New("calculation service returned an error")
	ErrUnexpected       = errors.New("unexpected calculation failure")
	ErrIncompleteResult = errors.New("calculation result is incomplete")
)
