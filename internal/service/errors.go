package service

import "errors"

// Service errors, mapped to HTTP status codes at the handler boundary.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrWrongPassword    = errors.New("invalid password")
	ErrNotStarted       = errors.New("quiz not started for this respondent")
	ErrAlreadySubmitted = errors.New("answers already submitted")
	ErrGeneration       = errors.New("question generation failed")
)
