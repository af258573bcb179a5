// Package apperr defines the error taxonomy for the analysis pipeline.
// Callers distinguish the classes with errors.Is: input errors mean "fix
// your request", config errors mean "operator must fix the deployment",
// upstream errors mean "retry me later".
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInput marks caller mistakes (e.g. no transcript text). Not
	// retryable.
	ErrInput = errors.New("invalid input")

	// ErrConfig marks missing or malformed configuration resources
	// (roster, alias tables). Fatal until an operator intervenes.
	ErrConfig = errors.New("configuration error")

	// ErrUpstream marks failed or timed-out collaborator calls (tagger,
	// classifier, roster provider). Retry-eligible at the caller's
	// discretion; the pipeline itself never retries.
	ErrUpstream = errors.New("upstream error")
)

// Input returns an ErrInput-tagged error.
func Input(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(format, args...))
}

// Config wraps err as an ErrConfig-tagged error with context.
func Config(err error, context string) error {
	return fmt.Errorf("%w: %s: %w", ErrConfig, context, err)
}

// Upstream wraps err as an ErrUpstream-tagged error with context.
func Upstream(err error, context string) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, context, err)
}
