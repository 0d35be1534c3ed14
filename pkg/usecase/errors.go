package usecase

import "errors"

// Sentinel errors for use case layer. The messages are part of the
// external API contract: callers receive them verbatim in the response
// body.
var (
	ErrMissingMessage    = errors.New("Missing message")
	ErrMissingKeyOrValue = errors.New("Missing key or value")
)
