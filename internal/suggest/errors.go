package suggest

import "errors"

var (
	// ErrNoAPIKey indicates a provider was selected without an API key.
	ErrNoAPIKey = errors.New("missing API key")

	// ErrEmptyResponse indicates the provider answered with no usable keywords.
	ErrEmptyResponse = errors.New("empty suggestion")

	// ErrEmptyBusinessType indicates the business description is blank.
	ErrEmptyBusinessType = errors.New("business type is empty")

	// ErrPromptMissingField indicates a custom prompt never references ${businessType}.
	ErrPromptMissingField = errors.New("prompt does not reference ${businessType}")

	// ErrUnknownProvider indicates an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown suggestion provider")
)
