package analyzer

import "errors"

var (
	// ErrInvalidInput is returned for text that is empty after trimming.
	ErrInvalidInput = errors.New("text cannot be empty")
	// ErrBatchEmpty is returned for a batch without texts.
	ErrBatchEmpty = errors.New("no texts provided for batch analysis")
	// ErrBatchTooLarge is returned when a batch exceeds the configured cap.
	ErrBatchTooLarge = errors.New("batch size limit exceeded")
	// ErrLLMUnavailable is returned by the generative features when no
	// language model is configured.
	ErrLLMUnavailable = errors.New("no language model configured")
)

// InvalidTextMarker is the error recorded for a blank batch item.
const InvalidTextMarker = "Invalid text provided"
