package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInvalidState   = "invalid_state"

	// Round errors
	ErrCodeSelectionRequired  = "selection_required"
	ErrCodeAmbiguousSelection = "ambiguous_selection"
	ErrCodeInvalidTransition  = "invalid_transition"

	// Content errors
	ErrCodeContentNotReady = "content_not_ready"

	// Server errors
	ErrCodeInternalError = "internal_error"
	ErrCodeUpstreamError = "upstream_error"
)
